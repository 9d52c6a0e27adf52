package models

// Page is one server-returned slice of records plus pagination metadata.
// Number is zero-based. Content keeps the server order.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

// TotalPages returns ceil(totalElements/size), or 0 for a non-positive size.
func TotalPages(totalElements, size int) int {
	if size <= 0 || totalElements <= 0 {
		return 0
	}
	return (totalElements + size - 1) / size
}

// Normalize fills in what a sloppy server may leave out: an empty instead of
// nil Content and TotalPages derived from TotalElements and Size.
func (p Page[T]) Normalize() Page[T] {
	if p.Content == nil {
		p.Content = []T{}
	}
	if p.TotalPages == 0 {
		p.TotalPages = TotalPages(p.TotalElements, p.Size)
	}
	return p
}

// InRange reports whether index addresses an existing page. Before the
// total is known (TotalPages == 0) only index 0 is in range.
func (p Page[T]) InRange(index int) bool {
	if index < 0 {
		return false
	}
	if p.TotalPages == 0 {
		return index == 0
	}
	return index < p.TotalPages
}
