package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(12, 5))
	assert.Equal(t, 2, TotalPages(10, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 0, TotalPages(12, 0))
}

func TestPage_Normalize(t *testing.T) {
	p := Page[Account]{TotalElements: 12, Size: 5}.Normalize()
	assert.Equal(t, 3, p.TotalPages)
	assert.NotNil(t, p.Content)

	kept := Page[Account]{TotalPages: 4, TotalElements: 12, Size: 5}.Normalize()
	assert.Equal(t, 4, kept.TotalPages)
}

func TestPage_InRange(t *testing.T) {
	p := Page[Account]{TotalPages: 3}
	assert.True(t, p.InRange(0))
	assert.True(t, p.InRange(2))
	assert.False(t, p.InRange(3))
	assert.False(t, p.InRange(5))
	assert.False(t, p.InRange(-1))

	empty := Page[Account]{}
	assert.True(t, empty.InRange(0))
	assert.False(t, empty.InRange(1))
}

func TestPage_DecodesSpringPage(t *testing.T) {
	payload := `{"content":[{"id":1,"username":"a"},{"id":2,"username":"b"}],
		"pageable":{"pageNumber":0,"pageSize":5},"totalPages":1,"totalElements":2,
		"size":5,"number":0,"numberOfElements":2}`

	var p Page[Account]
	require.NoError(t, json.Unmarshal([]byte(payload), &p))
	require.Len(t, p.Content, 2)
	assert.Equal(t, "a", p.Content[0].Username)
	assert.Equal(t, "b", p.Content[1].Username)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 5, p.Size)
}
