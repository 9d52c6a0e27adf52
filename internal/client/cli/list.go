package cli

import (
	"context"
	"fmt"
	"strconv"
)

// List fetches and prints the current page.
func (a *App) List(ctx context.Context) error {
	return a.navigate(ctx, a.users.Fetch)
}

func (a *App) Next(ctx context.Context) error {
	return a.navigate(ctx, a.users.Next)
}

func (a *App) Prev(ctx context.Context) error {
	return a.navigate(ctx, a.users.Prev)
}

// Page jumps to page n, counted from 1.
func (a *App) Page(ctx context.Context, n string) error {
	p, err := strconv.Atoi(n)
	if err != nil {
		a.println("Page must be a number:", n)
		return err
	}
	return a.navigate(ctx, func(ctx context.Context) error {
		return a.users.SetPage(ctx, p-1)
	})
}

// Size changes the number of accounts per page.
func (a *App) Size(ctx context.Context, n string) error {
	size, err := strconv.Atoi(n)
	if err != nil {
		a.println("Size must be a number:", n)
		return err
	}
	return a.navigate(ctx, func(ctx context.Context) error {
		return a.users.SetSize(ctx, size)
	})
}

func (a *App) navigate(ctx context.Context, fn func(context.Context) error) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		a.printStatus()
		return err
	}
	a.printList()
	return nil
}

func pageFooter(page, totalPages, totalElements int) string {
	if totalPages == 0 {
		return "No users"
	}
	return fmt.Sprintf("Page %d of %d (%d users)", page+1, totalPages, totalElements)
}
