package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/syspark/internal/client/models"
)

// Delete asks for confirmation before deleting account id.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	a.users.RequestDelete(models.ID(id))
	ok, err := Confirm(a.reader, fmt.Sprintf("Are you sure you want to delete user %s?", id), a.out)
	if err != nil || !ok {
		a.users.CancelDelete()
		a.printStatus()
		return err
	}

	if err := a.users.ConfirmDelete(ctx, models.ID(id)); err != nil {
		a.printStatus()
		return err
	}
	a.printList()
	return nil
}
