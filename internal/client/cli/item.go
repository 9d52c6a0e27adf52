package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/syspark/internal/client/form"
	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/client/users"
	"github.com/dmitrijs2005/syspark/internal/client/validation"
	"github.com/dmitrijs2005/syspark/internal/common"
)

var fieldPrompts = map[string]string{
	users.FieldName:     "Name",
	users.FieldUsername: "Username",
	users.FieldPassword: "Password",
	users.FieldCPF:      "CPF",
	users.FieldEmail:    "Email",
	users.FieldPhone:    "Phone",
	users.FieldRole:     "Role (1=ADMIN, 2=BASIC)",
}

// Show prints one account.
func (a *App) Show(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	u, err := a.users.Find(ctx, models.ID(id))
	if err != nil {
		a.printStatus()
		return err
	}
	a.printAccount(u)
	return nil
}

// New walks the user through the create form.
func (a *App) New(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.users.OpenCreate(); err != nil {
		return err
	}
	return a.fillForm(ctx)
}

// Edit loads account id into the form and walks the user through it.
// Empty answers keep the current value; an empty password keeps the
// stored one.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.users.OpenEdit(ctx, models.ID(id)); err != nil {
		a.printStatus()
		a.users.Form().Close()
		return err
	}
	return a.fillForm(ctx)
}

// fillForm prompts for each field, submits, and on failure offers to fix
// the form and resubmit. Nothing is resubmitted without the user asking.
func (a *App) fillForm(ctx context.Context) error {
	f := a.users.Form()
	paths := f.Paths()

	for {
		for _, path := range paths {
			if err := a.promptField(f, path); err != nil {
				f.Close()
				return err
			}
		}

		_, err := a.users.SubmitForm(ctx)
		if err == nil {
			a.printList()
			f.Close()
			return nil
		}
		a.printStatus()

		question := "Try again?"
		paths = f.Paths()
		if errs, ok := validation.AsErrors(err); ok {
			for _, p := range errs.Paths() {
				a.println("  -", errs[p])
			}
			question = "Fix these fields?"
			paths = errs.Paths()
		}

		again, cerr := Confirm(a.reader, question, a.out)
		if cerr != nil || !again {
			f.Close()
			return err
		}
	}
}

func (a *App) promptField(f *form.Controller[models.Account], path string) error {
	label := fieldPrompts[path]
	mode := f.View().Mode

	var value string
	if path == users.FieldPassword {
		if mode == validation.ModeEdit {
			label += " (empty keeps the current one)"
		}
		pw, err := getPassword(label, a.out)
		if err != nil {
			return err
		}
		value = string(pw)
		common.WipeByteArray(pw)
	} else {
		current := f.Value(path)
		prompt := label
		if current != "" {
			prompt = fmt.Sprintf("%s [%s]", label, current)
		}
		text, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if text == "" {
			text = current
		}
		value = text
	}

	if err := f.Set(path, value); err != nil {
		if errors.Is(err, form.ErrBusy) || errors.Is(err, form.ErrNotOpen) {
			return err
		}
		a.println("  !", err)
		return nil
	}
	if msg, ok := f.View().Errors[path]; ok {
		a.println("  !", msg)
	}
	return nil
}
