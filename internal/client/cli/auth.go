package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/syspark/internal/client/gateway"
	"github.com/dmitrijs2005/syspark/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and opens a session. On success the list
// is re-fetched with the new token and shown.
//
// The password byte slice is wiped before returning. A rejected login
// leaves any previous session in place.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, strings.TrimSpace(username), string(password)); err != nil {
		a.println(gateway.LoginMessage(err))
		return err
	}

	a.println("Logged in as", a.session.Username())
	if err := a.users.SessionChanged(ctx); err != nil {
		a.printStatus()
		return nil
	}
	a.printList()
	return nil
}

// Logout forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.println("Logged out")
	return nil
}

// Status prints the session state, the API endpoint and the last
// operation's message.
func (a *App) Status(ctx context.Context) error {
	a.println("API:", a.api.BaseURL())

	sess, err := a.session.Session()
	if err != nil {
		a.println("Session:", a.session.Status())
	} else {
		a.println("Session:", a.session.Status(), "as", sess.Username, "until", sess.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
	a.printStatus()
	return nil
}
