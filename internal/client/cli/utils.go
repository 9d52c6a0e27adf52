package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/client/session"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// printStatus prints the shared status message, if any.
func (a *App) printStatus() {
	if msg := a.users.Status(); msg != "" {
		a.println(msg)
	}
}

func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	a.println("Please log in first")
	return session.ErrNotLoggedIn
}

// printList renders the visible page as a table.
func (a *App) printList() {
	v := a.users.List().View()

	a.printStatus()
	if v.Message != "" && v.Message != a.users.Status() {
		a.println(v.Message)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tPHONE\tCPF\tROLE")
	for _, u := range v.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Username, u.Profile.Name, u.Profile.Email, u.Profile.Phone, u.Profile.CPF, u.Role)
	}
	_ = tw.Flush()

	a.println(pageFooter(v.Page, v.TotalPages, v.TotalElements))
}

func (a *App) printAccount(u models.Account) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Profile.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Profile.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", u.Profile.Phone)
	fmt.Fprintf(tw, "CPF:\t%s\n", u.Profile.CPF)
	_ = tw.Flush()
}
