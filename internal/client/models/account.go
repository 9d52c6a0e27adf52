// Package models defines the records exchanged with the SysPark API:
// accounts with their embedded profile, roles and result pages.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Role is the numeric role code used by the API.
type Role int

const (
	RoleAdmin Role = 1
	RoleBasic Role = 2
)

var ErrUnknownRole = errors.New("unknown role")

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleBasic:
		return "BASIC"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole accepts a numeric code or a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "ADMIN":
		return RoleAdmin, nil
	case "BASIC":
		return RoleBasic, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return Role(n), nil
}

// ID is the opaque server-assigned identifier. The API emits numbers; the
// client treats them as strings.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(b), err)
	}
	*id = ID(n.String())
	return nil
}

// Profile holds the personal details of an Account.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

// Account is a SysPark user. Password is write-only: it is sent on create
// and, when non-empty, on update; accounts read back never carry it.
type Account struct {
	ID       ID      `json:"id,omitempty"`
	Username string  `json:"username"`
	Password string  `json:"password,omitempty"`
	Role     Role    `json:"role"`
	Profile  Profile `json:"person"`
}

// Sanitized returns a copy of a with the credential secret removed.
func (a Account) Sanitized() Account {
	a.Password = ""
	return a
}

func (a Account) String() string {
	return fmt.Sprintf("%-6s %-20s %-24s %s", a.ID, a.Username, a.Profile.Name, a.Role)
}
