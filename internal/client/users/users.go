// Package users binds the generic client core to the "users" resource:
// the Account validation schema, the form field binder and the REST path.
package users

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/syspark/internal/client/gateway"
	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/client/validation"
)

// ResourcePath is the API path of user accounts.
const ResourcePath = "users"

// Field paths, shared by the schema, the binder and error reporting.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldName     = "profile.name"
	FieldEmail    = "profile.email"
	FieldPhone    = "profile.phone"
	FieldCPF      = "profile.cpf"
)

var ErrUnknownField = errors.New("unknown field")

// Schema is the Account rule set. The password is mandatory only on create;
// on edit an empty password means "leave unchanged".
var Schema = validation.MustSchema(
	validation.Rule[models.Account]{Path: FieldUsername, Label: "username", Tag: "required",
		Value: func(a models.Account) any { return strings.TrimSpace(a.Username) }},
	validation.Rule[models.Account]{Path: FieldPassword, Label: "password", Tag: "required", EditTag: "omitempty",
		Value: func(a models.Account) any { return a.Password }},
	validation.Rule[models.Account]{Path: FieldRole, Label: "role", Tag: "required,oneof=1 2",
		Value: func(a models.Account) any { return int(a.Role) }},
	validation.Rule[models.Account]{Path: FieldName, Label: "name", Tag: "required",
		Value: func(a models.Account) any { return strings.TrimSpace(a.Profile.Name) }},
	validation.Rule[models.Account]{Path: FieldEmail, Label: "email", Tag: "required,email",
		Value: func(a models.Account) any { return a.Profile.Email }},
	validation.Rule[models.Account]{Path: FieldPhone, Label: "phone", Tag: "required",
		Value: func(a models.Account) any { return strings.TrimSpace(a.Profile.Phone) }},
	validation.Rule[models.Account]{Path: FieldCPF, Label: "CPF", Tag: "required,cpf",
		Value: func(a models.Account) any { return a.Profile.CPF }},
)

// Fields is the form binder for Account records.
type Fields struct{}

// Defaults is the empty create form: every field blank, role BASIC.
func (Fields) Defaults() models.Account {
	return models.Account{Role: models.RoleBasic}
}

// Paths lists the editable fields in prompt order.
func (Fields) Paths() []string {
	return []string{FieldName, FieldUsername, FieldPassword, FieldCPF, FieldEmail, FieldPhone, FieldRole}
}

func (Fields) Get(a models.Account, path string) string {
	switch path {
	case FieldUsername:
		return a.Username
	case FieldPassword:
		return a.Password
	case FieldRole:
		if a.Role == 0 {
			return ""
		}
		return strconv.Itoa(int(a.Role))
	case FieldName:
		return a.Profile.Name
	case FieldEmail:
		return a.Profile.Email
	case FieldPhone:
		return a.Profile.Phone
	case FieldCPF:
		return a.Profile.CPF
	default:
		return ""
	}
}

// Set assigns value to the field at path. An unparsable role leaves the
// role at zero so the schema reports it.
func (Fields) Set(a *models.Account, path, value string) error {
	switch path {
	case FieldUsername:
		a.Username = value
	case FieldPassword:
		a.Password = value
	case FieldRole:
		role, err := models.ParseRole(value)
		if err != nil {
			role = 0
		}
		a.Role = role
	case FieldName:
		a.Profile.Name = value
	case FieldEmail:
		a.Profile.Email = strings.TrimSpace(value)
	case FieldPhone:
		a.Profile.Phone = value
	case FieldCPF:
		a.Profile.CPF = strings.TrimSpace(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	return nil
}

// NewResource returns the users REST resource.
func NewResource(c *gateway.Client, tokens gateway.TokenSource) *gateway.Resource[models.Account] {
	return gateway.NewResource[models.Account](c, ResourcePath, tokens)
}
