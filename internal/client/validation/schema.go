// Package validation implements declarative record schemas on top of
// go-playground/validator. A schema is a list of rules, one per field path
// ("username", "profile.email"); validating a record yields at most one
// message per path.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/syspark/internal/common"
	"github.com/go-playground/validator/v10"
)

// Mode selects which rule variant applies.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Errors maps a field path to its message. Empty means valid.
type Errors map[string]string

// Paths returns the failing paths in sorted order.
func (e Errors) Paths() []string {
	paths := make([]string, 0, len(e))
	for p := range e {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ErrInvalid is matched by every *Error.
var ErrInvalid = common.ErrorValidation

// Error wraps a non-empty Errors set.
type Error struct {
	Errors Errors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, p := range e.Errors.Paths() {
		parts = append(parts, e.Errors[p])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return ErrInvalid }

// AsErrors extracts the field errors carried by err, if any.
func AsErrors(err error) (Errors, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Errors, true
	}
	return nil, false
}

// Validator is what the form controller and the orchestrator need from a schema.
type Validator[T any] interface {
	Validate(rec T, mode Mode) Errors
	ValidateField(rec T, mode Mode, path string) (string, bool)
}

// Rule describes one field. Tag is a validator tag list ("required,email");
// EditTag, when set, replaces Tag in ModeEdit.
type Rule[T any] struct {
	Path    string
	Label   string
	Tag     string
	EditTag string
	Value   func(T) any
}

func (r Rule[T]) tag(mode Mode) string {
	if mode == ModeEdit && r.EditTag != "" {
		return r.EditTag
	}
	return r.Tag
}

// Schema is an ordered rule set evaluated by one validator instance.
type Schema[T any] struct {
	v     *validator.Validate
	rules []Rule[T]
	index map[string]int
}

// NewSchema builds a schema. Duplicate or unnamed paths are programming
// errors and are reported immediately.
func NewSchema[T any](rules ...Rule[T]) (*Schema[T], error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ValidCPF(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register cpf validation: %w", err)
	}

	s := &Schema[T]{v: v, rules: rules, index: make(map[string]int, len(rules))}
	for i, r := range rules {
		if r.Path == "" || r.Value == nil {
			return nil, fmt.Errorf("rule %d: path and value are required", i)
		}
		if _, dup := s.index[r.Path]; dup {
			return nil, fmt.Errorf("rule %q declared twice", r.Path)
		}
		s.index[r.Path] = i
	}
	return s, nil
}

// MustSchema is NewSchema for package-level schemas.
func MustSchema[T any](rules ...Rule[T]) *Schema[T] {
	s, err := NewSchema(rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// Paths lists the rule paths in declaration order.
func (s *Schema[T]) Paths() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Path
	}
	return out
}

// Validate runs every rule against rec.
func (s *Schema[T]) Validate(rec T, mode Mode) Errors {
	errs := Errors{}
	for _, r := range s.rules {
		if msg, ok := s.check(r, rec, mode); !ok {
			errs[r.Path] = msg
		}
	}
	return errs
}

// ValidateField runs only the rule for path. Unknown paths are valid.
func (s *Schema[T]) ValidateField(rec T, mode Mode, path string) (string, bool) {
	i, ok := s.index[path]
	if !ok {
		return "", true
	}
	return s.check(s.rules[i], rec, mode)
}

func (s *Schema[T]) check(r Rule[T], rec T, mode Mode) (string, bool) {
	tag := r.tag(mode)
	if tag == "" {
		return "", true
	}
	err := s.v.Var(r.Value(rec), tag)
	if err == nil {
		return "", true
	}

	label := r.Label
	if label == "" {
		label = r.Path
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return label + " " + describe(verrs[0]), false
	}
	return label + " is invalid", false
}
