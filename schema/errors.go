package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned (wrapped in a *DefinitionError) by node
// constructors when a schema definition is malformed.
var (
	ErrEmptyUnion                = errors.New("union requires at least one alternative")
	ErrNilNode                   = errors.New("node must not be nil")
	ErrEmptyFieldName            = errors.New("field name must not be empty")
	ErrDuplicateField            = errors.New("field declared more than once")
	ErrEmptyConstraint           = errors.New("at-least-one constraint names no fields")
	ErrUndeclaredConstraintField = errors.New("at-least-one constraint names an undeclared field")
	ErrEmptyEnum                 = errors.New("enum requires at least one value")
	ErrDuplicateEnumValue        = errors.New("enum value declared more than once")
)

// DefinitionError reports a malformed schema definition detected at
// construction time.
type DefinitionError struct {
	// Op is the constructor that rejected the definition (e.g. "Union").
	Op string

	// Name is the offending field name or enum value, when there is one.
	Name string

	Err error
}

func (e *DefinitionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("schema: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("schema: %s: %q: %v", e.Op, e.Name, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

func defErr(op, name string, err error) error {
	return &DefinitionError{Op: op, Name: name, Err: err}
}

// ValidationError is the error form of an invalid Result. It lets callers
// that only deal in errors surface every violation at once.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Violations[0].String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d violations:", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}
