package schema

import "fmt"

// ViolationKind classifies a Violation.
type ViolationKind string

const (
	// MissingRequiredField: a required object field is absent.
	MissingRequiredField ViolationKind = "missing_required_field"

	// UnexpectedField: a closed object carries an undeclared key.
	UnexpectedField ViolationKind = "unexpected_field"

	// TypeMismatch: the value has the wrong runtime kind.
	TypeMismatch ViolationKind = "type_mismatch"

	// EnumMismatch: a string is not one of an enum's literals.
	EnumMismatch ViolationKind = "enum_mismatch"

	// NoUnionAlternativeMatched: no alternative of a union accepted the value.
	// The violation's Detail explains the closest alternative.
	NoUnionAlternativeMatched ViolationKind = "no_union_alternative_matched"

	// MultipleUnionAlternativesMatched: more than one alternative accepted the
	// value. Reported only as a warning.
	MultipleUnionAlternativesMatched ViolationKind = "multiple_union_alternatives_matched"

	// AtLeastOneConstraintUnsatisfied: none of a RequireAtLeastOne set is present.
	AtLeastOneConstraintUnsatisfied ViolationKind = "at_least_one_constraint_unsatisfied"

	// CheckFailed: a custom check evaluated to false or could not be evaluated.
	CheckFailed ViolationKind = "check_failed"
)

// Violation is a single located mismatch between a document and its schema.
type Violation struct {
	Path    Path          `json:"path"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`

	// Alternative is the index of the union alternative whose violations are
	// given in Detail. It is only meaningful for NoUnionAlternativeMatched.
	Alternative int `json:"alternative,omitempty"`

	// Detail explains a NoUnionAlternativeMatched violation with the
	// violations of the closest alternative.
	Detail []Violation `json:"detail,omitempty"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Path, v.Kind, v.Message)
}

// Result is the outcome of validating one value.
type Result struct {
	// Violations lists every structural mismatch in deterministic order.
	Violations []Violation `json:"violations,omitempty"`

	// Warnings are non-fatal diagnostics for schema authors, such as an
	// ambiguous union. They never make a result invalid.
	Warnings []Violation `json:"warnings,omitempty"`
}

// Valid reports whether the value conformed to the schema.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Violations: r.Violations}
}

// Count returns the number of violations, including nested union detail.
func (r Result) Count() int {
	return countViolations(r.Violations)
}

func countViolations(vs []Violation) int {
	n := 0
	for _, v := range vs {
		n++
		n += countViolations(v.Detail)
	}
	return n
}
