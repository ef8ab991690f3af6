// Package check runs user-defined CEL expressions against decoded
// configuration documents.
//
// Each expression sees the whole document as the dynamic variable config
// and must produce a boolean:
//
//	!has(config.hosting) || has(config.hosting.public)
//
// A false result, or an evaluation error such as a missing key, becomes a
// check_failed violation at the document root.
package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/zero-day-ai/firecheck/schema"
)

// Variable is the name under which expressions see the document.
const Variable = "config"

var (
	// ErrEmptyName is returned for a definition without a name.
	ErrEmptyName = errors.New("check name is empty")

	// ErrEmptyExpr is returned for a definition without an expression.
	ErrEmptyExpr = errors.New("check expression is empty")

	// ErrDuplicateName is returned when two definitions share a name.
	ErrDuplicateName = errors.New("duplicate check name")

	// ErrNotBoolean is returned for an expression whose static type can
	// never be a boolean.
	ErrNotBoolean = errors.New("check expression must evaluate to bool")
)

// Definition is one user-defined check.
type Definition struct {
	Name    string `json:"name" yaml:"name"`
	Expr    string `json:"expr" yaml:"expr"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// CompileError reports a definition that could not be compiled.
type CompileError struct {
	Name string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("check %q: %v", e.Name, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

type compiled struct {
	def     Definition
	program cel.Program
}

// Set is a compiled, ordered group of checks. It is safe for concurrent use.
type Set struct {
	checks []compiled
}

// Compile type-checks every definition and returns them as a Set. All
// definitions are compiled; the returned error joins every failure.
func Compile(defs []Definition) (*Set, error) {
	env, err := cel.NewEnv(
		cel.Variable(Variable, cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	set := &Set{checks: make([]compiled, 0, len(defs))}
	seen := make(map[string]bool, len(defs))
	var errs []error

	for _, def := range defs {
		prg, err := compileOne(env, def)
		if err == nil && seen[def.Name] {
			err = ErrDuplicateName
		}
		if err != nil {
			errs = append(errs, &CompileError{Name: def.Name, Err: err})
			continue
		}
		seen[def.Name] = true
		set.checks = append(set.checks, compiled{def: def, program: prg})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

func compileOne(env *cel.Env, def Definition) (cel.Program, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(def.Expr) == "" {
		return nil, ErrEmptyExpr
	}

	ast, iss := env.Compile(def.Expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}

	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBoolean, out)
	}

	return env.Program(ast)
}

// Len returns the number of checks in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.checks)
}

// Names returns the check names in definition order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.checks))
	for i, c := range s.checks {
		names[i] = c.def.Name
	}
	return names
}

// Evaluate runs every check against value and returns one violation per
// check that did not hold, in definition order. A nil Set has no checks.
func (s *Set) Evaluate(value any) []schema.Violation {
	if s == nil {
		return nil
	}

	var out []schema.Violation
	vars := map[string]any{Variable: value}
	for _, c := range s.checks {
		val, _, err := c.program.Eval(vars)
		if err != nil {
			out = append(out, schema.Violation{
				Kind:    schema.CheckFailed,
				Message: fmt.Sprintf("check %q could not be evaluated: %v", c.def.Name, err),
			})
			continue
		}

		ok, isBool := val.Value().(bool)
		switch {
		case !isBool:
			out = append(out, schema.Violation{
				Kind:    schema.CheckFailed,
				Message: fmt.Sprintf("check %q returned %s, expected bool", c.def.Name, val.Type().TypeName()),
			})
		case !ok:
			out = append(out, schema.Violation{
				Kind:    schema.CheckFailed,
				Message: c.message(),
			})
		}
	}
	return out
}

func (c compiled) message() string {
	if c.def.Message != "" {
		return fmt.Sprintf("%s: %s", c.def.Name, c.def.Message)
	}
	return fmt.Sprintf("check %q failed", c.def.Name)
}
