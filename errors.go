package firecheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Sentinel errors for common failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidDocument indicates the document could not be decoded.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidCheck indicates a custom check failed to compile.
	ErrInvalidCheck = errors.New("invalid check")
)

// Error kinds categorize errors by their type.
const (
	// KindDecode represents documents that are not well-formed JSON or YAML.
	KindDecode = "decode"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindValidation represents documents that do not conform to the schema.
	KindValidation = "validation"

	// KindCache represents failures of the result cache.
	KindCache = "cache"

	// KindInternal represents everything else, including cancellation.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// Example usage:
//
//	err := &Error{
//		Op:   "Checker.Check",
//		Kind: KindDecode,
//		Err:  ErrInvalidDocument,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Checker.Check", "New").
	Op string

	// Kind categorizes the error (e.g., KindDecode, KindConfiguration).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional),
	// such as the document name.
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("firecheck: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("firecheck: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("firecheck: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, and by Op when the target sets one.
// Any other target is compared against the wrapped error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of e with ctx merged into its context.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewDecodeError creates an Error with KindDecode wrapping ErrInvalidDocument.
func NewDecodeError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindDecode,
		Err:  fmt.Errorf("%w: %w", ErrInvalidDocument, err),
	}
}

// NewConfigurationError creates an Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewValidationError creates an Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewInternalError creates an Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog closes the provided resource and logs any error at warning
// level. It is meant for defer statements.
//
//	defer firecheck.CloseWithLog(store, logger, "result cache")
func CloseWithLog(closer io.Closer, logger zerolog.Logger, name string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		logger.Warn().
			Err(err).
			Str("resource", name).
			Msg("failed to close resource")
	}
}
