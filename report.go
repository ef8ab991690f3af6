package firecheck

import (
	"time"

	"github.com/zero-day-ai/firecheck/schema"
)

// Document is one configuration document to check.
type Document struct {
	// Name identifies the document in reports, usually its file path.
	Name string

	// Data is the raw document content.
	Data []byte

	// Format selects the decoder. parser.FormatAuto sniffs the content.
	Format Format
}

// Report is the outcome of checking one document.
type Report struct {
	// ID uniquely identifies this report.
	ID string `json:"id"`

	// Source is the document name.
	Source string `json:"source"`

	// Valid is true when there are no violations. Warnings do not count.
	Valid bool `json:"valid"`

	Violations []schema.Violation `json:"violations,omitempty"`
	Warnings   []schema.Violation `json:"warnings,omitempty"`

	// Cached reports whether the result came from the cache.
	Cached bool `json:"cached"`

	CheckedAt time.Time `json:"checked_at"`
}

// Err returns nil for a valid report. Otherwise it returns an *Error of
// KindValidation wrapping a *schema.ValidationError that lists the
// violations.
func (r *Report) Err() error {
	err := r.Result().Err()
	if err == nil {
		return nil
	}
	return NewValidationError("Report.Err", err).WithContext(map[string]any{"source": r.Source})
}

// Result returns the violations and warnings as a schema.Result.
func (r *Report) Result() schema.Result {
	return schema.Result{Violations: r.Violations, Warnings: r.Warnings}
}
