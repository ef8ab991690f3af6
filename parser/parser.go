package parser

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned for input that holds no value at all.
var ErrEmptyDocument = errors.New("document is empty")

// SyntaxError reports a document that could not be decoded. Line and Column
// are 1-based; zero means the position is unknown.
type SyntaxError struct {
	Format Format
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s syntax error at line %d, column %d: %s", e.Format, e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("%s syntax error at line %d: %s", e.Format, e.Line, e.Msg)
	default:
		return fmt.Sprintf("%s syntax error: %s", e.Format, e.Msg)
	}
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Decode parses data in the given format into a value tree of nil, bool,
// float64 or int, string, []any and map[string]any.
func Decode(data []byte, format Format) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	if format == FormatAuto {
		format = sniff(data)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unknown document format %q", string(format))
	}
}
