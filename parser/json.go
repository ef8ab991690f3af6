package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, jsonError(data, err)
	}

	// A second value, or garbage, after the document is an error.
	var extra any
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return v, nil
	case err != nil:
		return nil, jsonError(data, err)
	default:
		line, col := position(data, dec.InputOffset())
		return nil, &SyntaxError{Format: FormatJSON, Line: line, Column: col, Msg: "unexpected data after top-level value"}
	}
}

// jsonError attaches a line and column to encoding/json errors that carry
// a byte offset.
func jsonError(data []byte, err error) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		line, col := position(data, syntax.Offset)
		return &SyntaxError{Format: FormatJSON, Line: line, Column: col, Msg: syntax.Error(), Err: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		line, col := position(data, int64(len(data)))
		return &SyntaxError{Format: FormatJSON, Line: line, Column: col, Msg: "unexpected end of input", Err: err}
	}
	return &SyntaxError{Format: FormatJSON, Msg: err.Error(), Err: err}
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
