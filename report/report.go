// Package report renders checker reports for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/zero-day-ai/firecheck"
	"github.com/zero-day-ai/firecheck/schema"
)

// Format selects the rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Write renders reports to w.
//
// Text output lists one line per violation (location, kind, message) under
// a header per document, with the closest alternative of a failed union
// indented beneath it. JSON output is an indented array of reports.
func Write(w io.Writer, reports []*firecheck.Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if reports == nil {
			reports = []*firecheck.Report{}
		}
		return enc.Encode(reports)
	case FormatText, "":
		return writeText(w, reports)
	default:
		return fmt.Errorf("unknown output format %q", string(format))
	}
}

func writeText(w io.Writer, reports []*firecheck.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, r := range reports {
		fmt.Fprintf(tw, "%s: %s\n", sourceName(r), summary(r))
		for _, v := range r.Violations {
			writeViolation(tw, v, 1)
		}
		for _, v := range r.Warnings {
			fmt.Fprintf(tw, "  warning: %s\t%s\t%s\n", v.Path, v.Kind, v.Message)
		}
	}

	return tw.Flush()
}

func writeViolation(w io.Writer, v schema.Violation, depth int) {
	fmt.Fprintf(w, "%s%s\t%s\t%s\n", strings.Repeat("  ", depth), v.Path, v.Kind, v.Message)
	for _, d := range v.Detail {
		writeViolation(w, d, depth+1)
	}
}

func sourceName(r *firecheck.Report) string {
	if r.Source == "" {
		return "<stdin>"
	}
	return r.Source
}

func summary(r *firecheck.Report) string {
	var b strings.Builder
	if r.Valid {
		b.WriteString("ok")
	} else {
		n := len(r.Violations)
		fmt.Fprintf(&b, "%d %s", n, plural(n, "violation", "violations"))
	}
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(&b, ", %d %s", n, plural(n, "warning", "warnings"))
	}
	if r.Cached {
		b.WriteString(" (cached)")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
