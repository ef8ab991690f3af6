package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/firecheck"
	"github.com/zero-day-ai/firecheck/schema"
)

func sampleReports() []*firecheck.Report {
	return []*firecheck.Report{
		{ID: "1", Source: "ok.json", Valid: true},
		{
			ID:     "2",
			Source: "bad.json",
			Violations: []schema.Violation{
				{
					Path:    schema.ParsePath("database"),
					Kind:    schema.NoUnionAlternativeMatched,
					Message: "value does not match any of 2 alternatives; closest is DatabaseSingle",
					Detail: []schema.Violation{{
						Path:    schema.ParsePath("database", "rules"),
						Kind:    schema.MissingRequiredField,
						Message: `required field "rules" is missing`,
					}},
				},
			},
			Warnings: []schema.Violation{{
				Path:    schema.ParsePath("port"),
				Kind:    schema.MultipleUnionAlternativesMatched,
				Message: "value matches alternatives 0 (number), 1 (number); using 0",
			}},
			Cached: true,
		},
		{ID: "3", Valid: true},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReports(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "ok.json: ok\n")
	assert.Contains(t, out, "bad.json: 1 violation, 1 warning (cached)\n")
	assert.Regexp(t, `(?m)^  \$\.database\s+no_union_alternative_matched\s+value does not match`, out)
	assert.Regexp(t, `(?m)^    \$\.database\.rules\s+missing_required_field\s+required field "rules" is missing$`, out)
	assert.Regexp(t, `(?m)^  warning: \$\.port\s+multiple_union_alternatives_matched`, out)
	assert.Contains(t, out, "<stdin>: ok\n")
}

func TestWriteTextPlural(t *testing.T) {
	r := &firecheck.Report{Source: "x.json", Violations: []schema.Violation{
		{Kind: schema.TypeMismatch, Message: "a"},
		{Kind: schema.TypeMismatch, Message: "b"},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*firecheck.Report{r}, FormatText))
	assert.Contains(t, buf.String(), "x.json: 2 violations\n")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReports(), FormatJSON))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "bad.json", got[1]["source"])
	assert.Equal(t, false, got[1]["valid"])
	assert.Equal(t, true, got[1]["cached"])

	violations := got[1]["violations"].([]any)
	first := violations[0].(map[string]any)
	assert.Equal(t, []any{"database"}, first["path"])
	assert.Equal(t, "no_union_alternative_matched", first["kind"])
	detail := first["detail"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"database", "rules"}, detail["path"])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, nil, Format("html")))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}
