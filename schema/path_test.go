package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{name: "root", path: nil, want: "$"},
		{name: "key", path: ParsePath("hosting"), want: "$.hosting"},
		{name: "index", path: ParsePath("hosting", 0, "public"), want: "$.hosting[0].public"},
		{name: "dashed key", path: ParsePath("extensions", "storage-resize-images"), want: `$.extensions["storage-resize-images"]`},
		{name: "dollar key", path: ParsePath("$schema"), want: "$.$schema"},
		{name: "empty key", path: ParsePath(""), want: `$[""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPathJSON(t *testing.T) {
	p := ParsePath("hosting", 2, "rewrites", 0, "run", "serviceId")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `["hosting", 2, "rewrites", 0, "run", "serviceId"]`, string(data))

	var decoded Path
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, p.Equal(decoded))

	var root Path
	require.NoError(t, json.Unmarshal([]byte(`[]`), &root))
	assert.Nil(t, root)

	assert.Error(t, json.Unmarshal([]byte(`[true]`), &root))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &root))
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 8)
	base[0] = Key("hosting")

	a := base.child(Index(0))
	b := base.child(Index(1))

	assert.Equal(t, "$.hosting[0]", a.String())
	assert.Equal(t, "$.hosting[1]", b.String())
	assert.Len(t, base, 1)
}

func TestPathEqual(t *testing.T) {
	assert.True(t, ParsePath("a", 1).Equal(ParsePath("a", 1)))
	assert.False(t, ParsePath("a", 1).Equal(ParsePath("a", "1")))
	assert.False(t, ParsePath("a").Equal(ParsePath("a", 1)))
	assert.True(t, Path(nil).Equal(Path{}))
}

func TestViolationJSON(t *testing.T) {
	v := Violation{
		Path:        ParsePath("database"),
		Kind:        NoUnionAlternativeMatched,
		Message:     "value does not match any of 2 alternatives; closest is DatabaseSingle",
		Alternative: 0,
		Detail: []Violation{{
			Path:    ParsePath("database", "rules"),
			Kind:    MissingRequiredField,
			Message: `required field "rules" is missing`,
		}},
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"path": ["database"],
		"kind": "no_union_alternative_matched",
		"message": "value does not match any of 2 alternatives; closest is DatabaseSingle",
		"detail": [{
			"path": ["database", "rules"],
			"kind": "missing_required_field",
			"message": "required field \"rules\" is missing"
		}]
	}`, string(data))

	var decoded Violation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, v, decoded)
}
