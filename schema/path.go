package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a mapping key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a segment naming a mapping key.
func Key(name string) Segment {
	return Segment{Key: name}
}

// Index returns a segment naming a sequence position.
func Index(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// Path locates a value by following keys and indices from the document root.
// The empty Path denotes the root.
type Path []Segment

// ParsePath is a convenience for tests and callers building paths by hand:
// strings become keys and ints become indices.
func ParsePath(steps ...any) Path {
	p := make(Path, 0, len(steps))
	for _, s := range steps {
		switch v := s.(type) {
		case int:
			p = append(p, Index(v))
		case string:
			p = append(p, Key(v))
		default:
			p = append(p, Key(fmt.Sprint(v)))
		}
	}
	return p
}

// child returns a new path with seg appended. The receiver is never shared
// with the result, so sibling paths cannot clobber each other.
func (p Path) child(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

var plainKey = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// String renders the path in JSONPath style, e.g. $.hosting[0].rewrites[2].run
// or $.extensions["storage-resize-images"] for keys that are not identifiers.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range p {
		switch {
		case seg.IsIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		case plainKey.MatchString(seg.Key):
			b.WriteByte('.')
			b.WriteString(seg.Key)
		default:
			b.WriteByte('[')
			b.WriteString(strconv.Quote(seg.Key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Equal reports whether two paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the path as an array of strings and integers,
// e.g. ["hosting", 0, "public"].
func (p Path) MarshalJSON() ([]byte, error) {
	steps := make([]any, len(p))
	for i, seg := range p {
		if seg.IsIndex {
			steps[i] = seg.Index
		} else {
			steps[i] = seg.Key
		}
	}
	return json.Marshal(steps)
}

// UnmarshalJSON decodes the array form produced by MarshalJSON.
func (p *Path) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode path: %w", err)
	}

	var out Path
	for i, r := range raw {
		var key string
		if err := json.Unmarshal(r, &key); err == nil {
			out = append(out, Key(key))
			continue
		}
		var idx int
		if err := json.Unmarshal(r, &idx); err != nil {
			return fmt.Errorf("path step %d is neither a key nor an index: %s", i, r)
		}
		out = append(out, Index(idx))
	}

	*p = out
	return nil
}
