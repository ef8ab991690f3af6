package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Validate checks value against node and returns every violation found.
//
// value is a decoded document tree: nil, strings, booleans, Go numeric types
// (or json.Number), []any (or any slice) and map[string]any (or any map with
// string keys). Validate never stops at the first problem, never mutates its
// inputs, and is safe for concurrent use with a shared node tree.
func Validate(value any, node Node) Result {
	out := walk(value, node, nil)
	return Result{Violations: out.violations, Warnings: out.warnings}
}

type outcome struct {
	violations []Violation
	warnings   []Violation
}

func (o *outcome) add(path Path, kind ViolationKind, format string, args ...any) {
	o.violations = append(o.violations, Violation{
		Path:    path,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (o *outcome) merge(child outcome) {
	o.violations = append(o.violations, child.violations...)
	o.warnings = append(o.warnings, child.warnings...)
}

func walk(value any, node Node, path Path) outcome {
	switch n := node.(type) {
	case *PrimitiveNode:
		return walkPrimitive(value, n, path)
	case *EnumNode:
		return walkEnum(value, n, path)
	case *ObjectNode:
		return walkObject(value, n, path)
	case *ArrayNode:
		return walkArray(value, n, path)
	case *UnionNode:
		return walkUnion(value, n, path)
	case *RecordNode:
		return walkRecord(value, n, path)
	default:
		// Unreachable: Node is sealed.
		panic(fmt.Sprintf("schema: unknown node type %T", node))
	}
}

func walkPrimitive(value any, n *PrimitiveNode, path Path) outcome {
	var out outcome
	if kindOf(value) != n.kind {
		out.add(path, TypeMismatch, "expected %s, got %s", n.kind, describeValue(value))
	}
	return out
}

func walkEnum(value any, n *EnumNode, path Path) outcome {
	var out outcome
	s, ok := value.(string)
	if !ok {
		out.add(path, TypeMismatch, "expected string, got %s", describeValue(value))
		return out
	}
	if !n.contains(s) {
		out.add(path, EnumMismatch, "value %q is not one of: %s", s, strings.Join(n.values, ", "))
	}
	return out
}

func walkObject(value any, n *ObjectNode, path Path) outcome {
	var out outcome
	obj, ok := asObject(value)
	if !ok {
		out.add(path, TypeMismatch, "expected %s, got %s", n.describe(), describeValue(value))
		return out
	}

	for _, f := range n.fields {
		if !f.Required {
			continue
		}
		if _, present := obj[f.Name]; !present {
			out.add(path.child(Key(f.Name)), MissingRequiredField, "required field %q is missing", f.Name)
		}
	}

	if !n.open {
		for _, key := range sortedKeys(obj) {
			if _, declared := n.index[key]; !declared {
				out.add(path.child(Key(key)), UnexpectedField, "unknown field %q", key)
			}
		}
	}

	for _, f := range n.fields {
		v, present := obj[f.Name]
		if !present {
			continue
		}
		out.merge(walk(v, f.Node, path.child(Key(f.Name))))
	}

	for _, names := range n.atLeastOne {
		if !anyPresent(obj, names) {
			out.add(path, AtLeastOneConstraintUnsatisfied, "at least one of %s must be set", quoteAll(names))
		}
	}

	return out
}

func walkArray(value any, n *ArrayNode, path Path) outcome {
	var out outcome
	items, ok := asArray(value)
	if !ok {
		out.add(path, TypeMismatch, "expected %s, got %s", n.describe(), describeValue(value))
		return out
	}
	for i, item := range items {
		out.merge(walk(item, n.elem, path.child(Index(i))))
	}
	return out
}

func walkUnion(value any, n *UnionNode, path Path) outcome {
	results := make([]outcome, len(n.alts))
	var matched []int
	for i, alt := range n.alts {
		results[i] = walk(value, alt, path)
		if len(results[i].violations) == 0 {
			matched = append(matched, i)
		}
	}

	if len(matched) > 0 {
		out := results[matched[0]]
		if len(matched) > 1 {
			names := make([]string, len(matched))
			for i, idx := range matched {
				names[i] = fmt.Sprintf("%d (%s)", idx, n.alts[idx].describe())
			}
			out.warnings = append(out.warnings, Violation{
				Path:        path,
				Kind:        MultipleUnionAlternativesMatched,
				Message:     fmt.Sprintf("value matches alternatives %s; using %d", strings.Join(names, ", "), matched[0]),
				Alternative: matched[0],
			})
		}
		return out
	}

	closest := 0
	for i := 1; i < len(results); i++ {
		if countViolations(results[i].violations) < countViolations(results[closest].violations) {
			closest = i
		}
	}

	var out outcome
	out.violations = append(out.violations, Violation{
		Path: path,
		Kind: NoUnionAlternativeMatched,
		Message: fmt.Sprintf("value does not match any of %d alternatives; closest is %s",
			len(n.alts), n.alts[closest].describe()),
		Alternative: closest,
		Detail:      results[closest].violations,
	})
	return out
}

func walkRecord(value any, n *RecordNode, path Path) outcome {
	var out outcome
	obj, ok := asObject(value)
	if !ok {
		out.add(path, TypeMismatch, "expected %s, got %s", n.describe(), describeValue(value))
		return out
	}
	for _, key := range sortedKeys(obj) {
		out.merge(walk(obj[key], n.value, path.child(Key(key))))
	}
	return out
}

// kindOf maps a decoded value onto the schema kinds. Values that are not
// scalars report KindObject or KindArray; nil and unsupported types report -1.
func kindOf(value any) Kind {
	switch value.(type) {
	case nil:
		return -1
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number:
		return KindNumber
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	}

	switch rv := reflect.ValueOf(value); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject
		}
	}
	return -1
}

// describeValue names the runtime kind of a decoded value for messages.
func describeValue(value any) string {
	if value == nil {
		return "null"
	}
	if k := kindOf(value); k >= 0 {
		return k.String()
	}
	return fmt.Sprintf("%T", value)
}

func asObject(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asArray(value any) ([]any, bool) {
	if s, ok := value.([]any); ok {
		return s, true
	}
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func anyPresent(obj map[string]any, names []string) bool {
	for _, name := range names {
		if _, ok := obj[name]; ok {
			return true
		}
	}
	return false
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
