package schema

import (
	"errors"
	"testing"
)

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name string
		node *PrimitiveNode
		want Kind
	}{
		{name: "string", node: String(), want: KindString},
		{name: "number", node: Number(), want: KindNumber},
		{name: "boolean", node: Bool(), want: KindBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.node.Kind() != tt.want {
				t.Errorf("expected kind %v, got %v", tt.want, tt.node.Kind())
			}
			if Describe(tt.node) != tt.name {
				t.Errorf("expected description %q, got %q", tt.name, Describe(tt.node))
			}
		})
	}
}

func TestEnum(t *testing.T) {
	e, err := Enum("nodejs14", "nodejs16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Kind() != KindEnum {
		t.Errorf("expected KindEnum, got %v", e.Kind())
	}

	values := e.Values()
	values[0] = "mutated"
	if e.Values()[0] != "nodejs14" {
		t.Error("Values must return a copy")
	}

	if _, err := Enum(); !errors.Is(err, ErrEmptyEnum) {
		t.Errorf("expected ErrEmptyEnum, got %v", err)
	}
	if _, err := Enum("a", "b", "a"); !errors.Is(err, ErrDuplicateEnumValue) {
		t.Errorf("expected ErrDuplicateEnumValue, got %v", err)
	}
}

func TestObjectDefinitionErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		opts   []ObjectOption
		want   error
	}{
		{
			name:   "empty field name",
			fields: []Field{Required("", String())},
			want:   ErrEmptyFieldName,
		},
		{
			name:   "nil field node",
			fields: []Field{Optional("rules", nil)},
			want:   ErrNilNode,
		},
		{
			name:   "duplicate field",
			fields: []Field{Optional("rules", String()), Required("rules", String())},
			want:   ErrDuplicateField,
		},
		{
			name:   "empty at-least-one constraint",
			fields: []Field{Optional("site", String())},
			opts:   []ObjectOption{RequireAtLeastOne()},
			want:   ErrEmptyConstraint,
		},
		{
			name:   "constraint names undeclared field",
			fields: []Field{Optional("site", String())},
			opts:   []ObjectOption{RequireAtLeastOne("site", "target")},
			want:   ErrUndeclaredConstraintField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Object(tt.fields, tt.opts...)
			if node != nil {
				t.Error("expected nil node on error")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			var defErr *DefinitionError
			if !errors.As(err, &defErr) {
				t.Fatalf("expected *DefinitionError, got %T", err)
			}
			if defErr.Op != "Object" {
				t.Errorf("expected Op %q, got %q", "Object", defErr.Op)
			}
		})
	}
}

func TestObjectAccessors(t *testing.T) {
	obj := MustObject([]Field{
		Required("rules", String()).WithDescription("rules file"),
		Optional("instance", String()),
		Optional("target", String()),
	}, RequireAtLeastOne("instance", "target"), Title("DatabaseTarget"))

	if obj.Title() != "DatabaseTarget" || Describe(obj) != "DatabaseTarget" {
		t.Errorf("unexpected title %q", obj.Title())
	}
	if obj.Open() {
		t.Error("objects must be closed by default")
	}

	f, ok := obj.Field("rules")
	if !ok || !f.Required || f.Description != "rules file" {
		t.Errorf("unexpected field %+v", f)
	}
	if _, ok := obj.Field("missing"); ok {
		t.Error("expected undeclared field lookup to fail")
	}

	constraints := obj.AtLeastOne()
	if len(constraints) != 1 || len(constraints[0]) != 2 {
		t.Fatalf("unexpected constraints %v", constraints)
	}
	constraints[0][0] = "mutated"
	if obj.AtLeastOne()[0][0] != "instance" {
		t.Error("AtLeastOne must return a copy")
	}

	open := MustObject(nil, AllowUnknownFields())
	if !open.Open() {
		t.Error("expected open object")
	}
}

func TestFieldWithDescriptionDoesNotMutate(t *testing.T) {
	f := Optional("public", String())
	described := f.WithDescription("upload directory")

	if f.Description != "" {
		t.Errorf("receiver was modified: %q", f.Description)
	}
	if described.Description != "upload directory" {
		t.Errorf("expected description, got %q", described.Description)
	}
}

func TestUnionDefinitionErrors(t *testing.T) {
	if _, err := Union(); !errors.Is(err, ErrEmptyUnion) {
		t.Errorf("expected ErrEmptyUnion, got %v", err)
	}
	if _, err := Union(String(), nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("expected ErrNilNode, got %v", err)
	}

	u, err := Union(String(), Number())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(u.Alternatives()) != 2 {
		t.Errorf("expected 2 alternatives, got %d", len(u.Alternatives()))
	}
	if Describe(u) != "string | number" {
		t.Errorf("unexpected description %q", Describe(u))
	}
}

func TestArrayAndRecordDefinitionErrors(t *testing.T) {
	if _, err := ArrayOf(nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("expected ErrNilNode from ArrayOf, got %v", err)
	}
	if _, err := RecordOf(nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("expected ErrNilNode from RecordOf, got %v", err)
	}

	arr := MustArrayOf(String())
	if arr.Elem() != String() || Describe(arr) != "array of string" {
		t.Errorf("unexpected array node %s", Describe(arr))
	}
	rec := MustRecordOf(String())
	if rec.Value() != String() || Describe(rec) != "record of string" {
		t.Errorf("unexpected record node %s", Describe(rec))
	}
}

func TestConstructorsRejectTypedNilChildren(t *testing.T) {
	failed, err := Object([]Field{{Name: ""}})
	if err == nil || failed != nil {
		t.Fatalf("expected a failed Object, got %v, %v", failed, err)
	}
	var nilUnion *UnionNode
	var nilEnum *EnumNode

	tests := []struct {
		name  string
		build func() (Node, error)
	}{
		{name: "ArrayOf", build: func() (Node, error) { return ArrayOf(failed) }},
		{name: "RecordOf", build: func() (Node, error) { return RecordOf(nilUnion) }},
		{name: "Union", build: func() (Node, error) { return Union(String(), failed) }},
		{name: "Object field", build: func() (Node, error) { return Object([]Field{Optional("x", failed)}) }},
		{name: "Object enum field", build: func() (Node, error) { return Object([]Field{Required("y", nilEnum)}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tt.build()
			if !errors.Is(err, ErrNilNode) {
				t.Fatalf("expected ErrNilNode, got %v", err)
			}
			if !isNilNode(node) {
				t.Errorf("expected no node on error, got %s", Describe(node))
			}
		})
	}

	if Describe(failed) != "nothing" {
		t.Errorf("unexpected description %q", Describe(failed))
	}
}

func TestMustPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{name: "MustUnion", fn: func() { MustUnion() }},
		{name: "MustEnum", fn: func() { MustEnum() }},
		{name: "MustArrayOf", fn: func() { MustArrayOf(nil) }},
		{name: "MustRecordOf", fn: func() { MustRecordOf(nil) }},
		{name: "MustObject", fn: func() { MustObject([]Field{Required("", String())}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if _, ok := r.(*DefinitionError); !ok {
					t.Errorf("expected *DefinitionError panic value, got %T", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestDefinitionErrorMessage(t *testing.T) {
	_, err := Object([]Field{Optional("site", String())}, RequireAtLeastOne("target"))
	want := `schema: Object: "target": at-least-one constraint names an undeclared field`
	if err == nil || err.Error() != want {
		t.Errorf("expected %q, got %v", want, err)
	}

	_, err = Union()
	want = "schema: Union: union requires at least one alternative"
	if err == nil || err.Error() != want {
		t.Errorf("expected %q, got %v", want, err)
	}
}

func TestKindString(t *testing.T) {
	if Kind(99).String() != "unknown" {
		t.Errorf("expected unknown, got %q", Kind(99).String())
	}
	if KindRecord.String() != "record" {
		t.Errorf("expected record, got %q", KindRecord.String())
	}
}
