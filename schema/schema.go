package schema

import "strings"

// Kind identifies the variant of a schema node.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindEnum
	KindObject
	KindArray
	KindUnion
	KindRecord
)

// String returns the lowercase name of the kind as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Node is an immutable description of an expected value shape.
//
// Node is sealed: the only implementations are the ones returned by this
// package's constructors. Because every constructor receives fully built
// children and no node exposes a mutator, a node tree is always acyclic.
type Node interface {
	// Kind reports which variant the node is.
	Kind() Kind

	// describe returns a short human readable name used in diagnostics.
	describe() string
}

// PrimitiveNode matches a single scalar kind: string, number, or boolean.
type PrimitiveNode struct {
	kind Kind
}

func (p *PrimitiveNode) Kind() Kind { return p.kind }

func (p *PrimitiveNode) describe() string { return p.kind.String() }

var (
	stringNode = &PrimitiveNode{kind: KindString}
	numberNode = &PrimitiveNode{kind: KindNumber}
	boolNode   = &PrimitiveNode{kind: KindBoolean}
)

// String returns the node matching string values.
func String() *PrimitiveNode { return stringNode }

// Number returns the node matching numeric values of any Go numeric type.
func Number() *PrimitiveNode { return numberNode }

// Bool returns the node matching boolean values.
func Bool() *PrimitiveNode { return boolNode }

// EnumNode matches one string out of a fixed set of literals. Create it
// with Enum.
type EnumNode struct {
	values []string
	set    map[string]struct{}
}

// Enum creates a node that accepts exactly the given string literals.
func Enum(values ...string) (*EnumNode, error) {
	const op = "Enum"
	if len(values) == 0 {
		return nil, defErr(op, "", ErrEmptyEnum)
	}

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := set[v]; dup {
			return nil, defErr(op, v, ErrDuplicateEnumValue)
		}
		set[v] = struct{}{}
	}

	return &EnumNode{
		values: append([]string(nil), values...),
		set:    set,
	}, nil
}

// MustEnum is like Enum but panics on an invalid definition.
func MustEnum(values ...string) *EnumNode {
	return must(Enum(values...))
}

func (e *EnumNode) Kind() Kind { return KindEnum }

func (e *EnumNode) describe() string { return "one of " + strings.Join(e.values, ", ") }

// Values returns a copy of the accepted literals in declaration order.
func (e *EnumNode) Values() []string {
	return append([]string(nil), e.values...)
}

func (e *EnumNode) contains(v string) bool {
	_, ok := e.set[v]
	return ok
}

// Field declares a named member of an object node.
type Field struct {
	Name        string
	Node        Node
	Required    bool
	Description string
}

// Required declares a field that must be present.
func Required(name string, node Node) Field {
	return Field{Name: name, Node: node, Required: true}
}

// Optional declares a field that may be absent.
func Optional(name string, node Node) Field {
	return Field{Name: name, Node: node}
}

// WithDescription returns a copy of the field carrying the given description.
// It does not modify the receiver.
func (f Field) WithDescription(desc string) Field {
	f.Description = desc
	return f
}

// ObjectOption configures an object node at construction time.
type ObjectOption func(*objectConfig)

type objectConfig struct {
	open       bool
	title      string
	atLeastOne [][]string
}

// AllowUnknownFields marks the object as open: undeclared keys are accepted
// and left unvalidated.
func AllowUnknownFields() ObjectOption {
	return func(c *objectConfig) {
		c.open = true
	}
}

// RequireAtLeastOne adds a constraint that at least one of the named fields
// is present. Every name must be a declared field of the object. The option
// may be given several times to add independent constraints.
func RequireAtLeastOne(names ...string) ObjectOption {
	return func(c *objectConfig) {
		c.atLeastOne = append(c.atLeastOne, append([]string(nil), names...))
	}
}

// Title names the object. Titles identify union alternatives in diagnostics
// and are emitted as the JSON Schema title.
func Title(title string) ObjectOption {
	return func(c *objectConfig) {
		c.title = title
	}
}

// ObjectNode matches a string-keyed mapping with a fixed set of named fields.
// Create it with Object.
type ObjectNode struct {
	fields     []Field
	index      map[string]int
	open       bool
	title      string
	atLeastOne [][]string
}

// Object creates an object node. Fields are validated in the order given.
func Object(fields []Field, opts ...ObjectOption) (*ObjectNode, error) {
	const op = "Object"

	var cfg objectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, defErr(op, "", ErrEmptyFieldName)
		}
		if isNilNode(f.Node) {
			return nil, defErr(op, f.Name, ErrNilNode)
		}
		if _, dup := index[f.Name]; dup {
			return nil, defErr(op, f.Name, ErrDuplicateField)
		}
		index[f.Name] = i
	}

	for _, names := range cfg.atLeastOne {
		if len(names) == 0 {
			return nil, defErr(op, "", ErrEmptyConstraint)
		}
		for _, name := range names {
			if _, ok := index[name]; !ok {
				return nil, defErr(op, name, ErrUndeclaredConstraintField)
			}
		}
	}

	return &ObjectNode{
		fields:     append([]Field(nil), fields...),
		index:      index,
		open:       cfg.open,
		title:      cfg.title,
		atLeastOne: cfg.atLeastOne,
	}, nil
}

// MustObject is like Object but panics on an invalid definition.
func MustObject(fields []Field, opts ...ObjectOption) *ObjectNode {
	return must(Object(fields, opts...))
}

func (o *ObjectNode) Kind() Kind { return KindObject }

func (o *ObjectNode) describe() string {
	if o.title != "" {
		return o.title
	}
	return "object"
}

// Fields returns a copy of the declared fields in declaration order.
func (o *ObjectNode) Fields() []Field {
	return append([]Field(nil), o.fields...)
}

// Field looks up a declared field by name.
func (o *ObjectNode) Field(name string) (Field, bool) {
	i, ok := o.index[name]
	if !ok {
		return Field{}, false
	}
	return o.fields[i], true
}

// Open reports whether undeclared keys are accepted.
func (o *ObjectNode) Open() bool { return o.open }

// Title returns the object's title, or "" when untitled.
func (o *ObjectNode) Title() string { return o.title }

// AtLeastOne returns a copy of the RequireAtLeastOne constraints.
func (o *ObjectNode) AtLeastOne() [][]string {
	out := make([][]string, len(o.atLeastOne))
	for i, names := range o.atLeastOne {
		out[i] = append([]string(nil), names...)
	}
	return out
}

// ArrayNode matches a homogeneous sequence. Create it with ArrayOf; the
// zero value is not usable.
type ArrayNode struct {
	elem Node
}

// ArrayOf creates a node matching sequences whose elements all match elem.
func ArrayOf(elem Node) (*ArrayNode, error) {
	if isNilNode(elem) {
		return nil, defErr("ArrayOf", "", ErrNilNode)
	}
	return &ArrayNode{elem: elem}, nil
}

// MustArrayOf is like ArrayOf but panics on an invalid definition.
func MustArrayOf(elem Node) *ArrayNode {
	return must(ArrayOf(elem))
}

func (a *ArrayNode) Kind() Kind { return KindArray }

func (a *ArrayNode) describe() string { return "array of " + a.elem.describe() }

// Elem returns the element node.
func (a *ArrayNode) Elem() Node { return a.elem }

// UnionNode matches a value against an ordered list of alternatives.
// Create it with Union; the zero value is not usable.
type UnionNode struct {
	alts []Node
}

// Union creates a node that accepts a value matching one of alts. The order
// of alts decides ties, both when several alternatives match and when the
// closest failing alternative is chosen for diagnostics.
func Union(alts ...Node) (*UnionNode, error) {
	const op = "Union"
	if len(alts) == 0 {
		return nil, defErr(op, "", ErrEmptyUnion)
	}
	for _, alt := range alts {
		if isNilNode(alt) {
			return nil, defErr(op, "", ErrNilNode)
		}
	}
	return &UnionNode{alts: append([]Node(nil), alts...)}, nil
}

// MustUnion is like Union but panics on an invalid definition.
func MustUnion(alts ...Node) *UnionNode {
	return must(Union(alts...))
}

func (u *UnionNode) Kind() Kind { return KindUnion }

func (u *UnionNode) describe() string {
	names := make([]string, len(u.alts))
	for i, alt := range u.alts {
		names[i] = alt.describe()
	}
	return strings.Join(names, " | ")
}

// Alternatives returns a copy of the alternatives in declaration order.
func (u *UnionNode) Alternatives() []Node {
	return append([]Node(nil), u.alts...)
}

// RecordNode matches an open string-keyed mapping with uniform values.
// Create it with RecordOf; the zero value is not usable.
type RecordNode struct {
	value Node
}

// RecordOf creates a node matching mappings whose values all match value.
// Keys are unconstrained.
func RecordOf(value Node) (*RecordNode, error) {
	if isNilNode(value) {
		return nil, defErr("RecordOf", "", ErrNilNode)
	}
	return &RecordNode{value: value}, nil
}

// MustRecordOf is like RecordOf but panics on an invalid definition.
func MustRecordOf(value Node) *RecordNode {
	return must(RecordOf(value))
}

func (r *RecordNode) Kind() Kind { return KindRecord }

func (r *RecordNode) describe() string { return "record of " + r.value.describe() }

// Value returns the node every record value must match.
func (r *RecordNode) Value() Node { return r.value }

// Describe returns the short human readable name of a node, such as
// "string", "array of HostingTarget" or an object's title.
func Describe(n Node) string {
	if isNilNode(n) {
		return "nothing"
	}
	return n.describe()
}

// isNilNode reports whether n is nil or a nil pointer to one of the node
// types, such as the result of a failed constructor call.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *PrimitiveNode:
		return v == nil
	case *EnumNode:
		return v == nil
	case *ObjectNode:
		return v == nil
	case *ArrayNode:
		return v == nil
	case *UnionNode:
		return v == nil
	case *RecordNode:
		return v == nil
	default:
		return false
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
