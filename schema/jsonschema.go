package schema

import (
	"encoding/json"
	"fmt"
)

// DraftURI is the JSON Schema dialect emitted by JSONSchema.
const DraftURI = "http://json-schema.org/draft-07/schema#"

// Document is a JSON Schema (Draft-07) rendering of a node tree. Only the
// keywords needed to express this package's node kinds are modeled.
type Document struct {
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`

	Enum []string `json:"enum,omitempty"`

	Properties           map[string]*Document `json:"properties,omitempty"`
	Required             []string             `json:"required,omitempty"`
	AdditionalProperties any                  `json:"additionalProperties,omitempty"`

	Items *Document `json:"items,omitempty"`

	OneOf []*Document `json:"oneOf,omitempty"`
	AnyOf []*Document `json:"anyOf,omitempty"`
	AllOf []*Document `json:"allOf,omitempty"`
}

// JSONSchema renders node as a JSON Schema document.
func JSONSchema(node Node) *Document {
	return toDocument(node)
}

// MarshalJSONSchema renders node as an indented, self-describing JSON Schema
// document with the given title.
func MarshalJSONSchema(node Node, title string) ([]byte, error) {
	doc := toDocument(node)
	doc.Schema = DraftURI
	if title != "" {
		doc.Title = title
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return data, nil
}

func toDocument(node Node) *Document {
	switch n := node.(type) {
	case *PrimitiveNode:
		return &Document{Type: n.kind.String()}

	case *EnumNode:
		return &Document{Type: "string", Enum: n.Values()}

	case *ObjectNode:
		doc := &Document{
			Type:       "object",
			Title:      n.title,
			Properties: make(map[string]*Document, len(n.fields)),
		}
		for _, f := range n.fields {
			prop := toDocument(f.Node)
			if f.Description != "" {
				prop.Description = f.Description
			}
			doc.Properties[f.Name] = prop
			if f.Required {
				doc.Required = append(doc.Required, f.Name)
			}
		}
		if !n.open {
			doc.AdditionalProperties = false
		}

		constraints := make([]*Document, 0, len(n.atLeastOne))
		for _, names := range n.atLeastOne {
			c := &Document{}
			for _, name := range names {
				c.AnyOf = append(c.AnyOf, &Document{Required: []string{name}})
			}
			constraints = append(constraints, c)
		}
		switch len(constraints) {
		case 0:
		case 1:
			doc.AnyOf = constraints[0].AnyOf
		default:
			doc.AllOf = constraints
		}
		return doc

	case *ArrayNode:
		return &Document{Type: "array", Items: toDocument(n.elem)}

	case *UnionNode:
		doc := &Document{}
		for _, alt := range n.alts {
			doc.OneOf = append(doc.OneOf, toDocument(alt))
		}
		return doc

	case *RecordNode:
		return &Document{Type: "object", AdditionalProperties: toDocument(n.value)}

	default:
		return &Document{}
	}
}
