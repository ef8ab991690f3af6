// Package parser decodes configuration documents into the generic value tree
// understood by the schema package.
//
// JSON and YAML inputs are both supported. Decoded objects are always
// map[string]any and arrays are always []any, whatever the source format, so
// a YAML firebase config validates exactly like its JSON equivalent.
package parser
