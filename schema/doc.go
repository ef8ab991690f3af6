// Package schema describes the expected shape of decoded configuration
// documents and validates values against it.
//
// A schema is a tree of immutable nodes built once, usually at package init,
// and reused for any number of concurrent validations.
//
// # Building Schemas
//
// Scalars:
//
//	name := schema.String()
//	port := schema.Number()
//	on := schema.Bool()
//	runtime := schema.MustEnum("nodejs14", "nodejs16")
//
// Objects are closed by default. Fields are validated in declaration order:
//
//	target := schema.MustObject([]schema.Field{
//		schema.Required("rules", schema.String()),
//		schema.Optional("instance", schema.String()),
//		schema.Optional("target", schema.String()),
//	}, schema.RequireAtLeastOne("instance", "target"), schema.Title("DatabaseTarget"))
//
// Arrays, unions and open records:
//
//	targets := schema.MustArrayOf(target)
//	database := schema.MustUnion(single, targets)
//	extensions := schema.MustRecordOf(schema.String())
//
// Every constructor returns a *DefinitionError for a malformed definition
// (an empty union, a nil child, a constraint naming an undeclared field).
// The Must variants panic instead and are meant for static definitions.
//
// # Validation
//
//	result := schema.Validate(value, database)
//	if !result.Valid() {
//		for _, v := range result.Violations {
//			fmt.Println(v.Path, v.Kind, v.Message)
//		}
//	}
//
// Validation is exhaustive: every mismatch becomes its own Violation. When no
// union alternative matches, a single NoUnionAlternativeMatched violation is
// reported whose Detail holds the violations of the closest alternative. When
// several alternatives match, the earliest one wins and a
// MultipleUnionAlternativesMatched warning is added to Result.Warnings.
//
// # JSON Schema
//
// JSONSchema and MarshalJSONSchema render a node tree as a Draft-07 JSON
// Schema document for editors and other tooling.
package schema
