package schema_test

import (
	"fmt"

	"github.com/zero-day-ai/firecheck/schema"
)

// Example validates a storage section against a union of a single rules file
// and an array of per-bucket targets.
func Example() {
	single := schema.MustObject([]schema.Field{
		schema.Required("rules", schema.String()),
		schema.Optional("target", schema.String()),
	}, schema.Title("StorageSingle"))

	target := schema.MustObject([]schema.Field{
		schema.Required("rules", schema.String()),
		schema.Required("bucket", schema.String()),
	}, schema.Title("StorageTarget"))

	storage := schema.MustUnion(single, schema.MustArrayOf(target))

	res := schema.Validate(map[string]any{"rules": "storage.rules"}, storage)
	fmt.Println(res.Valid())

	res = schema.Validate([]any{map[string]any{"rules": "storage.rules"}}, storage)
	for _, v := range res.Violations {
		fmt.Println(v.Path, v.Kind)
		for _, d := range v.Detail {
			fmt.Println("  ", d.Path, d.Kind)
		}
	}

	// Output:
	// true
	// $ no_union_alternative_matched
	//    $ type_mismatch
}

// ExampleRequireAtLeastOne shows the at-least-one constraint on an object.
func ExampleRequireAtLeastOne() {
	target := schema.MustObject([]schema.Field{
		schema.Required("rules", schema.String()),
		schema.Optional("instance", schema.String()),
		schema.Optional("target", schema.String()),
	}, schema.RequireAtLeastOne("instance", "target"))

	res := schema.Validate(map[string]any{"rules": "db.rules.json"}, target)
	fmt.Println(res.Violations[0].Message)

	// Output: at least one of "instance", "target" must be set
}

// ExampleRecordOf shows an open record accepting arbitrary keys.
func ExampleRecordOf() {
	extensions := schema.MustRecordOf(schema.String())

	res := schema.Validate(map[string]any{
		"firestore-send-email": "firebase/firestore-send-email@0.1.9",
		"broken":               42,
	}, extensions)

	for _, v := range res.Violations {
		fmt.Println(v)
	}

	// Output: $.broken: type_mismatch: expected string, got number
}
