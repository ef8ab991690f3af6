// Package firecheck validates Firebase project configuration files
// (firebase.json) against a structural schema and reports every problem at
// once, each with the path to the offending value.
//
// # Core Concepts
//
// The module is organized around a few packages:
//
//   - schema: schema nodes (primitives, enums, objects, arrays, unions,
//     records) and the validator that walks a decoded document against them
//   - firebase: the firebase.json schema, built from schema nodes
//   - parser: JSON and YAML decoding into the value tree the validator expects
//   - check: user-defined CEL expressions run on structurally valid documents
//   - cache: in-memory and Redis stores for results keyed by content hash
//
// This package ties them together in a Checker.
//
// # Getting Started
//
//	checker, err := firecheck.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	data, _ := os.ReadFile("firebase.json")
//	report, err := checker.Check(ctx, firecheck.Document{
//		Name:   "firebase.json",
//		Data:   data,
//		Format: firecheck.FormatJSON,
//	})
//	if err != nil {
//		// The document is not well-formed JSON.
//	}
//	for _, v := range report.Violations {
//		fmt.Println(v)
//	}
//
// # Error Handling
//
// Schema violations are data, not errors: Check returns a Report with
// Valid == false. Errors are reserved for documents that cannot be decoded
// and for misconfiguration, and are returned as *Error values wrapping the
// package sentinels:
//
//	if errors.Is(err, firecheck.ErrInvalidDocument) {
//		// Handle a syntax error
//	}
//
// # Observability
//
// WithTracer records a "firecheck.check" span per document and WithMeter
// records the firecheck.checks, firecheck.violations and
// firecheck.check.duration instruments. WithLogger takes a zerolog.Logger.
//
// # Thread Safety
//
// A Checker and the schema trees it uses are immutable after construction
// and safe for concurrent use.
package firecheck
