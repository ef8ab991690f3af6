// Package firebase defines the schema of a Firebase project configuration
// (firebase.json) as a schema node tree.
//
// The tree is built once at package initialization and shared by every
// caller; it is never mutated afterwards.
package firebase

import (
	"fmt"

	"github.com/zero-day-ai/firecheck/schema"
)

// Runtimes lists the accepted values of functions.runtime.
var Runtimes = []string{"nodejs10", "nodejs12", "nodejs14", "nodejs16"}

// Section names in the order they are declared on the root object.
const (
	SectionDatabase     = "database"
	SectionFirestore    = "firestore"
	SectionFunctions    = "functions"
	SectionHosting      = "hosting"
	SectionStorage      = "storage"
	SectionRemoteConfig = "remoteconfig"
	SectionEmulators    = "emulators"
	SectionExtensions   = "extensions"
)

var (
	root     *schema.ObjectNode
	sections map[string]schema.Node
	order    []string
)

func init() {
	defs := []struct {
		name string
		node schema.Node
		desc string
	}{
		{SectionDatabase, databaseNode(), "Realtime Database: one rules file for the default instance, or a list of instance or target rules files."},
		{SectionFirestore, firestoreNode(), "Cloud Firestore rules and index definitions."},
		{SectionFunctions, functionsNode(), "Cloud Functions source directory, runtime and lifecycle hooks."},
		{SectionHosting, hostingNode(), "Firebase Hosting: one site, or a list of sites addressed by site name or deploy target."},
		{SectionStorage, storageNode(), "Cloud Storage: shared rules for every bucket, or a list of per-bucket rules."},
		{SectionRemoteConfig, remoteConfigNode(), "Remote Config template."},
		{SectionEmulators, emulatorsNode(), "Local Emulator Suite settings. Defaults apply when absent."},
		{SectionExtensions, extensionsNode(), "Extension instances mapped to extension references."},
	}

	sections = make(map[string]schema.Node, len(defs))
	fields := make([]schema.Field, 0, len(defs))
	for _, d := range defs {
		sections[d.name] = d.node
		order = append(order, d.name)
		fields = append(fields, schema.Optional(d.name, d.node).WithDescription(d.desc))
	}

	root = schema.MustObject(fields, schema.Title("FirebaseConfig"))
}

// Schema returns the root node describing a whole firebase.json document.
func Schema() *schema.ObjectNode {
	return root
}

// Section returns the node for one top-level section, e.g. "hosting".
func Section(name string) (schema.Node, bool) {
	n, ok := sections[name]
	return n, ok
}

// Sections returns the top-level section names in declaration order.
func Sections() []string {
	return append([]string(nil), order...)
}

// Validate checks a decoded firebase.json document.
func Validate(value any) schema.Result {
	return schema.Validate(value, root)
}

// JSONSchema renders the whole configuration schema, or a single section
// when section is not empty, as an indented JSON Schema document.
func JSONSchema(section string) ([]byte, error) {
	if section == "" {
		return schema.MarshalJSONSchema(root, "firebase.json")
	}
	n, ok := sections[section]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	return schema.MarshalJSONSchema(n, "firebase.json "+section)
}

// hook is a lifecycle command or list of commands.
func hook() schema.Node {
	return schema.MustUnion(schema.String(), schema.MustArrayOf(schema.String()))
}

// deployable appends the predeploy and postdeploy hooks every deployable
// section accepts.
func deployable(fields ...schema.Field) []schema.Field {
	return append(fields,
		schema.Optional("predeploy", hook()).
			WithDescription("Commands run in order before deploying. A failure aborts the deploy and skips postdeploy."),
		schema.Optional("postdeploy", hook()).
			WithDescription("Commands run after a successful predeploy and deploy."),
	)
}

func stringList() schema.Node {
	return schema.MustArrayOf(schema.String())
}
