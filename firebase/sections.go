package firebase

import "github.com/zero-day-ai/firecheck/schema"

func databaseNode() schema.Node {
	single := schema.MustObject(deployable(
		schema.Required("rules", schema.String()).
			WithDescription("File holding the Realtime Database security rules."),
	), schema.Title("DatabaseSingle"))

	target := schema.MustObject(deployable(
		schema.Required("rules", schema.String()).
			WithDescription("File holding the Realtime Database security rules."),
		schema.Optional("instance", schema.String()).
			WithDescription("Database instance the rules apply to."),
		schema.Optional("target", schema.String()).
			WithDescription("Deploy target the rules apply to."),
	), schema.RequireAtLeastOne("instance", "target"), schema.Title("DatabaseTarget"))

	return schema.MustUnion(single, schema.MustArrayOf(target))
}

func firestoreNode() schema.Node {
	return schema.MustObject(deployable(
		schema.Optional("rules", schema.String()).
			WithDescription("File holding the Firestore security rules."),
		schema.Optional("indexes", schema.String()).
			WithDescription("File holding the Firestore index definitions."),
	), schema.Title("FirestoreConfig"))
}

func functionsNode() schema.Node {
	return schema.MustObject(deployable(
		schema.Optional("source", schema.String()).
			WithDescription(`Functions source directory. Defaults to "functions".`),
		schema.Optional("ignore", stringList()).
			WithDescription("Files to leave out of the functions upload."),
		schema.Optional("runtime", schema.MustEnum(Runtimes...)).
			WithDescription("Cloud Functions runtime."),
	), schema.Title("FunctionsConfig"))
}

func storageNode() schema.Node {
	single := schema.MustObject(deployable(
		schema.Required("rules", schema.String()).
			WithDescription("File holding the Storage security rules."),
		schema.Optional("target", schema.String()).
			WithDescription("Deploy target the rules apply to."),
	), schema.Title("StorageSingle"))

	target := schema.MustObject(deployable(
		schema.Required("rules", schema.String()).
			WithDescription("File holding the Storage security rules."),
		schema.Required("bucket", schema.String()).
			WithDescription("Bucket the rules apply to."),
		schema.Optional("target", schema.String()).
			WithDescription("Deploy target the rules apply to."),
	), schema.Title("StorageTarget"))

	return schema.MustUnion(single, schema.MustArrayOf(target))
}

func remoteConfigNode() schema.Node {
	return schema.MustObject(deployable(
		schema.Required("template", schema.String()).
			WithDescription("Remote Config template file."),
	), schema.Title("RemoteConfigConfig"))
}

// emulatorNames lists the emulators that only take a host and a port.
var emulatorNames = []string{
	"auth", "database", "firestore", "functions", "hosting",
	"pubsub", "storage", "logging", "hub",
}

func emulatorsNode() schema.Node {
	fields := make([]schema.Field, 0, len(emulatorNames)+1)
	for _, name := range emulatorNames {
		endpoint := schema.MustObject([]schema.Field{
			schema.Optional("host", schema.String()),
			schema.Optional("port", schema.Number()),
		}, schema.Title("EmulatorEndpoint"))
		fields = append(fields, schema.Optional(name, endpoint))
	}

	ui := schema.MustObject([]schema.Field{
		schema.Optional("enabled", schema.Bool()).
			WithDescription("Whether the Emulator UI starts. Defaults to true."),
		schema.Optional("host", schema.String()),
		schema.Optional("port", schema.MustUnion(schema.Number(), schema.String())),
	}, schema.Title("EmulatorUI"))
	fields = append(fields, schema.Optional("ui", ui))

	return schema.MustObject(fields, schema.Title("EmulatorsConfig"))
}

func extensionsNode() schema.Node {
	return schema.MustRecordOf(schema.String())
}
