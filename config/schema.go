package config

import (
	"sync"

	"github.com/zero-day-ai/firecheck/schema"
)

var (
	configSchema     *schema.ObjectNode
	configSchemaOnce sync.Once
)

// Schema returns the schema .firecheck.yaml files are validated against.
func Schema() *schema.ObjectNode {
	configSchemaOnce.Do(func() {
		configSchema = buildSchema()
	})
	return configSchema
}

func buildSchema() *schema.ObjectNode {
	log := schema.MustObject([]schema.Field{
		schema.Optional("level", schema.MustEnum("trace", "debug", "info", "warn", "error", "disabled")),
		schema.Optional("format", schema.MustEnum("console", "json")),
	}, schema.Title("LogConfig"))

	checkDef := schema.MustObject([]schema.Field{
		schema.Required("name", schema.String()),
		schema.Required("expr", schema.String()).
			WithDescription("CEL expression over the variable config; must evaluate to bool."),
		schema.Optional("message", schema.String()),
	}, schema.Title("Check"))

	cacheCfg := schema.MustObject([]schema.Field{
		schema.Optional("backend", schema.MustEnum("memory", "redis", "none")),
		schema.Optional("size", schema.Number()),
		schema.Optional("ttl", schema.String()),
		schema.Optional("redis_url", schema.String()),
		schema.Optional("redis_dial_timeout", schema.String()),
		schema.Optional("redis_read_timeout", schema.String()),
		schema.Optional("redis_write_timeout", schema.String()),
	}, schema.Title("CacheConfig"))

	serve := schema.MustObject([]schema.Field{
		schema.Optional("addr", schema.String()),
		schema.Optional("grpc_health_addr", schema.String()),
		schema.Optional("max_body_bytes", schema.Number()),
		schema.Optional("shutdown_timeout", schema.String()),
		schema.Optional("cache", cacheCfg),
	}, schema.Title("ServeConfig"))

	return schema.MustObject([]schema.Field{
		schema.Optional("log", log),
		schema.Optional("output", schema.MustEnum("text", "json")),
		schema.Optional("warnings", schema.Bool()),
		schema.Optional("checks", schema.MustArrayOf(checkDef)),
		schema.Optional("serve", serve),
	}, schema.Title("FirecheckConfig"))
}
