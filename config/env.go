package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvLogLevel     = "FIRECHECK_LOG_LEVEL"
	EnvLogFormat    = "FIRECHECK_LOG_FORMAT"
	EnvOutput       = "FIRECHECK_OUTPUT"
	EnvAddr         = "FIRECHECK_ADDR"
	EnvCacheBackend = "FIRECHECK_CACHE_BACKEND"
	EnvRedisURL     = "FIRECHECK_REDIS_URL"
)

// LoadDotEnv loads variables from .env files (".env" when none are given)
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides settings from the environment. lookup is usually
// os.LookupEnv; empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFormat, &c.Log.Format},
		{EnvOutput, &c.Output},
		{EnvAddr, &c.Serve.Addr},
		{EnvCacheBackend, &c.Serve.Cache.Backend},
		{EnvRedisURL, &c.Serve.Cache.RedisURL},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}
