// Package config provides loading and parsing of .firecheck.yaml
// configuration files.
//
// The file is itself checked with the schema package before it is decoded,
// so a typo in the configuration is reported with the same path-qualified
// diagnostics as a typo in firebase.json.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/firecheck/cache"
	"github.com/zero-day-ai/firecheck/check"
	"github.com/zero-day-ai/firecheck/parser"
	"github.com/zero-day-ai/firecheck/schema"
)

// FileNames lists the configuration file names searched for, in order.
var FileNames = []string{".firecheck.yaml", ".firecheck.yml"}

// ErrNotFound is returned by Load for a directory without a config file.
var ErrNotFound = errors.New("no .firecheck.yaml or .firecheck.yml found")

// Config represents a .firecheck.yaml configuration file.
type Config struct {
	Log LogConfig `yaml:"log"`

	// Output is the report format of the validate command: text or json.
	Output string `yaml:"output"`

	// Warnings keeps ambiguous-union warnings in reports.
	Warnings bool `yaml:"warnings"`

	// Checks are custom CEL checks run on structurally valid documents.
	Checks []check.Definition `yaml:"checks,omitempty"`

	Serve ServeConfig `yaml:"serve"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr string `yaml:"addr"`

	// GRPCHealthAddr enables a gRPC health service on this address.
	GRPCHealthAddr string `yaml:"grpc_health_addr,omitempty"`

	// MaxBodyBytes caps the size of a submitted document.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// ShutdownTimeout bounds graceful shutdown.
	// Format: Go duration string (e.g., "30s", "1m")
	ShutdownTimeout string `yaml:"shutdown_timeout"`

	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig selects and sizes the result cache.
type CacheConfig struct {
	// Backend is memory, redis or none.
	Backend string `yaml:"backend"`

	// Size is the entry limit of the memory backend.
	Size int `yaml:"size"`

	// TTL bounds how long results are kept.
	// Format: Go duration string (e.g., "10m")
	TTL string `yaml:"ttl"`

	// RedisURL is required by the redis backend. A rediss:// URL enables TLS.
	RedisURL string `yaml:"redis_url,omitempty"`

	// Redis network timeouts. Empty values use the client defaults.
	// Format: Go duration string (e.g., "5s")
	RedisDialTimeout  string `yaml:"redis_dial_timeout,omitempty"`
	RedisReadTimeout  string `yaml:"redis_read_timeout,omitempty"`
	RedisWriteTimeout string `yaml:"redis_write_timeout,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: "info", Format: "console"},
		Output:   "text",
		Warnings: true,
		Serve: ServeConfig{
			Addr:            ":8080",
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: "10s",
			Cache: CacheConfig{
				Backend: "memory",
				Size:    1024,
				TTL:     "10m",
			},
		},
	}
}

// GetShutdownTimeout parses the shutdown timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (s ServeConfig) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(s.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// GetTTL parses the TTL string and returns a duration.
// Returns the default value if not set or invalid.
func (c CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 10 * time.Minute
	}
	return d
}

// Load reads and parses a config file from the given path. If the path is
// a directory, it looks for .firecheck.yaml or .firecheck.yml in it.
// Environment overrides are applied to the result.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range FileNames {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, path)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	cfg.Path = configPath
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// LoadFromDir searches for a config file starting from the given directory
// and walking up to parent directories. When none is found it returns
// Default with environment overrides applied.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		cfg, err := Load(absDir)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			cfg := Default()
			cfg.ApplyEnv(os.LookupEnv)
			return cfg, nil
		}
		absDir = parent
	}
}

// Parse decodes configuration YAML on top of Default. The document is
// validated against Schema first; schema violations are returned as a
// *schema.ValidationError.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	value, err := parser.Decode(data, parser.FormatYAML)
	if errors.Is(err, parser.ErrEmptyDocument) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := schema.Validate(value, Schema()).Err(); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// RedisOptions returns the connection options of the redis backend.
func (c CacheConfig) RedisOptions() cache.RedisOptions {
	return cache.RedisOptions{
		URL:            c.RedisURL,
		TTL:            c.GetTTL(),
		ConnectTimeout: parseOptionalDuration(c.RedisDialTimeout),
		ReadTimeout:    parseOptionalDuration(c.RedisReadTimeout),
		WriteTimeout:   parseOptionalDuration(c.RedisWriteTimeout),
	}
}

// parseOptionalDuration returns zero for empty or invalid values.
func parseOptionalDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
