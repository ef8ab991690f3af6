package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/zero-day-ai/firecheck/cache"
	"github.com/zero-day-ai/firecheck/check"
	"github.com/zero-day-ai/firecheck/internal/logging"
)

// Validate checks values the schema cannot: enumerations changed by
// environment overrides, durations, limits and check expressions. Every
// problem is reported.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if c.Output != "text" && c.Output != "json" {
		errs = append(errs, fmt.Errorf("output must be text or json, got %q", c.Output))
	}

	if c.Serve.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("serve.max_body_bytes must be positive, got %d", c.Serve.MaxBodyBytes))
	}
	if err := checkDuration("serve.shutdown_timeout", c.Serve.ShutdownTimeout); err != nil {
		errs = append(errs, err)
	}

	cc := c.Serve.Cache
	switch cc.Backend {
	case "memory":
		if cc.Size <= 0 {
			errs = append(errs, fmt.Errorf("serve.cache.size must be positive, got %d", cc.Size))
		}
	case "redis":
		if cc.RedisURL == "" {
			errs = append(errs, errors.New("serve.cache.redis_url is required by the redis backend"))
		}
		timeouts := []struct{ name, value string }{
			{"serve.cache.redis_dial_timeout", cc.RedisDialTimeout},
			{"serve.cache.redis_read_timeout", cc.RedisReadTimeout},
			{"serve.cache.redis_write_timeout", cc.RedisWriteTimeout},
		}
		for _, to := range timeouts {
			if err := checkDuration(to.name, to.value); err != nil {
				errs = append(errs, err)
			}
		}
	case "none":
	default:
		errs = append(errs, fmt.Errorf("serve.cache.backend must be memory, redis or none, got %q", cc.Backend))
	}
	if cc.Backend != "none" {
		if err := checkDuration("serve.cache.ttl", cc.TTL); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := check.Compile(c.Checks); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func checkDuration(name, s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", name, s)
	}
	if d < 0 {
		return fmt.Errorf("%s must not be negative, got %s", name, s)
	}
	return nil
}

// Open creates the configured result cache.
func (c CacheConfig) Open() (cache.Cache, error) {
	switch c.Backend {
	case "memory", "":
		return cache.NewMemory(c.Size, c.GetTTL()), nil
	case "redis":
		return cache.NewRedis(c.RedisOptions())
	case "none":
		return cache.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}
