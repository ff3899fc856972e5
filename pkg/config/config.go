// Package config loads wordsphere settings.
//
// Settings come from three layers, later ones winning:
//
//  1. [Default] values
//  2. a TOML or YAML file, chosen by extension
//  3. WORDSPHERE_* environment variables, optionally seeded from a .env file
//
// Example wordsphere.toml:
//
//	[api]
//	url = "http://localhost:8000"
//
//	[server]
//	addr = ":8000"
//	fetch_timeout = "10s"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordsphere/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WORDSPHERE_"

// Config is the complete application configuration.
type Config struct {
	API    APIConfig    `toml:"api" yaml:"api"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Redis  RedisConfig  `toml:"redis" yaml:"redis"`
	Mongo  MongoConfig  `toml:"mongo" yaml:"mongo"`
}

// APIConfig configures the analysis client.
type APIConfig struct {
	URL string `toml:"url" yaml:"url"`
}

// ServerConfig configures the analysis service.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	NoCache      bool          `toml:"no_cache" yaml:"no_cache"`
	CachePrefix  string        `toml:"cache_prefix" yaml:"cache_prefix"`
	MaxFeatures  int           `toml:"max_features" yaml:"max_features"`
	FetchTimeout time.Duration `toml:"fetch_timeout" yaml:"fetch_timeout"`
	FetchRetries int           `toml:"fetch_retries" yaml:"fetch_retries"`
	HistoryLimit int           `toml:"history_limit" yaml:"history_limit"` // in-memory history only
}

// RedisConfig selects a Redis cache. An empty Addr uses the file cache.
type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
}

// MongoConfig selects a MongoDB history store. An empty URI keeps history
// in memory.
type MongoConfig struct {
	URI      string `toml:"uri" yaml:"uri"`
	Database string `toml:"database" yaml:"database"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{URL: "http://localhost:8000"},
		Server: ServerConfig{
			Addr:         ":8000",
			MaxFeatures:  50,
			FetchTimeout: 10 * time.Second,
			FetchRetries: 3,
			HistoryLimit: 1000,
		},
		Mongo: MongoConfig{Database: "wordsphere"},
	}
}

// Load builds a Config from defaults, the file at path (if non-empty) and
// the environment. A .env file in the working directory is read first when
// present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read .env")
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

// applyEnv overrides fields from WORDSPHERE_* variables found by lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name))
				return
			}
			*dst = n
		}
	}

	str("API_URL", &c.API.URL)
	str("ADDR", &c.Server.Addr)
	str("CACHE_PREFIX", &c.Server.CachePrefix)
	num("MAX_FEATURES", &c.Server.MaxFeatures)
	num("FETCH_RETRIES", &c.Server.FetchRetries)
	num("HISTORY_LIMIT", &c.Server.HistoryLimit)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	num("REDIS_DB", &c.Redis.DB)
	str("MONGO_URI", &c.Mongo.URI)
	str("MONGO_DATABASE", &c.Mongo.Database)

	if v, ok := lookup(EnvPrefix + "NO_CACHE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sNO_CACHE", EnvPrefix))
		} else {
			c.Server.NoCache = b
		}
	}
	if v, ok := lookup(EnvPrefix + "FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sFETCH_TIMEOUT", EnvPrefix))
		} else {
			c.Server.FetchTimeout = d
		}
	}
	return stderrors.Join(errs...)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch {
	case c.API.URL == "":
		return errors.New(errors.ErrCodeInvalidConfig, "api.url is required")
	case c.Server.Addr == "":
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	case c.Server.MaxFeatures < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_features must be positive, got %d", c.Server.MaxFeatures)
	case c.Server.FetchTimeout <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "server.fetch_timeout must be positive, got %s", c.Server.FetchTimeout)
	case c.Server.FetchRetries < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "server.fetch_retries must be at least 1, got %d", c.Server.FetchRetries)
	case c.Server.HistoryLimit < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "server.history_limit must be positive, got %d", c.Server.HistoryLimit)
	}
	return nil
}
