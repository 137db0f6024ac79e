// Package config loads the permnet configuration file.
//
// The file lives at $XDG_CONFIG_HOME/permnet/config.toml (falling back to
// ~/.config/permnet/config.toml) unless a path is given explicitly. A missing
// file is not an error: every field has a default.
//
//	[cache]
//	backend = "redis"     # file | redis | memory | none
//	ttl = "72h"
//	prefix = "staging:"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	max_size = 4096
//
//	[store]
//	backend = "mongo"     # memory | mongo
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//
//	[log]
//	level = "debug"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/permnet/pkg/errors"
)

const appName = "permnet"

// Backend names.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
	BackendMongo  = "mongo"
)

// Config is the decoded configuration file.
type Config struct {
	Cache  Cache  `toml:"cache"`
	Redis  Redis  `toml:"redis"`
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
	Mongo  Mongo  `toml:"mongo"`
	Log    Log    `toml:"log"`
}

type Cache struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`    // file backend only; defaults to the XDG cache dir
	TTL     time.Duration `toml:"ttl"`    // zero keeps the per-entry defaults
	Prefix  string        `toml:"prefix"` // namespaces keys in a shared backend
}

type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type Server struct {
	Addr         string        `toml:"addr"`
	MaxSize      int           `toml:"max_size"`
	BatchWorkers int           `toml:"batch_workers"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

type Store struct {
	Backend string `toml:"backend"`
}

type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:  Cache{Backend: BackendFile},
		Redis:  Redis{Addr: "localhost:6379"},
		Server: Server{Addr: ":8080", MaxSize: 4096, BatchWorkers: 4, ReadTimeout: 30 * time.Second, WriteTimeout: 60 * time.Second},
		Store:  Store{Backend: BackendMemory},
		Mongo:  Mongo{Database: "permnet", Collection: "networks"},
		Log:    Log{Level: "info"},
	}
}

// Load reads the file at path over the defaults. An empty path means
// [Path]; a missing file at the default location yields [Default].
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	md, err := toml.Decode(string(data), &base)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return base, base.Validate()
}

// Validate checks enumerated values and bounds.
func (c Config) Validate() error {
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendMemory, BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis, memory or none, got %q", c.Cache.Backend)
	}
	if !slices.Contains([]string{BackendMemory, BackendMongo}, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend must be memory or mongo, got %q", c.Store.Backend)
	}
	if c.Store.Backend == BackendMongo && c.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "mongo.uri is required when store.backend is mongo")
	}
	if c.Cache.Backend == BackendRedis && c.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis.addr is required when cache.backend is redis")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Server.MaxSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_size must be positive")
	}
	if c.Server.BatchWorkers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.batch_workers must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the file cache directory: Cache.Dir when set, otherwise
// $XDG_CACHE_HOME/permnet or ~/.cache/permnet.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
