package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/permnet/pkg/cache"
	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/store"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[cache]
backend = "redis"
ttl = "72h"

[redis]
addr = "cache:6379"
db = 2

[server]
addr = ":9000"

[store]
backend = "mongo"

[mongo]
uri = "mongodb://db:27017"
`)
	got, err := Parse(data, Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.Cache = Cache{Backend: BackendRedis, TTL: 72 * time.Hour}
	want.Redis = Redis{Addr: "cache:6379", DB: 2}
	want.Server.Addr = ":9000"
	want.Store.Backend = BackendMongo
	want.Mongo.URI = "mongodb://db:27017"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[cache`},
		{"unknown key", "[cache]\ncolour = \"red\""},
		{"bad backend", "[cache]\nbackend = \"s3\""},
		{"mongo without uri", "[store]\nbackend = \"mongo\""},
		{"bad level", "[log]\nlevel = \"loud\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
		{"zero max size", "[server]\nmax_size = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), Default())
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse(%q) err = %v, want INVALID_CONFIG", tt.data, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Missing default file falls back to defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load defaults mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "permnet", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load explicit missing file: err = %v", err)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	got, err := Default().CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/tmp/xdg-cache", "permnet") {
		t.Errorf("CacheDir() = %q", got)
	}

	cfg := Default()
	cfg.Cache.Dir = "/var/cache/nets"
	if got, _ := cfg.CacheDir(); got != "/var/cache/nets" {
		t.Errorf("CacheDir() with override = %q", got)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Cache.Dir = t.TempDir()
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatalf("OpenCache(file): %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("file cache should return what was stored")
	}

	cfg.Cache.Backend = BackendNone
	c, _ = cfg.OpenCache(ctx)
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("backend none gave %T", c)
	}

	cfg.Cache.Backend = BackendMemory
	cfg.Cache.TTL = time.Minute
	if c, _ = cfg.OpenCache(ctx); c == nil {
		t.Error("memory backend should open")
	}
}

func TestKeyer(t *testing.T) {
	cfg := Default()
	if got, want := cfg.Keyer().NetworkKey("abc"), cache.NewDefaultKeyer().NetworkKey("abc"); got != want {
		t.Errorf("default keyer = %q, want %q", got, want)
	}
	cfg.Cache.Prefix = "staging:"
	if got := cfg.Keyer().NetworkKey("abc"); !strings.HasPrefix(got, "staging:") {
		t.Errorf("scoped keyer = %q, want staging: prefix", got)
	}
}

func TestOpenStore(t *testing.T) {
	s, err := Default().OpenStore(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("default store is %T, want *store.MemoryStore", s)
	}
}
