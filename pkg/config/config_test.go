package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/kryptos/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.KV.TTL.Std() != 30*24*time.Hour {
		t.Errorf("default ttl = %v", cfg.KV.TTL.Std())
	}
	if cfg.PadRune() != ' ' {
		t.Errorf("default pad = %q", cfg.PadRune())
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[server]
addr = "127.0.0.1:9000"
metrics = true
shutdown_timeout = "3s"

[kv]
backend = "redis"
ttl = "24h"
dev = true

[kv.redis]
addr = "cache:6379"
db = 2

[cloudflare]
account_id = "acct"
namespace_id = "ns"
api_token = "tok"

[defaults]
diameter = 12
pad = "X"
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" || !cfg.Server.Metrics {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ShutdownTimeout.Std() != 3*time.Second {
		t.Errorf("shutdown_timeout = %v", cfg.Server.ShutdownTimeout.Std())
	}
	if cfg.KV.Backend != BackendRedis || cfg.KV.TTL.Std() != 24*time.Hour || !cfg.KV.Dev {
		t.Errorf("kv = %+v", cfg.KV)
	}
	if cfg.KV.Redis.Addr != "cache:6379" || cfg.KV.Redis.DB != 2 {
		t.Errorf("kv.redis = %+v", cfg.KV.Redis)
	}
	if cfg.KV.Redis.Prefix != "kryptos:" {
		t.Errorf("unset fields should keep defaults, prefix = %q", cfg.KV.Redis.Prefix)
	}
	if !cfg.CloudflareConfigured() {
		t.Error("cloudflare should be configured")
	}
	if cfg.Defaults.Diameter != 12 || cfg.PadRune() != 'X' {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `[server`},
		{"unknown key", "[server]\nport = 80"},
		{"unknown backend", "[kv]\nbackend = \"etcd\""},
		{"bad duration", "[kv]\nttl = \"forever\""},
		{"negative ttl", "[kv]\nttl = \"-1h\""},
		{"multi-char pad", "[defaults]\npad = \"ab\""},
		{"tiny max diameter", "[server]\nmax_diameter = 1"},
		{"redis without addr", "[kv]\nbackend = \"redis\"\n[kv.redis]\naddr = \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.toml)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestValidateNormalises(t *testing.T) {
	cfg := Default()
	cfg.KV.Backend = ""
	cfg.Defaults.Diameter = 0
	cfg.Defaults.Pad = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.KV.Backend != BackendFile {
		t.Errorf("empty backend = %q, want file", cfg.KV.Backend)
	}
	if cfg.Defaults.Diameter != 2 {
		t.Errorf("diameter 0 should clamp to 2, got %d", cfg.Defaults.Diameter)
	}
	if cfg.Defaults.Pad != " " {
		t.Errorf("empty pad = %q, want space", cfg.Defaults.Pad)
	}

	cfg.Defaults.Diameter = 5000
	_ = cfg.Validate()
	if cfg.Defaults.Diameter != cfg.Server.MaxDiameter {
		t.Errorf("diameter should be capped at max_diameter, got %d", cfg.Defaults.Diameter)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:          ":7000",
		EnvKVBackend:     "mongo",
		EnvMongoURI:      "mongodb://db:27017",
		EnvCFAccountID:   "a",
		EnvCFNamespaceID: "n",
		EnvCFAPIToken:    "t",
		EnvDev:           "true",
		EnvRedisAddr:     "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Server.Addr != ":7000" || cfg.KV.Backend != BackendMongo || cfg.KV.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.KV.Redis.Addr != "localhost:6379" {
		t.Error("empty environment values must not override")
	}
	if !cfg.KV.Dev || !cfg.CloudflareConfigured() {
		t.Error("dev and cloudflare overrides not applied")
	}

	env[EnvDev] = "maybe"
	if err := Default().ApplyEnv(lookup); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid %s error = %v", EnvDev, err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvDev, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[kv]\nbackend = \"memory\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.KV.Backend != BackendMemory {
		t.Errorf("backend = %q, want memory", cfg.KV.Backend)
	}

	t.Setenv(EnvKVBackend, "none")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.KV.Backend != BackendNone {
		t.Errorf("environment should override file, backend = %q", cfg.KV.Backend)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvKVBackend, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should yield defaults, got %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing file error = %v, want INVALID_CONFIG", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	if p, _ := Path(); p != filepath.Join("/tmp/cfg", "kryptos", "config.toml") {
		t.Errorf("Path() = %q", p)
	}
	if d, _ := DataDir(); d != filepath.Join("/tmp/cache", "kryptos", "kv") {
		t.Errorf("DataDir() = %q", d)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1h30m")); err != nil {
		t.Fatal(err)
	}
	if d.Std() != 90*time.Minute {
		t.Errorf("parsed = %v", d.Std())
	}
	text, _ := d.MarshalText()
	if string(text) != "1h30m0s" {
		t.Errorf("MarshalText() = %q", text)
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("invalid duration should fail")
	}
}

func TestParseSQLiteBackend(t *testing.T) {
	cfg, err := Parse("[kv]\nbackend = \"sqlite\"\n\n[kv.sqlite]\npath = \"/var/lib/kryptos/kv.db\"\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.KV.Backend != BackendSQLite {
		t.Errorf("backend = %q, want sqlite", cfg.KV.Backend)
	}
	if cfg.KV.SQLite.Path != "/var/lib/kryptos/kv.db" {
		t.Errorf("sqlite path = %q", cfg.KV.SQLite.Path)
	}
}
