package config

import (
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/kv"
	"github.com/matzehuels/kryptos/pkg/scytale"
)

const appName = "kryptos"

// KV backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Config is the complete kryptos configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	KV         KVConfig         `toml:"kv"`
	Cloudflare CloudflareConfig `toml:"cloudflare"`
	Images     ImagesConfig     `toml:"images"`
	Defaults   DefaultsConfig   `toml:"defaults"`
}

// ServerConfig configures `kryptos serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	BaseURL         string   `toml:"base_url"`
	Metrics         bool     `toml:"metrics"`
	MaxDiameter     int      `toml:"max_diameter"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// KVConfig selects and configures the local key-value store.
type KVConfig struct {
	Backend string       `toml:"backend"`
	Dir     string       `toml:"dir"`
	TTL     Duration     `toml:"ttl"`
	Dev     bool         `toml:"dev"`
	Redis   RedisConfig  `toml:"redis"`
	Mongo   MongoConfig  `toml:"mongo"`
	SQLite  SQLiteConfig `toml:"sqlite"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// SQLiteConfig configures the sqlite backend. An empty path means kv.db in
// the data directory.
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// CloudflareConfig identifies the Workers KV namespace used as remote.
type CloudflareConfig struct {
	AccountID   string `toml:"account_id"`
	NamespaceID string `toml:"namespace_id"`
	APIToken    string `toml:"api_token"`
	BaseURL     string `toml:"base_url"`
}

// ImagesConfig locates the image manifest.
type ImagesConfig struct {
	Manifest string `toml:"manifest"`
}

// DefaultsConfig holds workbench defaults shared by the CLI and the API.
type DefaultsConfig struct {
	Diameter int    `toml:"diameter"`
	Pad      string `toml:"pad"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxDiameter:     1024,
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		KV: KVConfig{
			Backend: BackendFile,
			TTL:     Duration(kv.TTLShare),
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: appName + ":"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: appName, Collection: "kv"},
		},
		Images:   ImagesConfig{Manifest: filepath.Join("public", "images", "image-manifest.json")},
		Defaults: DefaultsConfig{Diameter: 8, Pad: " "},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DataDir returns the default directory of the file backend
// ($XDG_CACHE_HOME/kryptos/kv, default ~/.cache/kryptos/kv).
func DataDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName, "kv"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName, "kv"), nil
}

// Load reads path (or the default location when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config file")
		}
		path = p
	}

	if err := cfg.decodeFile(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file not found")
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates it. Environment
// variables are not consulted.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
	}
	return nil
}

// Validate checks the configuration and normalises lenient fields: a
// default diameter below the minimum is raised to it and an empty pad
// becomes a space.
func (c *Config) Validate() error {
	switch c.KV.Backend {
	case BackendNone, BackendMemory, BackendFile, BackendRedis, BackendMongo, BackendSQLite:
	case "":
		c.KV.Backend = BackendFile
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown kv backend %q", c.KV.Backend)
	}
	if c.KV.Backend == BackendRedis && c.KV.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "kv.redis.addr is required for the redis backend")
	}
	if c.KV.Backend == BackendMongo && c.KV.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "kv.mongo.uri is required for the mongo backend")
	}
	if c.KV.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "kv.ttl cannot be negative")
	}

	if c.Server.MaxDiameter < scytale.MinDiameter {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_diameter must be at least %d", scytale.MinDiameter)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}

	c.Defaults.Diameter = min(scytale.NormalizeDiameter(c.Defaults.Diameter), c.Server.MaxDiameter)
	if c.Defaults.Pad == "" {
		c.Defaults.Pad = string(scytale.DefaultPadChar)
	}
	if utf8.RuneCountInString(c.Defaults.Pad) != 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults.pad must be a single character, got %q", c.Defaults.Pad)
	}
	return nil
}

// PadRune returns the default pad character.
func (c *Config) PadRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Defaults.Pad)
	return r
}

// CloudflareConfigured reports whether remote credentials are complete.
func (c *Config) CloudflareConfigured() bool {
	cf := c.Cloudflare
	return cf.AccountID != "" && cf.NamespaceID != "" && cf.APIToken != ""
}
