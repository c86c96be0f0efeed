package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/buildinfo"
	"github.com/matzehuels/kryptos/pkg/config"
	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/integrations/cloudflare"
	"github.com/matzehuels/kryptos/pkg/kv"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "kryptos"

	// connectTimeout bounds how long opening a network store may take.
	connectTimeout = 5 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location. It is set by
	// the persistent --config flag.
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Kryptos is a scytale transposition workbench",
		Long:          `Kryptos wraps text around a virtual scytale of a given diameter and reads the resulting grid back by rows or by columns. It ships the Kryptos K1-K4 texts as seeds and can serve the workbench over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/kryptos/config.toml)")

	root.AddCommand(c.wrapCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.seedsCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.kvCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.imagesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// limits derives the workbench limits from cfg.
func limits(cfg *config.Config) workbench.Limits {
	return workbench.Limits{MaxDiameter: cfg.Server.MaxDiameter}
}

// =============================================================================
// Store Factory
// =============================================================================

// openStore builds the configured local store behind a [kv.Layered] so
// keys are validated the same way for every backend. When Cloudflare
// credentials are present, the Workers KV namespace becomes the remote.
func (c *CLI) openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	local, err := c.openLocal(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var remote kv.Remote
	if cfg.CloudflareConfigured() {
		client, err := remoteClient(cfg)
		if err != nil {
			_ = local.Close()
			return nil, err
		}
		remote = client
		c.Logger.Debug("remote store enabled", "dev", cfg.KV.Dev, "backend", cfg.KV.Backend)
	}
	return kv.NewLayered(local, remote, kv.LayeredOptions{
		Dev:    cfg.KV.Dev,
		Logger: c.Logger,
	}), nil
}

// remoteClient returns the Workers KV client for the configured namespace.
func remoteClient(cfg *config.Config) (*cloudflare.Client, error) {
	if !cfg.CloudflareConfigured() {
		return nil, errors.New(errors.ErrCodeUnsupported, "no remote store configured (set [cloudflare] account_id, namespace_id and api_token)")
	}
	return cloudflare.NewClient(cloudflare.Config{
		AccountID:   cfg.Cloudflare.AccountID,
		NamespaceID: cfg.Cloudflare.NamespaceID,
		APIToken:    cfg.Cloudflare.APIToken,
		BaseURL:     cfg.Cloudflare.BaseURL,
	})
}

func (c *CLI) openLocal(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.KV.Backend {
	case config.BackendRedis, config.BackendMongo:
		s := newSpinner(ctx, os.Stderr, "Connecting to "+cfg.KV.Backend+"...")
		s.Start()
		defer s.Stop()
	}

	switch cfg.KV.Backend {
	case config.BackendNone:
		return kv.NewNullStore(), nil
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	case config.BackendRedis:
		return kv.NewRedisStore(ctx, kv.RedisConfig{
			Addr:     cfg.KV.Redis.Addr,
			Password: cfg.KV.Redis.Password,
			DB:       cfg.KV.Redis.DB,
			Prefix:   cfg.KV.Redis.Prefix,
		})
	case config.BackendMongo:
		return kv.NewMongoStore(ctx, kv.MongoConfig{
			URI:        cfg.KV.Mongo.URI,
			Database:   cfg.KV.Mongo.Database,
			Collection: cfg.KV.Mongo.Collection,
		})
	case config.BackendSQLite:
		path := cfg.KV.SQLite.Path
		if path == "" {
			dir, err := storeDir(cfg)
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "kv.db")
		}
		return kv.NewSQLiteStore(ctx, path)
	default:
		dir, err := storeDir(cfg)
		if err != nil {
			return nil, err
		}
		return kv.NewFileStore(dir)
	}
}

// storeDir returns the file backend directory.
func storeDir(cfg *config.Config) (string, error) {
	if cfg.KV.Dir != "" {
		return cfg.KV.Dir, nil
	}
	dir, err := config.DataDir()
	if err != nil {
		return "", fmt.Errorf("get data dir: %w", err)
	}
	return dir, nil
}

// newRunner creates a workbench runner backed by the configured store.
// The caller must close the returned store.
func (c *CLI) newRunner(ctx context.Context) (*workbench.Runner, kv.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	store, err := c.openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	r := workbench.NewRunner(store, c.Logger, limits(cfg))
	r.ShareTTL = cfg.KV.TTL.Std()
	return r, store, nil
}
