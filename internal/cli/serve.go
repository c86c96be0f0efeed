package cli

import (
	stderrors "errors"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/internal/metrics"
	"github.com/matzehuels/kryptos/pkg/api"
	"github.com/matzehuels/kryptos/pkg/config"
	"github.com/matzehuels/kryptos/pkg/manifest"
)

// serveCommand runs the HTTP API until the process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workbench HTTP API",
		Long: `Serve the workbench HTTP API.

The server shuts down gracefully on SIGINT or SIGTERM, waiting up to
server.shutdown_timeout for in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			opts := api.Options{
				BaseURL:         cfg.Server.BaseURL,
				MaxBodyBytes:    cfg.Server.MaxBodyBytes,
				KVTTL:           cfg.KV.TTL.Std(),
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
			}
			if cfg.Server.Metrics {
				m := metrics.New()
				m.Install()
				opts.Metrics = m.Handler()
			}

			runner, store, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			logger := loggerFromContext(cmd.Context())
			images := loadImages(logger, cfg)
			logger.Info("starting server",
				"addr", cfg.Server.Addr,
				"backend", cfg.KV.Backend,
				"remote", cfg.CloudflareConfigured(),
				"metrics", cfg.Server.Metrics)

			return api.New(runner, store, images, logger, opts).Run(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}

// loadImages loads the image manifest. A missing or broken manifest is
// logged and served as a 500 from /api/images instead of failing startup.
func loadImages(logger *log.Logger, cfg *config.Config) *manifest.Manifest {
	m, err := manifest.Load(cfg.Images.Manifest)
	switch {
	case err == nil:
		return m
	case stderrors.Is(err, fs.ErrNotExist):
		logger.Warn("image manifest not found", "path", cfg.Images.Manifest)
	default:
		logger.Warn("failed to load image manifest", "path", cfg.Images.Manifest, "err", err)
	}
	return nil
}
