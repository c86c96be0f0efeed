package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/config"
	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

// linkCommand prints a shareable workbench URL.
func (c *CLI) linkCommand() *cobra.Command {
	flags := requestFlags{}
	var base string

	cmd := &cobra.Command{
		Use:   "link [text]",
		Short: "Print a shareable workbench URL",
		Long: `Print a URL that restores the given workbench state.

The state is encoded into short query parameters (t, s, d, o, rr, rc, pad,
trim, lines, c). Query parameters already present on the base URL are kept.`,
		Example: `  kryptos link -d 7 --seed k4Conventional
  kryptos link --base https://example.com/scytale "HELLO WORLD"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			req, err := flags.request(cmd, args, cfg)
			if err != nil {
				return err
			}
			if req.Pad == cfg.Defaults.Pad && !cmd.Flags().Changed("pad") {
				req.Pad = ""
			}
			if err := req.Validate(limits(cfg)); err != nil {
				return err
			}

			if base == "" {
				base = defaultBaseURL(cfg)
			}
			u, err := workbench.Link(base, req)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid base url %q", base)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&base, "base", "", "base URL (default server.base_url)")
	return cmd
}

// defaultBaseURL returns server.base_url, falling back to the local server
// address.
func defaultBaseURL(cfg *config.Config) string {
	if cfg.Server.BaseURL != "" {
		return cfg.Server.BaseURL
	}
	addr := cfg.Server.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}
