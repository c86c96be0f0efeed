package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/config"
	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/integrations/cloudflare"
	"github.com/matzehuels/kryptos/pkg/kv"
)

// kvCommand creates the key-value store management command.
func (c *CLI) kvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kv",
		Short: "Inspect and edit the key-value store",
		Long: `Inspect and edit the configured key-value store.

get and put go through the same layered store as the API server, so with
Cloudflare credentials and kv.dev enabled a get syncs the remote value into
the local backend. put --remote and delete --remote also write through to
the Workers KV namespace; purge drops expired sqlite entries.`,
	}

	cmd.AddCommand(c.kvGetCommand())
	cmd.AddCommand(c.kvPutCommand())
	cmd.AddCommand(c.kvDeleteCommand())
	cmd.AddCommand(c.kvPathCommand())
	cmd.AddCommand(c.kvClearCommand())
	cmd.AddCommand(c.kvPurgeCommand())

	return cmd
}

// kvGetCommand creates the "kv get" subcommand.
func (c *CLI) kvGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			store, err := c.openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			data, ok, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "key %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if len(data) > 0 && data[len(data)-1] != '\n' {
				_, err = fmt.Fprintln(out)
			}
			return err
		},
	}
}

// kvPutCommand creates the "kv put" subcommand.
func (c *CLI) kvPutCommand() *cobra.Command {
	var (
		input  string
		ttl    time.Duration
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "put <key> [value]",
		Short: "Store a value under a key",
		Example: `  kryptos kv put greeting '{"text":"HELLO"}'
  kryptos kv put state -i state.json --ttl 24h
  kryptos kv put greeting '{"text":"HELLO"}' --remote`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value string
			switch {
			case len(args) == 2:
				value = args[1]
			case input != "":
				v, err := readInput(cmd.InOrStdin(), input)
				if err != nil {
					return err
				}
				value = v
			default:
				return errors.New(errors.ErrCodeInvalidInput, "no value given: pass it as an argument or with --input")
			}

			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.KV.TTL.Std()
			}
			var cf *cloudflare.Client
			if remote {
				if cf, err = remoteClient(cfg); err != nil {
					return err
				}
			}
			store, err := c.openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Set(cmd.Context(), args[0], []byte(value), ttl); err != nil {
				return err
			}
			out := statusOut(cmd)
			out.success("Stored %s", args[0])
			out.detail("%d bytes · backend %s", len(value), cfg.KV.Backend)

			if cf != nil {
				if err := cf.Put(cmd.Context(), args[0], []byte(value), ttl); err != nil {
					return fmt.Errorf("push %s to remote: %w", args[0], err)
				}
				out.success("Pushed %s to Workers KV", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "read the value from a file ('-' for stdin)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "expiry (default kv.ttl, 0 keeps forever)")
	cmd.Flags().BoolVar(&remote, "remote", false, "also write the value to the Cloudflare Workers KV namespace")
	return cmd
}

// kvDeleteCommand creates the "kv delete" subcommand.
func (c *CLI) kvDeleteCommand() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Remove a key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			var cf *cloudflare.Client
			if remote {
				if cf, err = remoteClient(cfg); err != nil {
					return err
				}
			}
			store, err := c.openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			out := statusOut(cmd)
			out.success("Deleted %s", args[0])

			if cf != nil {
				if err := cf.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete %s from remote: %w", args[0], err)
				}
				out.success("Deleted %s from Workers KV", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "also delete the key from the Cloudflare Workers KV namespace")
	return cmd
}

// kvPathCommand creates the "kv path" subcommand.
func (c *CLI) kvPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file backend directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			dir, err := storeDir(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	}
}

// kvClearCommand creates the "kv clear" subcommand.
func (c *CLI) kvClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the file backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.KV.Backend != config.BackendFile {
				return errors.New(errors.ErrCodeUnsupported, "kv clear only supports the file backend (configured: %s)", cfg.KV.Backend)
			}
			dir, err := storeDir(cfg)
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				statusOut(cmd).info("Store is empty")
				return nil
			}

			store, err := kv.NewFileStore(dir)
			if err != nil {
				return err
			}
			count, err := store.Clear()
			if err != nil {
				return err
			}
			out := statusOut(cmd)
			out.success("Cleared %d %s", count, plural(count, "entry", "entries"))
			out.detail("Directory: %s", strings.TrimSuffix(dir, string(os.PathSeparator)))
			return nil
		},
	}
}

// kvPurgeCommand creates the "kv purge" subcommand.
func (c *CLI) kvPurgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired entries from the sqlite backend",
		Long: `Delete every expired entry from the sqlite backend.

Expired entries are never returned, but the sqlite backend only removes them
when they are read. purge reclaims the rest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.KV.Backend != config.BackendSQLite {
				return errors.New(errors.ErrCodeUnsupported, "kv purge only supports the sqlite backend (configured: %s)", cfg.KV.Backend)
			}
			local, err := c.openLocal(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer local.Close()

			store, ok := local.(*kv.SQLiteStore)
			if !ok {
				return errors.New(errors.ErrCodeInternal, "sqlite backend opened as %T", local)
			}
			n, err := store.Purge(cmd.Context())
			if err != nil {
				return err
			}
			statusOut(cmd).success("Purged %d expired %s", n, plural(int(n), "entry", "entries"))
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
