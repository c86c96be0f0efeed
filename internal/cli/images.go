package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/manifest"
)

// imagesCommand groups the image manifest tools.
func (c *CLI) imagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Manage the image manifest served by /api/images",
	}
	cmd.AddCommand(c.imagesScanCommand())
	return cmd
}

// imagesScanCommand regenerates the manifest from a directory tree.
func (c *CLI) imagesScanCommand() *cobra.Command {
	var (
		output string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Regenerate the image manifest from a directory",
		Long: `Walk dir and write a JSON manifest of its image folders.

Every top-level folder becomes a key. A folder holding only files maps to the
list of file names; a folder with subfolders maps to an object, with its own
files under the "" key. Dotfiles are skipped.

With --watch the manifest is rewritten whenever the tree changes, until
interrupted.`,
		Example: `  kryptos images scan public/images
  kryptos images scan ./photos -o photos.json
  kryptos images scan public/images --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "scan %s", dir)
			}
			if !info.IsDir() {
				return errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", dir)
			}
			if output == "" {
				output = filepath.Join(dir, manifest.FileName)
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			m, err := manifest.Scan(os.DirFS(dir))
			if err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}
			if err := m.Write(output); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			prog.done("scanned image tree", "dir", dir, "folders", len(m.Root()))

			out := statusOut(cmd)
			out.success("Scanned %d %s", len(m.Root()), plural(len(m.Root()), "folder", "folders"))
			out.file(output)
			if !watch {
				out.nextStep("Serve it", "kryptos serve")
				return nil
			}
			out.info("Watching %s (Ctrl+C to stop)", dir)
			return watchImages(cmd.Context(), dir, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <dir>/"+manifest.FileName+")")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rewrite the manifest whenever dir changes")
	return cmd
}

// watchImages rewrites output after every change below dir until ctx is
// done. Scan and write failures are logged and watching continues.
func watchImages(ctx context.Context, dir, output string) error {
	logger := loggerFromContext(ctx)
	return manifest.Watch(ctx, dir, manifest.DefaultDebounce, func(m *manifest.Manifest, err error) {
		if err != nil {
			logger.Warn("scan failed", "dir", dir, "error", err)
			return
		}
		if err := m.Write(output); err != nil {
			logger.Warn("write manifest failed", "path", output, "error", err)
			return
		}
		logger.Info("manifest updated", "folders", len(m.Root()), "path", output)
	})
}
