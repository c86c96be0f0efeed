package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/seeds"
)

// seedsCommand lists the built-in texts.
func (c *CLI) seedsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seeds",
		Short: "List the built-in Kryptos texts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), seedsTable(seeds.All()).Render())
			return err
		},
	}

	cmd.AddCommand(c.seedsShowCommand())
	return cmd
}

// seedsShowCommand prints a single seed's text verbatim so it can be piped
// into wrap.
func (c *CLI) seedsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <key>",
		Short:             "Print the text of a seed",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSeeds,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := seeds.Lookup(args[0])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "unknown seed %q (known: %s)", args[0], strings.Join(seeds.Keys(), ", "))
			}
			if s.Empty() {
				statusOut(cmd).warning("%s has no text", s.Label)
				return nil
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), s.Text)
			return err
		},
	}
}

func seedsTable(all []seeds.Seed) *table.Table {
	rows := make([][]string, len(all))
	for i, s := range all {
		rows[i] = []string{s.Key, s.Label, preview(s.Text, 32)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Key", "Label", "Text").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(headerStyle)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 2:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})
}

// preview flattens text to a single line of at most n runes.
func preview(text string, n int) string {
	if text == "" {
		return "—"
	}
	flat := []rune(strings.Join(strings.Fields(text), " "))
	if len(flat) <= n {
		return string(flat)
	}
	return string(flat[:n-1]) + "…"
}

// completeSeeds completes seed keys for --seed and `seeds show`.
func completeSeeds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, s := range seeds.All() {
		if strings.HasPrefix(s.Key, toComplete) {
			out = append(out, s.Key+"\t"+s.Label)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
