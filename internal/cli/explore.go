package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/scytale"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

var (
	exploreErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	exploreOnStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	exploreOffStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// exploreKeys are the explorer key bindings.
type exploreKeys struct {
	Narrower    key.Binding
	Wider       key.Binding
	OffsetUp    key.Binding
	OffsetDown  key.Binding
	ReverseRows key.Binding
	ReverseCols key.Binding
	Colors      key.Binding
	Quit        key.Binding
}

func newExploreKeys() exploreKeys {
	return exploreKeys{
		Narrower:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "narrower")),
		Wider:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "wider")),
		OffsetUp:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "offset+")),
		OffsetDown:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "offset-")),
		ReverseRows: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "mirror rows")),
		ReverseCols: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "flip rows")),
		Colors:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "colors")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Narrower, k.Wider, k.OffsetUp, k.OffsetDown, k.ReverseRows, k.ReverseCols, k.Colors, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Narrower, k.Wider, k.OffsetUp, k.OffsetDown},
		{k.ReverseRows, k.ReverseCols, k.Colors, k.Quit},
	}
}

// exploreCommand creates the interactive explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	flags := requestFlags{}

	cmd := &cobra.Command{
		Use:   "explore [text]",
		Short: "Explore a scytale grid interactively",
		Long: `Explore a scytale grid interactively.

Keys:
  ←/→  decrease/increase the diameter
  ↑/↓  increase/decrease the offset
  h    mirror each row
  v    reverse the row order
  t    toggle row colors
  q    quit`,
		Example: `  kryptos explore --seed k4Conventional
  kryptos explore -d 7 "SLOWLY DESPARATLY SLOWLY"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("color") {
				flags.colorize = true
			}
			req, err := flags.request(cmd, args, cfg)
			if err != nil {
				return err
			}

			runner := workbench.NewRunner(nil, c.Logger, limits(cfg))
			m, err := newExploreModel(cmd.Context(), runner, req)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// exploreModel is the bubbletea model for the grid explorer. Every key
// press rebuilds the grid through the runner so limits apply exactly as
// they do for wrap and the API.
type exploreModel struct {
	ctx    context.Context
	keys   exploreKeys
	help   help.Model
	runner *workbench.Runner
	req    workbench.Request
	result *workbench.Result
	err    error
}

func newExploreModel(ctx context.Context, runner *workbench.Runner, req workbench.Request) (exploreModel, error) {
	m := exploreModel{
		ctx:    ctx,
		keys:   newExploreKeys(),
		help:   help.New(),
		runner: runner,
		req:    req,
	}
	m.rebuild()
	if m.err != nil {
		return m, m.err
	}
	// Keep the diameter integral so ←/→ step through whole values.
	m.req.Diameter = float64(m.result.Stats.Diameter)
	return m, nil
}

func (m *exploreModel) rebuild() {
	res, err := m.runner.Run(m.ctx, m.req)
	if err != nil {
		m.err = err
		return
	}
	m.result, m.err = res, nil
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m exploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Narrower):
		if m.req.Diameter <= scytale.MinDiameter {
			return m, nil
		}
		m.req.Diameter--
	case key.Matches(msg, m.keys.Wider):
		if limit := m.runner.Limits.MaxDiameter; limit > 0 && int(m.req.Diameter) >= limit {
			return m, nil
		}
		m.req.Diameter++
	case key.Matches(msg, m.keys.OffsetUp):
		m.req.Offset++
	case key.Matches(msg, m.keys.OffsetDown):
		m.req.Offset--
	case key.Matches(msg, m.keys.ReverseRows):
		m.req.ReverseRows = !m.req.ReverseRows
	case key.Matches(msg, m.keys.ReverseCols):
		m.req.ReverseCols = !m.req.ReverseCols
	case key.Matches(msg, m.keys.Colors):
		m.req.Colorize = !m.req.Colorize
	default:
		return m, nil
	}
	m.rebuild()
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scytale Explorer"))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(exploreErrorStyle.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	case m.result != nil:
		if !m.result.Grid.Empty() {
			b.WriteString(gridTable(m.result.Grid).Render())
			b.WriteString("\n")
		}
		b.WriteString(readoutBlock("By rows", m.result.Readout.ByRows))
		b.WriteString(readoutBlock("By columns", m.result.Readout.ByColumns))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m exploreModel) status() string {
	parts := []string{
		fmt.Sprintf("diameter %s", StyleNumber.Render(fmt.Sprint(int(m.req.Diameter)))),
		fmt.Sprintf("offset %s", StyleNumber.Render(fmt.Sprint(m.req.Offset))),
		"rows " + toggle(m.req.ReverseRows),
		"cols " + toggle(m.req.ReverseCols),
		"colors " + toggle(m.req.Colorize),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func toggle(on bool) string {
	if on {
		return exploreOnStyle.Render("on")
	}
	return exploreOffStyle.Render("off")
}
