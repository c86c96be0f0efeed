package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // headings, numbers
	colorGreen  = lipgloss.Color("35")  // success, toggles on
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // suggested commands
	colorWhite  = lipgloss.Color("255") // cell text, readouts
	colorGray   = lipgloss.Color("245") // table headers, toggles off
	colorDim    = lipgloss.Color("240") // borders, muted text
)

var (
	// StyleTitle renders headings such as "Diameter 4".
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders readout headings.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders readouts and stored values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber renders counters in status lines.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes human-oriented status lines. Command results go to stdout;
// status lines go to the printer so results stay pipeable.
type printer struct {
	w io.Writer
}

// statusOut returns a printer on the command's error stream.
func statusOut(cmd *cobra.Command) printer {
	return printer{w: cmd.ErrOrStderr()}
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line under the previous status line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a path the command wrote.
func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// nextStep suggests a follow-up command.
func (p printer) nextStep(description, command string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(command))
}
