package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used for operator-facing text. Styles are bound to
// a renderer for the destination writer, so colour is only emitted when the
// writer is a terminal.
type Theme struct {
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
}

// NewTheme returns a Theme rendering for w.
func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		Success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}),
		Warn:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}),
		Error:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}),
		Info:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}),
		Muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}),
		Header:  r.NewStyle().Bold(true),
	}
}

func (t Theme) OK(msg string) string { return t.Success.Render("✓") + "  " + msg }
func (t Theme) Warning(msg string) string { return t.Warn.Render("!") + "  " + msg }
func (t Theme) Fail(msg string) string { return t.Error.Render("✗") + "  " + msg }
func (t Theme) Note(msg string) string { return t.Info.Render("i") + "  " + msg }
