package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Location lipgloss.Style
	Caret    lipgloss.Style
	Prompt   lipgloss.Style
}

// NewStyles builds styles bound to w. Without color every style renders
// its input unchanged.
func NewStyles(w io.Writer, color bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Bold:     r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Faint(true).TabWidth(lipgloss.NoTabConversion),
		Error:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Location: r.NewStyle().Bold(true),
		Caret:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).TabWidth(lipgloss.NoTabConversion),
		Prompt:   r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}
