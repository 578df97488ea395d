package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Header        lipgloss.Style
	Filter        lipgloss.Style
	FilterInput   lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	Cursor        lipgloss.Style
	Selected      lipgloss.Style
	Directory     lipgloss.Style
	File          lipgloss.Style
	Scroll        lipgloss.Style
	LegendKey     lipgloss.Style
	LegendDesc    lipgloss.Style
	LegendDivider lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Header:        lipgloss.NewStyle().Reverse(true),
		Filter:        lipgloss.NewStyle().Bold(true),
		FilterInput:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Directory:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		File:          lipgloss.NewStyle(),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		LegendKey:     lipgloss.NewStyle(),
		LegendDesc:    lipgloss.NewStyle(),
		LegendDivider: lipgloss.NewStyle(),
	}
}
