package views

import (
	"fmt"
	"strings"

	"codexport/internal/domain"
)

// Title is shown at the start of the header line
const Title = "File Export Utility"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Entries       []domain.Entry
	Rows          []int // indices into Entries that fit on screen
	Cursor        int
	FilterPattern string
	Filtering     bool
	FilterPrompt  string
	FilterInput   string // rendered text input while Filtering
	Legend        string // rendered key legend
	StatusMessage string
	StatusIsError bool
	SelectedCount int
	FileCount     int
	HiddenAbove   int
	HiddenBelow   int
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	entryRender *EntryRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		entryRender: NewEntryRenderer(styles),
	}
}

// Styles returns the styles used by the renderer
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view: header, filter line, entry rows and a
// status line
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	header := fmt.Sprintf(" %s | %s ", Title, state.Legend)
	content.WriteString(r.styles.Header.Render(Truncate(header, state.Width)))
	content.WriteString("\n")

	content.WriteString(r.renderFilterLine(state))
	content.WriteString("\n")

	switch {
	case len(state.Entries) == 0:
		content.WriteString(r.styles.Dim.Render("No text files found."))
		content.WriteString("\n")
	case len(state.Rows) == 0:
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("No entries match %q.", state.FilterPattern)))
		content.WriteString("\n")
	default:
		for _, idx := range state.Rows {
			content.WriteString(r.entryRender.RenderEntry(state.Entries[idx], idx == state.Cursor, state.Width))
			content.WriteString("\n")
		}
	}

	content.WriteString(r.renderStatusLine(state))
	return content.String()
}

func (r *Renderer) renderFilterLine(state ViewState) string {
	if state.Filtering {
		return r.styles.Filter.Render(state.FilterPrompt) + r.styles.FilterInput.Render(state.FilterInput)
	}
	return r.styles.Filter.Render(Truncate(fmt.Sprintf(" Filter: %s ", state.FilterPattern), state.Width))
}

func (r *Renderer) renderStatusLine(state ViewState) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.StatusError.Render(Truncate(state.StatusMessage, state.Width))
		}
		return r.styles.Status.Render(Truncate(state.StatusMessage, state.Width))
	}

	parts := []string{fmt.Sprintf("%d of %d files selected", state.SelectedCount, state.FileCount)}
	if state.HiddenAbove > 0 {
		parts = append(parts, fmt.Sprintf("↑ %d more above", state.HiddenAbove))
	}
	if state.HiddenBelow > 0 {
		parts = append(parts, fmt.Sprintf("↓ %d more below", state.HiddenBelow))
	}
	return r.styles.Scroll.Render(Truncate(strings.Join(parts, " | "), state.Width))
}
