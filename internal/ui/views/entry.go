package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"codexport/internal/domain"
)

const (
	dirIcon  = "📁 "
	fileIcon = "📄 "
)

// EntryRenderer handles rendering of a single entry row
type EntryRenderer struct {
	styles *Styles
}

// NewEntryRenderer creates a new entry renderer
func NewEntryRenderer(styles *Styles) *EntryRenderer {
	return &EntryRenderer{styles: styles}
}

// RenderEntry renders an entry as icon plus path, truncated to width-1 cells
func (r *EntryRenderer) RenderEntry(entry domain.Entry, isCursor bool, width int) string {
	icon := fileIcon
	if entry.IsDir {
		icon = dirIcon
	}
	line := Truncate(icon+entry.Path, width)
	return r.styleFor(entry, isCursor).Render(line)
}

// styleFor picks the row attributes. Selection wins over the directory color
// and both combine with the cursor highlight.
func (r *EntryRenderer) styleFor(entry domain.Entry, isCursor bool) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case entry.Selected:
		style = r.styles.Selected
	case entry.IsDir:
		style = r.styles.Directory
	default:
		style = r.styles.File
	}
	if isCursor {
		style = style.Inherit(r.styles.Cursor)
	}
	return style
}

// Truncate cuts s so it fits in width-1 terminal cells. The last column is
// kept free so a full-width row never wraps. A non-positive width leaves s
// untouched.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	limit := width - 1
	if limit < 0 {
		limit = 0
	}
	return runewidth.Truncate(s, limit, "")
}
