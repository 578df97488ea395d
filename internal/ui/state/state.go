package state

import (
	"codexport/internal/domain"
	"codexport/internal/ui/logic"
)

// AppState contains all the selection state of a session
type AppState struct {
	// Scan data, in scan order. Never grows or shrinks after the scan.
	Entries []domain.Entry

	// Cursor and Offset index into Entries. Offset is the first row shown.
	Cursor int
	Offset int

	// ViewportHeight is the number of entry rows that fit on screen
	ViewportHeight int

	// UI state
	StatusMessage string

	filter *logic.GlobFilter
}

// NewAppState creates a new application state over scanned entries
func NewAppState(entries []domain.Entry) *AppState {
	return &AppState{
		Entries:        entries,
		ViewportHeight: 20, // Default until the first resize
		filter:         logic.NewGlobFilter(logic.DefaultPattern),
	}
}

// FilterPattern returns the active glob pattern
func (s *AppState) FilterPattern() string {
	return s.filter.Pattern()
}

// FilterValid reports whether the active pattern compiled as a glob. An
// invalid pattern only matches the identical path.
func (s *AppState) FilterValid() bool {
	return s.filter.Valid()
}

// Matches reports whether the entry at index passes the active filter
func (s *AppState) Matches(index int) bool {
	return s.filter.Matches(s.Entries[index].Path)
}

// SetFilter replaces the filter pattern. Selection flags are left untouched;
// the cursor moves to the nearest visible entry.
func (s *AppState) SetFilter(pattern string) {
	s.filter = logic.NewGlobFilter(pattern)
	s.snapCursor()
}

// Selection operations

// SelectAll sets the selected flag of every file entry matching the filter.
// Directories are never affected.
func (s *AppState) SelectAll(selected bool) int {
	changed := 0
	for i := range s.Entries {
		e := &s.Entries[i]
		if !e.IsFile() || !s.filter.Matches(e.Path) {
			continue
		}
		if e.Selected != selected {
			changed++
		}
		e.Selected = selected
	}
	return changed
}

// DeselectAll clears the selected flag of every file entry matching the filter
func (s *AppState) DeselectAll() int {
	return s.SelectAll(false)
}

// ToggleCurrent flips the entry under the cursor, whatever the filter says.
// Toggling a directory does not touch the files below it.
func (s *AppState) ToggleCurrent() (domain.Entry, bool) {
	if len(s.Entries) == 0 {
		return domain.Entry{}, false
	}
	e := &s.Entries[s.Cursor]
	e.Selected = !e.Selected
	return *e, true
}

// Current returns the entry under the cursor
func (s *AppState) Current() (domain.Entry, bool) {
	if len(s.Entries) == 0 {
		return domain.Entry{}, false
	}
	return s.Entries[s.Cursor], true
}

// SelectedFiles returns the selected file entries in scan order
func (s *AppState) SelectedFiles() []domain.Entry {
	var files []domain.Entry
	for _, e := range s.Entries {
		if e.Selected && e.IsFile() {
			files = append(files, e)
		}
	}
	return files
}

// SelectedCount returns the number of selected file entries
func (s *AppState) SelectedCount() int {
	return len(s.SelectedFiles())
}

// FileCount returns the number of file entries, selected or not
func (s *AppState) FileCount() int {
	n := 0
	for _, e := range s.Entries {
		if e.IsFile() {
			n++
		}
	}
	return n
}

// Visible returns the indices of the entries passing the filter, in order
func (s *AppState) Visible() []int {
	visible := make([]int, 0, len(s.Entries))
	for i := range s.Entries {
		if s.Matches(i) {
			visible = append(visible, i)
		}
	}
	return visible
}

// Window returns the indices of the visible entries that fit on screen,
// starting at Offset
func (s *AppState) Window() []int {
	height := s.ViewportHeight
	if height < 1 {
		height = 1
	}
	var rows []int
	for i := s.Offset; i < len(s.Entries) && len(rows) < height; i++ {
		if s.Matches(i) {
			rows = append(rows, i)
		}
	}
	return rows
}

// Navigation

// Move moves the cursor by delta visible entries
func (s *AppState) Move(delta int) {
	s.navigate(func(n *logic.Navigator) (int, int) { return n.Move(delta) })
}

// PageUp moves the cursor up by one screen
func (s *AppState) PageUp() {
	s.navigate((*logic.Navigator).PageUp)
}

// PageDown moves the cursor down by one screen
func (s *AppState) PageDown() {
	s.navigate((*logic.Navigator).PageDown)
}

// Home moves the cursor to the first visible entry
func (s *AppState) Home() {
	s.navigate(func(n *logic.Navigator) (int, int) { return n.SetSelectedIndex(0) })
}

// End moves the cursor to the last visible entry
func (s *AppState) End() {
	s.navigate(func(n *logic.Navigator) (int, int) { return n.SetSelectedIndex(len(s.Entries)) })
}

// SetViewportHeight records the rows available for entries and scrolls so
// the cursor stays on screen
func (s *AppState) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.ViewportHeight = height
	s.navigate((*logic.Navigator).EnsureVisible)
}

// navigate runs a navigator step in visible-row space and maps the result
// back to entry indices
func (s *AppState) navigate(step func(*logic.Navigator) (int, int)) {
	visible := s.Visible()
	if len(visible) == 0 {
		return
	}

	nav := logic.NewNavigator()
	nav.UpdateState(rowOf(visible, s.Cursor), rowOf(visible, s.Offset), s.ViewportHeight, len(visible))
	row, offset := step(nav)

	s.Cursor = visible[row]
	s.Offset = visible[offset]
}

// snapCursor keeps the cursor on a visible entry after the filter changed,
// preferring the next one, then the previous one
func (s *AppState) snapCursor() {
	visible := s.Visible()
	if len(visible) == 0 {
		return
	}
	row := rowOf(visible, s.Cursor)
	s.Cursor = visible[row]
	if s.Offset > s.Cursor {
		s.Offset = s.Cursor
	}
	s.navigate((*logic.Navigator).EnsureVisible)
}

// rowOf returns the row of the first visible entry at or after index, or the
// last row when there is none
func rowOf(visible []int, index int) int {
	for row, i := range visible {
		if i >= index {
			return row
		}
	}
	return len(visible) - 1
}
