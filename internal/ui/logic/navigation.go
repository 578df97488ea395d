package logic

// Navigator handles cursor movement and viewport management over a list of
// visible rows. Positions are row numbers in the visible list, not indices
// into the underlying entries.
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, totalItems int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.totalItems = totalItems
	if n.viewportHeight < 1 {
		n.viewportHeight = 1
	}
}

// GetSelectedIndex returns the current selected row
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the first visible row
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// SetSelectedIndex moves the cursor to index, clamped to the list, and
// scrolls so it stays visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move moves the cursor by delta rows
func (n *Navigator) Move(delta int) (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageUp moves the cursor one viewport up
func (n *Navigator) PageUp() (int, int) {
	return n.Move(-n.viewportHeight)
}

// PageDown moves the cursor one viewport down
func (n *Navigator) PageDown() (int, int) {
	return n.Move(n.viewportHeight)
}

// EnsureVisible re-applies the viewport rules without moving the cursor,
// used after the terminal was resized
func (n *Navigator) EnsureVisible() (int, int) {
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.totalItems <= 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return
	}

	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	if n.selectedIndex > n.totalItems-1 {
		n.selectedIndex = n.totalItems - 1
	}

	// If selected item is above viewport, scroll up
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	// If selected item is below viewport, scroll down
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
