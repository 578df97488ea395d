package input

import (
	"codexport/internal/ui/state"
)

// ModelContext implements types.Context over the application state
type ModelContext struct {
	State *state.AppState
}

func (c *ModelContext) VisibleItems() int {
	return len(c.State.Visible())
}

func (c *ModelContext) CurrentPath() string {
	entry, ok := c.State.Current()
	if !ok || !c.State.Matches(c.State.Cursor) {
		return ""
	}
	return entry.Path
}

func (c *ModelContext) IsOnDirectory() bool {
	entry, ok := c.State.Current()
	return ok && entry.IsDir
}

func (c *ModelContext) FilterPattern() string {
	return c.State.FilterPattern()
}
