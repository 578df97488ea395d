package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"codexport/internal/ui/input/types"
)

type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", " Filter: ", ti),
	}
}

// Enter starts with an empty line and shows the active pattern as placeholder
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	if m.textInput != nil {
		m.textInput.Placeholder = ctx.FilterPattern()
	}
	return actions
}
