package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"codexport/internal/ui/input"
	inputtypes "codexport/internal/ui/input/types"
	"codexport/internal/ui/state"
	"codexport/internal/ui/views"
)

// chromeLines is the number of screen lines not used by entry rows: the
// header, the filter line and the status line
const chromeLines = 3

// Model represents the UI state
type Model struct {
	state *state.AppState

	// UI-specific state not in AppState
	width         int
	height        int
	help          help.Model
	keys          inputtypes.KeyMap
	statusIsError bool
	outcome       Outcome

	renderer     *views.Renderer
	inputHandler *input.Handler
	previewer    *Previewer
	logger       *zap.Logger
}

// NewModel creates a new UI model over scanned state. previewer may be nil,
// which disables the preview key.
func NewModel(appState *state.AppState, previewer *Previewer, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := inputtypes.DefaultKeyMap()
	m := &Model{
		state:        appState,
		help:         help.New(),
		keys:         keys,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(keys),
		previewer:    previewer,
		logger:       logger,
	}

	styles := m.renderer.Styles()
	m.help.ShortSeparator = " | "
	m.help.Styles.ShortKey = styles.LegendKey
	m.help.Styles.ShortDesc = styles.LegendDesc
	m.help.Styles.ShortSeparator = styles.LegendDivider
	m.help.Styles.Ellipsis = styles.LegendDivider

	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Outcome reports how the session ended
func (m *Model) Outcome() Outcome {
	return m.outcome
}

// State returns the selection state
func (m *Model) State() *state.AppState {
	return m.state
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - len(views.Title) - 4
		m.state.SetViewportHeight(msg.Height - chromeLines)

	case tea.KeyMsg:
		m.clearStatus()

		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case previewDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Cannot preview %s: %v", msg.path, msg.err))
		}

	default:
		return m, m.inputHandler.Update(msg)
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	visible := m.state.Visible()
	rows := m.state.Window()
	above := 0
	if len(rows) > 0 {
		for _, idx := range visible {
			if idx >= rows[0] {
				break
			}
			above++
		}
	}

	viewState := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Entries:       m.state.Entries,
		Rows:          rows,
		Cursor:        m.state.Cursor,
		FilterPattern: m.state.FilterPattern(),
		Legend:        m.help.View(m.keys),
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.statusIsError,
		SelectedCount: m.state.SelectedCount(),
		FileCount:     m.state.FileCount(),
		HiddenAbove:   above,
		HiddenBelow:   len(visible) - above - len(rows),
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		viewState.Filtering = true
		viewState.FilterPrompt = m.inputHandler.Prompt()
		viewState.FilterInput = ti.View()
	}

	return m.renderer.Render(viewState)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("processAction", zap.String("action", action.Type()))

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.state.Move(-1)
		case "down":
			m.state.Move(1)
		case "pageup":
			m.state.PageUp()
		case "pagedown":
			m.state.PageDown()
		case "home":
			m.state.Home()
		case "end":
			m.state.End()
		}

	case inputtypes.ToggleSelectAction:
		if entry, ok := m.state.ToggleCurrent(); ok {
			m.logger.Debug("Toggled entry",
				zap.String("path", entry.Path),
				zap.Bool("selected", entry.Selected))
		}

	case inputtypes.SelectAllAction:
		changed := m.state.SelectAll(a.Select)
		m.logger.Debug("Bulk selection",
			zap.Bool("select", a.Select),
			zap.String("filter", m.state.FilterPattern()),
			zap.Int("changed", changed))

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.state.SetFilter(a.Text)
			m.logger.Info("Filter changed", zap.String("pattern", m.state.FilterPattern()))
			if !m.state.FilterValid() {
				m.setError(fmt.Sprintf("Invalid pattern %q, matching it literally", m.state.FilterPattern()))
			}
		}

	case inputtypes.CancelTextAction:
		// The previous pattern stays active

	case inputtypes.UpdateTextAction:
		// The text input renders itself

	case inputtypes.PreviewAction:
		if m.previewer != nil {
			return m.previewer.Command(a.Path)
		}

	case inputtypes.ConfirmAction:
		m.outcome = OutcomeConfirm
		m.logger.Info("Selection confirmed", zap.Int("files", m.state.SelectedCount()))
		return tea.Quit

	case inputtypes.QuitAction:
		m.outcome = OutcomeQuit
		m.logger.Info("Quit", zap.Bool("force", a.Force))
		return tea.Quit
	}

	return nil
}

func (m *Model) setError(msg string) {
	m.state.StatusMessage = msg
	m.statusIsError = true
}

func (m *Model) clearStatus() {
	m.state.StatusMessage = ""
	m.statusIsError = false
}
