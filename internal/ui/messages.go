package ui

// Outcome is how the session ended
type Outcome int

const (
	// OutcomeNone means the program is still running, or stopped without a
	// terminal key (for example when the terminal closed)
	OutcomeNone Outcome = iota
	// OutcomeQuit means the user abandoned the session
	OutcomeQuit
	// OutcomeConfirm means the user asked for the selection to be exported
	OutcomeConfirm
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeConfirm:
		return "confirm"
	default:
		return "none"
	}
}

// previewDoneMsg reports that the pager closed, or could not be opened
type previewDoneMsg struct {
	path string
	err  error
}
