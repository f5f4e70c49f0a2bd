package page

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

// errNotAuthenticated reports a login that completed without establishing
// a session (the profile fetch self-healed into a logged-out state).
var errNotAuthenticated = errors.New("login did not establish a session")

// Model is the contract every page implements. Pages render store state
// and invoke store actions; they never talk to the HTTP layer directly.
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	SetSize(width, height int)
	SetTheme(th theme.Theme)
}

// NavigateMsg asks the application shell to move to another route
type NavigateMsg struct {
	Path string
}

// Navigate builds a navigation command
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}
