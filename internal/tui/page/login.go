package page

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/sqlpilot/internal/app"
	"github.com/entrepeneur4lyf/sqlpilot/internal/router"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

// loginResultMsg carries the outcome of a login attempt
type loginResultMsg struct {
	err error
}

// Login is the sign-in page
type Login struct {
	app      *app.App
	theme    theme.Theme
	email    textinput.Model
	password textinput.Model
	focused  int
	errMsg   string
	busy     bool
	width    int
	height   int

	// redirect is the protected path to restore after a successful login
	redirect string
}

// NewLogin creates the login page
func NewLogin(application *app.App, th theme.Theme) *Login {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Login{
		app:      application,
		theme:    th,
		email:    email,
		password: password,
	}
}

// SetRedirect stores the path to restore after login
func (l *Login) SetRedirect(path string) {
	l.redirect = path
}

// Init implements Model
func (l *Login) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize implements Model
func (l *Login) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.email.Width = min(48, width-8)
	l.password.Width = min(48, width-8)
}

// SetTheme implements Model
func (l *Login) SetTheme(th theme.Theme) {
	l.theme = th
}

// Update implements Model
func (l *Login) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			l.focused = (l.focused + 1) % 2
			if l.focused == 0 {
				l.email.Focus()
				l.password.Blur()
			} else {
				l.email.Blur()
				l.password.Focus()
			}
			return l, nil
		case "enter":
			if l.busy {
				return l, nil
			}
			l.busy = true
			l.errMsg = ""
			return l, l.loginCmd(l.email.Value(), l.password.Value())
		case "ctrl+r":
			return l, Navigate(router.PathRegister)
		}

	case loginResultMsg:
		l.busy = false
		if msg.err != nil {
			l.errMsg = msg.err.Error()
			return l, nil
		}
		target := l.redirect
		l.redirect = ""
		if target == "" {
			target = router.DefaultPath
		}
		return l, Navigate(target)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	l.email, cmd = l.email.Update(msg)
	cmds = append(cmds, cmd)
	l.password, cmd = l.password.Update(msg)
	cmds = append(cmds, cmd)
	return l, tea.Batch(cmds...)
}

// loginCmd performs the login store action off the UI loop
func (l *Login) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		err := l.app.Auth.Login(context.Background(), email, password)
		if err == nil && !l.app.Auth.IsAuthenticated() {
			// Profile fetch failed and self-healed into logged-out state
			err = errNotAuthenticated
		}
		return loginResultMsg{err: err}
	}
}

// View implements Model
func (l *Login) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(l.theme.Primary()).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(l.theme.TextMuted())
	errorStyle := lipgloss.NewStyle().Foreground(l.theme.Error())

	var body string
	body += titleStyle.Render("SQL Pilot · Sign in") + "\n\n"
	body += l.email.View() + "\n"
	body += l.password.View() + "\n\n"
	if l.busy {
		body += mutedStyle.Render("Signing in...") + "\n"
	}
	if l.errMsg != "" {
		body += errorStyle.Render(l.errMsg) + "\n"
	}
	body += "\n" + mutedStyle.Render("enter sign in • ctrl+r register • ctrl+c quit")

	box := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(l.theme.Border()).
		Render(body)

	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}
