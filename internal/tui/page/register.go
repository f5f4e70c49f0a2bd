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

// registerResultMsg carries the outcome of a registration attempt
type registerResultMsg struct {
	err error
}

// Register is the account creation page
type Register struct {
	app     *app.App
	theme   theme.Theme
	inputs  []textinput.Model
	focused int
	errMsg  string
	busy    bool
	width   int
	height  int
}

// NewRegister creates the registration page
func NewRegister(application *app.App, th theme.Theme) *Register {
	labels := []string{"email", "username", "password"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		input := textinput.New()
		input.Placeholder = label
		input.CharLimit = 128
		inputs[i] = input
	}
	inputs[0].Focus()
	inputs[2].EchoMode = textinput.EchoPassword
	inputs[2].EchoCharacter = '•'

	return &Register{
		app:    application,
		theme:  th,
		inputs: inputs,
	}
}

// Init implements Model
func (r *Register) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize implements Model
func (r *Register) SetSize(width, height int) {
	r.width = width
	r.height = height
	for i := range r.inputs {
		r.inputs[i].Width = min(48, width-8)
	}
}

// SetTheme implements Model
func (r *Register) SetTheme(th theme.Theme) {
	r.theme = th
}

// Update implements Model
func (r *Register) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			r.focus((r.focused + 1) % len(r.inputs))
			return r, nil
		case "shift+tab", "up":
			r.focus((r.focused + len(r.inputs) - 1) % len(r.inputs))
			return r, nil
		case "enter":
			if r.busy {
				return r, nil
			}
			r.busy = true
			r.errMsg = ""
			return r, r.registerCmd(r.inputs[0].Value(), r.inputs[1].Value(), r.inputs[2].Value())
		case "ctrl+l":
			return r, Navigate(router.PathLogin)
		}

	case registerResultMsg:
		r.busy = false
		if msg.err != nil {
			r.errMsg = msg.err.Error()
			return r, nil
		}
		return r, Navigate(router.DefaultPath)
	}

	var cmds []tea.Cmd
	for i := range r.inputs {
		var cmd tea.Cmd
		r.inputs[i], cmd = r.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return r, tea.Batch(cmds...)
}

// focus moves input focus
func (r *Register) focus(index int) {
	r.focused = index
	for i := range r.inputs {
		if i == index {
			r.inputs[i].Focus()
		} else {
			r.inputs[i].Blur()
		}
	}
}

// registerCmd performs the registration store action off the UI loop
func (r *Register) registerCmd(email, username, password string) tea.Cmd {
	return func() tea.Msg {
		err := r.app.Auth.Register(context.Background(), email, username, password)
		if err == nil && !r.app.Auth.IsAuthenticated() {
			err = errNotAuthenticated
		}
		return registerResultMsg{err: err}
	}
}

// View implements Model
func (r *Register) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(r.theme.Primary()).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(r.theme.TextMuted())
	errorStyle := lipgloss.NewStyle().Foreground(r.theme.Error())

	var body string
	body += titleStyle.Render("SQL Pilot · Create account") + "\n\n"
	for i := range r.inputs {
		body += r.inputs[i].View() + "\n"
	}
	body += "\n"
	if r.busy {
		body += mutedStyle.Render("Creating account...") + "\n"
	}
	if r.errMsg != "" {
		body += errorStyle.Render(r.errMsg) + "\n"
	}
	body += "\n" + mutedStyle.Render("enter register • ctrl+l back to login")

	box := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.theme.Border()).
		Render(body)

	return lipgloss.Place(r.width, r.height, lipgloss.Center, lipgloss.Center, box)
}
