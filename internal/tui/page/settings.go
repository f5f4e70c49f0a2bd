package page

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/app"
	"github.com/entrepeneur4lyf/sqlpilot/internal/router"
	"github.com/entrepeneur4lyf/sqlpilot/internal/store"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

// healthCheckedMsg carries the backend health probe result
type healthCheckedMsg struct {
	health *api.HealthResponse
	err    error
}

// Settings is the preferences and session page
type Settings struct {
	app    *app.App
	theme  theme.Theme
	width  int
	height int

	health    *api.HealthResponse
	healthErr string
}

// NewSettings creates the settings page
func NewSettings(application *app.App, th theme.Theme) *Settings {
	return &Settings{
		app:   application,
		theme: th,
	}
}

// Init implements Model
func (s *Settings) Init() tea.Cmd {
	return s.healthCmd()
}

// SetSize implements Model
func (s *Settings) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetTheme implements Model
func (s *Settings) SetTheme(th theme.Theme) {
	s.theme = th
}

// Update implements Model
func (s *Settings) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			s.app.UI.ToggleTheme()
			return s, nil
		case "l":
			s.app.UI.ToggleLanguage()
			return s, nil
		case "b":
			s.app.UI.ToggleSidebar()
			return s, nil
		case "h":
			return s, s.healthCmd()
		case "L":
			s.app.Auth.Logout()
			return s, Navigate(router.PathLogin)
		}

	case healthCheckedMsg:
		s.health = msg.health
		s.healthErr = ""
		if msg.err != nil {
			s.healthErr = msg.err.Error()
		}
		return s, nil
	}

	return s, nil
}

// healthCmd probes backend readiness
func (s *Settings) healthCmd() tea.Cmd {
	return func() tea.Msg {
		health, err := s.app.Client.Health(context.Background())
		return healthCheckedMsg{health: health, err: err}
	}
}

// View implements Model
func (s *Settings) View() string {
	headingStyle := lipgloss.NewStyle().Foreground(s.theme.Primary()).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(s.theme.TextMuted()).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(s.theme.Text())
	errorStyle := lipgloss.NewStyle().Foreground(s.theme.Error())
	okStyle := lipgloss.NewStyle().Foreground(s.theme.Success())

	line := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	var body string
	body += headingStyle.Render("Session") + "\n"
	if user := s.app.Auth.User(); user != nil {
		body += line("User", user.Username)
		body += line("Email", user.Email)
	} else {
		body += line("User", "not signed in")
	}

	body += "\n" + headingStyle.Render("Preferences") + "\n"
	body += line("Theme", string(s.app.UI.Theme()))
	body += line("Language", languageName(s.app.UI.Language()))
	body += line("Sidebar", sidebarState(s.app.UI.IsSidebarCollapsed()))

	body += "\n" + headingStyle.Render("Backend") + "\n"
	body += line("URL", s.app.Client.BaseURL())
	switch {
	case s.healthErr != "":
		body += labelStyle.Render("Health") + errorStyle.Render(s.healthErr) + "\n"
	case s.health != nil:
		body += labelStyle.Render("Health") + okStyle.Render(s.health.Status) + "\n"
		if s.health.Database != "" {
			body += line("Database", s.health.Database)
		}
		body += line("Training", fmt.Sprintf("%d entries", s.health.TrainingDataCount))
		if s.health.Version != "" {
			body += line("Version", s.health.Version)
		}
	default:
		body += line("Health", "checking...")
	}

	mutedStyle := lipgloss.NewStyle().Foreground(s.theme.TextMuted())
	body += "\n" + mutedStyle.Render("t theme • l language • b sidebar • h re-check health • L log out")

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

// languageName returns the display name for a language code
func languageName(language store.Language) string {
	if language == store.LanguageJapanese {
		return "日本語 (ja)"
	}
	return "English (en)"
}

// sidebarState formats the sidebar preference
func sidebarState(collapsed bool) string {
	if collapsed {
		return "collapsed"
	}
	return "expanded"
}
