package toast

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

// ShowToastMsg is a message to display a toast notification
type ShowToastMsg struct {
	Title    string
	Message  string
	Level    string
	Duration time.Duration
}

// DismissToastMsg is a message to dismiss a specific toast
type DismissToastMsg struct {
	ID string
}

// Toast represents a single toast notification
type Toast struct {
	ID        string
	Title     string
	Message   string
	Level     string
	CreatedAt time.Time
	Duration  time.Duration
}

// Manager manages stacked toast notifications
type Manager struct {
	toasts []Toast
	theme  theme.Theme
}

// NewManager creates a new toast manager
func NewManager(th theme.Theme) *Manager {
	return &Manager{theme: th}
}

// SetTheme swaps the palette the toasts render with
func (m *Manager) SetTheme(th theme.Theme) {
	m.theme = th
}

// Update handles messages for the toast manager
func (m *Manager) Update(msg tea.Msg) (*Manager, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowToastMsg:
		toast := Toast{
			ID:        fmt.Sprintf("toast-%d", time.Now().UnixNano()),
			Title:     msg.Title,
			Message:   msg.Message,
			Level:     msg.Level,
			CreatedAt: time.Now(),
			Duration:  msg.Duration,
		}
		if toast.Duration <= 0 {
			toast.Duration = 5 * time.Second
		}

		m.toasts = append(m.toasts, toast)

		return m, tea.Tick(toast.Duration, func(time.Time) tea.Msg {
			return DismissToastMsg{ID: toast.ID}
		})

	case DismissToastMsg:
		var remaining []Toast
		for _, t := range m.toasts {
			if t.ID != msg.ID {
				remaining = append(remaining, t)
			}
		}
		m.toasts = remaining
	}

	return m, nil
}

// levelColor maps a notification level to its accent color
func (m *Manager) levelColor(level string) lipgloss.TerminalColor {
	switch level {
	case "success":
		return m.theme.Success()
	case "warning":
		return m.theme.Warning()
	case "error":
		return m.theme.Error()
	default:
		return m.theme.Info()
	}
}

// renderSingleToast renders one toast box
func (m *Manager) renderSingleToast(toast Toast, width int) string {
	color := m.levelColor(toast.Level)

	baseStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text()).
		Background(m.theme.BackgroundSecondary()).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)

	maxWidth := max(40, width/3)
	contentMaxWidth := max(maxWidth-6, 20)

	var content strings.Builder
	if toast.Title != "" {
		titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
		content.WriteString(titleStyle.Render(toast.Title))
		content.WriteString("\n")
	}

	messageStyle := lipgloss.NewStyle()
	if lipgloss.Width(toast.Message) > contentMaxWidth {
		messageStyle = messageStyle.Width(contentMaxWidth)
	}
	content.WriteString(messageStyle.Render(toast.Message))

	return baseStyle.MaxWidth(maxWidth).Render(content.String())
}

// View renders the active toast stack, newest last
func (m *Manager) View(width int) string {
	if len(m.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(m.toasts))
	for _, toast := range m.toasts {
		rendered = append(rendered, m.renderSingleToast(toast, width))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// HasToasts reports whether any toast is visible
func (m *Manager) HasToasts() bool {
	return len(m.toasts) > 0
}
