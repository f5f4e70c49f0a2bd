package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// LightTheme is the default presentation theme
type LightTheme struct {
	BaseTheme
}

// NewLightTheme creates a new instance of the light theme
func NewLightTheme() *LightTheme {
	theme := &LightTheme{}
	theme.ThemeName = "light"

	theme.PrimaryColor = lipgloss.Color("#1862AB")
	theme.AccentColor = lipgloss.Color("#B8860B")

	theme.ErrorColor = lipgloss.Color("#C92A2A")
	theme.WarningColor = lipgloss.Color("#E67700")
	theme.SuccessColor = lipgloss.Color("#2B8A3E")
	theme.InfoColor = lipgloss.Color("#1098AD")

	theme.TextColor = lipgloss.Color("#0E121B")
	theme.TextMutedColor = lipgloss.Color("#6C757D")

	theme.BackgroundColor = lipgloss.Color("#FFFFFF")
	theme.BackgroundSecondaryColor = lipgloss.Color("#F5F5F5")
	theme.BorderColor = lipgloss.Color("#DEE2E6")

	return theme
}
