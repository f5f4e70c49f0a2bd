package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// DarkTheme is the dark presentation theme
type DarkTheme struct {
	BaseTheme
}

// NewDarkTheme creates a new instance of the dark theme
func NewDarkTheme() *DarkTheme {
	theme := &DarkTheme{}
	theme.ThemeName = "dark"

	theme.PrimaryColor = lipgloss.Color("#1C7CD6")
	theme.AccentColor = lipgloss.Color("#FFF3BF")

	theme.ErrorColor = lipgloss.Color("#F03E3E")
	theme.WarningColor = lipgloss.Color("#F59F00")
	theme.SuccessColor = lipgloss.Color("#37B24D")
	theme.InfoColor = lipgloss.Color("#72C3FC")

	theme.TextColor = lipgloss.Color("#F2F4F8")
	theme.TextMutedColor = lipgloss.Color("#A2B0CD")

	theme.BackgroundColor = lipgloss.Color("#0E121B")
	theme.BackgroundSecondaryColor = lipgloss.Color("#1D2535")
	theme.BorderColor = lipgloss.Color("#2B3750")

	return theme
}
