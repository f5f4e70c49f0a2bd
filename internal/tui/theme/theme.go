package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color surface the views draw from
type Theme interface {
	Name() string

	Primary() lipgloss.TerminalColor
	Accent() lipgloss.TerminalColor

	Error() lipgloss.TerminalColor
	Warning() lipgloss.TerminalColor
	Success() lipgloss.TerminalColor
	Info() lipgloss.TerminalColor

	Text() lipgloss.TerminalColor
	TextMuted() lipgloss.TerminalColor

	Background() lipgloss.TerminalColor
	BackgroundSecondary() lipgloss.TerminalColor
	Border() lipgloss.TerminalColor
}

// BaseTheme provides the common theme implementation
type BaseTheme struct {
	ThemeName string

	PrimaryColor lipgloss.TerminalColor
	AccentColor  lipgloss.TerminalColor

	ErrorColor   lipgloss.TerminalColor
	WarningColor lipgloss.TerminalColor
	SuccessColor lipgloss.TerminalColor
	InfoColor    lipgloss.TerminalColor

	TextColor      lipgloss.TerminalColor
	TextMutedColor lipgloss.TerminalColor

	BackgroundColor          lipgloss.TerminalColor
	BackgroundSecondaryColor lipgloss.TerminalColor
	BorderColor              lipgloss.TerminalColor
}

func (t *BaseTheme) Name() string                              { return t.ThemeName }
func (t *BaseTheme) Primary() lipgloss.TerminalColor           { return t.PrimaryColor }
func (t *BaseTheme) Accent() lipgloss.TerminalColor            { return t.AccentColor }
func (t *BaseTheme) Error() lipgloss.TerminalColor             { return t.ErrorColor }
func (t *BaseTheme) Warning() lipgloss.TerminalColor           { return t.WarningColor }
func (t *BaseTheme) Success() lipgloss.TerminalColor           { return t.SuccessColor }
func (t *BaseTheme) Info() lipgloss.TerminalColor              { return t.InfoColor }
func (t *BaseTheme) Text() lipgloss.TerminalColor              { return t.TextColor }
func (t *BaseTheme) TextMuted() lipgloss.TerminalColor         { return t.TextMutedColor }
func (t *BaseTheme) Background() lipgloss.TerminalColor        { return t.BackgroundColor }
func (t *BaseTheme) BackgroundSecondary() lipgloss.TerminalColor {
	return t.BackgroundSecondaryColor
}
func (t *BaseTheme) Border() lipgloss.TerminalColor { return t.BorderColor }

// ForName resolves a theme by its preference name, defaulting to light
func ForName(name string) Theme {
	if name == "dark" {
		return NewDarkTheme()
	}
	return NewLightTheme()
}
