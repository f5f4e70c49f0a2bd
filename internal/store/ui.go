package store

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/entrepeneur4lyf/sqlpilot/internal/config"
	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
)

// Theme is a presentation color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is a display locale
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
)

// PrefStorage persists presentation preferences between runs
type PrefStorage interface {
	LoadPrefs() (config.UIPrefs, error)
	SavePrefs(prefs config.UIPrefs) error
}

// UIStore holds pure presentation state. It carries no environment side
// effects itself: theme changes are published on the event bus and the
// presentation layer applies them.
type UIStore struct {
	mu               sync.RWMutex
	theme            Theme
	language         Language
	sidebarCollapsed bool

	prefs  PrefStorage
	bus    *events.Bus
	logger *log.Logger
}

// NewUIStore creates a UI preference store
func NewUIStore(prefs PrefStorage, bus *events.Bus, logger *log.Logger) *UIStore {
	if logger == nil {
		logger = log.Default()
	}
	return &UIStore{
		theme:    ThemeLight,
		language: LanguageEnglish,
		prefs:    prefs,
		bus:      bus,
		logger:   logger,
	}
}

// Theme returns the active theme
func (s *UIStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// IsDark reports whether the dark theme is active
func (s *UIStore) IsDark() bool {
	return s.Theme() == ThemeDark
}

// SetDark is the setter alias for the derived dark getter
func (s *UIStore) SetDark(dark bool) {
	if dark {
		s.SetTheme(ThemeDark)
	} else {
		s.SetTheme(ThemeLight)
	}
}

// SetTheme switches the theme and publishes the change for the
// presentation layer to apply
func (s *UIStore) SetTheme(theme Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	s.publishTheme(theme)
	s.persist()
}

// ToggleTheme flips between light and dark
func (s *UIStore) ToggleTheme() {
	if s.IsDark() {
		s.SetTheme(ThemeLight)
	} else {
		s.SetTheme(ThemeDark)
	}
}

// Language returns the active display language
func (s *UIStore) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage switches the language and writes straight through to
// persistent storage
func (s *UIStore) SetLanguage(language Language) {
	s.mu.Lock()
	s.language = language
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.UI.Publish(events.UILanguageChanged, events.UIPayload{Language: string(language)})
	}
	s.persist()
}

// ToggleLanguage flips between English and Japanese
func (s *UIStore) ToggleLanguage() {
	if s.Language() == LanguageEnglish {
		s.SetLanguage(LanguageJapanese)
	} else {
		s.SetLanguage(LanguageEnglish)
	}
}

// IsSidebarCollapsed reports the sidebar state
func (s *UIStore) IsSidebarCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarCollapsed
}

// SetSidebarCollapsed sets the sidebar state
func (s *UIStore) SetSidebarCollapsed(collapsed bool) {
	s.mu.Lock()
	s.sidebarCollapsed = collapsed
	s.mu.Unlock()
	s.persist()
}

// ToggleSidebar flips the sidebar state
func (s *UIStore) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarCollapsed = !s.sidebarCollapsed
	s.mu.Unlock()
	s.persist()
}

// Initialize re-applies the active theme (by publishing it) and reconciles
// the language from persisted storage. Stored values other than the two
// known codes are ignored silently.
func (s *UIStore) Initialize() {
	if s.prefs != nil {
		if saved, err := s.prefs.LoadPrefs(); err == nil {
			s.mu.Lock()
			if saved.Theme == string(ThemeLight) || saved.Theme == string(ThemeDark) {
				s.theme = Theme(saved.Theme)
			}
			if saved.Language == string(LanguageEnglish) || saved.Language == string(LanguageJapanese) {
				s.language = Language(saved.Language)
			}
			s.sidebarCollapsed = saved.SidebarCollapsed
			s.mu.Unlock()
		}
	}

	s.publishTheme(s.Theme())
}

// publishTheme announces a theme for the presentation layer to apply
func (s *UIStore) publishTheme(theme Theme) {
	if s.bus != nil {
		s.bus.UI.Publish(events.UIThemeChanged, events.UIPayload{Theme: string(theme)})
	}
}

// persist writes the current preferences through to storage
func (s *UIStore) persist() {
	if s.prefs == nil {
		return
	}

	s.mu.RLock()
	prefs := config.UIPrefs{
		Theme:            string(s.theme),
		Language:         string(s.language),
		SidebarCollapsed: s.sidebarCollapsed,
	}
	s.mu.RUnlock()

	if err := s.prefs.SavePrefs(prefs); err != nil {
		s.logger.Warn("saving UI preferences failed", "error", err)
	}
}
