package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrepeneur4lyf/sqlpilot/internal/config"
	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
)

// memoryPrefs is an in-memory PrefStorage
type memoryPrefs struct {
	saved  []config.UIPrefs
	stored config.UIPrefs
	loadOK bool
}

func (m *memoryPrefs) LoadPrefs() (config.UIPrefs, error) {
	if !m.loadOK {
		return config.UIPrefs{}, errors.New("no prefs")
	}
	return m.stored, nil
}

func (m *memoryPrefs) SavePrefs(prefs config.UIPrefs) error {
	m.saved = append(m.saved, prefs)
	return nil
}

func newUIFixture(t *testing.T, prefs *memoryPrefs) (*UIStore, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	t.Cleanup(bus.Shutdown)
	return NewUIStore(prefs, bus, nil), bus
}

func TestUIStoreToggleThemePublishesAndPersists(t *testing.T) {
	prefs := &memoryPrefs{}
	store, bus := newUIFixture(t, prefs)

	uiCh, unsubscribe := bus.UI.Subscribe()
	defer unsubscribe()

	assert.False(t, store.IsDark())
	store.ToggleTheme()

	assert.True(t, store.IsDark())
	assert.Equal(t, ThemeDark, store.Theme())

	event := <-uiCh
	assert.Equal(t, events.UIThemeChanged, event.Type)
	assert.Equal(t, "dark", event.Payload.Theme)

	require.NotEmpty(t, prefs.saved)
	assert.Equal(t, "dark", prefs.saved[len(prefs.saved)-1].Theme)

	store.ToggleTheme()
	assert.False(t, store.IsDark())
}

func TestUIStoreSetDark(t *testing.T) {
	store, _ := newUIFixture(t, &memoryPrefs{})

	store.SetDark(true)
	assert.Equal(t, ThemeDark, store.Theme())

	store.SetDark(false)
	assert.Equal(t, ThemeLight, store.Theme())
}

func TestUIStoreLanguageWriteThrough(t *testing.T) {
	prefs := &memoryPrefs{}
	store, bus := newUIFixture(t, prefs)

	uiCh, unsubscribe := bus.UI.Subscribe()
	defer unsubscribe()

	store.ToggleLanguage()
	assert.Equal(t, LanguageJapanese, store.Language())

	event := <-uiCh
	assert.Equal(t, events.UILanguageChanged, event.Type)
	assert.Equal(t, "ja", event.Payload.Language)

	require.NotEmpty(t, prefs.saved)
	assert.Equal(t, "ja", prefs.saved[len(prefs.saved)-1].Language)

	store.ToggleLanguage()
	assert.Equal(t, LanguageEnglish, store.Language())
}

func TestUIStoreSidebar(t *testing.T) {
	prefs := &memoryPrefs{}
	store, _ := newUIFixture(t, prefs)

	assert.False(t, store.IsSidebarCollapsed())
	store.ToggleSidebar()
	assert.True(t, store.IsSidebarCollapsed())

	require.NotEmpty(t, prefs.saved)
	assert.True(t, prefs.saved[len(prefs.saved)-1].SidebarCollapsed)
}

func TestUIStoreInitializeLoadsStoredPrefs(t *testing.T) {
	prefs := &memoryPrefs{
		loadOK: true,
		stored: config.UIPrefs{Theme: "dark", Language: "ja", SidebarCollapsed: true},
	}
	store, bus := newUIFixture(t, prefs)

	uiCh, unsubscribe := bus.UI.Subscribe()
	defer unsubscribe()

	store.Initialize()

	assert.Equal(t, ThemeDark, store.Theme())
	assert.Equal(t, LanguageJapanese, store.Language())
	assert.True(t, store.IsSidebarCollapsed())

	// Initialize re-announces the theme so the presentation layer applies it
	event := <-uiCh
	assert.Equal(t, events.UIThemeChanged, event.Type)
	assert.Equal(t, "dark", event.Payload.Theme)
}

func TestUIStoreInitializeIgnoresUnknownValues(t *testing.T) {
	prefs := &memoryPrefs{
		loadOK: true,
		stored: config.UIPrefs{Theme: "solarized", Language: "fr"},
	}
	store, _ := newUIFixture(t, prefs)

	store.Initialize()

	assert.Equal(t, ThemeLight, store.Theme())
	assert.Equal(t, LanguageEnglish, store.Language())
}
