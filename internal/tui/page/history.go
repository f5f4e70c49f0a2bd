package page

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/sqlpilot/internal/app"
	"github.com/entrepeneur4lyf/sqlpilot/internal/router"
	"github.com/entrepeneur4lyf/sqlpilot/internal/store"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

// historyLoadedMsg signals that the backend history refresh completed
type historyLoadedMsg struct{}

// querySelectedMsg carries the outcome of loading a selected query
type querySelectedMsg struct {
	err error
}

// historyEntry adapts a Query to the list item interface
type historyEntry struct {
	query *store.Query
}

func (e historyEntry) Title() string { return e.query.Question }
func (e historyEntry) Description() string {
	when := time.UnixMilli(e.query.Timestamp).Format("2006-01-02 15:04")
	if e.query.SQL == "" {
		return when
	}
	return fmt.Sprintf("%s • %s", when, firstLine(e.query.SQL))
}
func (e historyEntry) FilterValue() string { return e.query.Question }

// History is the past queries page
type History struct {
	app    *app.App
	theme  theme.Theme
	list   list.Model
	width  int
	height int
}

// NewHistory creates the history page
func NewHistory(application *app.App, th theme.Theme) *History {
	delegate := list.NewDefaultDelegate()
	historyList := list.New(nil, delegate, 0, 0)
	historyList.Title = "Query History"
	historyList.SetShowStatusBar(false)

	h := &History{
		app:   application,
		theme: th,
		list:  historyList,
	}
	h.refreshItems()
	return h
}

// Init implements Model
func (h *History) Init() tea.Cmd {
	return h.reloadCmd()
}

// SetSize implements Model
func (h *History) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.list.SetSize(width-4, height-4)
}

// SetTheme implements Model
func (h *History) SetTheme(th theme.Theme) {
	h.theme = th
}

// Update implements Model
func (h *History) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if h.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if entry, ok := h.list.SelectedItem().(historyEntry); ok {
				return h, h.selectCmd(entry.query.ID)
			}
			return h, nil
		case "x", "delete":
			if entry, ok := h.list.SelectedItem().(historyEntry); ok {
				h.app.Query.DeleteQueryFromHistory(entry.query.ID)
				h.refreshItems()
			}
			return h, nil
		case "r":
			return h, h.reloadCmd()
		case "C":
			h.app.Query.ClearHistory()
			h.refreshItems()
			return h, nil
		}

	case historyLoadedMsg:
		h.refreshItems()
		return h, nil

	case querySelectedMsg:
		if msg.err == nil {
			return h, Navigate(router.PathChat)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

// reloadCmd refreshes the history from the backend. Refresh is
// best-effort; the store logs and keeps the local list on failure.
func (h *History) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		h.app.Query.LoadHistory(context.Background())
		return historyLoadedMsg{}
	}
}

// selectCmd makes the chosen query current
func (h *History) selectCmd(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := h.app.Query.LoadQueryByID(context.Background(), id)
		return querySelectedMsg{err: err}
	}
}

// refreshItems rebuilds the list from store state
func (h *History) refreshItems() {
	queries := h.app.Query.History()
	items := make([]list.Item, len(queries))
	for i, query := range queries {
		items[i] = historyEntry{query: query}
	}
	h.list.SetItems(items)
}

// View implements Model
func (h *History) View() string {
	mutedStyle := lipgloss.NewStyle().Foreground(h.theme.TextMuted())
	help := mutedStyle.Render("enter open • x delete • r reload • C clear all")
	return lipgloss.NewStyle().Padding(1, 2).Render(h.list.View() + "\n" + help)
}

// firstLine truncates multi-line SQL for the list description
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + "…"
		}
	}
	return s
}
