package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/sqlpilot/internal/app"
	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
	"github.com/entrepeneur4lyf/sqlpilot/internal/router"
	"github.com/entrepeneur4lyf/sqlpilot/internal/store"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/components/toast"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/page"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

// notificationMsg delivers a bus notification to the UI loop
type notificationMsg struct {
	event events.Event[events.NotificationPayload]
}

// themeChangedMsg delivers a theme change to the UI loop
type themeChangedMsg struct {
	theme string
}

// forcedNavigationMsg delivers a bus navigation request (e.g. the 401
// forced-logout redirect) to the UI loop
type forcedNavigationMsg struct {
	payload events.NavigationPayload
}

// Model is the application shell: it owns navigation, the sidebar, the
// toast stack, and the active page.
type Model struct {
	app    *app.App
	theme  theme.Theme
	path   string
	pages  map[string]page.Model
	toasts *toast.Manager
	width  int
	height int

	notificationCh <-chan events.Event[events.NotificationPayload]
	uiCh           <-chan events.Event[events.UIPayload]
	navigationCh   <-chan events.Event[events.NavigationPayload]
	unsubscribe    []func()
}

// New creates the TUI shell over an initialized application
func New(application *app.App) *Model {
	th := theme.ForName(string(application.UI.Theme()))

	m := &Model{
		app:    application,
		theme:  th,
		toasts: toast.NewManager(th),
		pages:  make(map[string]page.Model),
	}

	m.pages[router.PathLogin] = page.NewLogin(application, th)
	m.pages[router.PathRegister] = page.NewRegister(application, th)
	m.pages[router.PathChat] = page.NewChat(application, th)
	m.pages[router.PathHistory] = page.NewHistory(application, th)
	m.pages[router.PathTraining] = page.NewTraining(application, th)
	m.pages[router.PathSettings] = page.NewSettings(application, th)

	notificationCh, unsubNotifications := application.Bus.Notifications.Subscribe()
	uiCh, unsubUI := application.Bus.UI.Subscribe()
	navigationCh, unsubNavigation := application.Bus.Navigation.Subscribe()
	m.notificationCh = notificationCh
	m.uiCh = uiCh
	m.navigationCh = navigationCh
	m.unsubscribe = []func(){unsubNotifications, unsubUI, unsubNavigation}

	// Landing view honors the guard: unauthenticated users start at login
	m.path = router.DefaultPath
	if decision := application.Guard.Check(m.path); !decision.Allow {
		m.applyRedirect(decision)
	}

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.activePage().Init(),
		m.listenNotifications(),
		m.listenUI(),
		m.listenNavigation(),
	)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, p := range m.pages {
			p.SetSize(m.contentWidth(), msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			for _, unsub := range m.unsubscribe {
				unsub()
			}
			return m, tea.Quit
		case "f1":
			return m, m.navigate(router.PathChat)
		case "f2":
			return m, m.navigate(router.PathHistory)
		case "f3":
			return m, m.navigate(router.PathTraining)
		case "f4":
			return m, m.navigate(router.PathSettings)
		case "ctrl+b":
			m.app.UI.ToggleSidebar()
			m.resizePages()
			return m, nil
		}

	case page.NavigateMsg:
		return m, m.navigate(msg.Path)

	case forcedNavigationMsg:
		cmds = append(cmds, m.navigate(msg.payload.Path), m.listenNavigation())
		return m, tea.Batch(cmds...)

	case notificationMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Update(toast.ShowToastMsg{
			Title:    msg.event.Payload.Title,
			Message:  msg.event.Payload.Message,
			Level:    msg.event.Payload.Level,
			Duration: msg.event.Payload.Duration,
		})
		cmds = append(cmds, cmd, m.listenNotifications())
		return m, tea.Batch(cmds...)

	case themeChangedMsg:
		m.theme = theme.ForName(msg.theme)
		m.toasts.SetTheme(m.theme)
		for _, p := range m.pages {
			p.SetTheme(m.theme)
		}
		cmds = append(cmds, m.listenUI())
		return m, tea.Batch(cmds...)

	case toast.DismissToastMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Update(msg)
		return m, cmd
	}

	active := m.activePage()
	updated, cmd := active.Update(msg)
	m.pages[m.currentRoute().Path] = updated
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	content := m.activePage().View()

	route := m.currentRoute()
	if route.RequiresAuth && !m.app.UI.IsSidebarCollapsed() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), content)
	}

	if m.toasts.HasToasts() {
		overlay := m.toasts.View(m.width)
		content = lipgloss.JoinVertical(lipgloss.Right, overlay, content)
	}

	return content
}

// navigate runs the guard and switches the active page
func (m *Model) navigate(target string) tea.Cmd {
	decision := m.app.Guard.Check(target)
	if !decision.Allow {
		m.applyRedirect(decision)
	} else {
		m.path = router.Find(target).Path
	}

	active := m.activePage()
	active.SetSize(m.contentWidth(), m.height)
	return tea.Batch(active.Init(), tea.SetWindowTitle(router.Title(m.path)))
}

// applyRedirect follows a guard redirect, handing the preserved target to
// the login page for post-login restoration
func (m *Model) applyRedirect(decision router.Decision) {
	m.path = decision.RedirectTo
	if decision.Redirect != "" {
		if login, ok := m.pages[router.PathLogin].(*page.Login); ok {
			login.SetRedirect(decision.Redirect)
		}
	}
}

// currentRoute resolves the active route
func (m *Model) currentRoute() router.Route {
	return router.Find(m.path)
}

// activePage returns the page for the active route
func (m *Model) activePage() page.Model {
	return m.pages[m.currentRoute().Path]
}

// contentWidth is the width left for the page after the sidebar
func (m *Model) contentWidth() int {
	if m.currentRoute().RequiresAuth && !m.app.UI.IsSidebarCollapsed() {
		return max(20, m.width-sidebarWidth)
	}
	return m.width
}

// resizePages propagates the current dimensions to all pages
func (m *Model) resizePages() {
	for _, p := range m.pages {
		p.SetSize(m.contentWidth(), m.height)
	}
}

// listenNotifications waits for the next bus notification
func (m *Model) listenNotifications() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.notificationCh
		if !ok {
			return nil
		}
		return notificationMsg{event: event}
	}
}

// listenUI waits for the next theme/language change
func (m *Model) listenUI() tea.Cmd {
	return func() tea.Msg {
		for event := range m.uiCh {
			if event.Type == events.UIThemeChanged {
				return themeChangedMsg{theme: event.Payload.Theme}
			}
		}
		return nil
	}
}

// listenNavigation waits for the next forced navigation request
func (m *Model) listenNavigation() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.navigationCh
		if !ok {
			return nil
		}
		return forcedNavigationMsg{payload: event.Payload}
	}
}

const sidebarWidth = 22

// sidebarEntries are the navigable views, in display order
var sidebarEntries = []struct {
	path string
	key  string
}{
	{router.PathChat, "F1"},
	{router.PathHistory, "F2"},
	{router.PathTraining, "F3"},
	{router.PathSettings, "F4"},
}

// renderSidebar renders the navigation rail
func (m *Model) renderSidebar() string {
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.Primary()).Bold(true)
	entryStyle := lipgloss.NewStyle().Foreground(m.theme.TextMuted())
	activeStyle := lipgloss.NewStyle().Foreground(m.theme.Text()).Bold(true)

	var body string
	body += titleStyle.Render("SQL Pilot") + "\n"
	if user := m.app.Auth.User(); user != nil {
		body += entryStyle.Render(user.Username) + "\n"
	}
	body += "\n"

	for _, entry := range sidebarEntries {
		route := router.Find(entry.path)
		label := entry.key + " " + m.routeLabel(route)
		if route.Path == m.path {
			body += activeStyle.Render("▌ "+label) + "\n"
		} else {
			body += entryStyle.Render("  "+label) + "\n"
		}
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(max(0, m.height-2)).
		Padding(1, 1).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(m.theme.Border()).
		Render(body)
}

// routeLabel localizes the sidebar label for the active language
func (m *Model) routeLabel(route router.Route) string {
	if m.app.UI.Language() == store.LanguageJapanese {
		switch route.Path {
		case router.PathChat:
			return "チャット"
		case router.PathHistory:
			return "履歴"
		case router.PathTraining:
			return "学習データ"
		case router.PathSettings:
			return "設定"
		}
	}
	return route.Title
}
