package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/app"
	"github.com/entrepeneur4lyf/sqlpilot/internal/render"
	"github.com/entrepeneur4lyf/sqlpilot/internal/store"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

// trainingMode is the page's interaction state
type trainingMode int

const (
	trainingModeList trainingMode = iota
	trainingModeAdd
	trainingModeDetail
)

// trainingRefreshedMsg signals a completed cache refresh
type trainingRefreshedMsg struct {
	err error
}

// trainingMutatedMsg signals a completed add or remove
type trainingMutatedMsg struct {
	err error
}

// Training is the training data curation page
type Training struct {
	app    *app.App
	theme  theme.Theme
	mode   trainingMode
	table  table.Model
	width  int
	height int
	dark   bool

	// Add form state
	addType  store.TrainingDataType
	question textinput.Model
	content  textarea.Model

	detail *store.TrainingItem
}

// NewTraining creates the training page
func NewTraining(application *app.App, th theme.Theme) *Training {
	question := textinput.New()
	question.Placeholder = "question (sql pairs only)"
	question.CharLimit = 256

	content := textarea.New()
	content.Placeholder = "content"
	content.CharLimit = 0

	t := &Training{
		app:      application,
		theme:    th,
		addType:  store.TrainingTypeSQL,
		question: question,
		content:  content,
		dark:     th.Name() == "dark",
	}
	t.rebuildTable()
	return t
}

// Init implements Model
func (t *Training) Init() tea.Cmd {
	return t.refreshCmd()
}

// SetSize implements Model
func (t *Training) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.table.SetHeight(max(4, height-8))
	t.content.SetWidth(max(20, width-8))
	t.content.SetHeight(max(4, height-12))
	t.question.Width = max(20, width-8)
	t.rebuildTable()
}

// SetTheme implements Model
func (t *Training) SetTheme(th theme.Theme) {
	t.theme = th
	t.dark = th.Name() == "dark"
	t.rebuildTable()
}

// Update implements Model
func (t *Training) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch t.mode {
		case trainingModeList:
			return t.updateList(msg)
		case trainingModeAdd:
			return t.updateAdd(msg)
		case trainingModeDetail:
			if msg.String() == "esc" || msg.String() == "q" {
				t.mode = trainingModeList
				t.detail = nil
			}
			return t, nil
		}

	case trainingRefreshedMsg:
		t.rebuildTable()
		return t, nil

	case trainingMutatedMsg:
		t.rebuildTable()
		return t, nil
	}

	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// updateList handles keys in the listing state
func (t *Training) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		t.mode = trainingModeAdd
		t.addType = store.TrainingTypeSQL
		t.question.Reset()
		t.content.Reset()
		t.content.Focus()
		return t, textarea.Blink
	case "d", "x":
		if item := t.selectedItem(); item != nil {
			return t, t.removeCmd(item.ID)
		}
		return t, nil
	case "r":
		return t, t.refreshCmd()
	case "enter":
		if item := t.selectedItem(); item != nil {
			t.detail = item
			t.mode = trainingModeDetail
		}
		return t, nil
	}

	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// updateAdd handles keys in the add-form state
func (t *Training) updateAdd(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		t.mode = trainingModeList
		return t, nil
	case "ctrl+t":
		switch t.addType {
		case store.TrainingTypeSQL:
			t.addType = store.TrainingTypeDDL
		case store.TrainingTypeDDL:
			t.addType = store.TrainingTypeDocumentation
		default:
			t.addType = store.TrainingTypeSQL
		}
		return t, nil
	case "tab":
		if t.addType == store.TrainingTypeSQL {
			if t.question.Focused() {
				t.question.Blur()
				t.content.Focus()
			} else {
				t.content.Blur()
				t.question.Focus()
			}
		}
		return t, nil
	case "ctrl+s":
		request := t.buildRequest()
		t.mode = trainingModeList
		return t, t.addCmd(request)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	t.question, cmd = t.question.Update(msg)
	cmds = append(cmds, cmd)
	t.content, cmd = t.content.Update(msg)
	cmds = append(cmds, cmd)
	return t, tea.Batch(cmds...)
}

// buildRequest assembles the add request for the selected type
func (t *Training) buildRequest() api.TrainRequest {
	content := t.content.Value()
	switch t.addType {
	case store.TrainingTypeDDL:
		return api.TrainRequest{DDL: content}
	case store.TrainingTypeDocumentation:
		return api.TrainRequest{Documentation: content}
	default:
		return api.TrainRequest{Question: t.question.Value(), SQL: content}
	}
}

// refreshCmd reloads the training cache
func (t *Training) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		err := t.app.Training.Fetch(context.Background())
		return trainingRefreshedMsg{err: err}
	}
}

// addCmd posts a new training entry
func (t *Training) addCmd(request api.TrainRequest) tea.Cmd {
	return func() tea.Msg {
		err := t.app.Training.Add(context.Background(), request)
		return trainingMutatedMsg{err: err}
	}
}

// removeCmd deletes a training entry
func (t *Training) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := t.app.Training.Remove(context.Background(), id)
		return trainingMutatedMsg{err: err}
	}
}

// selectedItem resolves the highlighted table row to its item
func (t *Training) selectedItem() *store.TrainingItem {
	row := t.table.SelectedRow()
	if row == nil {
		return nil
	}
	items := t.app.Training.Items()
	for i := range items {
		if items[i].ID == row[0] {
			return &items[i]
		}
	}
	return nil
}

// rebuildTable rebuilds the listing from store state
func (t *Training) rebuildTable() {
	contentWidth := max(24, t.width-56)
	columns := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Type", Width: 14},
		{Title: "Question", Width: 24},
		{Title: "Content", Width: contentWidth},
	}

	items := t.app.Training.Items()
	rows := make([]table.Row, len(items))
	for i, item := range items {
		rows[i] = table.Row{item.ID, string(item.Type), item.Question, firstLine(item.Content)}
	}

	trainingTable := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(4, t.height-8)),
	)

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Foreground(t.theme.Primary()).
		BorderForeground(t.theme.Border()).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(t.theme.Background()).
		Background(t.theme.Primary())
	trainingTable.SetStyles(tableStyles)

	t.table = trainingTable
}

// View implements Model
func (t *Training) View() string {
	headingStyle := lipgloss.NewStyle().Foreground(t.theme.Primary()).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.theme.TextMuted())
	errorStyle := lipgloss.NewStyle().Foreground(t.theme.Error())

	var body strings.Builder

	switch t.mode {
	case trainingModeAdd:
		body.WriteString(headingStyle.Render("Add training data (type: "+string(t.addType)+")") + "\n\n")
		if t.addType == store.TrainingTypeSQL {
			body.WriteString(t.question.View() + "\n")
		}
		body.WriteString(t.content.View() + "\n\n")
		body.WriteString(mutedStyle.Render("ctrl+s save • ctrl+t cycle type • tab switch field • esc cancel"))

	case trainingModeDetail:
		if t.detail != nil {
			body.WriteString(headingStyle.Render(string(t.detail.Type)+" · "+t.detail.ID) + "\n\n")
			body.WriteString(t.renderDetailContent(t.detail))
			body.WriteString("\n\n" + mutedStyle.Render("esc back"))
		}

	default:
		count := t.app.Training.Count()
		body.WriteString(headingStyle.Render("Training Data") + mutedStyle.Render("  "+pluralize(count, "entry", "entries")) + "\n\n")
		if t.app.Training.IsLoading() {
			body.WriteString(mutedStyle.Render("Loading...") + "\n")
		}
		if errMsg := t.app.Training.Error(); errMsg != "" {
			body.WriteString(errorStyle.Render(errMsg) + "\n")
		}
		body.WriteString(t.table.View() + "\n")
		body.WriteString(mutedStyle.Render("enter view • a add • d delete • r reload"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body.String())
}

// renderDetailContent renders an entry's content by type: markdown for
// documentation, highlighted SQL for the rest.
func (t *Training) renderDetailContent(item *store.TrainingItem) string {
	if item.Type == store.TrainingTypeDocumentation {
		if out, err := render.Markdown(item.Content, max(40, t.width-8), t.dark); err == nil {
			return out
		}
		return item.Content
	}

	var body strings.Builder
	if item.Question != "" {
		body.WriteString(lipgloss.NewStyle().Foreground(t.theme.Text()).Render(item.Question) + "\n\n")
	}
	body.WriteString(render.HighlightSQL(item.Content, t.dark))
	return body.String()
}

// pluralize formats a count with its unit
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", count, plural)
}
