package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/app"
	"github.com/entrepeneur4lyf/sqlpilot/internal/render"
	"github.com/entrepeneur4lyf/sqlpilot/internal/store"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui/theme"
)

const maxVisibleRows = 10

// queryResultMsg carries the outcome of a sent question
type queryResultMsg struct {
	query *store.Query
	err   error
}

// suggestionsMsg carries fetched starter questions
type suggestionsMsg struct {
	questions []string
}

// followupsMsg carries fetched follow-up suggestions
type followupsMsg struct {
	questions []string
}

// Chat is the main ask-a-question page
type Chat struct {
	app    *app.App
	theme  theme.Theme
	input  textinput.Model
	spin   spinner.Model
	width  int
	height int
	dark   bool

	suggestions []string
	followups   []string
}

// NewChat creates the chat page
func NewChat(application *app.App, th theme.Theme) *Chat {
	input := textinput.New()
	input.Placeholder = "Ask a question about your data..."
	input.CharLimit = 512
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Chat{
		app:   application,
		theme: th,
		input: input,
		spin:  spin,
		dark:  th.Name() == "dark",
	}
}

// Init implements Model
func (c *Chat) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, c.suggestionsCmd())
}

// SetSize implements Model
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.input.Width = max(20, width-8)
}

// SetTheme implements Model
func (c *Chat) SetTheme(th theme.Theme) {
	c.theme = th
	c.dark = th.Name() == "dark"
}

// Update implements Model
func (c *Chat) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(c.input.Value())
			if question == "" || c.app.Query.IsLoading() {
				return c, nil
			}
			c.input.Reset()
			c.followups = nil
			return c, tea.Batch(c.spin.Tick, c.sendCmd(question))
		case "esc":
			c.app.Query.ClearError()
			return c, nil
		}

	case queryResultMsg:
		if msg.err != nil {
			// The store already recorded the error for rendering
			return c, nil
		}
		if msg.query != nil && msg.query.SQL != "" {
			return c, c.followupsCmd(msg.query.Question, msg.query.SQL)
		}
		return c, nil

	case suggestionsMsg:
		c.suggestions = msg.questions
		return c, nil

	case followupsMsg:
		c.followups = msg.questions
		return c, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		if c.app.Query.IsLoading() {
			return c, cmd
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// sendCmd runs the SendQuery store action off the UI loop
func (c *Chat) sendCmd(question string) tea.Cmd {
	return func() tea.Msg {
		query, err := c.app.Query.SendQuery(context.Background(), question)
		return queryResultMsg{query: query, err: err}
	}
}

// suggestionsCmd fetches starter questions for the empty state
func (c *Chat) suggestionsCmd() tea.Cmd {
	return func() tea.Msg {
		questions, err := c.app.Query.GenerateQuestions(context.Background())
		if err != nil {
			return suggestionsMsg{}
		}
		return suggestionsMsg{questions: questions}
	}
}

// followupsCmd fetches follow-up suggestions for an answered question
func (c *Chat) followupsCmd(question, sql string) tea.Cmd {
	return func() tea.Msg {
		questions, err := c.app.Query.GenerateFollowups(context.Background(), question, sql)
		if err != nil {
			return followupsMsg{}
		}
		return followupsMsg{questions: questions}
	}
}

// View implements Model
func (c *Chat) View() string {
	mutedStyle := lipgloss.NewStyle().Foreground(c.theme.TextMuted())
	errorStyle := lipgloss.NewStyle().Foreground(c.theme.Error())
	headingStyle := lipgloss.NewStyle().Foreground(c.theme.Primary()).Bold(true)

	var body strings.Builder
	body.WriteString(c.input.View())
	body.WriteString("\n\n")

	if c.app.Query.IsLoading() {
		body.WriteString(c.spin.View() + mutedStyle.Render(" Generating SQL..."))
		body.WriteString("\n")
	}

	if errMsg := c.app.Query.Error(); errMsg != "" {
		body.WriteString(errorStyle.Render(errMsg))
		body.WriteString("\n" + mutedStyle.Render("esc dismiss") + "\n")
	}

	if current := c.app.Query.CurrentQuery(); current != nil {
		body.WriteString(headingStyle.Render(current.Question))
		body.WriteString("\n\n")
		if current.SQL != "" {
			body.WriteString(render.HighlightSQL(current.SQL, c.dark))
			body.WriteString("\n")
		}
		if current.Results != nil {
			body.WriteString(c.renderResults(current.Results))
			body.WriteString("\n")
		}
		if len(current.Chart) > 0 {
			body.WriteString(mutedStyle.Render("(chart payload available — view it in the web client)"))
			body.WriteString("\n")
		}
		if len(c.followups) > 0 {
			body.WriteString("\n" + headingStyle.Render("Follow-up ideas"))
			body.WriteString("\n" + c.renderQuestionList(c.followups))
		}
	} else if len(c.suggestions) > 0 {
		body.WriteString(headingStyle.Render("Try asking"))
		body.WriteString("\n" + c.renderQuestionList(c.suggestions))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body.String())
}

// renderQuestionList renders a bulleted suggestion list
func (c *Chat) renderQuestionList(questions []string) string {
	mutedStyle := lipgloss.NewStyle().Foreground(c.theme.TextMuted())
	var out strings.Builder
	for _, question := range questions {
		out.WriteString(mutedStyle.Render("• "+question) + "\n")
	}
	return out.String()
}

// renderResults renders tabular results, capped at a visible row budget
func (c *Chat) renderResults(results *api.ResultSet) string {
	if len(results.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(c.theme.TextMuted()).Render("(no rows)")
	}

	columnWidth := max(8, (c.width-6)/max(1, len(results.Columns)))
	columns := make([]table.Column, len(results.Columns))
	for i, name := range results.Columns {
		columns[i] = table.Column{Title: name, Width: min(columnWidth, 32)}
	}

	visible := results.Data
	truncated := 0
	if len(visible) > maxVisibleRows {
		truncated = len(visible) - maxVisibleRows
		visible = visible[:maxVisibleRows]
	}

	rows := make([]table.Row, len(visible))
	for i, cells := range visible {
		row := make(table.Row, len(columns))
		for j := range columns {
			if j < len(cells) {
				row[j] = formatCell(cells[j])
			}
		}
		rows[i] = row
	}

	resultTable := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Foreground(c.theme.Primary()).
		BorderForeground(c.theme.Border()).
		Bold(true)
	tableStyles.Selected = lipgloss.NewStyle()
	resultTable.SetStyles(tableStyles)

	out := resultTable.View()
	summary := fmt.Sprintf("%d rows", results.RowCount)
	if truncated > 0 {
		summary = fmt.Sprintf("%d rows (%d hidden)", results.RowCount, truncated)
	}
	return out + "\n" + lipgloss.NewStyle().Foreground(c.theme.TextMuted()).Render(summary)
}

// formatCell renders one result cell as text
func formatCell(value any) string {
	if value == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", value)
}
