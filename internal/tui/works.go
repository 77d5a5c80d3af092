package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/scrapfolio/internal/styles"
)

// WorkRow is one work listed in the browser
type WorkRow struct {
	Title string
	Tags  []string
	Image string
}

// WorksMsg is sent when the listing has been fetched
type WorksMsg struct {
	Rows []WorkRow
	Err  error
}

// PreviewMsg is sent when a page has been fetched and converted
type PreviewMsg struct {
	Title   string
	Content string
	Err     error
}

// LoadFunc fetches the works listing
type LoadFunc func() ([]WorkRow, error)

// PreviewFunc fetches and converts one page
type PreviewFunc func(title string) (string, error)

type worksModel struct {
	spinner      spinner.Model
	table        table.Model
	viewport     viewport.Model
	rows         []WorkRow
	err          error
	ready        bool
	showPreview  bool
	loadingTitle string
	selected     string
	load         LoadFunc
	preview      PreviewFunc
}

// InitWorksModel creates the works browser
func InitWorksModel(load LoadFunc, preview PreviewFunc) worksModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	columns := []table.Column{
		{Title: "Title", Width: 40},
		{Title: "Tags", Width: 40},
		{Title: "Image", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = styles.ViewportStyle

	return worksModel{
		spinner:  s,
		table:    t,
		viewport: vp,
		load:     load,
		preview:  preview,
	}
}

func (m worksModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchWorks())
}

func (m worksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 3))
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-8, 3)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showPreview {
			switch msg.String() {
			case "q", "esc":
				m.showPreview = false
				return m, nil
			default:
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter", "p":
			if len(m.rows) > 0 && m.loadingTitle == "" {
				idx := m.table.Cursor()
				if idx >= 0 && idx < len(m.rows) {
					m.loadingTitle = m.rows[idx].Title
					return m, tea.Batch(m.spinner.Tick, m.fetchPreview(m.loadingTitle))
				}
			}
			return m, nil
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case WorksMsg:
		m.ready = true
		m.err = msg.Err
		m.rows = msg.Rows

		rows := make([]table.Row, 0, len(m.rows))
		for _, w := range m.rows {
			image := "✗"
			if w.Image != "" {
				image = "✓"
			}
			rows = append(rows, table.Row{w.Title, strings.Join(w.Tags, " "), image})
		}
		m.table.SetRows(rows)
		return m, nil

	case PreviewMsg:
		m.loadingTitle = ""
		m.selected = msg.Title
		content := msg.Content
		if msg.Err != nil {
			content = errorStyle.Render("✗ " + msg.Err.Error())
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		m.showPreview = true
		return m, nil

	case spinner.TickMsg:
		if m.ready && m.loadingTitle == "" {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m worksModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Scrapfolio Works"))
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString(fmt.Sprintf("%s Loading works...\n", m.spinner.View()))
		return b.String()
	}

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if m.showPreview {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Preview: %s", m.selected)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Works: %d", len(m.rows))))
	b.WriteString("\n\n")
	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("No works found."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
	}
	if m.loadingTitle != "" {
		b.WriteString(fmt.Sprintf("%s Converting %s...\n\n", m.spinner.View(), highlightStyle.Render(m.loadingTitle)))
	}
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/p preview • q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m worksModel) fetchWorks() tea.Cmd {
	return func() tea.Msg {
		if m.load == nil {
			return WorksMsg{}
		}
		rows, err := m.load()
		return WorksMsg{Rows: rows, Err: err}
	}
}

func (m worksModel) fetchPreview(title string) tea.Cmd {
	return func() tea.Msg {
		if m.preview == nil {
			return PreviewMsg{Title: title}
		}
		content, err := m.preview(title)
		return PreviewMsg{Title: title, Content: content, Err: err}
	}
}
