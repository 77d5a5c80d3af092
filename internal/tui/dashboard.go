package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ServerData holds the background server status
type ServerData struct {
	Running     bool
	PID         int
	StartTime   time.Time
	Addr        string
	Requests    int
	LastRequest time.Time
	LogLines    []string
}

// ServerMsg is sent when server data is ready
type ServerMsg struct {
	Data *ServerData
	Err  error
}

// TickMsg triggers a periodic refresh
type TickMsg time.Time

// RefreshInterval is how often the dashboard reloads its data
const RefreshInterval = 2 * time.Second

// GatherFunc collects the current server status
type GatherFunc func() (*ServerData, error)

type dashboardModel struct {
	data   *ServerData
	err    error
	ready  bool
	gather GatherFunc
}

// InitDashboardModel creates the server dashboard
func InitDashboardModel(gather GatherFunc) dashboardModel {
	return dashboardModel{gather: gather}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.refresh()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}

	case TickMsg:
		return m, m.refresh()

	case ServerMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		return m, tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
			return TickMsg(t)
		})
	}

	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Scrapfolio Server Dashboard"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	b.WriteString(labelStyle.Render("Server Status"))
	b.WriteString("\n")
	if m.data.Running {
		uptime := time.Since(m.data.StartTime).Round(time.Second)
		b.WriteString(fmt.Sprintf("  Status:  %s\n", successStyle.Render("● Running")))
		b.WriteString(fmt.Sprintf("  PID:     %s\n", valueStyle.Render(fmt.Sprintf("%d", m.data.PID))))
		b.WriteString(fmt.Sprintf("  Address: %s\n", valueStyle.Render(m.data.Addr)))
		b.WriteString(fmt.Sprintf("  Uptime:  %s\n", valueStyle.Render(uptime.String())))
	} else {
		b.WriteString(fmt.Sprintf("  Status: %s\n", helpStyle.Render("○ Not running")))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Traffic"))
	b.WriteString("\n")
	if m.data.Requests > 0 {
		b.WriteString(fmt.Sprintf("  Requests:     %s\n", valueStyle.Render(fmt.Sprintf("%d", m.data.Requests))))
		if !m.data.LastRequest.IsZero() {
			since := time.Since(m.data.LastRequest).Round(time.Second)
			b.WriteString(fmt.Sprintf("  Last request: %s ago\n", valueStyle.Render(since.String())))
		}
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", helpStyle.Render("No requests served yet")))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Recent Logs"))
	b.WriteString("\n")
	if len(m.data.LogLines) > 0 {
		for _, line := range m.data.LogLines {
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString(helpStyle.Render("  No logs available"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(fmt.Sprintf("r refresh • q quit • auto-refresh: %s", RefreshInterval)))
	b.WriteString("\n")

	return b.String()
}

func (m dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		if m.gather == nil {
			return ServerMsg{Data: &ServerData{}}
		}
		data, err := m.gather()
		return ServerMsg{Data: data, Err: err}
	}
}
