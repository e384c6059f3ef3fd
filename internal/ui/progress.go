// Package ui renders the live progress of a directory scan with Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"glslu/internal/driver"
)

// maxRows caps the file list; finished clean files are hidden first.
const maxRows = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	elapsedStyle = lipgloss.NewStyle().Faint(true)
)

type shaderRow struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (r *shaderRow) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

// label is the word shown in the status column.
func (r *shaderRow) label() string {
	switch r.status {
	case driver.StatusWorking:
		switch r.stage {
		case driver.StageScan:
			return "scanning"
		case driver.StageInclude:
			return "including"
		case driver.StageCheck:
			return "checking"
		}
		return "working"
	case "":
		return "queued"
	default:
		return string(r.status)
	}
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []shaderRow
	byPath  map[string]int
	width   int
	closed  bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a model that lists files and their scan state.
// It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = activeStyle

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		rows:    make([]shaderRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	m.bar.Width = 60
	for i, f := range files {
		m.rows[i] = shaderRow{path: f, status: driver.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-20, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	r.stage, r.status = ev.Stage, ev.Status
	if ev.Elapsed > 0 {
		r.elapsed = ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

// counts returns finished files and files with errors.
func (m *progressModel) counts() (finished, failed int) {
	for i := range m.rows {
		if m.rows[i].finished() {
			finished++
		}
		if m.rows[i].status == driver.StatusError {
			failed++
		}
	}
	return finished, failed
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	finished, _ := m.counts()
	return float64(finished) / float64(len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	finished, failed := m.counts()

	var b strings.Builder
	lead := m.spinner.View()
	if m.closed {
		lead = doneStyle.Render("✓")
	}
	header := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.rows))
	if failed > 0 {
		header += errorStyle.Render(fmt.Sprintf("  %d with errors", failed))
	}
	fmt.Fprintf(&b, "%s %s\n\n", lead, titleStyle.Render(header))

	shown := m.visibleRows()
	nameWidth := max(m.width-24, 20)
	for _, i := range shown {
		r := &m.rows[i]
		line := fmt.Sprintf("  %s %s", statusStyle(r.status).Render(fmt.Sprintf("%-9s", r.label())), truncate(r.path, nameWidth))
		if r.finished() && r.elapsed > 0 {
			line += elapsedStyle.Render(fmt.Sprintf("  %s", r.elapsed.Round(time.Millisecond)))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if hidden := len(m.rows) - len(shown); hidden > 0 {
		fmt.Fprintf(&b, "  %s\n", queuedStyle.Render(fmt.Sprintf("… %d more", hidden)))
	}

	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// visibleRows picks up to maxRows rows: errors and unfinished files first,
// then clean finished ones, keeping list order.
func (m *progressModel) visibleRows() []int {
	if len(m.rows) <= maxRows {
		out := make([]int, len(m.rows))
		for i := range out {
			out[i] = i
		}
		return out
	}
	keep := make([]bool, len(m.rows))
	n := 0
	for pass := 0; pass < 2 && n < maxRows; pass++ {
		for i := range m.rows {
			if n == maxRows {
				break
			}
			clean := m.rows[i].status == driver.StatusDone
			if keep[i] || (pass == 0) == clean {
				continue
			}
			keep[i] = true
			n++
		}
	}
	out := make([]int, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, i)
		}
	}
	return out
}

func statusStyle(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone:
		return doneStyle
	case driver.StatusError:
		return errorStyle
	case driver.StatusWorking:
		return activeStyle
	default:
		return queuedStyle
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
