package ui

import (
	"fmt"
	"slices"
	"strings"

	"stacksort/internal/ops"
	"stacksort/internal/state"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReplayModel steps through a recorded run.
type ReplayModel struct {
	run      *state.SortState
	pos      int
	width    int
	height   int
	progress progress.Model
	styles   Styles
}

// NewReplayModel creates a replay positioned before the first operation.
func NewReplayModel(run *state.SortState, styles Styles) ReplayModel {
	p := progress.New(progress.WithDefaultGradient())
	p.Width = 40
	return ReplayModel{
		run:      run,
		progress: p,
		styles:   styles,
		width:    80,
		height:   24,
	}
}

// Position returns the current log position.
func (m ReplayModel) Position() int {
	return m.pos
}

// Init initializes the model.
func (m ReplayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-4, 10)
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", " ":
			m.pos = min(m.pos+1, m.run.Steps())
		case "left", "h":
			m.pos = max(m.pos-1, 0)
		case "pgdown":
			m.pos = min(m.pos+10, m.run.Steps())
		case "pgup":
			m.pos = max(m.pos-10, 0)
		case "home", "g":
			m.pos = 0
		case "end", "G":
			m.pos = m.run.Steps()
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the replay.
func (m ReplayModel) View() string {
	var sb strings.Builder

	title := m.styles.Header.Render(" stacksort replay ")
	step := m.styles.Bold.Render(fmt.Sprintf("step %d/%d", m.pos, m.run.Steps()))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", step))
	sb.WriteString("\n\n")

	prev, next := "-", "-"
	if m.pos > 0 {
		prev = m.run.Log()[m.pos-1].String()
	}
	if m.pos < m.run.Steps() {
		op := m.run.Log()[m.pos]
		next = fmt.Sprintf("%s (%s)", op, touched(op))
	}
	sb.WriteString(fmt.Sprintf("last %s  next %s\n",
		m.styles.Highlight.Render(prev), m.styles.Muted.Render(next)))

	// header, op line, progress, hints and the column frames
	rows := max(m.height-12, 3)
	sb.WriteString(RenderStacks(m.styles, m.run.StateAt(m.pos), rows))
	sb.WriteString("\n\n")

	sb.WriteString(m.progress.ViewAs(m.percent()))
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("←/→ step  pgup/pgdn ±10  home/end  q quit"))
	return sb.String()
}

func (m ReplayModel) percent() float64 {
	if m.run.Steps() == 0 {
		return 1
	}
	return float64(m.pos) / float64(m.run.Steps())
}

func (m ReplayModel) statusLine() string {
	if m.pos < m.run.Steps() {
		return m.styles.Body.Render(ops.Format(m.window(), " "))
	}
	cur := m.run.Current()
	switch {
	case cur.Sorted():
		return m.styles.Success.Render("sorted")
	case slices.IsSorted(cur.A):
		return m.styles.Warning.Render(fmt.Sprintf("a ascending, %d left on b", len(cur.B)))
	}
	return m.styles.Error.Render("not sorted")
}

// touched names the stacks op acts on.
func touched(op ops.Op) string {
	a, b := op.Touches()
	switch {
	case a && b:
		return "a+b"
	case a:
		return "a"
	}
	return "b"
}

// window returns up to eight upcoming operations.
func (m ReplayModel) window() []ops.Op {
	end := min(m.pos+8, m.run.Steps())
	return m.run.Log()[m.pos:end]
}
