package ui

import (
	"fmt"
	"strconv"
	"strings"

	"stacksort/internal/state"

	"github.com/charmbracelet/lipgloss"
)

// RenderStacks draws A and B side by side, fronts on the first row. With
// maxRows > 0 each column is cut to that many rows, the last one counting
// the hidden values.
func RenderStacks(s Styles, snap state.Snapshot, maxRows int) string {
	width := len("a")
	for _, v := range append(append([]int{}, snap.A...), snap.B...) {
		width = max(width, len(strconv.Itoa(v)))
	}
	rows := max(len(snap.A), len(snap.B), 1)
	if maxRows > 0 {
		rows = min(rows, maxRows)
	}

	a := renderColumn(s, "a", snap.A, rows, width)
	b := renderColumn(s, "b", snap.B, rows, width)
	return lipgloss.JoinHorizontal(lipgloss.Top, a, " ", b)
}

func renderColumn(s Styles, name string, values []int, rows, width int) string {
	lines := make([]string, 0, rows+2)
	lines = append(lines, s.Title.Render(fmt.Sprintf("%*s", width, name)))
	lines = append(lines, s.RenderDivider(width))

	shown := values
	hidden := 0
	if len(values) > rows {
		shown = values[:rows-1]
		hidden = len(values) - len(shown)
	}
	for _, v := range shown {
		lines = append(lines, s.Value.Width(width).Render(strconv.Itoa(v)))
	}
	if hidden > 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("+%d", hidden)))
	}
	for len(lines) < rows+2 {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return s.Column.Render(strings.Join(lines, "\n"))
}
