package ui

import (
	"strings"
	"testing"

	"stacksort/internal/ops"
	"stacksort/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("STACKSORT_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when STACKSORT_DARK_MODE=1")
	}

	t.Setenv("STACKSORT_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when STACKSORT_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, DetectTheme().IsDark)
}

func TestRenderStacks(t *testing.T) {
	out := RenderStacks(NewStyles(LightTheme()), state.Snapshot{A: []int{12, 3}, B: []int{7}}, 0)
	for _, want := range []string{"a", "b", "12", "3", "7"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderStacksTruncates(t *testing.T) {
	a := make([]int, 30)
	for i := range a {
		a[i] = i + 100
	}
	out := RenderStacks(NewStyles(LightTheme()), state.Snapshot{A: a, B: []int{}}, 5)
	assert.Contains(t, out, "103")
	assert.NotContains(t, out, "104")
	assert.Contains(t, out, "+26")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m tea.Model, keys ...string) ReplayModel {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	r, ok := m.(ReplayModel)
	require.True(t, ok)
	return r
}

func replayRun() *state.SortState {
	st := state.New([]int{2, 0, 1})
	st.ApplyAll(ops.SA, ops.RA, ops.SA, ops.RRA)
	return st
}

func TestReplayNavigation(t *testing.T) {
	m := NewReplayModel(replayRun(), NewStyles(LightTheme()))
	assert.Equal(t, 0, m.Position())

	assert.Equal(t, 0, press(t, m, "left").Position())
	assert.Equal(t, 2, press(t, m, "right", "right").Position())
	assert.Equal(t, 1, press(t, m, "right", "l", "h").Position())
	assert.Equal(t, 4, press(t, m, "end").Position())
	assert.Equal(t, 4, press(t, m, "end", "right").Position())
	assert.Equal(t, 0, press(t, m, "end", "home").Position())
	assert.Equal(t, 4, press(t, m, "G").Position())
}

func TestReplayQuit(t *testing.T) {
	m := NewReplayModel(replayRun(), NewStyles(LightTheme()))
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(key("right"))
	assert.Nil(t, cmd)
}

func TestReplayView(t *testing.T) {
	m := NewReplayModel(replayRun(), NewStyles(LightTheme()))
	view := m.View()
	assert.Contains(t, view, "step 0/4")
	assert.Contains(t, view, "next sa")

	end := press(t, m, "end")
	view = end.View()
	assert.Contains(t, view, "step 4/4")
	assert.Contains(t, view, "last rra")
	assert.Contains(t, view, "sorted")
	assert.False(t, strings.Contains(view, "not sorted"))

	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, resized.View(), "step 0/4")
}

func TestReplayStatusLine(t *testing.T) {
	styles := NewStyles(LightTheme())
	tests := []struct {
		name  string
		start []int
		log   []ops.Op
		next  string
		want  string
	}{
		{"sorted", []int{1, 0}, []ops.Op{ops.SA}, "next sa (a)", "sorted"},
		{"b not drained", []int{2, 0, 1}, []ops.Op{ops.PB}, "next pb (a+b)", "a ascending, 1 left on b"},
		{"unsorted", []int{2, 1, 0}, []ops.Op{ops.RB, ops.RA}, "next rb (b)", "not sorted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := state.New(tt.start)
			st.ApplyAll(tt.log...)
			m := NewReplayModel(st, styles)
			assert.Contains(t, m.View(), tt.next)

			view := press(t, m, "end").View()
			assert.Contains(t, view, tt.want)
			if tt.want == "sorted" {
				assert.NotContains(t, view, "not sorted")
			}
		})
	}
}
