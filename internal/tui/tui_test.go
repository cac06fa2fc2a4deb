package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/whatsoup/internal/chatlist"
)

func records(n int) []chatlist.ChatRecord {
	out := make([]chatlist.ChatRecord, n)
	for i := range out {
		out[i] = chatlist.ChatRecord{
			Name:      fmt.Sprintf("Chat %d", i+1),
			Timestamp: "10:00",
			Message:   fmt.Sprintf("msg %d", i+1),
		}
	}
	out[6].Message = "see you at the lake"
	return out
}

func update(t *testing.T, m tea.Model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func TestRecentViewShowsShortSummary(t *testing.T) {
	m := initialModel(records(8), false)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, m.visible)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Len(t, m.visible, 8)
	assert.True(t, m.showAll)
}

func TestFilterSearchesAllChats(t *testing.T) {
	m := initialModel(records(8), false)
	for _, r := range "lake" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "lake", m.filter)
	assert.Equal(t, []int{6}, m.visible)
}

func TestEnterSelectsRecordUnderCursor(t *testing.T) {
	var m tea.Model = initialModel(records(8), true)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	fm := next.(model)
	assert.Equal(t, 2, fm.selected)
	assert.True(t, fm.quitting)
}

func TestCursorStaysInBounds(t *testing.T) {
	var m tea.Model = initialModel(records(8), false)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.(model).cursor)
	for i := 0; i < 10; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 4, m.(model).cursor)
}

func TestEnterWithNoMatchesDoesNothing(t *testing.T) {
	var m tea.Model = initialModel(records(8), true)
	for _, r := range "zzz" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, -1, next.(model).selected)
}

func TestViewRendersListAndDetail(t *testing.T) {
	var m tea.Model = initialModel(records(8), true)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Chat 1")
	assert.Contains(t, view, "Last msg: 10:00")
	assert.Contains(t, view, "8/8 chats")
}

func TestParseIndex(t *testing.T) {
	i, err := ParseIndex(" 3 ", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = ParseIndex("abc", 5)
	assert.ErrorContains(t, err, "didn't enter a number")

	_, err = ParseIndex("6", 5)
	assert.ErrorContains(t, err, "numbers 1 - 5")

	_, err = ParseIndex("0", 5)
	assert.Error(t, err)
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abcd", "ef"}, wrapLine("abcdef", 4))
	assert.Equal(t, []string{""}, wrapLine("", 4))
	assert.Equal(t, []string{"\033[1mab", "cd\033[0m"}, wrapLine("\033[1mabcd\033[0m", 2))
}
