package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each chat occupies.
const linesPerItem = 2

// renderList renders the left panel: the visible chats with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.visible) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No chats")
	}

	var lines []string
	for i, idx := range m.visible {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, m.formatItem(idx, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItem formats one chat as two lines:
//
//	line 1: [>] #  name  time
//	line 2:     last message (dimmed)
func (m model) formatItem(idx, width int, selected bool) []string {
	r := m.records[idx]

	num := fmt.Sprintf("%3d", idx+1)
	ts := truncate(r.Timestamp, 12)
	nameMax := width - 2 - 4 - runewidth.StringWidth(ts) - 2
	name := truncate(r.Name, nameMax)

	line1 := fmt.Sprintf("%s %s %s", styleIndex.Render(num), name, styleTime.Render(ts))
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	msg := truncate(r.Message, width-6)
	line2 := "      " + lipgloss.NewStyle().Foreground(colorDim).Render(msg)

	return []string{line1, line2}
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width < 0 {
		width = 0
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "")
	}
	return s
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
