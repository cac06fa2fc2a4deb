package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/whatsoup/internal/chatlist"
	"github.com/Zuo-Peng/whatsoup/internal/render"
)

type model struct {
	records     []chatlist.ChatRecord
	visible     []int // indexes into records, in traversal order
	showAll     bool
	filter      string
	cursor      int
	listOffset  int
	filterInput textinput.Model
	detail      viewport.Model
	detailIdx   int // record shown in the detail panel, -1 = none
	width       int
	height      int
	ready       bool
	quitting    bool
	selected    int // chosen record index, -1 = none
}

func initialModel(records []chatlist.ChatRecord, showAll bool) model {
	ti := textinput.New()
	ti.Placeholder = "Filter chats..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := model{
		records:     records,
		showAll:     showAll,
		filterInput: ti,
		detail:      viewport.New(0, 0),
		detailIdx:   -1,
		selected:    -1,
	}
	m.applyFilter()
	return m
}

// Selection is the chat the user picked.
type Selection struct {
	Index  int // 1-based, matching the table numbering
	Record chatlist.ChatRecord
}

// Pick shows records and blocks until the user selects one or quits.
// ok is false if nothing was selected. The chosen chat name is copied to
// the clipboard.
func Pick(records []chatlist.ChatRecord, showAll bool) (sel Selection, ok bool, err error) {
	p := tea.NewProgram(initialModel(records, showAll), tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return Selection{}, false, fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected < 0 {
		return Selection{}, false, nil
	}
	sel = Selection{Index: fm.selected + 1, Record: records[fm.selected]}
	copyName(sel.Record.Name)
	return sel, true, nil
}

func copyName(name string) {
	if err := clipboard.WriteAll(name); err == nil {
		fmt.Printf("Copied to clipboard: %s\n", name)
	}
}

// ParseIndex validates a typed chat number against n records and returns it
// 1-based.
func ParseIndex(input string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, errors.New("Uh oh! You didn't enter a number. Try again.")
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("Uh oh! The only valid options are numbers 1 - %d. Try again.", n)
	}
	return i, nil
}

// applyFilter rebuilds the visible list. Without a filter the recent view
// shows only the chats a short summary would.
func (m *model) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter))
	m.visible = nil
	for i, r := range m.records {
		if q == "" {
			if !m.showAll && i >= render.ShortLimit {
				break
			}
			m.visible = append(m.visible, i)
			continue
		}
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Message), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor = 0
	m.listOffset = 0
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detail = newViewport(m.detailWidth(), m.panelHeight())
		m.detailIdx = -1
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.visible) {
				m.selected = m.visible[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				m.refreshDetail()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				m.refreshDetail()
			}
			return m, nil

		case key.Matches(msg, keys.ToggleAll):
			m.showAll = !m.showAll
			m.applyFilter()
			m.refreshDetail()
			return m, nil

		case key.Matches(msg, keys.DetailUp):
			m.detail.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.DetailDn):
			m.detail.LineDown(m.panelHeight() / 2)
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if v := m.filterInput.Value(); v != m.filter {
			m.filter = v
			m.applyFilter()
			m.refreshDetail()
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.visible) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			maxOffset := len(m.visible) - m.panelHeight()/linesPerItem
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.visible) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				m.refreshDetail()
			}
			return m, nil

		case region == regionDetail && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.detail, vpCmd = m.detail.Update(msg)
			return m, vpCmd
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// refreshDetail renders the chat under the cursor into the detail panel.
func (m *model) refreshDetail() {
	if m.cursor >= len(m.visible) {
		m.detail.SetContent("")
		m.detailIdx = -1
		return
	}
	idx := m.visible[m.cursor]
	if idx == m.detailIdx {
		return
	}
	m.detail.SetContent(renderDetail(idx, m.records[idx], m.detailWidth()))
	m.detail.GotoTop()
	m.detailIdx = idx
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	detailW := m.detailWidth()
	panelH := m.panelHeight()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.detail.Width = detailW
	m.detail.Height = panelH
	detailPanel := styleActiveBorder.
		Width(detailW).
		Height(panelH).
		Render(m.detail.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
	return lipgloss.JoinVertical(lipgloss.Left, m.filterInput.View(), panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 50% for list, minus border padding
	w := m.width*50/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) detailWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*50/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionDetail
)

// hitTest maps terminal coordinates to a panel region and visible item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > listBoxRight+1 {
		return regionDetail, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	view := "recent"
	if m.showAll || m.filter != "" {
		view = "all"
	}
	parts := []string{
		fmt.Sprintf("%d/%d chats (%s)", len(m.visible), len(m.records), view),
		"up/dn navigate",
		"C-l recent/all",
		"Enter select",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
