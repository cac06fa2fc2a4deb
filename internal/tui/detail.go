package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/whatsoup/internal/chatlist"
)

// newViewport creates the detail panel with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}

// renderDetail shows one chat in full, wrapped to width.
func renderDetail(index int, r chatlist.ChatRecord, width int) string {
	var b strings.Builder
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	writeLine(styleTitle.Render(fmt.Sprintf("#%d", index+1)))
	writeLine("Chat:     " + r.Name)
	writeLine("Last msg: " + r.Timestamp)
	writeLine("")
	for _, l := range strings.Split(r.Message, "\n") {
		writeLine("  " + l)
	}
	return b.String()
}

// wrapLine breaks a line into pieces of at most maxWidth visible cells.
// ANSI escape sequences are copied through without counting.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)
		if visW+rw > maxWidth && visW > 0 {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}
		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}
