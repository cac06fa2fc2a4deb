package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/whatsoup/internal/chatlist"
)

// ShortLimit is how many chats the short summary shows.
const ShortLimit = 5

// column widths, in terminal cells
const (
	widthIndex   = 4
	widthName    = 25
	widthTime    = 12
	widthMessage = 70
)

var headers = []string{"#", "Chat Name", "Last Msg Time", "Last Msg"}

type Options struct {
	Full bool // show every record instead of the ShortLimit most recent
}

// Title returns the heading printed above the table.
func Title(shown int, full bool) string {
	if full {
		return "Your WhatsApp Chats"
	}
	return fmt.Sprintf("Your %d Most Recent WhatsApp Chats", shown)
}

// Table renders records as a left-aligned table. Rows are numbered from 1 in
// traversal order; that number is what the picker accepts.
func Table(records []chatlist.ChatRecord, opts Options) string {
	shown := records
	if !opts.Full && len(shown) > ShortLimit {
		shown = shown[:ShortLimit]
	}

	rows := make([][]string, 0, len(shown))
	for i, r := range shown {
		rows = append(rows, []string{
			fit(strconv.Itoa(i+1), widthIndex),
			fit(r.Name, widthName),
			fit(r.Timestamp, widthTime),
			fit(r.Message, widthMessage),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		})

	return Title(len(shown), opts.Full) + "\n" + t.Render()
}

// fit flattens s to one line and truncates it to width cells.
func fit(s string, width int) string {
	s = oneLine(s)
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return s
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// WriteTSV writes one record per line for piping into other tools:
//
//	index, name, timestamp, message
func WriteTSV(w io.Writer, records []chatlist.ChatRecord) error {
	for i, r := range records {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, oneLine(r.Name), oneLine(r.Timestamp), oneLine(r.Message)); err != nil {
			return err
		}
	}
	return nil
}
