package whatsapp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/whatsoup/internal/chatlist"
	"github.com/Zuo-Peng/whatsoup/internal/config"
)

const (
	searchBoxTimeout = 5 * time.Second
	defaultSettle    = 150 * time.Millisecond
)

// PageSource walks the chat list with the keyboard. The list is virtualized,
// so the DOM only ever holds the rows near the viewport; focus is the only
// stable way through it.
type PageSource struct {
	page *rod.Page
	sel  config.Selectors
	log  *zap.Logger

	// Settle is how long to let the list re-render after each key press.
	Settle time.Duration

	started bool
}

var _ chatlist.Source = (*PageSource)(nil)

func NewPageSource(page *rod.Page, sel config.Selectors, log *zap.Logger) *PageSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageSource{page: page, sel: sel, log: log, Settle: defaultSettle}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, chatlist.ErrSourceUnavailable, err)
}

// focusSearch clicks the search box. The first card is always the element
// right below it.
func (s *PageSource) focusSearch(ctx context.Context) error {
	el, err := s.page.Context(ctx).Timeout(searchBoxTimeout).ElementX(s.sel.SearchBox)
	if err != nil {
		return unavailable("find search box", err)
	}
	el = el.CancelTimeout()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return unavailable("click search box", err)
	}
	return nil
}

func (s *PageSource) pressDown(ctx context.Context) error {
	if err := s.page.Context(ctx).Keyboard.Press(input.ArrowDown); err != nil {
		return unavailable("press down", err)
	}
	if s.Settle <= 0 {
		return nil
	}
	t := time.NewTimer(s.Settle)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *PageSource) AdvanceFocus(ctx context.Context) (chatlist.Handle, error) {
	if !s.started {
		if err := s.focusSearch(ctx); err != nil {
			return nil, err
		}
		s.started = true
	}
	if err := s.pressDown(ctx); err != nil {
		return nil, err
	}
	el, err := s.page.Context(ctx).ElementByJS(rod.Eval(`() => document.activeElement`))
	if err != nil {
		return nil, unavailable("active element", err)
	}
	return el, nil
}

func element(h chatlist.Handle) (*rod.Element, error) {
	el, ok := h.(*rod.Element)
	if !ok || el == nil {
		return nil, fmt.Errorf("handle %T is not a page element", h)
	}
	return el, nil
}

// Identity is the DOM backend node id, which stays the same for as long as
// the node is attached.
func (s *PageSource) Identity(ctx context.Context, h chatlist.Handle) (chatlist.Identity, error) {
	el, err := element(h)
	if err != nil {
		return "", err
	}
	node, err := el.Context(ctx).Describe(0, false)
	if err != nil {
		return "", unavailable("describe element", err)
	}
	return chatlist.Identity(strconv.Itoa(int(node.BackendNodeID))), nil
}

func (s *PageSource) TextLines(ctx context.Context, h chatlist.Handle) ([]string, error) {
	el, err := element(h)
	if err != nil {
		return nil, err
	}
	text, err := el.Context(ctx).Text()
	if err != nil {
		return nil, unavailable("read card text", err)
	}
	return splitLines(text), nil
}

func (s *PageSource) LookupPreviewAttribute(ctx context.Context, h chatlist.Handle, attr string) (string, bool, error) {
	el, err := element(h)
	if err != nil {
		return "", false, err
	}
	html, err := el.Context(ctx).HTML()
	if err != nil {
		return "", false, fmt.Errorf("read card html: %w", err)
	}
	v, ok, err := previewAttribute(html, s.sel, attr)
	if err != nil {
		return "", false, err
	}
	if !ok {
		s.log.Debug("no emoji in preview region", zap.String("selector", s.sel.PreviewRegion))
	}
	return v, ok, nil
}

// ResetToStart returns focus to the search box and moves one step down, the
// same position a fresh traversal starts from.
func (s *PageSource) ResetToStart(ctx context.Context) error {
	s.started = false
	if err := s.focusSearch(ctx); err != nil {
		return err
	}
	return s.pressDown(ctx)
}

// splitLines splits rendered text like Python's str.splitlines: no trailing
// empty line, CRLF treated as one break.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// previewAttribute reads attr from the first emoji inside the preview region
// of a card's HTML. Emojis inside the name region are skipped: a group card
// nests the sender's name, which can carry its own emoji, near the preview.
// Only the first emoji is read, so a message of several emojis yields one.
func previewAttribute(html string, sel config.Selectors, attr string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false, fmt.Errorf("parse card html: %w", err)
	}

	region := doc.Find(sel.PreviewRegion)
	if region.Length() == 0 {
		return "", false, nil
	}
	emojis := region.Find(sel.Emoji)
	if sel.NameRegion != "" {
		emojis = emojis.NotSelection(doc.Find(sel.NameRegion).Find(sel.Emoji))
	}
	v, ok := emojis.First().Attr(attr)
	return v, ok, nil
}
