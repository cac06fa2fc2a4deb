package chatlist

import (
	"context"
	"strconv"
)

type fakeItem struct {
	id    Identity
	lines []string
	emoji string // "" means the preview region has no emoji
}

// fakeSource replays a fixed sequence of focus positions. Once the script
// is exhausted focus stays on the last item.
type fakeSource struct {
	items      []fakeItem
	pos        int
	advances   int
	lookups    map[Identity]int
	resets     int
	failAt     int // advance number that returns advanceErr, 0 = never
	advanceErr error
	lookupErr  error
}

func newFakeSource(items ...fakeItem) *fakeSource {
	return &fakeSource{items: items, pos: -1, lookups: map[Identity]int{}}
}

func (f *fakeSource) AdvanceFocus(ctx context.Context) (Handle, error) {
	f.advances++
	if f.failAt > 0 && f.advances == f.failAt {
		return nil, f.advanceErr
	}
	if f.pos < len(f.items)-1 {
		f.pos++
	}
	return f.pos, nil
}

func (f *fakeSource) Identity(ctx context.Context, h Handle) (Identity, error) {
	return f.items[h.(int)].id, nil
}

func (f *fakeSource) TextLines(ctx context.Context, h Handle) ([]string, error) {
	return f.items[h.(int)].lines, nil
}

func (f *fakeSource) LookupPreviewAttribute(ctx context.Context, h Handle, attr string) (string, bool, error) {
	it := f.items[h.(int)]
	f.lookups[it.id]++
	if f.lookupErr != nil {
		return "", false, f.lookupErr
	}
	if it.emoji == "" || attr != "alt" {
		return "", false, nil
	}
	return it.emoji, true, nil
}

func (f *fakeSource) ResetToStart(ctx context.Context) error {
	f.resets++
	f.pos = -1
	return nil
}

func items(lines ...[]string) []fakeItem {
	out := make([]fakeItem, len(lines))
	for i, l := range lines {
		out[i] = fakeItem{id: Identity("item-" + strconv.Itoa(i)), lines: l}
	}
	return out
}
