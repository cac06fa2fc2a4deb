package chatlist

import "context"

// Handle refers to the item that currently has focus. Only the Source that
// returned it knows what it is.
type Handle any

// Identity is compared by equality only; it is never interpreted.
type Identity string

// Source is a forward-only list that can only be walked by moving focus.
// There is no length or index primitive.
type Source interface {
	// AdvanceFocus moves focus to the next item. At the last item focus
	// stays where it is.
	AdvanceFocus(ctx context.Context) (Handle, error)
	Identity(ctx context.Context, h Handle) (Identity, error)
	// TextLines returns the item's rendered text split on line breaks.
	TextLines(ctx context.Context, h Handle) ([]string, error)
	// LookupPreviewAttribute reads attr from the emoji element inside the
	// message preview region only, never the name/sender region.
	// ok is false when no such element or attribute exists.
	LookupPreviewAttribute(ctx context.Context, h Handle, attr string) (value string, ok bool, err error)
	// ResetToStart puts focus back where a fresh traversal expects it.
	ResetToStart(ctx context.Context) error
}
