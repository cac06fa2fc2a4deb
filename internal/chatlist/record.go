// Package chatlist walks a keyboard-navigable chat list one item at a time
// and turns each item's rendered text into a ChatRecord.
package chatlist

import (
	"errors"
	"fmt"
)

// ChatRecord is one conversation summary as displayed in the chat list.
// Timestamp and Message are opaque display strings.
type ChatRecord struct {
	Name      string
	Timestamp string
	Message   string
}

// ErrSourceUnavailable means the list surface is not in a navigable state.
// It is the only error that ends a traversal early.
var ErrSourceUnavailable = errors.New("chat list source unavailable")

// ClassificationFailure reports a card whose text shape was not recognized,
// or whose message had to come from an attribute lookup that found nothing.
type ClassificationFailure struct {
	Lines  []string
	Reason string
}

func (f *ClassificationFailure) Error() string {
	return fmt.Sprintf("unrecognized chat card (%s): %q", f.Reason, f.Lines)
}
