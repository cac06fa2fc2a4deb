package chatlist

import "strings"

// PreviewLookup returns the message-preview attribute for the card being
// classified. It is only called by shapes that have no plain-text message.
type PreviewLookup func() (string, bool)

type shape struct {
	kind  string
	build func(lines []string, lookup PreviewLookup) (string, bool)
}

// shapes is keyed by line count, which is the only cheap discriminant the
// rendered card offers. Adding a newly observed layout is a new entry here.
var shapes = map[int]shape{
	3: {kind: "direct text", build: func(l []string, _ PreviewLookup) (string, bool) {
		return l[2], true
	}},
	5: {kind: "group text", build: func(l []string, _ PreviewLookup) (string, bool) {
		// l[3] is the ":" separator the group layout renders between sender and text.
		return l[2] + ": " + l[4], true
	}},
	2: {kind: "direct emoji", build: func(_ []string, lookup PreviewLookup) (string, bool) {
		return callLookup(lookup)
	}},
	4: {kind: "text with trailing emoji", build: func(l []string, lookup PreviewLookup) (string, bool) {
		emoji, ok := callLookup(lookup)
		if !ok {
			return "", false
		}
		return l[2] + strings.TrimSpace(l[3]) + " " + emoji, true
	}},
}

func callLookup(lookup PreviewLookup) (string, bool) {
	if lookup == nil {
		return "", false
	}
	return lookup()
}

// Classify maps one card's text lines to a record. Line counts outside
// the known shapes, and emoji shapes whose lookup finds nothing, return a
// *ClassificationFailure.
func Classify(lines []string, lookup PreviewLookup) (ChatRecord, error) {
	s, ok := shapes[len(lines)]
	if !ok {
		return ChatRecord{}, &ClassificationFailure{Lines: lines, Reason: "unexpected line count"}
	}
	msg, ok := s.build(lines, lookup)
	if !ok {
		return ChatRecord{}, &ClassificationFailure{Lines: lines, Reason: s.kind + ": no preview emoji"}
	}
	if lines[0] == "" {
		return ChatRecord{}, &ClassificationFailure{Lines: lines, Reason: s.kind + ": empty name"}
	}
	return ChatRecord{Name: lines[0], Timestamp: lines[1], Message: msg}, nil
}
