package chatlist

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultPreviewAttribute is the attribute that carries an emoji's text.
const DefaultPreviewAttribute = "alt"

// Options tunes a traversal.
type Options struct {
	Logger *zap.Logger
	// PreviewAttribute is read from the preview-region emoji when a card has
	// no plain-text message. Empty means DefaultPreviewAttribute.
	PreviewAttribute string
	// Limit stops after this many records have been collected. 0 = no limit.
	Limit int
}

// Stats counts what a traversal saw.
type Stats struct {
	Steps   int
	Emitted int
	Skipped int
}

func (s Stats) String() string {
	return fmt.Sprintf("steps=%d emitted=%d skipped=%d", s.Steps, s.Emitted, s.Skipped)
}

// Result holds the records in traversal order, which is the list's display
// order at the time of the walk. If the list reorders itself mid-walk (a new
// message arrives) the records can contain a duplicate or miss an item;
// nothing here guards against that.
type Result struct {
	Records  []ChatRecord
	Failures []*ClassificationFailure
	Stats    Stats
}

// Traverse walks src from its current focus until focus stops moving,
// classifying every item on the way. Unrecognized cards are logged and
// skipped. Source errors end the walk and are returned with whatever was
// collected so far. ResetToStart runs on every exit path.
func Traverse(ctx context.Context, src Source, opts Options) (res Result, err error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	attr := opts.PreviewAttribute
	if attr == "" {
		attr = DefaultPreviewAttribute
	}

	defer func() {
		if rerr := src.ResetToStart(context.WithoutCancel(ctx)); rerr != nil {
			rerr = fmt.Errorf("reset chat list: %w", rerr)
			if err == nil {
				err = rerr
			} else {
				err = errors.Join(err, rerr)
			}
		}
		log.Info("chat list traversal finished", zap.Stringer("stats", res.Stats), zap.Error(err))
	}()

	var det Detector
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		h, err := src.AdvanceFocus(ctx)
		if err != nil {
			return res, fmt.Errorf("advance focus: %w", err)
		}
		id, err := src.Identity(ctx, h)
		if err != nil {
			return res, fmt.Errorf("item identity: %w", err)
		}
		res.Stats.Steps++
		if det.Observe(id) == Terminal {
			log.Debug("focus did not move, end of list", zap.String("identity", string(id)))
			return res, nil
		}

		lines, err := src.TextLines(ctx, h)
		if err != nil {
			return res, fmt.Errorf("item text: %w", err)
		}

		var lookupErr error
		lookup := func() (string, bool) {
			v, ok, err := src.LookupPreviewAttribute(ctx, h, attr)
			if err != nil {
				lookupErr = err
				return "", false
			}
			return v, ok
		}

		rec, err := Classify(lines, lookup)
		if lookupErr != nil {
			if errors.Is(lookupErr, ErrSourceUnavailable) {
				return res, fmt.Errorf("preview lookup: %w", lookupErr)
			}
			log.Debug("preview lookup failed", zap.Error(lookupErr))
		}
		if err != nil {
			var cf *ClassificationFailure
			if !errors.As(err, &cf) {
				return res, err
			}
			res.Failures = append(res.Failures, cf)
			res.Stats.Skipped++
			log.Warn("skipping unreadable chat card",
				zap.String("reason", cf.Reason),
				zap.Strings("lines", cf.Lines))
			continue
		}

		res.Records = append(res.Records, rec)
		res.Stats.Emitted++
		if opts.Limit > 0 && len(res.Records) >= opts.Limit {
			log.Debug("record limit reached", zap.Int("limit", opts.Limit))
			return res, nil
		}
	}
}
