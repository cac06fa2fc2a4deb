package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Zuo-Peng/whatsoup/internal/chatlist"
	"github.com/Zuo-Peng/whatsoup/internal/config"
	"github.com/Zuo-Peng/whatsoup/internal/prompt"
	"github.com/Zuo-Peng/whatsoup/internal/whatsapp"
)

// confirmFunc asks a yes/no question. Swapped out in tests.
type confirmFunc func(question string) (bool, error)

// waitLoop waits for the chat pane, asking the user whether to keep trying
// each time the wait runs out. It returns errQuit if they decline.
func waitLoop(ctx context.Context, cfg *config.Config, ready func(context.Context, time.Duration) error, confirm confirmFunc) error {
	wait := cfg.WaitSeconds
	for {
		err := ready(ctx, time.Duration(wait)*time.Second)
		if err == nil {
			return nil
		}
		if !errors.Is(err, whatsapp.ErrNotLoaded) {
			return err
		}

		fmt.Fprintf(os.Stderr, "Error: WhatsApp did not load within %d seconds. Make sure you are logged in and let's try again.\n", wait)
		proceed, err := confirm("Proceed")
		if err != nil {
			return err
		}
		if !proceed {
			return errQuit
		}

		next := wait + cfg.WaitStepSeconds
		more, err := confirm(fmt.Sprintf("Increase wait time for WhatsApp to load from %d seconds to %d seconds", wait, next))
		if err != nil {
			return err
		}
		if more {
			wait = next
		}
	}
}

// scrapeChats opens WhatsApp, waits for it and reads the chat list.
func scrapeChats(ctx context.Context, limit int) ([]chatlist.ChatRecord, error) {
	s, err := whatsapp.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Debug("close browser", zap.Error(err))
		}
	}()

	if err := waitLoop(ctx, cfg, s.WaitReady, prompt.Confirm); err != nil {
		return nil, err
	}
	fmt.Fprintln(os.Stderr, "Success! WhatsApp finished loading and is ready.")

	res, err := chatlist.Traverse(ctx, s.Source(), chatlist.Options{
		Logger:           logger,
		PreviewAttribute: cfg.Selectors.EmojiAttribute,
		Limit:            limit,
	})
	if err != nil {
		return nil, fmt.Errorf("read chats: %w", err)
	}
	for _, f := range res.Failures {
		fmt.Fprintf(os.Stderr, "Something went wrong while reading a chat card. Skipping %q\n", f.Lines)
	}
	fmt.Fprintf(os.Stderr, "Read %d chats. %s\n", len(res.Records), res.Stats)
	return res.Records, nil
}
