// Package whatsapp drives WhatsApp Web in Chrome and exposes its chat list
// as a chatlist.Source.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/whatsoup/internal/config"
)

// ErrNotLoaded means the chat pane did not appear within the wait time,
// usually because the profile is not logged in yet.
var ErrNotLoaded = errors.New("whatsapp did not finish loading")

// Session owns the Chrome process and the WhatsApp tab.
type Session struct {
	cfg     *config.Config
	log     *zap.Logger
	launch  *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
}

// Open launches Chrome with the configured profile and navigates to WhatsApp.
// It does not wait for the page to be usable; see WaitReady.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}

	l := launcher.New().Context(ctx).Headless(cfg.Headless)
	if cfg.ChromeBin != "" {
		l = l.Bin(cfg.ChromeBin)
	}
	if cfg.ProfileDir != "" {
		l = l.UserDataDir(cfg.ProfileDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	log.Debug("chrome launched", zap.String("control_url", controlURL), zap.String("profile", cfg.ProfileDir))

	s := &Session{cfg: cfg, log: log, launch: l}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		s.kill()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	s.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: cfg.URL})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open %s: %w", cfg.URL, err)
	}
	s.page = page
	log.Info("opened whatsapp", zap.String("url", cfg.URL))
	return s, nil
}

// WaitReady blocks until the chat pane is present or wait elapses.
// A timeout returns ErrNotLoaded; the caller decides whether to try again.
func (s *Session) WaitReady(ctx context.Context, wait time.Duration) error {
	_, err := s.page.Context(ctx).Timeout(wait).Element(s.cfg.Selectors.ChatPane)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w within %s", ErrNotLoaded, wait)
	}
	return fmt.Errorf("wait for chat pane: %w", err)
}

// Source returns the chat list of the open tab.
func (s *Session) Source() *PageSource {
	return NewPageSource(s.page, s.cfg.Selectors, s.log)
}

// Close shuts the browser down.
func (s *Session) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	s.kill()
	return err
}

func (s *Session) kill() {
	if s.launch == nil {
		return
	}
	// Cleanup removes the user-data-dir, which would log the user out.
	if s.cfg.ProfileDir != "" {
		s.launch.Kill()
	} else {
		s.launch.Cleanup()
	}
	s.launch = nil
}
