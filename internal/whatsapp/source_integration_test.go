//go:build integration

package whatsapp_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/whatsoup/internal/chatlist"
	"github.com/Zuo-Peng/whatsoup/internal/config"
	"github.com/Zuo-Peng/whatsoup/internal/whatsapp"
)

// chatPage mimics the parts of the WhatsApp sidebar the source relies on:
// a search box and keyboard-focusable rows where ArrowDown stops at the end.
const chatPage = `<html><body>
<div id="side"><div><div><label><div><div></div><div id="search" tabindex="0" contenteditable="true"></div></div></label></div></div></div>
<div id="pane-side">
  <div class="row" tabindex="-1"><div class="_1c_mC">Alice</div><div>10:02</div><div class="_7W_3c">Hi</div></div>
  <div class="row" tabindex="-1"><div class="_1c_mC">Bob Group</div><div>09:40</div><div class="_7W_3c"><span>Carl</span><div>:</div><span>See you</span></div></div>
  <div class="row" tabindex="-1"><div class="_1c_mC">Eve</div><div>08:15</div><div class="_7W_3c"><img class="emoji" alt="😂"></div></div>
</div>
<script>
const rows = [...document.querySelectorAll('.row')];
document.addEventListener('keydown', e => {
  if (e.key !== 'ArrowDown') return;
  e.preventDefault();
  const i = rows.indexOf(document.activeElement);
  const next = i < 0 ? rows[0] : rows[Math.min(i + 1, rows.length - 1)];
  next.focus();
});
</script>
</body></html>`

func TestTraverseFakeWhatsApp_Integration(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatPage)
	}))
	defer ts.Close()

	cfg := config.Default()
	cfg.URL = ts.URL
	cfg.Headless = true

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s, err := whatsapp.Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WaitReady(ctx, 10*time.Second))

	src := s.Source()
	src.Settle = 20 * time.Millisecond
	res, err := chatlist.Traverse(ctx, src, chatlist.Options{})
	require.NoError(t, err)
	assert.Equal(t, []chatlist.ChatRecord{
		{Name: "Alice", Timestamp: "10:02", Message: "Hi"},
		{Name: "Bob Group", Timestamp: "09:40", Message: "Carl: See you"},
		{Name: "Eve", Timestamp: "08:15", Message: "😂"},
	}, res.Records)
}

func TestWaitReadyTimesOut_Integration(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>loading</body></html>")
	}))
	defer ts.Close()

	cfg := config.Default()
	cfg.URL = ts.URL
	cfg.Headless = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := whatsapp.Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	err = s.WaitReady(ctx, time.Second)
	assert.ErrorIs(t, err, whatsapp.ErrNotLoaded)
}
