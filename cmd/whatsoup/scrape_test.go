package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/whatsoup/internal/config"
	"github.com/Zuo-Peng/whatsoup/internal/whatsapp"
)

type scriptedConfirm struct {
	answers   []bool
	questions []string
}

func (s *scriptedConfirm) ask(q string) (bool, error) {
	s.questions = append(s.questions, q)
	if len(s.answers) == 0 {
		return false, errors.New("unexpected question: " + q)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

// readyAfter fails with ErrNotLoaded until it has been called n times.
func readyAfter(n int, waits *[]time.Duration) func(context.Context, time.Duration) error {
	calls := 0
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		calls++
		if calls < n {
			return whatsapp.ErrNotLoaded
		}
		return nil
	}
}

func TestWaitLoopReadyFirstTime(t *testing.T) {
	var waits []time.Duration
	c := &scriptedConfirm{}

	err := waitLoop(context.Background(), config.Default(), readyAfter(1, &waits), c.ask)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{20 * time.Second}, waits)
	assert.Empty(t, c.questions)
}

func TestWaitLoopIncreasesWait(t *testing.T) {
	var waits []time.Duration
	c := &scriptedConfirm{answers: []bool{true, true, true, false}}

	err := waitLoop(context.Background(), config.Default(), readyAfter(3, &waits), c.ask)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{20 * time.Second, 30 * time.Second, 30 * time.Second}, waits)
	assert.Equal(t, []string{
		"Proceed",
		"Increase wait time for WhatsApp to load from 20 seconds to 30 seconds",
		"Proceed",
		"Increase wait time for WhatsApp to load from 30 seconds to 40 seconds",
	}, c.questions)
}

func TestWaitLoopQuit(t *testing.T) {
	var waits []time.Duration
	c := &scriptedConfirm{answers: []bool{false}}

	err := waitLoop(context.Background(), config.Default(), readyAfter(5, &waits), c.ask)
	assert.ErrorIs(t, err, errQuit)
	assert.Len(t, waits, 1)
}

func TestWaitLoopOtherErrorsPassThrough(t *testing.T) {
	boom := errors.New("tab crashed")
	err := waitLoop(context.Background(), config.Default(), func(context.Context, time.Duration) error { return boom }, nil)
	assert.ErrorIs(t, err, boom)
}
