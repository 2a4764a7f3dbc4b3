package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoopTicksUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32

	done := make(chan error, 1)

	go func() {
		done <- Loop(ctx, Config{
			Name:     "test",
			Interval: time.Millisecond,
			Tick: func(context.Context) error {
				if ticks.Add(1) >= 3 {
					cancel()
				}

				return nil
			},
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}

	require.GreaterOrEqual(t, ticks.Load(), int32(3))
}

func TestLoopSurvivesErrorsAndPanics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticks atomic.Int32

	logger := zerolog.Nop()

	done := make(chan error, 1)

	go func() {
		done <- Loop(ctx, Config{
			Name:     "flaky",
			Interval: time.Millisecond,
			Logger:   &logger,
			Tick: func(context.Context) error {
				switch ticks.Add(1) {
				case 1:
					return errors.New("transient")
				case 2:
					panic("boom")
				default:
					cancel()
					return nil
				}
			},
		})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not recover and stop")
	}

	require.GreaterOrEqual(t, ticks.Load(), int32(3))
}

func TestWaitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Wait(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
