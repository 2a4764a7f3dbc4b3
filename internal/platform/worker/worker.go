// Package worker provides a small periodic-loop abstraction for background
// maintenance, with context cancellation and panic recovery.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// TickFunc is called on every interval. A returned error is logged and the
// loop continues.
type TickFunc func(ctx context.Context) error

// Config configures a periodic loop.
type Config struct {
	// Name identifies the loop for logging.
	Name string

	// Interval is the time between ticks.
	Interval time.Duration

	// Tick does the work.
	Tick TickFunc

	// Logger for the loop.
	Logger *zerolog.Logger
}

// Loop runs Tick every Interval until the context is canceled. It returns
// the wrapped context error on cancellation.
func Loop(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	logger.Info().Str("worker", cfg.Name).Dur("interval", cfg.Interval).Msg("starting maintenance loop")

	defer logger.Info().Str("worker", cfg.Name).Msg("maintenance loop stopped")

	for {
		if err := Wait(ctx, cfg.Interval); err != nil {
			return err
		}

		runTick(ctx, cfg, logger)
	}
}

func runTick(ctx context.Context, cfg Config, logger *zerolog.Logger) {
	defer RecoverPanic(logger, cfg.Name)

	if cfg.Tick == nil {
		return
	}

	if err := cfg.Tick(ctx); err != nil {
		logger.Error().Err(err).Str("worker", cfg.Name).Msg("tick failed")
	}
}

// Wait blocks until the duration elapses or the context is canceled.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		d = time.Second
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait interrupted: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}

// RecoverPanic recovers from panics and logs them.
// Use as: defer worker.RecoverPanic(logger, "operation name")
func RecoverPanic(logger *zerolog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error().
			Interface("panic", r).
			Str("operation", operation).
			Msg("recovered from panic")
	}
}
