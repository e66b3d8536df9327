package gesture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/pthm-cable/tinsel/store"
)

// ErrNotReady is returned by a Recognizer that has no frame to classify yet.
// The controller skips the tick silently.
var ErrNotReady = errors.New("gesture: recognizer not ready")

// Recognizer classifies the hands in the latest camera frame.
// Close releases the camera and model.
type Recognizer interface {
	Recognize(ctx context.Context) ([]Gesture, error)
	io.Closer
}

// ModeSetter receives mode triggers.
type ModeSetter interface {
	SetMode(store.Mode) error
}

// Options configures a Controller.
type Options struct {
	Interval time.Duration // Time between recognition ticks
	Rules    Rules
	OnTick   func(err error) // Optional, called after every tick
}

// Controller polls a Recognizer and forwards triggers to a ModeSetter.
// It never touches simulation state.
type Controller struct {
	rec  Recognizer
	sink ModeSetter
	opts Options
}

// NewController creates a controller.
func NewController(rec Recognizer, sink ModeSetter, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	if opts.Rules.MinHands <= 0 {
		opts.Rules = DefaultRules()
	}
	return &Controller{rec: rec, sink: sink, opts: opts}
}

// Poll runs one recognition tick. It returns the mode it triggered, if any.
func (c *Controller) Poll(ctx context.Context) (store.Mode, bool, error) {
	hands, err := c.rec.Recognize(ctx)
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			err = nil
		}
		c.observe(err)
		return 0, false, err
	}

	mode, ok := Interpret(hands, c.opts.Rules)
	if ok {
		err = c.sink.SetMode(mode)
	}
	c.observe(err)
	return mode, ok && err == nil, err
}

// Run polls until ctx is done, then closes the recognizer. Recognition
// errors are logged and the loop keeps going.
func (c *Controller) Run(ctx context.Context) error {
	defer func() {
		if err := c.rec.Close(); err != nil {
			slog.Warn("closing gesture recognizer", "error", err)
		}
		slog.Info("gesture controller stopped")
	}()

	ticker := time.NewTicker(c.opts.Interval)
	defer ticker.Stop()

	slog.Info("gesture controller started", "interval", c.opts.Interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, _, err := c.Poll(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("gesture tick failed", "error", err)
			}
		}
	}
}

func (c *Controller) observe(err error) {
	if c.opts.OnTick != nil {
		c.opts.OnTick(err)
	}
}
