// Package dispatch turns a recommendation into a bounded pointer operation:
// clamp the target into the visible display, animate the cursor there, click.
package dispatch

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/screenpilot/internal/model"
	"github.com/mj1618/screenpilot/internal/platform"
)

// moveSteps is the number of interpolation points for the cursor animation.
const moveSteps = 20

// Dispatcher executes recommended pointer actions.
type Dispatcher struct {
	pointer      platform.Pointer
	moveDuration time.Duration
	logger       *zap.Logger
}

// New creates a dispatcher. moveDuration is the time the cursor takes to
// glide to its target; zero or negative warps instantly.
func New(pointer platform.Pointer, moveDuration time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		pointer:      pointer,
		moveDuration: moveDuration,
		logger:       logger,
	}
}

// Dispatch moves the cursor to the recommendation's coordinates, clamped to
// the display, and issues exactly one click. Out-of-range coordinates are
// never an error. Display size is queried fresh on every call because the
// display may have been resized since the last cycle.
func (d *Dispatcher) Dispatch(rec model.Recommendation) error {
	w, h, err := d.pointer.DisplaySize()
	if err != nil {
		return fmt.Errorf("query display size: %w", err)
	}

	x := clamp(rec.X, 0, w-1)
	y := clamp(rec.Y, 0, h-1)

	d.logger.Info("dispatching action",
		zap.String("label", rec.Label),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.String("action", string(rec.Action)),
		zap.String("reason", rec.Reason))

	if err := d.glideTo(x, y); err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}

	switch rec.Action {
	case model.ActionDoubleClick:
		err = d.pointer.Click(x, y, platform.MouseLeft, 2)
	case model.ActionRightClick:
		err = d.pointer.Click(x, y, platform.MouseRight, 1)
	default:
		// Unknown actions fall back to a single left click.
		err = d.pointer.Click(x, y, platform.MouseLeft, 1)
	}
	if err != nil {
		return fmt.Errorf("click at (%d, %d): %w", x, y, err)
	}
	return nil
}

// glideTo animates the cursor from its current position to (x, y) over
// moveDuration in linear steps. A fast synthetic warp tends to be dropped by
// some applications; the animation makes the move register like real input.
func (d *Dispatcher) glideTo(x, y int) error {
	if d.moveDuration <= 0 {
		return d.pointer.MoveMouse(x, y)
	}

	fromX, fromY, err := d.pointer.MousePosition()
	if err != nil {
		// Can't interpolate without a start point; warp instead.
		return d.pointer.MoveMouse(x, y)
	}

	stepDelay := d.moveDuration / moveSteps
	for i := 1; i <= moveSteps; i++ {
		t := float64(i) / moveSteps
		px := fromX + int(float64(x-fromX)*t)
		py := fromY + int(float64(y-fromY)*t)
		if err := d.pointer.MoveMouse(px, py); err != nil {
			return err
		}
		time.Sleep(stepDelay)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
