// Package loop runs the capture→analyze→act cycle on a single background
// goroutine and owns the Idle/Running lifecycle.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/screenpilot/internal/analyzer"
	"github.com/mj1618/screenpilot/internal/config"
	"github.com/mj1618/screenpilot/internal/model"
)

// State is the loop lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Cycler runs one capture→analyze cycle. Satisfied by *analyzer.Client.
type Cycler interface {
	RunCycle(ctx context.Context) (*model.Analysis, error)
}

// Actor executes one recommended action. Satisfied by *dispatch.Dispatcher.
type Actor interface {
	Dispatch(rec model.Recommendation) error
}

// Loop is the automation state machine. State is mutated only through Start
// and Stop; at most one background worker exists at a time.
type Loop struct {
	cycler      Cycler
	actor       Actor
	logger      *zap.Logger
	interval    time.Duration
	stopPoll    time.Duration
	joinTimeout time.Duration

	mu      sync.Mutex
	state   State
	stop    chan struct{} // nil when idle or a shutdown is already claimed
	done    chan struct{}
	onState func(State)

	notifyMu sync.Mutex // serializes listener invocations
}

// New creates an idle loop.
func New(cycler Cycler, actor Actor, cfg config.LoopConfig, logger *zap.Logger) *Loop {
	return &Loop{
		cycler:      cycler,
		actor:       actor,
		logger:      logger,
		interval:    cfg.Interval,
		stopPoll:    cfg.StopPoll,
		joinTimeout: cfg.JoinTimeout,
	}
}

// OnStateChange registers a listener invoked after every transition, from the
// goroutine that triggered it. Set before Start.
func (l *Loop) OnStateChange(fn func(State)) {
	l.mu.Lock()
	l.onState = fn
	l.mu.Unlock()
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start spawns the background worker. Calling Start while already running is
// a logged no-op; there is never more than one worker.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.state == StateRunning {
		l.mu.Unlock()
		l.logger.Info("automation already running")
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	l.stop = stop
	l.done = done
	l.state = StateRunning
	l.mu.Unlock()

	go l.run(stop, done)

	l.notify()
	l.logger.Info("automation started")
}

// Stop signals the worker and blocks until it exits or joinTimeout elapses.
// The transition to Idle happens either way; a worker that outlives the
// timeout is abandoned rather than hanging the caller. Stop while idle is a
// no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.state != StateRunning || l.stop == nil {
		l.mu.Unlock()
		l.logger.Info("automation not running")
		return
	}
	stop, done := l.stop, l.done
	l.stop = nil // claim the shutdown so concurrent Stops no-op
	l.mu.Unlock()

	close(stop)
	select {
	case <-done:
	case <-time.After(l.joinTimeout):
		l.logger.Warn("worker did not exit before join timeout", zap.Duration("timeout", l.joinTimeout))
	}

	l.mu.Lock()
	l.state = StateIdle
	l.mu.Unlock()

	l.notify()
	l.logger.Info("automation stopped")
}

// notify delivers the current state to the listener. Invocations are
// serialized and the state is re-read under the lock, so a delayed
// notification can never overwrite a newer transition with a stale one.
func (l *Loop) notify() {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	fn, s := l.onState, l.state
	l.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

func (l *Loop) run(stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		l.tick()

		if !l.wait(stop) {
			return
		}
	}
}

// tick runs one full cycle. Every failure is logged and absorbed here; no
// cycle outcome ever terminates the worker.
func (l *Loop) tick() {
	// An in-flight request runs to completion; the stop flag is only checked
	// between cycles, so no context cancellation is wired in.
	result, err := l.cycler.RunCycle(context.Background())
	if err != nil {
		var cerr *analyzer.CycleError
		if errors.As(err, &cerr) {
			fields := []zap.Field{zap.String("stage", string(cerr.Stage)), zap.Error(cerr.Err)}
			if cerr.Raw != "" {
				fields = append(fields, zap.String("raw_response", cerr.Raw))
			}
			l.logger.Warn("cycle failed", fields...)
		} else {
			l.logger.Warn("cycle failed", zap.Error(err))
		}
		return
	}

	l.logger.Info("screen analyzed",
		zap.String("description", result.Description),
		zap.Int("elements", len(result.Elements)))

	if result.Recommended == nil {
		l.logger.Info("no actionable recommendation, skipping dispatch")
		return
	}

	if err := l.actor.Dispatch(*result.Recommended); err != nil {
		l.logger.Warn("dispatch failed", zap.Error(err))
	}
}

// wait sleeps for the inter-cycle interval, checking the stop signal at
// stopPoll granularity so Stop stays responsive. Returns false on stop.
func (l *Loop) wait(stop chan struct{}) bool {
	deadline := time.Now().Add(l.interval)
	for time.Now().Before(deadline) {
		select {
		case <-stop:
			return false
		case <-time.After(l.stopPoll):
		}
	}
	return true
}
