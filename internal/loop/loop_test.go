package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/mj1618/screenpilot/internal/analyzer"
	"github.com/mj1618/screenpilot/internal/config"
	"github.com/mj1618/screenpilot/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingCycler struct {
	cycles     atomic.Int64
	concurrent atomic.Int64
	maxSeen    atomic.Int64
	result     *model.Analysis
	err        error
}

func (c *countingCycler) RunCycle(context.Context) (*model.Analysis, error) {
	cur := c.concurrent.Add(1)
	defer c.concurrent.Add(-1)
	for {
		seen := c.maxSeen.Load()
		if cur <= seen || c.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	c.cycles.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	if c.result != nil {
		return c.result, nil
	}
	return &model.Analysis{Description: "d", Elements: []model.Element{}}, nil
}

type recordingActor struct {
	mu   sync.Mutex
	recs []model.Recommendation
}

func (a *recordingActor) Dispatch(rec model.Recommendation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recs = append(a.recs, rec)
	return nil
}

func (a *recordingActor) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.recs)
}

func fastConfig() config.LoopConfig {
	return config.LoopConfig{
		Interval:    20 * time.Millisecond,
		StopPoll:    5 * time.Millisecond,
		JoinTimeout: time.Second,
	}
}

func TestLoop_StartStop(t *testing.T) {
	cycler := &countingCycler{}
	l := New(cycler, &recordingActor{}, fastConfig(), zap.NewNop())

	assert.Equal(t, StateIdle, l.State())
	l.Start()
	assert.Equal(t, StateRunning, l.State())

	require.Eventually(t, func() bool { return cycler.cycles.Load() >= 2 },
		2*time.Second, 5*time.Millisecond)

	l.Stop()
	assert.Equal(t, StateIdle, l.State())
}

func TestLoop_StartIsIdempotent(t *testing.T) {
	cycler := &countingCycler{}
	l := New(cycler, &recordingActor{}, fastConfig(), zap.NewNop())

	l.Start()
	l.Start()
	l.Start()

	require.Eventually(t, func() bool { return cycler.cycles.Load() >= 3 },
		2*time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 1, cycler.maxSeen.Load(), "never more than one worker in a cycle")

	l.Stop()
}

func TestLoop_StopWhileIdleIsNoOp(t *testing.T) {
	l := New(&countingCycler{}, &recordingActor{}, fastConfig(), zap.NewNop())
	l.Stop()
	l.Stop()
	assert.Equal(t, StateIdle, l.State())
}

func TestLoop_StopIsResponsiveDuringWait(t *testing.T) {
	cfg := config.LoopConfig{
		Interval:    10 * time.Second, // far longer than the test
		StopPoll:    10 * time.Millisecond,
		JoinTimeout: 2 * time.Second,
	}
	l := New(&countingCycler{}, &recordingActor{}, cfg, zap.NewNop())

	l.Start()
	time.Sleep(30 * time.Millisecond) // let the first cycle finish and enter the wait

	start := time.Now()
	l.Stop()
	assert.Less(t, time.Since(start), time.Second,
		"stop must interrupt the inter-cycle wait, not ride it out")
}

func TestLoop_CycleFailureDoesNotStopLoop(t *testing.T) {
	cycler := &countingCycler{err: &analyzer.CycleError{Stage: analyzer.StageParse, Err: assert.AnError, Raw: "garbage"}}
	actor := &recordingActor{}
	l := New(cycler, actor, fastConfig(), zap.NewNop())

	l.Start()
	require.Eventually(t, func() bool { return cycler.cycles.Load() >= 3 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, StateRunning, l.State(), "failures must never stop the loop")
	assert.Zero(t, actor.count(), "failed cycles must not dispatch")

	l.Stop()
}

func TestLoop_DispatchesRecommendation(t *testing.T) {
	rec := &model.Recommendation{Label: "OK", X: 5, Y: 6, Action: model.ActionClick}
	cycler := &countingCycler{result: &model.Analysis{Description: "d", Recommended: rec}}
	actor := &recordingActor{}
	l := New(cycler, actor, fastConfig(), zap.NewNop())

	l.Start()
	require.Eventually(t, func() bool { return actor.count() >= 1 },
		2*time.Second, 5*time.Millisecond)
	l.Stop()

	actor.mu.Lock()
	defer actor.mu.Unlock()
	assert.Equal(t, *rec, actor.recs[0])
}

func TestLoop_SkipsDispatchWithoutRecommendation(t *testing.T) {
	cycler := &countingCycler{result: &model.Analysis{Description: "nothing to do"}}
	actor := &recordingActor{}
	l := New(cycler, actor, fastConfig(), zap.NewNop())

	l.Start()
	require.Eventually(t, func() bool { return cycler.cycles.Load() >= 2 },
		2*time.Second, 5*time.Millisecond)
	l.Stop()

	assert.Zero(t, actor.count())
}

func TestLoop_StateChangeNotifications(t *testing.T) {
	l := New(&countingCycler{}, &recordingActor{}, fastConfig(), zap.NewNop())

	var mu sync.Mutex
	var seen []State
	l.OnStateChange(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	l.Start()
	l.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateRunning, StateIdle}, seen)
}

// The last notification delivered must always match the loop's final state,
// even when Start and Stop race from multiple goroutines; a stale Running
// arriving after the final Idle would freeze the status icon wrong.
func TestLoop_NotificationsNeverGoStale(t *testing.T) {
	l := New(&countingCycler{}, &recordingActor{}, fastConfig(), zap.NewNop())

	var mu sync.Mutex
	var seen []State
	l.OnStateChange(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.Start()
				l.Stop()
			}
		}()
	}
	wg.Wait()
	l.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, l.State(), seen[len(seen)-1])
}

func TestLoop_Restart(t *testing.T) {
	cycler := &countingCycler{}
	l := New(cycler, &recordingActor{}, fastConfig(), zap.NewNop())

	l.Start()
	require.Eventually(t, func() bool { return cycler.cycles.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	l.Stop()

	before := cycler.cycles.Load()
	l.Start()
	require.Eventually(t, func() bool { return cycler.cycles.Load() > before }, 2*time.Second, 5*time.Millisecond)
	l.Stop()
	assert.Equal(t, StateIdle, l.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
}
