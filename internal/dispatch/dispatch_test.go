package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mj1618/screenpilot/internal/model"
	"github.com/mj1618/screenpilot/internal/platform"
)

type click struct {
	x, y   int
	button platform.MouseButton
	count  int
}

type fakePointer struct {
	width, height int
	sizeErr       error
	posErr        error
	curX, curY    int
	moves         [][2]int
	clicks        []click
}

func (f *fakePointer) DisplaySize() (int, int, error) {
	return f.width, f.height, f.sizeErr
}

func (f *fakePointer) MousePosition() (int, int, error) {
	return f.curX, f.curY, f.posErr
}

func (f *fakePointer) MoveMouse(x, y int) error {
	f.moves = append(f.moves, [2]int{x, y})
	f.curX, f.curY = x, y
	return nil
}

func (f *fakePointer) Click(x, y int, button platform.MouseButton, count int) error {
	f.clicks = append(f.clicks, click{x, y, button, count})
	return nil
}

func newTestDispatcher(p *fakePointer) *Dispatcher {
	// Zero move duration keeps tests instant; glide behavior is covered separately.
	return New(p, 0, zap.NewNop())
}

func TestDispatch_ClampsToBounds(t *testing.T) {
	p := &fakePointer{width: 1920, height: 1080}
	d := newTestDispatcher(p)

	err := d.Dispatch(model.Recommendation{X: 5000, Y: -50, Action: model.ActionClick})
	require.NoError(t, err)

	require.Len(t, p.clicks, 1)
	assert.Equal(t, 1919, p.clicks[0].x)
	assert.Equal(t, 0, p.clicks[0].y)
}

func TestDispatch_InBoundsUntouched(t *testing.T) {
	p := &fakePointer{width: 1920, height: 1080}
	d := newTestDispatcher(p)

	require.NoError(t, d.Dispatch(model.Recommendation{X: 500, Y: 300}))
	require.Len(t, p.clicks, 1)
	assert.Equal(t, click{500, 300, platform.MouseLeft, 1}, p.clicks[0])
}

func TestDispatch_ActionSelection(t *testing.T) {
	tests := []struct {
		action model.Action
		want   click
	}{
		{model.ActionClick, click{10, 10, platform.MouseLeft, 1}},
		{model.ActionDoubleClick, click{10, 10, platform.MouseLeft, 2}},
		{model.ActionRightClick, click{10, 10, platform.MouseRight, 1}},
		{model.Action("teleport"), click{10, 10, platform.MouseLeft, 1}},
		{model.Action(""), click{10, 10, platform.MouseLeft, 1}},
	}
	for _, tt := range tests {
		p := &fakePointer{width: 100, height: 100}
		d := newTestDispatcher(p)
		require.NoError(t, d.Dispatch(model.Recommendation{X: 10, Y: 10, Action: tt.action}))
		require.Len(t, p.clicks, 1, "action %q", tt.action)
		assert.Equal(t, tt.want, p.clicks[0], "action %q", tt.action)
	}
}

func TestDispatch_DisplaySizeError(t *testing.T) {
	p := &fakePointer{sizeErr: errors.New("no display")}
	d := newTestDispatcher(p)

	err := d.Dispatch(model.Recommendation{X: 1, Y: 1})
	assert.Error(t, err)
	assert.Empty(t, p.clicks, "no click must be issued without known bounds")
}

func TestDispatch_GlideInterpolates(t *testing.T) {
	p := &fakePointer{width: 1000, height: 1000}
	d := New(p, 20, zap.NewNop()) // 20ms total, 1ms per step

	require.NoError(t, d.Dispatch(model.Recommendation{X: 200, Y: 100}))

	require.NotEmpty(t, p.moves)
	last := p.moves[len(p.moves)-1]
	assert.Equal(t, [2]int{200, 100}, last, "glide must land exactly on the target")
	assert.Greater(t, len(p.moves), 1, "glide must move in steps, not warp")
}

func TestDispatch_GlideFallsBackToWarp(t *testing.T) {
	p := &fakePointer{width: 1000, height: 1000, posErr: errors.New("unavailable")}
	d := New(p, 20, zap.NewNop())

	require.NoError(t, d.Dispatch(model.Recommendation{X: 300, Y: 400}))
	require.Len(t, p.moves, 1)
	assert.Equal(t, [2]int{300, 400}, p.moves[0])
}
