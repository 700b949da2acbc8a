package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/state"
)

type gestureLog struct {
	downs []state.Point
	moves []state.Point
	ups   int
}

func newLoggedGesture() (*Gesture, *gestureLog) {
	l := &gestureLog{}
	g := NewGesture(
		func(p state.Point) { l.downs = append(l.downs, p) },
		func(p state.Point) { l.moves = append(l.moves, p) },
		func() { l.ups++ },
	)
	return g, l
}

func TestGestureIgnoresNonPrimaryButtons(t *testing.T) {
	g, l := newLoggedGesture()

	g.PointerDown(ButtonSecondary, 10, 10)
	g.PointerMove(12, 12)
	g.PointerUp()

	assert.Empty(t, l.downs)
	assert.Empty(t, l.moves)
	assert.Zero(t, l.ups)
}

func TestGestureLifecycle(t *testing.T) {
	g, l := newLoggedGesture()

	g.PointerDown(ButtonPrimary, 10, 10)
	g.PointerMove(12, 14)
	g.PointerUp()

	require.Len(t, l.downs, 1)
	require.Len(t, l.moves, 1)
	assert.Equal(t, state.Point{X: 10, Y: 10}, l.downs[0])
	assert.Equal(t, state.Point{X: 12, Y: 14}, l.moves[0])
	assert.Equal(t, 1, l.ups)
}

func TestGestureMoveOutsideDrawingIsIgnored(t *testing.T) {
	g, l := newLoggedGesture()

	g.PointerMove(5, 5)
	g.PointerUp()

	assert.Empty(t, l.moves)
	assert.Zero(t, l.ups)
}

func TestGestureDuplicateDownIgnored(t *testing.T) {
	g, l := newLoggedGesture()

	g.PointerDown(ButtonPrimary, 10, 10)
	g.PointerDown(ButtonPrimary, 50, 50)

	require.Len(t, l.downs, 1)
	assert.Equal(t, state.Point{X: 10, Y: 10}, l.downs[0])
}

func TestWindowBlurActsAsPointerUp(t *testing.T) {
	g, l := newLoggedGesture()

	g.PointerDown(ButtonPrimary, 10, 10)
	g.WindowBlur()
	assert.Equal(t, 1, l.ups, "losing focus commits the stroke")

	// Idle blur does nothing.
	g.WindowBlur()
	assert.Equal(t, 1, l.ups)
}

func TestGestureViewportTranslation(t *testing.T) {
	g, l := newLoggedGesture()
	g.SetViewportOrigin(100, 50)

	g.PointerDown(ButtonPrimary, 110, 60)
	require.Len(t, l.downs, 1)
	assert.Equal(t, state.Point{X: 10, Y: 10}, l.downs[0])
}

func TestGestureResizeDebounce(t *testing.T) {
	g, l := newLoggedGesture()

	// A burst of notifications coalesces into the last origin.
	g.NotifyResize(10, 10)
	g.NotifyResize(20, 20)
	g.NotifyResize(30, 40)
	time.Sleep(resizeDebounce + 100*time.Millisecond)

	g.PointerDown(ButtonPrimary, 31, 42)
	require.Len(t, l.downs, 1)
	assert.Equal(t, state.Point{X: 1, Y: 2}, l.downs[0])
}

func TestGestureReset(t *testing.T) {
	g, l := newLoggedGesture()

	g.PointerDown(ButtonPrimary, 10, 10)
	g.Reset()
	g.PointerUp()

	assert.Zero(t, l.ups, "reset drops the gesture without an up event")
}
