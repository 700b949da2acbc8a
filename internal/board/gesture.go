package board

import (
	"sync"
	"time"

	"InkBoard/internal/state"
)

// Button identifies a pointer button. Only the primary button starts a
// stroke; everything else is ignored rather than treated as an error.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonAuxiliary
)

type gestureState int

const (
	gestureIdle gestureState = iota
	gestureDrawing
)

// resizeDebounce coalesces bursts of resize notifications. The cached
// rect may lag real movement by this much, which is an accepted
// approximation rather than a correctness requirement.
const resizeDebounce = 150 * time.Millisecond

// Gesture is the small state machine that turns raw pointer signals into
// tool draw calls. It also translates viewport coordinates into surface
// space using the surface's last-known bounding rect.
type Gesture struct {
	mu       sync.Mutex
	state    gestureState
	originX  float64
	originY  float64
	debounce *time.Timer

	onDown func(state.Point)
	onMove func(state.Point)
	onUp   func()
}

// NewGesture wires a controller to its tool callbacks. The callbacks are
// invoked in strict down-move-up order per gesture.
func NewGesture(onDown, onMove func(state.Point), onUp func()) *Gesture {
	return &Gesture{onDown: onDown, onMove: onMove, onUp: onUp}
}

// SetViewportOrigin records where the surface sits in viewport space.
// Called once on construction and again whenever the host remeasures.
// A zero origin from a not-yet-attached container is fine; the next
// resize notification corrects it.
func (g *Gesture) SetViewportOrigin(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.originX = x
	g.originY = y
}

// NotifyResize schedules a debounced origin refresh after the host
// container moved or resized.
func (g *Gesture) NotifyResize(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.debounce != nil {
		g.debounce.Stop()
	}
	g.debounce = time.AfterFunc(resizeDebounce, func() {
		g.SetViewportOrigin(x, y)
	})
}

// PointerDown starts a gesture for the primary button. Non-primary
// buttons and a down while already drawing are ignored.
func (g *Gesture) PointerDown(btn Button, x, y float64) {
	g.mu.Lock()
	if btn != ButtonPrimary || g.state != gestureIdle {
		g.mu.Unlock()
		return
	}
	g.state = gestureDrawing
	p := g.translateLocked(x, y)
	g.mu.Unlock()
	g.onDown(p)
}

// PointerMove forwards movement to the active tool while drawing.
func (g *Gesture) PointerMove(x, y float64) {
	g.mu.Lock()
	if g.state != gestureDrawing {
		g.mu.Unlock()
		return
	}
	p := g.translateLocked(x, y)
	g.mu.Unlock()
	g.onMove(p)
}

// PointerUp ends the gesture and commits the stroke.
func (g *Gesture) PointerUp() {
	g.mu.Lock()
	if g.state != gestureDrawing {
		g.mu.Unlock()
		return
	}
	g.state = gestureIdle
	g.mu.Unlock()
	g.onUp()
}

// WindowBlur is treated exactly like PointerUp: losing focus mid-gesture
// commits the stroke instead of leaving it dangling.
func (g *Gesture) WindowBlur() {
	g.PointerUp()
}

// Reset drops back to idle without firing the up callback. Used when the
// active tool changes mid-gesture and the stroke is discarded.
func (g *Gesture) Reset() {
	g.mu.Lock()
	g.state = gestureIdle
	g.mu.Unlock()
}

func (g *Gesture) translateLocked(x, y float64) state.Point {
	return state.Point{X: x - g.originX, Y: y - g.originY}
}
