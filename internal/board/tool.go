package board

import (
	"github.com/google/uuid"

	"InkBoard/internal/raster"
	"InkBoard/internal/state"
)

// Tool is one drawing instrument. Brush variants and the eraser share
// all stroke-accumulation behavior and differ only in composite mode and
// default styling, so a single struct tagged with a mode covers both.
type Tool struct {
	name    string
	mode    raster.Mode
	color   string
	size    float64
	enabled bool
	drawing bool
	points  []state.Point
	comp    *raster.Compositor
}

// NewBrush creates a drawing tool that composites source-over.
func NewBrush(name, colorName string, size float64, comp *raster.Compositor) *Tool {
	return &Tool{name: name, mode: raster.ModeSourceOver, color: colorName, size: size, comp: comp}
}

// NewEraser creates a tool that composites destination-out, subtracting
// stroke alpha from committed content.
func NewEraser(name string, size float64, comp *raster.Compositor) *Tool {
	return &Tool{name: name, mode: raster.ModeDestinationOut, color: "white", size: size, comp: comp}
}

// Name returns the registry name for this tool.
func (t *Tool) Name() string { return t.name }

// Mode returns the tool's composite mode.
func (t *Tool) Mode() raster.Mode { return t.mode }

// Color returns the current stroke color name.
func (t *Tool) Color() string { return t.color }

// Size returns the current stroke width.
func (t *Tool) Size() float64 { return t.size }

// Activate marks the tool ready to receive pointer signals.
func (t *Tool) Activate() { t.enabled = true }

// Deactivate makes the tool ignore pointer signals. A stroke in progress
// is discarded wholesale; a half-drawn stroke must never end up partially
// committed.
func (t *Tool) Deactivate() {
	t.enabled = false
	if t.drawing {
		t.drawing = false
		t.points = nil
		t.comp.ClearScratch()
	}
}

// PointerDown begins a stroke at p. A stray duplicate down while already
// drawing is a no-op so it cannot fork a second stroke.
func (t *Tool) PointerDown(p state.Point) {
	if !t.enabled || t.drawing {
		return
	}
	t.drawing = true
	t.points = []state.Point{p}
	t.comp.StrokeDot(p, t.color, t.size)
}

// PointerMove extends the stroke to p, redrawing only the last segment's
// region on the scratch surface.
func (t *Tool) PointerMove(p state.Point) {
	if !t.drawing {
		return
	}
	prev := t.points[len(t.points)-1]
	t.points = append(t.points, p)
	t.comp.StrokeSegment(prev, p, t.color, t.size)
}

// PointerUp commits the stroke and returns the immutable Path for the
// history log. The scratch buffer is re-rendered from the full point
// list before merging, so committed pixels always come from the batch
// path and are bit-identical to any later history replay. Without a
// preceding down this is a no-op.
func (t *Tool) PointerUp() (state.Path, bool) {
	if !t.drawing {
		return state.Path{}, false
	}
	path := state.NewPath(uuid.NewString(), t.name, t.color, t.size, t.points)
	t.comp.ClearScratch()
	t.comp.StrokePath(path.Points, path.Color, path.Size)
	t.comp.Merge(t.mode, path.Bounds)
	t.drawing = false
	t.points = nil
	return path, true
}

// Drawing reports whether a stroke is in progress.
func (t *Tool) Drawing() bool { return t.drawing }

// SetColor changes the stroke color for subsequent strokes only;
// committed paths carry their own color.
func (t *Tool) SetColor(colorName string) { t.color = colorName }

// SetSize changes the stroke width for subsequent strokes only.
func (t *Tool) SetSize(size float64) {
	if size > 0 {
		t.size = size
	}
}

// Draw replays a full point list through the compositor in one batch,
// pixel-identical to the incremental pointer path. History rebuilds and
// deserialized drawings go through here.
func (t *Tool) Draw(points []state.Point, colorName string, size float64) {
	t.comp.Replay(t.mode, points, colorName, size)
}
