package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/raster"
	"InkBoard/internal/state"
)

func newTestBrush(t *testing.T) (*Tool, *raster.Compositor) {
	t.Helper()
	comp := raster.New(100, 100)
	tool := NewBrush("pencil", "black", 2, comp)
	tool.Activate()
	return tool, comp
}

func TestToolPointerDownIdempotent(t *testing.T) {
	tool, _ := newTestBrush(t)

	tool.PointerDown(state.Point{X: 10, Y: 10})
	tool.PointerDown(state.Point{X: 50, Y: 50})
	tool.PointerMove(state.Point{X: 20, Y: 20})

	path, ok := tool.PointerUp()
	require.True(t, ok)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}, path.Points,
		"a stray duplicate down must not start a second stroke")
}

func TestToolPointerUpWithoutDown(t *testing.T) {
	tool, _ := newTestBrush(t)
	_, ok := tool.PointerUp()
	assert.False(t, ok)
}

func TestToolMoveWithoutDownIgnored(t *testing.T) {
	tool, comp := newTestBrush(t)
	tool.PointerMove(state.Point{X: 10, Y: 10})
	comp.Merge(raster.ModeSourceOver, state.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})

	if _, _, _, a := comp.PixelAt(10, 10); a != 0 {
		t.Error("move without down must not draw")
	}
}

func TestToolDeactivateDiscardsStroke(t *testing.T) {
	tool, comp := newTestBrush(t)

	tool.PointerDown(state.Point{X: 10, Y: 10})
	tool.PointerMove(state.Point{X: 20, Y: 20})
	tool.Deactivate()

	// Nothing was committed and the scratch buffer is empty, so a merge
	// of the whole surface stays blank.
	comp.Merge(raster.ModeSourceOver, state.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	if _, _, _, a := comp.PixelAt(15, 15); a != 0 {
		t.Error("deactivating mid-stroke must discard the partial stroke")
	}

	_, ok := tool.PointerUp()
	assert.False(t, ok, "deactivation ended the stroke")
}

func TestToolCommitBuildsPath(t *testing.T) {
	tool, _ := newTestBrush(t)

	tool.PointerDown(state.Point{X: 10, Y: 10})
	tool.PointerMove(state.Point{X: 20, Y: 20})
	path, ok := tool.PointerUp()

	require.True(t, ok)
	assert.NotEmpty(t, path.ID)
	assert.Equal(t, "pencil", path.Tool)
	assert.Equal(t, "black", path.Color)
	assert.Equal(t, 2.0, path.Size)
	assert.Equal(t, state.Rect{MinX: 9, MinY: 9, MaxX: 21, MaxY: 21}, path.Bounds)
}

func TestToolStyleAppliesToFutureStrokesOnly(t *testing.T) {
	tool, _ := newTestBrush(t)

	tool.PointerDown(state.Point{X: 10, Y: 10})
	path, ok := tool.PointerUp()
	require.True(t, ok)

	tool.SetColor("red")
	tool.SetSize(8)
	assert.Equal(t, "black", path.Color, "committed paths keep their style")
	assert.Equal(t, 2.0, path.Size)

	tool.PointerDown(state.Point{X: 30, Y: 30})
	next, ok := tool.PointerUp()
	require.True(t, ok)
	assert.Equal(t, "red", next.Color)
	assert.Equal(t, 8.0, next.Size)
}

func TestEraserMode(t *testing.T) {
	comp := raster.New(100, 100)
	eraser := NewEraser("eraser", 20, comp)
	assert.Equal(t, raster.ModeDestinationOut, eraser.Mode())
}
