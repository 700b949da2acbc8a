package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/board"
)

// BoardWidget is the Fyne host for the drawing engine. It forwards raw
// pointer signals into the engine's gesture controller and renders the
// engine's composed preview. All drawing semantics live in the engine;
// this widget is deliberately dumb.
type BoardWidget struct {
	widget.BaseWidget
	engine *board.Engine
	view   *canvas.Image
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget wraps an engine in a drawable widget.
func NewBoardWidget(engine *board.Engine) *BoardWidget {
	b := &BoardWidget{engine: engine}
	b.view = canvas.NewImageFromImage(engine.Preview())
	b.view.FillMode = canvas.ImageFillOriginal
	b.ExtendBaseWidget(b)
	return b
}

// RefreshView re-reads the composed surface from the engine. Wire it to
// the engine's OnChange callback.
func (b *BoardWidget) RefreshView() {
	b.view.Image = b.engine.Preview()
	b.view.Refresh()
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	b.engine.Gesture().PointerDown(mapButton(e.Button), float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.engine.Gesture().PointerUp()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.engine.Gesture().PointerMove(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) DragEnd() {
	b.engine.Gesture().PointerUp()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.view)
}

func (b *BoardWidget) MinSize() fyne.Size {
	w, h := b.engine.Size()
	return fyne.NewSize(float32(w), float32(h))
}

func mapButton(btn desktop.MouseButton) board.Button {
	switch btn {
	case desktop.MouseButtonPrimary:
		return board.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return board.ButtonSecondary
	default:
		return board.ButtonAuxiliary
	}
}
