package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/board"
	"InkBoard/internal/export"
	"InkBoard/internal/raster"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the tool strip: tool selection, undo/redo/clear,
// PDF export, color palette and stroke width slider, all driving the
// engine's public operations.
func NewToolbar(engine *board.Engine) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			engine.SetTool(board.ToolPencil)
		}),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), func() {
			engine.SetTool(board.ToolBrush)
		}),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			engine.SetTool(board.ToolEraser)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.NavigateBackIcon(), engine.Undo),
		widget.NewToolbarAction(theme.NavigateNextIcon(), engine.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), engine.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if err := export.PDF("inkboard.pdf", engine.History().Applied()); err != nil {
				log.Printf("[UI] PDF export failed: %v", err)
			}
		}),
	)

	onColorTapped := func(c color.Color) {
		engine.SetColor(raster.ColorName(c))
	}
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, onColorTapped),
		newColorSwatch(color.NRGBA{R: 255, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{G: 255, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{B: 255, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{R: 255, G: 255, A: 255}, onColorTapped),
	)

	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(2.0)
	strokeSlider.OnChanged = func(val float64) {
		engine.SetSize(val)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
