package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"InkBoard/internal/board"
)

// RunApp opens the board window and blocks until it is closed.
func RunApp(engine *board.Engine) {
	myApp := app.New()
	myWindow := myApp.NewWindow("InkBoard")

	boardWidget := NewBoardWidget(engine)
	engine.OnChange = boardWidget.RefreshView

	toolbar := NewToolbar(engine)
	content := container.NewBorder(toolbar, nil, nil, nil, boardWidget)

	w, h := engine.Size()
	myWindow.Resize(fyne.NewSize(float32(w), float32(h)+60))
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
