package board

import (
	"errors"
	"image"
	"log"
	"sync"

	"InkBoard/internal/raster"
	"InkBoard/internal/state"
)

// Default surface size when the host supplies no configuration.
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// Names of the built-in tools.
const (
	ToolPencil = "pencil"
	ToolBrush  = "brush"
	ToolEraser = "eraser"
)

// Config is the engine construction configuration.
type Config struct {
	Width  int
	Height int
}

// Engine orchestrates the drawing core: it owns the surfaces (through
// the compositor), the tool registry, the active tool and the history
// log, and exposes the public contract hosts program against.
//
// The core is single-threaded by contract: all pointer signals and all
// public operations are expected from one goroutine. The engine mutex
// only guards against the async bitmap-load completion.
type Engine struct {
	mu      sync.Mutex
	comp    *raster.Compositor
	history *state.History
	tools   map[string]*Tool
	active  *Tool
	gesture *Gesture
	loading bool

	// Outward notifications for host integration, distinct from the raw
	// inbound pointer signals.
	OnToolDown func(state.Point)
	OnToolMove func(state.Point)
	OnToolUp   func()
	OnCommit   func(state.Path)
	OnClear    func()
	OnChange   func()
}

// New creates an engine with the three built-in tools registered and the
// pencil active.
func New(cfg Config) *Engine {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	comp := raster.New(cfg.Width, cfg.Height)
	e := &Engine{
		comp:    comp,
		history: state.NewHistory(),
		tools: map[string]*Tool{
			ToolPencil: NewBrush(ToolPencil, "black", 2, comp),
			ToolBrush:  NewBrush(ToolBrush, "blue", 4, comp),
			ToolEraser: NewEraser(ToolEraser, 20, comp),
		},
	}
	e.gesture = NewGesture(e.handleDown, e.handleMove, e.handleUp)
	e.active = e.tools[ToolPencil]
	e.active.Activate()
	return e
}

// Gesture returns the pointer controller the host feeds raw signals into.
func (e *Engine) Gesture() *Gesture { return e.gesture }

// Size returns the surface dimensions.
func (e *Engine) Size() (int, int) { return e.comp.Size() }

// Resize replaces the surfaces with cleared ones of the new size. The
// history survives a resize; only an explicit Clear destroys it, and an
// Undo or Redo afterwards rebuilds the bitmap at the new size.
func (e *Engine) Resize(width, height int) {
	e.comp.Resize(width, height)
	e.emitChange()
}

// SetTool switches the active tool. An unknown name is silently ignored
// with no state change. Switching mid-stroke discards the unfinished
// stroke rather than committing half of it.
func (e *Engine) SetTool(name string) {
	tool, ok := e.tools[name]
	if !ok {
		log.Printf("[Engine] Ignoring unknown tool %q", name)
		return
	}
	if tool == e.active {
		return
	}
	e.active.Deactivate()
	e.gesture.Reset()
	e.active = tool
	e.active.Activate()
	e.emitChange()
}

// ActiveTool returns the name of the active tool.
func (e *Engine) ActiveTool() string { return e.active.Name() }

// SetColor sets the active tool's stroke color for subsequent strokes.
func (e *Engine) SetColor(colorName string) { e.active.SetColor(colorName) }

// SetSize sets the active tool's stroke width for subsequent strokes.
func (e *Engine) SetSize(size float64) { e.active.SetSize(size) }

// Clear empties the history and wipes both surfaces.
func (e *Engine) Clear() {
	e.history.Clear()
	e.comp.ClearAll()
	if e.OnClear != nil {
		e.OnClear()
	}
	e.emitChange()
}

// Undo steps the history back one path and rebuilds the committed
// surface by replaying everything still applied. The full replay is
// required because erase composites are not invertible.
func (e *Engine) Undo() {
	if !e.history.Undo() {
		return
	}
	e.rebuild()
	e.emitChange()
}

// Redo re-applies the next path incrementally; forward replay is always
// additive relative to the current surface.
func (e *Engine) Redo() {
	p, ok := e.history.Redo()
	if !ok {
		return
	}
	e.replay(p)
	e.emitChange()
}

// History exposes the undo/redo log, mainly for hosts that want to
// enable or disable their undo buttons.
func (e *Engine) History() *state.History { return e.history }

// ExportBitmap encodes the committed surface as a base64 PNG.
func (e *Engine) ExportBitmap() (string, error) {
	return e.comp.ExportBitmap()
}

// Preview returns the committed surface composed with any in-progress
// stroke under the active tool's mode. Hosts render this.
func (e *Engine) Preview() *image.RGBA {
	return e.comp.Preview(e.active.Mode())
}

// LoadBitmapImage asynchronously decodes src (a base64 PNG, as produced
// by ExportBitmap) into the committed surface. On decode failure a 1x1
// transparent placeholder is substituted; the failure is logged, never
// fatal. Drawing is suspended while the load is pending, and the history
// is cleared because the committed content no longer derives from it.
// done, if non-nil, runs after the surface is updated.
func (e *Engine) LoadBitmapImage(src string, done func()) {
	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		log.Printf("[Engine] Bitmap load already pending, ignoring")
		return
	}
	e.loading = true
	e.active.Deactivate()
	e.gesture.Reset()
	e.mu.Unlock()

	go func() {
		img, err := raster.DecodeBitmap(src)
		if err != nil {
			log.Printf("[Engine] Bitmap decode failed, substituting placeholder: %v", err)
			img = raster.Placeholder()
		}
		e.mu.Lock()
		e.comp.SetCommitted(img)
		e.history.Clear()
		e.loading = false
		e.active.Activate()
		e.mu.Unlock()
		e.emitChange()
		if done != nil {
			done()
		}
	}()
}

// LoadDrawing replaces the history with externally supplied path records
// and rebuilds the surface. Records that fail to hydrate are skipped and
// reported via the returned error (joined HydrationErrors); records
// naming an unregistered tool are skipped with a log line only. The
// cursor lands at historyIndex, or at the end when out of range.
func (e *Engine) LoadDrawing(records []state.Record, historyIndex int) error {
	var errs []error
	paths := make([]state.Path, 0, len(records))
	for i, r := range records {
		p, err := state.Hydrate(r)
		if err != nil {
			log.Printf("[Engine] Skipping path %d: %v", i, err)
			errs = append(errs, err)
			continue
		}
		if _, ok := e.tools[p.Tool]; !ok {
			log.Printf("[Engine] Skipping path %d: unknown tool %q", i, p.Tool)
			continue
		}
		paths = append(paths, p)
	}
	e.history.Load(paths, historyIndex)
	e.rebuild()
	e.emitChange()
	return errors.Join(errs...)
}

// SaveDocument serializes the full history (redo tail included) plus the
// cursor as a JSON document for any text-based persistence medium.
func (e *Engine) SaveDocument() ([]byte, error) {
	entries := e.history.Entries()
	records := make([]state.Record, len(entries))
	for i, p := range entries {
		records[i] = state.Serialize(p)
	}
	cursor := e.history.Cursor()
	return state.EncodeDocument(state.Document{Paths: records, HistoryIndex: &cursor})
}

// LoadDocument parses a document produced by SaveDocument and loads it.
func (e *Engine) LoadDocument(data []byte) error {
	doc, err := state.DecodeDocument(data)
	if err != nil {
		return err
	}
	at := len(doc.Paths) - 1
	if doc.HistoryIndex != nil {
		at = *doc.HistoryIndex
	}
	return e.LoadDrawing(doc.Paths, at)
}

// rebuild replays every applied path in order onto a cleared committed
// surface.
func (e *Engine) rebuild() {
	e.comp.ClearCommitted()
	for _, p := range e.history.Applied() {
		e.replay(p)
	}
}

func (e *Engine) replay(p state.Path) {
	tool, ok := e.tools[p.Tool]
	if !ok {
		log.Printf("[Engine] Cannot replay path %s: unknown tool %q", p.ID, p.Tool)
		return
	}
	tool.Draw(p.Points, p.Color, p.Size)
}

func (e *Engine) handleDown(p state.Point) {
	e.mu.Lock()
	pending := e.loading
	e.mu.Unlock()
	if pending {
		return
	}
	e.active.PointerDown(p)
	if e.OnToolDown != nil {
		e.OnToolDown(p)
	}
	e.emitChange()
}

func (e *Engine) handleMove(p state.Point) {
	e.active.PointerMove(p)
	if e.OnToolMove != nil {
		e.OnToolMove(p)
	}
	e.emitChange()
}

func (e *Engine) handleUp() {
	path, ok := e.active.PointerUp()
	if !ok {
		return
	}
	e.history.Record(path)
	if e.OnCommit != nil {
		e.OnCommit(path)
	}
	if e.OnToolUp != nil {
		e.OnToolUp()
	}
	e.emitChange()
}

func (e *Engine) emitChange() {
	if e.OnChange != nil {
		e.OnChange()
	}
}
