package state

import (
	"log"
	"sync"
)

// History is the ordered undo/redo log of committed paths. The cursor is
// the index of the last applied entry; everything above it is the redo
// tail. Recording after one or more undos truncates that tail, which is
// the usual undo-stack branching rule.
//
// History only manages the log. Replaying paths against the surfaces is
// the engine's job, because undoing a non-invertible composite (erase)
// needs a full rebuild that History has no business knowing about.
type History struct {
	mu      sync.RWMutex
	entries []Path
	cursor  int
}

// NewHistory returns an empty history with the cursor before the first entry.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Record appends a committed path after the cursor, discarding any
// redo-able entries, and advances the cursor onto it.
func (h *History) Record(p Path) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.entries) - (h.cursor + 1); n > 0 {
		log.Printf("[History] Discarding %d redo entries", n)
	}
	h.entries = append(h.entries[:h.cursor+1], p)
	h.cursor++
}

// Undo steps the cursor back one entry. It reports false when there is
// nothing to undo.
func (h *History) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor < 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo advances the cursor and returns the newly included path. It
// reports false when the cursor is already at the end.
func (h *History) Redo() (Path, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor >= len(h.entries)-1 {
		return Path{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Load replaces the whole log with externally supplied paths and places
// the cursor at the given index. An out-of-range index defaults to the
// end of the sequence.
func (h *History) Load(paths []Path, at int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = make([]Path, len(paths))
	copy(h.entries, paths)
	if at < -1 || at >= len(h.entries) {
		at = len(h.entries) - 1
	}
	h.cursor = at
}

// Clear empties the log and resets the cursor.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.cursor = -1
}

// Applied returns a copy of the entries at or below the cursor, in
// replay order.
func (h *History) Applied() []Path {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Path, h.cursor+1)
	copy(out, h.entries[:h.cursor+1])
	return out
}

// Entries returns a copy of the full log, redo tail included. Used when
// persisting a drawing.
func (h *History) Entries() []Path {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Path, len(h.entries))
	copy(out, h.entries)
	return out
}

// Cursor returns the index of the last applied entry, -1 when none.
func (h *History) Cursor() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor
}

// Len returns the total number of entries, redo tail included.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// CanUndo reports whether at least one entry is applied.
func (h *History) CanUndo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor >= 0
}

// CanRedo reports whether the redo tail is non-empty.
func (h *History) CanRedo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor < len(h.entries)-1
}
