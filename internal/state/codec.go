package state

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// KindMalformedPath marks hydration failures caused by unparseable point
// or bounds strings.
const KindMalformedPath = "malformed-path"

// HydrationError reports a path record that could not be hydrated.
// Callers loading a drawing skip the offending record and keep going.
type HydrationError struct {
	Kind   string
	Detail string
	Err    error
}

func (e *HydrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hydration failed (%s): %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("hydration failed (%s): %s", e.Kind, e.Detail)
}

func (e *HydrationError) Unwrap() error { return e.Err }

// Record is the wire form of a Path. Points and Bounds are loosely typed
// because both the compact textual form ("x1,y1|x2,y2|...") and the
// already-numeric structured form are accepted on input.
type Record struct {
	ID     string  `json:"id,omitempty"`
	Tool   string  `json:"tool,omitempty"`
	Name   string  `json:"name,omitempty"` // accepted alias for Tool
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	Points any     `json:"points"`
	Bounds any     `json:"bounds,omitempty"`
}

// Document is the persisted form of a whole drawing: ordered path records
// plus an optional history cursor.
type Document struct {
	Paths        []Record `json:"paths"`
	HistoryIndex *int     `json:"history_index,omitempty"`
}

// EncodeDocument marshals a drawing document as indented JSON.
func EncodeDocument(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeDocument parses a drawing document previously produced by
// EncodeDocument, or any JSON matching its shape.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("could not parse drawing document: %w", err)
	}
	return doc, nil
}

// Serialize converts a path to its compact wire form. Coordinates are
// written with two decimals, pairs joined by "|".
func Serialize(p Path) Record {
	return Record{
		ID:     p.ID,
		Tool:   p.Tool,
		Color:  p.Color,
		Size:   p.Size,
		Points: EncodePoints(p.Points),
		Bounds: encodeBounds(p.Bounds),
	}
}

// Hydrate converts a wire record back into a Path. Both textual and
// structured point forms are valid, so hydrating an already-hydrated
// record returns an equal path.
func Hydrate(r Record) (Path, error) {
	tool := r.Tool
	if tool == "" {
		tool = r.Name
	}
	points, err := decodePoints(r.Points)
	if err != nil {
		return Path{}, err
	}
	if len(points) == 0 {
		return Path{}, &HydrationError{Kind: KindMalformedPath, Detail: "path has no points"}
	}
	bounds, ok, err := decodeBounds(r.Bounds)
	if err != nil {
		return Path{}, err
	}
	if !ok {
		bounds = BoundsOf(points, r.Size)
	}
	return Path{
		ID:     r.ID,
		Tool:   tool,
		Color:  r.Color,
		Size:   r.Size,
		Points: points,
		Bounds: bounds,
	}, nil
}

// EncodePoints renders points as "x1,y1|x2,y2|...".
func EncodePoints(points []Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(formatCoord(p.X))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(p.Y))
	}
	return sb.String()
}

// ParsePoints parses the "x1,y1|x2,y2|..." form.
func ParsePoints(s string) ([]Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &HydrationError{Kind: KindMalformedPath, Detail: "empty point string"}
	}
	pairs := strings.Split(s, "|")
	points := make([]Point, 0, len(pairs))
	for _, pair := range pairs {
		x, y, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parsePair(pair string) (float64, float64, error) {
	coords := strings.Split(pair, ",")
	if len(coords) != 2 {
		return 0, 0, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("bad coordinate pair %q", pair)}
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
	if err != nil {
		return 0, 0, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("bad x in %q", pair), Err: err}
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
	if err != nil {
		return 0, 0, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("bad y in %q", pair), Err: err}
	}
	return x, y, nil
}

func decodePoints(v any) ([]Point, error) {
	switch pts := v.(type) {
	case nil:
		return nil, &HydrationError{Kind: KindMalformedPath, Detail: "record has no points"}
	case string:
		return ParsePoints(pts)
	case []Point:
		out := make([]Point, len(pts))
		copy(out, pts)
		return out, nil
	case []any:
		// What json.Unmarshal produces for structured points.
		out := make([]Point, 0, len(pts))
		for _, raw := range pts {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("bad point element %v", raw)}
			}
			x, xok := asFloat(m["x"])
			y, yok := asFloat(m["y"])
			if !xok || !yok {
				return nil, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("bad point element %v", raw)}
			}
			out = append(out, Point{X: x, Y: y})
		}
		return out, nil
	default:
		return nil, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("unsupported point form %T", v)}
	}
}

func encodeBounds(b Rect) string {
	return formatCoord(b.MinX) + "," + formatCoord(b.MinY) + "|" + formatCoord(b.MaxX) + "," + formatCoord(b.MaxY)
}

func decodeBounds(v any) (Rect, bool, error) {
	switch b := v.(type) {
	case nil:
		return Rect{}, false, nil
	case string:
		if strings.TrimSpace(b) == "" {
			return Rect{}, false, nil
		}
		corners := strings.Split(b, "|")
		if len(corners) != 2 {
			return Rect{}, false, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("bad bounds %q", b)}
		}
		minX, minY, err := parsePair(corners[0])
		if err != nil {
			return Rect{}, false, err
		}
		maxX, maxY, err := parsePair(corners[1])
		if err != nil {
			return Rect{}, false, err
		}
		return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true, nil
	case Rect:
		return b, true, nil
	case map[string]any:
		minX, ok1 := asFloat(b["min_x"])
		minY, ok2 := asFloat(b["min_y"])
		maxX, ok3 := asFloat(b["max_x"])
		maxY, ok4 := asFloat(b["max_y"])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Rect{}, false, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("bad bounds %v", b)}
		}
		return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true, nil
	default:
		return Rect{}, false, &HydrationError{Kind: KindMalformedPath, Detail: fmt.Sprintf("unsupported bounds form %T", v)}
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
