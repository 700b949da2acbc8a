package state

// Point is a single coordinate in surface space. Points are recorded in
// temporal order while a stroke is in progress and never mutated afterwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box of the pixels a path touched.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Union grows the rect to include r.
func (b Rect) Union(r Rect) Rect {
	if r.MinX < b.MinX {
		b.MinX = r.MinX
	}
	if r.MinY < b.MinY {
		b.MinY = r.MinY
	}
	if r.MaxX > b.MaxX {
		b.MaxX = r.MaxX
	}
	if r.MaxY > b.MaxY {
		b.MaxY = r.MaxY
	}
	return b
}

// Inflate expands every edge outward by d.
func (b Rect) Inflate(d float64) Rect {
	return Rect{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Path is the record of one completed stroke, the unit of undo/redo and
// of serialization. A Path is immutable once built.
type Path struct {
	ID     string  `json:"id"`
	Tool   string  `json:"tool"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	Points []Point `json:"points"`
	Bounds Rect    `json:"bounds"`
}

// NewPath builds a committed path from the accumulated stroke points.
// Bounds are computed here, inflated by half the stroke width so they
// cover every pixel the rasterizer can touch.
func NewPath(id, tool, colorName string, size float64, points []Point) Path {
	pts := make([]Point, len(points))
	copy(pts, points)
	return Path{
		ID:     id,
		Tool:   tool,
		Color:  colorName,
		Size:   size,
		Points: pts,
		Bounds: BoundsOf(pts, size),
	}
}

// BoundsOf computes the bounding box of a point sequence, padded by the
// stroke radius. A zero-length sequence yields the zero rect.
func BoundsOf(points []Point, size float64) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	b := Rect{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b = b.Union(Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}
	return b.Inflate(size / 2)
}
