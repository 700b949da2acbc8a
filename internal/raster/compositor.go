package raster

import (
	"image"
	"image/draw"
	"log"
	"sync"

	"github.com/gogpu/gg"

	"InkBoard/internal/state"
)

// Mode is the pixel-blend rule used when a stroke is merged into the
// committed surface.
type Mode string

const (
	// ModeSourceOver paints stroke pixels over committed content.
	ModeSourceOver Mode = "source-over"
	// ModeDestinationOut subtracts stroke alpha from committed content.
	ModeDestinationOut Mode = "destination-out"
)

// Compositor owns the two stacked raster surfaces: the committed bitmap
// (the authoritative drawing) and the scratch buffer holding whatever
// stroke is currently in progress or being replayed. Strokes are
// rasterized segment-by-segment with round caps and joins, so replaying
// a whole point list in one batch produces the same pixels as the
// incremental pointer-move path did.
//
// Erase previews are composed by seeding a copy of the committed pixels
// and subtracting the scratch alpha from it; clearing a scratch region
// recomposes the same way, so a cleared-then-redrawn region always
// previews against real content rather than a blank buffer.
type Compositor struct {
	mu        sync.RWMutex
	width     int
	height    int
	committed *image.RGBA
	scratch   *image.RGBA
}

// New creates a compositor with two transparent surfaces of the given size.
func New(width, height int) *Compositor {
	return &Compositor{
		width:     width,
		height:    height,
		committed: image.NewRGBA(image.Rect(0, 0, width, height)),
		scratch:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Size returns the surface dimensions.
func (c *Compositor) Size() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// Resize replaces both surfaces with fresh ones of the new size. Contents
// are cleared, matching the host-resize contract.
func (c *Compositor) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width == c.width && height == c.height {
		return
	}
	log.Printf("[Compositor] Resizing surfaces to %dx%d", width, height)
	c.width = width
	c.height = height
	c.committed = image.NewRGBA(image.Rect(0, 0, width, height))
	c.scratch = image.NewRGBA(image.Rect(0, 0, width, height))
}

// StrokeSegment rasterizes the segment a-b onto the scratch surface and
// returns the dirty region it touched. This is the delta redraw used on
// pointer-move; only the segment's own bounding box is rendered.
func (c *Compositor) StrokeSegment(a, b state.Point, colorName string, size float64) image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strokeSegmentLocked(a, b, colorName, size)
}

// StrokeDot rasterizes a single-point stroke (a click without movement)
// as a filled dot on the scratch surface.
func (c *Compositor) StrokeDot(p state.Point, colorName string, size float64) image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strokeDotLocked(p, colorName, size)
}

// StrokePath rasterizes a whole point list onto the scratch surface in
// one batch. Because the batch walks the same per-segment rasterization
// as the incremental path, the output is pixel-identical either way,
// which is what makes history replay trustworthy.
func (c *Compositor) StrokePath(points []state.Point, colorName string, size float64) image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(points) == 0 {
		return image.Rectangle{}
	}
	if len(points) == 1 {
		return c.strokeDotLocked(points[0], colorName, size)
	}
	dirty := image.Rectangle{}
	for i := 0; i < len(points)-1; i++ {
		dirty = dirty.Union(c.strokeSegmentLocked(points[i], points[i+1], colorName, size))
	}
	return dirty
}

// Merge composites the scratch-rendered stroke into the committed surface
// using the given mode, then clears the scratch region. Bounds come from
// the path being committed.
func (c *Compositor) Merge(mode Mode, bounds state.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Inflate matches the rasterization clip, so the anti-aliased rim of
	// the stroke merges too.
	r := c.clampRect(bounds.Inflate(1))
	if r.Empty() {
		c.clearRect(c.scratch, c.scratch.Bounds())
		return
	}
	switch mode {
	case ModeDestinationOut:
		destinationOut(c.committed, c.scratch, r)
	default:
		draw.Draw(c.committed, r, c.scratch, r.Min, draw.Over)
	}
	c.clearRect(c.scratch, r)
}

// Replay renders a committed path straight through scratch and merges it,
// used for history rebuilds, redo and deserialized drawings.
func (c *Compositor) Replay(mode Mode, points []state.Point, colorName string, size float64) {
	if len(points) == 0 {
		return
	}
	c.StrokePath(points, colorName, size)
	c.Merge(mode, state.BoundsOf(points, size))
}

// ClearScratch clears the given scratch regions, or the whole scratch
// surface when none are given.
func (c *Compositor) ClearScratch(regions ...image.Rectangle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(regions) == 0 {
		c.clearRect(c.scratch, c.scratch.Bounds())
		return
	}
	for _, r := range regions {
		c.clearRect(c.scratch, r.Intersect(c.scratch.Bounds()))
	}
}

// ClearAll wipes both surfaces.
func (c *Compositor) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearRect(c.committed, c.committed.Bounds())
	c.clearRect(c.scratch, c.scratch.Bounds())
}

// ClearCommitted wipes only the committed surface, keeping any
// in-progress scratch content. Used before a full history replay.
func (c *Compositor) ClearCommitted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearRect(c.committed, c.committed.Bounds())
}

// Preview returns a copy of the committed surface composed with the
// in-progress stroke under the given mode. For erase mode this is the
// committed-seeded subtraction described above.
func (c *Compositor) Preview(mode Mode) *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := cloneRGBA(c.committed)
	switch mode {
	case ModeDestinationOut:
		destinationOut(out, c.scratch, out.Bounds())
	default:
		draw.Draw(out, out.Bounds(), c.scratch, image.Point{}, draw.Over)
	}
	return out
}

// Committed returns a copy of the committed surface. Scratch content is
// never included.
func (c *Compositor) Committed() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneRGBA(c.committed)
}

// SetCommitted replaces the committed surface with the given image,
// scaled to the surface size. The scratch buffer is cleared.
func (c *Compositor) SetCommitted(img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearRect(c.committed, c.committed.Bounds())
	c.clearRect(c.scratch, c.scratch.Bounds())
	scaleInto(c.committed, img)
}

// PixelAt reads a committed pixel, premultiplied-alpha as stored.
func (c *Compositor) PixelAt(x, y int) (r, g, b, a uint8) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !(image.Point{X: x, Y: y}).In(c.committed.Bounds()) {
		return 0, 0, 0, 0
	}
	i := c.committed.PixOffset(x, y)
	return c.committed.Pix[i], c.committed.Pix[i+1], c.committed.Pix[i+2], c.committed.Pix[i+3]
}

func (c *Compositor) strokeSegmentLocked(a, b state.Point, colorName string, size float64) image.Rectangle {
	clip := c.clampRect(state.BoundsOf([]state.Point{a, b}, size).Inflate(1))
	if clip.Empty() {
		return image.Rectangle{}
	}
	dc := gg.NewContext(clip.Dx(), clip.Dy())
	c.applyStrokeStyle(dc, colorName, size)
	dc.MoveTo(a.X-float64(clip.Min.X), a.Y-float64(clip.Min.Y))
	dc.LineTo(b.X-float64(clip.Min.X), b.Y-float64(clip.Min.Y))
	if err := dc.Stroke(); err != nil {
		log.Printf("[Compositor] Stroke rasterization failed: %v", err)
		return image.Rectangle{}
	}
	draw.Draw(c.scratch, clip, dc.Image(), image.Point{}, draw.Over)
	return clip
}

func (c *Compositor) strokeDotLocked(p state.Point, colorName string, size float64) image.Rectangle {
	clip := c.clampRect(state.BoundsOf([]state.Point{p}, size).Inflate(1))
	if clip.Empty() {
		return image.Rectangle{}
	}
	dc := gg.NewContext(clip.Dx(), clip.Dy())
	dc.SetColor(ParseColor(colorName))
	dc.DrawCircle(p.X-float64(clip.Min.X), p.Y-float64(clip.Min.Y), size/2)
	if err := dc.Fill(); err != nil {
		log.Printf("[Compositor] Dot rasterization failed: %v", err)
		return image.Rectangle{}
	}
	draw.Draw(c.scratch, clip, dc.Image(), image.Point{}, draw.Over)
	return clip
}

func (c *Compositor) applyStrokeStyle(dc *gg.Context, colorName string, size float64) {
	dc.SetColor(ParseColor(colorName))
	dc.SetLineWidth(size)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
}

// clampRect converts path bounds to an integer rect clipped to the surface.
func (c *Compositor) clampRect(b state.Rect) image.Rectangle {
	r := image.Rect(int(b.MinX), int(b.MinY), int(b.MaxX)+1, int(b.MaxY)+1)
	return r.Intersect(image.Rect(0, 0, c.width, c.height))
}

func (c *Compositor) clearRect(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		row := img.Pix[i : i+r.Dx()*4]
		for j := range row {
			row[j] = 0
		}
	}
}

// destinationOut scales every destination channel by the inverse of the
// stroke alpha: dst = dst * (1 - srcA). With premultiplied storage this
// is a uniform multiply across all four channels.
func destinationOut(dst, src *image.RGBA, r image.Rectangle) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sa := uint32(src.Pix[si+3])
			if sa != 0 {
				inv := 255 - sa
				dst.Pix[di] = uint8(uint32(dst.Pix[di]) * inv / 255)
				dst.Pix[di+1] = uint8(uint32(dst.Pix[di+1]) * inv / 255)
				dst.Pix[di+2] = uint8(uint32(dst.Pix[di+2]) * inv / 255)
				dst.Pix[di+3] = uint8(uint32(dst.Pix[di+3]) * inv / 255)
			}
			di += 4
			si += 4
		}
	}
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}
