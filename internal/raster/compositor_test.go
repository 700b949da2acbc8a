package raster

import (
	"bytes"
	"image"
	"testing"

	"InkBoard/internal/state"
)

func line(x1, y1, x2, y2 float64) []state.Point {
	return []state.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}
}

func commitStroke(c *Compositor, mode Mode, pts []state.Point, colorName string, size float64) {
	c.StrokePath(pts, colorName, size)
	c.Merge(mode, state.BoundsOf(pts, size))
}

func TestStrokeMergePaintsCommitted(t *testing.T) {
	c := New(100, 100)
	commitStroke(c, ModeSourceOver, line(10, 10, 20, 20), "black", 4)

	if _, _, _, a := c.PixelAt(15, 15); a == 0 {
		t.Fatal("pixel on the stroke is still transparent after merge")
	}
	if _, _, _, a := c.PixelAt(80, 80); a != 0 {
		t.Errorf("pixel far from the stroke was painted, alpha = %d", a)
	}
}

func TestScratchIsNotCommittedUntilMerge(t *testing.T) {
	c := New(100, 100)
	c.StrokePath(line(10, 10, 20, 20), "black", 4)

	if _, _, _, a := c.PixelAt(15, 15); a != 0 {
		t.Fatal("scratch content leaked into the committed surface")
	}
	c.Merge(ModeSourceOver, state.BoundsOf(line(10, 10, 20, 20), 4))
	if _, _, _, a := c.PixelAt(15, 15); a == 0 {
		t.Fatal("stroke missing from committed surface after merge")
	}
}

func TestDestinationOutErases(t *testing.T) {
	c := New(100, 100)
	commitStroke(c, ModeSourceOver, line(10, 15, 30, 15), "black", 6)
	if _, _, _, a := c.PixelAt(20, 15); a == 0 {
		t.Fatal("setup failed, stroke not committed")
	}

	commitStroke(c, ModeDestinationOut, line(10, 15, 30, 15), "white", 12)
	if _, _, _, a := c.PixelAt(20, 15); a != 0 {
		t.Errorf("erased pixel still has alpha %d", a)
	}
}

func TestEraseThenDrawComposites(t *testing.T) {
	// Erasing must subtract from real content; drawing over the erased
	// region afterwards must show the new stroke.
	c := New(100, 100)
	commitStroke(c, ModeSourceOver, line(10, 15, 30, 15), "black", 6)
	commitStroke(c, ModeDestinationOut, line(10, 15, 30, 15), "white", 12)
	commitStroke(c, ModeSourceOver, line(10, 15, 30, 15), "red", 6)

	r, _, _, a := c.PixelAt(20, 15)
	if a == 0 {
		t.Fatal("stroke drawn after erase is invisible")
	}
	if r == 0 {
		t.Errorf("expected red stroke after erase-then-draw, got r = 0 at alpha %d", a)
	}
}

func TestPreviewSeedsErasureFromCommitted(t *testing.T) {
	c := New(100, 100)
	commitStroke(c, ModeSourceOver, line(10, 15, 30, 15), "black", 6)

	// An in-progress eraser stroke sits on scratch only.
	c.StrokePath(line(10, 15, 30, 15), "white", 12)

	preview := c.Preview(ModeDestinationOut)
	if a := preview.RGBAAt(20, 15).A; a != 0 {
		t.Errorf("erase preview should subtract committed content, alpha = %d", a)
	}
	// The committed surface itself is untouched until merge.
	if _, _, _, a := c.PixelAt(20, 15); a == 0 {
		t.Fatal("preview must not mutate the committed surface")
	}
}

func TestBatchMatchesIncremental(t *testing.T) {
	pts := []state.Point{{X: 10, Y: 10}, {X: 25, Y: 18}, {X: 40, Y: 12}}

	inc := New(100, 100)
	inc.StrokeSegment(pts[0], pts[1], "black", 4)
	inc.StrokeSegment(pts[1], pts[2], "black", 4)
	inc.Merge(ModeSourceOver, state.BoundsOf(pts, 4))

	batch := New(100, 100)
	commitStroke(batch, ModeSourceOver, pts, "black", 4)

	if !bytes.Equal(inc.Committed().Pix, batch.Committed().Pix) {
		t.Error("incremental and batch rasterization produced different pixels")
	}
}

func TestSinglePointStrokeDrawsDot(t *testing.T) {
	c := New(100, 100)
	commitStroke(c, ModeSourceOver, []state.Point{{X: 50, Y: 50}}, "black", 6)
	if _, _, _, a := c.PixelAt(50, 50); a == 0 {
		t.Error("single-point stroke left no mark")
	}
}

func TestClearScratch(t *testing.T) {
	c := New(100, 100)
	c.StrokePath(line(10, 10, 20, 20), "black", 4)
	c.ClearScratch()
	c.Merge(ModeSourceOver, state.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	if _, _, _, a := c.PixelAt(15, 15); a != 0 {
		t.Error("ClearScratch left stroke pixels behind")
	}
}

func TestClearScratchRegion(t *testing.T) {
	c := New(100, 100)
	c.StrokePath(line(10, 15, 60, 15), "black", 4)
	c.ClearScratch(image.Rect(0, 0, 30, 100))
	c.Merge(ModeSourceOver, state.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})

	if _, _, _, a := c.PixelAt(20, 15); a != 0 {
		t.Error("cleared region still has stroke pixels")
	}
	if _, _, _, a := c.PixelAt(50, 15); a == 0 {
		t.Error("region outside the clear lost its stroke pixels")
	}
}

func TestResizeClearsSurfaces(t *testing.T) {
	c := New(100, 100)
	commitStroke(c, ModeSourceOver, line(10, 10, 20, 20), "black", 4)
	c.Resize(200, 150)

	w, h := c.Size()
	if w != 200 || h != 150 {
		t.Fatalf("Size = %dx%d, want 200x150", w, h)
	}
	if _, _, _, a := c.PixelAt(15, 15); a != 0 {
		t.Error("resize kept old committed content")
	}
}

func TestExportBitmapRoundTrip(t *testing.T) {
	c := New(60, 40)
	commitStroke(c, ModeSourceOver, line(10, 10, 20, 20), "black", 4)

	encoded, err := c.ExportBitmap()
	if err != nil {
		t.Fatalf("ExportBitmap: %v", err)
	}
	img, err := DecodeBitmap(encoded)
	if err != nil {
		t.Fatalf("DecodeBitmap: %v", err)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 40 {
		t.Errorf("decoded size = %v, want 60x40", img.Bounds())
	}
	if _, _, _, a := img.At(15, 15).RGBA(); a == 0 {
		t.Error("stroke missing from exported bitmap")
	}
}

func TestDecodeBitmapGarbage(t *testing.T) {
	if _, err := DecodeBitmap("definitely not an image"); err == nil {
		t.Error("expected decode error for garbage input")
	}
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder()
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("placeholder bounds = %v, want 1x1", img.Bounds())
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("placeholder must be transparent")
	}
}
