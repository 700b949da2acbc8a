package export

import (
	"github.com/jung-kurt/gofpdf"

	"InkBoard/internal/raster"
	"InkBoard/internal/state"
)

// pixel-to-millimeter scale for fitting a 500-wide surface onto A4
const pxToMM = 1.0 / 3.0

// PDF writes the applied paths of a drawing to a PDF file. Eraser paths
// are rendered white, which matches what they look like on a white page.
func PDF(path string, paths []state.Path) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	for _, st := range paths {
		col := raster.ParseColor(st.Color)
		if st.Tool == "eraser" {
			col = raster.ParseColor("white")
		}
		p.SetDrawColor(int(col.R), int(col.G), int(col.B))
		p.SetFillColor(int(col.R), int(col.G), int(col.B))
		p.SetLineWidth(st.Size * pxToMM)
		p.SetLineCapStyle("round")
		for i := 1; i < len(st.Points); i++ {
			p.Line(
				st.Points[i-1].X*pxToMM, st.Points[i-1].Y*pxToMM,
				st.Points[i].X*pxToMM, st.Points[i].Y*pxToMM,
			)
		}
		if len(st.Points) == 1 {
			p.Circle(st.Points[0].X*pxToMM, st.Points[0].Y*pxToMM, st.Size*pxToMM/2, "F")
		}
	}
	return p.OutputFileAndClose(path)
}
