package freepainter

import (
	"image"
	"image/color"
	"math"

	"github.com/setanarut/freepainter/utils"
	"gonum.org/v1/gonum/stat"
)

// Painter flattens grid cells of a working image.
type Painter struct {
	BlockSize int
	Mode      FillMode
	// Palette used by FillPalette. Empty means fall back to the mean color.
	Palette utils.Palette
}

func NewPainter(blockSize int, mode FillMode) *Painter {
	return &Painter{BlockSize: ClampBlockSize(blockSize), Mode: mode}
}

// ScaleToFit returns min(1, maxW/w, maxH/h).
func ScaleToFit(w, h, maxW, maxH int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return min(1, float64(maxW)/float64(w), float64(maxH)/float64(h))
}

// ToImageSpace maps a display point back to working-image pixels,
// truncating toward zero.
func ToImageSpace(pt image.Point, scale float64) image.Point {
	if scale <= 0 {
		scale = 1
	}
	return image.Pt(int(float64(pt.X)/scale), int(float64(pt.Y)/scale))
}

// CellAt returns the unclipped grid cell of side size containing pt.
func CellAt(pt image.Point, size int) image.Rectangle {
	bx := floorDiv(pt.X, size) * size
	by := floorDiv(pt.Y, size) * size
	return image.Rect(bx, by, bx+size, by+size)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// AverageColor returns the per-channel mean of img over r, rounded to the
// nearest 8-bit value. An empty rectangle yields transparent black.
func AverageColor(img *image.NRGBA, r image.Rectangle) color.NRGBA {
	r = r.Intersect(img.Bounds())
	n := r.Dx() * r.Dy()
	if n == 0 {
		return color.NRGBA{}
	}
	chans := [3][]float64{make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			for c := range 3 {
				chans[c] = append(chans[c], float64(img.Pix[off+c]))
			}
			off += 4
		}
	}
	return color.NRGBA{
		R: uint8(math.Round(stat.Mean(chans[0], nil))),
		G: uint8(math.Round(stat.Mean(chans[1], nil))),
		B: uint8(math.Round(stat.Mean(chans[2], nil))),
		A: 0xff,
	}
}

// FillRect overwrites r ∩ bounds with c.
func FillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
			off += 4
		}
	}
}

// CellColor picks the fill color for cell r according to the painter's mode.
func (p *Painter) CellColor(img *image.NRGBA, r image.Rectangle) color.NRGBA {
	avg := AverageColor(img, r)
	switch p.Mode {
	case FillDominant:
		return utils.DominantColor(img.SubImage(r.Intersect(img.Bounds())))
	case FillPalette:
		if len(p.Palette) == 0 {
			return avg
		}
		return p.Palette.Snap(avg)
	default:
		return avg
	}
}

// Paint fills the cell containing the image-space point pt. It reports the
// painted rectangle, clipped to the image, and false when pt lies outside
// the image.
func (p *Painter) Paint(img *image.NRGBA, pt image.Point) (image.Rectangle, bool) {
	if !pt.In(img.Bounds()) {
		return image.Rectangle{}, false
	}
	cell := CellAt(pt, ClampBlockSize(p.BlockSize)).Intersect(img.Bounds())
	FillRect(img, cell, p.CellColor(img, cell))
	return cell, true
}
