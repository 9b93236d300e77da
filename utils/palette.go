package utils

import (
	"cmp"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// paletteSamples caps the pixels handed to k-means.
const paletteSamples = 12000

// Palette is a set of colors that mosaic cells are snapped to.
type Palette []colorful.Color

// Nearest returns the entry closest to c in CIE Lab, or c itself when the
// palette is empty.
func (p Palette) Nearest(c colorful.Color) colorful.Color {
	best, bestDist := c, math.Inf(1)
	for _, e := range p {
		if d := c.DistanceLab(e); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// Snap maps c onto the palette.
func (p Palette) Snap(c color.Color) color.NRGBA {
	col, _ := colorful.MakeColor(c)
	return opaque(p.Nearest(col))
}

// SortByBrightness orders the palette dark to bright by Lab lightness.
func (p Palette) SortByBrightness() {
	slices.SortStableFunc(p, func(a, b colorful.Color) int {
		la, _, _ := a.Lab()
		lb, _, _ := b.Lab()
		return cmp.Compare(la, lb)
	})
}

// NewPalette reduces img to at most k colors, ordered dark to bright.
// Images k-means cannot partition fall back to dominantcolor.
func NewPalette(img image.Image, k int) Palette {
	if k <= 0 || img.Bounds().Empty() {
		return nil
	}
	found := kmeansSwatches(img, k)
	if len(found) == 0 {
		slog.Debug("k-means found no clusters, using dominant colors")
		found = dominantSwatches(img, k)
	}
	p := pickDiverse(found, k)
	p.SortByBrightness()
	return p
}

// DominantColor returns the most common color of img.
func DominantColor(img image.Image) color.NRGBA {
	c := dominantcolor.Find(img)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

type swatch struct {
	col colorful.Color
	n   float64
}

func kmeansSwatches(img image.Image, k int) []swatch {
	obs := sampleObservations(img, paletteSamples)
	if len(obs) == 0 {
		return nil
	}
	cc, err := kmeans.New().Partition(obs, min(k*4, len(obs)))
	if err != nil {
		slog.Debug("k-means failed", "error", err)
		return nil
	}
	out := make([]swatch, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		out = append(out, swatch{col: col.Clamped(), n: float64(len(c.Observations))})
	}
	return out
}

func dominantSwatches(img image.Image, k int) []swatch {
	found := dominantcolor.FindWeight(img, k*3)
	out := make([]swatch, 0, len(found))
	for _, f := range found {
		col, _ := colorful.MakeColor(f.RGBA)
		out = append(out, swatch{col: col, n: f.Weight})
	}
	return out
}

// sampleObservations walks img on a grid coarse enough to yield at most
// limit opaque pixels, as RGB coordinates in [0,1].
func sampleObservations(img image.Image, limit int) clusters.Observations {
	b := img.Bounds()
	stride := 1
	for ceilDiv(b.Dx(), stride)*ceilDiv(b.Dy(), stride) > limit {
		stride++
	}
	obs := make(clusters.Observations, 0, ceilDiv(b.Dx(), stride)*ceilDiv(b.Dy(), stride))
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			col, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			obs = append(obs, clusters.Coordinates{col.R, col.G, col.B})
		}
	}
	return obs
}

// pickDiverse keeps the heaviest swatch, then repeatedly adds the one
// farthest in Lab from everything kept, weighted toward common colors.
// Swatches that repeat a kept color are never picked.
func pickDiverse(found []swatch, k int) Palette {
	if k <= 0 || len(found) == 0 {
		return nil
	}
	heaviest := slices.MaxFunc(found, func(a, b swatch) int { return cmp.Compare(a.n, b.n) })
	p := Palette{heaviest.col}
	for len(p) < k {
		best, bestScore := -1, 0.0
		for i, s := range found {
			d := s.col.DistanceLab(p.Nearest(s.col))
			if d < 1e-3 {
				continue
			}
			share := 1.0
			if heaviest.n > 0 {
				share = s.n / heaviest.n
			}
			if score := d * (0.5 + 0.5*share); score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		p = append(p, found[best].col)
	}
	return p
}

func opaque(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
