package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}
	red   = colorful.Color{R: 1, G: 0, B: 0}
	blue  = colorful.Color{R: 0, G: 0, B: 1}
)

func TestPaletteNearest(t *testing.T) {
	p := Palette{black, white, red}
	tests := []struct {
		in       colorful.Color
		expected colorful.Color
	}{
		{colorful.Color{R: 0.1, G: 0.1, B: 0.1}, black},
		{colorful.Color{R: 0.95, G: 0.9, B: 0.92}, white},
		{colorful.Color{R: 0.9, G: 0.05, B: 0.1}, red},
	}
	for _, tt := range tests {
		if got := p.Nearest(tt.in); got != tt.expected {
			t.Errorf("Nearest(%v) = %v, want %v", tt.in, got, tt.expected)
		}
	}

	c := colorful.Color{R: 0.3, G: 0.4, B: 0.5}
	if got := Palette(nil).Nearest(c); got != c {
		t.Errorf("Nearest on empty palette = %v, want input", got)
	}
}

func TestPaletteSnap(t *testing.T) {
	tests := []struct {
		name     string
		p        Palette
		in       color.NRGBA
		expected color.NRGBA
	}{
		{"red", Palette{black, red}, color.NRGBA{R: 200, G: 30, B: 20, A: 255}, color.NRGBA{R: 255, A: 255}},
		{"dark", Palette{black, red}, color.NRGBA{R: 20, G: 20, B: 25, A: 255}, color.NRGBA{A: 255}},
		{"empty", nil, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Snap(tt.in); got != tt.expected {
				t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestPaletteSortByBrightness(t *testing.T) {
	p := Palette{white, black, {R: 0.5, G: 0.5, B: 0.5}}
	p.SortByBrightness()
	if p[0].R != 0 || p[1].R != 0.5 || p[2].R != 1 {
		t.Errorf("unexpected order %v", p)
	}
}

func twoTone() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := range 40 {
		for x := range 40 {
			c := color.NRGBA{R: 230, G: 230, B: 230, A: 255}
			if x < 20 {
				c = color.NRGBA{R: 20, G: 30, B: 160, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestNewPalette(t *testing.T) {
	p := NewPalette(twoTone(), 2)
	if len(p) == 0 || len(p) > 2 {
		t.Fatalf("palette size = %d, want 1..2", len(p))
	}
	for i := 1; i < len(p); i++ {
		li, _, _ := p[i-1].Lab()
		lj, _, _ := p[i].Lab()
		if li > lj {
			t.Errorf("palette not sorted dark to bright: %v", p)
		}
	}

	if p := NewPalette(twoTone(), 0); p != nil {
		t.Errorf("NewPalette with k=0 = %v, want nil", p)
	}
	if p := NewPalette(image.NewNRGBA(image.Rectangle{}), 3); p != nil {
		t.Errorf("NewPalette on empty image = %v, want nil", p)
	}
}

func TestNewPaletteTransparent(t *testing.T) {
	// Nothing to sample, so the dominantcolor fallback runs and finds
	// nothing either.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if p := NewPalette(img, 3); len(p) != 0 {
		t.Errorf("palette of a transparent image = %v, want empty", p)
	}
}

func TestDominantSwatches(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []uint8{255, 0, 0, 255})
	}
	found := dominantSwatches(img, 2)
	if len(found) != 1 {
		t.Fatalf("swatches = %v, want one", found)
	}
	if found[0].col != red || found[0].n != 1 {
		t.Errorf("swatch = %+v, want red with weight 1", found[0])
	}
}

func TestPickDiverse(t *testing.T) {
	found := []swatch{
		{red, 10},
		{red, 5},
		{colorful.Color{R: 0.98, G: 0.02, B: 0}, 8},
		{blue, 3},
	}
	tests := []struct {
		k        int
		expected Palette
	}{
		{1, Palette{red}},
		{2, Palette{red, blue}},
		{0, nil},
	}
	for _, tt := range tests {
		got := pickDiverse(found, tt.k)
		if len(got) != len(tt.expected) {
			t.Errorf("pickDiverse(k=%d) = %v, want %v", tt.k, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("pickDiverse(k=%d)[%d] = %v, want %v", tt.k, i, got[i], tt.expected[i])
			}
		}
	}

	dupes := []swatch{{red, 4}, {red, 2}}
	if got := pickDiverse(dupes, 3); len(got) != 1 {
		t.Errorf("pickDiverse kept repeated colors: %v", got)
	}
}

func TestSampleObservations(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 200))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 255
	}
	if got := len(sampleObservations(img, 1000)); got == 0 || got > 1000 {
		t.Errorf("samples = %d, want 1..1000", got)
	}
	if got := len(sampleObservations(img, 1<<20)); got != 300*200 {
		t.Errorf("samples = %d, want every pixel", got)
	}
}

func TestDominantColorOpaque(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []uint8{40, 120, 90, 255})
	}
	if got := DominantColor(img); got != (color.NRGBA{R: 40, G: 120, B: 90, A: 255}) {
		t.Errorf("DominantColor = %v", got)
	}
}
