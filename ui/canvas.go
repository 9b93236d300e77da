package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// MosaicCanvas shows the display image at one unit per pixel and reports
// drag positions in display-image coordinates.
type MosaicCanvas struct {
	widget.BaseWidget
	image *canvas.Image

	OnPaint func(pt image.Point)
}

func NewMosaicCanvas(onPaint func(pt image.Point)) *MosaicCanvas {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	c := &MosaicCanvas{image: img, OnPaint: onPaint}
	c.ExtendBaseWidget(c)
	return c
}

// SetImage replaces the shown image and sizes the canvas to match it.
func (c *MosaicCanvas) SetImage(img image.Image) {
	c.image.Image = img
	if img != nil {
		b := img.Bounds()
		c.image.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	}
	c.image.Refresh()
	c.Refresh()
}

func (c *MosaicCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.image)
}

func (c *MosaicCanvas) Dragged(e *fyne.DragEvent) {
	if c.OnPaint == nil {
		return
	}
	c.OnPaint(image.Pt(int(e.Position.X), int(e.Position.Y)))
}

func (c *MosaicCanvas) DragEnd() {}
