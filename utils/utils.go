package utils

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for paths whose extension has no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedExtensions lists the lower-case file extensions the editor opens.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// IsSupported reports whether name carries one of SupportedExtensions,
// ignoring case.
func IsSupported(name string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(name)))
}

// ReadImage decodes the file at path and returns it as an opaque NRGBA image.
// Alpha is discarded, not composited.
func ReadImage(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	return ToOpaque(img), nil
}

// ToOpaque copies img into a new NRGBA image with every alpha set to 255.
func ToOpaque(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// SaveImage encodes img to filename, picking the format from the extension.
func SaveImage(img image.Image, filename string) error {
	if _, err := imaging.FormatFromFilename(filename); err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err := imaging.Save(img, filename, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", filename, err)
	}
	return nil
}
