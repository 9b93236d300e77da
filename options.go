package freepainter

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	MinBlockSize  = 5
	MaxBlockSize  = 100
	BlockSizeStep = 5
)

// FillMode selects the color a painted cell is flattened to.
type FillMode int

const (
	// FillAverage uses the mean color of the cell.
	FillAverage FillMode = iota
	// FillDominant uses the most prominent color of the cell.
	FillDominant
	// FillPalette snaps the mean color to the image's extracted palette.
	FillPalette
)

func (m FillMode) String() string {
	switch m {
	case FillDominant:
		return "dominant"
	case FillPalette:
		return "palette"
	default:
		return "average"
	}
}

// ParseFillMode is the inverse of FillMode.String.
func ParseFillMode(s string) (FillMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average", "avg", "mean":
		return FillAverage, nil
	case "dominant":
		return FillDominant, nil
	case "palette":
		return FillPalette, nil
	}
	return FillAverage, fmt.Errorf("unknown fill mode %q", s)
}

type Options struct {
	// Display bounds. Images larger than this are shown downscaled;
	// smaller ones are never upscaled.
	MaxWidth  int
	MaxHeight int
	// Side of a mosaic cell in image pixels. Snapped to BlockSizeStep
	// within [MinBlockSize, MaxBlockSize].
	BlockSize int
	FillMode  FillMode
	// Number of colors extracted per image for FillPalette.
	PaletteSize int
}

func DefaultOptions() Options {
	return Options{
		MaxWidth:    1000,
		MaxHeight:   800,
		BlockSize:   10,
		FillMode:    FillAverage,
		PaletteSize: 8,
	}
}

// OptionsFromEnv overlays FREEPAINTER_* environment variables on DefaultOptions.
func OptionsFromEnv() (Options, error) {
	opt := DefaultOptions()
	ints := []struct {
		key string
		dst *int
	}{
		{"FREEPAINTER_MAX_WIDTH", &opt.MaxWidth},
		{"FREEPAINTER_MAX_HEIGHT", &opt.MaxHeight},
		{"FREEPAINTER_BLOCK_SIZE", &opt.BlockSize},
		{"FREEPAINTER_PALETTE_SIZE", &opt.PaletteSize},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opt, fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v, ok := os.LookupEnv("FREEPAINTER_MODE"); ok {
		m, err := ParseFillMode(v)
		if err != nil {
			return opt, fmt.Errorf("invalid FREEPAINTER_MODE: %w", err)
		}
		opt.FillMode = m
	}
	return opt, nil
}

// Validate normalizes the block size and rejects unusable display bounds.
func (o *Options) Validate() error {
	if o.MaxWidth <= 0 || o.MaxHeight <= 0 {
		return fmt.Errorf("display bounds must be positive, got %dx%d", o.MaxWidth, o.MaxHeight)
	}
	o.BlockSize = ClampBlockSize(o.BlockSize)
	o.PaletteSize = max(1, o.PaletteSize)
	return nil
}

// ClampBlockSize snaps n to the nearest multiple of BlockSizeStep inside
// [MinBlockSize, MaxBlockSize].
func ClampBlockSize(n int) int {
	n = (n + BlockSizeStep/2) / BlockSizeStep * BlockSizeStep
	return max(MinBlockSize, min(MaxBlockSize, n))
}
