package freepainter

import "testing"

func TestClampBlockSize(t *testing.T) {
	tests := []struct {
		in, expected int
	}{
		{10, 10},
		{5, 5},
		{100, 100},
		{0, 5},
		{-20, 5},
		{3, 5},
		{12, 10},
		{13, 15},
		{97, 95},
		{98, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := ClampBlockSize(tt.in); got != tt.expected {
			t.Errorf("ClampBlockSize(%d) = %d, want %d", tt.in, got, tt.expected)
		}
	}
}

func TestParseFillMode(t *testing.T) {
	tests := []struct {
		in       string
		expected FillMode
		wantErr  bool
	}{
		{"", FillAverage, false},
		{"average", FillAverage, false},
		{" Dominant ", FillDominant, false},
		{"PALETTE", FillPalette, false},
		{"blur", FillAverage, true},
	}
	for _, tt := range tests {
		got, err := ParseFillMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFillMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFillMode(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}

	for _, m := range []FillMode{FillAverage, FillDominant, FillPalette} {
		if got, _ := ParseFillMode(m.String()); got != m {
			t.Errorf("round trip of %v gave %v", m, got)
		}
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("FREEPAINTER_MAX_WIDTH", "640")
	t.Setenv("FREEPAINTER_BLOCK_SIZE", "25")
	t.Setenv("FREEPAINTER_MODE", "palette")

	opt, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("OptionsFromEnv: %v", err)
	}
	if opt.MaxWidth != 640 {
		t.Errorf("MaxWidth = %d, want 640", opt.MaxWidth)
	}
	if opt.MaxHeight != DefaultOptions().MaxHeight {
		t.Errorf("MaxHeight = %d, want default", opt.MaxHeight)
	}
	if opt.BlockSize != 25 {
		t.Errorf("BlockSize = %d, want 25", opt.BlockSize)
	}
	if opt.FillMode != FillPalette {
		t.Errorf("FillMode = %v, want palette", opt.FillMode)
	}
}

func TestOptionsFromEnvInvalid(t *testing.T) {
	t.Setenv("FREEPAINTER_MAX_HEIGHT", "tall")
	if _, err := OptionsFromEnv(); err == nil {
		t.Error("expected error for non-numeric FREEPAINTER_MAX_HEIGHT")
	}
}

func TestOptionsValidate(t *testing.T) {
	opt := DefaultOptions()
	opt.BlockSize = 42
	opt.PaletteSize = 0
	if err := opt.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if opt.BlockSize != 40 {
		t.Errorf("BlockSize = %d, want 40", opt.BlockSize)
	}
	if opt.PaletteSize != 1 {
		t.Errorf("PaletteSize = %d, want 1", opt.PaletteSize)
	}

	opt.MaxWidth = 0
	if err := opt.Validate(); err == nil {
		t.Error("expected error for zero MaxWidth")
	}
}
