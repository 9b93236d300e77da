package freepainter

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/setanarut/freepainter/utils"
)

// State of an editing session.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// Session is the editor over one folder: the navigator, the working image at
// the cursor, its scaled display copy and the dirty flag.
type Session struct {
	opt     Options
	nav     *Navigator
	painter *Painter

	working *image.NRGBA
	display *image.NRGBA
	// Fixed for the lifetime of a loaded image.
	scale float64
	dirty bool
	state State
}

// NewSession opens the folder containing start and loads start itself.
func NewSession(start string, opt Options) (*Session, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	set, err := LoadFolder(start)
	if err != nil {
		return nil, err
	}
	idx, err := set.Locate(start)
	if err != nil {
		return nil, err
	}
	s := &Session{
		opt:     opt,
		nav:     NewNavigator(set, idx),
		painter: NewPainter(opt.BlockSize, opt.FillMode),
	}
	slog.Info("Folder loaded", "images", set.Len(), "start", set[idx])
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load decodes the image at the cursor and resets the per-image state.
func (s *Session) Load() error {
	path := s.nav.Path()
	img, err := utils.ReadImage(path)
	if err != nil {
		return err
	}
	b := img.Bounds()
	s.working = img
	s.scale = ScaleToFit(b.Dx(), b.Dy(), s.opt.MaxWidth, s.opt.MaxHeight)
	s.painter.Palette = nil
	if s.painter.Mode == FillPalette {
		s.painter.Palette = utils.NewPalette(img, s.opt.PaletteSize)
	}
	s.render()
	s.dirty = false
	s.state = StateEditing
	slog.Debug("Image loaded", "path", path, "width", b.Dx(), "height", b.Dy(), "scale", s.scale)
	return nil
}

func (s *Session) render() {
	if s.scale >= 1 {
		s.display = imaging.Clone(s.working)
		return
	}
	b := s.working.Bounds()
	w := max(1, int(float64(b.Dx())*s.scale))
	h := max(1, int(float64(b.Dy())*s.scale))
	s.display = imaging.Resize(s.working, w, h, imaging.Lanczos)
}

// Paint applies the mosaic at a display-space point. It reports whether
// anything was painted.
func (s *Session) Paint(pt image.Point) bool {
	if s.state != StateEditing {
		return false
	}
	cell, ok := s.painter.Paint(s.working, ToImageSpace(pt, s.scale))
	if !ok {
		return false
	}
	s.dirty = true
	s.render()
	slog.Debug("Cell painted", "cell", cell, "block", s.painter.BlockSize)
	return true
}

// PersistIfDirty writes the working image over its source file when it has
// unsaved edits. It reports whether a write happened.
func (s *Session) PersistIfDirty() (bool, error) {
	if !s.dirty {
		return false, nil
	}
	path := s.nav.Path()
	if err := utils.SaveImage(s.working, path); err != nil {
		return false, err
	}
	s.dirty = false
	slog.Info("Image saved", "path", path)
	return true, nil
}

// Next persists edits and moves to the following readable image. Files that
// fail to decode are logged and skipped. Running past the last image ends the
// session without loading anything.
func (s *Session) Next() error {
	if s.state == StateDone {
		return nil
	}
	if _, err := s.PersistIfDirty(); err != nil {
		return err
	}
	for s.nav.Advance() {
		if err := s.Load(); err != nil {
			slog.Warn("Skipping unreadable image", "path", s.nav.Path(), "err", err)
			continue
		}
		return nil
	}
	s.state = StateDone
	slog.Info("Reached end of folder")
	return nil
}

// Back persists edits and moves to the previous readable image, staying on
// the first. When every earlier file fails to decode the cursor returns to
// where it was and an error is reported.
func (s *Session) Back() error {
	if s.state == StateDone {
		return nil
	}
	if _, err := s.PersistIfDirty(); err != nil {
		return err
	}
	prev := s.nav.Index()
	if prev == 0 {
		return s.Load()
	}
	for s.nav.Index() > 0 {
		s.nav.Retreat()
		if err := s.Load(); err != nil {
			slog.Warn("Skipping unreadable image", "path", s.nav.Path(), "err", err)
			continue
		}
		return nil
	}
	s.nav.index = prev
	return fmt.Errorf("%w before %s", ErrNoReadable, filepath.Base(s.nav.Path()))
}

// Quit ends the session. Unsaved edits are discarded.
func (s *Session) Quit() {
	if s.dirty {
		slog.Warn("Discarding unsaved edits", "path", s.nav.Path())
	}
	s.state = StateDone
}

func (s *Session) SetBlockSize(n int) {
	s.painter.BlockSize = ClampBlockSize(n)
}

func (s *Session) BlockSize() int { return s.painter.BlockSize }
func (s *Session) FillMode() FillMode { return s.painter.Mode }
func (s *Session) Working() *image.NRGBA { return s.working }
func (s *Session) Display() *image.NRGBA { return s.display }
func (s *Session) Scale() float64 { return s.scale }
func (s *Session) Dirty() bool { return s.dirty }
func (s *Session) State() State { return s.state }
func (s *Session) Path() string { return s.nav.Path() }
func (s *Session) Index() int { return s.nav.Index() }
func (s *Session) Len() int { return s.nav.Len() }
func (s *Session) Options() Options { return s.opt }
func (s *Session) String() string { return fmt.Sprintf("%d/%d", s.nav.Index()+1, s.nav.Len()) }
