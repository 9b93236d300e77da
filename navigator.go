package freepainter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/setanarut/freepainter/utils"
)

var (
	ErrNoImages   = errors.New("no supported images in folder")
	ErrNotInSet   = errors.New("image not found in folder")
	ErrNoReadable = errors.New("no readable image")
)

// ImageSet is a sorted list of absolute image paths from one folder.
type ImageSet []string

// LoadFolder lists the supported images that live next to path.
func LoadFolder(path string) (ImageSet, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	var set ImageSet
	for _, e := range entries {
		if e.IsDir() || !utils.IsSupported(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if e.Type()&fs.ModeSymlink != 0 {
			// Follow links; dangling ones and links to folders are skipped.
			if fi, err := os.Stat(p); err != nil || fi.IsDir() {
				continue
			}
		}
		set = append(set, p)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoImages, dir)
	}
	slices.Sort(set)
	return slices.Compact(set), nil
}

func (s ImageSet) Len() int { return len(s) }

// Locate returns the index of the entry whose file name matches path.
func (s ImageSet) Locate(path string) (int, error) {
	name := filepath.Base(path)
	for i, p := range s {
		if filepath.Base(p) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrNotInSet, name)
}

// Navigator is a cursor over an ImageSet.
type Navigator struct {
	set   ImageSet
	index int
}

func NewNavigator(set ImageSet, index int) *Navigator {
	return &Navigator{set: set, index: max(0, min(index, len(set)-1))}
}

func (n *Navigator) Index() int { return n.index }
func (n *Navigator) Len() int { return len(n.set) }

// Path returns the file at the cursor, or "" once the cursor ran past the end.
func (n *Navigator) Path() string {
	if n.index < 0 || n.index >= len(n.set) {
		return ""
	}
	return n.set[n.index]
}

// Advance moves to the next image. It reports false when there is none; the
// cursor is then left past the end.
func (n *Navigator) Advance() bool {
	if n.index < len(n.set) {
		n.index++
	}
	return n.index < len(n.set)
}

// Retreat moves to the previous image, stopping at the first.
func (n *Navigator) Retreat() {
	n.index = max(0, n.index-1)
}
