// Package ui is the Fyne desktop shell around a freepainter.Session.
package ui

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/setanarut/freepainter"
	"github.com/setanarut/freepainter/utils"
)

const (
	appID       = "com.github.setanarut.freepainter"
	windowTitle = "Mosaic Drawer"
)

// ErrNoSelection is returned when the start dialog is dismissed.
var ErrNoSelection = errors.New("no image selected")

// Editor binds one session to its window widgets.
type Editor struct {
	app     fyne.App
	win     fyne.Window
	session *freepainter.Session

	canvas   *MosaicCanvas
	slider   *widget.Slider
	strength *widget.Label
	status   *widget.Label
	backBtn  *widget.Button
	nextBtn  *widget.Button
	quitBtn  *widget.Button
}

// Run opens the editor on start, or asks for a file first when start is
// empty, and blocks until the window closes.
func Run(start string, opt freepainter.Options) error {
	var session *freepainter.Session
	if start != "" {
		s, err := freepainter.NewSession(start, opt)
		if err != nil {
			return err
		}
		session = s
	}

	a := app.NewWithID(appID)
	w := a.NewWindow(windowTitle)

	if session != nil {
		NewEditor(a, w, session).Show()
		w.ShowAndRun()
		return nil
	}

	l := &launcher{app: a, win: w, opt: opt}
	l.prompt()
	w.ShowAndRun()
	return l.err
}

// launcher asks for the starting image before any session exists.
type launcher struct {
	app    fyne.App
	win    fyne.Window
	opt    freepainter.Options
	editor *Editor
	err    error
}

func (l *launcher) prompt() {
	// Closing the window before a file is picked counts as a cancel.
	l.win.SetCloseIntercept(l.cancel)
	fd := dialog.NewFileOpen(l.chosen, l.win)
	fd.SetFilter(storage.NewExtensionFileFilter(dialogExtensions()))
	l.win.Resize(fyne.NewSize(800, 600))
	fd.Resize(fyne.NewSize(780, 580))
	fd.Show()
}

func (l *launcher) cancel() {
	l.err = ErrNoSelection
	l.app.Quit()
}

func (l *launcher) chosen(r fyne.URIReadCloser, err error) {
	if err != nil || r == nil {
		l.err = errors.Join(ErrNoSelection, err)
		l.app.Quit()
		return
	}
	path := r.URI().Path()
	_ = r.Close()
	l.open(path)
}

func (l *launcher) open(path string) {
	s, err := freepainter.NewSession(path, l.opt)
	if err != nil {
		slog.Error("Unable to start session", "path", path, "err", err)
		l.err = err
		l.app.Quit()
		return
	}
	l.editor = NewEditor(l.app, l.win, s)
	l.editor.Show()
}

func dialogExtensions() []string {
	exts := make([]string, 0, 2*len(utils.SupportedExtensions))
	for _, e := range utils.SupportedExtensions {
		exts = append(exts, e, strings.ToUpper(e))
	}
	return exts
}

func NewEditor(a fyne.App, w fyne.Window, s *freepainter.Session) *Editor {
	e := &Editor{app: a, win: w, session: s}
	e.canvas = NewMosaicCanvas(e.paint)

	e.strength = widget.NewLabel("")
	e.slider = widget.NewSlider(freepainter.MinBlockSize, freepainter.MaxBlockSize)
	e.slider.Step = freepainter.BlockSizeStep
	e.slider.SetValue(float64(s.BlockSize()))
	e.slider.OnChanged = func(v float64) {
		e.session.SetBlockSize(int(v))
		e.strength.SetText(fmt.Sprint(e.session.BlockSize()))
	}
	e.strength.SetText(fmt.Sprint(s.BlockSize()))

	e.backBtn = widget.NewButton("← Back", e.back)
	e.nextBtn = widget.NewButton("Save & Next →", e.next)
	e.quitBtn = widget.NewButton("Quit", e.quit)
	e.status = widget.NewLabel("")
	return e
}

// Content lays out the canvas above the strength slider and buttons.
func (e *Editor) Content() fyne.CanvasObject {
	sliderBox := container.NewGridWrap(fyne.NewSize(220, e.slider.MinSize().Height), e.slider)
	strength := container.NewCenter(container.NewHBox(
		widget.NewLabel("Mosaic Strength:"), sliderBox, e.strength,
	))
	buttons := container.NewCenter(container.NewHBox(e.backBtn, e.nextBtn, e.quitBtn))
	controls := container.NewVBox(strength, buttons, container.NewCenter(e.status))
	return container.NewBorder(nil, controls, nil, nil, container.NewCenter(e.canvas))
}

// Show installs the editor in its window and draws the current image.
func (e *Editor) Show() {
	e.win.SetContent(e.Content())
	e.win.SetCloseIntercept(e.quit)
	e.reload()
}

func (e *Editor) paint(pt image.Point) {
	if !e.session.Paint(pt) {
		return
	}
	e.canvas.SetImage(e.session.Display())
	e.updateTitle()
}

func (e *Editor) next() {
	if err := e.session.Next(); err != nil {
		e.showError(err)
		return
	}
	if e.session.State() == freepainter.StateDone {
		e.app.Quit()
		return
	}
	e.reload()
}

func (e *Editor) back() {
	if err := e.session.Back(); err != nil {
		e.showError(err)
		return
	}
	e.reload()
}

func (e *Editor) quit() {
	e.session.Quit()
	e.app.Quit()
}

func (e *Editor) reload() {
	e.canvas.SetImage(e.session.Display())
	e.updateTitle()
	e.win.Resize(e.win.Content().MinSize())
}

func (e *Editor) updateTitle() {
	name := filepath.Base(e.session.Path())
	mark := ""
	if e.session.Dirty() {
		mark = " *"
	}
	e.win.SetTitle(fmt.Sprintf("%s - %s%s (%s)", windowTitle, name, mark, e.session))
	b := e.session.Working().Bounds()
	e.status.SetText(fmt.Sprintf("%s  %dx%d  %.0f%%  %s", name, b.Dx(), b.Dy(), e.session.Scale()*100, e.session.FillMode()))
}

func (e *Editor) showError(err error) {
	slog.Error("Editor action failed", "path", e.session.Path(), "err", err)
	dialog.ShowError(err, e.win)
}
