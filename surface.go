package main

import (
	"errors"
	"image"
	"image/draw"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode"
)

// fitKey is the key that fits the document to the window, with or
// without shift.
const fitKey = 'f'

// Host is the window system side of a Surface.
type Host interface {
	// Size returns the current size of the visible area.
	Size() image.Point
	// Alert shows a modal message to the user.
	Alert(title, body string)
	// ArmTimer starts the redraw timer. When it expires the host
	// dispatches TimerFired to the surface.
	ArmTimer(d time.Duration)
	// Repaint asks the host to paint the surface now.
	Repaint()
}

// Surface displays one SVG document with pan and zoom.
// It is not safe for concurrent use; all events must be dispatched
// from the same goroutine.
type Surface struct {
	host   Host
	path   string    // absolute path of the document, empty if none
	doc    *Document // nil when there is nothing to render
	xf     Transform
	redraw *Redraw
}

// NewSurface returns a Surface for the SVG file at path. If the file does
// not exist it alerts the user and returns a surface that paints nothing.
func NewSurface(path string, host Host) *Surface {
	s := &Surface{
		host:   host,
		xf:     Identity(),
		redraw: NewRedraw(host.ArmTimer),
	}

	abs, err := filepath.Abs(path)
	if err == nil {
		_, err = os.Stat(abs)
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("surface: %v", err)
		}
		host.Alert("Error", "SVG file not found!")
		return s
	}

	s.path = abs
	s.load()
	return s
}

// Path returns the absolute path of the document, or "" if the
// surface was created for a missing file.
func (s *Surface) Path() string {
	return s.path
}

// Document returns the current document, or nil.
func (s *Surface) Document() *Document {
	return s.doc
}

// Transform returns the current view transform.
func (s *Surface) Transform() Transform {
	return s.xf
}

// Dispatch handles an input event.
func (s *Surface) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case Wheel:
		s.xf = s.xf.Pan(ev.Delta)
		s.redraw.Schedule()
	case Pinch:
		if ev.Phase != PinchUpdated {
			return
		}
		if xf, ok := s.xf.Zoom(ev.Factor, midpoint(s.host.Size())); ok {
			s.xf = xf
			s.redraw.Schedule()
		}
	case KeyPress:
		if unicode.ToLower(ev.Key) != fitKey || s.doc == nil {
			return
		}
		w, h := s.doc.Size()
		s.xf = Fit(s.host.Size(), w, h)
		s.redraw.Schedule()
	case FileChanged:
		if s.path == "" || ev.Path != s.path {
			return
		}
		s.load()
	case TimerFired:
		if s.redraw.Fire() {
			s.host.Repaint()
		}
	}
}

// Paint renders the document on dst. dst should be the size of the
// visible area with its origin at the top left corner.
func (s *Surface) Paint(dst draw.Image) {
	if s.doc == nil {
		return
	}
	s.doc.Render(dst, s.xf)
}

// load replaces the document with a fresh copy from disk. On failure
// the surface is left without a document.
func (s *Surface) load() {
	if *verbose {
		defer func(start time.Time) {
			log.Printf("surface: load %s time %v", s.path, time.Since(start))
		}(time.Now())
	}
	s.doc = nil
	doc, err := LoadDocument(s.path)
	if err != nil {
		log.Printf("surface: %v", err)
	} else {
		s.doc = doc
	}
	s.redraw.Schedule()
}
