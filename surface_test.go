package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

// fakeHost records what a Surface asks of its window.
type fakeHost struct {
	size     image.Point
	alerts   []string
	arms     int
	repaints int
}

func (h *fakeHost) Size() image.Point        { return h.size }
func (h *fakeHost) Alert(title, body string) { h.alerts = append(h.alerts, title+": "+body) }
func (h *fakeHost) ArmTimer(time.Duration)   { h.arms++ }
func (h *fakeHost) Repaint()                 { h.repaints++ }

func newTestSurface(t *testing.T, w, h int) (*Surface, *fakeHost, string) {
	t.Helper()
	path := writeSVG(t, t.TempDir(), "doc.svg", w, h, "#ff0000")
	host := &fakeHost{size: image.Pt(800, 600)}
	s := NewSurface(path, host)
	require.NotNil(t, s.Document())
	return s, host, path
}

func TestSurfaceMissingFile(t *testing.T) {
	host := &fakeHost{size: image.Pt(800, 600)}
	s := NewSurface(filepath.Join(t.TempDir(), "missing.svg"), host)

	assert.Equal(t, []string{"Error: SVG file not found!"}, host.alerts)
	assert.Nil(t, s.Document())
	assert.Empty(t, s.Path())

	dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
	s.Paint(dst)
	assert.Equal(t, make([]uint8, len(dst.Pix)), dst.Pix)

	s.Dispatch(KeyPress{Key: fitKey})
	s.Dispatch(FileChanged{Path: "missing.svg"})
	assert.Equal(t, Identity(), s.Transform())
	assert.Len(t, host.alerts, 1)
}

func TestSurfaceInitialLoad(t *testing.T) {
	s, host, path := newTestSurface(t, 200, 100)

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, s.Path())
	assert.Equal(t, Identity(), s.Transform())
	assert.Empty(t, host.alerts)
	assert.Equal(t, 1, host.arms)

	s.Dispatch(TimerFired{})
	assert.Equal(t, 1, host.repaints)
	s.Dispatch(TimerFired{})
	assert.Equal(t, 1, host.repaints)
}

func TestSurfaceDebouncesInput(t *testing.T) {
	s, host, _ := newTestSurface(t, 200, 100)
	s.Dispatch(TimerFired{})
	host.arms, host.repaints = 0, 0

	for i := 0; i < 5; i++ {
		s.Dispatch(Wheel{Delta: image.Pt(0, 120)})
	}
	s.Dispatch(Pinch{Phase: PinchUpdated, Factor: 2})
	assert.Equal(t, 1, host.arms)

	s.Dispatch(TimerFired{})
	assert.Equal(t, 1, host.repaints)

	for i := 0; i < 3; i++ {
		s.Dispatch(Wheel{Delta: image.Pt(4, 0)})
		s.Dispatch(TimerFired{})
	}
	assert.Equal(t, 4, host.arms)
	assert.Equal(t, 4, host.repaints)
}

func TestSurfaceWheel(t *testing.T) {
	s, _, _ := newTestSurface(t, 200, 100)
	s.Dispatch(Wheel{Delta: image.Pt(0, 120)})
	s.Dispatch(Wheel{Delta: image.Pt(-120, 120)})
	assert.Equal(t, Transform{Scale: 1, Offset: f64.Vec2{-30, 60}}, s.Transform())
}

func TestSurfacePinch(t *testing.T) {
	s, host, _ := newTestSurface(t, 200, 100)
	s.Dispatch(TimerFired{})
	host.arms = 0

	s.Dispatch(Pinch{Phase: PinchStarted, Factor: 3})
	s.Dispatch(Pinch{Phase: PinchFinished, Factor: 3})
	s.Dispatch(Pinch{Phase: PinchCanceled, Factor: 3})
	assert.Equal(t, Identity(), s.Transform())
	assert.Equal(t, 0, host.arms)

	s.Dispatch(Pinch{Phase: PinchUpdated, Factor: 2})
	assert.Equal(t, Transform{Scale: 2, Offset: f64.Vec2{-400, -300}}, s.Transform())

	// the center follows the current size of the window
	host.size = image.Pt(400, 400)
	s.Dispatch(Pinch{Phase: PinchUpdated, Factor: 0.5})
	assert.Equal(t, Transform{Scale: 1, Offset: f64.Vec2{-100, -50}}, s.Transform())

	before := s.Transform()
	s.Dispatch(Pinch{Phase: PinchUpdated, Factor: 0.05})
	assert.Equal(t, before, s.Transform())
}

func TestSurfaceFitKey(t *testing.T) {
	s, _, _ := newTestSurface(t, 200, 100)

	s.Dispatch(KeyPress{Key: 'x'})
	assert.Equal(t, Identity(), s.Transform())

	s.Dispatch(KeyPress{Key: 'F'})
	assert.Equal(t, Transform{Scale: 4, Offset: f64.Vec2{0, 100}}, s.Transform())
	s.Dispatch(Wheel{Delta: image.Pt(40, 40)})

	s.Dispatch(KeyPress{Key: fitKey})
	assert.Equal(t, Transform{Scale: 4, Offset: f64.Vec2{0, 100}}, s.Transform())

	dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
	s.Paint(dst)
	assert.Equal(t, red, dst.RGBAAt(400, 300))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(400, 50))
}

func TestSurfaceReload(t *testing.T) {
	s, _, path := newTestSurface(t, 200, 100)
	s.Dispatch(Wheel{Delta: image.Pt(40, 80)})
	xf := s.Transform()

	writeSVG(t, filepath.Dir(path), filepath.Base(path), 300, 50, "#ff0000")
	s.Dispatch(FileChanged{Path: s.Path()})

	require.NotNil(t, s.Document())
	w, h := s.Document().Size()
	assert.Equal(t, [2]float64{300, 50}, [2]float64{w, h})
	assert.Equal(t, xf, s.Transform())

	// offset (10,20), document covers (10,20)-(310,70)
	dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
	s.Paint(dst)
	assert.Equal(t, red, dst.RGBAAt(300, 40))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(320, 40))
}

func TestSurfaceReloadFailure(t *testing.T) {
	s, host, path := newTestSurface(t, 200, 100)

	require.NoError(t, os.WriteFile(path, []byte(`<svg width="10"`), 0o644))
	s.Dispatch(FileChanged{Path: s.Path()})
	assert.Nil(t, s.Document())
	assert.Empty(t, host.alerts)

	dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
	s.Paint(dst)
	assert.Equal(t, make([]uint8, len(dst.Pix)), dst.Pix)

	s.Dispatch(KeyPress{Key: fitKey})
	assert.Equal(t, Identity(), s.Transform())

	writeSVG(t, filepath.Dir(path), filepath.Base(path), 20, 20, "#ff0000")
	s.Dispatch(FileChanged{Path: s.Path()})
	assert.NotNil(t, s.Document())

	require.NoError(t, os.Remove(path))
	s.Dispatch(FileChanged{Path: s.Path()})
	assert.Nil(t, s.Document())
	s.Paint(dst)
	assert.Equal(t, make([]uint8, len(dst.Pix)), dst.Pix)
	assert.Empty(t, host.alerts)
}

func TestSurfaceIgnoresOtherFiles(t *testing.T) {
	s, _, path := newTestSurface(t, 200, 100)
	doc := s.Document()

	other := writeSVG(t, filepath.Dir(path), "other.svg", 10, 10, "#ff0000")
	s.Dispatch(FileChanged{Path: other})
	assert.Same(t, doc, s.Document())
}
