package main

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"

	draw9 "9fans.net/go/draw"
)

// zoomStep is the pinch factor of one zoom in from the keyboard or the menu.
const zoomStep = 1.25

// SvgView is a View that shows an SVG document and follows its changes.
// It translates the display input to events for a Surface.
type SvgView struct {
	path     string
	surface  *Surface
	watcher  *Watcher
	timer    *time.Timer
	area     image.Rectangle
	showInfo bool
	alert    View // shown on top before the next input is handled

	dctl *DisplayControl
}

func NewSvgView(path string, r image.Rectangle) *SvgView {
	return &SvgView{
		path: path,
		area: r,
	}
}

func (sv *SvgView) Connect(dctl *DisplayControl) {
	sv.dctl = dctl
	sv.timer = time.NewTimer(redrawDelay)
	sv.timer.Stop()
	sv.surface = NewSurface(sv.path, sv)
	if p := sv.surface.Path(); p != "" {
		w, err := Watch(p)
		if err != nil {
			log.Printf("svgView: %v", err)
			return
		}
		sv.watcher = w
	}
}

func (sv *SvgView) Attach(r image.Rectangle) {
	sv.area = r
}

func (sv *SvgView) Free() {
	sv.timer.Stop()
	if sv.watcher != nil {
		if err := sv.watcher.Close(); err != nil {
			log.Printf("svgView: %v", err)
		}
		sv.watcher = nil
	}
}

// Size implements Host.
func (sv *SvgView) Size() image.Point {
	return sv.area.Size()
}

// Alert implements Host. The alert is shown by the next call to Handle.
func (sv *SvgView) Alert(title, body string) {
	log.Printf("%s: %s", title, body)
	sv.alert = NewAlertView(title, body, sv.area)
}

// ArmTimer implements Host.
func (sv *SvgView) ArmTimer(d time.Duration) {
	sv.timer.Reset(d)
}

// Repaint implements Host.
func (sv *SvgView) Repaint() {
	sv.paint(sv.dctl)
}

func (sv *SvgView) Handle() View {
	if av := sv.alert; av != nil {
		sv.alert = nil
		return av
	}

	bt2menu := &draw9.Menu{
		Item: []string{"fit", "zoom in", "zoom out", "", "info", "plumb", "", "exit"},
	}

	var changes <-chan string
	if sv.watcher != nil {
		changes = sv.watcher.C
	}

	dctl := sv.dctl
	sv.paint(dctl)
	for {
		select {
		case err := <-dctl.errch:
			log.Printf("display: %v", err)
		case k := <-dctl.kctl.C:
			switch k {
			case 'q', escKey, delKey: // exit
				return nil
			case 'i': // info
				sv.showInfo = !sv.showInfo
				sv.paint(dctl)
			case 'p': // plumb
				if p := sv.surface.Path(); p != "" {
					plumbFile(p)
				}
			case '+', '=': // zoom in
				sv.zoom(zoomStep)
			case '-': // zoom out
				sv.zoom(1 / zoomStep)
			case upArrowKey:
				sv.surface.Dispatch(Wheel{Delta: image.Pt(0, wheelNotch)})
			case downArrowKey:
				sv.surface.Dispatch(Wheel{Delta: image.Pt(0, -wheelNotch)})
			case leftArrowKey:
				sv.surface.Dispatch(Wheel{Delta: image.Pt(wheelNotch, 0)})
			case rightArrowKey:
				sv.surface.Dispatch(Wheel{Delta: image.Pt(-wheelNotch, 0)})
			default:
				sv.surface.Dispatch(KeyPress{Key: k})
			}
		case dctl.mctl.Mouse = <-dctl.mctl.C:
			switch dctl.mctl.Mouse.Buttons {
			case 2: // view menu
				switch draw9.MenuHit(2, dctl.mctl, bt2menu, nil) {
				case 0: // fit
					sv.surface.Dispatch(KeyPress{Key: fitKey})
				case 1: // zoom in
					sv.zoom(zoomStep)
				case 2: // zoom out
					sv.zoom(1 / zoomStep)
				case 4: // info
					sv.showInfo = !sv.showInfo
					sv.paint(dctl)
				case 5: // plumb
					if p := sv.surface.Path(); p != "" {
						plumbFile(p)
					}
				case 7: // exit
					return nil
				}
			case scrollWheelUp:
				sv.surface.Dispatch(Wheel{Delta: image.Pt(0, wheelNotch)})
			case scrollWheelDown:
				sv.surface.Dispatch(Wheel{Delta: image.Pt(0, -wheelNotch)})
			}
		case <-dctl.mctl.Resize:
			if err := dctl.display.Attach(draw9.RefNone); err != nil {
				log.Fatalf("display: failed to attach: %v", err)
			}
			sv.Attach(dctl.display.Image.Bounds())
			sv.paint(dctl)
		case <-sv.timer.C:
			sv.surface.Dispatch(TimerFired{})
		case p := <-changes:
			if *verbose {
				log.Printf("svgView: %s changed", p)
			}
			sv.surface.Dispatch(FileChanged{Path: p})
		}
	}
}

// zoom sends a complete pinch gesture of factor m to the surface.
func (sv *SvgView) zoom(m float64) {
	sv.surface.Dispatch(Pinch{Phase: PinchStarted, Factor: 1})
	sv.surface.Dispatch(Pinch{Phase: PinchUpdated, Factor: m})
	sv.surface.Dispatch(Pinch{Phase: PinchFinished, Factor: 1})
}

func (sv *SvgView) paint(dctl *DisplayControl) {
	if *verbose {
		defer func(start time.Time) {
			log.Printf("svgView: paint time %v", time.Since(start))
		}(time.Now())
	}

	window := dctl.display.Image
	window.Draw(window.Bounds(), dctl.bgColor, nil, image.Point{})

	canvas := image.NewRGBA(image.Rectangle{Max: sv.area.Size()})
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	sv.surface.Paint(canvas)

	img, err := dctl.display.ReadImage(toPlan9Bitmap(canvas))
	if err != nil {
		log.Printf("svgView: cannot display document: %v", err)
	} else {
		window.Draw(sv.area, img, nil, image.Point{})
		if err := img.Free(); err != nil {
			log.Printf("svgView: failed to free image: %v", err)
		}
	}

	if sv.showInfo {
		window.String(sv.area.Min, dctl.fontColor, image.Point{}, dctl.display.Font, sv.info())
	}

	if err := dctl.display.Flush(); err != nil {
		log.Printf("display: flush: %v", err)
	}
}

// info returns a one line summary of the document and the view.
func (sv *SvgView) info() string {
	doc := sv.surface.Document()
	if doc == nil {
		return fmt.Sprintf("%s: no document", sv.path)
	}
	w, h := doc.Size()
	xf := sv.surface.Transform()
	return fmt.Sprintf("%s %gx%g scale %.2f offset (%.0f,%.0f)",
		sv.surface.Path(), w, h, xf.Scale, xf.Offset[0], xf.Offset[1])
}

// toPlan9Bitmap converts an image to the plan9 format for display.
func toPlan9Bitmap(img *image.RGBA) *bytes.Buffer {
	n := 60 + img.Bounds().Dx()*img.Bounds().Dy()*4
	b := bytes.NewBuffer(make([]byte, 0, n))
	fmt.Fprintf(b, "%11s %11d %11d %11d %11d ",
		"r8g8b8a8", 0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	for data := img.Pix; len(data) > 0; data = data[4:] {
		b.WriteByte(data[3])
		b.WriteByte(data[2])
		b.WriteByte(data[1])
		b.WriteByte(data[0])
	}
	return b
}
