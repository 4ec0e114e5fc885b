package main

import (
	"image"
	"log"

	draw9 "9fans.net/go/draw"
)

// AlertView is a View that shows a message in a box until the user
// types a key or clicks.
type AlertView struct {
	title string
	body  string
	area  image.Rectangle

	dctl *DisplayControl
}

func NewAlertView(title, body string, r image.Rectangle) *AlertView {
	return &AlertView{
		title: title,
		body:  body,
		area:  r,
	}
}

func (av *AlertView) Connect(dctl *DisplayControl) {
	av.dctl = dctl
}

func (av *AlertView) Attach(r image.Rectangle) {
	av.area = r
}

func (av *AlertView) Free() {}

func (av *AlertView) Handle() View {
	dctl := av.dctl
	av.paint(dctl)
	for {
		select {
		case err := <-dctl.errch:
			log.Printf("display: %v", err)
		case <-dctl.kctl.C:
			return nil
		case dctl.mctl.Mouse = <-dctl.mctl.C:
			if dctl.mctl.Mouse.Buttons != 0 {
				return nil
			}
		case <-dctl.mctl.Resize:
			if err := dctl.display.Attach(draw9.RefNone); err != nil {
				log.Fatalf("display: failed to attach: %v", err)
			}
			av.Attach(dctl.display.Image.Bounds())
			av.paint(dctl)
		}
	}
}

func (av *AlertView) paint(dctl *DisplayControl) {
	window := dctl.display.Image
	font := dctl.display.Font
	window.Draw(window.Bounds(), dctl.bgColor, nil, image.Point{})

	lines := []string{av.title, "", av.body, "", "press any key"}
	width := 0
	for _, l := range lines {
		width = max(width, font.StringWidth(l))
	}
	box := image.Rect(0, 0, width+4*padding, len(lines)*font.Height+4*padding)
	box = center(av.area, box)

	window.Draw(box, dctl.bgColor, nil, image.Point{})
	window.Border(box, padding/2, dctl.borderColor, image.Point{})
	pt := box.Min.Add(image.Pt(2*padding, 2*padding))
	for _, l := range lines {
		window.String(pt, dctl.fontColor, image.Point{}, font, l)
		pt.Y += font.Height
	}

	if err := dctl.display.Flush(); err != nil {
		log.Printf("display: flush: %v", err)
	}
}
