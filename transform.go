package main

import (
	"image"

	"golang.org/x/image/math/f64"
)

// minScale is the smallest scale a pinch can reach.
const minScale = 0.1

// Transform maps document space to surface space: a point p of the
// document is drawn at Offset + Scale*p.
type Transform struct {
	Scale  float64
	Offset f64.Vec2
}

// Identity returns the transform that draws the document at its natural size.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Apply maps a document point to the surface.
func (t Transform) Apply(p f64.Vec2) f64.Vec2 {
	return f64.Vec2{t.Offset[0] + t.Scale*p[0], t.Offset[1] + t.Scale*p[1]}
}

// Pan moves the offset by a quarter of the wheel delta.
func (t Transform) Pan(delta image.Point) Transform {
	t.Offset[0] += float64(delta.X) / 4
	t.Offset[1] += float64(delta.Y) / 4
	return t
}

// Zoom multiplies the scale by m keeping the document point under
// center in place. It reports false and returns t unchanged if the
// new scale would fall below minScale.
func (t Transform) Zoom(m float64, center f64.Vec2) (Transform, bool) {
	if t.Scale*m < minScale {
		return t, false
	}
	dx := center[0] - t.Offset[0]
	dy := center[1] - t.Offset[1]
	return Transform{
		Scale:  t.Scale * m,
		Offset: f64.Vec2{center[0] - dx*m, center[1] - dy*m},
	}, true
}

// Fit returns the transform that fits a document of size w x h inside
// a surface of the given size, centered and with the aspect ratio kept.
// The result may be below minScale.
func Fit(surface image.Point, w, h float64) Transform {
	sw, sh := float64(surface.X), float64(surface.Y)
	scale := min(sw/w, sh/h)
	return Transform{
		Scale:  scale,
		Offset: f64.Vec2{(sw - w*scale) / 2, (sh - h*scale) / 2},
	}
}

// Target returns the region of the surface covered by a document of size w x h.
func (t Transform) Target(w, h float64) (x, y, tw, th float64) {
	o := t.Apply(f64.Vec2{})
	return o[0], o[1], w * t.Scale, h * t.Scale
}
