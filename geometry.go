package main

import (
	"image"

	"golang.org/x/image/math/f64"
)

// center places sr in the middle of dr. If sr is larger than dr in
// either dimension, dr is returned.
func center(dr, sr image.Rectangle) image.Rectangle {
	free := dr.Size().Sub(sr.Size())
	if free.X < 0 || free.Y < 0 {
		return dr
	}
	return sr.Sub(sr.Min).Add(dr.Min.Add(free.Div(2)))
}

// midpoint returns the center of an area of size sz whose origin is (0, 0).
func midpoint(sz image.Point) f64.Vec2 {
	return f64.Vec2{float64(sz.X) / 2, float64(sz.Y) / 2}
}
