package main

import "image"

// Event is an input delivered to a Surface. The concrete types below
// are the only implementations.
type Event interface {
	isEvent()
}

// Wheel is a scroll of the mouse wheel. Delta is in raw wheel units,
// 120 per notch.
type Wheel struct {
	Delta image.Point
}

// GesturePhase is the state of a pinch gesture.
type GesturePhase int

const (
	PinchStarted GesturePhase = iota
	PinchUpdated
	PinchFinished
	PinchCanceled
)

// Pinch is a step of a pinch gesture. Factor is relative to the previous step.
type Pinch struct {
	Phase  GesturePhase
	Factor float64
}

// KeyPress is a single key typed by the user.
type KeyPress struct {
	Key rune
}

// FileChanged reports that the file at Path was modified on disk.
type FileChanged struct {
	Path string
}

// TimerFired is sent when the redraw timer expires.
type TimerFired struct{}

func (Wheel) isEvent()       {}
func (Pinch) isEvent()       {}
func (KeyPress) isEvent()    {}
func (FileChanged) isEvent() {}
func (TimerFired) isEvent()  {}
