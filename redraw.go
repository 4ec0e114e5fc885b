package main

import "time"

// redrawDelay is how long input is collected before a repaint.
const redrawDelay = 10 * time.Millisecond

// Redraw coalesces repaint requests. The first Schedule after a Fire
// arms a single-shot timer; further requests only mark the state dirty
// until the timer fires.
type Redraw struct {
	dirty bool
	arm   func(time.Duration)
}

// NewRedraw returns a Redraw that calls arm to start the timer.
func NewRedraw(arm func(time.Duration)) *Redraw {
	return &Redraw{arm: arm}
}

// Schedule requests a repaint.
func (r *Redraw) Schedule() {
	if r.dirty {
		return
	}
	r.dirty = true
	r.arm(redrawDelay)
}

// Fire should be called when the timer expires. It reports whether a
// repaint is due and clears the request.
func (r *Redraw) Fire() bool {
	if !r.dirty {
		return false
	}
	r.dirty = false
	return true
}
