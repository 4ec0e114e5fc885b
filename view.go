package main

import "image"

// View receives input from mouse, keyboard and paints on screen.
// They are designed to stack up, so a view may return another
// view to show on top of it, like an alert over the document.
type View interface {
	// Connect connects the view with the display. Used for initialization.
	Connect(dctl *DisplayControl)

	// Handle is like main for a View.
	// Returns an optional View to push on top. A nil View pops this one.
	Handle() View

	// Attach should be called to reattach to display after a resize.
	Attach(image.Rectangle)

	// Free releases the view resources, like file watches.
	Free()
}
