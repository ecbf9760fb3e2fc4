//go:build !ebiten

package view

import (
	"log"

	"lifeoverlay/src/feed"
	"lifeoverlay/src/universe"
)

// Window is a placeholder for builds without the 'ebiten' tag.
type Window struct {
	u universe.Universe
}

// NewWindow returns the placeholder, Start reports the missing build tag.
func NewWindow(int, bool, feed.Sink) *Window { return &Window{} }

func (w *Window) Register(u universe.Universe) { w.u = u }

func (w *Window) Refresh() {}

// Start logs that the window viewer requires building with the 'ebiten' tag.
func (w *Window) Start() {
	log.Println("the window view requires building with the 'ebiten' tag")
}
