//go:build ebiten

package view

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"lifeoverlay/src/feed"
	"lifeoverlay/src/universe"
)

// Window shows the universe in a desktop window, one square of Scale pixels
// per cell. Refresh only copies a snapshot; ebiten draws it on its own
// goroutine at the display rate.
type Window struct {
	u         universe.Universe
	sink      feed.Sink
	scale     int
	showTotal bool

	mu       sync.Mutex
	snapshot universe.Area
	status   universe.Status

	img *ebiten.Image
	buf []byte
}

//NewWindow creates the window viewer, showTotal draws the running total as text
func NewWindow(scale int, showTotal bool, sink feed.Sink) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{scale: scale, showTotal: showTotal, sink: sink}
}

func (w *Window) Register(u universe.Universe) {
	w.u = u
	o := u.Options()
	w.snapshot = universe.NewArea(o.Width, o.Height)
	w.buf = make([]byte, o.Width*o.Height*4)
}

func (w *Window) Refresh() {
	a := w.u.Area()
	st := w.u.Status()
	w.mu.Lock()
	w.snapshot = a
	w.status = st
	w.mu.Unlock()
}

func (w *Window) Start() {
	o := w.u.Options()
	ebiten.SetWindowSize(o.Width*w.scale, o.Height*w.scale)
	ebiten.SetWindowTitle("Life overlay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Println("window:", err)
	}
}

// Update handles the keyboard, the simulation itself runs in the universe.
func (w *Window) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if w.u.Status().RunningMode == universe.RunningStateRun {
			w.u.Stop()
		} else {
			w.u.Run()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		w.u.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		w.u.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		w.u.SettleWithRandomData()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		if w.sink != nil {
			w.sink.Donation("", demoDonation())
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.u.InverseCell(y/w.scale, x/w.scale)
	}
	return nil
}

// Draw renders the latest snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	a := w.snapshot
	st := w.status
	w.mu.Unlock()

	if w.img == nil {
		w.img = ebiten.NewImage(a.Width, a.Height)
	}
	fillPaletteRGBA(w.buf, a, Palette)
	w.img.WritePixels(w.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)

	if w.showTotal {
		if total, ok := st.Details["total"].(int); ok && total > 0 {
			label := fmt.Sprintf("$%d", total)
			face := basicfont.Face7x13
			x := a.Width*w.scale - len(label)*7 - 8
			y := a.Height*w.scale - 8
			text.Draw(screen, label, face, x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
}

// Layout returns the logical screen size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	o := w.u.Options()
	return o.Width * w.scale, o.Height * w.scale
}
