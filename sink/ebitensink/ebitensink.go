// Package ebitensink implements attachment.Sink on top of an ebiten
// window: a window backend is one possible Sink implementation,
// never a dependency of the rasterizer itself.
package ebitensink

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kestrelgfx/vxraster/attachment"
)

// Sink presents successive Attachments in an ebiten window. Present
// is safe to call from a render goroutine while ebiten drives Draw on
// its own; the two sides only ever touch rgba and frameCount under
// mu.
type Sink struct {
	width, height int
	title         string

	mu         sync.RWMutex
	rgba       []byte
	frameCount uint64

	window  *ebiten.Image
	started bool
}

// New constructs a Sink sized to the given resolution. Call Run to
// open the window; Present may be called at any time, before or
// after Run starts, and does not wait for Draw: each call replaces
// the frame the next Draw shows.
func New(width, height int, title string) *Sink {
	return &Sink{
		width:  width,
		height: height,
		title:  title,
		rgba:   make([]byte, width*height*4),
	}
}

// Present converts a's BGRA plane to ebiten's RGBA convention and
// swaps it in for the next Draw call.
func (s *Sink) Present(a *attachment.Attachment) error {
	if a.Width != s.width || a.Height != s.height {
		return fmt.Errorf("ebitensink: attachment is %dx%d, sink is %dx%d", a.Width, a.Height, s.width, s.height)
	}
	if a.Color == nil {
		return fmt.Errorf("ebitensink: attachment has no color plane")
	}

	s.mu.Lock()
	for i := 0; i < len(a.Color); i += 4 {
		s.rgba[i+0] = a.Color[i+2] // R <- r
		s.rgba[i+1] = a.Color[i+1] // G <- g
		s.rgba[i+2] = a.Color[i+0] // B <- b
		s.rgba[i+3] = a.Color[i+3] // A <- a
	}
	s.mu.Unlock()
	return nil
}

// Run opens the window and blocks until it's closed, driving ebiten's
// game loop. Call it from main, after starting the renderer on its
// own goroutine feeding Present.
func (s *Sink) Run() error {
	ebiten.SetWindowSize(s.width, s.height)
	ebiten.SetWindowTitle(s.title)
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(s)
}

// FrameCount returns the number of frames ebiten has drawn so far.
func (s *Sink) FrameCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameCount
}

func (s *Sink) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

func (s *Sink) Draw(screen *ebiten.Image) {
	if s.window == nil {
		s.window = ebiten.NewImage(s.width, s.height)
	}
	s.mu.Lock()
	s.window.WritePixels(s.rgba)
	s.frameCount++
	s.mu.Unlock()
	screen.DrawImage(s.window, nil)
}

func (s *Sink) Layout(_, _ int) (int, int) {
	return s.width, s.height
}
