// Package attachment defines the render target the rasterizer writes
// into: a borrowed color/depth pixel buffer pair, never allocated or
// freed by the pipeline itself.
package attachment

import "fmt"

// Attachment is a rectangular pixel grid borrowed by the pipeline for
// the duration of a single render call. Either plane may be nil.
//
// Color, when present, is exactly Width*Height*4 bytes, one pixel
// every 4 bytes in B,G,R,A order — this byte order is externally
// observable and must never change, since it matches the window
// backend and the reference PPM writer's channel swap.
//
// Depth, when present, is exactly Width*Height float32s in row-major
// order, normalized to [0,1] for the visible range.
type Attachment struct {
	Width, Height int
	Color         []byte
	Depth         []float32
}

// New allocates a fresh attachment with the requested planes.
func New(width, height int, withColor, withDepth bool) *Attachment {
	a := &Attachment{Width: width, Height: height}
	if withColor {
		a.Color = make([]byte, width*height*4)
	}
	if withDepth {
		a.Depth = make([]float32, width*height)
	}
	return a
}

func (a *Attachment) validate() {
	if a.Color != nil && len(a.Color) != a.Width*a.Height*4 {
		panic(fmt.Sprintf("attachment: color plane has %d bytes, want %d", len(a.Color), a.Width*a.Height*4))
	}
	if a.Depth != nil && len(a.Depth) != a.Width*a.Height {
		panic(fmt.Sprintf("attachment: depth plane has %d floats, want %d", len(a.Depth), a.Width*a.Height))
	}
}

// ClearConfig describes a clear operation. Two successive clears with
// identical configs are equivalent to one.
type ClearConfig struct {
	ClearColor [4]byte // B,G,R,A; ignored if Color is nil
	ClearDepth float32 // ignored if Depth is nil
}

// Clear resets both present planes to the configured values.
func (a *Attachment) Clear(cfg ClearConfig) {
	a.validate()
	if a.Color != nil {
		for i := 0; i < len(a.Color); i += 4 {
			a.Color[i+0] = cfg.ClearColor[0]
			a.Color[i+1] = cfg.ClearColor[1]
			a.Color[i+2] = cfg.ClearColor[2]
			a.Color[i+3] = cfg.ClearColor[3]
		}
	}
	if a.Depth != nil {
		for i := range a.Depth {
			a.Depth[i] = cfg.ClearDepth
		}
	}
}

// SetPixel writes one BGRA pixel, clamping each channel to [0,1]
// before converting to a byte, per the rasterizer's write-out rule.
func (a *Attachment) SetPixel(x, y int, b, g, r, al float32) {
	idx := (y*a.Width + x) * 4
	a.Color[idx+0] = clampToByte(b)
	a.Color[idx+1] = clampToByte(g)
	a.Color[idx+2] = clampToByte(r)
	a.Color[idx+3] = clampToByte(al)
}

func clampToByte(c float32) byte {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return byte(c*255 + 0.5)
}

// Sink is the interface an external consumer — a windowing backend,
// a file writer — implements to receive a finished attachment. The
// core rasterizer never calls this itself; it is the seam the demo
// (cmd/voxeldemo) and sink/ebitensink hang off of.
type Sink interface {
	Present(a *Attachment) error
}
