package raster

import (
	"math"

	"github.com/kestrelgfx/vxraster/attachment"
)

// preparedVertex is a clip-space vertex after perspective divide,
// carrying the cached w^-1 needed for perspective-correct varying
// interpolation.
type preparedVertex struct {
	screen   Vec4 // x,y in NDC (not yet pixel space), z is NDC depth, w is original clip w
	invW     float32
	varyings []Vec4
}

func prepareVertex(v clipVertex) preparedVertex {
	invW := float32(1)
	if v.pos.W != 0 {
		invW = 1 / v.pos.W
	}
	return preparedVertex{
		screen: Vec4{
			X: v.pos.X * invW,
			Y: v.pos.Y * invW,
			Z: v.pos.Z * invW,
			W: v.pos.W,
		},
		invW:     invW,
		varyings: v.varyings,
	}
}

// edgeFunction is the twice-signed-area determinant of (b-a) x (c-a)
// in 2D, used both for backface culling and the per-pixel inside
// test.
func edgeFunction(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// rasterConfig bundles the per-call rasterization options: target
// attachment, culling and polygon modes, depth comparison, and the
// fragment shader to invoke per covered pixel.
type rasterConfig struct {
	attachment *attachment.Attachment
	culling    CullMode
	polygon    PolygonMode
	depthCmp   DepthCompare
	fs         FragmentShader
}

// rasterizeTriangle scan-converts one already-clipped triangle of 3
// preparedVertex into cfg.attachment, end to end: backface cull,
// bbox, per-pixel coverage and depth test, perspective-correct
// varying interpolation, fragment shader invocation.
func rasterizeTriangle(cfg rasterConfig, v [3]preparedVertex) {
	w, h := cfg.attachment.Width, cfg.attachment.Height

	// Step 1: perspective-divide screen coords & backface cull.
	p0x, p0y := v[0].screen.X, v[0].screen.Y
	p1x, p1y := v[1].screen.X, v[1].screen.Y
	p2x, p2y := v[2].screen.X, v[2].screen.Y

	det012 := edgeFunction(p0x, p0y, p1x, p1y, p2x, p2y)
	if det012 > -clipEpsilon && det012 < clipEpsilon {
		return // degenerate
	}

	// y increases downward from NDC to pixel space; with that flip,
	// det012 < 0 is CCW.
	isCW := det012 >= 0
	switch cfg.culling {
	case CullCW:
		if isCW {
			return
		}
	case CullCCW:
		if !isCW {
			return
		}
	}

	if cfg.polygon == PolygonLine {
		rasterizeWireframe(cfg, v, w, h)
		return
	}

	// Step 2: NDC bbox clamped to [-1,1]^2, mapped to pixel bounds.
	minXn := minf3(p0x, p1x, p2x)
	maxXn := maxf3(p0x, p1x, p2x)
	minYn := minf3(p0y, p1y, p2y)
	maxYn := maxf3(p0y, p1y, p2y)
	minXn = clampf(minXn, -1, 1)
	maxXn = clampf(maxXn, -1, 1)
	minYn = clampf(minYn, -1, 1)
	maxYn = clampf(maxYn, -1, 1)

	minX := int(math.Floor(float64(ndcToPixelX(minXn, w)) - 0.5))
	maxX := int(math.Ceil(float64(ndcToPixelX(maxXn, w)) + 0.5))
	minY := int(math.Floor(float64(ndcToPixelY(maxYn, h)) - 0.5))
	maxY := int(math.Ceil(float64(ndcToPixelY(minYn, h)) + 0.5))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > w {
		maxX = w
	}
	if maxY > h {
		maxY = h
	}

	// Step 3: edge functions per pixel, normalized by invArea into
	// barycentric weights. The inside test below compares each edge
	// function against det012's sign, so either winding is handled
	// (we already decided whether to keep this triangle above).
	invArea := 1 / det012

	nvarying := len(v[0].varyings)
	pointThreshold := float32(1 - 0.05)

	for y := minY; y < maxY; y++ {
		py := pixelCenterNDCY(y, h)
		for x := minX; x < maxX; x++ {
			px := pixelCenterNDCX(x, w)

			e0 := edgeFunction(p1x, p1y, p2x, p2y, px, py) // opposite v0
			e1 := edgeFunction(p2x, p2y, p0x, p0y, px, py) // opposite v1
			e2 := edgeFunction(p0x, p0y, p1x, p1y, px, py) // opposite v2

			var w0, w1, w2 float32
			// Inside iff every edge function shares det012's sign
			// (or is zero); this is independent of the cull
			// convention above, which only decides whether to keep
			// the triangle at all.
			if isCW {
				if e0 < 0 || e1 < 0 || e2 < 0 {
					continue
				}
			} else {
				if e0 > 0 || e1 > 0 || e2 > 0 {
					continue
				}
			}
			// Barycentric weights: e0 (opposite v0) feeds v0's
			// weight, e1 feeds v1's, e2 feeds v2's; normalize by the
			// same signed area so the sign convention cancels.
			w0 = e0 * invArea
			u := e1 * invArea
			v1w := e2 * invArea
			w1 = u
			w2 = v1w

			if cfg.polygon == PolygonPoint {
				if maxf3(w0, w1, w2) < pointThreshold {
					continue
				}
			}

			z := w0*v[0].screen.Z + w1*v[1].screen.Z + w2*v[2].screen.Z
			if z < 0 || z > 1 {
				continue
			}

			pixelIdx := y*w + x
			if cfg.attachment.Depth != nil {
				if cfg.depthCmp != DepthNone {
					prevZ := cfg.attachment.Depth[pixelIdx]
					if !cfg.depthCmp.passes(prevZ, z) {
						continue
					}
				}
			}

			var varyings []Vec4
			if nvarying > 0 {
				varyings = make([]Vec4, nvarying)
				w0c := w0 * v[0].invW
				w1c := w1 * v[1].invW
				w2c := w2 * v[2].invW
				denom := w0c + w1c + w2c
				for i := 0; i < nvarying; i++ {
					num := v[0].varyings[i].Scale(w0c).
						Add(v[1].varyings[i].Scale(w1c)).
						Add(v[2].varyings[i].Scale(w2c))
					varyings[i] = num.Scale(1 / denom)
				}
			}

			color := cfg.fs.Invoke(varyings, Vec4{X: px, Y: py, Z: z})

			if cfg.attachment.Depth != nil {
				cfg.attachment.Depth[pixelIdx] = z
			}
			if cfg.attachment.Color != nil {
				cfg.attachment.SetPixel(x, y, color.Z, color.Y, color.X, color.W)
			}
		}
	}
}

func ndcToPixelX(xn float32, w int) float32 {
	return (xn + 1) * 0.5 * float32(w)
}

func ndcToPixelY(yn float32, h int) float32 {
	// y grows downward in pixel space, upward in NDC.
	return (1 - yn) * 0.5 * float32(h)
}

func pixelCenterNDCX(x, w int) float32 {
	return ((float32(x)+0.5)*2)/float32(w) - 1
}

func pixelCenterNDCY(y, h int) float32 {
	ndc := ((float32(y)+0.5)*2)/float32(h) - 1
	return -ndc
}

func minf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxf3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
