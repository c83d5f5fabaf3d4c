package raster

// rasterizeWireframe implements PolygonLine: Bresenham along the
// three edges, no perspective correction — deliberately linear in
// screen space, kept for parity rather than treated as a bug.
func rasterizeWireframe(cfg rasterConfig, v [3]preparedVertex, w, h int) {
	edges := [3][2]int{{0, 1}, {1, 2}, {2, 0}}
	for _, e := range edges {
		a, b := v[e[0]], v[e[1]]
		drawLine(cfg, a, b, w, h)
	}
}

func drawLine(cfg rasterConfig, a, b preparedVertex, w, h int) {
	x0 := int(ndcToPixelX(a.screen.X, w))
	y0 := int(ndcToPixelY(a.screen.Y, h))
	x1 := int(ndcToPixelX(b.screen.X, w))
	y1 := int(ndcToPixelY(b.screen.Y, h))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	steps := dx
	if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		steps = 1
	}

	x, y := x0, y0
	step := 0
	for {
		if x >= 0 && x < w && y >= 0 && y < h {
			t := float32(step) / float32(steps)
			z := a.screen.Z + (b.screen.Z-a.screen.Z)*t
			// Barycentric along the edge is (t, 0, 1-t); callers
			// needing it read fragCoord.Z / varyings, the driver
			// doesn't expose bary directly to shaders.
			fragCoord := Vec4{X: pixelCenterNDCX(x, w), Y: pixelCenterNDCY(y, h), Z: z}

			pixelIdx := y*w + x
			discard := z < 0 || z > 1
			if !discard && cfg.attachment.Depth != nil && cfg.depthCmp != DepthNone {
				prevZ := cfg.attachment.Depth[pixelIdx]
				discard = !cfg.depthCmp.passes(prevZ, z)
			}
			if discard {
				if x == x1 && y == y1 {
					break
				}
				e2 := 2 * err
				if e2 >= dy {
					err += dy
					x += sx
				}
				if e2 <= dx {
					err += dx
					y += sy
				}
				step++
				continue
			}

			var varyings []Vec4
			n := len(a.varyings)
			if n > 0 {
				varyings = make([]Vec4, n)
				for i := 0; i < n; i++ {
					varyings[i] = a.varyings[i].Lerp(b.varyings[i], t)
				}
			}
			color := cfg.fs.Invoke(varyings, fragCoord)

			if cfg.attachment.Depth != nil {
				cfg.attachment.Depth[pixelIdx] = z
			}
			if cfg.attachment.Color != nil {
				cfg.attachment.SetPixel(x, y, color.Z, color.Y, color.X, color.W)
			}
		}

		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		step++
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
