package mesh

// faceAxisInfo fixes, per face, which coordinate axis is its normal
// (0=x,1=y,2=z), the direction along that axis (-1/+1), and the two
// remaining axes in fixed (y,z,x) tangent priority with the normal
// axis removed — e.g. for an X face the remaining axes in that order
// are y then z, so outer=y, inner=z.
type faceAxisInfo struct {
	normalAxis          int
	sign                int
	outerAxis, innerAxis int
	// patternB selects which of the two verified winding orders
	// (A or B, see faceCorners) keeps the quad CCW viewed from its
	// outward normal; it flips whenever (normalAxis, outerAxis,
	// innerAxis) is an odd permutation of (x,y,z).
	patternB bool
}

var faceInfo = [6]faceAxisInfo{
	FaceNX: {normalAxis: 0, sign: -1, outerAxis: 1, innerAxis: 2, patternB: false},
	FacePX: {normalAxis: 0, sign: +1, outerAxis: 1, innerAxis: 2, patternB: true},
	FaceNY: {normalAxis: 1, sign: -1, outerAxis: 2, innerAxis: 0, patternB: false},
	FacePY: {normalAxis: 1, sign: +1, outerAxis: 2, innerAxis: 0, patternB: true},
	FaceNZ: {normalAxis: 2, sign: -1, outerAxis: 1, innerAxis: 0, patternB: true},
	FacePZ: {normalAxis: 2, sign: +1, outerAxis: 1, innerAxis: 0, patternB: false},
}

func coordsFromAxes(info faceAxisInfo, layer, v, u int) (x, y, z int) {
	var c [3]int
	c[info.normalAxis] = layer
	c[info.outerAxis] = v
	c[info.innerAxis] = u
	return c[0], c[1], c[2]
}

// Build runs the two-pass greedy mesher over chunk: pass
// one marks, per block, which of its six faces border a transparent
// (or out-of-chunk) neighbor; pass two walks each face direction in
// the fixed order {-X,+X,-Y,+Y,-Z,+Z}, greedily merging adjacent
// visible faces of the same block type (and so the same texture) into
// quads. out is reset first so a
// dirty chunk can be rebuilt in place.
func Build(c *Chunk, reg Registry, out *Mesh) {
	out.Reset()

	var visible [Width * Width * Width]uint8
	for y := 0; y < Width; y++ {
		for z := 0; z < Width; z++ {
			for x := 0; x < Width; x++ {
				bt := c.At(x, y, z)
				info := reg.info(bt)
				if info.IsTransparent {
					continue
				}
				for _, face := range faceOrder {
					fi := faceInfo[face]
					nx, ny, nz := x, y, z
					switch fi.normalAxis {
					case 0:
						nx += fi.sign
					case 1:
						ny += fi.sign
					case 2:
						nz += fi.sign
					}
					neighbor := c.At(nx, ny, nz)
					if reg.info(neighbor).IsTransparent {
						visible[Index(x, y, z)] |= 1 << uint(face)
					}
				}
			}
		}
	}

	ox := c.X * Width
	oy := c.Y * Width
	oz := c.Z * Width
	worldOffset := [3]int{ox, oy, oz}

	var mask [Width][Width]int16

	for _, face := range faceOrder {
		fi := faceInfo[face]
		for layer := 0; layer < Width; layer++ {
			for v := 0; v < Width; v++ {
				for u := 0; u < Width; u++ {
					x, y, z := coordsFromAxes(fi, layer, v, u)
					if visible[Index(x, y, z)]&(1<<uint(face)) == 0 {
						mask[v][u] = 0
						continue
					}
					bt := c.At(x, y, z)
					texID := reg.info(bt).TexID[face]
					// Key on block type and texture id; the low byte
					// is the texture id greedyMergeFace recovers.
					mask[v][u] = int16(bt)<<8 | int16(texID) + 1
				}
			}

			greedyMergeFace(&mask, fi, face, layer, worldOffset, out)
		}
	}

	c.MarkClean()
}

func greedyMergeFace(mask *[Width][Width]int16, fi faceAxisInfo, face Face, layer int, worldOffset [3]int, out *Mesh) {
	for v := 0; v < Width; v++ {
		u := 0
		for u < Width {
			val := mask[v][u]
			if val == 0 {
				u++
				continue
			}

			w := 1
			for u+w < Width && mask[v][u+w] == val {
				w++
			}

			h := 1
		heightLoop:
			for v+h < Width {
				for k := 0; k < w; k++ {
					if mask[v+h][u+k] != val {
						break heightLoop
					}
				}
				h++
			}

			for dv := 0; dv < h; dv++ {
				for du := 0; du < w; du++ {
					mask[v+dv][u+du] = 0
				}
			}

			texID := uint8(val - 1)
			corners := faceCorners(fi, layer, u, u+w, v, v+h, worldOffset)
			out.addQuad(corners, face, texID)

			u += w
		}
	}
}

func setAxis(c *[3]float32, axis int, val float32) {
	c[axis] = val
}

// faceCorners returns one quad's 4 world-space corners in winding
// order, CCW viewed from the face's outward normal. u spans
// [u0,u1), v spans [v0,v1) along the face's inner/outer tangent
// axes; the plane coordinate sits at layer (sign<0, block's near
// face) or layer+1 (sign>0, block's far face).
func faceCorners(fi faceAxisInfo, layer, u0, u1, v0, v1 int, worldOffset [3]int) [4][3]float32 {
	plane := float32(layer + worldOffset[fi.normalAxis])
	if fi.sign > 0 {
		plane++
	}
	vLo := float32(v0 + worldOffset[fi.outerAxis])
	vHi := float32(v1 + worldOffset[fi.outerAxis])
	uLo := float32(u0 + worldOffset[fi.innerAxis])
	uHi := float32(u1 + worldOffset[fi.innerAxis])

	point := func(v, u float32) [3]float32 {
		var c [3]float32
		setAxis(&c, fi.normalAxis, plane)
		setAxis(&c, fi.outerAxis, v)
		setAxis(&c, fi.innerAxis, u)
		return c
	}

	if fi.patternB {
		return [4][3]float32{
			point(vLo, uLo),
			point(vHi, uLo),
			point(vHi, uHi),
			point(vLo, uHi),
		}
	}
	return [4][3]float32{
		point(vLo, uLo),
		point(vLo, uHi),
		point(vHi, uHi),
		point(vHi, uLo),
	}
}
