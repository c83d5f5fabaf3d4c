package mesh

// Mesh is the structure-of-arrays output buffer a mesher fills in.
// Every 4 entries in Positions/Normals/TexCoords/TexIDs/Faces form one
// quad, emitted as two triangles by the index buffer.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	TexIDs    []uint8
	Faces     []Face
	Indices   []uint32

	QuadCount int
}

// Reset clears the buffer while keeping the underlying arrays, so a
// mesher can rebuild a dirty chunk into the same Mesh without
// reallocating on every frame.
func (m *Mesh) Reset() {
	m.Positions = m.Positions[:0]
	m.Normals = m.Normals[:0]
	m.TexCoords = m.TexCoords[:0]
	m.TexIDs = m.TexIDs[:0]
	m.Faces = m.Faces[:0]
	m.Indices = m.Indices[:0]
	m.QuadCount = 0
}

// faceNormal is the outward unit normal for a face direction.
var faceNormal = [6][3]float32{
	FaceNX: {-1, 0, 0},
	FacePX: {1, 0, 0},
	FaceNY: {0, -1, 0},
	FacePY: {0, 1, 0},
	FaceNZ: {0, 0, -1},
	FacePZ: {0, 0, 1},
}

// addQuad appends one quad's 4 corners (in winding order, CCW viewed
// from the outward normal side) and its 6 triangle-list indices.
// Positions/Normals/TexCoords/TexIDs/Faces grow geometrically from an
// initial capacity of 8, amortizing growth across a whole chunk's
// worth of quads.
func (m *Mesh) addQuad(corners [4][3]float32, face Face, texID uint8) {
	base := uint32(len(m.Positions))

	if cap(m.Positions)-len(m.Positions) < 4 {
		m.growBy(4)
	}

	n := faceNormal[face]
	uv := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i := 0; i < 4; i++ {
		m.Positions = append(m.Positions, corners[i])
		m.Normals = append(m.Normals, n)
		m.TexCoords = append(m.TexCoords, uv[i])
		m.TexIDs = append(m.TexIDs, texID)
		m.Faces = append(m.Faces, face)
	}

	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	m.QuadCount++
}

func (m *Mesh) growBy(n int) {
	need := len(m.Positions) + n
	newCap := cap(m.Positions)
	if newCap == 0 {
		newCap = 8
	}
	for newCap < need {
		newCap *= 2
	}
	if newCap == cap(m.Positions) {
		return
	}
	grownPos := make([][3]float32, len(m.Positions), newCap)
	copy(grownPos, m.Positions)
	m.Positions = grownPos

	grownNorm := make([][3]float32, len(m.Normals), newCap)
	copy(grownNorm, m.Normals)
	m.Normals = grownNorm

	grownUV := make([][2]float32, len(m.TexCoords), newCap)
	copy(grownUV, m.TexCoords)
	m.TexCoords = grownUV

	grownTex := make([]uint8, len(m.TexIDs), newCap)
	copy(grownTex, m.TexIDs)
	m.TexIDs = grownTex

	grownFaces := make([]Face, len(m.Faces), newCap)
	copy(grownFaces, m.Faces)
	m.Faces = grownFaces
}
