package mesh

import "testing"

func TestBuildEmptyChunkProducesNoQuads(t *testing.T) {
	c := NewChunk(0, 0, 0)
	var out Mesh
	Build(c, DefaultRegistry, &out)
	if out.QuadCount != 0 {
		t.Fatalf("empty chunk: got %d quads, want 0", out.QuadCount)
	}
	if len(out.Indices) != 0 {
		t.Fatalf("empty chunk: got %d indices, want 0", len(out.Indices))
	}
}

// A single isolated block exposes all six faces and none of them
// share a texture id with a same-direction neighbor, so greedy merge
// cannot coalesce anything: 6 quads, 24 vertices, 36 indices.
func TestBuildSingleBlockSixFaces(t *testing.T) {
	c := NewChunk(0, 0, 0)
	c.Set(8, 8, 8, Stone)

	var out Mesh
	Build(c, DefaultRegistry, &out)

	if out.QuadCount != 6 {
		t.Fatalf("single block: got %d quads, want 6", out.QuadCount)
	}
	if len(out.Positions) != 24 {
		t.Fatalf("single block: got %d vertices, want 24", len(out.Positions))
	}
	if len(out.Indices) != 36 {
		t.Fatalf("single block: got %d indices, want 36", len(out.Indices))
	}
	if len(out.Faces) != 24 {
		t.Fatalf("single block: got %d face entries, want 24 (one per vertex)", len(out.Faces))
	}

	seen := map[Face]int{}
	for i, f := range out.Faces {
		seen[f]++
		if out.Normals[i] != faceNormal[f] {
			t.Fatalf("vertex %d: normal %v does not match its recorded face %v", i, out.Normals[i], f)
		}
	}
	for _, f := range faceOrder {
		if seen[f] != 4 {
			t.Fatalf("face %v: got %d vertices tagged, want 4", f, seen[f])
		}
	}
}

// A 2x2x1 slab of uniform-material blocks exposes each face direction
// as one fully-connected run, so every direction merges into exactly
// one quad regardless of the 2x2 footprint: 6 quads, 24 vertices.
func TestBuildGrassSlabMerges(t *testing.T) {
	c := NewChunk(0, 0, 0)
	for dx := 0; dx < 2; dx++ {
		for dz := 0; dz < 2; dz++ {
			c.Set(4+dx, 4, 4+dz, Grass)
		}
	}

	var out Mesh
	Build(c, DefaultRegistry, &out)

	if out.QuadCount != 6 {
		t.Fatalf("2x2x1 slab: got %d quads, want 6", out.QuadCount)
	}
	if len(out.Positions) != 24 {
		t.Fatalf("2x2x1 slab: got %d vertices, want 24", len(out.Positions))
	}
}

// Two adjacent solid blocks of the same type along X hide their
// shared interior face from both sides: only the 10 exterior faces
// of the resulting 2x1x1 block are visible, and greedy merge turns
// them into 6 quads (one per direction). Emitting the shared face
// would add two more quads.
func TestBuildAdjacentBlocksHideSharedFace(t *testing.T) {
	c := NewChunk(0, 0, 0)
	c.Set(4, 4, 4, Stone)
	c.Set(5, 4, 4, Stone)

	var out Mesh
	Build(c, DefaultRegistry, &out)

	if out.QuadCount != 6 {
		t.Fatalf("2x1x1 blocks: got %d quads, want 6", out.QuadCount)
	}
}

func TestBuildMarksChunkClean(t *testing.T) {
	c := NewChunk(0, 0, 0)
	c.Set(0, 0, 0, Stone)
	if !c.Dirty() {
		t.Fatal("freshly-set chunk should be dirty")
	}
	var out Mesh
	Build(c, DefaultRegistry, &out)
	if c.Dirty() {
		t.Fatal("Build should mark the chunk clean")
	}
}

func TestBuildWorldOffsetFollowsChunkPosition(t *testing.T) {
	c := NewChunk(1, 0, 0)
	c.Set(0, 0, 0, Stone)

	var out Mesh
	Build(c, DefaultRegistry, &out)

	for _, p := range out.Positions {
		if p[0] < float32(Width) {
			t.Fatalf("vertex %v not offset by chunk X (want x >= %d)", p, Width)
		}
	}
}

func TestBuildResetReusesCapacity(t *testing.T) {
	c := NewChunk(0, 0, 0)
	c.Set(0, 0, 0, Stone)

	var out Mesh
	Build(c, DefaultRegistry, &out)
	firstCap := cap(out.Positions)

	c.Set(1, 0, 0, Stone)
	Build(c, DefaultRegistry, &out)

	if cap(out.Positions) < firstCap {
		t.Fatalf("Reset should not shrink capacity: got %d, had %d", cap(out.Positions), firstCap)
	}
}
