// Package mesh implements a greedy chunk mesher: it turns a dense
// W×W×W block grid into a minimal set of textured quads, emitting
// only faces adjacent to a transparent neighbor and coalescing
// coplanar adjacent faces of equal block type.
package mesh

// BlockType is a block-type code. AIR is always transparent; every
// other type in this table is solid.
type BlockType uint8

const (
	Air BlockType = iota
	Stone
	Dirt
	Grass
	Log
	Leaves
)

// Face identifies one of the six axis-aligned face directions a quad
// can be emitted for.
type Face uint8

const (
	FaceNX Face = iota
	FacePX
	FaceNY
	FacePY
	FaceNZ
	FacePZ
)

// faceOrder is the fixed scan order used to tie-break greedy merges:
// {-X, +X, -Y, +Y, -Z, +Z}.
var faceOrder = [6]Face{FaceNX, FacePX, FaceNY, FacePY, FaceNZ, FacePZ}

// BlockInfo is the per-block-type registry entry. TexID carries one
// texture id per face direction, since top/side/bottom commonly
// differ (e.g. grass); a block with a uniform texture just repeats
// the same id six times.
type BlockInfo struct {
	IsTransparent bool
	TexID         [6]uint8
}

// Registry maps a block type to its transparency and per-face texture
// ids.
type Registry map[BlockType]BlockInfo

// DefaultRegistry is a basic terrain block set: air, stone, dirt,
// grass (distinct top/side/bottom textures), log (distinct end caps),
// and leaves.
var DefaultRegistry = Registry{
	Air:    {IsTransparent: true},
	Stone:  {IsTransparent: false, TexID: [6]uint8{1, 1, 1, 1, 1, 1}},
	Dirt:   {IsTransparent: false, TexID: [6]uint8{2, 2, 2, 2, 2, 2}},
	Grass:  {IsTransparent: false, TexID: [6]uint8{3, 3, 2, 4, 3, 3}}, // sides=3, bottom=dirt(2), top=4
	Log:    {IsTransparent: false, TexID: [6]uint8{5, 5, 6, 6, 5, 5}}, // sides=5, end caps=6
	Leaves: {IsTransparent: false, TexID: [6]uint8{7, 7, 7, 7, 7, 7}},
}

func (r Registry) info(bt BlockType) BlockInfo {
	if i, ok := r[bt]; ok {
		return i
	}
	return BlockInfo{}
}
