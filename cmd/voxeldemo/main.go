// voxeldemo - minimal end-to-end wiring: build one chunk,
// greedy-mesh it, and rasterize the result into an ebiten window
// every frame, rotating the camera around the origin.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/kestrelgfx/vxraster/attachment"
	"github.com/kestrelgfx/vxraster/internal/sched"
	"github.com/kestrelgfx/vxraster/mesh"
	"github.com/kestrelgfx/vxraster/raster"
	"github.com/kestrelgfx/vxraster/sink/ebitensink"
)

const (
	screenW, screenH = 960, 540
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "voxeldemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	world := buildWorld()

	var meshes []*mesh.Mesh
	for _, c := range world {
		m := &mesh.Mesh{}
		mesh.Build(c, mesh.DefaultRegistry, m)
		meshes = append(meshes, m)
	}

	target := attachment.New(screenW, screenH, true, true)
	pool := sched.Get()
	win := ebitensink.New(screenW, screenH, "voxeldemo")

	go renderLoop(target, pool, win, meshes)

	return win.Run()
}

// buildWorld returns a single 16x16x16 chunk with a flat grass-over-
// dirt-over-stone terrain, for a recognizable default scene.
func buildWorld() []*mesh.Chunk {
	c := mesh.NewChunk(0, 0, 0)
	for x := 0; x < mesh.Width; x++ {
		for z := 0; z < mesh.Width; z++ {
			c.Set(x, 0, z, mesh.Stone)
			c.Set(x, 1, z, mesh.Stone)
			c.Set(x, 2, z, mesh.Dirt)
			c.Set(x, 3, z, mesh.Grass)
		}
	}
	c.Set(8, 4, 8, mesh.Log)
	c.Set(8, 5, 8, mesh.Log)
	c.Set(8, 6, 8, mesh.Leaves)
	return []*mesh.Chunk{c}
}

func renderLoop(target *attachment.Attachment, pool *sched.Pool, win *ebitensink.Sink, meshes []*mesh.Mesh) {
	const tickRate = 60
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	angle := float32(0)
	for range ticker.C {
		angle += 0.01

		mvp := viewProjection(angle)

		target.Clear(attachment.ClearConfig{
			ClearColor: [4]byte{40, 30, 20, 255},
			ClearDepth: 1,
		})

		for _, m := range meshes {
			drawMesh(target, pool, mvp, m)
		}

		if err := win.Present(target); err != nil {
			fmt.Fprintf(os.Stderr, "voxeldemo: present: %v\n", err)
		}
	}
}

func viewProjection(angle float32) raster.Mat4 {
	radius := float32(28)
	eye := [3]float32{
		radius * float32(math.Sin(float64(angle))),
		20,
		radius * float32(math.Cos(float64(angle))),
	}
	view := raster.LookAt(eye, [3]float32{8, 2, 8}, [3]float32{0, 1, 0})
	proj := raster.Frustum{
		FovYRadians: 60 * math.Pi / 180,
		Aspect:      float32(screenW) / float32(screenH),
		Near:        0.1,
		Far:         200,
	}.Perspective()
	return proj.Mul(view)
}

// drawMesh wires one mesh.Mesh's SoA buffers into the shader ABI and
// runs the parallel pipeline path.
func drawMesh(target *attachment.Attachment, pool *sched.Pool, mvp raster.Mat4, m *mesh.Mesh) {
	if len(m.Indices) == 0 {
		return
	}

	sunDir := raster.Vec4{X: 0.4, Y: 1, Z: 0.3}

	vs := raster.VertexShaderFunc{
		Varyings: 2, // [0]=normal, [1]=texcoord.xy in x,y + texid in z
		Fn: func(idx uint32, out []raster.Vec4) raster.Vec4 {
			vi := m.Indices[idx]
			p := m.Positions[vi]
			n := m.Normals[vi]
			uv := m.TexCoords[vi]
			tex := m.TexIDs[vi]

			world := raster.Vec4{X: p[0], Y: p[1], Z: p[2], W: 1}
			out[0] = raster.Vec4{X: n[0], Y: n[1], Z: n[2]}
			out[1] = raster.Vec4{X: uv[0], Y: uv[1], Z: float32(tex)}
			return mvp.MulVec4(world)
		},
	}

	fs := raster.FragmentShaderFunc{
		Varyings: 2,
		Fn: func(in []raster.Vec4, fragCoord raster.Vec4) raster.Vec4 {
			n := in[0]
			diffuse := n.X*sunDir.X + n.Y*sunDir.Y + n.Z*sunDir.Z
			if diffuse < 0.15 {
				diffuse = 0.15
			}
			return raster.Vec4{X: diffuse, Y: diffuse, Z: diffuse, W: 1}
		},
	}

	raster.RenderParallel(raster.Config{
		Attachment:       target,
		VertexShader:     vs,
		FragmentShader:   fs,
		VertexCount:      len(m.Indices),
		VertexProcessing: raster.TriangleList,
		Culling:          raster.CullCW,
		PolygonMode:      raster.PolygonFill,
		DepthCompare:     raster.DepthLess,
	}, pool)
}
