package raster

import (
	"fmt"

	"github.com/kestrelgfx/vxraster/attachment"
	"github.com/kestrelgfx/vxraster/internal/sched"
)

// Config is the render configuration for one draw call.
type Config struct {
	Attachment *attachment.Attachment

	VertexShader   VertexShader
	FragmentShader FragmentShader

	VertexCount      int
	VertexProcessing VertexProcessing
	Culling          CullMode
	PolygonMode      PolygonMode
	DepthCompare     DepthCompare
}

func (c Config) validate() {
	if c.VertexShader.VaryingCount() != c.FragmentShader.VaryingCount() {
		panic(fmt.Sprintf("raster: vertex shader declares %d varyings, fragment shader declares %d",
			c.VertexShader.VaryingCount(), c.FragmentShader.VaryingCount()))
	}
	if c.Attachment == nil {
		panic("raster: render config has no attachment")
	}
}

// Render runs the serial pipeline path: invoke the vertex shader per
// index, clip each primitive, rasterize every sub-triangle
// immediately.
func Render(cfg Config) {
	cfg.validate()
	rcfg := rasterConfig{
		attachment: cfg.Attachment,
		culling:    cfg.Culling,
		polygon:    cfg.PolygonMode,
		depthCmp:   cfg.DepthCompare,
		fs:         cfg.FragmentShader,
	}
	nvarying := cfg.VertexShader.VaryingCount()

	emit := func(tri [3]clipVertex) {
		subs := clipTriangle(tri, make([][3]clipVertex, 0, maxSubTriangles))
		for _, sub := range subs {
			pv := [3]preparedVertex{
				prepareVertex(sub[0]),
				prepareVertex(sub[1]),
				prepareVertex(sub[2]),
			}
			rasterizeTriangle(rcfg, pv)
		}
	}

	shadeVertex := func(idx uint32) clipVertex {
		varyings := make([]Vec4, nvarying)
		pos := cfg.VertexShader.Invoke(idx, varyings)
		return clipVertex{pos: pos, varyings: varyings}
	}

	switch cfg.VertexProcessing {
	case TriangleList:
		for i := 0; i+2 < cfg.VertexCount; i += 3 {
			tri := [3]clipVertex{
				shadeVertex(uint32(i)),
				shadeVertex(uint32(i + 1)),
				shadeVertex(uint32(i + 2)),
			}
			emit(tri)
		}
	case TriangleStrip:
		if cfg.VertexCount < 3 {
			return
		}
		v0 := shadeVertex(0)
		v1 := shadeVertex(1)
		for i := 2; i < cfg.VertexCount; i++ {
			v2 := shadeVertex(uint32(i))
			tri := [3]clipVertex{v0, v1, v2}
			if i%2 == 1 {
				// Keep winding consistent across the strip by
				// swapping every other triangle (the standard
				// triangle-strip fix-up).
				tri = [3]clipVertex{v0, v2, v1}
			}
			emit(tri)
			v0, v1 = v1, v2
		}
	}
}

// batchSize is the number of triangles processed by one parallel task.
const batchSize = 32

type batchResult struct {
	tris []([3]clipVertex)
}

// RenderParallel runs the parallel pipeline path: batches of
// primitives run vertex-shading + clipping concurrently across the
// thread pool, then every batch's sub-triangles rasterize serially in
// batch order (depth/color writes are otherwise unguarded).
func RenderParallel(cfg Config, pool *sched.Pool) {
	cfg.validate()
	if pool == nil {
		pool = sched.Get()
	}

	triCount := 0
	switch cfg.VertexProcessing {
	case TriangleList:
		triCount = cfg.VertexCount / 3
	case TriangleStrip:
		if cfg.VertexCount >= 3 {
			triCount = cfg.VertexCount - 2
		}
	}
	if triCount == 0 {
		return
	}

	numBatches := (triCount + batchSize - 1) / batchSize
	results := make([]batchResult, numBatches)

	wc := sched.NewWaitCounter(int64(numBatches))

	pool.Lock()
	for b := 0; b < numBatches; b++ {
		b := b
		pool.PushTask(func(data any) {
			runBatch(cfg, b, &results[b])
			wc.Decrement(1)
		}, nil)
	}
	pool.Unlock()

	wc.Wait()

	rcfg := rasterConfig{
		attachment: cfg.Attachment,
		culling:    cfg.Culling,
		polygon:    cfg.PolygonMode,
		depthCmp:   cfg.DepthCompare,
		fs:         cfg.FragmentShader,
	}
	for b := 0; b < numBatches; b++ {
		for _, sub := range results[b].tris {
			pv := [3]preparedVertex{
				prepareVertex(sub[0]),
				prepareVertex(sub[1]),
				prepareVertex(sub[2]),
			}
			rasterizeTriangle(rcfg, pv)
		}
	}
}

func runBatch(cfg Config, batchIdx int, out *batchResult) {
	nvarying := cfg.VertexShader.VaryingCount()
	shadeVertex := func(idx uint32) clipVertex {
		varyings := make([]Vec4, nvarying)
		pos := cfg.VertexShader.Invoke(idx, varyings)
		return clipVertex{pos: pos, varyings: varyings}
	}

	firstTri := batchIdx * batchSize
	lastTri := firstTri + batchSize

	switch cfg.VertexProcessing {
	case TriangleList:
		maxTri := cfg.VertexCount / 3
		if lastTri > maxTri {
			lastTri = maxTri
		}
		buf := make([][3]clipVertex, 0, (lastTri-firstTri)*maxSubTriangles)
		for t := firstTri; t < lastTri; t++ {
			i := t * 3
			tri := [3]clipVertex{
				shadeVertex(uint32(i)),
				shadeVertex(uint32(i + 1)),
				shadeVertex(uint32(i + 2)),
			}
			buf = clipTriangle(tri, buf)
		}
		out.tris = buf
	case TriangleStrip:
		maxTri := cfg.VertexCount - 2
		if maxTri < 0 {
			maxTri = 0
		}
		if lastTri > maxTri {
			lastTri = maxTri
		}
		buf := make([][3]clipVertex, 0, (lastTri-firstTri)*maxSubTriangles)
		for t := firstTri; t < lastTri; t++ {
			i := t + 2
			v0 := shadeVertex(uint32(t))
			v1 := shadeVertex(uint32(t + 1))
			v2 := shadeVertex(uint32(i))
			tri := [3]clipVertex{v0, v1, v2}
			if t%2 == 1 {
				tri = [3]clipVertex{v0, v2, v1}
			}
			buf = clipTriangle(tri, buf)
		}
		out.tris = buf
	}
}
