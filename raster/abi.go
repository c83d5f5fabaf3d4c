package raster

// VertexShader is the vertex stage of the shader ABI. For input
// vertex index idx it must write a homogeneous clip-space position
// and VaryingCount() varying vectors into outVaryings.
//
// This is a function-pointer-plus-varying-count pair expressed as a
// capability interface: invoking a vertex shader is just calling
// Invoke, and the declared count lets the driver size its buffers up
// front without per-call reflection.
type VertexShader interface {
	VaryingCount() int
	Invoke(idx uint32, outVaryings []Vec4) (position Vec4)
}

// FragmentShader is the fragment stage of the shader ABI. inVaryings
// is read-only and perspective-correctly interpolated by the
// rasterizer; fragCoord is (x_ndc, y_ndc, z_ndc). The returned color
// is clamped to [0,1] on write-out by the rasterizer, not by the
// shader.
type FragmentShader interface {
	VaryingCount() int
	Invoke(inVaryings []Vec4, fragCoord Vec4) (color Vec4)
}

// VertexShaderFunc adapts a plain function to VertexShader, for
// callers who don't need to carry extra state across invocations
// beyond a closure.
type VertexShaderFunc struct {
	Varyings int
	Fn       func(idx uint32, outVaryings []Vec4) Vec4
}

func (f VertexShaderFunc) VaryingCount() int { return f.Varyings }
func (f VertexShaderFunc) Invoke(idx uint32, outVaryings []Vec4) Vec4 {
	return f.Fn(idx, outVaryings)
}

// FragmentShaderFunc adapts a plain function to FragmentShader.
type FragmentShaderFunc struct {
	Varyings int
	Fn       func(inVaryings []Vec4, fragCoord Vec4) Vec4
}

func (f FragmentShaderFunc) VaryingCount() int { return f.Varyings }
func (f FragmentShaderFunc) Invoke(inVaryings []Vec4, fragCoord Vec4) Vec4 {
	return f.Fn(inVaryings, fragCoord)
}

// CullMode selects which winding, if any, is rejected by the backface
// test.
type CullMode int

const (
	CullNone CullMode = iota
	CullCW
	CullCCW
)

// PolygonMode selects the per-pixel rasterization filter.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// VertexProcessing selects how the vertex index stream maps to
// triangles.
type VertexProcessing int

const (
	TriangleList VertexProcessing = iota
	TriangleStrip
)

// DepthCompare is the configured depth-test predicate. DepthNone
// means "write depth unconditionally, never discard."
type DepthCompare int

const (
	DepthNone DepthCompare = iota
	DepthAlways
	DepthNever
	DepthLess
	DepthLessEqual
	DepthGreater
	DepthGreaterEqual
	DepthEqual
	DepthNotEqual
)

// passes reports whether a fragment at newZ passes the test against
// the previously stored prevZ.
func (d DepthCompare) passes(prevZ, newZ float32) bool {
	switch d {
	case DepthNone, DepthAlways:
		return true
	case DepthNever:
		return false
	case DepthLess:
		return newZ < prevZ
	case DepthLessEqual:
		return newZ <= prevZ
	case DepthGreater:
		return newZ > prevZ
	case DepthGreaterEqual:
		return newZ >= prevZ
	case DepthEqual:
		return newZ == prevZ
	case DepthNotEqual:
		return newZ != prevZ
	default:
		return true
	}
}
