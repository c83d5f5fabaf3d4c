// Package shaderlua lets a vertex or fragment stage be written as a
// Lua script instead of Go, using one gopher-lua state per shader
// instance. This is an alternative shader ABI binding: the same
// VertexShader/FragmentShader interfaces the Go-native shaders
// satisfy, backed by a Lua call instead of a closure.
package shaderlua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/kestrelgfx/vxraster/raster"
)

// VertexShader runs a Lua function of the form:
//
//	function vertex(idx)
//	  -- return position x,y,z,w, then one x,y,z,w group per varying
//	  return px, py, pz, pw, v1x, v1y, v1z, v1w, ...
//	end
type VertexShader struct {
	L        *lua.LState
	Varyings int
	fn       lua.LValue
}

// NewVertexShader compiles src and binds its top-level "vertex"
// function. varyingCount must match the fragment shader it's paired
// with (Config.validate enforces this at render time).
func NewVertexShader(src string, varyingCount int) (*VertexShader, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("shaderlua: compiling vertex script: %w", err)
	}
	fn := L.GetGlobal("vertex")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("shaderlua: vertex script does not define a \"vertex\" function")
	}
	return &VertexShader{L: L, Varyings: varyingCount, fn: fn}, nil
}

func (s *VertexShader) VaryingCount() int { return s.Varyings }

func (s *VertexShader) Invoke(idx uint32, outVaryings []raster.Vec4) raster.Vec4 {
	L := s.L
	L.Push(s.fn)
	L.Push(lua.LNumber(idx))
	wantRets := 4 + 4*s.Varyings
	if err := L.PCall(1, wantRets, nil); err != nil {
		panic(fmt.Sprintf("shaderlua: vertex call failed: %v", err))
	}
	defer L.Pop(wantRets)

	base := L.GetTop() - wantRets
	pos := raster.Vec4{
		X: float32(L.ToNumber(base + 1)),
		Y: float32(L.ToNumber(base + 2)),
		Z: float32(L.ToNumber(base + 3)),
		W: float32(L.ToNumber(base + 4)),
	}
	for i := 0; i < s.Varyings; i++ {
		off := base + 4 + i*4
		outVaryings[i] = raster.Vec4{
			X: float32(L.ToNumber(off + 1)),
			Y: float32(L.ToNumber(off + 2)),
			Z: float32(L.ToNumber(off + 3)),
			W: float32(L.ToNumber(off + 4)),
		}
	}
	return pos
}

// Close releases the underlying Lua state.
func (s *VertexShader) Close() { s.L.Close() }

// FragmentShader runs a Lua function of the form:
//
//	function fragment(fx, fy, fz, v1x, v1y, v1z, v1w, ...)
//	  return r, g, b, a
//	end
type FragmentShader struct {
	L        *lua.LState
	Varyings int
	fn       lua.LValue
}

// NewFragmentShader compiles src and binds its top-level "fragment"
// function.
func NewFragmentShader(src string, varyingCount int) (*FragmentShader, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("shaderlua: compiling fragment script: %w", err)
	}
	fn := L.GetGlobal("fragment")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("shaderlua: fragment script does not define a \"fragment\" function")
	}
	return &FragmentShader{L: L, Varyings: varyingCount, fn: fn}, nil
}

func (s *FragmentShader) VaryingCount() int { return s.Varyings }

func (s *FragmentShader) Invoke(inVaryings []raster.Vec4, fragCoord raster.Vec4) raster.Vec4 {
	L := s.L
	L.Push(s.fn)
	L.Push(lua.LNumber(fragCoord.X))
	L.Push(lua.LNumber(fragCoord.Y))
	L.Push(lua.LNumber(fragCoord.Z))
	for _, v := range inVaryings {
		L.Push(lua.LNumber(v.X))
		L.Push(lua.LNumber(v.Y))
		L.Push(lua.LNumber(v.Z))
		L.Push(lua.LNumber(v.W))
	}
	nargs := 3 + 4*len(inVaryings)
	if err := L.PCall(nargs, 4, nil); err != nil {
		panic(fmt.Sprintf("shaderlua: fragment call failed: %v", err))
	}
	defer L.Pop(4)

	base := L.GetTop() - 4
	return raster.Vec4{
		X: float32(L.ToNumber(base + 1)),
		Y: float32(L.ToNumber(base + 2)),
		Z: float32(L.ToNumber(base + 3)),
		W: float32(L.ToNumber(base + 4)),
	}
}

// Close releases the underlying Lua state.
func (s *FragmentShader) Close() { s.L.Close() }
