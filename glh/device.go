// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"image"
	"image/draw"
	"runtime"
	"sync"
	"unsafe"

	"goglobe/gpu"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"
)

// uploaded is a GL buffer mirroring a CPU side buffer version.
type uploaded struct {
	id      uint32
	version uint64
}

// GL is the OpenGL backed gpu.GL. GL objects of garbage collected vertex
// and index buffers are deleted on the main thread.
//
// Every program gets its own vertex array object, bound together with the
// program, so attribute bindings stay with the program that made them.
type GL struct {
	vaos map[gpu.ProgramID]uint32

	mu       sync.Mutex
	vertices map[uint64]*uploaded
	indices  map[uint64]*uploaded
}

// New loads the GL function pointers. A context must be current.
func New() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing OpenGL")
	}
	return &GL{
		vaos:     make(map[gpu.ProgramID]uint32),
		vertices: make(map[uint64]*uploaded),
		indices:  make(map[uint64]*uploaded),
	}, nil
}

// Version returns the GL version string of the current context.
func (g *GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (g *GL) ClearScreen(c gpu.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (g *GL) Viewport(w, h int)   { gl.Viewport(0, 0, int32(w), int32(h)) }
func (g *GL) EnableDepthTest()    { gl.Enable(gl.DEPTH_TEST) }
func (g *GL) DisableDepthTest()   { gl.Disable(gl.DEPTH_TEST) }
func (g *GL) DisableCullFace()    { gl.Disable(gl.CULL_FACE) }
func (g *GL) LineWidth(w float32) { gl.LineWidth(w) }

func (g *GL) EnableCullFace(f gpu.CullFace) {
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(cullFace(f))
}

func (g *GL) CompileProgram(src gpu.ShaderSource) (gpu.ProgramID, []gpu.Variable, error) {
	prog, err := linkProgram(src)
	if err != nil {
		return 0, nil, err
	}
	vars := append(variables(prog, gpu.Uniform), variables(prog, gpu.Attribute)...)
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	g.vaos[gpu.ProgramID(prog)] = vao
	return gpu.ProgramID(prog), vars, nil
}

func (g *GL) DeleteProgram(id gpu.ProgramID) {
	if vao, ok := g.vaos[id]; ok {
		gl.DeleteVertexArrays(1, &vao)
		delete(g.vaos, id)
	}
	gl.DeleteProgram(uint32(id))
}

func (g *GL) UseProgram(id gpu.ProgramID) {
	gl.UseProgram(uint32(id))
	gl.BindVertexArray(g.vaos[id])
}

func (g *GL) UniformBool(loc int32, b bool) {
	var v int32
	if b {
		v = 1
	}
	gl.Uniform1i(loc, v)
}

func (g *GL) UniformFloat(loc int32, f float32)      { gl.Uniform1f(loc, f) }
func (g *GL) UniformVec2(loc int32, v mgl32.Vec2)    { gl.Uniform2f(loc, v[0], v[1]) }
func (g *GL) UniformVec4(loc int32, v mgl32.Vec4)    { gl.Uniform4f(loc, v[0], v[1], v[2], v[3]) }
func (g *GL) UniformMatrix4(loc int32, m mgl32.Mat4) { gl.UniformMatrix4fv(loc, 1, false, &m[0]) }

func deleteBuffer(id uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &id)
	})
}

// upload makes sure the GL buffer for a CPU buffer holds its current version
// and leaves it bound to target.
func (g *GL) upload(cache map[uint64]*uploaded, target uint32, key, version uint64, size int, data unsafe.Pointer) *uploaded {
	g.mu.Lock()
	u, ok := cache[key]
	if !ok {
		u = &uploaded{version: version + 1}
		gl.GenBuffers(1, &u.id)
		cache[key] = u
	}
	g.mu.Unlock()
	gl.BindBuffer(target, u.id)
	if u.version != version {
		gl.BufferData(target, size, data, gl.STATIC_DRAW)
		u.version = version
	}
	return u
}

func (g *GL) forget(cache map[uint64]*uploaded, key uint64) {
	g.mu.Lock()
	u, ok := cache[key]
	delete(cache, key)
	g.mu.Unlock()
	if ok {
		deleteBuffer(u.id)
	}
}

// VertexAttribute binds buf to loc. size floats per vertex starting at float
// index, stride in floats, 0 for tightly packed.
func (g *GL) VertexAttribute(loc int32, buf *gpu.FloatBuffer, size, index int, normalized bool, stride int) {
	if loc < 0 {
		return
	}
	key := buf.ID()
	if _, ok := g.cached(g.vertices, key); !ok {
		runtime.AddCleanup(buf, func(k uint64) { g.forget(g.vertices, k) }, key)
	}
	data := buf.Data()
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	g.upload(g.vertices, gl.ARRAY_BUFFER, key, buf.Version(), 4*len(data), ptr)
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, normalized, int32(4*stride), uintptr(4*index))
}

func (g *GL) cached(cache map[uint64]*uploaded, key uint64) (*uploaded, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := cache[key]
	return u, ok
}

func (g *GL) DisableVertexAttribute(loc int32) {
	if loc >= 0 {
		gl.DisableVertexAttribArray(uint32(loc))
	}
}

func (g *GL) DrawArrays(mode gpu.Primitive, first, count int) {
	gl.DrawArrays(primitive(mode), int32(first), int32(count))
}

func (g *GL) DrawElements(mode gpu.Primitive, indices *gpu.ShortBuffer) {
	key := indices.ID()
	if _, ok := g.cached(g.indices, key); !ok {
		runtime.AddCleanup(indices, func(k uint64) { g.forget(g.indices, k) }, key)
	}
	data := indices.Data()
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	g.upload(g.indices, gl.ELEMENT_ARRAY_BUFFER, key, indices.Version(), 2*len(data), ptr)
	gl.DrawElementsWithOffset(primitive(mode), int32(len(data)), gl.UNSIGNED_SHORT, 0)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func (g *GL) UploadTexture(name string, img image.Image, mipmap bool) (gpu.TextureID, error) {
	rgba := toRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, errors.Errorf("texture %q is empty", name)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if mipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, errors.Errorf("uploading texture %q: GL error 0x%x", name, e)
	}
	return gpu.TextureID(id), nil
}

func (g *GL) BindTexture(id gpu.TextureID) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

func (g *GL) DeleteTexture(id gpu.TextureID) {
	t := uint32(id)
	gl.DeleteTextures(1, &t)
}

var _ gpu.GL = (*GL)(nil)
