// SPDX-License-Identifier: GPL-2.0-or-later

// Package gputest provides a gpu.GL that records calls instead of drawing.
package gputest

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"goglobe/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded GL invocation.
type Call struct {
	Op       string
	Location int32
	Args     []interface{}
	// Program and Attributes are set on draw calls: the program in use and
	// the buffer ID bound at each enabled attribute location.
	Program    gpu.ProgramID
	Attributes map[int32]uint64
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(parts, ",") + ")"
}

// Recorder implements gpu.GL. Programs passed to CompileProgram get their
// variables from Declare; everything else in the source is ignored.
// Attribute bindings are kept per program like gpu.GL requires.
type Recorder struct {
	mu       sync.Mutex
	calls    []Call
	next     uint32
	declared map[string][]gpu.Variable
	textures map[gpu.TextureID]string
	current  gpu.ProgramID
	bound    map[gpu.ProgramID]map[int32]uint64
	texture  gpu.TextureID
	// CompileErr, when set, is returned by every CompileProgram.
	CompileErr error
}

func New() *Recorder {
	return &Recorder{
		declared: make(map[string][]gpu.Variable),
		textures: make(map[gpu.TextureID]string),
		bound:    make(map[gpu.ProgramID]map[int32]uint64),
	}
}

// Declare sets the variables a program named name will report once compiled.
// Locations are assigned in order starting at 0.
func (r *Recorder) Declare(name string, uniforms []string, attributes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var vars []gpu.Variable
	for i, u := range uniforms {
		vars = append(vars, gpu.Variable{Name: u, Kind: gpu.Uniform, Location: int32(i), Type: gpu.TypeUnknown})
	}
	for i, a := range attributes {
		vars = append(vars, gpu.Variable{Name: a, Kind: gpu.Attribute, Location: int32(i), Type: gpu.TypeUnknown})
	}
	r.declared[name] = vars
}

func (r *Recorder) record(op string, loc int32, args ...interface{}) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Op: op, Location: loc, Args: args})
	r.mu.Unlock()
}

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Ops returns the operation names recorded so far.
func (r *Recorder) Ops() []string {
	calls := r.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how often op was recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Find returns the recorded calls for op.
func (r *Recorder) Find(op string) []Call {
	var res []Call
	for _, c := range r.Calls() {
		if c.Op == op {
			res = append(res, c)
		}
	}
	return res
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// AttributeBuffer returns the ID of the buffer bound at loc for the program
// in use.
func (r *Recorder) AttributeBuffer(loc int32) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.bound[r.current][loc]
	return id, ok
}

// BoundTexture returns the texture last bound to unit 0.
func (r *Recorder) BoundTexture() gpu.TextureID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.texture
}

func (r *Recorder) recordDraw(op string, args ...interface{}) {
	r.mu.Lock()
	attrs := make(map[int32]uint64, len(r.bound[r.current]))
	for loc, id := range r.bound[r.current] {
		attrs[loc] = id
	}
	r.calls = append(r.calls, Call{Op: op, Location: -1, Args: args, Program: r.current, Attributes: attrs})
	r.mu.Unlock()
}

// LiveTextures returns the number of uploaded and not yet deleted textures.
func (r *Recorder) LiveTextures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.textures)
}

func (r *Recorder) ClearScreen(c gpu.Color) { r.record("ClearScreen", -1, c) }
func (r *Recorder) Viewport(w, h int)       { r.record("Viewport", -1, w, h) }
func (r *Recorder) EnableDepthTest()        { r.record("EnableDepthTest", -1) }
func (r *Recorder) DisableDepthTest()       { r.record("DisableDepthTest", -1) }
func (r *Recorder) EnableCullFace(f gpu.CullFace) {
	r.record("EnableCullFace", -1, f)
}
func (r *Recorder) DisableCullFace()    { r.record("DisableCullFace", -1) }
func (r *Recorder) LineWidth(w float32) { r.record("LineWidth", -1, w) }

func (r *Recorder) CompileProgram(src gpu.ShaderSource) (gpu.ProgramID, []gpu.Variable, error) {
	r.record("CompileProgram", -1, src.Name)
	if r.CompileErr != nil {
		return 0, nil, r.CompileErr
	}
	r.mu.Lock()
	r.next++
	id := gpu.ProgramID(r.next)
	vars := append([]gpu.Variable(nil), r.declared[src.Name]...)
	r.mu.Unlock()
	return id, vars, nil
}

func (r *Recorder) DeleteProgram(id gpu.ProgramID) {
	r.mu.Lock()
	delete(r.bound, id)
	if r.current == id {
		r.current = 0
	}
	r.mu.Unlock()
	r.record("DeleteProgram", -1, id)
}

func (r *Recorder) UseProgram(id gpu.ProgramID) {
	r.mu.Lock()
	r.current = id
	r.mu.Unlock()
	r.record("UseProgram", -1, id)
}

func (r *Recorder) UniformBool(loc int32, b bool)     { r.record("UniformBool", loc, b) }
func (r *Recorder) UniformFloat(loc int32, f float32) { r.record("UniformFloat", loc, f) }
func (r *Recorder) UniformVec2(loc int32, v mgl32.Vec2) {
	r.record("UniformVec2", loc, v)
}
func (r *Recorder) UniformVec4(loc int32, v mgl32.Vec4) {
	r.record("UniformVec4", loc, v)
}
func (r *Recorder) UniformMatrix4(loc int32, m mgl32.Mat4) {
	r.record("UniformMatrix4", loc, m)
}

func (r *Recorder) VertexAttribute(loc int32, buf *gpu.FloatBuffer, size, index int, normalized bool, stride int) {
	r.mu.Lock()
	attrs, ok := r.bound[r.current]
	if !ok {
		attrs = make(map[int32]uint64)
		r.bound[r.current] = attrs
	}
	attrs[loc] = buf.ID()
	r.mu.Unlock()
	r.record("VertexAttribute", loc, buf.ID(), size, index, normalized, stride)
}

func (r *Recorder) DisableVertexAttribute(loc int32) {
	r.mu.Lock()
	delete(r.bound[r.current], loc)
	r.mu.Unlock()
	r.record("DisableVertexAttribute", loc)
}

func (r *Recorder) DrawArrays(mode gpu.Primitive, first, count int) {
	r.recordDraw("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gpu.Primitive, indices *gpu.ShortBuffer) {
	r.recordDraw("DrawElements", mode, indices.Size())
}

func (r *Recorder) UploadTexture(name string, img image.Image, mipmap bool) (gpu.TextureID, error) {
	r.mu.Lock()
	r.next++
	id := gpu.TextureID(r.next)
	r.textures[id] = name
	r.mu.Unlock()
	r.record("UploadTexture", -1, name, mipmap)
	return id, nil
}

func (r *Recorder) BindTexture(id gpu.TextureID) {
	r.mu.Lock()
	r.texture = id
	r.mu.Unlock()
	r.record("BindTexture", -1, id)
}

func (r *Recorder) DeleteTexture(id gpu.TextureID) {
	r.mu.Lock()
	delete(r.textures, id)
	r.mu.Unlock()
	r.record("DeleteTexture", -1, id)
}

var _ gpu.GL = (*Recorder)(nil)
