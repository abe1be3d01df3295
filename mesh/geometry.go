// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"goglobe/bounds"
	"goglobe/frame"
	"goglobe/glstate"
	"goglobe/gpu"
	"goglobe/shaders"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// rawRenderer issues the actual draw once the state is in place.
type rawRenderer interface {
	rawRender(rc *frame.RenderContext, prog *glstate.Program, state *glstate.State, rt RenderType)
	computeVolume() bounds.Volume
}

// geometry carries everything the mesh kinds share.
type geometry struct {
	primitive gpu.Primitive
	center    mgl64.Vec3
	vertices  VertexSource
	lineWidth float32
	pointSize float32
	depthTest bool
	color     gpu.Color

	translation mgl32.Mat4
	raw         rawRenderer

	state  *glstate.State
	zState *glstate.State
	volume bounds.Volume
	// volumeComputations counts calls into computeVolume.
	volumeComputations int
	closed             bool
}

func newGeometry(p Params, raw rawRenderer) (geometry, error) {
	buf := p.Vertices.Buffer()
	if buf == nil || buf.Size() == 0 {
		return geometry{}, errors.New("mesh without vertices")
	}
	if buf.Size()%3 != 0 {
		return geometry{}, errors.Errorf("vertex buffer size %d is not a multiple of 3", buf.Size())
	}
	color := gpu.White
	if p.Color != nil {
		color = *p.Color
	}
	lw := p.LineWidth
	if lw <= 0 {
		lw = 1
	}
	ps := p.PointSize
	if ps <= 0 {
		ps = 1
	}
	return geometry{
		primitive:   p.Primitive,
		center:      p.Center,
		vertices:    p.Vertices,
		lineWidth:   lw,
		pointSize:   ps,
		depthTest:   p.DepthTest,
		color:       color,
		translation: mgl32.Translate3D(float32(p.Center[0]), float32(p.Center[1]), float32(p.Center[2])),
		raw:         raw,
	}, nil
}

func (g *geometry) VertexCount() int {
	return g.vertices.buf.Size() / 3
}

func (g *geometry) localVertex(i int) mgl64.Vec3 {
	b := g.vertices.buf
	return mgl64.Vec3{float64(b.Get(3 * i)), float64(b.Get(3*i + 1)), float64(b.Get(3*i + 2))}
}

func (g *geometry) Vertex(i int) mgl64.Vec3 {
	return g.localVertex(i).Add(g.center)
}

func (g *geometry) Center() mgl64.Vec3         { return g.center }
func (g *geometry) Primitive() gpu.Primitive   { return g.primitive }
func (g *geometry) Vertices() *gpu.FloatBuffer { return g.vertices.buf }

func (g *geometry) BoundingVolume() bounds.Volume {
	if g.volume == nil && !g.closed {
		g.volume = g.raw.computeVolume()
		g.volumeComputations++
	}
	return g.volume
}

// InvalidateBoundingVolume must be called after the vertices changed.
func (g *geometry) InvalidateBoundingVolume() {
	g.volume = nil
}

func (g *geometry) IsTransparent(rc *frame.RenderContext) bool {
	return g.color.IsTransparent()
}

func (g *geometry) ownState(parent *glstate.State) *glstate.State {
	if g.state != nil {
		return g.state
	}
	s := glstate.NewState(parent)
	s.SetDepthTest(g.depthTest)
	s.SetLineWidth(g.lineWidth)
	s.SetFloat(shaders.PointSize, g.pointSize)
	s.SetMatrix4(shaders.Model, g.translation)
	s.SetColor(shaders.FlatColor, g.color)
	s.SetAttribute(shaders.Position, g.vertices.buf, 3, 0, false, 0)
	g.state = s
	return s
}

func (g *geometry) Render(rc *frame.RenderContext, parent *glstate.State) {
	g.render(rc, parent, Regular)
}

func (g *geometry) ZRender(rc *frame.RenderContext, parent *glstate.State) {
	g.render(rc, parent, DepthOnly)
}

func (g *geometry) render(rc *frame.RenderContext, parent *glstate.State, rt RenderType) {
	if g.closed {
		return
	}
	prog := rc.Program(shaders.FlatColorMesh)
	if prog == nil {
		return
	}
	s := g.ownState(parent)
	if rt == DepthOnly {
		if g.zState == nil {
			g.zState = glstate.NewState(s)
			g.zState.SetDepthTest(true)
			g.zState.SetColor(shaders.FlatColor, gpu.Transparent)
		}
		s = g.zState
	}
	g.raw.rawRender(rc, prog, s, rt)
}

// Close releases an owned vertex buffer and drops the state layers and the
// cached volume.
func (g *geometry) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.vertices.owned {
		g.vertices.buf.Release()
	}
	g.state = nil
	g.zState = nil
	g.volume = nil
}

func (g *geometry) worldVertices() []mgl64.Vec3 {
	n := g.VertexCount()
	out := make([]mgl64.Vec3, n)
	for i := range out {
		out[i] = g.Vertex(i)
	}
	return out
}
