// SPDX-License-Identifier: GPL-2.0-or-later

package renderer

import (
	"slices"

	"goglobe/event"
	"goglobe/frame"
	"goglobe/mesh"
)

// MeshRenderer draws the meshes that touch the camera frustum, opaque ones
// first.
type MeshRenderer struct {
	meshes []mesh.Mesh
	culled int
	drawn  int
}

func NewMeshRenderer() *MeshRenderer {
	return &MeshRenderer{}
}

// Add hands m over to the renderer, it is closed with the renderer.
func (r *MeshRenderer) Add(m mesh.Mesh) {
	r.meshes = append(r.meshes, m)
}

// Remove closes and drops m.
func (r *MeshRenderer) Remove(m mesh.Mesh) {
	i := slices.Index(r.meshes, m)
	if i < 0 {
		return
	}
	r.meshes = slices.Delete(r.meshes, i, i+1)
	m.Close()
}

func (r *MeshRenderer) Clear() {
	for _, m := range r.meshes {
		m.Close()
	}
	r.meshes = nil
}

func (r *MeshRenderer) Len() int { return len(r.meshes) }

// Culled and Drawn count the meshes of the last frame.
func (r *MeshRenderer) Culled() int { return r.culled }
func (r *MeshRenderer) Drawn() int  { return r.drawn }

func (r *MeshRenderer) Initialize(ic *frame.InitContext) {}

func (r *MeshRenderer) IsReadyToRender(rc *frame.RenderContext) bool { return true }

func (r *MeshRenderer) Render(rc *frame.RenderContext) int {
	r.culled, r.drawn = 0, 0
	frustum := rc.Camera.Frustum()
	parent := rc.Camera.State()
	var transparent []mesh.Mesh
	for _, m := range r.meshes {
		if v := m.BoundingVolume(); v != nil && !v.TouchesFrustum(frustum) {
			r.culled++
			continue
		}
		if m.IsTransparent(rc) {
			transparent = append(transparent, m)
			continue
		}
		m.Render(rc, parent)
		r.drawn++
	}
	for _, m := range transparent {
		m.Render(rc, parent)
		r.drawn++
	}
	return FrameHint
}

func (r *MeshRenderer) OnTouchEvent(ec *frame.EventContext, e *event.TouchEvent) bool {
	return false
}

func (r *MeshRenderer) OnResizeViewportEvent(ec *frame.EventContext, width, height int) {}

func (r *MeshRenderer) Close() error {
	r.Clear()
	return nil
}

var _ Renderer = (*MeshRenderer)(nil)
