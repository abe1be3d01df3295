// SPDX-License-Identifier: GPL-2.0-or-later
package texture

import (
	"image"
	"sync"

	"goglobe/conlog"
	"goglobe/gpu"

	"github.com/pkg/errors"
)

type Pref uint32

const (
	PrefMipMap Pref = 1 << iota
	PrefNone   Pref = 0
)

// Texture is a GPU texture shared by name.
type Texture struct {
	id     gpu.TextureID
	name   string
	Width  int
	Height int
	flags  Pref
	refs   int
}

func (t *Texture) ID() gpu.TextureID {
	return t.id
}

func (t *Texture) Name() string {
	return t.name
}

func (t *Texture) Flags(f Pref) bool {
	return t.flags&f != 0
}

func (t *Texture) Texels() int {
	if t.Flags(PrefMipMap) {
		return t.Width * t.Height * 4 / 3
	}
	return t.Width * t.Height
}

// Handler uploads textures once and hands out references to them. A texture
// is deleted from the GPU when its last reference is released.
type Handler struct {
	gl       gpu.GL
	log      conlog.Logger
	mu       sync.Mutex
	textures map[string]*Texture
	closed   bool
}

func NewHandler(gl gpu.GL, log conlog.Logger) *Handler {
	if log == nil {
		log = conlog.Nop()
	}
	return &Handler{
		gl:       gl,
		log:      log,
		textures: make(map[string]*Texture),
	}
}

// Get returns the texture called name, uploading img if it is not known yet.
// img may be nil when the texture is expected to be resident.
func (h *Handler) Get(name string, img image.Image, flags Pref) (*Texture, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, errors.Errorf("texture handler closed, can't get %q", name)
	}
	if t, ok := h.textures[name]; ok {
		t.refs++
		return t, nil
	}
	if img == nil {
		return nil, errors.Errorf("texture %q is not loaded", name)
	}
	id, err := h.gl.UploadTexture(name, img, flags&PrefMipMap != 0)
	if err != nil {
		return nil, errors.Wrapf(err, "uploading texture %q", name)
	}
	b := img.Bounds()
	t := &Texture{
		id:     id,
		name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		flags:  flags,
		refs:   1,
	}
	h.textures[name] = t
	return t, nil
}

// Release drops one reference to t.
func (h *Handler) Release(t *Texture) {
	if t == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	cur, ok := h.textures[t.name]
	if !ok || cur != t {
		h.log.Warning("Releasing unknown texture %s", t.name)
		return
	}
	t.refs--
	if t.refs > 0 {
		return
	}
	delete(h.textures, t.name)
	h.gl.DeleteTexture(t.id)
}

// Len returns the number of resident textures.
func (h *Handler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.textures)
}

// Close deletes every resident texture regardless of outstanding references.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for name, t := range h.textures {
		h.gl.DeleteTexture(t.id)
		delete(h.textures, name)
	}
}
