package liquid

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is a persistent offscreen canvas owned by the effect. Unlike
// Ebitengine's managed images it is created unmanaged: its contents are
// rewritten every frame, so Ebitengine never needs to restore them.
type RenderTexture struct {
	image *ebiten.Image
	w, h  int
}

// NewRenderTexture creates an offscreen canvas of the given size.
func NewRenderTexture(w, h int) *RenderTexture {
	return &RenderTexture{
		image: newOffscreen(w, h),
		w:     w,
		h:     h,
	}
}

func newOffscreen(w, h int) *ebiten.Image {
	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Fill fills the entire texture with the given color.
func (rt *RenderTexture) Fill(c Color) {
	rt.image.Fill(c.toRGBA())
}

// Resize replaces the image when the requested size differs. Reports whether
// a new image was allocated; its contents are undefined until drawn.
func (rt *RenderTexture) Resize(width, height int) bool {
	if rt.image != nil && rt.w == width && rt.h == height {
		return false
	}
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = newOffscreen(width, height)
	rt.w = width
	rt.h = height
	return true
}

// Dispose deallocates the underlying image. The RenderTexture should not be
// used after calling Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}

// --- Ping-pong pair ---

// pingPong holds the two physical field buffers. Read is the field produced
// by the last step; Write is where the next step goes. Swap exchanges roles,
// so a pass never samples the buffer it renders into.
type pingPong struct {
	bufs [2]*RenderTexture
	cur  int
}

// newPingPong allocates both buffers and fills them with the zero field.
func newPingPong(w, h int) *pingPong {
	p := &pingPong{}
	for i := range p.bufs {
		p.bufs[i] = NewRenderTexture(w, h)
		fillNeutral(p.bufs[i].image)
	}
	return p
}

// Read returns the current field.
func (p *pingPong) Read() *ebiten.Image {
	return p.bufs[p.cur].image
}

// Write returns the buffer the next step renders into.
func (p *pingPong) Write() *ebiten.Image {
	return p.bufs[1-p.cur].image
}

// Swap makes the written buffer current.
func (p *pingPong) Swap() {
	p.cur = 1 - p.cur
}

// Dispose releases both buffers.
func (p *pingPong) Dispose() {
	for _, b := range p.bufs {
		b.Dispose()
	}
}
