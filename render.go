package liquid

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// compositor draws the source image warped by the displacement field.
//
// The warp runs in image space at a working size: the source's own size, or
// smaller when the surface shows it at less than one texel per pixel. The
// field (surface space) is resampled into that space through the cover
// mapping, the render program offsets each texel lookup by the field, and
// the warped image is drawn onto the surface through the inverse mapping,
// which crops the longer axis. The composition equals sampling the image at
// cover(uv - d*Strength) for every surface uv.
type compositor struct {
	scaled   *RenderTexture // source at working size, when smaller than native
	scaledOf *ebiten.Image  // source the scaled copy was made from
	imgField *RenderTexture // field resampled into image space
	warped   *RenderTexture // source image after displacement
	cover    Cover

	uniforms   map[string]any
	coverScale [2]float32 // persistent buffer referenced by uniforms
	shaderOp   ebiten.DrawRectShaderOptions
	imgOp      ebiten.DrawImageOptions
}

// newCompositor returns a compositor for the given strength. Negative
// strength disables displacement.
func newCompositor(strength float64) *compositor {
	c := &compositor{
		uniforms: make(map[string]any, 2),
	}
	c.uniforms["Strength"] = float32(max(strength, 0))
	c.uniforms["CoverScale"] = c.coverScale[:]
	c.shaderOp.Blend = ebiten.BlendCopy
	return c
}

// workingSize is the image-space resolution the warp runs at: the image's
// own size, reduced so the visible crop has no more texels than the surface
// has pixels.
func workingSize(surfaceW, surfaceH, imageW, imageH int, cv Cover) (int, int) {
	kx := float64(surfaceW) / (cv.Scale.X * float64(imageW))
	ky := float64(surfaceH) / (cv.Scale.Y * float64(imageH))
	k := max(kx, ky)
	if k >= 1 {
		return imageW, imageH
	}
	w := Clamp(int(math.Ceil(float64(imageW)*k)), 1, imageW)
	h := Clamp(int(math.Ceil(float64(imageH)*k)), 1, imageH)
	return w, h
}

// ensure sizes rt to w×h, allocating it on first use.
func ensure(rt *RenderTexture, w, h int) (*RenderTexture, bool) {
	if rt == nil {
		return NewRenderTexture(w, h), true
	}
	return rt, rt.Resize(w, h)
}

// source returns src at working size, reusing the scaled copy while neither
// the size nor the source changes.
func (c *compositor) source(src *ebiten.Image, w, h int) *ebiten.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	var resized bool
	c.scaled, resized = ensure(c.scaled, w, h)
	if resized || c.scaledOf != src {
		op := &c.imgOp
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
		op.Filter = ebiten.FilterLinear
		op.Blend = ebiten.BlendCopy
		c.scaled.image.DrawImage(src, op)
		c.scaledOf = src
	}
	return c.scaled.image
}

// draw renders src, displaced by field, onto surface with the given opacity.
// surface must already hold the background.
func (c *compositor) draw(surface *RenderTexture, src, field *ebiten.Image, alpha float32) error {
	shader, err := renderProgram.get()
	if err != nil {
		return err
	}

	ib := src.Bounds()
	iw, ih := ib.Dx(), ib.Dy()
	sw, sh := float64(surface.w), float64(surface.h)
	if iw == 0 || ih == 0 || surface.w == 0 || surface.h == 0 {
		return nil
	}
	c.cover = CoverFit(sw, sh, float64(iw), float64(ih))
	cv := c.cover
	ww, wh := workingSize(surface.w, surface.h, iw, ih, cv)
	img := c.source(src, ww, wh)

	// 1. Field into image space. Texels outside the visible crop stay neutral.
	c.imgField, _ = ensure(c.imgField, ww, wh)
	fillNeutral(c.imgField.image)
	fb := field.Bounds()
	tl, br := cv.ToImage(Vec2{0, 0}), cv.ToImage(Vec2{1, 1})
	op := &c.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale((br.X-tl.X)*float64(ww)/float64(fb.Dx()), (br.Y-tl.Y)*float64(wh)/float64(fb.Dy()))
	op.GeoM.Translate(tl.X*float64(ww), tl.Y*float64(wh))
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendCopy
	c.imgField.image.DrawImage(field, op)

	// 2. Displace the image lookup.
	c.warped, _ = ensure(c.warped, ww, wh)
	c.coverScale[0], c.coverScale[1] = float32(cv.Scale.X), float32(cv.Scale.Y)
	c.shaderOp.Images[0] = img
	c.shaderOp.Images[1] = c.imgField.image
	c.shaderOp.Uniforms = c.uniforms
	c.warped.image.DrawRectShader(ww, wh, shader, &c.shaderOp)

	// 3. Cover-fit onto the surface.
	a, b := cv.ToSurface(Vec2{0, 0}), cv.ToSurface(Vec2{1, 1})
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale((b.X-a.X)*sw/float64(ww), (b.Y-a.Y)*sh/float64(wh))
	op.GeoM.Translate(a.X*sw, a.Y*sh)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendSourceOver
	surface.image.DrawImage(c.warped.image, op)
	return nil
}

// Dispose releases the scratch textures.
func (c *compositor) Dispose() {
	for _, rt := range []*RenderTexture{c.scaled, c.imgField, c.warped} {
		if rt != nil {
			rt.Dispose()
		}
	}
	c.scaled, c.imgField, c.warped = nil, nil, nil
	c.scaledOf = nil
}
