package liquid

// Cover is an affine map from surface UV space into image UV space that fills
// the surface without distortion, cropping the longer axis (CSS
// object-fit: cover). An image UV is surfaceUV*Scale + Offset.
type Cover struct {
	Scale  Vec2
	Offset Vec2
}

// identityCover maps surface UVs to image UVs unchanged.
var identityCover = Cover{Scale: Vec2{1, 1}}

// CoverFit computes the cover mapping for an image of imageW×imageH shown on a
// surface of surfaceW×surfaceH. Non-positive sizes yield the identity.
func CoverFit(surfaceW, surfaceH, imageW, imageH float64) Cover {
	if surfaceW <= 0 || surfaceH <= 0 || imageW <= 0 || imageH <= 0 {
		return identityCover
	}
	imageAspect := imageW / imageH
	surfaceAspect := surfaceW / surfaceH

	c := identityCover
	if surfaceAspect > imageAspect {
		c.Scale.Y = imageAspect / surfaceAspect
		c.Offset.Y = (1 - c.Scale.Y) * 0.5
	} else {
		c.Scale.X = surfaceAspect / imageAspect
		c.Offset.X = (1 - c.Scale.X) * 0.5
	}
	return c
}

// ToImage maps a surface UV into image UV space.
func (c Cover) ToImage(uv Vec2) Vec2 {
	return Vec2{
		X: uv.X*c.Scale.X + c.Offset.X,
		Y: uv.Y*c.Scale.Y + c.Offset.Y,
	}
}

// ToSurface maps an image UV back into surface UV space.
func (c Cover) ToSurface(uv Vec2) Vec2 {
	return Vec2{
		X: (uv.X - c.Offset.X) / c.Scale.X,
		Y: (uv.Y - c.Offset.Y) / c.Scale.Y,
	}
}
