package liquid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// Both programs use //kage:unit pixels and share Ebitengine's full-rect vertex
// stage. Field texels store each signed component as 128 + v*127 in R and G
// with alpha 1 (see Field.Encode), so zero is exactly representable and
// premultiplication leaves texels untouched.

// fluidShaderSrc advances the displacement field by one step. Images[0] is
// the previous field; the destination is the other buffer of the pair. The
// settle step mirrors settle in field.go: without it, decay below one storage
// step rounds back to the same byte and the field never comes to rest.
const fluidShaderSrc = `//kage:unit pixels
package main

var Mouse vec2
var MouseDelta vec2
var Active float
var Radius float
var Diffusion float
var Gain float
var Decay float

const encodeScale = 127.0
const restStep = 0.6 / 127.0

// fieldAt decodes the vector at pos, clamping to the edge texels.
func fieldAt(pos vec2) vec2 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	pos = clamp(pos, origin+vec2(0.5), origin+size-vec2(0.5))
	return (imageSrc0At(pos).rg*255 - vec2(128)) / encodeScale
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := fieldAt(src)
	l := fieldAt(src - vec2(1, 0))
	r := fieldAt(src + vec2(1, 0))
	t := fieldAt(src - vec2(0, 1))
	b := fieldAt(src + vec2(0, 1))

	// Diffuse toward the neighbour average.
	c += ((l+r+t+b)*0.25 - c) * Diffusion

	// Inject pointer velocity with a smooth radial falloff.
	uv := (src - imageSrc0Origin()) / imageSrc0Size()
	infl := (1 - smoothstep(0, Radius, length(uv-Mouse))) * Active
	c += MouseDelta * infl * Gain

	c *= Decay
	c -= sign(c) * min(abs(c), vec2(restStep))
	c = clamp(c, vec2(-1), vec2(1))
	return vec4((c*encodeScale+vec2(128))/255, 0, 1)
}
`

// renderShaderSrc warps the source image in image space. Images[0] is the
// source image at working size, Images[1] the displacement field resampled
// into the same space. The displacement is in surface units, so it is scaled
// by CoverScale before it offsets the image lookup. The source is sampled
// bilinearly so sub-texel displacements move smoothly.
const renderShaderSrc = `//kage:unit pixels
package main

var Strength float
var CoverScale vec2

func sampleLinear(uv vec2) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := uv*size - vec2(0.5)
	f := fract(p)
	p0 := clamp(floor(p)+vec2(0.5), vec2(0.5), size-vec2(0.5)) + origin
	p1 := clamp(floor(p)+vec2(1.5), vec2(0.5), size-vec2(0.5)) + origin
	c00 := imageSrc0At(p0)
	c10 := imageSrc0At(vec2(p1.x, p0.y))
	c01 := imageSrc0At(vec2(p0.x, p1.y))
	c11 := imageSrc0At(p1)
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()

	d := (imageSrc1At(src-origin+imageSrc1Origin()).rg*255 - vec2(128)) / 127

	// Subtract so the image is pushed along the pointer's motion.
	uv := (src - origin) / size
	uv = clamp(uv-d*Strength*CoverScale, vec2(0), vec2(1))
	return sampleLinear(uv)
}
`

// --- Lazy shader compilation (single game goroutine, no sync.Once) ---

type lazyShader struct {
	name string
	src  string
	s    *ebiten.Shader
	err  error
}

var (
	fluidProgram  = &lazyShader{name: "fluid update", src: fluidShaderSrc}
	renderProgram = &lazyShader{name: "render", src: renderShaderSrc}
)

// get compiles the shader on first use. A failed compile is remembered so the
// effect degrades to drawing nothing instead of retrying every frame.
func (l *lazyShader) get() (*ebiten.Shader, error) {
	if l.s == nil && l.err == nil {
		s, err := ebiten.NewShader([]byte(l.src))
		if err != nil {
			l.err = fmt.Errorf("compile %s shader: %w", l.name, err)
		} else {
			l.s = s
		}
	}
	return l.s, l.err
}
