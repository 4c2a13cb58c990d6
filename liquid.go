package liquid

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is the zero Color.
var ColorTransparent = Color{}

// Vec2 is a 2D vector used for positions, offsets, scales, and deltas.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Normalize maps (x, y) into r's unit square: (0,0) is the top-left corner
// and (1,1) the bottom-right. The result is undefined for an empty rect.
func (r Rect) Normalize(x, y float64) Vec2 {
	return Vec2{
		X: (x - r.X) / r.Width,
		Y: (y - r.Y) / r.Height,
	}
}

// Backend selects where the displacement field is simulated.
type Backend uint8

const (
	BackendGPU Backend = iota // Kage fluid program, ping-pong render targets
	BackendCPU                // float32 reference field, uploaded every frame
)

// String returns the flag spelling of the backend.
func (b Backend) String() string {
	switch b {
	case BackendGPU:
		return "gpu"
	case BackendCPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// ParseBackend converts "gpu" or "cpu" to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "gpu", "":
		return BackendGPU, nil
	case "cpu":
		return BackendCPU, nil
	}
	return 0, errors.New("liquid: unknown backend " + s)
}

// Sentinel errors.
var (
	// ErrNoSource is returned by New when Config.Source is empty.
	ErrNoSource = errors.New("liquid: no source image")
	// ErrClosed is returned by operations on a closed Effect.
	ErrClosed = errors.New("liquid: effect closed")
)

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// neutralPixel is the RGBA8 encoding of a zero displacement vector.
var neutralPixel = colorRGBA{R: 128, G: 128, B: 0, A: 255}

// fillNeutral resets img to the zero displacement field.
func fillNeutral(img *ebiten.Image) {
	img.Fill(neutralPixel)
}
