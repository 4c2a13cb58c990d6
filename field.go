package liquid

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerWorker keeps small grids on a single goroutine.
const minRowsPerWorker = 32

// restStep is a little over half a storage step of the 8-bit field encoding.
// Every step pulls each component this far toward zero after decay, so a
// stored value always rounds to a byte nearer neutral and the field comes
// fully to rest instead of sticking where decay is smaller than one step.
const restStep = 0.6 / encodeScale

// errNaN reports a NaN component. Clamping cannot repair one and diffusion
// would spread it over the whole grid.
var errNaN = errors.New("liquid: displacement is NaN")

// Field is a CPU displacement field: a grid of signed 2D vectors with
// components in [-1, 1], double-buffered. Step reads the current grid and
// writes the other one, then swaps them.
type Field struct {
	width, height int
	curr          []float32 // interleaved x, y
	next          []float32
}

// NewField allocates a zeroed field of width×height cells.
func NewField(width, height int) *Field {
	n := width * height * 2
	return &Field{
		width:  width,
		height: height,
		curr:   make([]float32, n),
		next:   make([]float32, n),
	}
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// Height returns the number of rows.
func (f *Field) Height() int { return f.height }

// At returns the vector stored at cell (x, y), clamping out-of-range
// coordinates to the nearest edge cell.
func (f *Field) At(x, y int) Vec2 {
	i := f.index(x, y)
	return Vec2{float64(f.curr[i]), float64(f.curr[i+1])}
}

// Set stores v at cell (x, y), clamped to [-1, 1].
func (f *Field) Set(x, y int, v Vec2) {
	i := f.index(x, y)
	f.curr[i] = float32(Clamp(v.X, -1, 1))
	f.curr[i+1] = float32(Clamp(v.Y, -1, 1))
}

func (f *Field) index(x, y int) int {
	x = Clamp(x, 0, f.width-1)
	y = Clamp(y, 0, f.height-1)
	return (y*f.width + x) * 2
}

// Step advances the field by one frame: diffuse, inject the pointer sample,
// decay, settle, clamp. Rows are split across goroutines; each writes only its
// own rows of the next buffer. On error the buffers are left unswapped.
func (f *Field) Step(s PointerSample, p stepParams) error {
	workers := min(runtime.GOMAXPROCS(0), max(f.height/minRowsPerWorker, 1))
	rowsPer := (f.height + workers - 1) / workers

	var g errgroup.Group
	for y0 := 0; y0 < f.height; y0 += rowsPer {
		y1 := min(y0+rowsPer, f.height)
		g.Go(func() error {
			return f.stepRows(y0, y1, s, p)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.curr, f.next = f.next, f.curr
	return nil
}

func (f *Field) stepRows(y0, y1 int, s PointerSample, p stepParams) error {
	w, h := f.width, f.height
	mx, my := float32(s.Pos.X), float32(s.Pos.Y)
	dx, dy := float32(s.Delta.X), float32(s.Delta.Y)
	inject := s.Active != 0 && (dx != 0 || dy != 0)

	for y := y0; y < y1; y++ {
		up := max(y-1, 0) * w
		down := min(y+1, h-1) * w
		row := y * w
		v := (float32(y) + 0.5) / float32(h)
		for x := 0; x < w; x++ {
			left := max(x-1, 0)
			right := min(x+1, w-1)

			c := (row + x) * 2
			l := (row + left) * 2
			r := (row + right) * 2
			t := (up + x) * 2
			b := (down + x) * 2

			cx, cy := f.curr[c], f.curr[c+1]
			ax := (f.curr[l] + f.curr[r] + f.curr[t] + f.curr[b]) * 0.25
			ay := (f.curr[l+1] + f.curr[r+1] + f.curr[t+1] + f.curr[b+1]) * 0.25
			cx += (ax - cx) * p.Diffusion
			cy += (ay - cy) * p.Diffusion

			if inject {
				u := (float32(x) + 0.5) / float32(w)
				infl := influence(u-mx, v-my, p.Radius) * s.Active
				cx += dx * infl * p.Gain
				cy += dy * infl * p.Gain
			}

			cx *= p.Decay
			cy *= p.Decay
			if cx != cx || cy != cy {
				return errNaN
			}
			f.next[c] = Clamp(settle(cx), -1, 1)
			f.next[c+1] = Clamp(settle(cy), -1, 1)
		}
	}
	return nil
}

// settle moves v toward zero by restStep, stopping at zero.
func settle(v float32) float32 {
	switch {
	case v > restStep:
		return v - restStep
	case v < -restStep:
		return v + restStep
	}
	return 0
}

// influence is 1 at the pointer and falls smoothly to 0 at radius.
func influence(dx, dy, radius float32) float32 {
	if radius <= 0 {
		return 0
	}
	d2 := dx*dx + dy*dy
	if d2 >= radius*radius {
		return 0
	}
	return 1 - Smoothstep(0, radius, sqrt32(d2))
}

// Encode writes the field as RGBA8 pixels: each component is stored as
// 128 + v*127, so zero is exactly 128 and [-1, 1] spans [1, 255]. dst must hold
// Width*Height*4 bytes.
func (f *Field) Encode(dst []byte) {
	for i, j := 0, 0; i < len(f.curr); i, j = i+2, j+4 {
		dst[j] = encodeComponent(f.curr[i])
		dst[j+1] = encodeComponent(f.curr[i+1])
		dst[j+2] = 0
		dst[j+3] = 0xff
	}
}

// encodeScale is the number of byte steps between zero and a full-strength
// component.
const encodeScale = 127

func encodeComponent(v float32) byte {
	return byte(128 + Clamp(v, -1, 1)*encodeScale + 0.5)
}
