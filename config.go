package liquid

import (
	"fmt"

	css "github.com/mazznoer/csscolorparser"
)

// Default tuning values. They reproduce the look the effect was designed with.
const (
	DefaultStrength      = 0.18
	DefaultRadius        = 0.25
	DefaultDiffusion     = 0.35
	DefaultGain          = 40.0
	DefaultDecay         = 0.982
	DefaultResolution    = 256
	DefaultMaxPixelRatio = 2.0
	DefaultFadeIn        = 0.6 // seconds

	maxResolution = 4096
)

// Config describes one distortion effect. Zero-valued numeric fields take the
// package defaults, so Config{Source: "hero.png"} is a complete configuration.
// Where zero is a meaningful setting (Strength, Diffusion, FadeIn) it is
// spelled with a negative value.
type Config struct {
	// Source is the image to distort: a file path or an http(s) URL. Required.
	Source string
	// Label is the accessible description of the surface. Used in log lines
	// and as the window title by the demo.
	Label string

	// Strength scales how far pixels shift, in normalized image units.
	// Negative means no displacement.
	Strength float64
	// Radius is the normalized radius of pointer influence.
	Radius float64
	// Diffusion is the weight given to the neighbour average each step, at
	// most 1. Negative means no diffusion.
	Diffusion float64
	// Gain multiplies the pointer delta before it is injected.
	Gain float64
	// Decay multiplies the field each step. Must be in (0, 1).
	Decay float64

	// Resolution is the width and height of the simulation grid in cells.
	Resolution int
	// MaxPixelRatio caps the device scale factor used for the backing surface.
	MaxPixelRatio float64
	// FadeIn is the opacity ramp in seconds once the image is ready.
	// Negative disables the fade.
	FadeIn float32

	// Backend selects GPU (default) or CPU simulation.
	Backend Backend
	// Background is a CSS color drawn behind the image ("#111", "rgb(0, 0, 0)",
	// "transparent"). Empty means transparent.
	Background string

	// Debug logs per-frame timings to stderr.
	Debug bool
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Strength == 0 {
		c.Strength = DefaultStrength
	}
	if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
	if c.Diffusion == 0 {
		c.Diffusion = DefaultDiffusion
	}
	if c.Gain == 0 {
		c.Gain = DefaultGain
	}
	if c.Decay == 0 {
		c.Decay = DefaultDecay
	}
	if c.Resolution == 0 {
		c.Resolution = DefaultResolution
	}
	if c.MaxPixelRatio == 0 {
		c.MaxPixelRatio = DefaultMaxPixelRatio
	}
	if c.FadeIn == 0 {
		c.FadeIn = DefaultFadeIn
	}
	return c
}

// Validate reports the first out-of-range field after defaults are applied.
func (c Config) Validate() error {
	if c.Source == "" {
		return ErrNoSource
	}
	c = c.withDefaults()
	switch {
	case c.Radius < 0:
		return fmt.Errorf("liquid: radius %v must not be negative", c.Radius)
	case c.Diffusion > 1:
		return fmt.Errorf("liquid: diffusion %v above 1", c.Diffusion)
	case c.Decay <= 0 || c.Decay >= 1:
		return fmt.Errorf("liquid: decay %v outside (0, 1)", c.Decay)
	case c.Resolution < 2 || c.Resolution > maxResolution:
		return fmt.Errorf("liquid: resolution %d outside [2, %d]", c.Resolution, maxResolution)
	case c.MaxPixelRatio < 1:
		return fmt.Errorf("liquid: max pixel ratio %v below 1", c.MaxPixelRatio)
	case c.Backend != BackendGPU && c.Backend != BackendCPU:
		return fmt.Errorf("liquid: unknown backend %d", c.Backend)
	}
	if _, err := parseBackground(c.Background); err != nil {
		return err
	}
	return nil
}

// parseBackground converts a CSS color string to a Color. Empty is transparent.
func parseBackground(s string) (Color, error) {
	if s == "" {
		return ColorTransparent, nil
	}
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("liquid: background %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// stepParams are the per-step constants shared by both simulators.
type stepParams struct {
	Radius    float32
	Diffusion float32
	Gain      float32
	Decay     float32
}

func (c Config) stepParams() stepParams {
	return stepParams{
		Radius:    float32(c.Radius),
		Diffusion: float32(max(c.Diffusion, 0)),
		Gain:      float32(c.Gain),
		Decay:     float32(c.Decay),
	}
}
