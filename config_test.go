package liquid

import (
	"errors"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	c := Config{Source: "a.png"}.withDefaults()
	if c.Strength != DefaultStrength {
		t.Errorf("Strength = %v, want %v", c.Strength, DefaultStrength)
	}
	if c.Radius != DefaultRadius {
		t.Errorf("Radius = %v, want %v", c.Radius, DefaultRadius)
	}
	if c.Diffusion != DefaultDiffusion {
		t.Errorf("Diffusion = %v, want %v", c.Diffusion, DefaultDiffusion)
	}
	if c.Gain != DefaultGain {
		t.Errorf("Gain = %v, want %v", c.Gain, DefaultGain)
	}
	if c.Decay != DefaultDecay {
		t.Errorf("Decay = %v, want %v", c.Decay, DefaultDecay)
	}
	if c.Resolution != DefaultResolution {
		t.Errorf("Resolution = %d, want %d", c.Resolution, DefaultResolution)
	}
	if c.MaxPixelRatio != DefaultMaxPixelRatio {
		t.Errorf("MaxPixelRatio = %v, want %v", c.MaxPixelRatio, DefaultMaxPixelRatio)
	}
	if c.FadeIn != DefaultFadeIn {
		t.Errorf("FadeIn = %v, want %v", c.FadeIn, DefaultFadeIn)
	}
	if c.Backend != BackendGPU {
		t.Errorf("Backend = %v, want gpu", c.Backend)
	}
}

func TestConfigDefaultsKeepExplicit(t *testing.T) {
	c := Config{Source: "a.png", Strength: 0.5, Resolution: 64, FadeIn: -1}.withDefaults()
	if c.Strength != 0.5 {
		t.Errorf("Strength = %v, want 0.5", c.Strength)
	}
	if c.Resolution != 64 {
		t.Errorf("Resolution = %d, want 64", c.Resolution)
	}
	if c.FadeIn != -1 {
		t.Errorf("FadeIn = %v, want -1", c.FadeIn)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{Source: "a.png"}, false},
		{"cpu backend", Config{Source: "a.png", Backend: BackendCPU}, false},
		{"css background", Config{Source: "a.png", Background: "rgb(10, 20, 30)"}, false},
		{"negative strength disables", Config{Source: "a.png", Strength: -1}, false},
		{"negative diffusion disables", Config{Source: "a.png", Diffusion: -1}, false},
		{"negative radius", Config{Source: "a.png", Radius: -1}, true},
		{"diffusion above one", Config{Source: "a.png", Diffusion: 1.5}, true},
		{"decay of one", Config{Source: "a.png", Decay: 1}, true},
		{"negative decay", Config{Source: "a.png", Decay: -0.5}, true},
		{"resolution one", Config{Source: "a.png", Resolution: 1}, true},
		{"resolution huge", Config{Source: "a.png", Resolution: maxResolution + 1}, true},
		{"pixel ratio below one", Config{Source: "a.png", MaxPixelRatio: 0.5}, true},
		{"unknown backend", Config{Source: "a.png", Backend: Backend(9)}, true},
		{"bad background", Config{Source: "a.png", Background: "not-a-colour"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateNoSource(t *testing.T) {
	err := Config{}.Validate()
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Validate() = %v, want ErrNoSource", err)
	}
}

func TestParseBackground(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"", ColorTransparent},
		{"#ff0000", Color{R: 1, A: 1}},
		{"black", Color{A: 1}},
		{"transparent", Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBackground(tt.in)
			if err != nil {
				t.Fatalf("parseBackground(%q): %v", tt.in, err)
			}
			if !colorNear(got, tt.want) {
				t.Errorf("parseBackground(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStepParams(t *testing.T) {
	p := Config{Source: "a.png"}.withDefaults().stepParams()
	if p.Radius != float32(DefaultRadius) || p.Diffusion != float32(DefaultDiffusion) ||
		p.Gain != float32(DefaultGain) || p.Decay != float32(DefaultDecay) {
		t.Errorf("stepParams() = %+v", p)
	}
}

func colorNear(a, b Color) bool {
	const eps = 1e-6
	near := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestNegativeDiffusionMeansNone(t *testing.T) {
	p := Config{Source: "a.png", Diffusion: -1}.withDefaults().stepParams()
	if p.Diffusion != 0 {
		t.Errorf("Diffusion = %v, want 0", p.Diffusion)
	}

	// With no diffusion an impulse stays in its cell.
	f := NewField(5, 5)
	f.Set(2, 2, Vec2{0.5, 0})
	mustStep(t, f, PointerSample{}, p)
	if v := f.At(2, 1); v != (Vec2{}) {
		t.Errorf("neighbour = %v, want untouched", v)
	}
}

func TestNegativeStrengthMeansNone(t *testing.T) {
	c := newCompositor(Config{Source: "a.png", Strength: -1}.withDefaults().Strength)
	if got := c.uniforms["Strength"]; got != float32(0) {
		t.Errorf("Strength uniform = %v, want 0", got)
	}
	c = newCompositor(Config{Source: "a.png"}.withDefaults().Strength)
	if got := c.uniforms["Strength"]; got != float32(DefaultStrength) {
		t.Errorf("Strength uniform = %v, want %v", got, float32(DefaultStrength))
	}
}
