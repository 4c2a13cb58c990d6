package liquid

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %d, want 3", got)
	}
	if got := Clamp(-2.5, -1.0, 1.0); got != -1 {
		t.Errorf("Clamp(-2.5, -1, 1) = %v, want -1", got)
	}
	if got := Clamp(float32(0.25), 0, 1); got != 0.25 {
		t.Errorf("Clamp(0.25, 0, 1) = %v, want 0.25", got)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{-4, 4, 0.25, -2},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name            string
		edge0, edge1, x float32
		want            float32
	}{
		{"below", 0, 1, -1, 0},
		{"at edge0", 0, 1, 0, 0},
		{"midpoint", 0, 1, 0.5, 0.5},
		{"at edge1", 0, 1, 1, 1},
		{"above", 0, 1, 2, 1},
		{"degenerate below", 1, 1, 0.5, 0},
		{"degenerate at", 1, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(tt.edge0, tt.edge1, tt.x); got != tt.want {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.want)
			}
		})
	}
}
