package liquid

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp limits n to [minN, maxN].
func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	if n < minN {
		return minN
	}
	if n > maxN {
		return maxN
	}
	return n
}

// Lerp interpolates linearly between a and b.
func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// Smoothstep is the Hermite step used by GLSL and Kage: 0 at or below edge0,
// 1 at or above edge1.
func Smoothstep[F constraints.Float](edge0, edge1, x F) F {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
