package engine

import "math"

// Ease names an easing curve using the engine's conventional names.
type Ease string

const (
	Linear     Ease = "Linear"
	QuadInOut  Ease = "Quad.easeInOut"
	QuadOut    Ease = "Quad.easeOut"
	SineInOut  Ease = "Sine.easeInOut"
	ElasticOut Ease = "Elastic.Out"
)

// Apply maps progress t in [0,1] through the curve. Unknown names are linear.
func (e Ease) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case QuadInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case QuadOut:
		return t * (2 - t)
	case SineInOut:
		return -0.5 * (math.Cos(math.Pi*t) - 1)
	case ElasticOut:
		const p = 0.3
		return math.Pow(2, -10*t)*math.Sin((t-p/4)*(2*math.Pi)/p) + 1
	default:
		return t
	}
}

// Lerp interpolates between a and b with eased progress t.
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
