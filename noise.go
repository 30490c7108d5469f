package oilshape

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// oilParams are the seed-derived constants of a layer's trigonometric noise
// field. Frequencies are whole numbers so the outline closes seamlessly.
type oilParams struct {
	freq1, freq2, freq3    float64
	phase1, phase2, phase3 float64
	timeScale              float64
}

// deriveOilParams expands a layer seed into its noise-field constants.
func deriveOilParams(seed int64) oilParams {
	rng := NewSeededRandom(seed)
	return oilParams{
		freq1:     float64(1 + rng.Intn(3)),
		freq2:     float64(2 + rng.Intn(4)),
		freq3:     float64(3 + rng.Intn(6)),
		phase1:    rng.Float64() * 2 * math.Pi,
		phase2:    rng.Float64() * 2 * math.Pi,
		phase3:    rng.Float64() * 2 * math.Pi,
		timeScale: 0.6 + rng.Float64()*0.8,
	}
}

// radius returns the multiplicative radius perturbation at angle theta and
// time t. The result stays positive for any noise amount.
func (p oilParams) radius(theta, t, noiseAmount, curviness, wobble float64) float64 {
	symmetry := 0.5 + 0.5*curviness
	ts := t * p.timeScale
	envA := math.Cos(ts*0.3 + p.phase2)
	envB := math.Sin(ts*0.2 + p.phase3)

	field := math.Sin(p.freq1*theta+p.phase1+ts*0.6)*envA +
		0.5*math.Sin(p.freq2*theta+p.phase2-ts*0.4)*envB +
		0.25*math.Sin(p.freq3*theta+p.phase3+ts)

	r := 1 + noiseAmount*0.25*symmetry*field
	r += wobble * 0.08 * math.Sin(theta*(p.freq2+1)+ts*2)
	return math.Max(r, 0.1)
}

// staticNoise caches one opensimplex field per noise seed so per-vertex
// offsets are sampled once per seed and stay fixed between frames.
type staticNoise struct {
	fields map[int64]opensimplex.Noise
}

func newStaticNoise() *staticNoise {
	return &staticNoise{fields: make(map[int64]opensimplex.Noise)}
}

// offset returns a fixed 2D offset in [-1, 1]² for vertex i of the contour
// identified by noiseSeed.
func (s *staticNoise) offset(noiseSeed int64, i int) Vec2 {
	seed := NormalizeSeed(noiseSeed)
	n, ok := s.fields[seed]
	if !ok {
		n = opensimplex.New(seed)
		s.fields[seed] = n
	}
	x := float64(i) * 0.37
	return Vec2{
		X: n.Eval2(x, 0.5),
		Y: n.Eval2(x, 17.25),
	}
}

// reset drops every cached field.
func (s *staticNoise) reset() {
	clear(s.fields)
}
