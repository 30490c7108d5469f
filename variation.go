package oilshape

import (
	"math"
	"slices"
)

// Variation constants.
const (
	maxWeight = 3

	nodeJitter = 0.12 // per-vertex node jitter at full shape weight
	animJitter = 0.25 // position jitter at full animation weight

	styleChangeThreshold = 0.7 // anim weight above which the style may change

	paletteSwapThreshold   = 0.6  // color weight at which the whole palette is replaced
	replacementStart       = 0.22 // color weight at which per-color replacement starts
	hueShiftPerWeight      = 60   // degrees
	satLightShiftPerWeight = 0.25

	scaleGrowth = 1.2
	scaleShrink = 0.95
)

// VariationWeights controls how far a derived layer departs from its source
// along each axis. Shape, Anim, Color and Position lie in [0, 3]; Scale is
// signed in [-3, 3] (negative shrinks, positive grows).
type VariationWeights struct {
	Shape    float64 `json:"shape" yaml:"shape"`
	Anim     float64 `json:"anim" yaml:"anim"`
	Color    float64 `json:"color" yaml:"color"`
	Position float64 `json:"position" yaml:"position"`
	Scale    float64 `json:"scale" yaml:"scale"`
}

// UniformWeights returns weights with every unsigned axis set to w and a
// neutral scale axis.
func UniformWeights(w float64) VariationWeights {
	return VariationWeights{Shape: w, Anim: w, Color: w, Position: w}
}

func (w VariationWeights) clamped() VariationWeights {
	return VariationWeights{
		Shape:    clamp(orZero(w.Shape), 0, maxWeight),
		Anim:     clamp(orZero(w.Anim), 0, maxWeight),
		Color:    clamp(orZero(w.Color), 0, maxWeight),
		Position: clamp(orZero(w.Position), 0, maxWeight),
		Scale:    clamp(orZero(w.Scale), -maxWeight, maxWeight),
	}
}

func (w VariationWeights) shape() float64    { return w.Shape / maxWeight }
func (w VariationWeights) anim() float64     { return w.Anim / maxWeight }
func (w VariationWeights) position() float64 { return w.Position / maxWeight }
func (w VariationWeights) scale() float64    { return w.Scale / maxWeight }

// color returns the extended color intensity: weight/3 up to weight 1, then
// boosted quadratically so high weights reach the palette-swap regime
// sooner. The result is monotonic in the weight and may exceed 1.
func (w VariationWeights) color() float64 {
	c := w.Color / maxWeight
	if w.Color > 1 {
		d := w.Color - 1
		c += 0.1 * d * d
	}
	return c
}

// Mix blends base toward a fresh sample of [min, max] by w and clamps the
// result to the range.
func Mix(rng *SeededRandom, base, min, max, w float64) float64 {
	r := Range{min, max}
	return r.Clamp(base*(1-w) + r.Sample(rng)*w)
}

// mixInt is Mix for integer fields; the mixed value is rounded.
func mixInt(rng *SeededRandom, base int, r Range, w float64) int {
	return int(math.Round(Mix(rng, float64(base), r.Min, r.Max, w)))
}

// VariationBuilder derives sibling layers from existing ones. Results are
// fully determined by the builder's random sequence and the inputs.
type VariationBuilder struct {
	Rand     *SeededRandom
	Palettes []Palette
	Bounds   Bounds
}

// NewVariationBuilder returns a builder seeded with seed, drawing palettes
// from palettes (DefaultPalettes when nil) and DefaultBounds.
func NewVariationBuilder(seed int64, palettes []Palette) *VariationBuilder {
	if palettes == nil {
		palettes = DefaultPalettes()
	}
	return &VariationBuilder{
		Rand:     NewSeededRandom(seed),
		Palettes: palettes,
		Bounds:   DefaultBounds,
	}
}

// Build derives a new layer at index from prev. Each axis of w mixes the
// relevant fields between their previous values and fresh samples; fields
// disabled in prev's vary flags are left untouched. A zero shape weight
// copies the geometry exactly (shape lock).
func (b *VariationBuilder) Build(prev Layer, index int, w VariationWeights) Layer {
	w = w.clamped()
	out := prev.Clone()
	out.Name = layerName(index)
	out.Variation = w
	vary := prev.vary()

	b.varyShape(&out, prev, vary, w.shape())
	b.varyAnim(&out, prev, vary, w.anim())
	b.varyScale(&out, vary, w.scale())
	b.varyColor(&out, prev, vary, w.color())
	b.varyPosition(&out, prev, vary, w.position())

	out.Normalize()
	return out
}

func (b *VariationBuilder) varyShape(out *Layer, prev Layer, vary VaryFlags, ws float64) {
	if ws <= 0 {
		return
	}
	rng, bd := b.Rand, b.Bounds
	if vary.NumSides {
		out.NumSides = mixInt(rng, prev.NumSides, bd.NumSides, ws)
	}
	if vary.Curviness {
		out.Curviness = Mix(rng, prev.Curviness, bd.Curviness.Min, bd.Curviness.Max, ws)
	}
	if vary.Wobble {
		out.Wobble = Mix(rng, prev.Wobble, bd.Wobble.Min, bd.Wobble.Max, ws)
	}
	if vary.NoiseAmount {
		out.NoiseAmount = Mix(rng, prev.NoiseAmount, bd.NoiseAmount.Min, bd.NoiseAmount.Max, ws)
	}
	if vary.RadiusFactor {
		rx, ry := prev.Radii()
		rf := bd.RadiusFactor
		out.RadiusFactor = Mix(rng, prev.RadiusFactor, rf.Min, rf.Max, ws)
		out.RadiusFactorX = Mix(rng, rx, rf.Min, rf.Max, ws)
		out.RadiusFactorY = Mix(rng, ry, rf.Min, rf.Max, ws)
	}
	if vary.Rotation {
		out.Rotation = Mix(rng, prev.Rotation, bd.Rotation.Min, bd.Rotation.Max, ws)
	}
	if rng.Chance(ws) {
		out.Seed = rng.Seed()
		out.NoiseSeed = rng.Seed()
	}

	if prev.Nodes == nil {
		return
	}
	nodes := ResampleNodes(prev.Nodes, out.NumSides)
	if vary.Nodes {
		jitter := nodeJitter * ws
		nodes = slices.Clone(nodes)
		for i := range nodes {
			nodes[i].X = clamp(nodes[i].X+rng.Signed()*jitter, -1, 1)
			nodes[i].Y = clamp(nodes[i].Y+rng.Signed()*jitter, -1, 1)
		}
	}
	out.Nodes = nodes
}

func (b *VariationBuilder) varyAnim(out *Layer, prev Layer, vary VaryFlags, wa float64) {
	if wa <= 0 {
		return
	}
	rng, bd := b.Rand, b.Bounds
	if vary.MovementSpeed {
		out.MovementSpeed = Mix(rng, prev.MovementSpeed, bd.MovementSpeed.Min, bd.MovementSpeed.Max, wa)
	}
	if vary.MovementAngle {
		out.MovementAngle = Mix(rng, prev.MovementAngle, bd.MovementAngle.Min, bd.MovementAngle.Max, wa)
	}
	if vary.ScaleSpeed {
		out.ScaleSpeed = Mix(rng, prev.ScaleSpeed, bd.ScaleSpeed.Min, bd.ScaleSpeed.Max, wa)
	}
	if vary.ScaleBounds {
		out.ScaleMin = Mix(rng, prev.ScaleMin, bd.ScaleMin.Min, bd.ScaleMin.Max, wa)
		out.ScaleMax = Mix(rng, prev.ScaleMax, bd.ScaleMax.Min, bd.ScaleMax.Max, wa)
		if out.ScaleMin > out.ScaleMax {
			out.ScaleMin, out.ScaleMax = out.ScaleMax, out.ScaleMin
		}
		out.Position.Scale = clamp(out.Position.Scale, out.ScaleMin, out.ScaleMax)
	}
	if vary.MovementStyle && wa > styleChangeThreshold &&
		rng.Chance((wa-styleChangeThreshold)/(1-styleChangeThreshold)) {
		others := make([]MovementStyle, 0, len(MovementStyles)-1)
		for _, s := range MovementStyles {
			if s != prev.MovementStyle {
				others = append(others, s)
			}
		}
		out.MovementStyle = others[rng.Intn(len(others))]
		if out.MovementStyle == MoveOrbit {
			out.Orbit = Orbit{}
		}
	}
	if vary.Position {
		out.Position.X = clamp01(prev.Position.X + rng.Signed()*animJitter*wa)
		out.Position.Y = clamp01(prev.Position.Y + rng.Signed()*animJitter*wa)
	}
	out.RecomputeVelocity(1)
}

func (b *VariationBuilder) varyScale(out *Layer, vary VaryFlags, wsc float64) {
	if wsc == 0 || !vary.Scale {
		return
	}
	mag := math.Abs(wsc)
	var ratio float64
	if wsc > 0 {
		ratio = 1 + b.Rand.Float64()*scaleGrowth*mag
	} else {
		ratio = 1 - b.Rand.Float64()*scaleShrink*mag
	}
	out.BaseScale = clamp(out.BaseScale*ratio, minBaseScale, maxBaseScale)
}

func (b *VariationBuilder) varyColor(out *Layer, prev Layer, vary VaryFlags, wc float64) {
	if wc <= 0 || !vary.Colors {
		return
	}
	rng := b.Rand
	colors := ensureColors(prev.Colors)

	if wc >= paletteSwapThreshold {
		p := pickPalette(rng, b.Palettes, colors)
		out.Colors = sampleColors(rng, p, max(prev.NumColors, len(colors), 1))
		return
	}

	candidate := sampleColors(rng, pickPalette(rng, b.Palettes, colors), len(colors))
	chance := 0.0
	if wc > replacementStart {
		x := (wc - replacementStart) / (paletteSwapThreshold - replacementStart)
		chance = 1 - math.Pow(1-x, 3)
	}
	hue := hueShiftPerWeight * wc
	sl := satLightShiftPerWeight * wc
	for i := range colors {
		if rng.Chance(chance) {
			colors[i] = candidate[i]
			continue
		}
		c := PerturbHSL(colors[i], rng, hue, sl, sl)
		colors[i] = LerpHex(c, candidate[i], chance*0.5)
	}
	if len(colors) > 1 && rng.Chance(wc) {
		i := rng.Intn(len(colors))
		j := rng.Intn(len(colors) - 1)
		if j >= i {
			j++
		}
		colors[i], colors[j] = colors[j], colors[i]
	}
	out.Colors = colors
}

func (b *VariationBuilder) varyPosition(out *Layer, prev Layer, vary VaryFlags, wp float64) {
	if wp <= 0 || !vary.Offset {
		return
	}
	o := b.Bounds.Offset
	out.XOffset = Mix(b.Rand, prev.XOffset, o.Min, o.Max, wp)
	out.YOffset = Mix(b.Rand, prev.YOffset, o.Min, o.Max, wp)
}
