package oilshape

import "math"

// RandomizeMode selects how Randomize derives the new scene.
type RandomizeMode uint8

const (
	// RandomizeWeighted mixes every layer from its previous state with the
	// variation builder.
	RandomizeWeighted RandomizeMode = iota
	// RandomizeClassic re-synthesizes every layer from scratch.
	RandomizeClassic
)

// Include gates which scene-level fields a randomization may replace. A
// field that is not included keeps its previous value.
type Include struct {
	Background    bool
	BlendMode     bool
	GlobalSpeed   bool
	GlobalOpacity bool
	Palette       bool
	LayerCount    bool
	Variation     bool
}

// IncludeAll enables every gate.
func IncludeAll() Include {
	return Include{
		Background: true, BlendMode: true, GlobalSpeed: true,
		GlobalOpacity: true, Palette: true, LayerCount: true, Variation: true,
	}
}

// RandomizeOptions configures one randomization.
type RandomizeOptions struct {
	Mode    RandomizeMode
	Include Include
}

// LayerParams is one layer's freshly generated base parameters.
type LayerParams struct {
	CenterBaseX   float64
	CenterBaseY   float64
	CenterOffsetX float64
	CenterOffsetY float64
	NumSides      int
	Curviness     float64
	Wobble        float64
	NoiseAmount   float64
	RadiusFactor  float64
	Rotation      float64
	Seed          int64
	NoiseSeed     int64
}

// GenerateLayerParams returns numLayers parameter sets drawn from seed.
// Centers lie in [0.3, 0.7] and offsets in ±variation/2, so the output is
// fully reproducible for identical arguments.
func GenerateLayerParams(seed int64, numLayers int, variation float64) []LayerParams {
	if numLayers < 0 {
		numLayers = 0
	}
	variation = clamp01(orZero(variation))
	rng := NewSeededRandom(seed)
	bd := DefaultBounds
	out := make([]LayerParams, numLayers)
	for i := range out {
		out[i] = LayerParams{
			CenterBaseX:   0.3 + rng.Float64()*0.4,
			CenterBaseY:   0.3 + rng.Float64()*0.4,
			CenterOffsetX: rng.Signed() * variation / 2,
			CenterOffsetY: rng.Signed() * variation / 2,
			NumSides:      int(math.Round(bd.NumSides.Sample(rng))),
			Curviness:     bd.Curviness.Sample(rng),
			Wobble:        bd.Wobble.Sample(rng),
			NoiseAmount:   bd.NoiseAmount.Sample(rng),
			RadiusFactor:  bd.RadiusFactor.Sample(rng),
			Rotation:      bd.Rotation.Sample(rng),
			Seed:          rng.Seed(),
			NoiseSeed:     rng.Seed(),
		}
	}
	return out
}

// Randomizer orchestrates whole-scene randomization.
type Randomizer struct {
	Rand     *SeededRandom
	Palettes []Palette
	Bounds   Bounds
	builder  *VariationBuilder
}

// NewRandomizer returns a randomizer seeded with seed. A nil palettes
// table uses DefaultPalettes.
func NewRandomizer(seed int64, palettes []Palette) *Randomizer {
	b := NewVariationBuilder(seed, palettes)
	return &Randomizer{
		Rand:     b.Rand,
		Palettes: b.Palettes,
		Bounds:   b.Bounds,
		builder:  b,
	}
}

// Randomize returns a new scene derived from s. Fields whose include gate
// is off keep their previous values.
func (r *Randomizer) Randomize(s Scene, opts RandomizeOptions) Scene {
	out := s.Clone()
	out.Normalize()
	inc := opts.Include
	rng := r.Rand
	r.builder.Bounds = r.Bounds
	r.builder.Palettes = r.Palettes

	n := len(out.Layers)
	if inc.LayerCount {
		n = int(math.Round(r.Bounds.Layers.Sample(rng)))
		n = max(n, 1)
	}

	var palette Palette
	if inc.Palette {
		palette = pickPalette(rng, r.Palettes, out.Layers[0].Colors)
	}

	switch opts.Mode {
	case RandomizeClassic:
		out.Layers = r.classicLayers(out.Layers, n, rng.Seed(), palette, inc.Palette)
	case RandomizeWeighted:
		out.Layers = r.weightedLayers(out, n, inc)
		if inc.Palette {
			for i := range out.Layers {
				l := &out.Layers[i]
				l.Colors = sampleColors(rng, palette, max(l.NumColors, 1))
				l.NumColors = len(l.Colors)
			}
		}
	}

	if inc.BlendMode {
		for i := range out.Layers {
			if i == 0 {
				out.Layers[i].BlendMode = BlendNormal
				continue
			}
			out.Layers[i].BlendMode = compositeModes[rng.Intn(len(compositeModes))]
		}
	}
	if inc.GlobalSpeed {
		out.GlobalSpeed = r.Bounds.GlobalSpeed.Sample(rng)
	}
	if inc.GlobalOpacity {
		out.GlobalOpacity = r.Bounds.GlobalOpacity.Sample(rng)
	}
	if inc.Background {
		src := palette.Colors
		if len(src) == 0 {
			src = out.Layers[0].Colors
		}
		out.BackgroundColor = Darken(src[rng.Intn(len(src))], 0.25)
	}

	out.Normalize()
	return out
}

// compositeModes are the blend modes randomization may assign. Erase, mask
// and copy are excluded because they punch holes in the composite.
var compositeModes = []BlendMode{BlendNormal, BlendAdd, BlendMultiply, BlendScreen}

// weightedLayers mixes every existing layer with one uniform weight sampled
// for the whole scene, then grows or shrinks to n layers.
func (r *Randomizer) weightedLayers(s Scene, n int, inc Include) []Layer {
	rng := r.Rand
	base := UniformWeights(rng.Range(0, maxWeight))
	layers := make([]Layer, len(s.Layers))
	for i, l := range s.Layers {
		w := l.Variation
		if inc.Variation || w == (VariationWeights{}) {
			w = base
			w.Scale = l.Variation.Scale
		}
		next := r.builder.Build(l, i, w)
		next.Name = l.Name
		if !inc.Palette {
			next.Colors = l.Colors
			next.NumColors = l.NumColors
		}
		layers[i] = next
	}
	grown := Scene{Layers: layers}.Resize(n, func(prev Layer, index int) Layer {
		return r.builder.Build(prev, index, base)
	})
	return grown.Layers
}

// classicLayers builds n layers from scratch. When withPalette is false the
// previous layers' colors are reused by index.
func (r *Randomizer) classicLayers(prev []Layer, n int, seed int64, palette Palette, withPalette bool) []Layer {
	rng := r.Rand
	bd := r.Bounds
	params := GenerateLayerParams(seed, n, 0.2)
	out := make([]Layer, n)
	for i, p := range params {
		l := DefaultLayer(layerName(i))
		l.NumSides = p.NumSides
		l.Curviness = p.Curviness
		l.Wobble = p.Wobble
		l.NoiseAmount = p.NoiseAmount
		l.RadiusFactor = p.RadiusFactor
		l.RadiusFactorX = p.RadiusFactor * rng.Range(0.8, 1.2)
		l.RadiusFactorY = p.RadiusFactor * rng.Range(0.8, 1.2)
		l.Rotation = p.Rotation
		l.Seed = p.Seed
		l.NoiseSeed = p.NoiseSeed
		l.Position = Position{
			X:              p.CenterBaseX + p.CenterOffsetX,
			Y:              p.CenterBaseY + p.CenterOffsetY,
			Scale:          1,
			ScaleDirection: 1,
		}
		l.MovementStyle = MovementStyles[rng.Intn(len(MovementStyles))]
		l.MovementSpeed = bd.MovementSpeed.Sample(rng)
		l.MovementAngle = bd.MovementAngle.Sample(rng)
		l.ScaleSpeed = bd.ScaleSpeed.Sample(rng)
		l.ScaleMin = bd.ScaleMin.Sample(rng)
		l.ScaleMax = bd.ScaleMax.Sample(rng)
		l.Opacity = bd.Opacity.Sample(rng)
		if i == 0 {
			l.Opacity = 1
		}

		switch {
		case withPalette:
			l.Colors = sampleColors(rng, palette, int(math.Round(bd.NumColors.Sample(rng))))
		case i < len(prev):
			l.Colors = append([]string(nil), prev[i].Colors...)
		default:
			l.Colors = append([]string(nil), prev[len(prev)-1].Colors...)
		}
		if i < len(prev) {
			l.Vary = prev[i].Clone().Vary
			l.Variation = prev[i].Variation
		}
		l.Normalize()
		out[i] = l
	}
	return out
}
