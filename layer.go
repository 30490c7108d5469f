package oilshape

import (
	"fmt"
	"math"
)

// Motion unit factors. Speeds are authored in friendly units and scaled to
// per-tick normalized canvas fractions here.
const (
	speedUnit = 0.001 // canvas fraction per tick per unit of MovementSpeed
	scaleUnit = 0.001 // scale change per tick per unit of ScaleSpeed
	spinUnit  = 0.5   // degrees per tick per unit of MovementSpeed
	orbitUnit = 0.002 // radians per tick per unit of MovementSpeed
)

// Position is a layer's normalized placement on the canvas and its current
// z-scale oscillation state.
type Position struct {
	X              float64 `json:"x" yaml:"x"`
	Y              float64 `json:"y" yaml:"y"`
	Scale          float64 `json:"scale" yaml:"scale"`
	ScaleDirection int     `json:"scaleDirection" yaml:"scaleDirection"`
}

// Orbit holds the parametric path used by MoveOrbit. A zero radius is
// derived from the layer's position the first time the layer orbits.
type Orbit struct {
	CenterX float64 `json:"centerX" yaml:"centerX"`
	CenterY float64 `json:"centerY" yaml:"centerY"`
	RadiusX float64 `json:"radiusX" yaml:"radiusX"`
	RadiusY float64 `json:"radiusY" yaml:"radiusY"`
	Phase   float64 `json:"phase" yaml:"phase"`
}

// VaryFlags selects which fields a variation step may touch. A nil
// *VaryFlags on a Layer means every field may vary.
type VaryFlags struct {
	NumSides      bool `json:"numSides" yaml:"numSides"`
	Curviness     bool `json:"curviness" yaml:"curviness"`
	Wobble        bool `json:"wobble" yaml:"wobble"`
	NoiseAmount   bool `json:"noiseAmount" yaml:"noiseAmount"`
	RadiusFactor  bool `json:"radiusFactor" yaml:"radiusFactor"`
	Nodes         bool `json:"nodes" yaml:"nodes"`
	Rotation      bool `json:"rotation" yaml:"rotation"`
	MovementStyle bool `json:"movementStyle" yaml:"movementStyle"`
	MovementSpeed bool `json:"movementSpeed" yaml:"movementSpeed"`
	MovementAngle bool `json:"movementAngle" yaml:"movementAngle"`
	ScaleSpeed    bool `json:"scaleSpeed" yaml:"scaleSpeed"`
	ScaleBounds   bool `json:"scaleBounds" yaml:"scaleBounds"`
	Position      bool `json:"position" yaml:"position"`
	Scale         bool `json:"scale" yaml:"scale"`
	Colors        bool `json:"colors" yaml:"colors"`
	Offset        bool `json:"offset" yaml:"offset"`
}

// VaryAll returns flags with every field enabled.
func VaryAll() VaryFlags {
	return VaryFlags{
		NumSides: true, Curviness: true, Wobble: true, NoiseAmount: true,
		RadiusFactor: true, Nodes: true, Rotation: true,
		MovementStyle: true, MovementSpeed: true, MovementAngle: true,
		ScaleSpeed: true, ScaleBounds: true, Position: true, Scale: true,
		Colors: true, Offset: true,
	}
}

// Layer is one procedurally drawn shape (or image) with its own geometry,
// motion and color state. Layers are values; use Clone before sharing one
// whose slices may later be mutated.
type Layer struct {
	// Identity
	Name     string    `json:"name" yaml:"name"`
	Type     LayerType `json:"layerType" yaml:"layerType"`
	ImageKey string    `json:"imageKey,omitempty" yaml:"imageKey,omitempty"`

	// Geometry
	NumSides      int      `json:"numSides" yaml:"numSides"`
	Curviness     float64  `json:"curviness" yaml:"curviness"`
	Wobble        float64  `json:"wobble" yaml:"wobble"`
	NoiseAmount   float64  `json:"noiseAmount" yaml:"noiseAmount"`
	RadiusFactor  float64  `json:"radiusFactor" yaml:"radiusFactor"`
	RadiusFactorX float64  `json:"radiusFactorX" yaml:"radiusFactorX"`
	RadiusFactorY float64  `json:"radiusFactorY" yaml:"radiusFactorY"`
	Width         float64  `json:"width" yaml:"width"`
	Height        float64  `json:"height" yaml:"height"`
	Rotation      float64  `json:"rotation" yaml:"rotation"`
	Nodes         []Vec2   `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Subpaths      [][]Vec2 `json:"subpaths,omitempty" yaml:"subpaths,omitempty"`

	// Motion
	MovementStyle MovementStyle `json:"movementStyle" yaml:"movementStyle"`
	MovementSpeed float64       `json:"movementSpeed" yaml:"movementSpeed"`
	MovementAngle float64       `json:"movementAngle" yaml:"movementAngle"`
	ScaleSpeed    float64       `json:"scaleSpeed" yaml:"scaleSpeed"`
	ScaleMin      float64       `json:"scaleMin" yaml:"scaleMin"`
	ScaleMax      float64       `json:"scaleMax" yaml:"scaleMax"`
	VX            float64       `json:"vx" yaml:"vx"`
	VY            float64       `json:"vy" yaml:"vy"`
	Orbit         Orbit         `json:"orbit" yaml:"orbit"`

	Position Position `json:"position" yaml:"position"`

	// Appearance
	Colors        []string  `json:"colors" yaml:"colors"`
	NumColors     int       `json:"numColors" yaml:"numColors"`
	SelectedColor int       `json:"selectedColor" yaml:"selectedColor"`
	Opacity       float64   `json:"opacity" yaml:"opacity"`
	BlendMode     BlendMode `json:"blendMode" yaml:"blendMode"`
	BaseScale     float64   `json:"baseScale" yaml:"baseScale"`
	XOffset       float64   `json:"xOffset" yaml:"xOffset"`
	YOffset       float64   `json:"yOffset" yaml:"yOffset"`

	// Variation metadata
	Variation VariationWeights `json:"variation" yaml:"variation"`
	Vary      *VaryFlags       `json:"vary,omitempty" yaml:"vary,omitempty"`

	// Seeds
	Seed      int64 `json:"seed" yaml:"seed"`
	NoiseSeed int64 `json:"noiseSeed" yaml:"noiseSeed"`
}

// DefaultLayer returns a centered, still, single-color hexagon.
func DefaultLayer(name string) Layer {
	l := Layer{
		Name:          name,
		Type:          LayerShape,
		NumSides:      6,
		Curviness:     0.5,
		Wobble:        0.2,
		NoiseAmount:   0.3,
		RadiusFactor:  0.25,
		RadiusFactorX: 0.25,
		RadiusFactorY: 0.25,
		Width:         0.5,
		Height:        0.5,
		MovementStyle: MoveStill,
		MovementSpeed: 1,
		ScaleMin:      0.9,
		ScaleMax:      1.1,
		ScaleSpeed:    0.5,
		Position:      Position{X: 0.5, Y: 0.5, Scale: 1, ScaleDirection: 1},
		Colors:        []string{DefaultColor},
		Opacity:       1,
		BaseScale:     1,
		Seed:          1,
		NoiseSeed:     1,
	}
	l.Normalize()
	return l
}

// Clone returns a deep copy of the layer. Slices and the vary flags are
// copied so the result shares no mutable state with l.
func (l Layer) Clone() Layer {
	out := l
	out.Nodes = cloneNodes(l.Nodes)
	if l.Subpaths != nil {
		out.Subpaths = make([][]Vec2, len(l.Subpaths))
		for i, sp := range l.Subpaths {
			out.Subpaths[i] = cloneNodes(sp)
		}
	}
	if l.Colors != nil {
		out.Colors = append([]string(nil), l.Colors...)
	}
	if l.Vary != nil {
		v := *l.Vary
		out.Vary = &v
	}
	return out
}

// vary returns the effective vary flags.
func (l *Layer) vary() VaryFlags {
	if l.Vary == nil {
		return VaryAll()
	}
	return *l.Vary
}

// Radii returns the horizontal and vertical radius factors, falling back to
// RadiusFactor when the per-axis factor is unset.
func (l *Layer) Radii() (rx, ry float64) {
	rx, ry = l.RadiusFactorX, l.RadiusFactorY
	if rx <= 0 {
		rx = l.RadiusFactor
	}
	if ry <= 0 {
		ry = l.RadiusFactor
	}
	return rx, ry
}

// RecomputeVelocity derives VX and VY from MovementAngle and MovementSpeed.
// Velocity is never authoritative on its own.
func (l *Layer) RecomputeVelocity(globalSpeed float64) {
	switch l.MovementStyle {
	case MoveBounce, MoveDrift:
		sin, cos := math.Sincos(degToRad(l.MovementAngle))
		v := l.MovementSpeed * speedUnit * globalSpeed
		l.VX = cos * v
		l.VY = sin * v
	default:
		l.VX, l.VY = 0, 0
	}
}

// Normalize corrects every out-of-range field in place. Nothing is
// rejected: values are clamped, swapped or replaced by safe defaults.
func (l *Layer) Normalize() {
	l.NumSides = min(max(l.NumSides, 3), maxSides)
	l.Curviness = clamp01(orZero(l.Curviness))
	l.Wobble = clamp01(orZero(l.Wobble))
	l.NoiseAmount = math.Max(0, orZero(l.NoiseAmount))
	l.RadiusFactor = math.Max(0, orZero(l.RadiusFactor))
	l.RadiusFactorX = math.Max(0, orZero(l.RadiusFactorX))
	l.RadiusFactorY = math.Max(0, orZero(l.RadiusFactorY))
	l.Rotation = normalizeDegrees(l.Rotation)

	if l.Nodes != nil {
		if ValidNodes(l.Nodes) {
			l.Nodes = decimateNodes(l.Nodes, maxSides)
			if len(l.Nodes) != l.NumSides {
				l.Nodes = ResampleNodes(l.Nodes, l.NumSides)
			}
		} else {
			l.Nodes = nil
		}
	}
	if l.Subpaths != nil {
		kept := make([][]Vec2, 0, len(l.Subpaths))
		for _, sp := range l.Subpaths {
			if ValidNodes(sp) {
				kept = append(kept, decimateNodes(sp, maxSides))
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		l.Subpaths = kept
	}

	l.MovementSpeed = math.Max(0, orZero(l.MovementSpeed))
	l.MovementAngle = normalizeDegrees(l.MovementAngle)
	l.ScaleSpeed = math.Max(0, orZero(l.ScaleSpeed))
	if l.ScaleMin <= 0 {
		l.ScaleMin = 1
	}
	if l.ScaleMax <= 0 {
		l.ScaleMax = 1
	}
	if l.ScaleMin > l.ScaleMax {
		l.ScaleMin, l.ScaleMax = l.ScaleMax, l.ScaleMin
	}

	l.Position.X = clamp01(orZero(l.Position.X))
	l.Position.Y = clamp01(orZero(l.Position.Y))
	if !(l.Position.Scale > 0) || !finite(l.Position.Scale) {
		l.Position.Scale = 1
	}
	if l.Position.ScaleDirection >= 0 {
		l.Position.ScaleDirection = 1
	} else {
		l.Position.ScaleDirection = -1
	}

	l.Colors = ensureColors(l.Colors)
	l.NumColors = len(l.Colors)
	if l.SelectedColor < 0 || l.SelectedColor >= l.NumColors {
		l.SelectedColor = 0
	}
	l.Opacity = clamp01(orZero(l.Opacity))
	if !(l.BaseScale > 0) || !finite(l.BaseScale) {
		l.BaseScale = 1
	}
	l.BaseScale = clamp(l.BaseScale, minBaseScale, maxBaseScale)
	l.XOffset = clamp(orZero(l.XOffset), -0.5, 0.5)
	l.YOffset = clamp(orZero(l.YOffset), -0.5, 0.5)
	l.Variation = l.Variation.clamped()

	l.Seed = NormalizeSeed(l.Seed)
	l.NoiseSeed = NormalizeSeed(l.NoiseSeed)
	l.RecomputeVelocity(1)
}

// String returns a short description for logs.
func (l Layer) String() string {
	return fmt.Sprintf("%s(%s %d sides %s)", l.Name, l.Type, l.NumSides, l.MovementStyle)
}

func orZero(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
