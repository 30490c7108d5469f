package oilshape

// Scale-axis limits for Layer.BaseScale.
const (
	minBaseScale = 0.05
	maxBaseScale = 5
)

// maxSides caps Layer.NumSides and the length of every node contour. Shapes
// are regenerated every frame, so the cap bounds per-frame work.
const maxSides = 256

// Bounds is the parameter table that variation, randomization and the
// control surface sample from and clamp to.
type Bounds struct {
	NumSides      Range `yaml:"numSides"`
	Curviness     Range `yaml:"curviness"`
	Wobble        Range `yaml:"wobble"`
	NoiseAmount   Range `yaml:"noiseAmount"`
	RadiusFactor  Range `yaml:"radiusFactor"`
	Rotation      Range `yaml:"rotation"`
	MovementSpeed Range `yaml:"movementSpeed"`
	MovementAngle Range `yaml:"movementAngle"`
	ScaleSpeed    Range `yaml:"scaleSpeed"`
	ScaleMin      Range `yaml:"scaleMin"`
	ScaleMax      Range `yaml:"scaleMax"`
	Opacity       Range `yaml:"opacity"`
	Offset        Range `yaml:"offset"`
	NumColors     Range `yaml:"numColors"`
	Layers        Range `yaml:"layers"`
	GlobalSpeed   Range `yaml:"globalSpeed"`
	GlobalOpacity Range `yaml:"globalOpacity"`
}

// DefaultBounds is the built-in parameter table.
var DefaultBounds = Bounds{
	NumSides:      Range{3, 12},
	Curviness:     Range{0, 1},
	Wobble:        Range{0, 1},
	NoiseAmount:   Range{0, 1.5},
	RadiusFactor:  Range{0.08, 0.45},
	Rotation:      Range{0, 360},
	MovementSpeed: Range{0, 5},
	MovementAngle: Range{0, 360},
	ScaleSpeed:    Range{0, 3},
	ScaleMin:      Range{0.6, 1},
	ScaleMax:      Range{1, 1.6},
	Opacity:       Range{0.4, 1},
	Offset:        Range{-0.5, 0.5},
	NumColors:     Range{1, 5},
	Layers:        Range{1, 6},
	GlobalSpeed:   Range{0.25, 2},
	GlobalOpacity: Range{0.6, 1},
}
