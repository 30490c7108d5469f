package oilshape

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for node coordinates, canvas points and radii.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Range is a general-purpose min/max range. Used by the parameter bounds
// tables that drive variation and randomization.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Clamp limits v to the range. Inverted ranges are swapped first.
func (r Range) Clamp(v float64) float64 {
	lo, hi := r.Min, r.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return clamp(v, lo, hi)
}

// Lerp maps t in [0, 1] onto the range.
func (r Range) Lerp(t float64) float64 {
	return lerp(r.Min, r.Max, t)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendMask                      // clip destination to source alpha
	BlendBelow                     // destination-over (draw behind existing content)
	BlendNone                      // opaque copy (skip blending)
)

var blendModeNames = [...]string{
	BlendNormal:   "normal",
	BlendAdd:      "lighter",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
	BlendErase:    "destination-out",
	BlendMask:     "destination-in",
	BlendBelow:    "destination-over",
	BlendNone:     "copy",
}

// BlendModes lists every composite operation in declaration order.
var BlendModes = []BlendMode{
	BlendNormal, BlendAdd, BlendMultiply, BlendScreen,
	BlendErase, BlendMask, BlendBelow, BlendNone,
}

// String returns the composite-operation name of the mode.
func (b BlendMode) String() string {
	if int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return "normal"
}

// MarshalText implements encoding.TextMarshaler.
func (b BlendMode) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// to BlendNormal; "source-over" and "add" are accepted as aliases.
func (b *BlendMode) UnmarshalText(text []byte) error {
	s := string(text)
	switch s {
	case "source-over", "":
		*b = BlendNormal
		return nil
	case "add":
		*b = BlendAdd
		return nil
	}
	for i, name := range blendModeNames {
		if name == s {
			*b = BlendMode(i)
			return nil
		}
	}
	*b = BlendNormal
	return nil
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendBelow:
		return ebiten.BlendDestinationOver
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// LayerType distinguishes procedural shape layers from image layers.
type LayerType uint8

const (
	LayerShape LayerType = iota // procedural oil-shape or custom-node outline
	LayerImage                  // image drawn into the layer's bounding quad
)

// String returns "shape" or "image".
func (t LayerType) String() string {
	switch t {
	case LayerShape:
		return "shape"
	case LayerImage:
		return "image"
	default:
		return fmt.Sprintf("LayerType(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t LayerType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Anything other than
// "image" decodes to LayerShape.
func (t *LayerType) UnmarshalText(text []byte) error {
	if string(text) == "image" {
		*t = LayerImage
	} else {
		*t = LayerShape
	}
	return nil
}

// MovementStyle selects the per-tick motion transition for a layer.
type MovementStyle uint8

const (
	MoveStill  MovementStyle = iota // no translation
	MoveBounce                      // reflect heading at the canvas edges
	MoveDrift                       // wrap toroidally at the canvas edges
	MoveOrbit                       // parametric ellipse around a fixed center
	MoveSpin                        // rotate in place
)

var movementStyleNames = [...]string{
	MoveStill:  "still",
	MoveBounce: "bounce",
	MoveDrift:  "drift",
	MoveOrbit:  "orbit",
	MoveSpin:   "spin",
}

// MovementStyles lists every movement style in declaration order.
var MovementStyles = []MovementStyle{MoveStill, MoveBounce, MoveDrift, MoveOrbit, MoveSpin}

// String returns the style name.
func (m MovementStyle) String() string {
	if int(m) < len(movementStyleNames) {
		return movementStyleNames[m]
	}
	return fmt.Sprintf("MovementStyle(%d)", uint8(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m MovementStyle) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// MoveStill.
func (m *MovementStyle) UnmarshalText(text []byte) error {
	for i, name := range movementStyleNames {
		if name == string(text) {
			*m = MovementStyle(i)
			return nil
		}
	}
	*m = MoveStill
	return nil
}
