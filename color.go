package oilshape

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// DefaultColor is substituted wherever a color list would otherwise be empty
// or a color string cannot be parsed.
const DefaultColor = "#ffffff"

// ParseColor parses "#rgb", "#rrggbb", bare hex digits or a CSS color name.
// ok is false when the string is none of those.
func ParseColor(s string) (c colorful.Color, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, false
	}
	if named, found := colornames.Map[strings.ToLower(s)]; found {
		c, _ = colorful.MakeColor(named)
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// NormalizeHex returns s as lowercase "#rrggbb", or DefaultColor when s is
// not a color.
func NormalizeHex(s string) string {
	c, ok := ParseColor(s)
	if !ok {
		return DefaultColor
	}
	return c.Clamped().Hex()
}

// HexToRGB returns the 8-bit channels of a hex color. Invalid input yields
// DefaultColor's channels.
func HexToRGB(s string) (r, g, b uint8) {
	c, ok := ParseColor(s)
	if !ok {
		c, _ = ParseColor(DefaultColor)
	}
	return c.Clamped().RGB255()
}

// RGBToHex formats 8-bit channels as "#rrggbb".
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// HexToHSL returns hue in [0, 360) and saturation/lightness in [0, 1].
func HexToHSL(s string) (h, sat, l float64) {
	c, ok := ParseColor(s)
	if !ok {
		return 0, 0, 1
	}
	h, sat, l = c.Hsl()
	if !finite(h) {
		h = 0
	}
	return normalizeDegrees(h), sat, l
}

// HSLToHex formats an HSL triple as "#rrggbb". Hue wraps; saturation and
// lightness clamp to [0, 1].
func HSLToHex(h, s, l float64) string {
	return colorful.Hsl(normalizeDegrees(h), clamp01(s), clamp01(l)).Clamped().Hex()
}

// LerpHex interpolates two hex colors component-wise in RGB.
func LerpHex(a, b string, t float64) string {
	ca, ok := ParseColor(a)
	if !ok {
		ca, _ = ParseColor(DefaultColor)
	}
	cb, ok := ParseColor(b)
	if !ok {
		cb, _ = ParseColor(DefaultColor)
	}
	return ca.BlendRgb(cb, clamp01(t)).Clamped().Hex()
}

// PerturbHSL shifts a color by up to ±hueShift degrees and ±satShift,
// ±lightShift in saturation and lightness. The shifts are drawn from rng.
func PerturbHSL(hex string, rng *SeededRandom, hueShift, satShift, lightShift float64) string {
	h, s, l := HexToHSL(hex)
	h += rng.Signed() * hueShift
	s += rng.Signed() * satShift
	l += rng.Signed() * lightShift
	return HSLToHex(h, s, l)
}

// Darken scales the lightness of a hex color by factor.
func Darken(hex string, factor float64) string {
	h, s, l := HexToHSL(hex)
	return HSLToHex(h, s, l*factor)
}

// ColorFromHex converts a hex color to a Color with the given alpha.
func ColorFromHex(hex string, alpha float64) Color {
	c, ok := ParseColor(hex)
	if !ok {
		c, _ = ParseColor(DefaultColor)
	}
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: clamp01(alpha)}
}

// lerpColor interpolates two Colors including alpha.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

// ensureColors normalizes every entry and substitutes DefaultColor for an
// empty list.
func ensureColors(colors []string) []string {
	if len(colors) == 0 {
		return []string{DefaultColor}
	}
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = NormalizeHex(c)
	}
	return out
}
