package oilshape

import "testing"

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#FFF", "#ffffff"},
		{"#FF0000", "#ff0000"},
		{"00ff00", "#00ff00"},
		{"red", "#ff0000"},
		{"Gold", "#ffd700"},
		{"zzz", DefaultColor},
		{"", DefaultColor},
	}
	for _, tt := range tests {
		if got := NormalizeHex(tt.in); got != tt.want {
			t.Errorf("NormalizeHex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHexRGBRoundTrip(t *testing.T) {
	r, g, b := HexToRGB("#336699")
	if r != 0x33 || g != 0x66 || b != 0x99 {
		t.Errorf("HexToRGB = %d,%d,%d", r, g, b)
	}
	if got := RGBToHex(r, g, b); got != "#336699" {
		t.Errorf("RGBToHex = %q", got)
	}
}

func TestHexToHSL(t *testing.T) {
	h, s, l := HexToHSL("#ff0000")
	if !approxEqual(h, 0, 1e-6) || !approxEqual(s, 1, 1e-6) || !approxEqual(l, 0.5, 1e-6) {
		t.Errorf("HexToHSL(red) = %v, %v, %v", h, s, l)
	}
}

func TestHSLToHex(t *testing.T) {
	if got := HSLToHex(120, 1, 0.5); got != "#00ff00" {
		t.Errorf("HSLToHex(120,1,.5) = %q, want #00ff00", got)
	}
	if got := HSLToHex(480, 2, 0.5); got != "#00ff00" {
		t.Errorf("HSLToHex wraps hue and clamps sat: got %q", got)
	}
}

func TestLerpHex(t *testing.T) {
	if got := LerpHex("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("t=0: %q", got)
	}
	if got := LerpHex("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("t=1: %q", got)
	}
	if got := LerpHex("#000000", "#ffffff", 0.5); got != "#808080" {
		t.Errorf("t=0.5: %q, want #808080", got)
	}
	if got := LerpHex("#000000", "#ffffff", 7); got != "#ffffff" {
		t.Errorf("t clamps: %q", got)
	}
}

func TestDarken(t *testing.T) {
	if got := Darken("#ffffff", 0.5); got != "#808080" {
		t.Errorf("Darken(white, .5) = %q, want #808080", got)
	}
}

func TestPerturbHSLZeroShift(t *testing.T) {
	rng := NewSeededRandom(1)
	got := PerturbHSL("#336699", rng, 0, 0, 0)
	r1, g1, b1 := HexToRGB(got)
	if absDiff(r1, 0x33) > 1 || absDiff(g1, 0x66) > 1 || absDiff(b1, 0x99) > 1 {
		t.Errorf("PerturbHSL with zero shifts = %q, want ~#336699", got)
	}
}

func TestPerturbHSLDeterministic(t *testing.T) {
	a := PerturbHSL("#336699", NewSeededRandom(5), 30, 0.2, 0.2)
	b := PerturbHSL("#336699", NewSeededRandom(5), 30, 0.2, 0.2)
	if a != b {
		t.Errorf("same seed gave %q and %q", a, b)
	}
}

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex("#ff0000", 0.5)
	if !approxEqual(c.R, 1, 1e-9) || c.G != 0 || c.B != 0 || c.A != 0.5 {
		t.Errorf("ColorFromHex = %+v", c)
	}
	w := ColorFromHex("nope", 2)
	if !approxEqual(w.R, 1, 1e-9) || !approxEqual(w.B, 1, 1e-9) || w.A != 1 {
		t.Errorf("invalid hex = %+v, want opaque white", w)
	}
}

func TestEnsureColors(t *testing.T) {
	got := ensureColors(nil)
	if len(got) != 1 || got[0] != DefaultColor {
		t.Errorf("ensureColors(nil) = %v", got)
	}
	src := []string{"#ABC", "junk"}
	got = ensureColors(src)
	if got[0] != "#aabbcc" || got[1] != DefaultColor {
		t.Errorf("ensureColors = %v", got)
	}
	if src[0] != "#ABC" {
		t.Error("ensureColors modified its input")
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
