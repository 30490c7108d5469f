package oilshape

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	c := Rect{X: -1, Y: 2, Width: 4, Height: 6}.Center()
	if c.X != 1 || c.Y != 5 {
		t.Errorf("Center = %v, want (1, 5)", c)
	}
}

// --- Range ---

func TestRangeClampInverted(t *testing.T) {
	r := Range{Min: 5, Max: 1}
	if got := r.Clamp(10); got != 5 {
		t.Errorf("Clamp(10) = %f, want 5", got)
	}
	if got := r.Clamp(-3); got != 1 {
		t.Errorf("Clamp(-3) = %f, want 1", got)
	}
}

func TestRangeLerp(t *testing.T) {
	r := Range{Min: -1, Max: 3}
	if got := r.Lerp(0.25); got != 0 {
		t.Errorf("Lerp(0.25) = %f, want 0", got)
	}
}

// --- Enums ---

func TestBlendModeText(t *testing.T) {
	for _, m := range BlendModes {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", m, err)
		}
		var got BlendMode
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != m {
			t.Errorf("round trip %v = %v", m, got)
		}
	}
}

func TestBlendModeAliases(t *testing.T) {
	tests := []struct {
		in   string
		want BlendMode
	}{
		{"source-over", BlendNormal},
		{"add", BlendAdd},
		{"", BlendNormal},
		{"bogus", BlendNormal},
	}
	for _, tt := range tests {
		var got BlendMode
		_ = got.UnmarshalText([]byte(tt.in))
		if got != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMovementStyleUnknownIsStill(t *testing.T) {
	m := MoveOrbit
	_ = m.UnmarshalText([]byte("teleport"))
	if m != MoveStill {
		t.Errorf("unknown style = %v, want still", m)
	}
	_ = m.UnmarshalText([]byte("spin"))
	if m != MoveSpin {
		t.Errorf("spin = %v, want spin", m)
	}
}

func TestLayerTypeText(t *testing.T) {
	var lt LayerType
	_ = lt.UnmarshalText([]byte("image"))
	if lt != LayerImage {
		t.Errorf("image = %v", lt)
	}
	_ = lt.UnmarshalText([]byte("whatever"))
	if lt != LayerShape {
		t.Errorf("whatever = %v, want shape", lt)
	}
}
