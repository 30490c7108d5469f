package oilshape

import (
	"math"
	"testing"
)

func TestDefaultLayer(t *testing.T) {
	l := DefaultLayer("x")
	if l.Name != "x" || l.Type != LayerShape || l.NumSides != 6 {
		t.Errorf("DefaultLayer = %v", l)
	}
	if l.NumColors != 1 || l.Colors[0] != DefaultColor {
		t.Errorf("colors = %v (%d)", l.Colors, l.NumColors)
	}
}

func TestLayerNormalizeClamps(t *testing.T) {
	l := Layer{
		NumSides:      1,
		Curviness:     3,
		Wobble:        -1,
		NoiseAmount:   math.NaN(),
		Rotation:      -90,
		MovementAngle: 720,
		ScaleMin:      1.5,
		ScaleMax:      0.5,
		Position:      Position{X: 2, Y: -1, Scale: 0, ScaleDirection: -4},
		Opacity:       9,
		BaseScale:     100,
		XOffset:       3,
		SelectedColor: 7,
		Seed:          0,
	}
	l.Normalize()

	if l.NumSides != 3 {
		t.Errorf("NumSides = %d", l.NumSides)
	}
	if l.Curviness != 1 || l.Wobble != 0 || l.NoiseAmount != 0 {
		t.Errorf("geometry = %v %v %v", l.Curviness, l.Wobble, l.NoiseAmount)
	}
	if l.Rotation != 270 || l.MovementAngle != 0 {
		t.Errorf("angles = %v %v", l.Rotation, l.MovementAngle)
	}
	if l.ScaleMin != 0.5 || l.ScaleMax != 1.5 {
		t.Errorf("scale bounds = %v..%v, want swapped", l.ScaleMin, l.ScaleMax)
	}
	if l.Position.X != 1 || l.Position.Y != 0 || l.Position.Scale != 1 || l.Position.ScaleDirection != -1 {
		t.Errorf("Position = %+v", l.Position)
	}
	if l.Opacity != 1 || l.BaseScale != maxBaseScale || l.XOffset != 0.5 {
		t.Errorf("appearance = %v %v %v", l.Opacity, l.BaseScale, l.XOffset)
	}
	if len(l.Colors) != 1 || l.SelectedColor != 0 {
		t.Errorf("colors = %v selected %d", l.Colors, l.SelectedColor)
	}
	if l.Seed != 2147483646 {
		t.Errorf("Seed = %d", l.Seed)
	}
}

func TestLayerNormalizeNodes(t *testing.T) {
	l := DefaultLayer("n")
	l.NumSides = 5
	l.Nodes = RegularPolygon(8)
	l.Normalize()
	if len(l.Nodes) != 5 {
		t.Errorf("len(Nodes) = %d, want resampled to 5", len(l.Nodes))
	}

	l.Nodes = []Vec2{{0, 0}, {0, 0}, {0, 0}}
	l.Subpaths = [][]Vec2{{{0, 0}}}
	l.Normalize()
	if l.Nodes != nil || l.Subpaths != nil {
		t.Errorf("invalid contours kept: %v %v", l.Nodes, l.Subpaths)
	}
}

func TestLayerNormalizeCapsSides(t *testing.T) {
	l := DefaultLayer("huge")
	l.NumSides = 200000
	l.Nodes = RegularPolygon(3)
	l.Normalize()
	if l.NumSides != maxSides || len(l.Nodes) != maxSides {
		t.Errorf("NumSides = %d, len(Nodes) = %d, want %d", l.NumSides, len(l.Nodes), maxSides)
	}

	l = DefaultLayer("dense")
	l.NumSides = 6
	l.Nodes = RegularPolygon(50000)
	l.Subpaths = [][]Vec2{RegularPolygon(10000)}
	l.Normalize()
	if len(l.Nodes) != 6 {
		t.Errorf("len(Nodes) = %d, want 6", len(l.Nodes))
	}
	if len(l.Subpaths[0]) != maxSides {
		t.Errorf("len(Subpaths[0]) = %d, want %d", len(l.Subpaths[0]), maxSides)
	}
}

func TestLayerCloneIsDeep(t *testing.T) {
	l := DefaultLayer("c")
	l.Nodes = RegularPolygon(6)
	l.Subpaths = [][]Vec2{RegularPolygon(3)}
	l.Vary = &VaryFlags{Colors: true}
	c := l.Clone()
	c.Nodes[0].X = 9
	c.Subpaths[0][0].X = 9
	c.Colors[0] = "#000000"
	c.Vary.Colors = false
	if l.Nodes[0].X == 9 || l.Subpaths[0][0].X == 9 || l.Colors[0] == "#000000" || !l.Vary.Colors {
		t.Error("Clone shares mutable state")
	}
}

func TestLayerRadii(t *testing.T) {
	l := Layer{RadiusFactor: 0.3, RadiusFactorX: 0.1}
	rx, ry := l.Radii()
	if rx != 0.1 || ry != 0.3 {
		t.Errorf("Radii = %v, %v, want 0.1, 0.3", rx, ry)
	}
}

func TestRecomputeVelocity(t *testing.T) {
	l := DefaultLayer("v")
	l.MovementStyle = MoveDrift
	l.MovementSpeed = 10
	l.MovementAngle = 90
	l.RecomputeVelocity(2)
	if !approxEqual(l.VX, 0, 1e-12) || !approxEqual(l.VY, 0.02, 1e-12) {
		t.Errorf("velocity = %v, %v", l.VX, l.VY)
	}
	l.MovementStyle = MoveOrbit
	l.RecomputeVelocity(2)
	if l.VX != 0 || l.VY != 0 {
		t.Error("orbit should carry no linear velocity")
	}
}

func TestLayerVaryDefault(t *testing.T) {
	l := DefaultLayer("v")
	if l.vary() != VaryAll() {
		t.Error("nil vary flags should enable everything")
	}
	l.Vary = &VaryFlags{}
	if l.vary() != (VaryFlags{}) {
		t.Error("explicit vary flags ignored")
	}
}
