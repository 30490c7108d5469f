package oilshape

import (
	"math"
	"testing"
)

func movingLayer(style MovementStyle, x, y, angle, speed float64) Layer {
	l := DefaultLayer("m")
	l.MovementStyle = style
	l.MovementAngle = angle
	l.MovementSpeed = speed
	l.ScaleSpeed = 0
	l.Position.X, l.Position.Y = x, y
	l.RecomputeVelocity(1)
	return l
}

func TestIntegrateStill(t *testing.T) {
	l := movingLayer(MoveStill, 0.3, 0.4, 45, 10)
	got := Integrate(l, DefaultMotionEnv)
	if got.Position.X != 0.3 || got.Position.Y != 0.4 {
		t.Errorf("still layer moved to %v", got.Position)
	}
	if got.VX != 0 || got.VY != 0 {
		t.Errorf("still layer has velocity %v,%v", got.VX, got.VY)
	}
}

func TestBounceVerticalEdge(t *testing.T) {
	l := movingLayer(MoveBounce, 0.98, 0.5, 0, 30)
	got := Integrate(l, DefaultMotionEnv)
	if got.Position.X != 1 {
		t.Errorf("X = %v, want clamped to 1", got.Position.X)
	}
	if !approxEqual(got.MovementAngle, 180, 1e-9) {
		t.Errorf("angle = %v, want 180", got.MovementAngle)
	}
	if got.VX >= 0 {
		t.Errorf("VX = %v, want negative after bounce", got.VX)
	}
}

func TestBounceHorizontalEdge(t *testing.T) {
	l := movingLayer(MoveBounce, 0.5, 0.98, 90, 30)
	got := Integrate(l, DefaultMotionEnv)
	if got.Position.Y != 1 {
		t.Errorf("Y = %v, want clamped to 1", got.Position.Y)
	}
	if !approxEqual(got.MovementAngle, 270, 1e-9) {
		t.Errorf("angle = %v, want 270", got.MovementAngle)
	}
}

func TestBounceCorner(t *testing.T) {
	l := movingLayer(MoveBounce, 0.01, 0.01, 225, 30)
	got := Integrate(l, DefaultMotionEnv)
	// 225 -> 180-225 = -45 -> 360-(-45) = 405 -> 45
	if !approxEqual(got.MovementAngle, 45, 1e-9) {
		t.Errorf("angle = %v, want 45", got.MovementAngle)
	}
	if got.Position.X != 0 || got.Position.Y != 0 {
		t.Errorf("position = %v, want corner", got.Position)
	}
}

func TestDriftWraps(t *testing.T) {
	l := movingLayer(MoveDrift, 0.999, 0.5, 0, 10)
	got := Integrate(l, DefaultMotionEnv)
	if !approxEqual(got.Position.X, 0.009, 1e-9) {
		t.Errorf("X = %v, want 0.009", got.Position.X)
	}

	l = movingLayer(MoveDrift, 0.001, 0.5, 180, 10)
	got = Integrate(l, DefaultMotionEnv)
	if !approxEqual(got.Position.X, 0.991, 1e-9) {
		t.Errorf("X = %v, want 0.991", got.Position.X)
	}
}

func TestDriftOverscan(t *testing.T) {
	env := DefaultMotionEnv
	env.Overscan = 0.1
	l := movingLayer(MoveDrift, 0.999, 0.5, 0, 10)
	got := Integrate(l, env)
	if !approxEqual(got.Position.X, 1.009, 1e-9) {
		t.Errorf("X = %v, want 1.009 inside the overscan band", got.Position.X)
	}
	l.Position.X = 1.095
	got = Integrate(l, env)
	if !approxEqual(got.Position.X, -0.095, 1e-9) {
		t.Errorf("X = %v, want -0.095 after wrapping the band", got.Position.X)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, band, want float64
	}{
		{0.5, 0, 0.5},
		{1, 0, 0},
		{-0.25, 0, 0.75},
		{2.5, 0, 0.5},
		{1.15, 0.1, -0.05},
		{-0.15, 0.1, 1.05},
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.band); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("wrap(%v, %v) = %v, want %v", tt.v, tt.band, got, tt.want)
		}
	}
}

func TestSpin(t *testing.T) {
	l := movingLayer(MoveSpin, 0.5, 0.5, 0, 2)
	l.Rotation = 359.5
	got := Integrate(l, DefaultMotionEnv)
	if !approxEqual(got.Rotation, 0.5, 1e-9) {
		t.Errorf("Rotation = %v, want 0.5", got.Rotation)
	}
	if got.Position != l.Position {
		t.Error("spin moved the layer")
	}
}

func TestOrbitKeepsRadius(t *testing.T) {
	l := movingLayer(MoveOrbit, 0.7, 0.5, 0, 5)
	for i := 0; i < 50; i++ {
		l = Integrate(l, DefaultMotionEnv)
	}
	if !approxEqual(l.Orbit.RadiusX, 0.2, 1e-9) {
		t.Fatalf("RadiusX = %v, want 0.2", l.Orbit.RadiusX)
	}
	r := math.Hypot(l.Position.X-0.5, l.Position.Y-0.5)
	if !approxEqual(r, 0.2, 1e-9) {
		t.Errorf("distance from center = %v, want 0.2", r)
	}
	if !approxEqual(l.Orbit.Phase, 50*5*orbitUnit, 1e-9) {
		t.Errorf("Phase = %v", l.Orbit.Phase)
	}
}

func TestScaleOscillation(t *testing.T) {
	l := movingLayer(MoveStill, 0.5, 0.5, 0, 0)
	l.ScaleMin, l.ScaleMax = 0.9, 1.1
	l.ScaleSpeed = 20
	l.Position.Scale = 1.09
	got := Integrate(l, DefaultMotionEnv)
	if got.Position.Scale != 1.1 || got.Position.ScaleDirection != -1 {
		t.Errorf("scale = %v dir %d, want 1.1 dir -1", got.Position.Scale, got.Position.ScaleDirection)
	}
	got = Integrate(got, DefaultMotionEnv)
	if !approxEqual(got.Position.Scale, 1.08, 1e-9) {
		t.Errorf("scale = %v, want 1.08", got.Position.Scale)
	}

	got.Position.Scale = 0.91
	got = Integrate(got, DefaultMotionEnv)
	if got.Position.Scale != 0.9 || got.Position.ScaleDirection != 1 {
		t.Errorf("scale = %v dir %d, want 0.9 dir 1", got.Position.Scale, got.Position.ScaleDirection)
	}
}

func TestSuppressScale(t *testing.T) {
	l := movingLayer(MoveBounce, 0.5, 0.5, 0, 1)
	l.ScaleSpeed = 20
	env := DefaultMotionEnv
	env.SuppressScale = true
	got := Integrate(l, env)
	if got.Position.Scale != l.Position.Scale {
		t.Errorf("scale changed to %v", got.Position.Scale)
	}
}

func TestIntegrateScalesWithSpeedAndFrames(t *testing.T) {
	l := movingLayer(MoveDrift, 0.5, 0.5, 0, 10)
	got := Integrate(l, MotionEnv{GlobalSpeed: 2, Frames: 3})
	if !approxEqual(got.Position.X, 0.5+0.01*6, 1e-9) {
		t.Errorf("X = %v, want 0.56", got.Position.X)
	}
	got = Integrate(l, MotionEnv{GlobalSpeed: 0, Frames: 1})
	if got.Position.X != 0.5 {
		t.Errorf("zero global speed moved layer to %v", got.Position.X)
	}
}

func TestIntegrateDeterministic(t *testing.T) {
	l := movingLayer(MoveBounce, 0.2, 0.8, 33, 7)
	l.ScaleSpeed = 3
	a, b := l, l
	for i := 0; i < 500; i++ {
		a = Integrate(a, DefaultMotionEnv)
		b = Integrate(b, DefaultMotionEnv)
	}
	if a.Position != b.Position || a.MovementAngle != b.MovementAngle {
		t.Errorf("runs diverged: %v vs %v", a.Position, b.Position)
	}
}

func TestIntegrateSceneDoesNotMutate(t *testing.T) {
	s := NewScene()
	s.Layers[0] = movingLayer(MoveDrift, 0.5, 0.5, 0, 10)
	out := IntegrateScene(s, MotionEnv{Frames: 1})
	if s.Layers[0].Position.X != 0.5 {
		t.Error("input scene was modified")
	}
	if !approxEqual(out.Layers[0].Position.X, 0.51, 1e-9) {
		t.Errorf("X = %v, want 0.51", out.Layers[0].Position.X)
	}
}

func TestScaleStaysPositiveWithUnsetBounds(t *testing.T) {
	for _, bounds := range [][2]float64{{0, 0}, {0, -1}, {-2, -1}} {
		l := Layer{
			MovementStyle: MoveStill,
			ScaleMin:      bounds[0],
			ScaleMax:      bounds[1],
			ScaleSpeed:    3,
			Position:      Position{X: 0.5, Y: 0.5, Scale: 0.5, ScaleDirection: -1},
		}
		for i := 0; i < 10; i++ {
			l = Integrate(l, MotionEnv{GlobalSpeed: 1, Frames: 100})
			if !(l.Position.Scale > 0) {
				t.Fatalf("bounds %v step %d: Scale = %v, want > 0", bounds, i, l.Position.Scale)
			}
		}
	}
}
