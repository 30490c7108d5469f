package oilshape

import "math"

// MotionEnv carries the per-tick inputs shared by every layer.
type MotionEnv struct {
	// GlobalSpeed multiplies every layer's movement and scale speed.
	GlobalSpeed float64
	// Frames is the tick length in nominal frames (1 at the target TPS).
	Frames float64
	// SuppressScale skips z-scale oscillation for this tick.
	SuppressScale bool
	// Overscan widens the drift wrap band to [-Overscan, 1+Overscan).
	Overscan float64
}

// DefaultMotionEnv is a single nominal tick at normal speed.
var DefaultMotionEnv = MotionEnv{GlobalSpeed: 1, Frames: 1}

// Integrate advances one layer by one tick and returns the updated layer.
// It is a pure function of its inputs: identical layers and environments
// always produce bit-identical results.
func Integrate(l Layer, env MotionEnv) Layer {
	frames := env.Frames
	if !finite(frames) || frames < 0 {
		frames = 0
	}
	speed := env.GlobalSpeed
	if !finite(speed) || speed < 0 {
		speed = 0
	}

	switch l.MovementStyle {
	case MoveStill:
		l.VX, l.VY = 0, 0
	case MoveBounce:
		l = bounce(l, speed, frames)
	case MoveDrift:
		l = drift(l, speed, frames, env.Overscan)
	case MoveOrbit:
		l = orbit(l, speed, frames)
	case MoveSpin:
		l.Rotation = normalizeDegrees(l.Rotation + l.MovementSpeed*spinUnit*speed*frames)
		l.VX, l.VY = 0, 0
	}

	if !env.SuppressScale {
		l.Position = oscillateScale(l, speed, frames)
	}
	return l
}

// IntegrateScene advances every layer in s by one tick and returns a new
// scene. The scene's GlobalSpeed replaces env.GlobalSpeed. The input scene
// is not modified.
func IntegrateScene(s Scene, env MotionEnv) Scene {
	env.GlobalSpeed = s.GlobalSpeed
	out := s
	out.Layers = make([]Layer, len(s.Layers))
	for i := range s.Layers {
		out.Layers[i] = Integrate(s.Layers[i], env)
	}
	return out
}

// bounce integrates the velocity and reflects the heading when the layer
// crosses a canvas edge. Crossing a vertical edge (x) maps the angle to
// 180-a; crossing a horizontal edge (y) maps it to 360-a.
func bounce(l Layer, speed, frames float64) Layer {
	l.RecomputeVelocity(speed)
	x := l.Position.X + l.VX*frames
	y := l.Position.Y + l.VY*frames
	angle := l.MovementAngle
	if x < 0 || x > 1 {
		angle = 180 - angle
		x = clamp01(x)
	}
	if y < 0 || y > 1 {
		angle = 360 - angle
		y = clamp01(y)
	}
	l.MovementAngle = normalizeDegrees(angle)
	l.Position.X, l.Position.Y = x, y
	l.RecomputeVelocity(speed)
	return l
}

// drift integrates the velocity and wraps the position toroidally into
// [-overscan, 1+overscan).
func drift(l Layer, speed, frames, overscan float64) Layer {
	l.RecomputeVelocity(speed)
	if !finite(overscan) || overscan < 0 {
		overscan = 0
	}
	l.Position.X = wrap(l.Position.X+l.VX*frames, overscan)
	l.Position.Y = wrap(l.Position.Y+l.VY*frames, overscan)
	return l
}

// wrap maps v into [-band, 1+band).
func wrap(v, band float64) float64 {
	span := 1 + 2*band
	v = math.Mod(v+band, span)
	if v < 0 {
		v += span
	}
	return v - band
}

// orbit advances the phase along the layer's orbit ellipse. A zero radius
// is derived from the current position around the canvas center so the
// layer does not jump when it starts orbiting.
func orbit(l Layer, speed, frames float64) Layer {
	o := l.Orbit
	if o.RadiusX <= 0 && o.RadiusY <= 0 {
		if o.CenterX == 0 && o.CenterY == 0 {
			o.CenterX, o.CenterY = 0.5, 0.5
		}
		dx := l.Position.X - o.CenterX
		dy := l.Position.Y - o.CenterY
		r := math.Max(math.Hypot(dx, dy), 0.05)
		o.RadiusX, o.RadiusY = r, r
		o.Phase = math.Atan2(dy, dx)
	}
	o.Phase = math.Mod(o.Phase+l.MovementSpeed*orbitUnit*speed*frames, 2*math.Pi)
	sin, cos := math.Sincos(o.Phase)
	l.Position.X = clamp01(o.CenterX + o.RadiusX*cos)
	l.Position.Y = clamp01(o.CenterY + o.RadiusY*sin)
	l.Orbit = o
	l.VX, l.VY = 0, 0
	return l
}

// minZScale is the floor for the z-scale when a layer's bounds are not
// positive.
const minZScale = 0.01

// oscillateScale moves the z-scale toward the current bound and flips
// direction when a bound is exceeded.
func oscillateScale(l Layer, speed, frames float64) Position {
	p := l.Position
	lo, hi := l.ScaleMin, l.ScaleMax
	if lo > hi {
		lo, hi = hi, lo
	}
	if !(lo > 0) {
		lo = minZScale
	}
	if !(hi >= lo) {
		hi = lo
	}
	if !(p.Scale > 0) || !finite(p.Scale) {
		p.Scale = lo
	}
	dir := 1.0
	if p.ScaleDirection < 0 {
		dir = -1
	}
	p.Scale += dir * l.ScaleSpeed * speed * scaleUnit * frames
	switch {
	case p.Scale > hi:
		p.Scale = hi
		p.ScaleDirection = -1
	case p.Scale < lo:
		p.Scale = lo
		p.ScaleDirection = 1
	}
	if p.ScaleDirection == 0 {
		p.ScaleDirection = 1
	}
	return p
}
