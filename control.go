package oilshape

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ErrUnknownParam is returned by SetParam for a path it cannot resolve.
var ErrUnknownParam = errors.New("oilshape: unknown parameter")

// controlOverscan is the band beyond [0, 1] that posX/posY may reach while
// being adjusted from a control surface.
const controlOverscan = 0.1

// paramRanges maps each per-layer field to the natural range that a
// normalized [0, 1] control value is remapped into.
var paramRanges = map[string]Range{
	"numSides":      DefaultBounds.NumSides,
	"curviness":     {0, 1},
	"wobble":        {0, 1},
	"noiseAmount":   DefaultBounds.NoiseAmount,
	"radiusFactor":  {0.02, 0.6},
	"rotation":      {0, 360},
	"movementSpeed": DefaultBounds.MovementSpeed,
	"movementAngle": {0, 360},
	"scaleSpeed":    DefaultBounds.ScaleSpeed,
	"scaleMin":      {0.2, 1},
	"scaleMax":      {1, 2},
	"opacity":       {0, 1},
	"baseScale":     {minBaseScale, maxBaseScale},
	"xOffset":       {-0.5, 0.5},
	"yOffset":       {-0.5, 0.5},
	"posX":          {-controlOverscan, 1 + controlOverscan},
	"posY":          {-controlOverscan, 1 + controlOverscan},
}

// ParamPaths returns every accepted scene-level path and per-layer field
// name in sorted order. Per-layer fields may be used bare (addressing the
// selected layer) or as "layer:<name>:<field>".
func ParamPaths() []string {
	paths := []string{"globalSpeed", "globalOpacity", "background.hue"}
	for field := range paramRanges {
		paths = append(paths, field)
	}
	slices.Sort(paths)
	return paths
}

// SetParam returns a new scene with the parameter at path set from the
// normalized value v, which is clamped to [0, 1] and remapped to the
// field's natural range.
//
// Accepted paths:
//
//	globalSpeed, globalOpacity, background.hue
//	layer:<name>:<field>   a field of the named layer
//	<field>                a field of the selected layer
func (s Scene) SetParam(path string, v float64) (Scene, error) {
	v = clamp01(orZero(v))
	out := s.Clone()

	switch path {
	case "globalSpeed":
		out.GlobalSpeed = Range{0, 3}.Lerp(v)
		return out, nil
	case "globalOpacity":
		out.GlobalOpacity = v
		return out, nil
	case "background.hue":
		_, sat, l := HexToHSL(out.BackgroundColor)
		out.BackgroundColor = HSLToHex(v*360, sat, l)
		return out, nil
	}

	idx := out.Selected
	field := path
	if rest, ok := strings.CutPrefix(path, "layer:"); ok {
		sep := strings.LastIndex(rest, ":")
		if sep < 0 {
			return s, fmt.Errorf("%w: %q", ErrUnknownParam, path)
		}
		name := rest[:sep]
		field = rest[sep+1:]
		idx = out.LayerIndex(name)
		if idx < 0 {
			return s, fmt.Errorf("%w: no layer %q", ErrUnknownParam, name)
		}
	}
	if idx < 0 || idx >= len(out.Layers) {
		return s, fmt.Errorf("%w: no layer selected", ErrUnknownParam)
	}
	r, ok := paramRanges[field]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownParam, path)
	}
	setLayerField(&out.Layers[idx], field, r.Lerp(v))
	return out, nil
}

// setLayerField writes x to the named field and repairs dependent state.
func setLayerField(l *Layer, field string, x float64) {
	switch field {
	case "numSides":
		l.NumSides = min(max(int(math.Round(x)), 3), maxSides)
		if l.Nodes != nil && len(l.Nodes) != l.NumSides {
			l.Nodes = ResampleNodes(l.Nodes, l.NumSides)
		}
	case "curviness":
		l.Curviness = x
	case "wobble":
		l.Wobble = x
	case "noiseAmount":
		l.NoiseAmount = x
	case "radiusFactor":
		l.RadiusFactor, l.RadiusFactorX, l.RadiusFactorY = x, x, x
	case "rotation":
		l.Rotation = normalizeDegrees(x)
	case "movementSpeed":
		l.MovementSpeed = x
	case "movementAngle":
		l.MovementAngle = normalizeDegrees(x)
	case "scaleSpeed":
		l.ScaleSpeed = x
	case "scaleMin":
		l.ScaleMin = x
	case "scaleMax":
		l.ScaleMax = x
	case "opacity":
		l.Opacity = x
	case "baseScale":
		l.BaseScale = x
	case "xOffset":
		l.XOffset = x
	case "yOffset":
		l.YOffset = x
	case "posX":
		l.Position.X = x
	case "posY":
		l.Position.Y = x
	}
	if l.ScaleMin > l.ScaleMax {
		l.ScaleMin, l.ScaleMax = l.ScaleMax, l.ScaleMin
	}
	l.RecomputeVelocity(1)
}
