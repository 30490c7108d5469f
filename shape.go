package oilshape

import "math"

// ellipseSegments is the vertex count used when an ellipse must be
// approximated by a polygon.
const ellipseSegments = 64

// Shape is the canvas-space outline for one layer at one instant.
//
// When Controls is nil the outline is a straight-edged polygon. Otherwise
// Controls[i] is the quadratic control point of the edge Points[i] →
// Points[i+1] (wrapping). IsEllipse shapes are described by Center and Radii
// only; Points holds a polygon approximation for callers that want one.
// Subpaths are additional straight-edged contours of multi-contour imports.
type Shape struct {
	Points    []Vec2
	Controls  []Vec2
	Subpaths  [][]Vec2
	Center    Vec2
	Radii     Vec2
	IsEllipse bool
}

// Empty reports whether there is nothing to draw.
func (s Shape) Empty() bool {
	return !s.IsEllipse && len(s.Points) < 3
}

// ShapeGenerator produces layer outlines. It caches seed-derived noise so
// repeated frames of the same layer are cheap. Not safe for concurrent use.
type ShapeGenerator struct {
	static *staticNoise
	params map[int64]oilParams
}

// NewShapeGenerator returns an empty generator.
func NewShapeGenerator() *ShapeGenerator {
	return &ShapeGenerator{
		static: newStaticNoise(),
		params: make(map[int64]oilParams),
	}
}

// Reset drops all cached noise.
func (g *ShapeGenerator) Reset() {
	g.static.reset()
	clear(g.params)
}

// Generate returns the outline of layer at time t (seconds) on a canvas of
// w×h pixels. Missing or invalid parameters yield an empty Shape; callers
// skip drawing instead of failing.
func (g *ShapeGenerator) Generate(layer Layer, t, w, h float64) Shape {
	if !(w > 0) || !(h > 0) || !finite(t) {
		return Shape{}
	}
	rfx, rfy := layer.Radii()
	scale := layer.Position.Scale * layer.BaseScale
	if !(scale > 0) || !finite(scale) || !finite(rfx) || !finite(rfy) {
		return Shape{}
	}
	minDim := math.Min(w, h)
	center := Vec2{
		X: (layer.Position.X + layer.XOffset) * w,
		Y: (layer.Position.Y + layer.YOffset) * h,
	}
	if !finite(center.X) || !finite(center.Y) {
		return Shape{}
	}

	switch layer.Type {
	case LayerImage:
		return imageQuad(layer, center, w, h, scale)
	case LayerShape:
	default:
		return Shape{}
	}

	radii := Vec2{X: rfx * minDim * scale, Y: rfy * minDim * scale}
	if !(radii.X > 0) || !(radii.Y > 0) {
		return Shape{}
	}

	if layer.Nodes != nil {
		if !ValidNodes(layer.Nodes) {
			return Shape{}
		}
		return g.customShape(layer, t, center, radii)
	}
	if layer.NumSides < 3 {
		return Shape{}
	}
	if isEllipse(layer) {
		return Shape{
			Points:    ellipsePoints(center, radii, layer.Rotation),
			Center:    center,
			Radii:     radii,
			IsEllipse: true,
		}
	}
	return g.oilShape(layer, t, center, radii)
}

// isEllipse reports whether the layer is a fully rounded, unperturbed
// procedural shape that the compositor may draw as an ellipse.
func isEllipse(l Layer) bool {
	return l.Nodes == nil && l.NoiseAmount == 0 && l.Wobble == 0 && l.Curviness >= 1
}

// oilShape synthesizes numSides vertices perturbed by the layer's
// trigonometric noise field.
func (g *ShapeGenerator) oilShape(l Layer, t float64, center, radii Vec2) Shape {
	p := g.oilParams(l.Seed)
	n := l.NumSides
	rot := degToRad(l.Rotation)
	pts := make([]Vec2, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		r := p.radius(theta, t, l.NoiseAmount, l.Curviness, l.Wobble)
		sin, cos := math.Sincos(theta + rot)
		pts[i] = Vec2{
			X: center.X + cos*radii.X*r,
			Y: center.Y + sin*radii.Y*r,
		}
	}
	return Shape{
		Points:   pts,
		Controls: edgeControls(pts, center, l.Curviness),
		Center:   center,
		Radii:    radii,
	}
}

// customShape maps normalized nodes to canvas space with rotation, static
// per-vertex noise and a time-varying drift.
func (g *ShapeGenerator) customShape(l Layer, t float64, center, radii Vec2) Shape {
	sin, cos := math.Sincos(degToRad(l.Rotation))
	noisePx := l.NoiseAmount * 0.1 * math.Min(radii.X, radii.Y)
	variation := l.Wobble * 0.05 * math.Min(radii.X, radii.Y)
	pts := make([]Vec2, len(l.Nodes))
	for i, node := range l.Nodes {
		x := node.X*cos - node.Y*sin
		y := node.X*sin + node.Y*cos
		x *= radii.X
		y *= radii.Y
		if noisePx > 0 {
			off := g.static.offset(l.NoiseSeed, i)
			x += off.X * noisePx
			y += off.Y * noisePx
		}
		phase := t + float64(i)*0.5
		x += math.Cos(phase) * variation
		y += math.Sin(phase) * variation
		pts[i] = Vec2{X: center.X + x, Y: center.Y + y}
	}
	var subpaths [][]Vec2
	for _, sp := range l.Subpaths {
		if !ValidNodes(sp) {
			continue
		}
		out := make([]Vec2, len(sp))
		for i, node := range sp {
			out[i] = Vec2{
				X: center.X + (node.X*cos-node.Y*sin)*radii.X,
				Y: center.Y + (node.X*sin+node.Y*cos)*radii.Y,
			}
		}
		subpaths = append(subpaths, out)
	}
	return Shape{
		Points:   pts,
		Controls: edgeControls(pts, center, l.Curviness),
		Subpaths: subpaths,
		Center:   center,
		Radii:    radii,
	}
}

func (g *ShapeGenerator) oilParams(seed int64) oilParams {
	seed = NormalizeSeed(seed)
	p, ok := g.params[seed]
	if !ok {
		p = deriveOilParams(seed)
		g.params[seed] = p
	}
	return p
}

// edgeControls places one quadratic control point per edge at the edge
// midpoint, pulled toward center by curviness*0.5. Zero curviness returns
// nil: edges are straight.
func edgeControls(pts []Vec2, center Vec2, curviness float64) []Vec2 {
	if curviness <= 0 || len(pts) < 3 {
		return nil
	}
	pull := curviness * 0.5
	ctrl := make([]Vec2, len(pts))
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
		ctrl[i] = Vec2{
			X: mx + (center.X-mx)*pull,
			Y: my + (center.Y-my)*pull,
		}
	}
	return ctrl
}

// ellipsePoints approximates an ellipse with ellipseSegments vertices.
func ellipsePoints(center, radii Vec2, rotationDeg float64) []Vec2 {
	sin, cos := math.Sincos(degToRad(rotationDeg))
	pts := make([]Vec2, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		x := math.Cos(a) * radii.X
		y := math.Sin(a) * radii.Y
		pts[i] = Vec2{X: center.X + x*cos - y*sin, Y: center.Y + x*sin + y*cos}
	}
	return pts
}

// imageQuad returns the rotated bounding quad of an image layer.
func imageQuad(l Layer, center Vec2, w, h, scale float64) Shape {
	hw := l.Width * w * scale / 2
	hh := l.Height * h * scale / 2
	if !(hw > 0) || !(hh > 0) {
		return Shape{}
	}
	sin, cos := math.Sincos(degToRad(l.Rotation))
	corners := [4]Vec2{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	pts := make([]Vec2, 4)
	for i, c := range corners {
		pts[i] = Vec2{X: center.X + c.X*cos - c.Y*sin, Y: center.Y + c.X*sin + c.Y*cos}
	}
	return Shape{Points: pts, Center: center, Radii: Vec2{X: hw, Y: hh}}
}
