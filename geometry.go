package oilshape

import "math"

// minEdgeLength is the shortest edge considered non-degenerate.
const minEdgeLength = 1e-9

// RegularPolygon returns n points at angles 2πi/n on the unit circle,
// centered at the origin. n below 3 is raised to 3.
func RegularPolygon(n int) []Vec2 {
	if n < 3 {
		n = 3
	}
	pts := make([]Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Vec2{X: math.Cos(a), Y: math.Sin(a)}
	}
	return pts
}

// ValidNodes reports whether nodes describe a usable closed contour: at
// least three finite points and at least one edge longer than zero.
func ValidNodes(nodes []Vec2) bool {
	if len(nodes) < 3 {
		return false
	}
	for _, p := range nodes {
		if !finite(p.X) || !finite(p.Y) {
			return false
		}
	}
	for i := range nodes {
		if dist(nodes[i], nodes[(i+1)%len(nodes)]) > minEdgeLength {
			return true
		}
	}
	return false
}

// ResampleNodes returns a closed contour with exactly target vertices.
//
// Growing splits the currently longest edge at its midpoint until the count
// is reached, so new vertices land where the outline is sparsest. Shrinking
// removes the vertex with the smallest straightness penalty
// d(prev,cur)+d(cur,next)-d(prev,next), i.e. the one whose removal distorts
// the outline least. Degenerate input falls back to RegularPolygon(target).
// The input slice is never modified.
func ResampleNodes(nodes []Vec2, target int) []Vec2 {
	if target < 3 {
		target = 3
	}
	if !ValidNodes(nodes) {
		return RegularPolygon(target)
	}
	if len(nodes) == target {
		return nodes
	}

	out := make([]Vec2, len(nodes), max(len(nodes), target))
	copy(out, nodes)

	for len(out) < target {
		longest, best := 0, -1.0
		for i := range out {
			d := dist(out[i], out[(i+1)%len(out)])
			if d > best {
				longest, best = i, d
			}
		}
		a, b := out[longest], out[(longest+1)%len(out)]
		mid := Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		out = append(out, Vec2{})
		copy(out[longest+2:], out[longest+1:])
		out[longest+1] = mid
	}

	for len(out) > target {
		n := len(out)
		victim, best := 0, math.Inf(1)
		for i := range out {
			prev := out[(i-1+n)%n]
			next := out[(i+1)%n]
			penalty := dist(prev, out[i]) + dist(out[i], next) - dist(prev, next)
			if penalty < best {
				victim, best = i, penalty
			}
		}
		out = append(out[:victim], out[victim+1:]...)
	}

	if !ValidNodes(out) {
		return RegularPolygon(target)
	}
	return out
}

// Extents returns the axis-aligned bounding box of nodes after rotating them
// by rotationDeg around the origin. An empty input returns a zero Rect.
func Extents(nodes []Vec2, rotationDeg float64) Rect {
	if len(nodes) == 0 {
		return Rect{}
	}
	sin, cos := math.Sincos(degToRad(rotationDeg))
	var minX, minY, maxX, maxY float64
	for i, p := range nodes {
		x := p.X*cos - p.Y*sin
		y := p.X*sin + p.Y*cos
		if i == 0 {
			minX, maxX, minY, maxY = x, x, y, y
			continue
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FitNodes recenters nodes on the origin and scales them uniformly so the
// larger extent spans [-1, 1]. Degenerate input is returned unchanged.
func FitNodes(nodes []Vec2) []Vec2 {
	ext := Extents(nodes, 0)
	span := math.Max(ext.Width, ext.Height)
	if span <= minEdgeLength {
		return nodes
	}
	c := ext.Center()
	s := 2 / span
	out := make([]Vec2, len(nodes))
	for i, p := range nodes {
		out[i] = Vec2{X: clamp((p.X-c.X)*s, -1, 1), Y: clamp((p.Y-c.Y)*s, -1, 1)}
	}
	return out
}

// SimplifyNodes reduces a closed contour with Douglas-Peucker: points
// closer than tol to the chord that replaces them are dropped. The contour
// is split at the point farthest from the first so both halves simplify
// independently. Results with fewer than 3 points return nodes unchanged.
func SimplifyNodes(nodes []Vec2, tol float64) []Vec2 {
	if !(tol > 0) || len(nodes) <= 3 {
		return cloneNodes(nodes)
	}
	far, best := 0, -1.0
	for i, p := range nodes {
		if d := dist(nodes[0], p); d > best {
			far, best = i, d
		}
	}
	if far == 0 {
		return cloneNodes(nodes)
	}
	ring := append(cloneNodes(nodes), nodes[0])
	keep := make([]bool, len(ring))
	keep[0], keep[far], keep[len(ring)-1] = true, true, true
	douglasPeucker(ring, 0, far, tol, keep)
	douglasPeucker(ring, far, len(ring)-1, tol, keep)

	out := make([]Vec2, 0, len(nodes))
	for i, p := range ring[:len(ring)-1] {
		if keep[i] {
			out = append(out, p)
		}
	}
	if len(out) < 3 {
		return cloneNodes(nodes)
	}
	return out
}

func douglasPeucker(pts []Vec2, first, last int, tol float64, keep []bool) {
	for last-first > 1 {
		idx, best := -1, tol
		for i := first + 1; i < last; i++ {
			if d := segmentDistance(pts[i], pts[first], pts[last]); d > best {
				idx, best = i, d
			}
		}
		if idx < 0 {
			return
		}
		keep[idx] = true
		douglasPeucker(pts, first, idx, tol, keep)
		first = idx
	}
}

// segmentDistance is the distance from p to the segment ab.
func segmentDistance(p, a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 <= minEdgeLength*minEdgeLength {
		return dist(p, a)
	}
	t := clamp01(((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2)
	return dist(p, Vec2{X: a.X + t*dx, Y: a.Y + t*dy})
}

// PolygonArea returns the unsigned shoelace area of a closed contour.
func PolygonArea(nodes []Vec2) float64 {
	var sum float64
	for i, p := range nodes {
		q := nodes[(i+1)%len(nodes)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// decimateNodes keeps n evenly spaced points of nodes. It bounds the input
// to ResampleNodes, whose cost grows with the square of the node count.
func decimateNodes(nodes []Vec2, n int) []Vec2 {
	if len(nodes) <= n {
		return nodes
	}
	out := make([]Vec2, n)
	for i := range out {
		out[i] = nodes[i*len(nodes)/n]
	}
	return out
}

func dist(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func cloneNodes(nodes []Vec2) []Vec2 {
	if nodes == nil {
		return nil
	}
	out := make([]Vec2, len(nodes))
	copy(out, nodes)
	return out
}
