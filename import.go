package oilshape

import "slices"

// ImportedShape is the normalized result of an external path import: the
// main contour, any extra contours and the fill colors found in the source.
type ImportedShape struct {
	Nodes    []Vec2
	Subpaths [][]Vec2
	Colors   []string

	// SimplifyTolerance is the Douglas-Peucker tolerance, in fitted [-1, 1]
	// units, applied to every contour. Zero keeps every point.
	SimplifyTolerance float64
	// MinAreaFraction drops subpaths whose area is below this fraction of
	// the fitted bounding box.
	MinAreaFraction float64
}

// ApplyImport returns a copy of l drawing the imported contour. The layer's
// side count follows the node count (up to maxSides) so the nodes are kept
// exactly. Contours are simplified and tiny subpaths dropped per imp. Invalid
// nodes leave the geometry unchanged; imported colors replace the layer's
// colors when any parse.
func ApplyImport(l Layer, imp ImportedShape) Layer {
	out := l.Clone()
	if ValidNodes(imp.Nodes) {
		var subs [][]Vec2
		for _, sp := range imp.Subpaths {
			if ValidNodes(sp) {
				subs = append(subs, sp)
			}
		}
		out.Type = LayerShape
		nodes, subs := fitContours(imp.Nodes, subs)
		out.Nodes = SimplifyNodes(nodes, imp.SimplifyTolerance)
		out.Subpaths = pruneSubpaths(nodes, subs, imp)
		out.NumSides = min(len(out.Nodes), maxSides)
	}
	var colors []string
	for _, c := range imp.Colors {
		if _, ok := ParseColor(c); ok {
			colors = append(colors, NormalizeHex(c))
		}
	}
	if len(colors) > 0 {
		out.Colors = colors
	}
	out.Normalize()
	return out
}

// fitContours copies the contours, rescaling all of them together with
// FitNodes when any point lies outside [-1, 1].
func fitContours(main []Vec2, subs [][]Vec2) ([]Vec2, [][]Vec2) {
	all := slices.Concat(append([][]Vec2{main}, subs...)...)
	ext := Extents(all, 0)
	if ext.X < -1 || ext.Y < -1 || ext.X+ext.Width > 1 || ext.Y+ext.Height > 1 {
		all = FitNodes(all)
	}
	outMain := all[:len(main):len(main)]
	rest := all[len(main):]
	var outSubs [][]Vec2
	for _, sp := range subs {
		outSubs = append(outSubs, rest[:len(sp):len(sp)])
		rest = rest[len(sp):]
	}
	return outMain, outSubs
}

// pruneSubpaths simplifies the fitted subpaths and drops the ones whose
// area is below MinAreaFraction of the bounding box around every contour.
func pruneSubpaths(main []Vec2, subs [][]Vec2, imp ImportedShape) [][]Vec2 {
	var minArea float64
	if imp.MinAreaFraction > 0 {
		ext := Extents(slices.Concat(append([][]Vec2{main}, subs...)...), 0)
		minArea = imp.MinAreaFraction * ext.Width * ext.Height
	}
	var out [][]Vec2
	for _, sp := range subs {
		sp = SimplifyNodes(sp, imp.SimplifyTolerance)
		if PolygonArea(sp) < minArea {
			continue
		}
		out = append(out, sp)
	}
	return out
}
