package oilshape

import (
	"math"
	"testing"
)

func TestRegularPolygon(t *testing.T) {
	pts := RegularPolygon(4)
	want := []Vec2{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i, p := range pts {
		if !approxEqual(p.X, want[i].X, 1e-9) || !approxEqual(p.Y, want[i].Y, 1e-9) {
			t.Errorf("pts[%d] = %v, want %v", i, p, want[i])
		}
	}
	if n := len(RegularPolygon(1)); n != 3 {
		t.Errorf("RegularPolygon(1) has %d points, want 3", n)
	}
}

func TestValidNodes(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Vec2
		want  bool
	}{
		{"triangle", []Vec2{{0, 0}, {1, 0}, {0, 1}}, true},
		{"two points", []Vec2{{0, 0}, {1, 0}}, false},
		{"all same", []Vec2{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}, false},
		{"nan", []Vec2{{0, 0}, {math.NaN(), 0}, {0, 1}}, false},
		{"inf", []Vec2{{0, 0}, {math.Inf(1), 0}, {0, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidNodes(tt.nodes); got != tt.want {
				t.Errorf("ValidNodes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResampleRoundTrip(t *testing.T) {
	hex := RegularPolygon(6)
	grown := ResampleNodes(hex, 12)
	if len(grown) != 12 {
		t.Fatalf("grown to %d, want 12", len(grown))
	}
	back := ResampleNodes(grown, 6)
	if len(back) != 6 {
		t.Fatalf("shrunk to %d, want 6", len(back))
	}
	for i := range hex {
		if !approxEqual(back[i].X, hex[i].X, 1e-9) || !approxEqual(back[i].Y, hex[i].Y, 1e-9) {
			t.Errorf("back[%d] = %v, want %v", i, back[i], hex[i])
		}
	}
}

func TestResampleGrowSplitsLongestEdge(t *testing.T) {
	// A wide rectangle: the two long edges are split first.
	rect := []Vec2{{-1, -0.1}, {1, -0.1}, {1, 0.1}, {-1, 0.1}}
	got := ResampleNodes(rect, 5)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	mid := got[1]
	if !approxEqual(mid.X, 0, 1e-9) || !approxEqual(mid.Y, -0.1, 1e-9) {
		t.Errorf("inserted vertex = %v, want (0, -0.1)", mid)
	}
}

func TestResampleShrinkRemovesFlattestVertex(t *testing.T) {
	// The vertex at (0, -1) lies on a straight edge and costs nothing to drop.
	square := []Vec2{{-1, -1}, {0, -1}, {1, -1}, {1, 1}, {-1, 1}}
	got := ResampleNodes(square, 4)
	for _, p := range got {
		if p == (Vec2{0, -1}) {
			t.Errorf("collinear vertex kept: %v", got)
		}
	}
}

func TestResampleDegenerateFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Vec2
	}{
		{"nil", nil},
		{"two points", []Vec2{{0, 0}, {1, 1}}},
		{"coincident", []Vec2{{0.2, 0.2}, {0.2, 0.2}, {0.2, 0.2}, {0.2, 0.2}}},
		{"nan", []Vec2{{0, 0}, {math.NaN(), 1}, {1, 0}}},
	}
	want := RegularPolygon(5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResampleNodes(tt.nodes, 5)
			if len(got) != 5 {
				t.Fatalf("len = %d, want 5", len(got))
			}
			for i := range got {
				if !approxEqual(got[i].X, want[i].X, 1e-9) || !approxEqual(got[i].Y, want[i].Y, 1e-9) {
					t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestResampleDoesNotMutateInput(t *testing.T) {
	in := RegularPolygon(6)
	orig := cloneNodes(in)
	_ = ResampleNodes(in, 9)
	_ = ResampleNodes(in, 4)
	for i := range in {
		if in[i] != orig[i] {
			t.Fatalf("input modified at %d: %v != %v", i, in[i], orig[i])
		}
	}
}

func TestExtents(t *testing.T) {
	square := []Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	r := Extents(square, 0)
	if r.X != -1 || r.Y != -1 || r.Width != 2 || r.Height != 2 {
		t.Errorf("Extents(0) = %v", r)
	}
	r = Extents(square, 45)
	if !approxEqual(r.Width, 2*math.Sqrt2, 1e-9) || !approxEqual(r.Height, 2*math.Sqrt2, 1e-9) {
		t.Errorf("Extents(45) = %v, want 2√2 square", r)
	}
	if (Extents(nil, 30) != Rect{}) {
		t.Error("Extents(nil) should be zero")
	}
}

func TestFitNodes(t *testing.T) {
	got := FitNodes([]Vec2{{10, 10}, {30, 10}, {30, 20}})
	r := Extents(got, 0)
	if !approxEqual(r.X, -1, 1e-9) || !approxEqual(r.Width, 2, 1e-9) {
		t.Errorf("fitted extents = %v", r)
	}
	if !approxEqual(r.Height, 1, 1e-9) {
		t.Errorf("height = %v, want 1 (uniform scale)", r.Height)
	}
}

func TestSimplifyNodes(t *testing.T) {
	square := []Vec2{{-1, -1}, {0, -1}, {1, -1}, {1, 1}, {0, 1}, {-1, 1}}
	got := SimplifyNodes(square, 0.01)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4: %v", len(got), got)
	}
	for _, p := range got {
		if p.X == 0 {
			t.Errorf("collinear midpoint %v kept", p)
		}
	}
	if n := len(SimplifyNodes(square, 0)); n != len(square) {
		t.Errorf("zero tolerance kept %d points, want %d", n, len(square))
	}
	tri := []Vec2{{0, 0}, {1, 0}, {0, 1}}
	if n := len(SimplifyNodes(tri, 10)); n != 3 {
		t.Errorf("triangle simplified to %d points", n)
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	if a := PolygonArea(square); !approxEqual(a, 4, 1e-12) {
		t.Errorf("area = %v, want 4", a)
	}
	reversed := []Vec2{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
	if a := PolygonArea(reversed); !approxEqual(a, 4, 1e-12) {
		t.Errorf("clockwise area = %v, want 4", a)
	}
}
