package tbezier

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

const tol = 1e-5

var pointSets = map[string][]ms2.Vec{
	"arch":     {{X: -1, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: -1}},
	"zigzag":   {{X: -0.9, Y: 0}, {X: -0.5, Y: 0.6}, {X: -0.1, Y: -0.2}, {X: 0.3, Y: 0.5}, {X: 0.8, Y: 0.1}},
	"vertical": {{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}},
	"backward": {{X: 0.5, Y: 0.2}, {X: 0.1, Y: 0.4}, {X: -0.3, Y: -0.1}, {X: -0.8, Y: 0.3}},
	"repeated": {{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}},
}

func vecEqual(a, b ms2.Vec) bool {
	return math32.Abs(a.X-b.X) < tol && math32.Abs(a.Y-b.Y) < tol
}

func isFinite(v ms2.Vec) bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

func TestInterpolateEndpoints(t *testing.T) {
	for name, points := range pointSets {
		for _, order := range []Order{SO0, SO1} {
			segs, err := Interpolate(nil, points, order)
			if err != nil {
				t.Fatalf("%s %v: %s", name, order, err)
			}
			if len(segs) != len(points)-1 {
				t.Fatalf("%s %v: want %d segments, got %d", name, order, len(points)-1, len(segs))
			}
			for i, s := range segs {
				if s[0] != points[i] || s[3] != points[i+1] {
					t.Errorf("%s %v segment %d: end points %v %v do not match input", name, order, i, s[0], s[3])
				}
				for _, p := range s {
					if !isFinite(p) {
						t.Errorf("%s %v segment %d: non finite control point %v", name, order, i, p)
					}
				}
			}
			curve := AppendCurve(nil, segs, Resolution)
			if len(curve) != len(segs)*Resolution+1 {
				t.Errorf("%s %v: want %d curve points, got %d", name, order, len(segs)*Resolution+1, len(curve))
			}
			if !vecEqual(curve[0], points[0]) {
				t.Errorf("%s %v: first curve point %v, want %v", name, order, curve[0], points[0])
			}
			if !vecEqual(curve[len(curve)-1], points[len(points)-1]) {
				t.Errorf("%s %v: last curve point %v, want %v", name, order, curve[len(curve)-1], points[len(points)-1])
			}
		}
	}
}

func TestInterpolateInsufficient(t *testing.T) {
	for _, points := range [][]ms2.Vec{nil, {{X: 1}}, {{X: 1}, {Y: 1}}} {
		for _, order := range []Order{SO0, SO1} {
			segs, err := Interpolate(nil, points, order)
			if !errors.Is(err, ErrInsufficientPoints) {
				t.Errorf("%d points: expected ErrInsufficientPoints, got %v", len(points), err)
			}
			if len(segs) != 0 {
				t.Errorf("%d points: expected no segments, got %d", len(points), len(segs))
			}
		}
	}
	_, err := Interpolate(nil, pointSets["arch"], Order(7))
	if err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestCoincidentPointsZeroTangent(t *testing.T) {
	points := []ms2.Vec{{X: 0.3, Y: 0.3}, {X: 0.3, Y: 0.3}, {X: 0.3, Y: 0.3}}
	for _, order := range []Order{SO0, SO1} {
		segs, err := Interpolate(nil, points, order)
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range segs {
			for j, p := range s {
				if p != points[0] {
					t.Errorf("%v segment %d point %d: expected %v, got %v", order, i, j, points[0], p)
				}
			}
		}
	}
}

func TestSO1ControlPointsInsideCell(t *testing.T) {
	// With SO1 control points of each segment must lie within the bounding box of its end points.
	for name, points := range pointSets {
		segs, err := Interpolate(nil, points, SO1)
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range segs {
			minx, maxx := math32.Min(s[0].X, s[3].X), math32.Max(s[0].X, s[3].X)
			miny, maxy := math32.Min(s[0].Y, s[3].Y), math32.Max(s[0].Y, s[3].Y)
			for _, p := range s[1:3] {
				if p.X < minx-tol || p.X > maxx+tol || p.Y < miny-tol || p.Y > maxy+tol {
					t.Errorf("%s segment %d: control point %v outside cell [%v,%v]x[%v,%v]", name, i, p, minx, maxx, miny, maxy)
				}
			}
		}
	}
}

func TestArchSymmetry(t *testing.T) {
	segs, err := Interpolate(nil, pointSets["arch"], SO0)
	if err != nil {
		t.Fatal(err)
	}
	// Apex tangent is horizontal, first and last tangents are zero.
	if segs[0][1] != segs[0][0] {
		t.Errorf("first control point should coincide with start, got %v", segs[0][1])
	}
	if segs[1][2] != segs[1][3] {
		t.Errorf("last control point should coincide with end, got %v", segs[1][2])
	}
	if !vecEqual(segs[0][2], ms2.Vec{X: -0.5, Y: 1}) {
		t.Errorf("want apex left control point (-0.5,1), got %v", segs[0][2])
	}
	if !vecEqual(segs[1][1], ms2.Vec{X: 0.5, Y: 1}) {
		t.Errorf("want apex right control point (0.5,1), got %v", segs[1][1])
	}
}

func TestSegmentEval(t *testing.T) {
	s := Segment{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if s.Eval(0) != s[0] || s.Eval(1) != s[3] {
		t.Error("segment must interpolate its end points")
	}
	if mid := s.Eval(0.5); !vecEqual(mid, ms2.Vec{X: 0.5, Y: 0.75}) {
		t.Errorf("want (0.5,0.75) at t=0.5, got %v", mid)
	}
	samples := s.AppendSamples(nil, 4)
	if len(samples) != 4 || samples[0] != s[0] {
		t.Errorf("bad samples %v", samples)
	}
}

func TestAppendAdaptive(t *testing.T) {
	s := Segment{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	pts := s.AppendAdaptive(nil, 1e-3, 6)
	if len(pts) < 2 {
		t.Fatalf("expected at least both end points, got %v", pts)
	}
	if pts[0] != s[0] {
		t.Errorf("first adaptive sample %v, want %v", pts[0], s[0])
	}
	if !vecEqual(pts[len(pts)-1], s[3]) {
		t.Errorf("last adaptive sample %v, want %v", pts[len(pts)-1], s[3])
	}
}

func TestHelpers(t *testing.T) {
	if n := Normalize(ms2.Vec{X: 1e-6, Y: -1e-6}); n != (ms2.Vec{}) {
		t.Errorf("tiny vector should normalize to zero, got %v", n)
	}
	if n := Normalize(ms2.Vec{X: 3, Y: 4}); !vecEqual(n, ms2.Vec{X: 0.6, Y: 0.8}) {
		t.Errorf("got %v", n)
	}
	if m := AbsMin(ms2.Vec{X: -0.5, Y: 2}, ms2.Vec{X: 1, Y: -1}); m != (ms2.Vec{X: -0.5, Y: -1}) {
		t.Errorf("got %v", m)
	}
	for v, want := range map[float32]int{1: 1, -1: -1, 0: 0, 5e-6: 0, -5e-6: 0, 2e-5: 1} {
		if got := Sign(v); got != want {
			t.Errorf("Sign(%v) = %d, want %d", v, got, want)
		}
	}
}
