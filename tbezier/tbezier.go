// Package tbezier interpolates a finite ordered point set with a smooth curve
// built from cubic Bezier segments. Control points are placed along tangents
// to the angles of the polyline through the input points.
//
// Two tangent policies are provided. [SO1] builds a curve with smoothness
// order 1 using strict bounds that keep control points inside the cell spanned
// by neighboring points, which avoids false extremes and loops; prefer it for
// visualizing data. [SO0] has smoothness order 0 and shortens tangents
// heuristically so the result stays close to the polyline and looks nicer.
//
// The algorithm is described in http://sv-journal.org/2017-1/04.php?lang=en.
package tbezier

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

const (
	// Resolution is the number of points sampled from each Bezier segment.
	Resolution = 32
	// C affects curvature and should be in [2, +inf).
	C = 2.0
	// epsilon is the threshold below which values are considered zero.
	epsilon = 1e-5
)

// ErrInsufficientPoints is returned when fewer than 3 points are interpolated.
var ErrInsufficientPoints = errors.New("tbezier: interpolation requires at least 3 points")

// Order selects the tangent policy used by [Interpolate].
type Order uint8

const (
	// SO0 builds a smoothness order 0 curve with heuristically shortened tangents.
	SO0 Order = iota
	// SO1 builds a smoothness order 1 curve with tangents clamped to the neighboring cells.
	SO1
)

func (o Order) String() string {
	switch o {
	case SO0:
		return "SO0"
	case SO1:
		return "SO1"
	}
	return fmt.Sprintf("Order(%d)", uint8(o))
}

// Interpolate appends to dst the Bezier segments interpolating values in order.
// One segment is produced for each pair of consecutive points.
func Interpolate(dst []Segment, values []ms2.Vec, order Order) ([]Segment, error) {
	if order != SO0 && order != SO1 {
		return dst, fmt.Errorf("tbezier: unknown smoothness order %v", order)
	}
	n := len(values) - 1
	if n < 2 {
		return dst, ErrInsufficientPoints
	}
	var tgL, tgR ms2.Vec
	next := Normalize(ms2.Sub(values[1], values[0]))
	for i := 0; i < n; i++ {
		tgL = tgR
		cur := next
		deltaC := ms2.Sub(values[i+1], values[i])
		if i < n-1 {
			next = Normalize(ms2.Sub(values[i+2], values[i+1]))
			tgR = tangent(cur, next)
		} else {
			tgR = ms2.Vec{}
		}
		var l1, l2 float32
		if order == SO0 {
			deltaL, deltaR := deltaC, deltaC
			if i > 0 {
				deltaL = AbsMin(deltaC, ms2.Sub(values[i], values[i-1]))
			}
			if i < n-1 {
				deltaR = AbsMin(deltaC, ms2.Sub(values[i+2], values[i+1]))
			}
			l1 = tangentLength(tgL, deltaL)
			l2 = tangentLength(tgR, deltaR)
		} else {
			// Tangents may point out of the cell bounded by the segment's
			// endpoints. Clamp them to its border so control points stay inside.
			tgL = clampToCell(tgL, deltaC)
			tgR = clampToCell(tgR, deltaC)
			l1 = tangentLength(tgL, deltaC)
			l2 = tangentLength(tgR, deltaC)
			if !isZero(tgL.X) && !isZero(tgR.X) {
				l1, l2 = avoidCrossing(values[i], values[i+1], tgL, tgR, l1, l2)
			}
		}
		p0, p3 := values[i], values[i+1]
		dst = append(dst, Segment{
			p0,
			ms2.Add(p0, ms2.Scale(l1, tgL)),
			ms2.Sub(p3, ms2.Scale(l2, tgR)),
			p3,
		})
	}
	return dst, nil
}

// tangent estimates the direction at the vertex joining the unit edge directions cur and next.
func tangent(cur, next ms2.Vec) ms2.Vec {
	var tg ms2.Vec
	switch {
	case isZero(cur.X) || isZero(cur.Y):
		tg = cur
	case isZero(next.X) || isZero(next.Y):
		tg = next
	default:
		tg = ms2.Add(cur, next)
	}
	return Normalize(tg)
}

// tangentLength returns the length along tg whose X displacement is delta.X/C,
// shortened so the Y displacement does not overshoot delta.Y.
func tangentLength(tg, delta ms2.Vec) float32 {
	var l float32
	if !isZero(tg.X) {
		l = delta.X / (C * tg.X)
	}
	if math32.Abs(l*tg.Y) > math32.Abs(delta.Y) {
		if isZero(tg.Y) {
			l = 0
		} else {
			l = delta.Y / tg.Y
		}
	}
	return l
}

func clampToCell(tg, delta ms2.Vec) ms2.Vec {
	if Sign(tg.X) != Sign(delta.X) {
		tg.X = 0
	}
	if Sign(tg.Y) != Sign(delta.Y) {
		tg.Y = 0
	}
	return tg
}

// avoidCrossing zeroes the longer tangent when the tangent lines through p0 and p3
// intersect strictly between them along X, which would produce an S-shaped crossing.
func avoidCrossing(p0, p3, tgL, tgR ms2.Vec, l1, l2 float32) (float32, float32) {
	kL := tgL.Y / tgL.X
	kR := tgR.Y / tgR.X
	den := kL - kR
	if isZero(den) {
		return l1, l2
	}
	x := (p3.Y - kR*p3.X - p0.Y + kL*p0.X) / den
	if x > p0.X && x < p3.X {
		if math32.Abs(l1) > math32.Abs(l2) {
			l1 = 0
		} else {
			l2 = 0
		}
	}
	return l1, l2
}

// Normalize returns v scaled to unit length. Vectors shorter than 1e-5 become the zero vector.
func Normalize(v ms2.Vec) ms2.Vec {
	l := math32.Hypot(v.X, v.Y)
	if isZero(l) {
		return ms2.Vec{}
	}
	return ms2.Vec{X: v.X / l, Y: v.Y / l}
}

// AbsMin returns, for each component, the value of a or b with the smallest magnitude.
func AbsMin(a, b ms2.Vec) ms2.Vec {
	r := b
	if math32.Abs(a.X) < math32.Abs(b.X) {
		r.X = a.X
	}
	if math32.Abs(a.Y) < math32.Abs(b.Y) {
		r.Y = a.Y
	}
	return r
}

// Sign returns -1, 0 or 1. Values within 1e-5 of zero have sign 0.
func Sign(v float32) int {
	switch {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	}
	return 0
}

func isZero(v float32) bool { return math32.Abs(v) < epsilon }
