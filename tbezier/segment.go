package tbezier

import (
	"github.com/soypat/geometry/ms2"
	glms2 "github.com/soypat/glgl/math/ms2"
)

// Segment holds the 4 control points of a cubic Bezier curve.
// The curve passes through the first and last control points.
type Segment [4]ms2.Vec

// Eval returns the point on the segment at parameter t in [0, 1].
func (s Segment) Eval(t float32) ms2.Vec {
	t2 := t * t
	t3 := t2 * t
	nt := 1 - t
	nt2 := nt * nt
	nt3 := nt2 * nt
	return ms2.Vec{
		X: nt3*s[0].X + 3*t*nt2*s[1].X + 3*t2*nt*s[2].X + t3*s[3].X,
		Y: nt3*s[0].Y + 3*t*nt2*s[1].Y + 3*t2*nt*s[2].Y + t3*s[3].Y,
	}
}

// AppendSamples appends resolution points sampled at t = i/resolution for i in [0, resolution).
// The end point at t=1 is not included since it is the start of the following segment.
func (s Segment) AppendSamples(dst []ms2.Vec, resolution int) []ms2.Vec {
	for i := 0; i < resolution; i++ {
		dst = append(dst, s.Eval(float32(i)/float32(resolution)))
	}
	return dst
}

// cubicBezier is the Bernstein basis in power form; row k holds the coefficients of t^k.
var cubicBezier = glms2.NewSpline3([]float32{
	1, 0, 0, 0,
	-3, 3, 0, 0,
	3, -6, 3, 0,
	-1, 3, -3, 1,
})

// AppendAdaptive appends points sampled from the segment by recursive bisection until
// the curve deviates less than tol from its chords or maxDepth is reached.
// Both end points are included.
func (s Segment) AppendAdaptive(dst []ms2.Vec, tol float32, maxDepth int) []ms2.Vec {
	sampler := glms2.Spline3Sampler{Spline: cubicBezier, Tolerance: tol}
	sampler.SetSplinePoints(toGL(s[0]), toGL(s[1]), toGL(s[2]), toGL(s[3]))
	buf := sampler.SampleBisect([]glms2.Vec{toGL(s[0])}, maxDepth)
	for _, v := range buf {
		dst = append(dst, ms2.Vec{X: v.X, Y: v.Y})
	}
	last := dst[len(dst)-1]
	if !isZero(last.X-s[3].X) || !isZero(last.Y-s[3].Y) {
		dst = append(dst, s[3])
	}
	return dst
}

func toGL(v ms2.Vec) glms2.Vec { return glms2.Vec{X: v.X, Y: v.Y} }

// AppendCurve appends resolution samples of every segment followed by the end point
// of the last segment, so the sampled curve starts and ends on the interpolated points.
func AppendCurve(dst []ms2.Vec, segments []Segment, resolution int) []ms2.Vec {
	if len(segments) == 0 {
		return dst
	}
	for _, s := range segments {
		dst = s.AppendSamples(dst, resolution)
	}
	return append(dst, segments[len(segments)-1][3])
}
