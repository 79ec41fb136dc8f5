package lathe

import (
	"github.com/soypat/geometry/ms3"
)

// appendPointQuad appends the 4 corners of the square of half side r centered at p,
// in order bottom-left, top-left, top-right, bottom-right.
func appendPointQuad(dst []float32, p ms3.Vec, r float32, color [3]float32) []float32 {
	dx, dy := -r, -r
	for j := 0; j < VerticesPerPoint; j++ {
		dst = append(dst, p.X+dx, p.Y+dy, p.Z, color[0], color[1], color[2])
		if j%3 == 0 || j%3 == 2 {
			dy = -dy
		}
		if j%3 == 1 {
			dx = -dx
		}
	}
	return dst
}

// appendQuadIndices appends the two triangles covering the quad of the point at pos.
func appendQuadIndices(dst []uint32, pos int) []uint32 {
	i := uint32(VerticesPerPoint * pos)
	return append(dst, i, i+1, i+2, i+2, i+3, i)
}

// appendPoints appends quads for every point. The first point is numbered start.
func appendPoints(b *Buffers, points []ms3.Vec, start int, r float32, color [3]float32) {
	for i, p := range points {
		b.Vertices = appendPointQuad(b.Vertices, p, r, color)
		b.Indices = appendQuadIndices(b.Indices, start+i)
	}
}

// appendCurveSides connects the quads of consecutive points with two triangles. The diagonal
// used depends on whether the step between points goes in opposite X and Y directions.
func appendCurveSides(dst []uint32, points []ms3.Vec, start int) []uint32 {
	const v = VerticesPerPoint
	for i := 0; i+1 < len(points); i++ {
		cur, next := points[i], points[i+1]
		a := uint32(v * (start + i))
		b := uint32(v * (start + i + 1))
		dx, dy := next.X-cur.X, next.Y-cur.Y
		if dx >= 0 && dy <= 0 || dx <= 0 && dy >= 0 {
			dst = append(dst, a, b, a+2, a+2, b+2, b)
		} else {
			dst = append(dst, a+3, b+3, a+1, b+3, b+1, a+1)
		}
	}
	return dst
}

// appendWalls connects every point quad of the ring starting at point shift with
// the corresponding quad of the following ring of n points.
func appendWalls(dst []uint32, n, shift int) []uint32 {
	const v = VerticesPerPoint
	for j := 0; j < n; j++ {
		a := uint32(v * (j + shift))
		b := uint32(v * (j + shift + n))
		dst = append(dst, a+1, b+1, b+3, b+3, a+2, a+1)
	}
	return dst
}

// curveEnds returns the points with minimum and maximum X. Ties keep the first found.
func curveEnds(points []ms3.Vec) (begin, end ms3.Vec) {
	begin, end = points[0], points[0]
	for _, p := range points[1:] {
		if p.X < begin.X {
			begin = p
		}
		if p.X > end.X {
			end = p
		}
	}
	return begin, end
}
