// Package mvp implements 4x4 homogeneous transformation matrices laid out
// in column-major order as expected by OpenGL. Matrices are values: every
// operation returns a new matrix and leaves its receiver untouched.
package mvp

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// epstol is the determinant magnitude below which a 3x3 block is considered singular.
const epstol = 1e-5

// ErrDegenerateTransform is returned when a normal matrix is requested from a
// transform whose rotational block cannot be inverted.
var ErrDegenerateTransform = errors.New("mvp: degenerate transform, determinant is near zero")

// Mat4 is a 4x4 matrix stored in column-major order: element at row i and
// column j is found at index j*4+i.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row i and column j.
func (m Mat4) At(i, j int) float32 { return m[j*4+i] }

// Ptr returns a pointer to the first element, useful when binding the matrix as a uniform.
func (m *Mat4) Ptr() *float32 { return &m[0] }

// Mul returns the matrix product m*b. Applying the result to a point is
// equivalent to applying b first and then m.
func (m Mat4) Mul(b Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+i] * b[j*4+k]
			}
			result[j*4+i] = sum
		}
	}
	return result
}

// Translate returns m followed by a translation of (x,y,z).
func (m Mat4) Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}.Mul(m)
}

// Scale returns m followed by a scaling of sx,sy,sz along each axis.
func (m Mat4) Scale(sx, sy, sz float32) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}.Mul(m)
}

// Rotate returns m followed by a rotation of angle radians about the axis (x,y,z)
// using Rodrigues' formula. The axis must be of unit length: a non-unit axis is not
// normalized and yields a matrix that also scales and shears.
func (m Mat4) Rotate(x, y, z, angle float32) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	nc := 1 - c
	return Mat4{
		x*x*nc + c, y*x*nc + z*s, x*z*nc - y*s, 0,
		x*y*nc - z*s, y*y*nc + c, y*z*nc + x*s, 0,
		x*z*nc + y*s, y*z*nc - x*s, z*z*nc + c, 0,
		0, 0, 0, 1,
	}.Mul(m)
}

// RotateAxis is shorthand for Rotate(axis.X, axis.Y, axis.Z, angle).
func (m Mat4) RotateAxis(axis ms3.Vec, angle float32) Mat4 {
	return m.Rotate(axis.X, axis.Y, axis.Z, angle)
}

// RotateX returns m followed by a rotation of angle radians about the X axis.
func (m Mat4) RotateX(angle float32) Mat4 { return m.Rotate(1, 0, 0, angle) }

// RotateY returns m followed by a rotation of angle radians about the Y axis.
func (m Mat4) RotateY(angle float32) Mat4 { return m.Rotate(0, 1, 0, angle) }

// RotateZ returns m followed by a rotation of angle radians about the Z axis.
func (m Mat4) RotateZ(angle float32) Mat4 { return m.Rotate(0, 0, 1, angle) }

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[i*4+j] = m[j*4+i]
		}
	}
	return t
}

// Add returns the element-wise sum m+b.
func (m Mat4) Add(b Mat4) Mat4 {
	for i := range m {
		m[i] += b[i]
	}
	return m
}

// Sub returns the element-wise difference m-b.
func (m Mat4) Sub(b Mat4) Mat4 {
	for i := range m {
		m[i] -= b[i]
	}
	return m
}

// MulScalar returns m with every element multiplied by f.
func (m Mat4) MulScalar(f float32) Mat4 {
	for i := range m {
		m[i] *= f
	}
	return m
}

// DivScalar returns m with every element divided by f.
func (m Mat4) DivScalar(f float32) Mat4 {
	for i := range m {
		m[i] /= f
	}
	return m
}

// EqualTol reports whether all elements of m and b differ by at most tol.
func (m Mat4) EqualTol(b Mat4, tol float32) bool {
	for i := range m {
		if math32.Abs(m[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// MulDir transforms v by the upper-left 3x3 block of m. Translation is ignored.
func (m Mat4) MulDir(v ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulPos transforms the point v (w=1) by m and performs the perspective divide
// when the resulting w is not zero.
func (m Mat4) MulPos(v ms3.Vec) ms3.Vec {
	r := ms3.Vec{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 0 && w != 1 {
		r = ms3.Scale(1/w, r)
	}
	return r
}

// NormalMatrix returns the inverse of the upper-left 3x3 block of m computed through
// the adjugate and determinant. The 9 values are column-major and not yet transposed:
// bind them with transpose set to true to obtain the inverse-transpose.
// An error is returned if the block's determinant is near zero.
func (m Mat4) NormalMatrix() ([9]float32, error) {
	var a [9]float32
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i*3+j] = m[i*4+j]
		}
	}
	det := a[0]*a[4]*a[8] + a[3]*a[7]*a[2] + a[1]*a[5]*a[6] -
		a[6]*a[4]*a[2] - a[1]*a[3]*a[8] - a[5]*a[7]*a[0]
	if math32.Abs(det) < epstol {
		return [9]float32{}, ErrDegenerateTransform
	}
	n := [9]float32{
		a[4]*a[8] - a[5]*a[7], a[7]*a[2] - a[1]*a[8], a[1]*a[5] - a[4]*a[2],
		a[6]*a[5] - a[3]*a[8], a[0]*a[8] - a[2]*a[6], a[3]*a[2] - a[0]*a[5],
		a[3]*a[7] - a[6]*a[4], a[1]*a[6] - a[0]*a[7], a[0]*a[4] - a[3]*a[1],
	}
	inv := 1 / det
	for i := range n {
		n[i] *= inv
	}
	return n, nil
}
