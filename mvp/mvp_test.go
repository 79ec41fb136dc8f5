package mvp

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

const tol = 1e-5

func TestIdentityMul(t *testing.T) {
	mats := []Mat4{
		Identity(),
		Identity().Translate(1, -2, 3),
		Identity().Scale(2, 0.5, 4).RotateY(0.7),
		Parallel(-1, 1, -1, 1, -3, 3),
		Perspective(-1, 1, -0.75, 0.75, 1, 10),
	}
	for i, m := range mats {
		if got := m.Mul(Identity()); got != m {
			t.Errorf("case %d: M*I != M: %v", i, got)
		}
		if got := Identity().Mul(m); got != m {
			t.Errorf("case %d: I*M != M: %v", i, got)
		}
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	m := Identity().Translate(0.25, -3, 7).Translate(-0.25, 3, -7)
	if !m.EqualTol(Identity(), tol) {
		t.Errorf("translate and inverse translate should be identity, got %v", m)
	}
	m = Identity().Scale(2, 4, 8).Scale(0.5, 0.25, 0.125)
	if !m.EqualTol(Identity(), tol) {
		t.Errorf("scale and inverse scale should be identity, got %v", m)
	}
}

func TestCompositionOrder(t *testing.T) {
	// Translate then scale: the translation must be scaled too.
	m := Identity().Translate(1, 0, 0).Scale(2, 2, 2)
	got := m.MulPos(ms3.Vec{})
	if math32.Abs(got.X-2) > tol || got.Y != 0 || got.Z != 0 {
		t.Errorf("expected (2,0,0), got %v", got)
	}
	a := Identity().RotateZ(0.3)
	b := Identity().Translate(1, 2, 3)
	p := ms3.Vec{X: 0.5, Y: -1, Z: 2}
	want := a.MulPos(b.MulPos(p))
	have := a.Mul(b).MulPos(p)
	if ms3.Norm(ms3.Sub(want, have)) > tol {
		t.Errorf("A*B must apply B first: want %v, got %v", want, have)
	}
}

func TestRotateMatchesReference(t *testing.T) {
	axes := []ms3.Vec{
		{X: 1}, {Y: 1}, {Z: 1},
		ms3.Unit(ms3.Vec{X: 1, Y: 2, Z: -3}),
	}
	for _, axis := range axes {
		for _, angle := range []float32{0, 0.05, 1, -2.5, 15} {
			got := Identity().RotateAxis(axis, angle)
			want := mgl32.HomogRotate3D(angle, mgl32.Vec3{axis.X, axis.Y, axis.Z})
			if !got.EqualTol(Mat4(want), tol) {
				t.Errorf("axis %v angle %v: got %v, want %v", axis, angle, got, want)
			}
		}
	}
	if Identity().RotateX(1) != Identity().Rotate(1, 0, 0, 1) {
		t.Error("RotateX mismatch")
	}
	if Identity().RotateY(1) != Identity().Rotate(0, 1, 0, 1) {
		t.Error("RotateY mismatch")
	}
	if Identity().RotateZ(1) != Identity().Rotate(0, 0, 1, 1) {
		t.Error("RotateZ mismatch")
	}
}

func TestRotateNonUnitAxisScales(t *testing.T) {
	// A non-unit axis is not normalized, the result is not an isometry.
	m := Identity().Rotate(0, 0, 2, math32.Pi)
	v := m.MulDir(ms3.Vec{Z: 1})
	if math32.Abs(ms3.Norm(v)-1) < 0.5 {
		t.Errorf("expected non-isometric result for non-unit axis, got %v", v)
	}
}

func TestMulDir(t *testing.T) {
	m := Identity().RotateZ(math32.Pi / 2).Translate(10, 10, 10)
	got := m.MulDir(ms3.Vec{X: 1})
	if ms3.Norm(ms3.Sub(got, ms3.Vec{Y: 1})) > tol {
		t.Errorf("expected (0,1,0), got %v", got)
	}
}

func TestProjectionsMatchReference(t *testing.T) {
	type planes struct{ l, r, b, t, n, f float32 }
	for _, p := range []planes{
		{-1, 1, -1, 1, -3, 3},
		{-2, 1, -0.5, 1.5, 0.1, 100},
		{0, 640, 0, 480, 1, 10},
	} {
		got := Parallel(p.l, p.r, p.b, p.t, p.n, p.f)
		want := mgl32.Ortho(p.l, p.r, p.b, p.t, p.n, p.f)
		if !got.EqualTol(Mat4(want), tol) {
			t.Errorf("parallel %v: got %v, want %v", p, got, want)
		}
		if p.n <= 0 {
			continue
		}
		got = Perspective(p.l, p.r, p.b, p.t, p.n, p.f)
		want = mgl32.Frustum(p.l, p.r, p.b, p.t, p.n, p.f)
		if !got.EqualTol(Mat4(want), 1e-4) {
			t.Errorf("perspective %v: got %v, want %v", p, got, want)
		}
	}
}

func TestPerspectiveFOV(t *testing.T) {
	const n, f, w, h, fov = 0.5, 50, 1024, 768, 90
	tg := math32.Tan(math32.Pi / 4)
	want := Perspective(-n*tg, n*tg, -n*w/h*tg, n*w/h*tg, n, f)
	got := PerspectiveFOV(n, f, w, h, fov)
	if !got.EqualTol(want, tol) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got[11] != -1 || got[15] != 0 {
		t.Errorf("perspective w row malformed: %v", got)
	}
}

func TestNormalMatrix(t *testing.T) {
	m := Identity().Scale(2, 3, 4).RotateY(0.3).RotateX(-1.1).Translate(1, 2, 3)
	n, err := m.NormalMatrix()
	if err != nil {
		t.Fatal(err)
	}
	want := mgl32.Mat4(m).Mat3().Inv()
	for i := range n {
		if math32.Abs(n[i]-want[i]) > 1e-4 {
			t.Fatalf("element %d: got %v, want %v (%v vs %v)", i, n[i], want[i], n, want)
		}
	}
	// Pure rotation: inverse-transpose equals the rotation itself, so the untransposed
	// inverse must equal the transpose of the rotation block.
	r := Identity().RotateAxis(ms3.Unit(ms3.Vec{X: 1, Y: 1, Z: 1}), 0.8)
	n, err = r.NormalMatrix()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math32.Abs(n[j*3+i]-r.At(j, i)) > tol {
				t.Errorf("rotation inverse (%d,%d) = %v, want %v", i, j, n[j*3+i], r.At(j, i))
			}
		}
	}
}

func TestNormalMatrixDegenerate(t *testing.T) {
	_, err := Identity().Scale(1, 0, 1).NormalMatrix()
	if !errors.Is(err, ErrDegenerateTransform) {
		t.Errorf("expected ErrDegenerateTransform, got %v", err)
	}
	n, err := Identity().Scale(1e-2, 1e-2, 1e-2).NormalMatrix()
	if err == nil {
		t.Errorf("determinant 1e-6 should be degenerate, got %v", n)
	}
}

func TestTransposeAndArithmetic(t *testing.T) {
	m := Identity().Translate(1, 2, 3)
	tr := m.Transpose()
	if tr.At(3, 0) != 1 || tr.At(3, 1) != 2 || tr.At(0, 3) != 0 {
		t.Errorf("bad transpose %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be identity op")
	}
	sum := m.Add(m).Sub(m)
	if sum != m {
		t.Errorf("add/sub mismatch %v", sum)
	}
	if m.MulScalar(4).DivScalar(4) != m {
		t.Error("scalar mul/div mismatch")
	}
}
