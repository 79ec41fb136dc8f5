package mvp

import "github.com/chewxy/math32"

// Parallel returns an orthographic projection for the box bounded by the
// left, right, bottom, top, near and far clip planes. Same as glOrtho.
func Parallel(l, r, b, t, n, f float32) Mat4 {
	return Mat4{
		2 / (r - l), 0, 0, 0,
		0, 2 / (t - b), 0, 0,
		0, 0, -2 / (f - n), 0,
		-(r + l) / (r - l), -(t + b) / (t - b), -(f + n) / (f - n), 1,
	}
}

// Perspective returns a perspective projection for the frustum bounded by the
// left, right, bottom, top, near and far clip planes. Same as glFrustum.
func Perspective(l, r, b, t, n, f float32) Mat4 {
	return Mat4{
		2 * n / (r - l), 0, 0, 0,
		0, 2 * n / (t - b), 0, 0,
		(r + l) / (r - l), (t + b) / (t - b), -(f + n) / (f - n), -1,
		0, 0, -2 * f * n / (f - n), 0,
	}
}

// PerspectiveFOV returns a symmetric perspective projection for a viewport of
// width w and height h. fovDegrees is the field of view spanned along X; the Y
// extent is that of X scaled by w/h.
func PerspectiveFOV(n, f, w, h, fovDegrees float32) Mat4 {
	tg := math32.Tan(math32.Pi / 180 * fovDegrees / 2)
	return Perspective(-n*tg, n*tg, -n*w/h*tg, n*w/h*tg, n, f)
}
