package latheaux

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"slices"
	"sync"

	"github.com/chewxy/math32"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/lathe"
	"github.com/soypat/lathe/mvp"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"
)

type PNGConfig struct {
	// Width and Height of the image in pixels. Default to 512.
	Width, Height int
	// Background defaults to white.
	Background color.Color
	// Caption drawn at the top-left corner. Empty selects a summary of the model.
	Caption   string
	NoCaption bool
	// Fog fades faces towards the background with depth. Zero disables fading.
	Fog float32
}

var parseGoRegular = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// RenderPNG rasterizes the geometry of the model's current state as seen by cam
// and encodes the result to w as PNG.
func RenderPNG(w io.Writer, m *lathe.Model, cam Camera, cfg PNGConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 512
	}
	if cfg.Height <= 0 {
		cfg.Height = 512
	}
	if cfg.Background == nil {
		cfg.Background = color.White
	}
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)
	b := m.Buffers()
	model := mvp.Identity()
	if m.State() == lathe.StateSweepingSolid {
		model = m.ModelMatrix()
	}
	light := DefaultLight().Position
	DrawBuffers(img, b, cam.MVP(model), light, cfg.Background, cfg.Fog)
	if !cfg.NoCaption {
		caption := cfg.Caption
		if caption == "" {
			caption = fmt.Sprintf("%s: %d vertices, %d triangles", m.State(), b.VertexCount(), b.TriangleCount())
		}
		err := drawCaption(img, caption)
		if err != nil {
			return err
		}
	}
	return png.Encode(w, img)
}

type screenTriangle struct {
	p     [3]ms3.Vec // x,y in pixels, z in normalized device coordinates.
	color color.RGBA
	depth float32
}

// DrawBuffers rasterizes the triangles in b onto dst after transforming them to
// normalized device coordinates with transform. Faces are drawn back to front and shaded
// with the vertex color of their first vertex lit from the light direction.
func DrawBuffers(dst draw.Image, b lathe.Buffers, transform mvp.Mat4, light ms3.Vec, bg color.Color, fog float32) {
	bounds := dst.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	var tris []screenTriangle
	for i := 0; i+2 < len(b.Indices); i += 3 {
		var st screenTriangle
		var world ms3.Triangle
		for k := 0; k < 3; k++ {
			off := int(b.Indices[i+k]) * lathe.VertexSize
			v := ms3.Vec{X: b.Vertices[off], Y: b.Vertices[off+1], Z: b.Vertices[off+2]}
			world[k] = v
			ndc := transform.MulPos(v)
			st.p[k] = ms3.Vec{
				X: float32(bounds.Min.X) + (ndc.X+1)/2*w,
				Y: float32(bounds.Min.Y) + (1-ndc.Y)/2*h,
				Z: ndc.Z,
			}
			st.depth += ndc.Z / 3
		}
		off := int(b.Indices[i]) * lathe.VertexSize
		c := [3]float32{b.Vertices[off+3], b.Vertices[off+4], b.Vertices[off+5]}
		n := facetNormal(&world)
		var lambert float32 = 1
		if n != (ms3.Vec{}) {
			l := ms3.Sub(light, world[0])
			ll := math32.Sqrt(l.X*l.X + l.Y*l.Y + l.Z*l.Z)
			if ll > 0 {
				// Faces are two sided.
				lambert = math32.Abs(n.X*l.X+n.Y*l.Y+n.Z*l.Z) / ll
			}
		}
		fogAmount := fog * (st.depth + 1) / 2
		if fog == 0 && lambert == 1 {
			st.color = vertexColor(c)
		} else {
			st.color = shade(c, lambert, fogAmount, bg)
		}
		tris = append(tris, st)
	}
	// Larger depth is farther away.
	slices.SortStableFunc(tris, func(a, b screenTriangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	var r vector.Rasterizer
	for i := range tris {
		drawTriangle(dst, &r, &tris[i])
	}
}

// drawTriangle rasterizes a single triangle on a rasterizer sized to its clipped bounding box
// so overlapping faces of opposite winding do not cancel out.
func drawTriangle(dst draw.Image, r *vector.Rasterizer, t *screenTriangle) {
	minx := math32.Floor(min(t.p[0].X, t.p[1].X, t.p[2].X))
	miny := math32.Floor(min(t.p[0].Y, t.p[1].Y, t.p[2].Y))
	maxx := math32.Ceil(max(t.p[0].X, t.p[1].X, t.p[2].X))
	maxy := math32.Ceil(max(t.p[0].Y, t.p[1].Y, t.p[2].Y))
	rect := image.Rect(int(minx), int(miny), int(maxx)+1, int(maxy)+1).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	ox, oy := float32(rect.Min.X), float32(rect.Min.Y)
	r.Reset(rect.Dx(), rect.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(t.p[0].X-ox, t.p[0].Y-oy)
	r.LineTo(t.p[1].X-ox, t.p[1].Y-oy)
	r.LineTo(t.p[2].X-ox, t.p[2].Y-oy)
	r.ClosePath()
	r.Draw(dst, rect, image.NewUniform(t.color), image.Point{})
}

func drawCaption(dst draw.Image, caption string) error {
	f, err := parseGoRegular()
	if err != nil {
		return fmt.Errorf("parsing caption font: %w", err)
	}
	const size = 12
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.Black)
	pt := freetype.Pt(dst.Bounds().Min.X+6, dst.Bounds().Min.Y+6+int(c.PointToFixed(size)>>6))
	_, err = c.DrawString(caption, pt)
	return err
}
