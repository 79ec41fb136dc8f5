// Package latheaux provides host-side helpers around [lathe.Model]: exporting
// meshes to STL, previewing geometry as PNG images, loading scene files and an
// interactive OpenGL viewer.
package latheaux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/lathe"
)

type RenderConfig struct {
	// STLOutput receives the solid of revolution as a binary STL.
	STLOutput io.Writer
	// PNGOutput receives a preview of the geometry of the model's current state.
	PNGOutput io.Writer
	PNG       PNGConfig
	// Camera used for the PNG preview. The zero value selects [DefaultCamera].
	Camera Camera
	Silent bool
}

// Render is an auxiliary function that writes the geometry of a model to the outputs in cfg.
// The model must have formed its solid of revolution if STL output is requested.
func Render(m *lathe.Model, cfg RenderConfig) (err error) {
	if cfg.STLOutput == nil && cfg.PNGOutput == nil {
		return errors.New("Render requires output parameter in config")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	if cfg.Camera == (Camera{}) {
		cfg.Camera = DefaultCamera()
	}
	if cfg.STLOutput != nil {
		solid := m.SolidBuffers()
		if solid.IsEmpty() {
			return errors.New("STL output requires a formed solid of revolution")
		}
		watch := stopwatch()
		triangles := AppendTriangles(nil, solid, m.ModelMatrix())
		_, err = WriteBinarySTL(cfg.STLOutput, triangles)
		if err != nil {
			return fmt.Errorf("writing STL file: %w", err)
		}
		log("wrote", outputName(cfg.STLOutput, "STL"), "with", len(triangles), "triangles in", watch())
	}
	if cfg.PNGOutput != nil {
		watch := stopwatch()
		err = RenderPNG(cfg.PNGOutput, m, cfg.Camera, cfg.PNG)
		if err != nil {
			return fmt.Errorf("writing PNG preview: %w", err)
		}
		log("wrote", outputName(cfg.PNGOutput, "PNG preview"), "of", m.State(), "in", watch())
	}
	return nil
}

// AppendTriangles appends the triangles indexed by b to dst with their vertices
// transformed by transform.
func AppendTriangles(dst []ms3.Triangle, b lathe.Buffers, transform interface{ MulPos(ms3.Vec) ms3.Vec }) []ms3.Triangle {
	for i := 0; i+2 < len(b.Indices); i += 3 {
		var tri ms3.Triangle
		for k := 0; k < 3; k++ {
			off := int(b.Indices[i+k]) * lathe.VertexSize
			v := ms3.Vec{X: b.Vertices[off], Y: b.Vertices[off+1], Z: b.Vertices[off+2]}
			tri[k] = transform.MulPos(v)
		}
		dst = append(dst, tri)
	}
	return dst
}

type UIConfig struct {
	Width, Height int
	// Step is the revolution step in degrees. Defaults to [lathe.DefaultStep].
	Step    float32
	Camera  Camera
	Context context.Context
	Silent  bool
}

// UI opens a window where base points are placed with the mouse and the model is driven
// with the keyboard. It blocks until the window is closed or the context is done.
// Requires cgo.
func UI(m *lathe.Model, cfg UIConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1024, 768
	}
	if cfg.Camera == (Camera{}) {
		cfg.Camera = DefaultCamera()
	}
	return ui(m, cfg)
}

func outputName(w io.Writer, fallback string) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return fallback
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
