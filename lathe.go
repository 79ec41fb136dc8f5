// Package lathe turns a sparse set of 2D points into a smooth curve and sweeps
// it into a triangulated solid of revolution. Geometry is produced as flat
// vertex and index buffers ready to be uploaded to a GPU buffer object.
//
// A [Model] is driven by commands through three states: base points are
// collected, a curve is formed through them and finally the curve is swept
// around the X axis. Commands issued in the wrong state are rejected without
// modifying the model.
package lathe

import (
	"errors"
	"fmt"

	"github.com/soypat/lathe/tbezier"
)

const (
	// VerCoordCount is the number of position floats per vertex.
	VerCoordCount = 3
	// ColorCount is the number of color floats per vertex.
	ColorCount = 3
	// VertexSize is the stride of the vertex buffer in floats: x,y,z,r,g,b.
	VertexSize = VerCoordCount + ColorCount
	// VerticesPerPoint is the number of vertices of the quad drawn for every point.
	VerticesPerPoint = 4
	// DefaultStep is the default angular step of the revolution sweep.
	DefaultStep = 15.0
	// DefaultPointRadius is the half side of point quads when none is configured.
	DefaultPointRadius = 0.0015

	curveZ = 1.0
)

var (
	// ErrInsufficientPoints is returned by FormCurve when fewer than 3 base points exist.
	ErrInsufficientPoints = tbezier.ErrInsufficientPoints
	// ErrInvalidState is wrapped by every [StateError].
	ErrInvalidState = errors.New("lathe: command not valid in current state")
	// ErrInvalidStep is returned when the revolution step is not in (0, 360] or is
	// too small for the solid to be indexed with uint32.
	ErrInvalidStep = errors.New("lathe: revolution step must be in (0, 360] degrees")
)

var defaultColor = [3]float32{0.5, 0.5, 0.5}

// State is the interaction state of a [Model].
type State uint8

const (
	StateCollectingPoints State = iota
	StatePreviewingCurve
	StateSweepingSolid
)

func (s State) String() string {
	switch s {
	case StateCollectingPoints:
		return "collecting points"
	case StatePreviewingCurve:
		return "previewing curve"
	case StateSweepingSolid:
		return "sweeping solid"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// StateError is returned when a command is issued in a state that does not accept it.
type StateError struct {
	Kind  CommandKind
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("lathe: %s not valid while %s", e.Kind, e.State)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// Config configures a new [Model]. The zero value is ready to use.
type Config struct {
	// PointRadius is half the side of the quad generated for every point.
	// Defaults to [DefaultPointRadius].
	PointRadius float32
	// Color of generated vertices. The zero value selects 50% gray;
	// use [Model.SetColor] for black.
	Color [3]float32
	// Smoothness selects the interpolation tangent policy. Defaults to [tbezier.SO0].
	Smoothness tbezier.Order
	// Resolution is the number of curve points sampled from each Bezier segment.
	// Defaults to [tbezier.Resolution].
	Resolution int
}

// Buffers holds flat vertex and index data. Vertices has [VertexSize] floats
// per vertex and Indices has 3 entries per triangle.
type Buffers struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (b Buffers) VertexCount() int { return len(b.Vertices) / VertexSize }

// TriangleCount returns the number of triangles.
func (b Buffers) TriangleCount() int { return len(b.Indices) / 3 }

// IsEmpty returns true if there is nothing to draw.
func (b Buffers) IsEmpty() bool { return len(b.Indices) == 0 }

// Clone returns a deep copy of b.
func (b Buffers) Clone() Buffers {
	return Buffers{
		Vertices: append([]float32(nil), b.Vertices...),
		Indices:  append([]uint32(nil), b.Indices...),
	}
}

func (b *Buffers) reset() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}
