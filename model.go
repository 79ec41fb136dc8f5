package lathe

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/lathe/mvp"
	"github.com/soypat/lathe/tbezier"
)

// Model accumulates base points and derives the curve and solid of revolution
// geometry from them. A Model is not safe for concurrent use; callers must
// serialize commands. Buffers may be read at any time between commands.
type Model struct {
	state      State
	radius     float32
	color      [3]float32
	order      tbezier.Order
	resolution int

	basePoints  []ms2.Vec
	curvePoints []ms3.Vec
	axis        ms3.Vec

	base  Buffers
	curve Buffers
	solid Buffers

	// m accumulates user rotations of the swept solid.
	m mvp.Mat4

	segbuf []tbezier.Segment
	ptbuf  []ms2.Vec
}

// NewModel returns a Model collecting points.
func NewModel(cfg Config) *Model {
	if cfg.PointRadius <= 0 {
		cfg.PointRadius = DefaultPointRadius
	}
	if cfg.Color == ([3]float32{}) {
		cfg.Color = defaultColor
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = tbezier.Resolution
	}
	return &Model{
		state:      StateCollectingPoints,
		radius:     cfg.PointRadius,
		color:      cfg.Color,
		order:      cfg.Smoothness,
		resolution: cfg.Resolution,
		m:          mvp.Identity(),
	}
}

// State returns the current interaction state.
func (m *Model) State() State { return m.state }

// Buffers returns the geometry to draw for the current state. The returned
// slices are owned by the Model and are only valid until the next command.
func (m *Model) Buffers() Buffers {
	switch m.state {
	case StatePreviewingCurve:
		return m.curve
	case StateSweepingSolid:
		return m.solid
	}
	return m.base
}

// BaseBuffers returns the point quads of the base points.
func (m *Model) BaseBuffers() Buffers { return m.base }

// CurveBuffers returns the curve geometry. Empty unless a curve has been formed.
func (m *Model) CurveBuffers() Buffers { return m.curve }

// SolidBuffers returns the solid of revolution geometry. Empty unless the solid has been formed.
func (m *Model) SolidBuffers() Buffers { return m.solid }

// BasePoints returns the base points in insertion order.
func (m *Model) BasePoints() []ms2.Vec { return m.basePoints }

// CurvePoints returns the sampled curve points.
func (m *Model) CurvePoints() []ms3.Vec { return m.curvePoints }

// ModelMatrix returns the accumulated rotation applied to the solid.
func (m *Model) ModelMatrix() mvp.Mat4 { return m.m }

// RotationAxis returns the unit axis joining the curve points with extreme X, computed when
// the solid was formed. The sweep itself always revolves about the X axis; this axis
// is only used by [Model.RotateAboutAxis].
func (m *Model) RotationAxis() ms3.Vec { return m.axis }

// SetColor sets the color of subsequently generated vertices. Accepted in any state.
func (m *Model) SetColor(r, g, b float32) {
	m.color = [3]float32{r, g, b}
}

// SetPointRadius sets half the side of subsequently generated point quads. Accepted in any state.
func (m *Model) SetPointRadius(radius float32) {
	m.radius = radius
}

func (m *Model) expect(kind CommandKind, s State) error {
	if m.state != s {
		return &StateError{Kind: kind, State: m.state}
	}
	return nil
}

// AddBasePoint appends p, given in normalized device coordinates, to the base points.
func (m *Model) AddBasePoint(p ms2.Vec) error {
	if err := m.expect(KindAddBasePoint, StateCollectingPoints); err != nil {
		return err
	}
	m.basePoints = append(m.basePoints, p)
	appendPoints(&m.base, []ms3.Vec{{X: p.X, Y: p.Y}}, len(m.basePoints)-1, m.radius, m.color)
	return nil
}

// ClearBasePoints removes all base points.
func (m *Model) ClearBasePoints() error {
	if err := m.expect(KindClearBasePoints, StateCollectingPoints); err != nil {
		return err
	}
	m.basePoints = m.basePoints[:0]
	m.base.reset()
	return nil
}

// FormCurve interpolates the base points and transitions to previewing the curve.
// If fewer than 3 base points exist [ErrInsufficientPoints] is returned and the state is kept.
func (m *Model) FormCurve() error {
	if err := m.expect(KindFormCurve, StateCollectingPoints); err != nil {
		return err
	}
	segs, err := tbezier.Interpolate(m.segbuf[:0], m.basePoints, m.order)
	m.segbuf = segs
	if err != nil {
		return err
	}
	m.ptbuf = tbezier.AppendCurve(m.ptbuf[:0], segs, m.resolution)
	m.clearCurve()
	for _, p := range m.ptbuf {
		m.curvePoints = append(m.curvePoints, ms3.Vec{X: p.X, Y: p.Y, Z: curveZ})
	}
	appendPoints(&m.curve, m.curvePoints, 0, m.radius, m.color)
	m.curve.Indices = appendCurveSides(m.curve.Indices, m.curvePoints, 0)
	m.state = StatePreviewingCurve
	return nil
}

// ClearCurve discards the curve and returns to collecting points.
func (m *Model) ClearCurve() error {
	if err := m.expect(KindClearCurve, StatePreviewingCurve); err != nil {
		return err
	}
	m.clearCurve()
	m.state = StateCollectingPoints
	return nil
}

func (m *Model) clearCurve() {
	m.curvePoints = m.curvePoints[:0]
	m.curve.reset()
}

// RingCount returns the number of rings swept for the given step in degrees.
// It returns 0 for steps outside (0, 360] and for steps so small the ring count
// exceeds the uint32 range.
func RingCount(stepDegrees float32) int {
	if !(stepDegrees > 0 && stepDegrees <= 360) {
		return 0
	}
	r := math32.Floor(360 / stepDegrees)
	if r > math.MaxUint32 {
		return 0
	}
	return int(r)
}

// fitsIndices reports whether the vertices of a solid with the given rings of
// n curve points are addressable with uint32 indices.
func fitsIndices(rings, n int) bool {
	return rings >= 1 && uint64(rings)*uint64(n)*VerticesPerPoint <= math.MaxUint32
}

// FormSolidOfRevolution sweeps the curve in floor(360/stepDegrees) rings and transitions to
// the solid state. Each ring is the previous one rotated about the X axis by stepDegrees,
// a value passed to the rotation as is. The axis joining the curve's extreme points is
// recorded in [Model.RotationAxis] but is not used for the sweep.
func (m *Model) FormSolidOfRevolution(stepDegrees float32) error {
	if err := m.expect(KindFormSolidOfRevolution, StatePreviewingCurve); err != nil {
		return err
	}
	rings := RingCount(stepDegrees)
	if !fitsIndices(rings, len(m.curvePoints)) {
		return ErrInvalidStep
	}
	m.clearSolid()

	begin, end := curveEnds(m.curvePoints)
	d := ms3.Sub(end, begin)
	axis := tbezier.Normalize(ms2.Vec{X: d.X, Y: d.Y})
	m.axis = ms3.Vec{X: axis.X, Y: axis.Y}

	rot := mvp.Identity().RotateX(stepDegrees)
	n := len(m.curvePoints)
	ring := append([]ms3.Vec(nil), m.curvePoints...)
	next := make([]ms3.Vec, n)
	shift := 0
	for i := 0; i < rings; i++ {
		appendPoints(&m.solid, ring, shift, m.radius, m.color)
		m.solid.Indices = appendCurveSides(m.solid.Indices, ring, shift)
		if i < rings-1 {
			m.solid.Indices = appendWalls(m.solid.Indices, n, shift)
		}
		for j := range ring {
			next[j] = rot.MulDir(ring[j])
		}
		ring, next = next, ring
		shift += n
	}
	m.state = StateSweepingSolid
	return nil
}

// ClearSolidOfRevolution discards the solid, resets the accumulated rotation
// and returns to previewing the curve.
func (m *Model) ClearSolidOfRevolution() error {
	if err := m.expect(KindClearSolidOfRevolution, StateSweepingSolid); err != nil {
		return err
	}
	m.clearSolid()
	m.state = StatePreviewingCurve
	return nil
}

func (m *Model) clearSolid() {
	m.solid.reset()
	m.m = mvp.Identity()
}

// RotateX rotates the solid about the X axis.
func (m *Model) RotateX(angle float32) error { return m.rotate(KindRotateX, 1, 0, 0, angle) }

// RotateY rotates the solid about the Y axis.
func (m *Model) RotateY(angle float32) error { return m.rotate(KindRotateY, 0, 1, 0, angle) }

// RotateZ rotates the solid about the Z axis.
func (m *Model) RotateZ(angle float32) error { return m.rotate(KindRotateZ, 0, 0, 1, angle) }

// RotateAboutAxis rotates the solid about [Model.RotationAxis].
func (m *Model) RotateAboutAxis(angle float32) error {
	return m.rotate(KindRotateAboutAxis, m.axis.X, m.axis.Y, m.axis.Z, angle)
}

// Rotate rotates the solid about the unit axis (x,y,z).
func (m *Model) Rotate(x, y, z, angle float32) error {
	return m.rotate(KindRotate, x, y, z, angle)
}

func (m *Model) rotate(kind CommandKind, x, y, z, angle float32) error {
	if err := m.expect(kind, StateSweepingSolid); err != nil {
		return err
	}
	m.m = m.m.Rotate(x, y, z, angle)
	return nil
}
