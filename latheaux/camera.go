package latheaux

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/lathe"
	"github.com/soypat/lathe/mvp"
)

// Camera holds the view and projection halves of a model-view-projection transform.
type Camera struct {
	View       mvp.Mat4
	Projection mvp.Mat4
}

// DefaultCamera looks at the unit cube around the origin with a parallel projection.
func DefaultCamera() Camera {
	return Camera{
		View:       mvp.Identity().Translate(0, 0, 2),
		Projection: mvp.Parallel(-1, 1, -1, 1, -3, 3),
	}
}

// MVP returns Projection*View*model.
func (c Camera) MVP(model mvp.Mat4) mvp.Mat4 {
	return c.Projection.Mul(c.View.Mul(model))
}

// NormalMatrix returns the normal matrix of View*model.
func (c Camera) NormalMatrix(model mvp.Mat4) ([9]float32, error) {
	return c.View.Mul(model).NormalMatrix()
}

// RotationSpeeds are the angles applied per rotation key press, selected with keys 1 to 9.
var RotationSpeeds = [9]float32{0.05, 0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45}

const (
	defaultSpeedIndex = 1
	lightStep         = 0.05
)

// Light is a point light that is only lit while the solid of revolution is shown.
type Light struct {
	Position ms3.Vec
	Color    [3]float32
	Enabled  bool
}

// DefaultLight returns a disabled white light.
func DefaultLight() Light {
	return Light{Position: ms3.Vec{X: 1, Y: 1, Z: 1}, Color: [3]float32{1, 1, 1}}
}

// ScreenToNDC converts window coordinates with origin at the top-left corner
// to normalized device coordinates.
func ScreenToNDC(x, y float64, width, height int) ms2.Vec {
	return ms2.Vec{
		X: float32(2*x/float64(width) - 1),
		Y: float32(1 - 2*y/float64(height)),
	}
}

// Action is a user input understood by a [Controller].
type Action uint8

const (
	ActionAdvance   Action = iota // Form the curve or the solid.
	ActionRetreat                 // Clear the curve or the solid.
	ActionClear                   // Clear base points.
	ActionRotateUp                // -X
	ActionRotateDown              // +X
	ActionRotateLeft              // -Y
	ActionRotateRight             // +Y
	ActionRollLeft                // +Z
	ActionRollRight               // -Z
	ActionRotateAxis              // About the curve axis.
)

func (a Action) String() string {
	switch a {
	case ActionAdvance:
		return "advance"
	case ActionRetreat:
		return "retreat"
	case ActionClear:
		return "clear"
	case ActionRotateUp:
		return "rotate up"
	case ActionRotateDown:
		return "rotate down"
	case ActionRotateLeft:
		return "rotate left"
	case ActionRotateRight:
		return "rotate right"
	case ActionRollLeft:
		return "roll left"
	case ActionRollRight:
		return "roll right"
	case ActionRotateAxis:
		return "rotate about axis"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Controller translates user input into model commands and tracks the
// viewer state that does not belong to the model: speed and light.
type Controller struct {
	Model *lathe.Model
	Light Light
	// Step is the revolution step in degrees.
	Step  float32
	speed float32
}

// NewController returns a controller for m using the given revolution step.
// A non-positive step selects [lathe.DefaultStep].
func NewController(m *lathe.Model, step float32) *Controller {
	if step <= 0 {
		step = lathe.DefaultStep
	}
	return &Controller{
		Model: m,
		Light: DefaultLight(),
		Step:  step,
		speed: RotationSpeeds[defaultSpeedIndex],
	}
}

// Speed returns the rotation angle applied per rotation action.
func (c *Controller) Speed() float32 { return c.speed }

// SetSpeed selects RotationSpeeds[i]. Only honored while the solid is shown.
func (c *Controller) SetSpeed(i int) error {
	if i < 0 || i >= len(RotationSpeeds) {
		return fmt.Errorf("speed index %d out of range [0,%d)", i, len(RotationSpeeds))
	}
	if c.Model.State() != lathe.StateSweepingSolid {
		return &lathe.StateError{Kind: lathe.KindRotate, State: c.Model.State()}
	}
	c.speed = RotationSpeeds[i]
	return nil
}

// Click adds a base point at window coordinates (x,y).
func (c *Controller) Click(x, y float64, width, height int) error {
	return c.Model.AddBasePoint(ScreenToNDC(x, y, width, height))
}

// MoveLight displaces the light by (dx,dy,dz) steps. Only honored while the light is enabled.
func (c *Controller) MoveLight(dx, dy, dz int) bool {
	if !c.Light.Enabled {
		return false
	}
	c.Light.Position.X += float32(dx) * lightStep
	c.Light.Position.Y += float32(dy) * lightStep
	c.Light.Position.Z += float32(dz) * lightStep
	return true
}

// Do applies the action to the model.
func (c *Controller) Do(a Action) (err error) {
	m := c.Model
	switch a {
	case ActionAdvance:
		switch m.State() {
		case lathe.StateCollectingPoints:
			return m.FormCurve()
		case lathe.StatePreviewingCurve:
			err = m.FormSolidOfRevolution(c.Step)
			c.Light.Enabled = err == nil
			return err
		}
		return &lathe.StateError{Kind: lathe.KindFormSolidOfRevolution, State: m.State()}
	case ActionRetreat:
		switch m.State() {
		case lathe.StatePreviewingCurve:
			return m.ClearCurve()
		case lathe.StateSweepingSolid:
			err = m.ClearSolidOfRevolution()
			if err == nil {
				c.Light.Enabled = false
				c.speed = RotationSpeeds[defaultSpeedIndex]
			}
			return err
		}
		return &lathe.StateError{Kind: lathe.KindClearCurve, State: m.State()}
	case ActionClear:
		return m.ClearBasePoints()
	case ActionRotateUp:
		return m.RotateX(-c.speed)
	case ActionRotateDown:
		return m.RotateX(c.speed)
	case ActionRotateLeft:
		return m.RotateY(-c.speed)
	case ActionRotateRight:
		return m.RotateY(c.speed)
	case ActionRollLeft:
		return m.RotateZ(c.speed)
	case ActionRollRight:
		return m.RotateZ(-c.speed)
	case ActionRotateAxis:
		return m.RotateAboutAxis(c.speed)
	}
	return fmt.Errorf("unknown action %v", a)
}
