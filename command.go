package lathe

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
)

// CommandKind identifies a [Command].
type CommandKind uint8

const (
	KindAddBasePoint CommandKind = iota
	KindClearBasePoints
	KindFormCurve
	KindClearCurve
	KindFormSolidOfRevolution
	KindClearSolidOfRevolution
	KindRotateX
	KindRotateY
	KindRotateZ
	KindRotateAboutAxis
	KindRotate
	KindSetColor
	KindSetPointRadius
)

var kindNames = [...]string{
	KindAddBasePoint:           "AddBasePoint",
	KindClearBasePoints:        "ClearBasePoints",
	KindFormCurve:              "FormCurve",
	KindClearCurve:             "ClearCurve",
	KindFormSolidOfRevolution:  "FormSolidOfRevolution",
	KindClearSolidOfRevolution: "ClearSolidOfRevolution",
	KindRotateX:                "RotateX",
	KindRotateY:                "RotateY",
	KindRotateZ:                "RotateZ",
	KindRotateAboutAxis:        "RotateAboutAxis",
	KindRotate:                 "Rotate",
	KindSetColor:               "SetColor",
	KindSetPointRadius:         "SetPointRadius",
}

func (k CommandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// Command is a single instruction for a [Model]. Which fields are read depends on Kind:
//   - AddBasePoint: Point.
//   - FormSolidOfRevolution: Value is the step in degrees, zero selects [DefaultStep].
//   - RotateX, RotateY, RotateZ, RotateAboutAxis: Value is the angle.
//   - Rotate: Vec is the unit axis and Value the angle.
//   - SetColor: Vec holds the r,g,b components.
//   - SetPointRadius: Value is the radius.
type Command struct {
	Kind  CommandKind
	Point ms2.Vec
	Vec   [3]float32
	Value float32
}

// Exec applies cmd to the model. Commands not valid in the current state
// return a [*StateError] and leave the model untouched.
func (m *Model) Exec(cmd Command) error {
	switch cmd.Kind {
	case KindAddBasePoint:
		return m.AddBasePoint(cmd.Point)
	case KindClearBasePoints:
		return m.ClearBasePoints()
	case KindFormCurve:
		return m.FormCurve()
	case KindClearCurve:
		return m.ClearCurve()
	case KindFormSolidOfRevolution:
		step := cmd.Value
		if step == 0 {
			step = DefaultStep
		}
		return m.FormSolidOfRevolution(step)
	case KindClearSolidOfRevolution:
		return m.ClearSolidOfRevolution()
	case KindRotateX:
		return m.RotateX(cmd.Value)
	case KindRotateY:
		return m.RotateY(cmd.Value)
	case KindRotateZ:
		return m.RotateZ(cmd.Value)
	case KindRotateAboutAxis:
		return m.RotateAboutAxis(cmd.Value)
	case KindRotate:
		return m.Rotate(cmd.Vec[0], cmd.Vec[1], cmd.Vec[2], cmd.Value)
	case KindSetColor:
		m.SetColor(cmd.Vec[0], cmd.Vec[1], cmd.Vec[2])
		return nil
	case KindSetPointRadius:
		m.SetPointRadius(cmd.Value)
		return nil
	}
	return fmt.Errorf("lathe: unknown command %v", cmd.Kind)
}

// ExecAll applies cmds in order and stops at the first error.
func (m *Model) ExecAll(cmds ...Command) error {
	for i, cmd := range cmds {
		if err := m.Exec(cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Kind, err)
		}
	}
	return nil
}

// AddBasePoint returns a command adding the base point (x,y).
func AddBasePoint(x, y float32) Command {
	return Command{Kind: KindAddBasePoint, Point: ms2.Vec{X: x, Y: y}}
}

// FormSolidOfRevolution returns a command sweeping the curve with the given step.
func FormSolidOfRevolution(stepDegrees float32) Command {
	return Command{Kind: KindFormSolidOfRevolution, Value: stepDegrees}
}

// SetColor returns a command setting the vertex color.
func SetColor(r, g, b float32) Command {
	return Command{Kind: KindSetColor, Vec: [3]float32{r, g, b}}
}

// Simple returns a command that takes no arguments, such as [KindFormCurve].
func Simple(kind CommandKind) Command { return Command{Kind: kind} }
