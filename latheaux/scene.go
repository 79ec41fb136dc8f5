package latheaux

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/soypat/lathe"
	"github.com/soypat/lathe/tbezier"
)

// Scene describes a solid of revolution in a TOML file:
//
//	points = [[-1, -1], [0, 1], [1, -1]]
//	step = 15.0
//	color = [0.8, 0.4, 0.2]
//	point_radius = 0.015
//	smoothness = "so1"
type Scene struct {
	Points      [][]float32 `toml:"points"`
	Step        float32     `toml:"step"`
	Color       []float32   `toml:"color"`
	PointRadius float32     `toml:"point_radius"`
	Smoothness  string      `toml:"smoothness"`
	Resolution  int         `toml:"resolution"`
}

// LoadScene reads and validates the scene file at path.
func LoadScene(path string) (Scene, error) {
	var s Scene
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Scene{}, fmt.Errorf("decoding scene %s: %w", path, err)
	}
	return s, checkScene(s, md)
}

// ParseScene reads and validates a scene from r.
func ParseScene(r io.Reader) (Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Scene{}, fmt.Errorf("decoding scene: %w", err)
	}
	return s, checkScene(s, md)
}

func checkScene(s Scene, md toml.MetaData) error {
	var errs []error
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		errs = append(errs, fmt.Errorf("unknown scene keys: %s", strings.Join(keys, ", ")))
	}
	errs = append(errs, s.Validate())
	return errors.Join(errs...)
}

// Validate checks every field of the scene and reports all problems found.
func (s Scene) Validate() error {
	var errs []error
	for i, p := range s.Points {
		if len(p) != 2 {
			errs = append(errs, fmt.Errorf("point %d has %d coordinates, want 2", i, len(p)))
		}
	}
	if s.Step != 0 && !(s.Step > 0 && s.Step <= 360) {
		errs = append(errs, fmt.Errorf("step %g outside (0,360]: %w", s.Step, lathe.ErrInvalidStep))
	}
	if s.Color != nil && len(s.Color) != 3 {
		errs = append(errs, fmt.Errorf("color has %d components, want 3", len(s.Color)))
	}
	for i, c := range s.Color {
		if c < 0 || c > 1 {
			errs = append(errs, fmt.Errorf("color component %d=%g outside [0,1]", i, c))
		}
	}
	if s.PointRadius < 0 {
		errs = append(errs, fmt.Errorf("negative point radius %g", s.PointRadius))
	}
	if s.Resolution < 0 {
		errs = append(errs, fmt.Errorf("negative resolution %d", s.Resolution))
	}
	if _, err := s.order(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s Scene) order() (tbezier.Order, error) {
	switch strings.ToLower(s.Smoothness) {
	case "", "so0":
		return tbezier.SO0, nil
	case "so1":
		return tbezier.SO1, nil
	}
	return 0, fmt.Errorf("unknown smoothness %q, want so0 or so1", s.Smoothness)
}

// Config returns the model configuration of the scene.
func (s Scene) Config() (lathe.Config, error) {
	order, err := s.order()
	if err != nil {
		return lathe.Config{}, err
	}
	return lathe.Config{
		PointRadius: s.PointRadius,
		Smoothness:  order,
		Resolution:  s.Resolution,
	}, nil
}

// Commands returns the commands that take a new model to the target state.
// The scene color is set by command so black is not taken for the default color.
func (s Scene) Commands(target lathe.State) []lathe.Command {
	cmds := make([]lathe.Command, 0, len(s.Points)+3)
	if len(s.Color) == 3 {
		cmds = append(cmds, lathe.SetColor(s.Color[0], s.Color[1], s.Color[2]))
	}
	for _, p := range s.Points {
		if len(p) == 2 {
			cmds = append(cmds, lathe.AddBasePoint(p[0], p[1]))
		}
	}
	if target >= lathe.StatePreviewingCurve {
		cmds = append(cmds, lathe.Simple(lathe.KindFormCurve))
	}
	if target >= lathe.StateSweepingSolid {
		cmds = append(cmds, lathe.FormSolidOfRevolution(s.Step))
	}
	return cmds
}

// Build validates the scene and returns a model taken to the target state.
func (s Scene) Build(target lathe.State) (*lathe.Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	m := lathe.NewModel(cfg)
	err = m.ExecAll(s.Commands(target)...)
	if err != nil {
		return nil, err
	}
	return m, nil
}
