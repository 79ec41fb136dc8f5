package main

import (
	"github.com/soypat/lathe"
	"github.com/soypat/lathe/latheaux"
	"github.com/spf13/cobra"
)

var (
	flagStep   float32
	viewWidth  int
	viewHeight int
)

var viewCmd = &cobra.Command{
	Use:   "view [scene.toml]",
	Short: "Place points and sweep solids interactively",
	Long: `Open a window where left clicks add base points.

Keys:
  E        form the curve, then the solid of revolution
  Q        clear the solid, then the curve
  Space    clear base points
  Arrows   rotate the solid about X and Y
  W S      rotate the solid about Z
  A        rotate the solid about the curve axis
  1-9      rotation speed
  Keypad   move the light (4 6 X, 2 8 Y, 7 9 Z)
  Esc      quit

A scene file preloads its base points, color, radius and smoothness.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().Float32Var(&flagStep, "step", lathe.DefaultStep, "revolution step in degrees")
	viewCmd.Flags().IntVar(&viewWidth, "width", 1024, "window width in pixels")
	viewCmd.Flags().IntVar(&viewHeight, "height", 768, "window height in pixels")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	m := lathe.NewModel(lathe.Config{PointRadius: 0.015})
	step := flagStep
	if len(args) == 1 {
		var scene latheaux.Scene
		var err error
		m, scene, err = buildScene(args[0], lathe.StateCollectingPoints)
		if err != nil {
			return err
		}
		if scene.Step != 0 && !cmd.Flags().Changed("step") {
			step = scene.Step
		}
	}
	return latheaux.UI(m, latheaux.UIConfig{
		Width:   viewWidth,
		Height:  viewHeight,
		Step:    step,
		Context: cmd.Context(),
	})
}
