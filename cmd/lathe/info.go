package main

import (
	"fmt"

	"github.com/soypat/lathe"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <scene.toml>",
	Short: "Display mesh statistics of a scene",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	m, scene, err := buildScene(args[0], lathe.StateSweepingSolid)
	if err != nil {
		return err
	}
	step := scene.Step
	if step == 0 {
		step = lathe.DefaultStep
	}
	curve := m.CurveBuffers()
	solid := m.SolidBuffers()
	axis := m.RotationAxis()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scene: %s\n", args[0])
	fmt.Fprintf(w, "  Base points:  %d\n", len(m.BasePoints()))
	fmt.Fprintf(w, "  Curve points: %d\n", len(m.CurvePoints()))
	fmt.Fprintf(w, "  Step:         %g (%d rings)\n", step, lathe.RingCount(step))
	fmt.Fprintf(w, "  Curve axis:   (%.4f, %.4f, %.4f)\n", axis.X, axis.Y, axis.Z)
	fmt.Fprintf(w, "Curve mesh:  %d vertices, %d triangles\n", curve.VertexCount(), curve.TriangleCount())
	fmt.Fprintf(w, "Solid mesh:  %d vertices, %d triangles\n", solid.VertexCount(), solid.TriangleCount())
	return nil
}
