package main

import (
	"os"

	"github.com/soypat/lathe"
	"github.com/soypat/lathe/latheaux"
	"github.com/spf13/cobra"
)

var (
	flagOutput string
	flagState  string
	pngWidth   int
	pngHeight  int
	flagFog    float32
	flagQuiet  bool
)

var stlCmd = &cobra.Command{
	Use:   "stl <scene.toml>",
	Short: "Export the solid of revolution of a scene as binary STL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSTL,
}

var pngCmd = &cobra.Command{
	Use:   "png <scene.toml>",
	Short: "Render a PNG preview of a scene",
	Long:  "Render the base points, the curve or the solid of revolution of a scene to a PNG image.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPNG,
}

func init() {
	stlCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default scene name with .stl extension)")
	stlCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "do not print progress")

	pngCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default scene name with .png extension)")
	pngCmd.Flags().StringVar(&flagState, "state", "solid", "geometry to render: points, curve or solid")
	pngCmd.Flags().IntVar(&pngWidth, "width", 512, "image width in pixels")
	pngCmd.Flags().IntVar(&pngHeight, "height", 512, "image height in pixels")
	pngCmd.Flags().Float32Var(&flagFog, "fog", 0.5, "fade distant faces towards the background, 0 disables")
	pngCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "do not print progress")

	rootCmd.AddCommand(stlCmd, pngCmd)
}

func runSTL(cmd *cobra.Command, args []string) error {
	m, _, err := buildScene(args[0], lathe.StateSweepingSolid)
	if err != nil {
		return err
	}
	fp, err := os.Create(outputPath(flagOutput, args[0], ".stl"))
	if err != nil {
		return err
	}
	defer fp.Close()
	err = latheaux.Render(m, latheaux.RenderConfig{STLOutput: fp, Silent: flagQuiet})
	if err != nil {
		return err
	}
	return fp.Close()
}

func runPNG(cmd *cobra.Command, args []string) error {
	target, err := parseState(flagState)
	if err != nil {
		return err
	}
	m, _, err := buildScene(args[0], target)
	if err != nil {
		return err
	}
	fp, err := os.Create(outputPath(flagOutput, args[0], ".png"))
	if err != nil {
		return err
	}
	defer fp.Close()
	err = latheaux.Render(m, latheaux.RenderConfig{
		PNGOutput: fp,
		PNG:       latheaux.PNGConfig{Width: pngWidth, Height: pngHeight, Fog: flagFog},
		Silent:    flagQuiet,
	})
	if err != nil {
		return err
	}
	return fp.Close()
}
