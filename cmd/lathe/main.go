package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/soypat/lathe"
	"github.com/soypat/lathe/latheaux"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lathe",
	Short: "Sweep smooth curves into solids of revolution",
	Long: `lathe interpolates a curve through a handful of points and revolves it
around the X axis into a triangulated solid. Points are read from TOML scene files
or placed interactively with the view command.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	runtime.LockOSThread() // GLFW must run on the main thread.
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseState parses the geometry stage names accepted by the --state flag.
func parseState(s string) (lathe.State, error) {
	switch strings.ToLower(s) {
	case "points":
		return lathe.StateCollectingPoints, nil
	case "curve":
		return lathe.StatePreviewingCurve, nil
	case "solid", "":
		return lathe.StateSweepingSolid, nil
	}
	return 0, fmt.Errorf("unknown state %q, want points, curve or solid", s)
}

// buildScene loads the scene at path and takes a new model to target.
func buildScene(path string, target lathe.State) (*lathe.Model, latheaux.Scene, error) {
	scene, err := latheaux.LoadScene(path)
	if err != nil {
		return nil, scene, err
	}
	m, err := scene.Build(target)
	if err != nil {
		return nil, scene, fmt.Errorf("building %s: %w", path, err)
	}
	return m, scene, nil
}

// outputPath replaces the extension of the scene file with ext when out is empty.
func outputPath(out, scenePath, ext string) string {
	if out != "" {
		return out
	}
	base := strings.TrimSuffix(scenePath, ".toml")
	return base + ext
}
