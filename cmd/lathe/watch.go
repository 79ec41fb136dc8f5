package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/soypat/lathe"
	"github.com/soypat/lathe/latheaux"
	"github.com/spf13/cobra"
)

var (
	flagDebounce time.Duration
	watchWidth   int
	watchHeight  int
)

var watchCmd = &cobra.Command{
	Use:   "watch <scene.toml>",
	Short: "Re-export STL and PNG files every time a scene changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagDebounce, "debounce", 200*time.Millisecond, "wait after the last change before rebuilding")
	watchCmd.Flags().IntVar(&watchWidth, "width", 512, "preview width in pixels")
	watchCmd.Flags().IntVar(&watchHeight, "height", 512, "preview height in pixels")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	sw, err := latheaux.NewSceneWatcher(flagDebounce)
	if err != nil {
		return err
	}
	defer sw.Close()
	rebuild := func(scene latheaux.Scene, err error) {
		if err == nil {
			err = exportScene(path, scene)
		}
		if err != nil {
			log.Println(err)
		}
	}
	err = sw.Add(path, rebuild)
	if err != nil {
		return err
	}
	rebuild(latheaux.LoadScene(path))
	log.Println("watching", path)
	err = sw.Run(ctx, func(err error) { log.Println("watcher:", err) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func exportScene(path string, scene latheaux.Scene) error {
	m, err := scene.Build(lathe.StateSweepingSolid)
	if err != nil {
		return err
	}
	fpstl, err := os.Create(outputPath("", path, ".stl"))
	if err != nil {
		return err
	}
	defer fpstl.Close()
	fppng, err := os.Create(outputPath("", path, ".png"))
	if err != nil {
		return err
	}
	defer fppng.Close()
	return latheaux.Render(m, latheaux.RenderConfig{
		STLOutput: fpstl,
		PNGOutput: fppng,
		PNG:       latheaux.PNGConfig{Width: watchWidth, Height: watchHeight, Fog: 0.5},
	})
}
