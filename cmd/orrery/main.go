// orrery - Animated solar system in the terminal
// Renders a star, its planets and their moons with a CPU rasterizer and
// procedural shaders, either live in the terminal or offline to PNG frames.
//
// Controls (view):
//
//	1-9         - Warp to a body
//	0           - Reset the camera
//	F           - Free the camera where it is
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	+/-         - Zoom in/out
//	O           - Toggle orbit lines
//	R           - Toggle rings
//	Space       - Pause the animation
//	Q/Esc       - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/orrery/pkg/scene"
)

// options holds the flags shared by every subcommand.
type options struct {
	scenePath string
	logLevel  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "orrery",
		Short: "Animated solar system in the terminal",
		Long: `orrery - Animated solar system in the terminal

Renders a star, its planets and their moons with a CPU software rasterizer.
The scene is read from YAML (--scene) or the embedded default.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.SetLogLevelStr(opts.logLevel); err != nil {
				return fmt.Errorf("set log level: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.scenePath, "scene", "", "Scene YAML file (default: embedded scene)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, verbose, info, warning, error)")

	root.AddCommand(
		newViewCmd(opts),
		newRenderCmd(opts),
		newInfoCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// loadSystem builds the scene named by --scene.
func (o *options) loadSystem() (*scene.System, error) {
	cfg, err := scene.LoadConfig(o.scenePath)
	if err != nil {
		return nil, err
	}
	return scene.NewSystem(cfg)
}
