package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

type renderFlags struct {
	frames int
	dt     float64
	width  int
	height int
	out    string
	follow string
	quiet  bool
}

func newRenderCmd(opts *options) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to PNG files",
		Long:  "Render the animation offline, writing frame_0000.png, frame_0001.png, ... to the output directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := opts.loadSystem()
			if err != nil {
				return err
			}
			return renderFrames(cmd.Context(), sys, flags)
		},
	}
	cmd.Flags().IntVar(&flags.frames, "frames", 120, "Number of frames")
	cmd.Flags().Float64Var(&flags.dt, "dt", 1.0/30, "Simulated seconds per frame")
	cmd.Flags().IntVar(&flags.width, "width", 640, "Frame width in pixels")
	cmd.Flags().IntVar(&flags.height, "height", 480, "Frame height in pixels")
	cmd.Flags().StringVar(&flags.out, "out", "frames", "Output directory")
	cmd.Flags().StringVar(&flags.follow, "follow", "", "Warp the camera to the named body")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Hide the progress bar")
	return cmd
}

func (f *renderFlags) validate() error {
	var errs []error
	if f.frames <= 0 {
		errs = append(errs, fmt.Errorf("frames must be positive, got %d", f.frames))
	}
	if f.dt < 0 {
		errs = append(errs, fmt.Errorf("dt must not be negative, got %v", f.dt))
	}
	if f.width <= 0 || f.height <= 0 {
		errs = append(errs, fmt.Errorf("invalid frame size %dx%d", f.width, f.height))
	}
	return errors.Join(errs...)
}

// renderFrames animates sys and writes one PNG per frame.
func renderFrames(ctx context.Context, sys *scene.System, f *renderFlags) error {
	if err := f.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(f.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fb := render.NewFramebuffer(f.width, f.height)
	cam := render.NewCamera()
	if f.dt > 0 {
		cam.SetFrameTime(f.dt)
	}
	r := scene.NewRenderer(sys)

	focus := -1
	if f.follow != "" {
		if focus = sys.Find(f.follow); focus < 0 {
			return fmt.Errorf("unknown body %q", f.follow)
		}
		cam.WarpTo(sys.WarpGoal(focus))
	}

	var bar *progressbar.ProgressBar
	if !f.quiet {
		bar = progressbar.Default(int64(f.frames), "rendering")
		defer bar.Close()
	}

	t := 0.0
	for i := range f.frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render interrupted after %d frames: %w", i, err)
		}
		if focus >= 0 {
			cam.Track(sys.Position(focus))
		}
		cam.Update()

		stats := r.DrawFrame(fb, cam, t)
		path := filepath.Join(f.out, fmt.Sprintf("frame_%04d.png", i))
		if err := fb.SavePNG(path); err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
		log.Debugf("frame %d: %d drawn, %d culled, %d fragments", i, stats.Drawn, stats.Culled, stats.Fragments)
		if bar != nil {
			_ = bar.Add(1)
		}

		sys.Update(f.dt)
		t += f.dt
	}
	log.Infof("rendered %d frames to %s", f.frames, f.out)
	return nil
}
