package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/orrery/pkg/render"
)

type viewFlags struct {
	fps     int
	workers bool
	ansi    bool
}

func newViewCmd(opts *options) *cobra.Command {
	flags := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Watch the system in the terminal",
		Long: `Watch the system in the terminal.

Controls:
  1-9         - Warp to a body
  0           - Reset the camera
  F           - Free the camera where it is
  W/S/A/D     - Orbit the camera
  +/-         - Zoom in/out
  O           - Toggle orbit lines
  R           - Toggle rings
  Space       - Pause
  Q/Esc       - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", flags.fps)
			}
			sys, err := opts.loadSystem()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			v := newViewer(ctx, sys, flags.fps, flags.workers)
			if flags.ansi {
				err = runANSI(ctx, v, flags.fps)
			} else {
				err = runTerminal(ctx, v, flags.fps)
			}
			if cerr := v.close(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().IntVar(&flags.fps, "fps", 30, "Target FPS")
	cmd.Flags().BoolVar(&flags.workers, "workers", false, "Animate bodies on a worker pool, one goroutine per body")
	cmd.Flags().BoolVar(&flags.ansi, "ansi", false, "Present with ansipixels instead of ultraviolet")
	return cmd
}

// uvAction maps an ultraviolet key press to a viewer action.
func uvAction(ev uv.KeyPressEvent) (action, int) {
	switch {
	case ev.MatchString("ctrl+c", "escape"):
		return actQuit, 0
	case ev.MatchString("space"):
		return actTogglePause, 0
	case ev.MatchString("up"):
		return actPitchUp, 0
	case ev.MatchString("down"):
		return actPitchDown, 0
	case ev.MatchString("left"):
		return actYawLeft, 0
	case ev.MatchString("right"):
		return actYawRight, 0
	}
	return keyAction(ev.Text)
}

// runTerminal presents frames with ultraviolet half-block cells.
func runTerminal(ctx context.Context, v *viewer, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	tr := render.NewTerminalRenderer(term, width, height)
	v.resize(tr.FramebufferSize())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Events are decoded here; all state changes happen on the frame loop.
	keys := make(chan keyPress, 16)
	sizes := make(chan [2]int, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-sizes:
				default:
				}
				sizes <- [2]int{ev.Width, ev.Height}
			case uv.KeyPressEvent:
				a, body := uvAction(ev)
				if a == actNone {
					continue
				}
				select {
				case keys <- keyPress{a, body}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case sz := <-sizes:
			width, height = sz[0], sz[1]
			term.Erase()
			term.Resize(width, height)
			tr = render.NewTerminalRenderer(term, width, height)
			v.resize(tr.FramebufferSize())
		case k := <-keys:
			if !v.apply(k.act, k.body) {
				return nil
			}
		case now := <-ticker.C:
			v.step(now.Sub(lastFrame).Seconds())
			lastFrame = now

			v.draw()
			tr.Render(v.fb)
			if err := tr.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
			drawStatus(width, height, v)
		}
	}
}

// drawStatus writes the HUD over the first row with raw escape codes.
func drawStatus(width, height int, v *viewer) {
	const (
		reset   = "\x1b[0m"
		bgBlack = "\x1b[40m"
		fgGreen = "\x1b[92m"
		fgCyan  = "\x1b[96m"
	)
	if height < 1 {
		return
	}
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}
	left, right := v.status()
	fmt.Fprint(os.Stdout, moveTo(1, 1)+bgBlack+fgGreen+" "+left+" "+reset)
	col := max(width-len(right)-1, 1)
	fmt.Fprint(os.Stdout, moveTo(1, col)+bgBlack+fgCyan+right+" "+reset)
}
