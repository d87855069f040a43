package main

import (
	"context"
	"fmt"
	"time"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
)

// runANSI presents frames with ansipixels, falling back to 216 colors on
// terminals without truecolor.
func runANSI(ctx context.Context, v *viewer, fps int) error {
	ap := ansipixels.NewAnsiPixels(float64(fps))
	if err := ap.Open(); err != nil {
		return fmt.Errorf("open ansipixels: %w", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.ClearScreen()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.SyncBackgroundColor()
	ap.HideCursor()
	ap.ClearScreen()

	if ap.W <= 0 || ap.H <= 0 {
		return fmt.Errorf("invalid terminal size: %dx%d", ap.W, ap.H)
	}
	v.resize(ap.W, ap.H*2)
	ap.OnResize = func() error {
		v.resize(ap.W, ap.H*2)
		return nil
	}

	var drawErr error
	lastFrame := time.Now()
	err := ap.FPSTicks(ctx, func(context.Context) bool {
		for _, k := range inputActions(ap.Data) {
			if !v.apply(k.act, k.body) {
				return false
			}
		}
		now := time.Now()
		v.step(now.Sub(lastFrame).Seconds())
		lastFrame = now

		v.draw()
		img := v.fb.ToImage()

		ap.StartSyncMode()
		if ap.ColorOutput.TrueColor {
			drawErr = ap.DrawTrueColorImage(0, 0, img)
		} else {
			drawErr = ap.Draw216ColorImage(0, 0, img)
		}
		if drawErr != nil {
			log.Errf("show image: %v", drawErr)
			return false
		}
		left, right := v.status()
		ap.WriteAt(0, 0, " %s ", left)
		ap.WriteAt(max(ap.W-len(right)-1, 0), 0, "%s ", right)
		ap.EndSyncMode()
		return true
	})
	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	if drawErr != nil {
		return fmt.Errorf("show image: %w", drawErr)
	}
	return nil
}
