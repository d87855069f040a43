package main

import (
	"context"
	"fmt"
	"time"

	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

const (
	orbitStep    = 0.08 // radians per key press
	zoomStep     = 1.15
	maxFrameTime = 0.1 // seconds; longer stalls are not simulated
)

// action is a viewer command decoded from a key press.
type action int

const (
	actNone action = iota
	actQuit
	actFocus // warp to the body index carried with the action
	actRelease
	actReset
	actYawLeft
	actYawRight
	actPitchUp
	actPitchDown
	actZoomIn
	actZoomOut
	actToggleOrbits
	actToggleRings
	actTogglePause
)

// keyAction maps a key name, as reported by the terminal, to an action.
// Digit keys carry the body index.
func keyAction(key string) (a action, body int) {
	switch key {
	case "q", "Q", "escape", "esc", "ctrl+c", "ctrl+d":
		return actQuit, 0
	case "0":
		return actReset, 0
	case "f", "F":
		return actRelease, 0
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return actFocus, int(key[0] - '1')
	case "a", "A", "left":
		return actYawLeft, 0
	case "d", "D", "right":
		return actYawRight, 0
	case "w", "W", "up":
		return actPitchUp, 0
	case "s", "S", "down":
		return actPitchDown, 0
	case "+", "=":
		return actZoomIn, 0
	case "-", "_":
		return actZoomOut, 0
	case "o", "O":
		return actToggleOrbits, 0
	case "r", "R":
		return actToggleRings, 0
	case " ", "space":
		return actTogglePause, 0
	}
	return actNone, 0
}

// inputActions decodes a chunk of raw terminal input. A lone ESC quits, and
// arrow keys (CSI or SS3 A-D) orbit the camera. Other escape sequences are
// skipped whole.
func inputActions(data []byte) []keyPress {
	var out []keyPress
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case b == 27 && i+1 < len(data) && (data[i+1] == '[' || data[i+1] == 'O'):
			j := i + 2
			for j < len(data) && (data[j] < 0x40 || data[j] > 0x7e) {
				j++
			}
			if j < len(data) {
				if a := arrowAction(data[j]); a != actNone {
					out = append(out, keyPress{a, 0})
				}
			}
			i = j
		case b == 27, b == 3, b == 4: // ESC, Ctrl-C, Ctrl-D
			out = append(out, keyPress{actQuit, 0})
		default:
			if a, body := keyAction(string(rune(b))); a != actNone {
				out = append(out, keyPress{a, body})
			}
		}
	}
	return out
}

func arrowAction(final byte) action {
	switch final {
	case 'A':
		return actPitchUp
	case 'B':
		return actPitchDown
	case 'C':
		return actYawRight
	case 'D':
		return actYawLeft
	}
	return actNone
}

type keyPress struct {
	act  action
	body int
}

// viewer holds interactive state shared by the terminal presenters. It is
// driven from a single goroutine.
type viewer struct {
	sys      *scene.System
	renderer *scene.Renderer
	cam      *render.Camera
	pool     *scene.Pool // nil animates on the calling goroutine
	fb       *render.Framebuffer

	paused bool
	focus  int // Followed body, -1 for none
	time   float64
	stats  scene.FrameStats
	hud    *hud
}

func newViewer(ctx context.Context, sys *scene.System, fps int, workers bool) *viewer {
	cam := render.NewCamera()
	cam.SetFrameRate(fps)
	v := &viewer{
		sys:      sys,
		renderer: scene.NewRenderer(sys),
		cam:      cam,
		fb:       render.NewFramebuffer(0, 0),
		focus:    -1,
		hud:      newHUD(),
	}
	if workers {
		v.pool = scene.NewPool(ctx, sys, scene.DefaultQueueDepth)
	}
	return v
}

// close stops the worker pool, if any.
func (v *viewer) close() error {
	if v.pool == nil {
		return nil
	}
	return v.pool.Stop()
}

// resize matches the framebuffer to the presenter's pixel size.
func (v *viewer) resize(width, height int) {
	v.fb.Resize(width, height)
}

// apply runs one action and reports whether the viewer should keep running.
func (v *viewer) apply(a action, body int) bool {
	switch a {
	case actQuit:
		return false
	case actFocus:
		if body < 0 || body >= len(v.sys.Bodies) {
			return true
		}
		v.focus = body
		v.cam.WarpTo(v.sys.WarpGoal(body))
	case actRelease:
		v.focus = -1
		v.cam.StopWarp()
	case actReset:
		v.focus = -1
		v.cam.Reset()
	case actYawLeft:
		v.cam.Orbit(-orbitStep, 0)
	case actYawRight:
		v.cam.Orbit(orbitStep, 0)
	case actPitchUp:
		v.cam.Orbit(0, orbitStep)
	case actPitchDown:
		v.cam.Orbit(0, -orbitStep)
	case actZoomIn:
		v.cam.Zoom(1 / zoomStep)
	case actZoomOut:
		v.cam.Zoom(zoomStep)
	case actToggleOrbits:
		v.renderer.ShowOrbits = !v.renderer.ShowOrbits
	case actToggleRings:
		v.renderer.ShowRings = !v.renderer.ShowRings
	case actTogglePause:
		v.paused = !v.paused
	}
	return true
}

// step advances the simulation by dt seconds and moves the camera one frame.
func (v *viewer) step(dt float64) {
	dt = min(max(dt, 0), maxFrameTime)
	if !v.paused {
		v.time += dt
		if v.pool != nil {
			v.pool.Advance(dt)
		} else {
			v.sys.Update(dt)
		}
	}
	if v.pool != nil {
		v.pool.Flush()
		v.sys.SetStates(v.pool.Drain())
	}

	if v.focus >= 0 {
		v.cam.Track(v.sys.Position(v.focus))
	}
	v.cam.Update()
	if eye, hit := scene.Collide(v.cam.Eye(), v.sys.Spheres()); hit {
		v.cam.SetEye(eye)
	}
}

// draw renders the current frame into the framebuffer.
func (v *viewer) draw() {
	v.stats = v.renderer.DrawFrame(v.fb, v.cam, v.time)
	v.hud.UpdateFPS()
}

// status returns the left and right HUD texts.
func (v *viewer) status() (left, right string) {
	name := "free camera"
	if v.focus >= 0 {
		name = v.sys.Bodies[v.focus].Name
	}
	left = fmt.Sprintf("%.0f FPS  %s", v.hud.fps, name)
	right = fmt.Sprintf("%d drawn %d culled %d tris", v.stats.Drawn, v.stats.Culled, v.stats.Triangles)
	if v.paused {
		right = "[paused] " + right
	}
	return left, right
}

// hud tracks the frame rate shown in the overlay.
type hud struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD() *hud {
	return &hud{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *hud) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}
