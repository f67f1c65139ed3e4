package editor

import (
	"fmt"
	"math"

	"Worldsmith/internal/input"
	"Worldsmith/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// App drives one frame at a time: screen transitions, update, draw and
// submission to the backend.
type App struct {
	deps    *Deps
	backend renderer.Backend
	screen  Screen
	fps     fpsCounter
	cmds    []renderer.DrawCommand
}

func NewApp(deps *Deps, backend renderer.Backend) *App {
	return &App{
		deps:    deps,
		backend: backend,
		screen:  NewLoadingScreen(deps.Config),
	}
}

func (a *App) Screen() Screen {
	return a.screen
}

// Frame runs one frame and reports whether the editor should keep running.
// The command slice passed to the backend is reused on the next frame.
func (a *App) Frame(in *input.State, dt float32) bool {
	a.screen = Advance(a.screen, a.deps, in.Width, in.Height)
	a.screen.Update(in, dt)

	a.cmds = a.screen.Draw(a.cmds[:0])
	a.fps.tick(dt)
	a.cmds = a.overlay(a.cmds, in)

	a.backend.Submit(a.cmds)
	in.EndFrame()

	if in.Close {
		return false
	}
	if s := a.screen.Session(); s != nil && s.Exit() {
		return false
	}
	return true
}

func (a *App) overlay(cmds []renderer.DrawCommand, in *input.State) []renderer.DrawCommand {
	const size, margin = 16, 10

	cmds = append(cmds, renderer.Text(mgl32.Vec2{margin, float32(in.Height) - margin - size}, size, overlayColour, Version, overlayFont))

	if a.deps.Config.Options.ShowFPS {
		cmds = append(cmds, renderer.Text(mgl32.Vec2{margin, margin}, size, overlayColour, fmt.Sprintf("%d fps", a.fps.fps), overlayFont))
	}
	if s := a.screen.Session(); s != nil && s.Running() {
		cmds = append(cmds, renderer.Text(mgl32.Vec2{margin, margin + 2*size}, size, overlayColour, "Running (F5 to stop)", overlayFont))
	}
	if notice, shown := a.deps.Logs.Notice(); shown {
		pos := mgl32.Vec2{margin, margin + 4*size}
		backdrop := mgl32.Vec2{float32(len(notice))*size*0.6 + 8, size + 8}
		cmds = append(cmds, renderer.Coloured(pos.Sub(mgl32.Vec2{4, 4}), backdrop, 0, noticeBackdrop))
		cmds = append(cmds, renderer.Text(pos, size, noticeColour, notice, overlayFont))
	}
	return cmds
}

// fpsCounter recomputes the frame rate once a second.
type fpsCounter struct {
	frames  int
	elapsed float32
	fps     int
}

func (f *fpsCounter) tick(dt float32) {
	f.frames++
	f.elapsed += dt
	if f.elapsed >= 1 {
		f.fps = int(math.Round(float64(f.frames) / float64(f.elapsed)))
		f.frames = 0
		f.elapsed = 0
	}
}
