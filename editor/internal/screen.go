package editor

import (
	"path/filepath"
	"time"

	"Worldsmith/internal/input"
	"Worldsmith/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

type ScreenKind int

const (
	LoadingScreen ScreenKind = iota
	EditorScreen
)

func (k ScreenKind) String() string {
	if k == EditorScreen {
		return "Editor"
	}
	return "Loading"
}

type loading struct {
	elapsed       time.Duration
	axisRequested bool
	axisPath      string
	width, height int
}

// Screen is the active top-level screen. Exactly one of its pointers is set,
// matching Kind.
type Screen struct {
	Kind    ScreenKind
	loading *loading
	session *Session
}

func NewLoadingScreen(cfg *EditorConfig) Screen {
	opts := cfg.Options
	return Screen{
		Kind: LoadingScreen,
		loading: &loading{
			axisPath: filepath.Join(opts.ModelsDir, AxisModel+"."+opts.ModelExtension),
		},
	}
}

func NewEditorScreen(session *Session) Screen {
	return Screen{Kind: EditorScreen, session: session}
}

// Session is the editor session, or nil while loading.
func (s Screen) Session() *Session {
	return s.session
}

func (s Screen) Update(in *input.State, dt float32) {
	switch s.Kind {
	case LoadingScreen:
		s.loading.elapsed += time.Duration(float64(dt) * float64(time.Second))
		s.loading.width, s.loading.height = in.Width, in.Height
	case EditorScreen:
		s.session.Update(in, dt)
	}
}

func (s Screen) Draw(cmds []renderer.DrawCommand) []renderer.DrawCommand {
	switch s.Kind {
	case LoadingScreen:
		return s.loading.draw(cmds)
	case EditorScreen:
		return s.session.Draw(cmds)
	}
	return cmds
}

// Finished reports whether the screen is ready to hand over.
func (s Screen) Finished() bool {
	switch s.Kind {
	case LoadingScreen:
		return s.loading.elapsed >= logoDuration
	default:
		return false
	}
}

// Advance moves to the next screen once the current one has finished.
func Advance(s Screen, deps *Deps, width, height int) Screen {
	if !s.Finished() {
		return s
	}
	switch s.Kind {
	case LoadingScreen:
		deps.Logs.Info("Editor ready")
		return NewEditorScreen(NewSession(deps, width, height, AxisModel))
	}
	return s
}

func (l *loading) draw(cmds []renderer.DrawCommand) []renderer.DrawCommand {
	// Load the axis gizmo model behind the logo.
	if !l.axisRequested {
		cmds = append(cmds, renderer.LoadModel(AxisModel, l.axisPath))
		l.axisRequested = true
	}

	size := mgl32.Vec2{256, 256}
	centre := mgl32.Vec2{float32(l.width), float32(l.height)}.Mul(0.5)
	logo := renderer.Textured(centre.Sub(size.Mul(0.5)), size, 0, logoTexture)
	logo.Colour[3] = logoAlpha(float32(l.elapsed) / float32(logoDuration))
	return append(cmds, logo)
}

// logoAlpha fades the logo in over the first third and out over the last.
func logoAlpha(t float32) float32 {
	switch {
	case t < 1.0/3:
		return max(t*3, 0)
	case t > 2.0/3:
		return max((1-t)*3, 0)
	default:
		return 1
	}
}
