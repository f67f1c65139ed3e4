// Package engine owns the GLFW window and turns its callbacks into input
// events for the editor frame loop.
package engine

import (
	"fmt"
	"runtime"

	"Worldsmith/internal/input"
	"Worldsmith/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

type WindowConfig struct {
	Width  int
	Height int
	Title  string
	X, Y   int
	// OpenGL requests a 4.1 core context; otherwise no client API is created
	// and the backend owns the surface.
	OpenGL bool
}

// Window is the platform window and the input state its callbacks feed.
type Window struct {
	window *glfw.Window
	Input  *input.State
}

// Frame is called once per loop iteration. Returning false stops the loop.
type Frame func(deltaTime float32) bool

func NewWindow(cfg WindowConfig) (*Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing glfw: %w", err)
	}

	// Set GLFW window hints here
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.OpenGL {
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	if cfg.OpenGL {
		w.MakeContextCurrent()
	}
	w.SetPos(cfg.X, cfg.Y)
	w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	applyDarkTitleBar(w)

	width, height := w.GetSize()
	win := &Window{window: w, Input: input.NewState(width, height)}
	win.bindCallbacks()

	logger.Log.Info("Window created", zap.Int("width", width), zap.Int("height", height), zap.Bool("opengl", cfg.OpenGL))
	return win, nil
}

// Run polls events and calls frame until the window closes or frame
// returns false.
func (win *Window) Run(frame Frame) {
	lastTime := glfw.GetTime()

	for !win.window.ShouldClose() {
		glfw.PollEvents()

		currentTime := glfw.GetTime()
		deltaTime := float32(currentTime - lastTime)
		lastTime = currentTime

		if !frame(deltaTime) {
			break
		}

		if win.window.GetAttrib(glfw.ClientAPI) != glfw.NoAPI {
			win.window.SwapBuffers()
		}
	}
}

func (win *Window) Close() {
	win.window.Destroy()
	glfw.Terminate()
}

func (win *Window) bindCallbacks() {
	in := win.Input

	win.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := translateKey(key)
		if k == input.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			in.Handle(input.Event{Kind: input.KeyPressed, Key: k})
		case glfw.Release:
			in.Handle(input.Event{Kind: input.KeyReleased, Key: k})
		}
	})

	win.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		if action == glfw.Press {
			in.Handle(input.Event{Kind: input.MousePressed, Button: b})
		} else if action == glfw.Release {
			in.Handle(input.Event{Kind: input.MouseReleased, Button: b})
		}
	})

	win.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		in.Handle(input.Event{Kind: input.CursorMoved, X: float32(xpos), Y: float32(ypos)})
	})

	win.window.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		in.Handle(input.Event{Kind: input.Scrolled, X: float32(xoff), Y: float32(yoff)})
	})

	win.window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		in.Handle(input.Event{Kind: input.Resized, X: float32(width), Y: float32(height)})
	})

	win.window.SetCloseCallback(func(w *glfw.Window) {
		// The editor decides when to exit.
		w.SetShouldClose(false)
		in.Handle(input.Event{Kind: input.CloseRequested})
	})
}

var keymap = map[glfw.Key]input.Key{
	glfw.KeyW:          input.KeyW,
	glfw.KeyA:          input.KeyA,
	glfw.KeyS:          input.KeyS,
	glfw.KeyD:          input.KeyD,
	glfw.KeyUp:         input.KeyUp,
	glfw.KeyDown:       input.KeyDown,
	glfw.KeyLeft:       input.KeyLeft,
	glfw.KeyRight:      input.KeyRight,
	glfw.KeyLeftShift:  input.KeyShift,
	glfw.KeyRightShift: input.KeyShift,
	glfw.KeyF5:         input.KeyF5,
	glfw.KeyEscape:     input.KeyEscape,
	glfw.KeyDelete:     input.KeyDelete,
}

func translateKey(key glfw.Key) input.Key {
	return keymap[key]
}

func translateButton(button glfw.MouseButton) (input.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return input.MouseLeft, true
	case glfw.MouseButtonRight:
		return input.MouseRight, true
	case glfw.MouseButtonMiddle:
		return input.MouseMiddle, true
	default:
		return 0, false
	}
}
