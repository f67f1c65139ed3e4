package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type DrawKind int

const (
	DrawSetCamera DrawKind = iota
	DrawSetLight
	DrawLoadModel
	DrawUnloadModel
	DrawModel
	DrawHologram
	DrawAddInstancedBuffer
	DrawRemoveInstancedBuffer
	DrawAddInstance
	DrawInstanced
	DrawText
	DrawTextured
	DrawColoured
)

var drawKindNames = [...]string{
	"SetCamera",
	"SetLight",
	"LoadModel",
	"UnloadModel",
	"Model",
	"Hologram",
	"AddInstancedBuffer",
	"RemoveInstancedBuffer",
	"AddInstance",
	"Instanced",
	"Text",
	"Textured",
	"Coloured",
}

func (k DrawKind) String() string {
	if k < 0 || int(k) >= len(drawKindNames) {
		return fmt.Sprintf("DrawKind(%d)", int(k))
	}
	return drawKindNames[k]
}

// DrawCommand is one instruction for the rendering backend. Which fields are
// meaningful depends on Kind. 2D commands use the X and Y of Position and Size
// and store their rotation in Rotation.X.
type DrawCommand struct {
	Kind      DrawKind
	Model     string // model reference, texture name or font
	Location  string // model file path for LoadModel
	Position  mgl32.Vec3
	Rotation  mgl32.Vec3
	Size      mgl32.Vec3
	Colour    mgl32.Vec4
	Intensity float32
	Text      string

	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
}

// Backend consumes the ordered draw commands of one frame.
type Backend interface {
	Submit(cmds []DrawCommand)
}

func SetCamera(c *Camera) DrawCommand {
	return DrawCommand{
		Kind:       DrawSetCamera,
		View:       c.GetViewMatrix(),
		Projection: c.GetProjectionMatrix(),
		Eye:        c.Position,
	}
}

func SetLight(position, colour mgl32.Vec3, intensity float32) DrawCommand {
	return DrawCommand{
		Kind:      DrawSetLight,
		Position:  position,
		Colour:    colour.Vec4(1),
		Intensity: intensity,
	}
}

func LoadModel(ref, location string) DrawCommand {
	return DrawCommand{Kind: DrawLoadModel, Model: ref, Location: location}
}

func UnloadModel(ref string) DrawCommand {
	return DrawCommand{Kind: DrawUnloadModel, Model: ref}
}

func Model(ref string, position, rotation, size mgl32.Vec3) DrawCommand {
	return DrawCommand{Kind: DrawModel, Model: ref, Position: position, Rotation: rotation, Size: size}
}

// Hologram draws a translucent preview of a model, used for the object being placed.
func Hologram(ref string, position, rotation, size mgl32.Vec3) DrawCommand {
	return DrawCommand{Kind: DrawHologram, Model: ref, Position: position, Rotation: rotation, Size: size}
}

func AddInstancedBuffer(ref string) DrawCommand {
	return DrawCommand{Kind: DrawAddInstancedBuffer, Model: ref}
}

func RemoveInstancedBuffer(ref string) DrawCommand {
	return DrawCommand{Kind: DrawRemoveInstancedBuffer, Model: ref}
}

func AddInstance(ref string, position, rotation, size mgl32.Vec3) DrawCommand {
	return DrawCommand{Kind: DrawAddInstance, Model: ref, Position: position, Rotation: rotation, Size: size}
}

func Instanced(ref string) DrawCommand {
	return DrawCommand{Kind: DrawInstanced, Model: ref}
}

func Text(position mgl32.Vec2, size float32, colour mgl32.Vec4, text, font string) DrawCommand {
	return DrawCommand{
		Kind:     DrawText,
		Model:    font,
		Position: position.Vec3(0),
		Size:     mgl32.Vec3{size, size, 0},
		Colour:   colour,
		Text:     text,
	}
}

func Textured(position, size mgl32.Vec2, rotation float32, texture string) DrawCommand {
	return DrawCommand{
		Kind:     DrawTextured,
		Model:    texture,
		Position: position.Vec3(0),
		Size:     size.Vec3(0),
		Rotation: mgl32.Vec3{rotation, 0, 0},
		Colour:   mgl32.Vec4{1, 1, 1, 1},
	}
}

func Coloured(position, size mgl32.Vec2, rotation float32, colour mgl32.Vec4) DrawCommand {
	return DrawCommand{
		Kind:     DrawColoured,
		Position: position.Vec3(0),
		Size:     size.Vec3(0),
		Rotation: mgl32.Vec3{rotation, 0, 0},
		Colour:   colour,
	}
}

// Recorder is a Backend that keeps the last submitted frame. It is used for
// headless runs and tests.
type Recorder struct {
	Frames int
	Last   []DrawCommand
}

func (r *Recorder) Submit(cmds []DrawCommand) {
	r.Frames++
	r.Last = append(r.Last[:0], cmds...)
}

// Count returns how many commands of kind the last frame contained.
func (r *Recorder) Count(kind DrawKind) int {
	n := 0
	for _, c := range r.Last {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the first command of kind in the last frame.
func (r *Recorder) Find(kind DrawKind) (DrawCommand, bool) {
	for _, c := range r.Last {
		if c.Kind == kind {
			return c, true
		}
	}
	return DrawCommand{}, false
}

// Index returns the position of the first command of kind, or -1.
func (r *Recorder) Index(kind DrawKind) int {
	for i, c := range r.Last {
		if c.Kind == kind {
			return i
		}
	}
	return -1
}
