package scripting

import (
	"fmt"

	"Worldsmith/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Global names shared with scripts.
const (
	GlobalRefNum     = "ref_num"
	GlobalDeltaTime  = "delta_time"
	GlobalMouseX     = "mouse_x"
	GlobalMouseY     = "mouse_y"
	GlobalLeftMouse  = "left_mouse"
	GlobalRightMouse = "right_mouse"
	GlobalWindowX    = "window_dim_x"
	GlobalWindowY    = "window_dim_y"
	GlobalW          = "w_key"
	GlobalA          = "a_key"
	GlobalS          = "s_key"
	GlobalD          = "d_key"
)

var (
	positionGlobals     = [3]string{"x", "y", "z"}
	rotationGlobals     = [3]string{"rot_x", "rot_y", "rot_z"}
	sizeGlobals         = [3]string{"size_x", "size_y", "size_z"}
	velocityGlobals     = [3]string{"vel_x", "vel_y", "vel_z"}
	accelerationGlobals = [3]string{"acc_x", "acc_y", "acc_z"}
)

// FrameInput is the input every script sees during one frame.
type FrameInput struct {
	DeltaTime  float32
	Mouse      mgl32.Vec2
	LeftMouse  bool
	RightMouse bool
	Window     mgl32.Vec2
	W, A, S, D bool
}

// PushFrame publishes the frame-wide globals.
func PushFrame(h Host, in FrameInput) {
	h.SetGlobal(GlobalDeltaTime, Number(float64(in.DeltaTime)))
	h.SetGlobal(GlobalMouseX, Number(float64(in.Mouse.X())))
	h.SetGlobal(GlobalMouseY, Number(float64(in.Mouse.Y())))
	h.SetGlobal(GlobalLeftMouse, Bool(in.LeftMouse))
	h.SetGlobal(GlobalRightMouse, Bool(in.RightMouse))
	h.SetGlobal(GlobalWindowX, Number(float64(in.Window.X())))
	h.SetGlobal(GlobalWindowY, Number(float64(in.Window.Y())))
	h.SetGlobal(GlobalW, Bool(in.W))
	h.SetGlobal(GlobalA, Bool(in.A))
	h.SetGlobal(GlobalS, Bool(in.S))
	h.SetGlobal(GlobalD, Bool(in.D))
}

// Execute runs obj's script source so its functions are defined.
func Execute(h Host, obj *world.WorldObject) error {
	if !obj.HasScript || obj.Script == nil {
		return ErrNoScript
	}
	return h.Execute(obj.Name+Extension, obj.Script.Source)
}

// Prepare publishes obj's id and motion state.
func Prepare(h Host, obj *world.WorldObject) {
	h.SetGlobal(GlobalRefNum, Number(float64(obj.ID)))
	setVec(h, positionGlobals, obj.Transform.Position)
	setVec(h, rotationGlobals, obj.Transform.Rotation)
	setVec(h, sizeGlobals, obj.Transform.Size)
	setVec(h, velocityGlobals, obj.Velocity)
	setVec(h, accelerationGlobals, obj.Acceleration)
}

// Collect reads obj's motion state back. Nothing is written unless every
// global is still a number.
func Collect(h Host, obj *world.WorldObject) error {
	var vecs [5]mgl32.Vec3
	for i, names := range [5][3]string{positionGlobals, rotationGlobals, sizeGlobals, velocityGlobals, accelerationGlobals} {
		v, err := getVec(h, names)
		if err != nil {
			return err
		}
		vecs[i] = v
	}

	obj.Transform.Position = vecs[0]
	obj.Transform.Rotation = vecs[1]
	obj.Transform.Size = vecs[2]
	obj.Velocity = vecs[3]
	obj.Acceleration = vecs[4]
	return nil
}

// RunObject calls obj's update function with its state published and reads
// the result back. On error obj is unchanged.
func RunObject(h Host, obj *world.WorldObject) error {
	if !obj.HasScript {
		return ErrNoScript
	}
	Prepare(h, obj)
	if err := h.Call(FunctionName(obj.Name)); err != nil {
		return err
	}
	if err := Collect(h, obj); err != nil {
		return fmt.Errorf("%s: %w", obj.Name, err)
	}
	return nil
}

func setVec(h Host, names [3]string, v mgl32.Vec3) {
	for i, name := range names {
		h.SetGlobal(name, Number(float64(v[i])))
	}
}

func getVec(h Host, names [3]string) (mgl32.Vec3, error) {
	var out mgl32.Vec3
	for i, name := range names {
		n, ok := h.GetGlobal(name).AsNumber()
		if !ok {
			return out, fmt.Errorf("global %s is not a number", name)
		}
		out[i] = float32(n)
	}
	return out, nil
}
