package world

import (
	"errors"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrNotInstanced = errors.New("model has no instanced buffer")

// ScriptHandle is a loaded but not yet executed script file.
type ScriptHandle struct {
	Path   string
	Source string
}

// WorldObject represents one placed model in a scene.
type WorldObject struct {
	ID             uint32
	Name           string
	ModelReference string
	ModelLocation  string
	SceneDirectory string

	Transform        Transform
	DefaultTransform Transform

	// Only meaningful in run mode, never persisted
	Velocity     mgl32.Vec3
	Acceleration mgl32.Vec3

	HasScript bool
	Script    *ScriptHandle
	Instanced bool
}

func NewWorldObject(id uint32, modelReference, modelLocation, sceneDirectory string) *WorldObject {
	return &WorldObject{
		ID:               id,
		Name:             modelReference + strconv.FormatUint(uint64(id), 10),
		ModelReference:   modelReference,
		ModelLocation:    modelLocation,
		SceneDirectory:   sceneDirectory,
		Transform:        DefaultTransform(),
		DefaultTransform: DefaultTransform(),
	}
}

// NextID returns one more than the highest id in objects, or 0 when empty.
func NextID(objects []*WorldObject) uint32 {
	if len(objects) == 0 {
		return 0
	}
	var highest uint32
	for _, o := range objects {
		if o.ID > highest {
			highest = o.ID
		}
	}
	return highest + 1
}

// SnapshotTransform records the authored transform before run mode.
func (o *WorldObject) SnapshotTransform() {
	o.DefaultTransform = o.Transform
	o.Velocity = mgl32.Vec3{}
	o.Acceleration = mgl32.Vec3{}
}

// ResetTransform puts the object back to its authored transform.
func (o *WorldObject) ResetTransform() {
	o.Transform = o.DefaultTransform
	o.Velocity = mgl32.Vec3{}
	o.Acceleration = mgl32.Vec3{}
}

// SetInstanced flags the object for instanced drawing. Turning it on requires
// the model to already have an instanced buffer.
func (o *WorldObject) SetInstanced(reg *InstancedRegistry, on bool) error {
	if on && !reg.Contains(o.ModelReference) {
		return ErrNotInstanced
	}
	o.Instanced = on
	return nil
}

// ClearScript drops the script binding.
func (o *WorldObject) ClearScript() {
	o.HasScript = false
	o.Script = nil
}

// Find returns the index of the object with id, or -1.
func Find(objects []*WorldObject, id uint32) int {
	for i, o := range objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}
