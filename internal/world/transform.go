package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a model in the scene. Rotation is in degrees per axis.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Size     mgl32.Vec3
}

func DefaultTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 0},
		Size:     mgl32.Vec3{1, 1, 1},
	}
}

func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}
