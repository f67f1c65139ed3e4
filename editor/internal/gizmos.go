package editor

import (
	"Worldsmith/internal/renderer"

	mgl "github.com/go-gl/mathgl/mgl32"
)

const selectedGizmoScale = 0.5

// axisGizmo draws the world axes at the origin.
func axisGizmo() renderer.DrawCommand {
	return renderer.Model(AxisModel, mgl.Vec3{}, mgl.Vec3{}, mgl.Vec3{1, 1, 1})
}

// selectionGizmo marks the object being edited with a smaller set of axes.
func selectionGizmo(pos mgl.Vec3) renderer.DrawCommand {
	s := float32(selectedGizmoScale)
	return renderer.Model(AxisModel, pos, mgl.Vec3{}, mgl.Vec3{s, s, s})
}
