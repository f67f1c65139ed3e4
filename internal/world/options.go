package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type CameraType int32

const (
	FirstPerson CameraType = iota
	Orbiting
)

func (c CameraType) String() string {
	switch c {
	case FirstPerson:
		return "FirstPerson"
	case Orbiting:
		return "Orbiting"
	default:
		return fmt.Sprintf("CameraType(%d)", int32(c))
	}
}

// GameOptions configures the run-mode camera of a scene.
type GameOptions struct {
	CameraType      CameraType
	CameraTarget    int32 // object index, used when Orbiting
	CameraDistance  float32
	CameraLocation  mgl32.Vec3 // used when FirstPerson
	OrbitHorizontal bool
	OrbitVertical   bool
}

func DefaultGameOptions() GameOptions {
	return GameOptions{
		CameraType:      FirstPerson,
		CameraTarget:    0,
		CameraDistance:  20,
		CameraLocation:  mgl32.Vec3{0, 5, 20},
		OrbitHorizontal: true,
		OrbitVertical:   true,
	}
}

// RepairTarget keeps CameraTarget valid after the object at removed was
// deleted from the list.
func (g *GameOptions) RepairTarget(removed int) {
	target := int(g.CameraTarget)
	switch {
	case target == removed:
		g.CameraTarget = 0
	case target > removed:
		g.CameraTarget--
	}
}

// Light is the single scene light.
type Light struct {
	Position  mgl32.Vec3
	Colour    mgl32.Vec3
	Intensity float32
}

const (
	MinLightIntensity = 0.1
	MaxLightIntensity = 1000
)

func DefaultLight() Light {
	return Light{
		Position:  mgl32.Vec3{0, 10, 0},
		Colour:    mgl32.Vec3{1, 1, 1},
		Intensity: 100,
	}
}

// Clamped limits intensity to the editable range and each colour channel to
// [0, 1].
func (l Light) Clamped() Light {
	l.Intensity = mgl32.Clamp(l.Intensity, MinLightIntensity, MaxLightIntensity)
	for i := range l.Colour {
		l.Colour[i] = mgl32.Clamp(l.Colour[i], 0, 1)
	}
	return l
}
