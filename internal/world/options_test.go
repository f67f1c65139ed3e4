package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLightClamped(t *testing.T) {
	l := Light{
		Position:  mgl32.Vec3{-50, 3, 7},
		Colour:    mgl32.Vec3{-1, 0.25, 4},
		Intensity: 0,
	}

	got := l.Clamped()

	if got.Position != l.Position {
		t.Errorf("Expected position unchanged, got %v", got.Position)
	}
	if got.Colour != (mgl32.Vec3{0, 0.25, 1}) {
		t.Errorf("Expected colour clamped to (0, 0.25, 1), got %v", got.Colour)
	}
	if got.Intensity != MinLightIntensity {
		t.Errorf("Expected intensity %v, got %v", float32(MinLightIntensity), got.Intensity)
	}

	l.Intensity = 2000
	if got := l.Clamped().Intensity; got != MaxLightIntensity {
		t.Errorf("Expected intensity %v, got %v", float32(MaxLightIntensity), got)
	}
}
