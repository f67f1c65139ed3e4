// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix
	Pitch      float32    // Pitch angle in degrees (vertical rotation)
	Yaw        float32    // Yaw angle in degrees (horizontal rotation)

	// COLD DATA - Configuration, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Speed       float32    // Movement speed in units per second
	Sensitivity float32    // Mouse sensitivity
	Fov         float32    // Field of view
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	AspectRatio float32    // Screen aspect ratio (width / height)
	InvertMouse bool       // Invert mouse Y axis

	// Orbit mode
	Orbiting bool       // Position is derived from Target and Distance
	Target   mgl32.Vec3 // Point the camera orbits around
	Distance float32    // Distance from Target while orbiting
}

// CameraState is the part of a camera that run mode may change and that the
// editor restores afterwards.
type CameraState struct {
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
	Orbiting bool
	Target   mgl32.Vec3
	Distance float32
}

// Movement holds the fly-camera directions requested this frame.
type Movement struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Fast     bool
}

const minOrbitDistance = 1.0

func NewDefaultCamera(width, height int32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{0, 10, 30},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Pitch:       -20.0,
		Yaw:         -90.0,
		Speed:       20,
		Sensitivity: 0.1,
		Fov:         45.0,
		Near:        0.1,
		Far:         10000.0,
		AspectRatio: aspect(width, height),
		Distance:    20,
	}
	camera.updateCameraVectors()
	camera.UpdateProjection()
	return &camera
}

func aspect(width, height int32) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

// Resize updates the aspect ratio for a new viewport size.
func (c *Camera) Resize(width, height int32) {
	c.SetAspectRatio(aspect(width, height))
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) ProcessKeyboard(m Movement, deltaTime float32) {
	if c.Orbiting {
		return
	}

	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	velocity := c.Speed * deltaTime

	// Holding shift moves faster
	if m.Fast {
		velocity *= 2.5
	}

	if m.Forward {
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	}
	if m.Backward {
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	}
	if m.Left {
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	}
	if m.Right {
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	c.Yaw += xoffset

	if c.InvertMouse {
		c.Pitch -= yoffset
	} else {
		c.Pitch += yoffset
	}
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0) // Prevent extreme pitch values
	}
	c.updateCameraVectors()
	if c.Orbiting {
		c.reposition()
	}
}

// SetOrbit switches the camera to orbit target at distance, keeping the
// current yaw and pitch.
func (c *Camera) SetOrbit(target mgl32.Vec3, distance float32) {
	c.Orbiting = true
	c.Target = target
	c.Distance = mgl32.Clamp(distance, minOrbitDistance, c.Far)
	c.reposition()
}

// FollowTarget moves the orbit centre, keeping angle and distance.
func (c *Camera) FollowTarget(target mgl32.Vec3) {
	c.Target = target
	if c.Orbiting {
		c.reposition()
	}
}

// Zoom changes the orbit distance by delta units.
func (c *Camera) Zoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance+delta, minOrbitDistance, c.Far)
	if c.Orbiting {
		c.reposition()
	}
}

// PlaceAt puts the camera in first person mode at position.
func (c *Camera) PlaceAt(position mgl32.Vec3) {
	c.Orbiting = false
	c.Position = position
}

func (c *Camera) State() CameraState {
	return CameraState{
		Position: c.Position,
		Pitch:    c.Pitch,
		Yaw:      c.Yaw,
		Orbiting: c.Orbiting,
		Target:   c.Target,
		Distance: c.Distance,
	}
}

func (c *Camera) Restore(s CameraState) {
	c.Position = s.Position
	c.Pitch = s.Pitch
	c.Yaw = s.Yaw
	c.Orbiting = s.Orbiting
	c.Target = s.Target
	c.Distance = s.Distance
	c.updateCameraVectors()
}

func (c *Camera) reposition() {
	c.Position = c.Target.Sub(c.Front.Mul(c.Distance))
}

func (c *Camera) updateCameraVectors() {
	yawRad := float64(mgl32.DegToRad(c.Yaw))
	pitchRad := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
