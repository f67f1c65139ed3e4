package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts a screen position (origin top-left) to a normalized
// world space ray starting at the camera.
func ScreenToRay(camera *Camera, screenX, screenY float32, windowWidth, windowHeight int) Ray {
	// Normalize screen coordinates to NDC (-1 to 1)
	ndcX := 2.0*screenX/float32(windowWidth) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(windowHeight)

	clipCoords := mgl32.Vec4{ndcX, ndcY, -1.0, 1.0}

	// Clip space to eye space
	eyeCoords := camera.Projection.Inv().Mul4x1(clipCoords)
	eyeCoords = mgl32.Vec4{eyeCoords.X(), eyeCoords.Y(), -1.0, 0.0}

	// Eye space to world space
	worldDir := camera.GetViewMatrix().Inv().Mul4x1(eyeCoords).Vec3().Normalize()

	return Ray{
		Origin:    camera.Position,
		Direction: worldDir,
	}
}

// IntersectGround returns where the ray crosses the plane y=0.
// It reports false when the ray points up, runs parallel to the ground or
// starts below it.
func IntersectGround(ray Ray) (mgl32.Vec3, bool) {
	if ray.Direction.Y() >= 0 {
		return mgl32.Vec3{}, false
	}
	t := -ray.Origin.Y() / ray.Direction.Y()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return ray.At(t), true
}

// CastToGround projects the cursor onto the ground plane and lifts the hit to
// placingHeight. When the cursor ray does not reach the ground the caller must
// keep its previous position.
func CastToGround(camera *Camera, cursor mgl32.Vec2, windowWidth, windowHeight int, placingHeight float32) (mgl32.Vec3, bool) {
	if windowWidth <= 0 || windowHeight <= 0 {
		return mgl32.Vec3{}, false
	}

	ray := ScreenToRay(camera, cursor.X(), cursor.Y(), windowWidth, windowHeight)
	hit, ok := IntersectGround(ray)
	if !ok {
		return mgl32.Vec3{}, false
	}

	hit[1] = placingHeight
	return hit, true
}

// SnapToGrid rounds each axis independently to the nearest integer.
func SnapToGrid(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Round(p.X(), 0),
		mgl32.Round(p.Y(), 0),
		mgl32.Round(p.Z(), 0),
	}
}
