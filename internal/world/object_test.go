package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewWorldObjectDefaults(t *testing.T) {
	obj := NewWorldObject(7, "Tree", "./Models/Tree.glb", "forest")

	if obj.Name != "Tree7" {
		t.Errorf("Expected name 'Tree7', got '%s'", obj.Name)
	}
	if obj.Transform.Size != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected unit size, got %v", obj.Transform.Size)
	}
	if obj.HasScript || obj.Script != nil || obj.Instanced {
		t.Error("Expected a new object to have no script and not be instanced")
	}
}

func TestNextID(t *testing.T) {
	if id := NextID(nil); id != 0 {
		t.Errorf("Expected 0 for an empty list, got %d", id)
	}

	objects := []*WorldObject{
		NewWorldObject(3, "A", "", ""),
		NewWorldObject(9, "B", "", ""),
		NewWorldObject(1, "C", "", ""),
	}
	if id := NextID(objects); id != 10 {
		t.Errorf("Expected 10, got %d", id)
	}
}

func TestNextIDUniqueAcrossPlacements(t *testing.T) {
	var objects []*WorldObject
	seen := make(map[uint32]bool)

	for i := 0; i < 20; i++ {
		obj := NewWorldObject(NextID(objects), "Rock", "", "")
		if seen[obj.ID] {
			t.Fatalf("Duplicate id %d", obj.ID)
		}
		seen[obj.ID] = true
		objects = append(objects, obj)
		if i%4 == 3 {
			objects = objects[1:]
		}
	}
}

func TestSnapshotAndReset(t *testing.T) {
	obj := NewWorldObject(0, "Cube", "", "")
	obj.Transform.Position = mgl32.Vec3{1, 2, 3}
	obj.SnapshotTransform()

	obj.Transform.Position = mgl32.Vec3{50, 50, 50}
	obj.Transform.Rotation = mgl32.Vec3{0, 90, 0}
	obj.Velocity = mgl32.Vec3{1, 0, 0}
	obj.Acceleration = mgl32.Vec3{0, -9.8, 0}

	obj.ResetTransform()

	if obj.Transform.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Expected position restored to (1,2,3), got %v", obj.Transform.Position)
	}
	if obj.Transform.Rotation != (mgl32.Vec3{}) {
		t.Errorf("Expected rotation restored, got %v", obj.Transform.Rotation)
	}
	if obj.Velocity != (mgl32.Vec3{}) || obj.Acceleration != (mgl32.Vec3{}) {
		t.Error("Expected velocity and acceleration cleared")
	}
}

func TestSetInstancedRequiresBuffer(t *testing.T) {
	reg := NewInstancedRegistry()
	obj := NewWorldObject(0, "Grass", "", "")

	if err := obj.SetInstanced(reg, true); err != ErrNotInstanced {
		t.Errorf("Expected ErrNotInstanced, got %v", err)
	}
	if obj.Instanced {
		t.Error("Object should not be instanced without a buffer")
	}

	reg.Add("Grass")
	if err := obj.SetInstanced(reg, true); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !obj.Instanced {
		t.Error("Expected object to be instanced")
	}

	if err := obj.SetInstanced(reg, false); err != nil || obj.Instanced {
		t.Error("Expected instancing to turn off without error")
	}
}

func TestFind(t *testing.T) {
	objects := []*WorldObject{NewWorldObject(4, "A", "", ""), NewWorldObject(8, "B", "", "")}

	if i := Find(objects, 8); i != 1 {
		t.Errorf("Expected index 1, got %d", i)
	}
	if i := Find(objects, 5); i != -1 {
		t.Errorf("Expected -1, got %d", i)
	}
}
