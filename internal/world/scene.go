package world

// Scene is the authored content the editor works on.
type Scene struct {
	Name      string
	Objects   []*WorldObject
	Options   GameOptions
	Instanced *InstancedRegistry
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		Options:   DefaultGameOptions(),
		Instanced: NewInstancedRegistry(),
	}
}

// Append adds obj to the scene and claims it for the scene's folder.
func (s *Scene) Append(obj *WorldObject) {
	obj.SceneDirectory = s.Name
	s.Objects = append(s.Objects, obj)
}

// Remove deletes the object at index i and repairs the camera target.
func (s *Scene) Remove(i int) *WorldObject {
	if i < 0 || i >= len(s.Objects) {
		return nil
	}
	obj := s.Objects[i]
	s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
	s.Options.RepairTarget(i)
	return obj
}

// Target returns the object the orbit camera follows, if any.
func (s *Scene) Target() *WorldObject {
	i := int(s.Options.CameraTarget)
	if i < 0 || i >= len(s.Objects) {
		return nil
	}
	return s.Objects[i]
}

// QueueInstanced rebuilds the registry from the objects flagged as
// instanced. The models are staged, so they register on the next
// ApplyPending.
func (s *Scene) QueueInstanced() {
	s.Instanced.Reset()
	for _, o := range s.Objects {
		if o.Instanced {
			s.Instanced.Queue(o.ModelReference)
		}
	}
}
