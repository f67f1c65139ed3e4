package world

import "slices"

// InstancedRegistry holds the model references drawn through a shared
// instance buffer, in the order they were added.
type InstancedRegistry struct {
	models  []string
	pending []string
}

func NewInstancedRegistry() *InstancedRegistry {
	return &InstancedRegistry{}
}

// Add appends ref if it is not already registered.
func (r *InstancedRegistry) Add(ref string) bool {
	if r.Contains(ref) {
		return false
	}
	r.models = append(r.models, ref)
	return true
}

// Remove unregisters ref and turns instancing off for every object using it.
func (r *InstancedRegistry) Remove(ref string, objects []*WorldObject) bool {
	i := slices.Index(r.models, ref)
	if i < 0 {
		return false
	}
	r.models = slices.Delete(r.models, i, i+1)
	for _, o := range objects {
		if o.ModelReference == ref {
			o.Instanced = false
		}
	}
	return true
}

func (r *InstancedRegistry) Contains(ref string) bool {
	return slices.Contains(r.models, ref)
}

func (r *InstancedRegistry) Models() []string {
	return slices.Clone(r.models)
}

// Queue stages ref to be added at the start of the next frame.
func (r *InstancedRegistry) Queue(ref string) {
	if slices.Contains(r.pending, ref) {
		return
	}
	r.pending = append(r.pending, ref)
}

// ApplyPending adds the staged refs and returns the ones that were new.
func (r *InstancedRegistry) ApplyPending() []string {
	var added []string
	for _, ref := range r.pending {
		if r.Add(ref) {
			added = append(added, ref)
		}
	}
	r.pending = r.pending[:0]
	return added
}

// Reset clears every registered and staged model.
func (r *InstancedRegistry) Reset() {
	r.models = nil
	r.pending = nil
}
