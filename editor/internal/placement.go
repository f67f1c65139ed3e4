package editor

import (
	"Worldsmith/internal/renderer"
	"Worldsmith/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

type PlacementState int

const (
	Idle PlacementState = iota
	Placing
	Editing
)

func (s PlacementState) String() string {
	switch s {
	case Placing:
		return "Placing"
	case Editing:
		return "Editing"
	default:
		return "Idle"
	}
}

// Placement tracks the object being placed or edited. While Placing the
// candidate is owned here and is not part of the scene.
type Placement struct {
	state     PlacementState
	candidate *world.WorldObject
	index     int
}

func (p *Placement) State() PlacementState {
	return p.state
}

// Candidate is the object being placed, or nil.
func (p *Placement) Candidate() *world.WorldObject {
	if p.state != Placing {
		return nil
	}
	return p.candidate
}

// Selected is the index of the object being edited, or -1.
func (p *Placement) Selected() int {
	if p.state != Editing {
		return -1
	}
	return p.index
}

// Begin starts placing obj, replacing any earlier candidate. It refuses while
// an object is being edited.
func (p *Placement) Begin(obj *world.WorldObject) bool {
	if p.state == Editing {
		return false
	}
	p.state = Placing
	p.candidate = obj
	return true
}

// Commit ends placement and hands the candidate to the caller.
func (p *Placement) Commit() *world.WorldObject {
	if p.state != Placing {
		return nil
	}
	obj := p.candidate
	p.reset()
	return obj
}

// Cancel drops the candidate or ends editing. It returns the discarded
// candidate, if any.
func (p *Placement) Cancel() *world.WorldObject {
	obj := p.Candidate()
	p.reset()
	return obj
}

// Select starts editing the object at index i. A pending candidate is
// discarded.
func (p *Placement) Select(i int, count int) bool {
	if i < 0 || i >= count {
		return false
	}
	p.candidate = nil
	p.state = Editing
	p.index = i
	return true
}

// Removed keeps the selection valid after the object at i left the list.
func (p *Placement) Removed(i int) {
	if p.state != Editing {
		return
	}
	switch {
	case p.index == i:
		p.reset()
	case p.index > i:
		p.index--
	}
}

// Track moves the candidate to pos, rounding each axis when snap is set.
func (p *Placement) Track(pos mgl32.Vec3, snap bool) {
	if p.state != Placing {
		return
	}
	if snap {
		pos = renderer.SnapToGrid(pos)
	}
	p.candidate.Transform.Position = pos
}

// Nudge moves the edited object along dir at rate units per second.
func (p *Placement) Nudge(objects []*world.WorldObject, dir mgl32.Vec3, rate, deltaTime float32) {
	i := p.Selected()
	if i < 0 || i >= len(objects) || dir == (mgl32.Vec3{}) {
		return
	}
	objects[i].Transform.Translate(dir.Mul(rate * deltaTime))
}

func (p *Placement) reset() {
	p.state = Idle
	p.candidate = nil
	p.index = 0
}
