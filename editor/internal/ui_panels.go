package editor

import (
	"Worldsmith/internal/scene"
	"Worldsmith/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

type MenuCommand int

const (
	MenuNone MenuCommand = iota
	MenuNew
	MenuSave
	MenuLoad
	MenuDeleteScene
	MenuRefreshModels
	MenuExit
)

// ObjectRow is one line of the object list.
type ObjectRow struct {
	ID        uint32
	Name      string
	Model     string
	HasScript bool
	Instanced bool
}

// Widgets is everything the editor panels display in one frame.
type Widgets struct {
	Windows   WindowsShown
	Options   Options
	Game      world.GameOptions
	Light     world.Light
	Running   bool
	SceneName string
	Scenes    []string
	Models    []scene.ModelEntry
	Objects   []ObjectRow
	Instanced []string
	Templates []string

	Placement     PlacementState
	PlacingModel  string
	Selected      int // index into Objects, -1 when nothing is being edited
	SelectedState *world.Transform

	PlacingHeight float32
	Notice        string
	ShowNotice    bool
	Console       []ConsoleEntry
}

// Interactions is what the user did with the panels in one frame. Zero values
// mean "nothing happened".
type Interactions struct {
	Menu      MenuCommand
	SceneName string // target of Save, Load and DeleteScene; empty means current

	PickModel    string // name of a model entry to start placing
	PickObject   *int
	Deselect     bool
	DeleteObject bool

	CreateScript string // template to create the selected object's script from
	DeleteScript bool
	Rename       string

	AddInstanced    string
	RemoveInstanced string
	SetInstanced    *bool

	Nudge     mgl32.Vec3
	Transform *world.Transform

	Game    *world.GameOptions
	Options *Options
	Windows *WindowsShown
	Light   *world.Light

	DismissNotice bool

	// Whether the panels captured the mouse or keyboard this frame.
	WantsMouse    bool
	WantsKeyboard bool
}

// UI is an immediate-mode panel backend. It draws w and reports what the user
// did.
type UI interface {
	Declare(w *Widgets) Interactions
}

// NoUI draws nothing and never reports interactions.
type NoUI struct{}

func (NoUI) Declare(*Widgets) Interactions {
	return Interactions{}
}
