package editor

import (
	"strconv"

	"Worldsmith/internal/input"
	"Worldsmith/internal/renderer"
	"Worldsmith/internal/scene"
	"Worldsmith/internal/scripting"
	"Worldsmith/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Deps are the collaborators a session is built from.
type Deps struct {
	FS      afero.Fs
	Config  *EditorConfig
	Logs    *Logs
	UI      UI
	NewHost func() scripting.Host
}

// Session is the scene editor: it owns the camera, the scene being edited and
// the placement controller, and switches between edit and run mode.
type Session struct {
	fs      afero.Fs
	config  *EditorConfig
	logs    *Logs
	ui      UI
	newHost func() scripting.Host

	codec   *scene.Codec
	scripts *scripting.Manager

	Camera    *renderer.Camera
	Scene     *world.Scene
	Light     world.Light
	Placement Placement

	models []scene.ModelEntry
	scenes []string
	loaded map[string]bool

	pendingLoads     []scene.ModelRef
	pendingUnloads   []string
	instancedAdded   []string
	instancedRemoved []string

	placingHeight float32
	rightDrag     float32
	width, height int
	uiMouse       bool
	uiKeyboard    bool
	exit          bool

	// Run mode
	running        bool
	host           scripting.Host
	watcher        *scripting.Watcher
	failed         map[uint32]bool
	editorCamera   renderer.CameraState
	editorDistance float32
}

// NewSession creates an editor on an empty scene. preloaded names models the
// backend has already been asked to load.
func NewSession(deps *Deps, width, height int, preloaded ...string) *Session {
	ui := deps.UI
	if ui == nil {
		ui = NoUI{}
	}

	s := &Session{
		fs:      deps.FS,
		config:  deps.Config,
		logs:    deps.Logs,
		ui:      ui,
		newHost: deps.NewHost,
		Camera:  renderer.NewDefaultCamera(int32(width), int32(height)),
		Scene:   world.NewScene(DefaultSceneName),
		Light:   world.DefaultLight(),
		loaded:  make(map[string]bool),
		width:   width,
		height:  height,
	}
	for _, name := range preloaded {
		s.loaded[name] = true
	}

	s.Camera.Speed = s.config.Options.CameraSpeed
	s.openStores()
	s.refreshModels()
	s.refreshScenes()
	return s
}

func (s *Session) openStores() {
	s.codec = scene.NewCodec(s.fs, s.config.Options.ScenesDir)
	s.scripts = scripting.NewManager(s.fs, s.config.Options.ScenesDir)
}

func (s *Session) Running() bool {
	return s.running
}

// Exit reports whether the user asked to quit.
func (s *Session) Exit() bool {
	return s.exit
}

func (s *Session) Models() []scene.ModelEntry {
	return s.models
}

func (s *Session) PlacingHeight() float32 {
	return s.placingHeight
}

func (s *Session) Update(in *input.State, dt float32) {
	s.instancedAdded = append(s.instancedAdded, s.Scene.Instanced.ApplyPending()...)

	if in.Width != s.width || in.Height != s.height {
		s.width, s.height = in.Width, in.Height
		s.Camera.Resize(int32(s.width), int32(s.height))
	}

	if in.JustPressed(input.KeyF5) {
		if s.running {
			s.stopRun()
		} else {
			s.startRun()
		}
	}

	if s.running {
		s.updateRun(in, dt)
	} else {
		s.updateEdit(in, dt)
	}

	act := s.ui.Declare(s.widgets())
	s.apply(act, dt)
	s.uiMouse, s.uiKeyboard = act.WantsMouse, act.WantsKeyboard
}

func (s *Session) updateEdit(in *input.State, dt float32) {
	opts := s.config.Options

	if !s.uiKeyboard {
		s.Camera.ProcessKeyboard(renderer.Movement{
			Forward:  in.Down(input.KeyW),
			Backward: in.Down(input.KeyS),
			Left:     in.Down(input.KeyA),
			Right:    in.Down(input.KeyD),
			Fast:     in.Down(input.KeyShift),
		}, dt)

		if in.Down(input.KeyUp) {
			s.placingHeight += opts.PlacingHeightRate * dt
		}
		if in.Down(input.KeyDown) {
			s.placingHeight -= opts.PlacingHeightRate * dt
		}
	}

	secondary := s.secondaryClick(in)
	if in.ButtonDown(input.MouseRight) && !s.uiMouse {
		s.Camera.ProcessMouseMovement(in.MouseDelta.X(), -in.MouseDelta.Y(), true)
	}

	s.trackPlacement(in)

	if !s.uiMouse {
		if in.Clicked(input.MouseLeft) && s.Placement.State() == Placing {
			s.commit()
		}
		if secondary {
			s.cancel()
		}
	}

	if !s.uiKeyboard {
		if in.JustReleased(input.KeyEscape) {
			s.cancel()
		}
		if in.JustReleased(input.KeyDelete) {
			s.deleteSelected()
		}
	}
}

// secondaryClick reports a right button release that was not a camera drag.
func (s *Session) secondaryClick(in *input.State) bool {
	if in.ButtonDown(input.MouseRight) || in.ButtonReleased(input.MouseRight) {
		s.rightDrag += in.MouseDelta.Len()
	}
	if !in.ButtonReleased(input.MouseRight) {
		return false
	}
	click := s.rightDrag < clickSlop
	s.rightDrag = 0
	return click
}

func (s *Session) trackPlacement(in *input.State) {
	if s.Placement.Candidate() == nil {
		return
	}
	opts := s.config.Options

	if opts.MouseRelativePlacement {
		hit, ok := renderer.CastToGround(s.Camera, in.Mouse, in.Width, in.Height, s.placingHeight)
		if ok {
			s.Placement.Track(hit, opts.SnapToGrid)
		}
		return
	}

	pos := s.Camera.Position.Add(s.Camera.Front.Mul(placementDistance))
	pos[1] = s.placingHeight
	s.Placement.Track(pos, opts.SnapToGrid)
}

func (s *Session) commit() {
	obj := s.Placement.Commit()
	if obj == nil {
		return
	}
	s.Scene.Append(obj)
	s.logs.Info("Placed object", zap.String("name", obj.Name), zap.Uint32("id", obj.ID))
}

func (s *Session) cancel() {
	if obj := s.Placement.Cancel(); obj != nil {
		s.logs.Info("Placement cancelled", zap.String("model", obj.ModelReference))
	}
}

// selected is the object being edited, or the candidate being placed.
func (s *Session) selected() *world.WorldObject {
	if i := s.Placement.Selected(); i >= 0 && i < len(s.Scene.Objects) {
		return s.Scene.Objects[i]
	}
	return s.Placement.Candidate()
}

func (s *Session) apply(act Interactions, dt float32) {
	if act.DismissNotice {
		s.logs.Dismiss()
	}
	if act.Windows != nil {
		s.config.Windows = *act.Windows
	}
	if act.Options != nil {
		s.setOptions(*act.Options)
	}
	if act.Light != nil {
		s.Light = act.Light.Clamped()
	}

	if s.running {
		if act.Menu == MenuExit {
			s.exit = true
		}
		return
	}

	if act.Game != nil {
		s.Scene.Options = *act.Game
	}
	if act.PickModel != "" {
		s.pickModel(act.PickModel)
	}
	if act.PickObject != nil {
		s.Placement.Select(*act.PickObject, len(s.Scene.Objects))
	}
	if act.Deselect {
		s.cancel()
	}

	s.Placement.Nudge(s.Scene.Objects, act.Nudge, s.config.Options.NudgeRate, dt)
	if act.Transform != nil {
		if obj := s.selected(); obj != nil {
			obj.Transform = *act.Transform
		}
	}

	if act.AddInstanced != "" {
		s.Scene.Instanced.Queue(act.AddInstanced)
	}
	if act.RemoveInstanced != "" {
		s.removeInstanced(act.RemoveInstanced)
	}
	if act.SetInstanced != nil {
		s.setInstanced(*act.SetInstanced)
	}

	if act.CreateScript != "" {
		s.createScript(act.CreateScript)
	}
	if act.DeleteScript {
		s.deleteScript()
	}
	if act.Rename != "" {
		s.renameSelected(act.Rename)
	}
	if act.DeleteObject {
		s.deleteSelected()
	}

	s.runMenu(act.Menu, act.SceneName)
}

func (s *Session) setOptions(opts Options) {
	if err := (&EditorConfig{Windows: s.config.Windows, Options: opts}).Validate(); err != nil {
		s.logs.Error("Invalid options", err)
		return
	}

	prev := s.config.Options
	s.config.Options = opts
	s.Camera.Speed = opts.CameraSpeed

	if prev.ScenesDir != opts.ScenesDir {
		s.openStores()
		s.refreshScenes()
	}
	if prev.ModelsDir != opts.ModelsDir || prev.ModelExtension != opts.ModelExtension {
		s.refreshModels()
	}
}

func (s *Session) pickModel(name string) {
	i := scene.FindModel(s.models, name)
	if i < 0 {
		s.logs.Error("Unknown model", nil, zap.String("model", name))
		return
	}
	if s.Placement.State() == Editing {
		s.logs.Warn("Deselect the current object before placing a new one")
		return
	}

	m := s.models[i]
	obj := world.NewWorldObject(world.NextID(s.Scene.Objects), m.Name, m.Path, s.Scene.Name)
	obj.Name = s.uniqueName(obj.Name)
	if err := s.scripts.Load(obj, s.Scene.Name); err != nil {
		s.logs.Error("Failed to load script", err, zap.String("object", obj.Name))
	}
	s.Placement.Begin(obj)
	s.requireModel(scene.ModelRef{Reference: m.Name, Location: m.Path})
}

// nameTaken reports whether another object already has name, or a name whose
// script would define the same update function.
func (s *Session) nameTaken(name string, except *world.WorldObject) bool {
	fn := scripting.FunctionName(name)
	for _, o := range s.Scene.Objects {
		if o == except {
			continue
		}
		if o.Name == name || scripting.FunctionName(o.Name) == fn {
			return true
		}
	}
	return false
}

// uniqueName returns base, or base with the first free "_N" suffix.
func (s *Session) uniqueName(base string) string {
	if !s.nameTaken(base, nil) {
		return base
	}
	for i := 1; ; i++ {
		name := base + "_" + strconv.Itoa(i)
		if !s.nameTaken(name, nil) {
			return name
		}
	}
}

func (s *Session) requireModel(ref scene.ModelRef) {
	if s.loaded[ref.Reference] {
		return
	}
	for _, p := range s.pendingLoads {
		if p.Reference == ref.Reference {
			return
		}
	}
	s.pendingLoads = append(s.pendingLoads, ref)
}

func (s *Session) deleteSelected() {
	i := s.Placement.Selected()
	if i < 0 {
		return
	}
	obj := s.Scene.Objects[i]
	if err := s.scripts.Delete(obj); err != nil {
		s.logs.Error("Failed to delete script", err, zap.String("object", obj.Name))
	}
	s.Scene.Remove(i)
	s.Placement.Removed(i)
	s.logs.Info("Deleted object", zap.String("name", obj.Name))
}

func (s *Session) removeInstanced(ref string) {
	if s.Scene.Instanced.Remove(ref, s.Scene.Objects) {
		s.instancedRemoved = append(s.instancedRemoved, ref)
	}
}

func (s *Session) setInstanced(on bool) {
	obj := s.selected()
	if obj == nil {
		return
	}
	if err := obj.SetInstanced(s.Scene.Instanced, on); err != nil {
		s.logs.Error("Cannot instance object", err, zap.String("model", obj.ModelReference))
	}
}

// Draw appends the frame's draw commands to cmds.
func (s *Session) Draw(cmds []renderer.DrawCommand) []renderer.DrawCommand {
	for _, ref := range s.pendingLoads {
		cmds = append(cmds, renderer.LoadModel(ref.Reference, ref.Location))
		s.loaded[ref.Reference] = true
	}
	s.pendingLoads = s.pendingLoads[:0]
	for _, ref := range s.pendingUnloads {
		cmds = append(cmds, renderer.UnloadModel(ref))
	}
	s.pendingUnloads = s.pendingUnloads[:0]
	s.markLoaded()

	cmds = append(cmds,
		renderer.SetCamera(s.Camera),
		renderer.SetLight(s.Light.Position, s.Light.Colour, s.Light.Intensity),
	)

	for _, ref := range s.instancedRemoved {
		cmds = append(cmds, renderer.RemoveInstancedBuffer(ref))
	}
	for _, ref := range s.instancedAdded {
		cmds = append(cmds, renderer.AddInstancedBuffer(ref))
	}
	s.instancedRemoved = s.instancedRemoved[:0]
	s.instancedAdded = s.instancedAdded[:0]

	for _, obj := range s.Scene.Objects {
		t := obj.Transform
		if obj.Instanced && s.Scene.Instanced.Contains(obj.ModelReference) {
			cmds = append(cmds, renderer.AddInstance(obj.ModelReference, t.Position, t.Rotation, t.Size))
			continue
		}
		cmds = append(cmds, renderer.Model(obj.ModelReference, t.Position, t.Rotation, t.Size))
	}
	if obj := s.Placement.Candidate(); obj != nil {
		t := obj.Transform
		cmds = append(cmds, renderer.Hologram(obj.ModelReference, t.Position, t.Rotation, t.Size))
	}

	for _, ref := range s.Scene.Instanced.Models() {
		cmds = append(cmds, renderer.Instanced(ref))
	}

	if s.config.Options.ShowAxis && !s.running {
		cmds = append(cmds, axisGizmo())
		if i := s.Placement.Selected(); i >= 0 && i < len(s.Scene.Objects) {
			cmds = append(cmds, selectionGizmo(s.Scene.Objects[i].Transform.Position))
		}
	}
	return cmds
}

func (s *Session) markLoaded() {
	for i := range s.models {
		s.models[i].Loaded = s.loaded[s.models[i].Name]
	}
}

func (s *Session) widgets() *Widgets {
	w := &Widgets{
		Windows:       s.config.Windows,
		Options:       s.config.Options,
		Game:          s.Scene.Options,
		Light:         s.Light,
		Running:       s.running,
		SceneName:     s.Scene.Name,
		Scenes:        s.scenes,
		Models:        s.models,
		Instanced:     s.Scene.Instanced.Models(),
		Templates:     scripting.AvailableTemplates(),
		Placement:     s.Placement.State(),
		Selected:      s.Placement.Selected(),
		PlacingHeight: s.placingHeight,
		Console:       s.logs.Console(),
	}
	w.Notice, w.ShowNotice = s.logs.Notice()

	for _, obj := range s.Scene.Objects {
		w.Objects = append(w.Objects, ObjectRow{
			ID:        obj.ID,
			Name:      obj.Name,
			Model:     obj.ModelReference,
			HasScript: obj.HasScript,
			Instanced: obj.Instanced,
		})
	}
	if obj := s.Placement.Candidate(); obj != nil {
		w.PlacingModel = obj.ModelReference
	}
	if obj := s.selected(); obj != nil {
		t := obj.Transform
		w.SelectedState = &t
	}
	return w
}

// frameInput builds the globals scripts see this frame.
func frameInput(in *input.State, dt float32) scripting.FrameInput {
	return scripting.FrameInput{
		DeltaTime:  dt,
		Mouse:      in.Mouse,
		LeftMouse:  in.ButtonDown(input.MouseLeft),
		RightMouse: in.ButtonDown(input.MouseRight),
		Window:     mgl32.Vec2{float32(in.Width), float32(in.Height)},
		W:          in.Down(input.KeyW),
		A:          in.Down(input.KeyA),
		S:          in.Down(input.KeyS),
		D:          in.Down(input.KeyD),
	}
}
