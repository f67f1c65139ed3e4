package editor

import (
	"os"
	"strings"
	"testing"

	"Worldsmith/internal/input"
	"Worldsmith/internal/renderer"
	"Worldsmith/internal/scripting"
	"Worldsmith/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// queuedUI hands out one queued interaction per frame.
type queuedUI struct {
	queue []Interactions
	last  *Widgets
}

func (u *queuedUI) Declare(w *Widgets) Interactions {
	u.last = w
	if len(u.queue) == 0 {
		return Interactions{}
	}
	act := u.queue[0]
	u.queue = u.queue[1:]
	return act
}

type harness struct {
	t       *testing.T
	fs      afero.Fs
	deps    *Deps
	ui      *queuedUI
	in      *input.State
	session *Session
	backend *renderer.Recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, name := range []string{"Cube", "Tree"} {
		require.NoError(t, afero.WriteFile(fs, "/Models/"+name+".glb", []byte("glTF"), 0644))
	}

	cfg := DefaultConfig()
	cfg.Options.ModelsDir = "/Models"
	cfg.Options.ScenesDir = "/Scenes"
	cfg.Options.MouseRelativePlacement = false

	ui := &queuedUI{}
	deps := &Deps{
		FS:     fs,
		Config: &cfg,
		Logs:   NewLogs(zap.NewNop()),
		UI:     ui,
		NewHost: func() scripting.Host {
			return scripting.NewLuaHost(scripting.DefaultCallTimeout)
		},
	}

	return &harness{
		t:       t,
		fs:      fs,
		deps:    deps,
		ui:      ui,
		in:      input.NewState(800, 600),
		session: NewSession(deps, 800, 600, AxisModel),
		backend: &renderer.Recorder{},
	}
}

// frame runs one update and draw, with act as the panels' response.
func (h *harness) frame(act ...Interactions) {
	h.ui.queue = append(h.ui.queue, act...)
	h.session.Update(h.in, 1.0/60)
	h.backend.Submit(h.session.Draw(nil))
	h.in.EndFrame()
}

func (h *harness) press(k input.Key) {
	h.in.Handle(input.Event{Kind: input.KeyPressed, Key: k})
	h.frame()
}

func (h *harness) release(k input.Key) {
	h.in.Handle(input.Event{Kind: input.KeyReleased, Key: k})
	h.frame()
}

func (h *harness) leftClick() {
	h.in.Handle(input.Event{Kind: input.MousePressed, Button: input.MouseLeft})
	h.frame()
	h.in.Handle(input.Event{Kind: input.MouseReleased, Button: input.MouseLeft})
	h.frame()
}

// place picks model and commits it where the placement controller put it.
func (h *harness) place(model string) *world.WorldObject {
	h.t.Helper()
	h.frame(Interactions{PickModel: model})
	require.Equal(h.t, Placing, h.session.Placement.State())
	h.leftClick()
	objects := h.session.Scene.Objects
	require.NotEmpty(h.t, objects)
	return objects[len(objects)-1]
}

func (h *harness) edit(i int) {
	h.frame(Interactions{PickObject: &i})
}

func TestSession_PlaceAndCommit(t *testing.T) {
	h := newHarness(t)

	h.frame(Interactions{PickModel: "Cube"})

	require.Equal(t, Placing, h.session.Placement.State())
	assert.Equal(t, 0, h.backend.Index(renderer.DrawLoadModel), "model load comes first")
	load, _ := h.backend.Find(renderer.DrawLoadModel)
	assert.Equal(t, "/Models/Cube.glb", load.Location)

	holo, ok := h.backend.Find(renderer.DrawHologram)
	require.True(t, ok)
	assert.Equal(t, "Cube", holo.Model)
	assert.Equal(t, float32(0), holo.Position.Y(), "candidate sits at the placing height")

	h.leftClick()

	require.Len(t, h.session.Scene.Objects, 1)
	obj := h.session.Scene.Objects[0]
	assert.Equal(t, uint32(0), obj.ID)
	assert.Equal(t, "Cube0", obj.Name)
	assert.Equal(t, DefaultSceneName, obj.SceneDirectory)
	assert.Equal(t, Idle, h.session.Placement.State())
	assert.Equal(t, 0, h.backend.Count(renderer.DrawHologram))
	assert.Equal(t, 0, h.backend.Count(renderer.DrawLoadModel), "a model is loaded once")
}

func TestSession_UnknownModel(t *testing.T) {
	h := newHarness(t)

	h.frame(Interactions{PickModel: "Rock"})

	assert.Equal(t, Idle, h.session.Placement.State())
	_, shown := h.deps.Logs.Notice()
	assert.True(t, shown)
}

func TestSession_DrawOrder(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.edit(0)
	h.frame(Interactions{Deselect: true})

	h.frame(Interactions{PickModel: "Tree"})

	camera := h.backend.Index(renderer.DrawSetCamera)
	light := h.backend.Index(renderer.DrawSetLight)
	model := h.backend.Index(renderer.DrawModel)
	holo := h.backend.Index(renderer.DrawHologram)

	assert.Less(t, h.backend.Index(renderer.DrawLoadModel), camera)
	assert.Less(t, camera, light)
	assert.Less(t, light, model)
	assert.Less(t, model, holo)

	first, _ := h.backend.Find(renderer.DrawModel)
	assert.Equal(t, "Cube", first.Model)

	last := h.backend.Last[len(h.backend.Last)-1]
	assert.Equal(t, AxisModel, last.Model, "axis gizmo is drawn last")
}

func TestSession_SelectionGizmo(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")

	h.edit(0)

	assert.Equal(t, 3, h.backend.Count(renderer.DrawModel), "object, axis and selection gizmo")
	last := h.backend.Last[len(h.backend.Last)-1]
	assert.Equal(t, AxisModel, last.Model)
	assert.Equal(t, h.session.Scene.Objects[0].Transform.Position, last.Position)
}

func TestSession_RightClickCancelsPlacement(t *testing.T) {
	h := newHarness(t)
	h.frame(Interactions{PickModel: "Cube"})

	h.in.Handle(input.Event{Kind: input.MousePressed, Button: input.MouseRight})
	h.frame()
	h.in.Handle(input.Event{Kind: input.MouseReleased, Button: input.MouseRight})
	h.frame()

	assert.Equal(t, Idle, h.session.Placement.State())
	assert.Empty(t, h.session.Scene.Objects)
	assert.Equal(t, 0, h.backend.Count(renderer.DrawHologram))
}

func TestSession_RightDragKeepsPlacement(t *testing.T) {
	h := newHarness(t)
	h.frame(Interactions{PickModel: "Cube"})
	yaw := h.session.Camera.Yaw

	h.in.Handle(input.Event{Kind: input.CursorMoved, X: 100, Y: 100})
	h.in.Handle(input.Event{Kind: input.MousePressed, Button: input.MouseRight})
	h.in.Handle(input.Event{Kind: input.CursorMoved, X: 160, Y: 100})
	h.frame()
	h.in.Handle(input.Event{Kind: input.MouseReleased, Button: input.MouseRight})
	h.frame()

	assert.Equal(t, Placing, h.session.Placement.State())
	assert.NotEqual(t, yaw, h.session.Camera.Yaw, "dragging looks around")
}

func TestSession_EscapeCancels(t *testing.T) {
	h := newHarness(t)
	h.frame(Interactions{PickModel: "Cube"})

	h.press(input.KeyEscape)
	h.release(input.KeyEscape)

	assert.Equal(t, Idle, h.session.Placement.State())
}

func TestSession_PickWhileEditingRefused(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.edit(0)

	h.frame(Interactions{PickModel: "Tree"})

	assert.Equal(t, Editing, h.session.Placement.State())
	assert.Equal(t, 0, h.session.Placement.Selected())
}

func TestSession_DeleteRepairsTarget(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.place("Tree")
	h.place("Cube")

	game := h.session.Scene.Options
	game.CameraTarget = 2
	h.frame(Interactions{Game: &game})

	one := 1
	h.frame(Interactions{PickObject: &one, DeleteObject: true})

	require.Len(t, h.session.Scene.Objects, 2)
	assert.Equal(t, uint32(0), h.session.Scene.Objects[0].ID)
	assert.Equal(t, uint32(2), h.session.Scene.Objects[1].ID)
	assert.Equal(t, int32(1), h.session.Scene.Options.CameraTarget)
	assert.Equal(t, Idle, h.session.Placement.State())
}

func TestSession_DeleteKeyRemovesScript(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.edit(0)
	h.frame(Interactions{CreateScript: scripting.DefaultTemplate})

	path := "/Scenes/Untitled/Objects/Cube0.lua"
	exists, _ := afero.Exists(h.fs, path)
	require.True(t, exists)

	h.press(input.KeyDelete)
	h.release(input.KeyDelete)

	assert.Empty(t, h.session.Scene.Objects)
	exists, _ = afero.Exists(h.fs, path)
	assert.False(t, exists)
}

func TestSession_NudgeAndTransform(t *testing.T) {
	h := newHarness(t)
	obj := h.place("Cube")
	start := obj.Transform.Position
	h.edit(0)

	h.frame(Interactions{Nudge: mgl32.Vec3{1, 0, 0}})

	assert.InDelta(t, start.X()+h.deps.Config.Options.NudgeRate/60, obj.Transform.Position.X(), 1e-4)

	tr := obj.Transform
	tr.Rotation = mgl32.Vec3{0, 45, 0}
	h.frame(Interactions{Transform: &tr})

	assert.Equal(t, float32(45), obj.Transform.Rotation.Y())
	require.NotNil(t, h.ui.last.SelectedState)
}

func TestSession_RenameMovesScript(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.edit(0)
	h.frame(Interactions{CreateScript: scripting.DefaultTemplate})

	h.frame(Interactions{Rename: "Player"})

	obj := h.session.Scene.Objects[0]
	assert.Equal(t, "Player", obj.Name)

	old, _ := afero.Exists(h.fs, "/Scenes/Untitled/Objects/Cube0.lua")
	assert.False(t, old)

	data, err := afero.ReadFile(h.fs, "/Scenes/Untitled/Objects/Player.lua")
	require.NoError(t, err)
	assert.Contains(t, string(data), "function Playerupdate()")
	assert.NotContains(t, string(data), "Cube0update")
}

func TestSession_RenameToUsedNameRefused(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.place("Tree")
	h.edit(1)

	h.frame(Interactions{Rename: "Cube0"})

	assert.Equal(t, "Tree1", h.session.Scene.Objects[1].Name)
	_, shown := h.deps.Logs.Notice()
	assert.True(t, shown)
}

func TestSession_SaveNewLoad(t *testing.T) {
	h := newHarness(t)
	first := h.place("Cube")
	second := h.place("Tree")
	firstPos, secondPos := first.Transform.Position, second.Transform.Position

	h.frame(Interactions{Menu: MenuSave, SceneName: "Level1"})

	assert.Equal(t, "Level1", h.session.Scene.Name)
	for _, path := range []string{"/Scenes/Level1/Level1.csv", "/Scenes/Level1/camera.csv"} {
		ok, _ := afero.Exists(h.fs, path)
		assert.True(t, ok, path)
	}
	assert.Contains(t, h.session.scenes, "Level1")

	h.frame(Interactions{Menu: MenuNew})
	assert.Empty(t, h.session.Scene.Objects)
	assert.Equal(t, DefaultSceneName, h.session.Scene.Name)

	h.frame(Interactions{Menu: MenuLoad, SceneName: "Level1"})

	objects := h.session.Scene.Objects
	require.Len(t, objects, 2)
	assert.Equal(t, uint32(0), objects[0].ID)
	assert.Equal(t, "Cube", objects[0].ModelReference)
	assert.Equal(t, uint32(1), objects[1].ID)
	assert.Equal(t, "Tree", objects[1].ModelReference)
	assert.InDelta(t, firstPos.X(), objects[0].Transform.Position.X(), 1e-4)
	assert.InDelta(t, secondPos.Z(), objects[1].Transform.Position.Z(), 1e-4)
	assert.Equal(t, "Level1", objects[0].SceneDirectory)

	_, shown := h.deps.Logs.Notice()
	assert.False(t, shown)
}

func TestSession_SaveCopiesScripts(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.edit(0)
	h.frame(Interactions{CreateScript: "spin"})

	h.frame(Interactions{Menu: MenuSave, SceneName: "Level2"})

	data, err := afero.ReadFile(h.fs, "/Scenes/Level2/Objects/Cube0.lua")
	require.NoError(t, err)
	assert.Contains(t, string(data), "function Cube0update()")
}

func TestSession_LoadMissingSceneKeepsCurrent(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")

	h.frame(Interactions{Menu: MenuLoad, SceneName: "Nowhere"})

	assert.Equal(t, DefaultSceneName, h.session.Scene.Name)
	assert.Len(t, h.session.Scene.Objects, 1)
	notice, shown := h.deps.Logs.Notice()
	assert.True(t, shown)
	assert.Contains(t, notice, "Nowhere")
}

func TestSession_DeleteCurrentScene(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.frame(Interactions{Menu: MenuSave, SceneName: "Doomed"})

	h.frame(Interactions{Menu: MenuDeleteScene})

	ok, _ := afero.DirExists(h.fs, "/Scenes/Doomed")
	assert.False(t, ok)
	assert.Equal(t, DefaultSceneName, h.session.Scene.Name)
	assert.Empty(t, h.session.Scene.Objects)
}

func TestSession_InstancedBuffers(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")

	h.frame(Interactions{AddInstanced: "Cube"})
	assert.Equal(t, 0, h.backend.Count(renderer.DrawAddInstancedBuffer), "staged until the next frame")

	h.frame()
	assert.Equal(t, 1, h.backend.Count(renderer.DrawAddInstancedBuffer))
	assert.Equal(t, 1, h.backend.Count(renderer.DrawInstanced))

	on := true
	h.frame(Interactions{PickObject: new(int), SetInstanced: &on})
	assert.True(t, h.session.Scene.Objects[0].Instanced)
	assert.Equal(t, 1, h.backend.Count(renderer.DrawAddInstance))
	assert.Less(t, h.backend.Index(renderer.DrawAddInstance), h.backend.Index(renderer.DrawInstanced))
	assert.Equal(t, 0, h.backend.Count(renderer.DrawAddInstancedBuffer), "buffer is added once")

	h.frame(Interactions{RemoveInstanced: "Cube"})
	assert.Equal(t, 1, h.backend.Count(renderer.DrawRemoveInstancedBuffer))
	assert.Equal(t, 0, h.backend.Count(renderer.DrawInstanced))
	assert.False(t, h.session.Scene.Objects[0].Instanced)
}

func TestSession_SetInstancedWithoutBuffer(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")

	on := true
	h.frame(Interactions{PickObject: new(int), SetInstanced: &on})

	assert.False(t, h.session.Scene.Objects[0].Instanced)
	notice, _ := h.deps.Logs.Notice()
	assert.Contains(t, notice, world.ErrNotInstanced.Error())
}

func TestSession_RunModeRestoresScene(t *testing.T) {
	h := newHarness(t)
	obj := h.place("Cube")
	authored := obj.Transform
	editorCamera := h.session.Camera.State()

	script := "function Cube0update()\n    x = x + 1\nend\n"
	require.NoError(t, afero.WriteFile(h.fs, "/Scenes/Untitled/Objects/Cube0.lua", []byte(script), 0644))

	h.press(input.KeyF5)
	require.True(t, h.session.Running())
	assert.InDelta(t, authored.Position.X()+1, obj.Transform.Position.X(), 1e-4)
	assert.Equal(t, mgl32.Vec3{0, 5, 20}, h.session.Camera.Position, "first person camera starts at the game location")

	h.release(input.KeyF5)
	assert.True(t, h.session.Running(), "releasing the key does not toggle")
	assert.InDelta(t, authored.Position.X()+2, obj.Transform.Position.X(), 1e-4)

	h.press(input.KeyF5)

	assert.False(t, h.session.Running())
	assert.Equal(t, authored, obj.Transform)
	assert.Equal(t, editorCamera.Position, h.session.Camera.Position)
	assert.Equal(t, editorCamera.Yaw, h.session.Camera.Yaw)
	assert.Equal(t, 2, h.backend.Count(renderer.DrawModel), "gizmo is back after run mode")
}

func TestSession_RunModeSkipsBrokenScript(t *testing.T) {
	h := newHarness(t)
	obj := h.place("Cube")
	start := obj.Transform.Position

	require.NoError(t, afero.WriteFile(h.fs, "/Scenes/Untitled/Objects/Cube0.lua", []byte("function Cube0update()\n    x = nil\nend\n"), 0644))

	h.press(input.KeyF5)
	h.release(input.KeyF5)

	assert.True(t, h.session.Running())
	assert.Equal(t, start, obj.Transform.Position, "failed update leaves the object unchanged")
	notice, shown := h.deps.Logs.Notice()
	assert.True(t, shown)
	assert.Contains(t, notice, "Cube0")
}

func TestSession_RunModeOrbitCamera(t *testing.T) {
	h := newHarness(t)
	obj := h.place("Cube")

	game := h.session.Scene.Options
	game.CameraType = world.Orbiting
	game.CameraDistance = 12
	h.frame(Interactions{Game: &game})

	h.press(input.KeyF5)

	require.True(t, h.session.Camera.Orbiting)
	assert.InDelta(t, 12, h.session.Camera.Position.Sub(obj.Transform.Position).Len(), 1e-3)

	h.in.Handle(input.Event{Kind: input.Scrolled, Y: 2})
	h.frame()
	assert.InDelta(t, 10, h.session.Scene.Options.CameraDistance, 1e-3)

	h.release(input.KeyF5)
	h.press(input.KeyF5)

	assert.False(t, h.session.Camera.Orbiting)
	assert.Equal(t, float32(12), h.session.Scene.Options.CameraDistance, "zoom during a run is not kept")
}

func TestSession_MenuIgnoredWhileRunning(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.press(input.KeyF5)

	h.frame(Interactions{Menu: MenuNew, PickModel: "Tree"})

	assert.Len(t, h.session.Scene.Objects, 1)
	assert.Equal(t, Idle, h.session.Placement.State())

	h.frame(Interactions{Menu: MenuExit})
	assert.True(t, h.session.Exit())
}

func TestSession_OptionsChangeRefreshesModels(t *testing.T) {
	h := newHarness(t)
	require.Len(t, h.session.Models(), 2)
	require.NoError(t, afero.WriteFile(h.fs, "/Other/Rock.glb", []byte("glTF"), 0644))

	opts := h.deps.Config.Options
	opts.ModelsDir = "/Other"
	h.frame(Interactions{Options: &opts})

	models := h.session.Models()
	require.Len(t, models, 1)
	assert.Equal(t, "Rock", models[0].Name)
}

func TestSession_InvalidOptionsRejected(t *testing.T) {
	h := newHarness(t)

	opts := h.deps.Config.Options
	opts.CameraSpeed = 0
	h.frame(Interactions{Options: &opts})

	assert.Equal(t, float32(20), h.deps.Config.Options.CameraSpeed)
	_, shown := h.deps.Logs.Notice()
	assert.True(t, shown)
}

func TestSession_RefreshUnloadsRemovedModels(t *testing.T) {
	h := newHarness(t)
	h.frame(Interactions{PickModel: "Tree"})
	h.frame(Interactions{Deselect: true})
	require.NoError(t, h.fs.Remove("/Models/Tree.glb"))

	h.frame(Interactions{Menu: MenuRefreshModels})

	unload, ok := h.backend.Find(renderer.DrawUnloadModel)
	require.True(t, ok)
	assert.Equal(t, "Tree", unload.Model)
	assert.Len(t, h.session.Models(), 1)
}

func TestSession_Resize(t *testing.T) {
	h := newHarness(t)

	h.in.Handle(input.Event{Kind: input.Resized, X: 1024, Y: 512})
	h.frame()

	assert.InDelta(t, 2.0, h.session.Camera.AspectRatio, 1e-5)
}

func TestSession_RunToggleOnPressReleasedWithinFrame(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")

	h.in.Handle(input.Event{Kind: input.KeyPressed, Key: input.KeyF5})
	h.in.Handle(input.Event{Kind: input.KeyReleased, Key: input.KeyF5})
	h.frame()
	require.True(t, h.session.Running())

	h.frame()
	assert.True(t, h.session.Running(), "one press toggles once")

	h.in.Handle(input.Event{Kind: input.KeyPressed, Key: input.KeyF5})
	h.in.Handle(input.Event{Kind: input.KeyReleased, Key: input.KeyF5})
	h.frame()
	assert.False(t, h.session.Running())
}

func TestSession_PlacementSkipsNameTakenByRename(t *testing.T) {
	h := newHarness(t)
	first := h.place("Cube")
	h.edit(0)
	h.frame(Interactions{CreateScript: scripting.DefaultTemplate})
	h.frame(Interactions{Rename: "Cube1"})
	h.frame(Interactions{Deselect: true})
	require.Equal(t, "Cube1", first.Name)

	second := h.place("Cube")

	assert.Equal(t, uint32(1), second.ID)
	assert.Equal(t, "Cube1_1", second.Name)
	assert.False(t, second.HasScript, "the renamed object's script stays its own")

	h.edit(1)
	h.frame(Interactions{DeleteObject: true})

	ok, _ := afero.Exists(h.fs, "/Scenes/Untitled/Objects/Cube1.lua")
	assert.True(t, ok)
	assert.True(t, first.HasScript)
}

func TestSession_RenameToSameFunctionNameRefused(t *testing.T) {
	h := newHarness(t)
	h.place("Cube")
	h.place("Tree")
	h.edit(0)
	h.frame(Interactions{Rename: "Big-Tree"})
	require.Equal(t, "Big-Tree", h.session.Scene.Objects[0].Name)

	h.edit(1)
	h.frame(Interactions{Rename: "Big_Tree"})

	assert.Equal(t, "Tree1", h.session.Scene.Objects[1].Name, "both would define Big_Treeupdate")
}

func TestSession_EditLight(t *testing.T) {
	h := newHarness(t)
	h.frame()
	assert.Equal(t, world.DefaultLight(), h.ui.last.Light)

	light := world.Light{
		Position:  mgl32.Vec3{3, 8, -2},
		Colour:    mgl32.Vec3{1, 0.5, 2},
		Intensity: 5000,
	}
	h.frame(Interactions{Light: &light})

	cmd, ok := h.backend.Find(renderer.DrawSetLight)
	require.True(t, ok)
	assert.Equal(t, light.Position, cmd.Position)
	assert.Equal(t, mgl32.Vec4{1, 0.5, 1, 1}, cmd.Colour)
	assert.Equal(t, float32(world.MaxLightIntensity), cmd.Intensity)

	h.frame()
	assert.Equal(t, light.Position, h.ui.last.Light.Position)
}

// readOnlyDir refuses writes below dir.
type readOnlyDir struct {
	afero.Fs
	dir string
}

func (f readOnlyDir) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 && strings.HasPrefix(name, f.dir) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f readOnlyDir) Create(name string) (afero.File, error) {
	return f.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func TestSession_SaveKeepsScriptFolderWhenCopyFails(t *testing.T) {
	h := newHarness(t)
	obj := h.place("Cube")
	h.edit(0)
	h.frame(Interactions{CreateScript: "spin"})
	h.frame(Interactions{Deselect: true})

	h.session.fs = readOnlyDir{Fs: h.fs, dir: "/Scenes/Level3/Objects"}
	h.session.openStores()

	h.frame(Interactions{Menu: MenuSave, SceneName: "Level3"})

	assert.Equal(t, DefaultSceneName, obj.SceneDirectory)
	notice, shown := h.deps.Logs.Notice()
	assert.True(t, shown)
	assert.Contains(t, notice, "Failed to copy script")

	h.press(input.KeyF5)
	assert.True(t, obj.HasScript, "run mode still finds the script")
	assert.Contains(t, obj.Script.Path, "/Scenes/Untitled/Objects")
}
