package editor

import (
	"fmt"

	"Worldsmith/internal/input"
	"Worldsmith/internal/scripting"
	"Worldsmith/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func (s *Session) createScript(template string) {
	obj := s.selected()
	if obj == nil {
		return
	}
	if err := s.scripts.CreateFrom(obj, s.Scene.Name, template); err != nil {
		s.logs.Error("Failed to create script", err, zap.String("object", obj.Name))
		return
	}
	s.logs.Success(fmt.Sprintf("Script created: %s", obj.Script.Path))
}

func (s *Session) deleteScript() {
	obj := s.selected()
	if obj == nil {
		return
	}
	if err := s.scripts.Delete(obj); err != nil {
		s.logs.Error("Failed to delete script", err, zap.String("object", obj.Name))
		return
	}
	s.logs.Info(fmt.Sprintf("Script deleted for %s", obj.Name))
}

func (s *Session) renameSelected(name string) {
	obj := s.selected()
	if obj == nil {
		return
	}
	if s.nameTaken(name, obj) {
		s.logs.Error("Cannot rename object", fmt.Errorf("name %q is already used", name))
		return
	}
	old := obj.Name
	if err := s.scripts.Rename(obj, name); err != nil {
		s.logs.Error("Cannot rename object", err, zap.String("object", old))
		return
	}
	s.logs.Info(fmt.Sprintf("Renamed %s to %s", old, obj.Name))
}

// startRun binds and executes every script, then remembers what run mode may
// change so stopRun can put it back.
func (s *Session) startRun() {
	s.cancel()
	s.host = s.newHost()
	s.failed = make(map[uint32]bool)

	for _, obj := range s.Scene.Objects {
		obj.SnapshotTransform()
		if err := s.scripts.Load(obj, obj.SceneDirectory); err != nil {
			s.logs.Error("Failed to load script", err, zap.String("object", obj.Name))
			continue
		}
		if !obj.HasScript {
			continue
		}
		if err := scripting.Execute(s.host, obj); err != nil {
			s.failed[obj.ID] = true
			s.logs.Error("Script failed", err, zap.String("object", obj.Name))
		}
	}

	s.editorCamera = s.Camera.State()
	s.editorDistance = s.Scene.Options.CameraDistance
	s.setupGameCamera()
	s.armWatcher()

	s.running = true
	s.logs.Info("Run mode started")
}

func (s *Session) stopRun() {
	for _, obj := range s.Scene.Objects {
		obj.ResetTransform()
	}
	s.Scene.Options.CameraDistance = s.editorDistance
	s.Camera.Restore(s.editorCamera)

	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
	if s.host != nil {
		s.host.Close()
		s.host = nil
	}

	s.running = false
	s.logs.Info("Run mode stopped")
}

func (s *Session) setupGameCamera() {
	opts := s.Scene.Options
	switch opts.CameraType {
	case world.Orbiting:
		var target mgl32.Vec3
		if obj := s.Scene.Target(); obj != nil {
			target = obj.Transform.Position
		}
		s.Camera.SetOrbit(target, opts.CameraDistance)
	default:
		s.Camera.PlaceAt(opts.CameraLocation)
	}
}

func (s *Session) armWatcher() {
	if !s.config.Options.HotReloadScripts {
		return
	}
	dir := s.scripts.Dir(s.Scene.Name)
	w, err := scripting.NewWatcher(dir)
	if err != nil {
		s.logs.Warn("Script hot reload unavailable", zap.String("dir", dir), zap.Error(err))
		return
	}
	s.watcher = w
}

func (s *Session) updateRun(in *input.State, dt float32) {
	s.reloadChanged()

	scripting.PushFrame(s.host, frameInput(in, dt))
	for _, obj := range s.Scene.Objects {
		if !obj.HasScript || s.failed[obj.ID] {
			continue
		}
		if err := scripting.RunObject(s.host, obj); err != nil {
			// Stop calling a broken script until it is reloaded.
			s.failed[obj.ID] = true
			s.logs.Error("Script failed", err, zap.String("object", obj.Name))
		}
	}

	opts := &s.Scene.Options
	if opts.CameraType != world.Orbiting {
		return
	}
	if obj := s.Scene.Target(); obj != nil {
		s.Camera.FollowTarget(obj.Transform.Position)
	}
	if in.ButtonDown(input.MouseRight) && !s.uiMouse {
		dx, dy := in.MouseDelta.X(), -in.MouseDelta.Y()
		if !opts.OrbitHorizontal {
			dx = 0
		}
		if !opts.OrbitVertical {
			dy = 0
		}
		s.Camera.ProcessMouseMovement(dx, dy, true)
	}
	if in.ScrollDelta != 0 && !s.uiMouse {
		s.Camera.Zoom(-in.ScrollDelta)
		opts.CameraDistance = s.Camera.Distance
	}
}

// reloadChanged re-binds and re-executes scripts edited on disk.
func (s *Session) reloadChanged() {
	if s.watcher == nil {
		return
	}
	for _, name := range s.watcher.Changed() {
		for _, obj := range s.Scene.Objects {
			if obj.Name != name {
				continue
			}
			if err := s.scripts.Load(obj, obj.SceneDirectory); err != nil {
				s.logs.Error("Failed to reload script", err, zap.String("object", name))
				break
			}
			if err := scripting.Execute(s.host, obj); err != nil {
				s.failed[obj.ID] = true
				s.logs.Error("Script failed", err, zap.String("object", name))
				break
			}
			delete(s.failed, obj.ID)
			s.logs.Info(fmt.Sprintf("Reloaded script %s", name))
			break
		}
	}
}
