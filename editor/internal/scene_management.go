package editor

import (
	"fmt"

	"Worldsmith/internal/scene"
	"Worldsmith/internal/world"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func (s *Session) runMenu(cmd MenuCommand, name string) {
	switch cmd {
	case MenuNew:
		s.newScene()
	case MenuSave:
		s.saveScene(name)
	case MenuLoad:
		s.loadScene(name)
	case MenuDeleteScene:
		s.deleteScene(name)
	case MenuRefreshModels:
		s.refreshModels()
		s.refreshScenes()
	case MenuExit:
		s.exit = true
	}
}

func (s *Session) newScene() {
	s.Placement.Cancel()
	s.dropInstanced()
	s.Scene = world.NewScene(DefaultSceneName)
	s.logs.Info("New scene created")
}

// dropInstanced releases the current scene's instance buffers.
func (s *Session) dropInstanced() {
	s.instancedRemoved = append(s.instancedRemoved, s.Scene.Instanced.Models()...)
	s.instancedAdded = s.instancedAdded[:0]
}

// saveScene writes the scene under name, or under its current name when
// name is empty. Scripts follow the objects into the new folder.
func (s *Session) saveScene(name string) {
	if name == "" {
		name = s.Scene.Name
	}
	if err := scene.ValidateName(name); err != nil {
		s.logs.Error("Cannot save scene", err)
		return
	}

	for _, obj := range s.Scene.Objects {
		if err := s.scripts.Save(obj, obj.SceneDirectory, name); err != nil {
			// The script stays where it is until a later save copies it.
			s.logs.Error("Failed to copy script", err, zap.String("object", obj.Name))
			continue
		}
		obj.SceneDirectory = name
	}

	if err := s.codec.Export(name, s.Scene.Objects, s.Scene.Options); err != nil {
		s.logs.Error("Scene saved with errors", err, zap.String("scene", name))
	} else {
		s.logs.Success(fmt.Sprintf("Scene saved: %s", name), zap.Int("objects", len(s.Scene.Objects)))
	}

	s.Scene.Name = name
	s.refreshScenes()
}

// loadScene replaces the current scene with the one stored under name.
func (s *Session) loadScene(name string) {
	if name == "" {
		name = s.Scene.Name
	}
	if err := scene.ValidateName(name); err != nil {
		s.logs.Error("Cannot load scene", err)
		return
	}
	if ok, _ := afero.DirExists(s.fs, s.codec.Dir(name)); !ok {
		s.logs.Error("Cannot load scene", fmt.Errorf("scene %q does not exist", name))
		return
	}

	imported, err := s.codec.Import(name)
	if err != nil {
		s.logs.Error("Problems loading scene", err, zap.String("scene", name))
	}

	s.Placement.Cancel()
	s.dropInstanced()

	loaded := world.NewScene(name)
	loaded.Objects = imported.Objects
	loaded.Options = imported.Options
	loaded.QueueInstanced()

	for _, obj := range loaded.Objects {
		if err := s.scripts.Load(obj, name); err != nil {
			s.logs.Error("Failed to load script", err, zap.String("object", obj.Name))
		}
	}
	for _, ref := range imported.UsedModels {
		s.requireModel(ref)
	}

	s.Scene = loaded
	s.logs.Success(fmt.Sprintf("Scene loaded: %s", name), zap.Int("objects", len(loaded.Objects)))
}

func (s *Session) deleteScene(name string) {
	if name == "" {
		name = s.Scene.Name
	}
	if err := s.codec.Delete(name); err != nil {
		s.logs.Error("Cannot delete scene", err)
		return
	}
	s.logs.Info(fmt.Sprintf("Scene deleted: %s", name))

	if name == s.Scene.Name {
		s.newScene()
	}
	s.refreshScenes()
}

// refreshModels re-reads the models folder. Models that vanished from disk
// are unloaded.
func (s *Session) refreshModels() {
	opts := s.config.Options
	models, err := s.codec.EnumerateModels(opts.ModelsDir, opts.ModelExtension)
	if err != nil {
		s.logs.Warn("Cannot list models", zap.String("dir", opts.ModelsDir), zap.Error(err))
	}

	present := make(map[string]bool, len(models))
	for _, m := range models {
		present[m.Name] = true
	}
	for name := range s.loaded {
		if !present[name] && name != AxisModel {
			delete(s.loaded, name)
			s.pendingUnloads = append(s.pendingUnloads, name)
		}
	}

	s.models = models
	s.markLoaded()
}

func (s *Session) refreshScenes() {
	scenes, err := s.codec.Scenes()
	if err != nil {
		s.logs.Warn("Cannot list scenes", zap.Error(err))
	}
	s.scenes = scenes
}
