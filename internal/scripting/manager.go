package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"Worldsmith/internal/world"

	"github.com/spf13/afero"
)

const (
	DefaultRoot = "./Scenes"
	ObjectsDir  = "Objects"
	Extension   = ".lua"
)

// Manager keeps each object's script file in step with the object's name
// and scene folder.
type Manager struct {
	fs   afero.Fs
	root string
}

func NewManager(fs afero.Fs, root string) *Manager {
	if root == "" {
		root = DefaultRoot
	}
	return &Manager{fs: fs, root: root}
}

// Dir is the folder holding a scene's scripts.
func (m *Manager) Dir(sceneDir string) string {
	return filepath.Join(m.root, sceneDir, ObjectsDir)
}

func (m *Manager) Path(name, sceneDir string) string {
	return filepath.Join(m.Dir(sceneDir), name+Extension)
}

// FunctionName is the per-frame function a script for an object called name
// must define. Characters Lua does not allow in identifiers become '_'.
func FunctionName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if i == 0 && unicode.IsDigit(r) {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + "update"
}

// Create writes a new script for obj from the default template.
func (m *Manager) Create(obj *world.WorldObject, sceneDir string) error {
	return m.CreateFrom(obj, sceneDir, DefaultTemplate)
}

// CreateFrom writes a new script for obj from the named template. It does
// nothing when obj already has a script. An existing file at the target
// path is bound instead of overwritten.
func (m *Manager) CreateFrom(obj *world.WorldObject, sceneDir, templateName string) error {
	if obj.HasScript {
		return nil
	}

	path := m.Path(obj.Name, sceneDir)
	if ok, _ := afero.Exists(m.fs, path); ok {
		return m.Load(obj, sceneDir)
	}

	source, err := RenderTemplate(templateName, TemplateData{
		ID:       obj.ID,
		Name:     obj.Name,
		Model:    obj.ModelReference,
		Function: FunctionName(obj.Name),
	})
	if err != nil {
		return err
	}

	if err := m.fs.MkdirAll(m.Dir(sceneDir), 0755); err != nil {
		return fmt.Errorf("creating scripts folder: %w", err)
	}
	if err := afero.WriteFile(m.fs, path, []byte(source), 0644); err != nil {
		return fmt.Errorf("writing script %s: %w", filepath.Base(path), err)
	}

	obj.HasScript = true
	obj.Script = &world.ScriptHandle{Path: path, Source: source}
	return nil
}

// Load binds obj to its script file in sceneDir if one exists. The script is
// read but not executed.
func (m *Manager) Load(obj *world.WorldObject, sceneDir string) error {
	obj.ClearScript()

	path := m.Path(obj.Name, sceneDir)
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading script %s: %w", filepath.Base(path), err)
	}

	obj.HasScript = true
	obj.Script = &world.ScriptHandle{Path: path, Source: string(data)}
	return nil
}

// Save copies obj's script from fromDir to toDir, for when a scene is saved
// under a new name. The source file is left in place.
func (m *Manager) Save(obj *world.WorldObject, fromDir, toDir string) error {
	if !obj.HasScript || fromDir == toDir {
		return nil
	}

	data, err := afero.ReadFile(m.fs, m.Path(obj.Name, fromDir))
	if err != nil {
		if obj.Script == nil {
			return fmt.Errorf("reading script for %s: %w", obj.Name, err)
		}
		data = []byte(obj.Script.Source)
	}

	if err := m.fs.MkdirAll(m.Dir(toDir), 0755); err != nil {
		return fmt.Errorf("creating scripts folder: %w", err)
	}
	dst := m.Path(obj.Name, toDir)
	if err := afero.WriteFile(m.fs, dst, data, 0644); err != nil {
		return fmt.Errorf("copying script for %s: %w", obj.Name, err)
	}

	obj.Script = &world.ScriptHandle{Path: dst, Source: string(data)}
	return nil
}

// Delete removes obj's script file.
func (m *Manager) Delete(obj *world.WorldObject) error {
	if !obj.HasScript {
		return nil
	}

	path := m.Path(obj.Name, obj.SceneDirectory)
	if obj.Script != nil && obj.Script.Path != "" {
		path = obj.Script.Path
	}
	if err := m.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting script %s: %w", filepath.Base(path), err)
	}

	obj.ClearScript()
	return nil
}

// Rename gives obj a new name. A bound script moves to the matching file
// and its update function is renamed with it.
func (m *Manager) Rename(obj *world.WorldObject, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" || strings.ContainsAny(newName, `/\`) {
		return fmt.Errorf("invalid object name %q", newName)
	}
	if newName == obj.Name {
		return nil
	}
	if !obj.HasScript {
		obj.Name = newName
		return nil
	}

	oldPath := m.Path(obj.Name, obj.SceneDirectory)
	if obj.Script != nil && obj.Script.Path != "" {
		oldPath = obj.Script.Path
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName+Extension)
	if ok, _ := afero.Exists(m.fs, newPath); ok {
		return fmt.Errorf("script %s already exists", filepath.Base(newPath))
	}

	data, err := afero.ReadFile(m.fs, oldPath)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", filepath.Base(oldPath), err)
	}

	oldFn := regexp.MustCompile(`\b` + regexp.QuoteMeta(FunctionName(obj.Name)) + `\b`)
	source := oldFn.ReplaceAllLiteralString(string(data), FunctionName(newName))

	if err := afero.WriteFile(m.fs, newPath, []byte(source), 0644); err != nil {
		return fmt.Errorf("writing script %s: %w", filepath.Base(newPath), err)
	}
	if err := m.fs.Remove(oldPath); err != nil {
		_ = m.fs.Remove(newPath)
		return fmt.Errorf("removing script %s: %w", filepath.Base(oldPath), err)
	}

	obj.Name = newName
	obj.Script = &world.ScriptHandle{Path: newPath, Source: source}
	return nil
}
