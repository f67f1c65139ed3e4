package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ModelEntry is a model file the editor can place. Loaded is set once the
// backend has been asked to load it.
type ModelEntry struct {
	Name   string
	Path   string
	Loaded bool
}

// EnumerateModels lists the files in dir with extension ext, sorted by name.
func (c *Codec) EnumerateModels(dir, ext string) ([]ModelEntry, error) {
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading models folder: %w", err)
	}

	ext = "." + strings.TrimPrefix(ext, ".")
	var models []ModelEntry
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		models = append(models, ModelEntry{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].Name < models[j].Name
	})
	return models, nil
}

// FindModel returns the index of the model called name, or -1.
func FindModel(models []ModelEntry, name string) int {
	for i, m := range models {
		if m.Name == name {
			return i
		}
	}
	return -1
}
