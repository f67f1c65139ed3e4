// Package scene reads and writes scenes as CSV files:
//
//	{root}/{scene}/{scene}.csv      one row per world object
//	{root}/{scene}/camera.csv       game options
//	{root}/{scene}/Objects/*.lua    object scripts
package scene

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"Worldsmith/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pixil98/go-errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

const (
	DefaultRoot    = "./Scenes"
	CameraFile     = "camera.csv"
	ObjectsDir     = "Objects"
	objectFields   = 14
	cameraFields   = 6
	cameraFieldsV2 = 8
)

var (
	objectHeader = []string{"id", "name", "model", "location", "instanced", "x", "y", "z", "rot_x", "rot_y", "rot_z", "size_x", "size_y", "size_z"}
	cameraHeader = []string{"type", "target_id", "distance", "x", "y", "z", "orbit_x", "orbit_y"}
)

// ModelRef is a model a scene needs loaded before it can be drawn.
type ModelRef struct {
	Reference string
	Location  string
}

// Imported is what Import could recover from a scene folder. It is usable
// even when Import also returned an error.
type Imported struct {
	UsedModels []ModelRef
	Objects    []*world.WorldObject
	Options    world.GameOptions
}

type Codec struct {
	fs   afero.Fs
	root string
}

func NewCodec(fs afero.Fs, root string) *Codec {
	if root == "" {
		root = DefaultRoot
	}
	return &Codec{fs: fs, root: root}
}

func (c *Codec) Root() string {
	return c.root
}

func (c *Codec) Dir(name string) string {
	return filepath.Join(c.root, name)
}

func (c *Codec) objectsPath(name string) string {
	return filepath.Join(c.root, name, name+".csv")
}

func (c *Codec) cameraPath(name string) string {
	return filepath.Join(c.root, name, CameraFile)
}

// ValidateName rejects names that cannot be used as a scene folder.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("scene name is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid scene name %q", name)
	}
	return nil
}

// Export writes the scene's object and camera files. A failure in one file or
// row does not stop the rest from being written; all of them are returned.
func (c *Codec) Export(name string, objects []*world.WorldObject, options world.GameOptions) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := c.fs.MkdirAll(c.Dir(name), 0755); err != nil {
		return fmt.Errorf("creating scene folder: %w", err)
	}

	el := errors.NewErrorList()

	records := [][]string{objectHeader}
	for i, o := range objects {
		row, err := encodeObject(o)
		if err != nil {
			el.Add(fmt.Errorf("object %d: %w", i, err))
			continue
		}
		records = append(records, row)
	}
	el.Add(c.writeCSV(c.objectsPath(name), records))

	el.Add(c.writeCSV(c.cameraPath(name), [][]string{cameraHeader, encodeOptions(options)}))

	return el.Err()
}

// Import reads a scene folder. Missing files and malformed rows are reported
// in the returned error; everything that could be parsed is kept.
func (c *Codec) Import(name string) (Imported, error) {
	imported := Imported{Options: world.DefaultGameOptions()}
	if err := ValidateName(name); err != nil {
		return imported, err
	}

	el := errors.NewErrorList()

	rows, err := c.readCSV(c.objectsPath(name))
	if err != nil {
		el.Add(err)
	}

	seenIDs := make(map[uint32]bool)
	seenModels := make(map[ModelRef]bool)
	for i, row := range rows {
		if i == 0 && isHeader(row, objectHeader[0]) {
			continue
		}
		obj, err := decodeObject(row)
		if err != nil {
			el.Add(fmt.Errorf("%s line %d: %w", name+".csv", i+1, err))
			continue
		}
		if seenIDs[obj.ID] {
			newID := world.NextID(imported.Objects)
			el.Add(fmt.Errorf("%s line %d: duplicate id %d, reassigned to %d", name+".csv", i+1, obj.ID, newID))
			obj.ID = newID
		}
		seenIDs[obj.ID] = true
		obj.SceneDirectory = name
		imported.Objects = append(imported.Objects, obj)

		ref := ModelRef{Reference: obj.ModelReference, Location: obj.ModelLocation}
		if !seenModels[ref] {
			seenModels[ref] = true
			imported.UsedModels = append(imported.UsedModels, ref)
		}
	}

	rows, err = c.readCSV(c.cameraPath(name))
	if err != nil {
		el.Add(err)
	}
	for i, row := range rows {
		if i == 0 && isHeader(row, cameraHeader[0]) {
			continue
		}
		options, err := decodeOptions(row)
		if err != nil {
			el.Add(fmt.Errorf("%s line %d: %w", CameraFile, i+1, err))
			break
		}
		imported.Options = options
		break
	}

	return imported, el.Err()
}

// Scenes lists the folders under root that hold a scene file.
func (c *Codec) Scenes() ([]string, error) {
	entries, err := afero.ReadDir(c.fs, c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading scenes folder: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if ok, _ := afero.Exists(c.fs, c.objectsPath(e.Name())); ok {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Delete removes the scene folder, scripts included.
func (c *Codec) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if ok, _ := afero.DirExists(c.fs, c.Dir(name)); !ok {
		return fmt.Errorf("scene %q does not exist", name)
	}
	if err := c.fs.RemoveAll(c.Dir(name)); err != nil {
		return fmt.Errorf("deleting scene %q: %w", name, err)
	}
	return nil
}

func (c *Codec) writeCSV(path string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return atomicWrite(c.fs, path, buf.Bytes(), 0644)
}

func (c *Codec) readCSV(path string) ([][]string, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			// A broken quote ends the file for the reader; keep what we have.
			return rows, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func isHeader(row []string, first string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), first)
}

func encodeObject(o *world.WorldObject) ([]string, error) {
	if o.ModelReference == "" {
		return nil, fmt.Errorf("%s has no model", o.Name)
	}
	t := o.Transform
	return []string{
		cast.ToString(o.ID),
		o.Name,
		o.ModelReference,
		o.ModelLocation,
		cast.ToString(o.Instanced),
		cast.ToString(t.Position.X()), cast.ToString(t.Position.Y()), cast.ToString(t.Position.Z()),
		cast.ToString(t.Rotation.X()), cast.ToString(t.Rotation.Y()), cast.ToString(t.Rotation.Z()),
		cast.ToString(t.Size.X()), cast.ToString(t.Size.Y()), cast.ToString(t.Size.Z()),
	}, nil
}

func decodeObject(row []string) (*world.WorldObject, error) {
	if len(row) < objectFields {
		return nil, fmt.Errorf("expected %d fields, got %d", objectFields, len(row))
	}

	id, err := cast.ToUint32E(strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	instanced, err := cast.ToBoolE(strings.TrimSpace(row[4]))
	if err != nil {
		return nil, fmt.Errorf("instanced: %w", err)
	}
	floats, err := parseFloats(row[5:objectFields], objectHeader[5:])
	if err != nil {
		return nil, err
	}

	obj := world.NewWorldObject(id, row[2], row[3], "")
	obj.Name = row[1]
	obj.Instanced = instanced
	obj.Transform = world.Transform{
		Position: mgl32.Vec3{floats[0], floats[1], floats[2]},
		Rotation: mgl32.Vec3{floats[3], floats[4], floats[5]},
		Size:     mgl32.Vec3{floats[6], floats[7], floats[8]},
	}
	obj.DefaultTransform = obj.Transform
	return obj, nil
}

func encodeOptions(o world.GameOptions) []string {
	return []string{
		cast.ToString(int32(o.CameraType)),
		cast.ToString(o.CameraTarget),
		cast.ToString(o.CameraDistance),
		cast.ToString(o.CameraLocation.X()),
		cast.ToString(o.CameraLocation.Y()),
		cast.ToString(o.CameraLocation.Z()),
		cast.ToString(o.OrbitHorizontal),
		cast.ToString(o.OrbitVertical),
	}
}

func decodeOptions(row []string) (world.GameOptions, error) {
	options := world.DefaultGameOptions()
	if len(row) < cameraFields {
		return options, fmt.Errorf("expected at least %d fields, got %d", cameraFields, len(row))
	}

	cameraType, err := cast.ToInt32E(strings.TrimSpace(row[0]))
	if err != nil {
		return options, fmt.Errorf("type: %w", err)
	}
	if cameraType != int32(world.FirstPerson) && cameraType != int32(world.Orbiting) {
		return options, fmt.Errorf("type: unknown camera type %d", cameraType)
	}
	target, err := cast.ToInt32E(strings.TrimSpace(row[1]))
	if err != nil {
		return options, fmt.Errorf("target_id: %w", err)
	}
	floats, err := parseFloats(row[2:cameraFields], cameraHeader[2:cameraFields])
	if err != nil {
		return options, err
	}

	options.CameraType = world.CameraType(cameraType)
	options.CameraTarget = target
	options.CameraDistance = floats[0]
	options.CameraLocation = mgl32.Vec3{floats[1], floats[2], floats[3]}

	if len(row) >= cameraFieldsV2 {
		if options.OrbitHorizontal, err = cast.ToBoolE(strings.TrimSpace(row[6])); err != nil {
			return world.DefaultGameOptions(), fmt.Errorf("orbit_x: %w", err)
		}
		if options.OrbitVertical, err = cast.ToBoolE(strings.TrimSpace(row[7])); err != nil {
			return world.DefaultGameOptions(), fmt.Errorf("orbit_y: %w", err)
		}
	}
	return options, nil
}

func parseFloats(fields, names []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := cast.ToFloat32E(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		out[i] = v
	}
	return out, nil
}
