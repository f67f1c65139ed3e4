package scripting

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const DefaultTemplate = "update"

// TemplateData is what a script template is rendered with.
type TemplateData struct {
	ID       uint32
	Name     string
	Model    string
	Function string
}

var templateRegistry = make(map[string]*template.Template)

// RegisterTemplate parses text and makes it available under name,
// replacing any template of the same name.
func RegisterTemplate(name, text string) error {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	templateRegistry[name] = tmpl
	return nil
}

func AvailableTemplates() []string {
	names := make([]string, 0, len(templateRegistry))
	for name := range templateRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func RenderTemplate(name string, data TemplateData) (string, error) {
	tmpl, ok := templateRegistry[name]
	if !ok {
		return "", fmt.Errorf("unknown script template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

const contractHeader = `-- {{ .Name }} ({{ .Model | default "no model" }}, id {{ .ID }})
--
-- Set before every call:
--   ref_num                      object id
--   delta_time                   seconds since the last frame
--   mouse_x, mouse_y             cursor position in pixels
--   left_mouse, right_mouse      mouse buttons held
--   window_dim_x, window_dim_y   window size in pixels
--   w_key, a_key, s_key, d_key   movement keys held
--   x, y, z                      position
--   rot_x, rot_y, rot_z          rotation in degrees
--   size_x, size_y, size_z       scale
--   vel_x, vel_y, vel_z          velocity
--   acc_x, acc_y, acc_z          acceleration
--
-- The transform, velocity and acceleration globals are read back after
-- {{ .Function }}() returns.
`

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(RegisterTemplate(DefaultTemplate, contractHeader+`
function {{ .Function }}()
end
`))

	must(RegisterTemplate("spin", contractHeader+`
local speed = 90

function {{ .Function }}()
    rot_y = (rot_y + speed * delta_time) % 360
end
`))

	must(RegisterTemplate("physics", contractHeader+`
function {{ .Function }}()
    vel_x = vel_x + acc_x * delta_time
    vel_y = vel_y + acc_y * delta_time
    vel_z = vel_z + acc_z * delta_time
    x = x + vel_x * delta_time
    y = y + vel_y * delta_time
    z = z + vel_z * delta_time
end
`))

	must(RegisterTemplate("wasd", contractHeader+`
local speed = 10

function {{ .Function }}()
    if w_key then z = z - speed * delta_time end
    if s_key then z = z + speed * delta_time end
    if a_key then x = x - speed * delta_time end
    if d_key then x = x + speed * delta_time end
end
`))
}
