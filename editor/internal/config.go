package editor

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// WindowsShown records which editor panels are open.
type WindowsShown struct {
	Objects     bool `json:"objects" mapstructure:"objects"`
	Models      bool `json:"models" mapstructure:"models"`
	Properties  bool `json:"properties" mapstructure:"properties"`
	GameOptions bool `json:"game_options" mapstructure:"game_options"`
	Scenes      bool `json:"scenes" mapstructure:"scenes"`
	Console     bool `json:"console" mapstructure:"console"`
}

type Options struct {
	SnapToGrid             bool    `json:"snap_to_grid" mapstructure:"snap_to_grid"`
	MouseRelativePlacement bool    `json:"mouse_relative_placement" mapstructure:"mouse_relative_placement"`
	ShowAxis               bool    `json:"show_axis" mapstructure:"show_axis"`
	ShowFPS                bool    `json:"show_fps" mapstructure:"show_fps"`
	PlacingHeightRate      float32 `json:"placing_height_rate" mapstructure:"placing_height_rate"`
	NudgeRate              float32 `json:"nudge_rate" mapstructure:"nudge_rate"`
	CameraSpeed            float32 `json:"camera_speed" mapstructure:"camera_speed"`
	ModelsDir              string  `json:"models_dir" mapstructure:"models_dir"`
	ModelExtension         string  `json:"model_extension" mapstructure:"model_extension"`
	ScenesDir              string  `json:"scenes_dir" mapstructure:"scenes_dir"`
	ErrorLog               string  `json:"error_log" mapstructure:"error_log"`
	HotReloadScripts       bool    `json:"hot_reload_scripts" mapstructure:"hot_reload_scripts"`
	Debug                  bool    `json:"debug" mapstructure:"debug"`
}

type EditorConfig struct {
	Windows WindowsShown `json:"windows" mapstructure:"windows"`
	Options Options      `json:"options" mapstructure:"options"`
}

func DefaultConfig() EditorConfig {
	return EditorConfig{
		Windows: WindowsShown{
			Objects:     true,
			Models:      true,
			Properties:  true,
			GameOptions: false,
			Scenes:      true,
			Console:     true,
		},
		Options: Options{
			SnapToGrid:             false,
			MouseRelativePlacement: true,
			ShowAxis:               true,
			ShowFPS:                true,
			PlacingHeightRate:      5,
			NudgeRate:              5,
			CameraSpeed:            20,
			ModelsDir:              "./Models",
			ModelExtension:         "glb",
			ScenesDir:              "./Scenes",
			ErrorLog:               "./logs/errors.log",
			HotReloadScripts:       false,
		},
	}
}

// settings flattens the config into viper keys.
func (c EditorConfig) settings() map[string]any {
	w, o := c.Windows, c.Options
	return map[string]any{
		"windows.objects":      w.Objects,
		"windows.models":       w.Models,
		"windows.properties":   w.Properties,
		"windows.game_options": w.GameOptions,
		"windows.scenes":       w.Scenes,
		"windows.console":      w.Console,

		"options.snap_to_grid":             o.SnapToGrid,
		"options.mouse_relative_placement": o.MouseRelativePlacement,
		"options.show_axis":                o.ShowAxis,
		"options.show_fps":                 o.ShowFPS,
		"options.placing_height_rate":      o.PlacingHeightRate,
		"options.nudge_rate":               o.NudgeRate,
		"options.camera_speed":             o.CameraSpeed,
		"options.models_dir":               o.ModelsDir,
		"options.model_extension":          o.ModelExtension,
		"options.scenes_dir":               o.ScenesDir,
		"options.error_log":                o.ErrorLog,
		"options.hot_reload_scripts":       o.HotReloadScripts,
		"options.debug":                    o.Debug,
	}
}

// LoadConfig reads the editor configuration from path. A missing file is not
// an error; defaults are used for every key the file does not set.
func LoadConfig(fs afero.Fs, path string) (*EditorConfig, error) {
	v := viper.New()
	v.SetFs(fs)
	for key, value := range DefaultConfig().settings() {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("checking config file: %w", err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg EditorConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg to path as JSON.
func SaveConfig(fs afero.Fs, path string, cfg *EditorConfig) error {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("json")
	for key, value := range cfg.settings() {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (c *EditorConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Options.PlacingHeightRate < 0 {
		el.Add(fmt.Errorf("options.placing_height_rate must not be negative"))
	}
	if c.Options.NudgeRate < 0 {
		el.Add(fmt.Errorf("options.nudge_rate must not be negative"))
	}
	if c.Options.CameraSpeed <= 0 {
		el.Add(fmt.Errorf("options.camera_speed must be positive"))
	}
	if c.Options.ModelsDir == "" {
		el.Add(fmt.Errorf("options.models_dir is required"))
	}
	if c.Options.ModelExtension == "" {
		el.Add(fmt.Errorf("options.model_extension is required"))
	}
	if c.Options.ScenesDir == "" {
		el.Add(fmt.Errorf("options.scenes_dir is required"))
	}

	return el.Err()
}
