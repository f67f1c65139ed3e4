package main

import (
	"flag"
	"fmt"
	"os"

	editor "Worldsmith/editor/internal"
	"Worldsmith/internal/engine"
	"Worldsmith/internal/logger"
	"Worldsmith/internal/renderer"
	"Worldsmith/internal/scripting"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// debugBackend stands in for a GPU backend: it keeps the last frame and logs
// what was submitted.
type debugBackend struct {
	renderer.Recorder
}

func (b *debugBackend) Submit(cmds []renderer.DrawCommand) {
	b.Recorder.Submit(cmds)
	if ce := logger.Log.Check(zap.DebugLevel, "Frame submitted"); ce != nil {
		ce.Write(zap.Int("frame", b.Frames), zap.Int("commands", len(cmds)))
	}
}

func main() {
	configPath := flag.String("config", editor.DefaultConfigPath, "editor settings file")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	flag.Parse()

	if err := run(*configPath, *width, *height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, width, height int) error {
	fs := afero.NewOsFs()

	cfg, err := editor.LoadConfig(fs, configPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configPath, err)
	}

	if err := logger.Init(cfg.Options.ErrorLog, cfg.Options.Debug); err != nil {
		return err
	}
	defer logger.Log.Sync()

	logger.Log.Info("Starting Worldsmith", zap.String("version", editor.Version))

	win, err := engine.NewWindow(engine.WindowConfig{
		Width:  width,
		Height: height,
		Title:  "Worldsmith " + editor.Version,
		X:      100,
		Y:      100,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	app := editor.NewApp(&editor.Deps{
		FS:     fs,
		Config: cfg,
		Logs:   editor.NewLogs(logger.Log),
		UI:     editor.NoUI{},
		NewHost: func() scripting.Host {
			return scripting.NewLuaHost(scripting.DefaultCallTimeout)
		},
	}, &debugBackend{})

	win.Run(func(dt float32) bool {
		return app.Frame(win.Input, dt)
	})

	if err := editor.SaveConfig(fs, configPath, cfg); err != nil {
		logger.Log.Error("Failed to save editor settings", zap.Error(err))
	}
	return nil
}
