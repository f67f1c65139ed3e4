package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Init replaces Log with a logger built by New.
func Init(errorLog string, debug bool) error {
	l, err := New(errorLog, debug)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// New builds a logger that writes human readable output to stderr and, when
// errorLog is set, appends warnings and errors as JSON lines to that file.
// The file is the durable error history of the editor.
func New(errorLog string, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)

	if errorLog == "" {
		return zap.New(console), nil
	}

	if dir := filepath.Dir(errorLog); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	sink, _, err := zap.Open(errorLog)
	if err != nil {
		return nil, fmt.Errorf("opening error log: %w", err)
	}

	durable := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink,
		zapcore.WarnLevel,
	)

	return zap.New(zapcore.NewTee(console, durable)), nil
}
