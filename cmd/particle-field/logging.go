package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/particle-field/parameter"
)

// setupLogging returns a file-backed logger when debug is set, a no-op logger otherwise
// stdout and stderr belong to the terminal surface, so nothing is ever logged there
// An existing log larger than MaxLogSize is rotated to a timestamped name first
func setupLogging(debug bool, dir, name string) (*zap.Logger, *os.File, error) {
	if !debug {
		return zap.NewNop(), nil, nil
	}
	if dir == "" {
		dir = parameter.LogDir
	}
	if name == "" {
		name = parameter.LogFileName
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > parameter.MaxLogSize {
		ext := filepath.Ext(name)
		rotated := filepath.Join(dir, fmt.Sprintf("%s-%s%s",
			strings.TrimSuffix(name, ext), time.Now().Format("20060102-150405"), ext))
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, fmt.Errorf("logging: rotate %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), zapcore.DebugLevel)
	logger := zap.New(core, zap.ErrorOutput(zapcore.AddSync(f)))
	return logger, f, nil
}
