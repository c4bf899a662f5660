// Package logging configures the client's zap logger. The TUI owns stdout,
// so logs always go to a file under the config dir.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "styleswipe.log"

// New builds a file-backed logger. Failures fall back to a Nop logger;
// losing logs must never take the client down.
func New(configDir string) *zap.Logger {
	if strings.TrimSpace(configDir) == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(configDir, logFileName)}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl := levelFromEnv(); lvl != nil {
		cfg.Level = *lvl
	}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func levelFromEnv() *zap.AtomicLevel {
	v := strings.TrimSpace(os.Getenv("STYLESWIPE_LOG_LEVEL"))
	if v == "" {
		return nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return nil
	}
	al := zap.NewAtomicLevelAt(lvl)
	return &al
}
