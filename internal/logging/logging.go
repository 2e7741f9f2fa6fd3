// Package logging builds the zap logger shared by changewizard commands.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// FileName is the log file created under the state directory.
const FileName = "changewizard.log"

// New constructs a console-encoded zap logger writing to path. Prompts own
// the terminal, so logs go to a file; "stderr" and "stdout" are accepted for
// debugging. An invalid level falls back to info.
func New(level, path string) (*zap.Logger, error) {
	atomic := zap.NewAtomicLevel()
	if err := atomic.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		_ = atomic.UnmarshalText([]byte(defaultLogLevel))
	}

	output := strings.TrimSpace(path)
	if output == "" {
		return nil, fmt.Errorf("logging: output path is required")
	}
	if output != "stderr" && output != "stdout" {
		if err := os.MkdirAll(filepath.Dir(output), 0o700); err != nil {
			return nil, fmt.Errorf("logging: create log directory: %w", err)
		}
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:     "message",
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Level:             atomic,
		Encoding:          "console",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{output},
		DisableCaller:     false,
		DisableStacktrace: true,
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger.Named("changewizard"), nil
}

// DefaultPath places the log file inside stateDir.
func DefaultPath(stateDir string) string {
	return filepath.Join(stateDir, FileName)
}
