// Package logging wraps go.uber.org/zap for CLI use: a highlighting
// mode for terminal output plus optional rotating file output.
package logging

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var consoleWriter = os.Stdout

// Highlight selects whether terminal output carries ANSI color.
type Highlight int

const (
	Plain Highlight = iota
	Colors
)

// ToHighlight parses a highlight mode flag, auto-detecting the
// terminal when h is "AUTO" via golang.org/x/term.
func ToHighlight(h string, fd uintptr) (Highlight, error) {
	switch strings.ToUpper(h) {
	case "PLAIN":
		return Plain, nil
	case "COLORS":
		return Colors, nil
	case "AUTO":
		if term.IsTerminal(int(fd)) {
			return Colors, nil
		}
		return Plain, nil
	default:
		return Plain, fmt.Errorf("unknown highlight mode: %s", h)
	}
}

// Config configures a Logger: where it writes and how verbosely.
type Config struct {
	Level      zapcore.Level
	Highlight  Highlight
	LogFile    string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig is a sensible starting point for a CLI invocation.
func DefaultConfig() Config {
	return Config{
		Level:      zapcore.InfoLevel,
		Highlight:  Plain,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// New builds a *zap.Logger per cfg. Terminal output uses zap's console
// encoder with color keyed off cfg.Highlight; file output (if
// configured) is newline-delimited JSON rotated by lumberjack, pairing
// a human console sink with a machine-readable rotated file sink.
func New(cfg Config) (*zap.Logger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Highlight == Colors {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(consoleWriter)), cfg.Level),
	}
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), cfg.Level))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}
