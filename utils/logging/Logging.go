// Package logging builds the zap loggers used by command line tools.
// Console output is human readable or JSON, and may be teed to a
// rotating JSON log file.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Formats of console output
const (
	Console = "console"
	JSON    = "json"
)

// Config configures a logger
type Config struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`

	// File is the path of the rotating log file. No file is written
	// when File is empty.
	File       string `yaml:"file" json:"file"`
	MaxSize    int    `yaml:"maxSize" json:"maxSize"` // megabytes
	MaxBackups int    `yaml:"maxBackups" json:"maxBackups"`
	MaxAge     int    `yaml:"maxAge" json:"maxAge"` // days
	Compress   bool   `yaml:"compress" json:"compress"`
}

// DefaultConfig returns a configuration which logs informational
// messages to the console
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     Console,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// New returns a logger writing to stderr as described by c
func New(c Config) (*zap.Logger, error) {
	return NewWithWriter(c, zapcore.Lock(os.Stderr))
}

// NewWithWriter returns a logger writing console output to w as
// described by c
func NewWithWriter(c Config, w zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("newWithWriter: %w", err)
	}

	var consoleEncoder zapcore.Encoder
	switch c.Format {
	case Console, "":
		consoleEncoder = zapcore.NewConsoleEncoder(encoderConfig(true))
	case JSON:
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig(false))
	default:
		return nil, fmt.Errorf("newWithWriter: unknown format %q", c.Format)
	}

	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, w, level)}
	if c.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		})
		fileEncoder := zapcore.NewJSONEncoder(encoderConfig(false))
		cores = append(cores, zapcore.NewCore(fileEncoder, fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddStacktrace(zap.ErrorLevel)), nil
}

func encoderConfig(console bool) zapcore.EncoderConfig {
	c := zap.NewProductionEncoderConfig()
	c.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	if console {
		c.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		c.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return c
}
