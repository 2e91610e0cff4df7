// Package common provides shared utilities for ukdata-mcp.
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// Logger wraps arbor.ILogger so callers share one fluent interface.
type Logger struct {
	arbor.ILogger
}

// discardWriter implements writers.IWriter and drops everything.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }

// textWriter renders arbor's JSON events as single text lines on an io.Writer.
type textWriter struct {
	out   io.Writer
	level log.Level
}

func (w *textWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}
	line := evt.Message
	for k, v := range evt.Fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	if evt.Error != "" {
		line += " error=" + evt.Error
	}
	if _, err := w.out.Write([]byte(line + "\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *textWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *textWriter) GetFilePath() string { return "" }
func (w *textWriter) Close() error        { return nil }

// NewLogger creates a console-only logger at the given level.
func NewLogger(level string) *Logger {
	return NewLoggerFromConfig(LoggingConfig{
		Level:   level,
		Outputs: []string{"console"},
	})
}

// NewLoggerFromConfig creates a logger from LoggingConfig.
// Console output always goes to stderr: stdout belongs to the MCP stdio transport.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}

	l := arbor.NewLogger()
	for _, out := range outputs {
		switch out {
		case "console":
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: "2006-01-02T15:04:05Z07:00",
			})
		case "file":
			filePath := cfg.FilePath
			if filePath == "" {
				filePath = "logs/ukdata-mcp.log"
			}
			maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
			if maxSize <= 0 {
				maxSize = 10 * 1024 * 1024
			}
			maxBackups := cfg.MaxBackups
			if maxBackups <= 0 {
				maxBackups = 3
			}
			l = l.WithFileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   filePath,
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
				TimeFormat: "2006-01-02T15:04:05Z07:00",
			})
		}
	}

	l = l.WithMemoryWriter(models.WriterConfiguration{
		Type: models.LogWriterTypeMemory,
	}).WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewLoggerWithOutput creates a logger that renders text lines to w.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	arbor.RegisterWriter(arbor.WRITER_CONSOLE, &textWriter{out: w, level: log.TraceLevel})

	l := arbor.NewLogger().
		WithMemoryWriter(models.WriterConfiguration{
			Type: models.LogWriterTypeMemory,
		}).
		WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that discards all output, including
// globally registered writers.
func NewSilentLogger() *Logger {
	l := arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})
	return &Logger{ILogger: l}
}

// WithCorrelationId returns a child logger tagged with a correlation ID.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}
