package common

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNewLogger_FluentAPI(t *testing.T) {
	logger := NewLogger("error")
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
	logger.Info().Str("upstream", "police").Msg("fetch")
	logger.Warn().Int("count", 3).Msg("warning")
	logger.Debug().Float64("lat", 51.5).Bool("cached", true).Msg("debug")
}

func TestNewLoggerWithOutput_WritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("operation", "forces").Msg("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestNewSilentLogger_DoesNotWriteToGlobalWriters(t *testing.T) {
	var buf bytes.Buffer
	_ = NewLoggerWithOutput("info", &buf)
	buf.Reset()

	silent := NewSilentLogger()
	silent.Info().Str("key", "value").Msg("discarded")
	silent.Error().Msg("discarded")

	if buf.Len() > 0 {
		t.Errorf("silent logger wrote %d bytes: %s", buf.Len(), buf.String())
	}
}

// stdout carries the MCP stdio transport.
func TestNewLogger_DoesNotWriteToStdout(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	logger := NewLoggerFromConfig(LoggingConfig{Level: "info", Outputs: []string{"console"}})
	logger.Info().Msg("must not reach stdout")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	r.Close()

	if buf.Len() > 0 {
		t.Errorf("logger wrote to stdout: %s", buf.String())
	}
}

func TestWithCorrelationId(t *testing.T) {
	logger := NewLogger("error")
	correlated := logger.WithCorrelationId("req-123")
	if correlated == nil || correlated == logger {
		t.Fatal("WithCorrelationId should return a new Logger")
	}
	correlated.Info().Str("tool", "get_police_forces").Msg("handler start")
}
