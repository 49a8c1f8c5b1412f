package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/zulandar/minivault/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(config.LoggingConfig{Level: tt.level, Format: config.FormatText}, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty"}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	if !strings.Contains(err.Error(), "logging:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "logging:")
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNew_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(config.LoggingConfig{Level: "info", Format: config.FormatJSON}, buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.WithField("prompt", "hi").Info("received prompt")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "received prompt" {
		t.Errorf("msg = %v, want %q", line["msg"], "received prompt")
	}
	if line["prompt"] != "hi" {
		t.Errorf("prompt = %v, want %q", line["prompt"], "hi")
	}
}

func TestNew_AutoFormatNonTerminalIsJSON(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "info", Format: config.FormatAuto}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want *logrus.JSONFormatter", logger.Formatter)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.SetLevel(logrus.DebugLevel)
	if logger.Out != io.Discard {
		t.Errorf("Out = %T, want io.Discard", logger.Out)
	}
}

func TestNew_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(config.LoggingConfig{Level: "info", Format: config.FormatText}, buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("formatter = %T, want *logrus.TextFormatter", logger.Formatter)
	}
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
}
