package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iliyamo/fyyur/internal/config"
)

func TestLoggerWritesConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "error.log")
	var console bytes.Buffer
	l := newWithConsole(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1}, &console)

	l.Printf("venue %d could not be listed", 7)
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for name, got := range map[string]string{"file": string(data), "console": console.String()} {
		if !strings.Contains(got, "venue 7 could not be listed") || !strings.Contains(got, "logger_test.go:") {
			t.Fatalf("%s output = %q, want message with source location", name, got)
		}
	}
}

func TestLoggerConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	l := newWithConsole(config.LogConfig{}, &console)
	l.Print("hello")
	if !strings.Contains(console.String(), "hello") {
		t.Fatalf("console = %q", console.String())
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
