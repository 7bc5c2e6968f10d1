package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	// Warn is at the default level and must reach the file
	Warn("Test warning message")
	if _, err := os.Stat(filepath.Join(logDir, "termjournal.log")); err != nil {
		t.Errorf("log file was not written: %v", err)
	}
}

func TestInitInteractiveDebug(t *testing.T) {
	err := Init(Config{
		Debug:       true,
		Interactive: true,
		ConfigDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in interactive debug mode: %v", err)
	}

	Debug("Test debug message in debug mode")
	With("session", "abc").Info("child logger message")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	With("k", "v").Info("discarded")
}
