package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetState clears package-level logging state between tests.
func resetState() {
	CloseAll()
	logsDir = ""
	dataDir = ""
	cfg = Config{}
	logLevel = LevelInfo
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `{
		"logging": {
			"level": "debug",
			"debug_mode": true,
			"categories": {
				"boot": true,
				"store": true,
				"workflow": true
			}
		}
	}`
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	defer resetState()

	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	Store("test store message %d", 42)
	Workflow("test workflow message")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(tempDir, "logs"))
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}

	var found []string
	for _, e := range entries {
		found = append(found, e.Name())
	}
	for _, want := range []string{"store", "workflow"} {
		ok := false
		for _, name := range found {
			if strings.Contains(name, want) {
				ok = true
			}
		}
		if !ok {
			t.Errorf("Expected a log file for category %q, got %v", want, found)
		}
	}
}

func TestQuietByDefault(t *testing.T) {
	tempDir := t.TempDir()

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	defer resetState()

	if IsDebugMode() {
		t.Error("Expected debug mode off with no config file")
	}

	// No-ops must not create a logs directory.
	Session("should go nowhere")
	Retrieval("also nowhere")

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Error("Expected no logs directory in quiet mode")
	}
}

func TestDisabledCategoryIsNoOp(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `{
		"logging": {
			"level": "info",
			"debug_mode": true,
			"categories": {
				"store": false
			}
		}
	}`
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	defer resetState()

	if IsCategoryEnabled(CategoryStore) {
		t.Error("Expected store category to be disabled")
	}
	// Unlisted categories default to enabled.
	if !IsCategoryEnabled(CategoryWorkflow) {
		t.Error("Expected workflow category to default to enabled")
	}
}
