package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestConfig(t *testing.T) (configPath, videoDir string) {
	t.Helper()
	base := t.TempDir()
	videoDir = filepath.Join(base, "videos")
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		t.Fatalf("mkdir videos: %v", err)
	}

	metadataPath := filepath.Join(base, "talks.json")
	metadata := `[
  {
    "room": "Robertson",
    "start_time": "10:00 AM",
    "talk_title": "Great Talk",
    "speakers": [{"firstname": "Jane", "lastname": "Smith"}]
  }
]`
	if err := os.WriteFile(metadataPath, []byte(metadata), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	configPath = filepath.Join(base, "greenroom.toml")
	content := fmt.Sprintf(`[paths]
video_dir = %q
pyvideo_dir = %q
state_dir = %q
log_dir = %q

[conference]
name = "PyBay"
year = 2025
metadata_file = %q
`,
		videoDir,
		filepath.Join(base, "pyvideo"),
		filepath.Join(base, "state"),
		filepath.Join(base, "logs"),
		metadataPath,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, videoDir
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Errorf("output %q does not mention target", output)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Errorf("sample config missing [paths] section")
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestRenameCommandDryRun(t *testing.T) {
	configPath, videoDir := writeTestConfig(t)
	source := filepath.Join(videoDir, "Robertson - 1000 - Smith.mp4")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	output, err := runCommand(t, "--config", configPath, "rename", "--dry-run")
	if err != nil {
		t.Fatalf("rename: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Great Talk — Jane Smith (PyBay 2025).mp4") {
		t.Errorf("output missing generated name:\n%s", output)
	}
	if !strings.Contains(output, "Would rename 1 file(s)") {
		t.Errorf("output missing dry-run summary:\n%s", output)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("dry run renamed the file: %v", err)
	}
}

func TestRenameCommandAppliesPlan(t *testing.T) {
	configPath, videoDir := writeTestConfig(t)
	source := filepath.Join(videoDir, "Robertson - 1000 - Smith.mp4")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	output, err := runCommand(t, "--config", configPath, "rename")
	if err != nil {
		t.Fatalf("rename: %v\n%s", err, output)
	}
	renamed := filepath.Join(videoDir, "Great Talk — Jane Smith (PyBay 2025).mp4")
	if _, err := os.Stat(renamed); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Errorf("original still present: %v", err)
	}
}

func TestQueueStatusEmpty(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	output, err := runCommand(t, "--config", configPath, "queue", "status")
	if err != nil {
		t.Fatalf("queue status: %v\n%s", err, output)
	}
	if !strings.Contains(output, "total") {
		t.Errorf("output missing totals:\n%s", output)
	}
}
