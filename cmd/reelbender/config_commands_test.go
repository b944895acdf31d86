package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	requireContains(t, string(data), "[paths]")
	requireContains(t, string(data), "[render]")

	_, _, err = runCLI(t, "", "config", "init", "--path", target)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected clobber refusal, got %v", err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigPathPrintsResolvedLocation(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir())

	out, _, err := runCLI(t, cfgPath, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != cfgPath {
		t.Fatalf("expected %q, got %q", cfgPath, out)
	}
}

func TestConfigShowPrintsResolvedValues(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)

	out, _, err := runCLI(t, cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "staging_dir")
	requireContains(t, out, filepath.Join(base, "staging"))
	// Defaults are filled in for sections the file omits.
	requireContains(t, out, "job_timeout")
}
