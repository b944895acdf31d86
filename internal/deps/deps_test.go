package deps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "   "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available {
		t.Fatal("expected blank command to be unavailable")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %s", results[2].Detail)
	}
}

func TestResolveFFmpegPathPrefersLookup(t *testing.T) {
	binDir := t.TempDir()
	ffmpegPath := filepath.Join(binDir, "ffmpeg")
	if err := os.WriteFile(ffmpegPath, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	if got := ResolveFFmpegPath(""); got != ffmpegPath {
		t.Fatalf("ResolveFFmpegPath() = %q, want %q", got, ffmpegPath)
	}
	if got := ResolveFFmpegPath("ffmpeg"); got != ffmpegPath {
		t.Fatalf("ResolveFFmpegPath(ffmpeg) = %q, want %q", got, ffmpegPath)
	}
}

func TestResolveFFprobePathFallsBackToName(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if got := ResolveFFprobePath("custom-ffprobe"); got != "custom-ffprobe" {
		t.Fatalf("expected unresolvable command returned unchanged, got %q", got)
	}
	if got := ResolveFFprobePath(""); got != "ffprobe" {
		t.Fatalf("expected default name when unresolvable, got %q", got)
	}
}

func TestBinaryVersionReturnsFirstLine(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "ffmpeg")
	script := "#!/bin/sh\necho 'ffmpeg version 6.1.1 Copyright (c) 2000-2023'\necho 'built with gcc'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	version, err := BinaryVersion(context.Background(), stub)
	if err != nil {
		t.Fatalf("BinaryVersion failed: %v", err)
	}
	if !strings.HasPrefix(version, "ffmpeg version 6.1.1") {
		t.Fatalf("unexpected version line: %q", version)
	}
	if strings.Contains(version, "gcc") {
		t.Fatalf("expected only the first line, got %q", version)
	}
}

func TestBinaryVersionErrors(t *testing.T) {
	if _, err := BinaryVersion(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty command")
	}
	if _, err := BinaryVersion(context.Background(), "clearly-not-present-binary"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
