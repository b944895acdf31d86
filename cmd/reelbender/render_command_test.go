package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eerla/pybenders-sub000/internal/manifest"
	"github.com/eerla/pybenders-sub000/internal/testsupport"
)

func writeRenderFixture(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "golang_q1")
	scenes := []manifest.Scene{
		{Role: "welcome", ImagePath: filepath.Join(dir, "welcome.png"), DurationSeconds: 2},
		{Role: "question", ImagePath: filepath.Join(dir, "question.png"), DurationSeconds: 7},
		{Role: "countdown", ImagePath: filepath.Join(dir, "transition_base.png"), DurationSeconds: 4.8},
		{Role: "answer", ImagePath: filepath.Join(dir, "answer.png"), DurationSeconds: 7},
		{Role: "cta", ImagePath: filepath.Join(dir, "cta.png"), DurationSeconds: 2},
	}
	for _, scene := range scenes {
		testsupport.WritePNG(t, scene.ImagePath)
	}
	for _, name := range []string{"transition_2.png", "transition_1.png", "transition_ready.png"} {
		testsupport.WritePNG(t, filepath.Join(dir, name))
	}

	doc := manifest.Document{
		Subject:     "golang",
		GeneratedAt: time.Now().UTC(),
		Questions: []manifest.Question{
			{QuestionID: "golang_q1", ContentProfile: "technical", Scenes: scenes},
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	path := filepath.Join(t.TempDir(), "golang_manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestRenderCommandRequiresManifest(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir())

	_, _, err := runCLI(t, cfgPath, "render")
	if err == nil || !strings.Contains(err.Error(), "manifest") {
		t.Fatalf("expected missing-flag error, got %v", err)
	}
}

// The stub encoder exits without producing output, so the job fails at
// validation. That still walks the whole command path: manifest load, plan
// expansion, ledger writes, and the results manifest on stdout.
func TestRenderCommandWritesResultsManifest(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir())
	makeStubBinaries(t, "ffmpeg", "ffprobe")
	manifestPath := writeRenderFixture(t)

	out, _, err := runCLI(t, cfgPath, "render", "--manifest", manifestPath)
	if err != nil {
		t.Fatalf("render: %v\noutput: %s", err, out)
	}

	var resultsPath string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			resultsPath = trimmed
		}
	}
	if resultsPath != manifest.ResultsPath(manifestPath) {
		t.Fatalf("final stdout line %q is not the results path", resultsPath)
	}

	results, err := manifest.ReadResults(resultsPath)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	if results.Succeeded != 0 || results.Failed != 1 {
		t.Fatalf("unexpected tallies: %+v", results)
	}
	entry := results.Results["golang_q1"]
	if entry.Succeeded || entry.Error == "" {
		t.Fatalf("expected a recorded failure, got %+v", entry)
	}

	requireContains(t, out, "Rendered 0/1 reels for Golang")
	requireContains(t, out, "Question")
	requireContains(t, out, "golang_q1")
	requireContains(t, out, "1 jobs failed")
}
