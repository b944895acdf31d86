package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eerla/pybenders-sub000/internal/config"
	"github.com/eerla/pybenders-sub000/internal/logging"
	"github.com/eerla/pybenders-sub000/internal/services"
)

func TestNewConsoleWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", ConsoleOut: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "compositor")
	logger.Info("render complete",
		logging.String(logging.FieldSubject, "golang"),
		logging.String(logging.FieldQuestionID, "golang_00042"),
		logging.String(logging.FieldStage, "encode"),
	)

	out := buf.String()
	for _, fragment := range []string{"INFO", "[compositor]", "Golang", "golang_00042", "(encode)", "render complete"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in console output %q", fragment, out)
		}
	}
}

func TestNewConsoleHidesDebugOnlyFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", ConsoleOut: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("encode finished",
		logging.String("output_video", "clip.mp4"),
		logging.String(logging.FieldLogPath, "/tmp/ffmpeg.log"),
	)

	out := buf.String()
	if !strings.Contains(out, "Output: clip.mp4") {
		t.Fatalf("expected output field in %q", out)
	}
	if strings.Contains(out, "/tmp/ffmpeg.log") {
		t.Fatalf("expected log path hidden at info level, got %q", out)
	}
	if !strings.Contains(out, "more field") {
		t.Fatalf("expected hidden field counter in %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := logging.New(logging.Options{Format: "yaml", ConsoleOut: &buf}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "invalid", Format: "console", ConsoleOut: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden message")
	logger.Info("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Fatalf("expected debug record suppressed, got %q", out)
	}
	if !strings.Contains(out, "visible message") {
		t.Fatalf("expected info record present, got %q", out)
	}
}

func TestFileCopyReceivesJSONAtDebug(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", ConsoleOut: &buf, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("file only record")

	if buf.Len() != 0 {
		t.Fatalf("expected console suppressed at warn level, got %q", buf.String())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := bytes.TrimSpace(content)
	var record map[string]any
	if err := json.Unmarshal(line, &record); err != nil {
		t.Fatalf("decode log record %q: %v", line, err)
	}
	if record["msg"] != "file only record" {
		t.Fatalf("unexpected msg field: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level field: %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts field in file record")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("configured record")

	path := logging.LogFilePath(&cfg)
	if path == "" {
		t.Fatal("expected log file path")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !bytes.Contains(content, []byte("configured record")) {
		t.Fatalf("expected record in log file, got %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithSubject(ctx, "golang")
	ctx = services.WithQuestionID(ctx, "golang_00042")
	ctx = services.WithStage(ctx, "encode")

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", ConsoleOut: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithContext(ctx, logger).Info("contextual record")

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	want := map[string]string{
		logging.FieldRunID:      "run-1",
		logging.FieldSubject:    "golang",
		logging.FieldQuestionID: "golang_00042",
		logging.FieldStage:      "encode",
	}
	for key, expected := range want {
		if got, _ := record[key].(string); got != expected {
			t.Fatalf("field %s = %v, want %s", key, record[key], expected)
		}
	}
}

func TestCleanupOldLogsPrunes(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.log")
	keep := filepath.Join(dir, "keep.log")
	for _, path := range []string{old, keep} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		past := time.Now().AddDate(0, 0, -10)
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("age %s: %v", path, err)
		}
	}

	logging.CleanupOldLogs(logging.NewNop(), 7, logging.RetentionTarget{
		Dir:     dir,
		Pattern: "*.log",
		Exclude: []string{keep},
	})

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("expected aged log removed")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("expected excluded log kept: %v", err)
	}
}
