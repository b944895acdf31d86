package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var versionCommand = exec.CommandContext

// ResolveFFmpegPath resolves the configured ffmpeg command to an absolute
// path when it is on PATH, so status output shows exactly which binary the
// encoder will run. Unresolvable commands are returned unchanged and left
// for CheckBinaries to flag.
func ResolveFFmpegPath(configured string) string {
	return resolveBinary(configured, "ffmpeg")
}

// ResolveFFprobePath resolves the configured ffprobe command the same way.
func ResolveFFprobePath(configured string) string {
	return resolveBinary(configured, "ffprobe")
}

func resolveBinary(configured, fallback string) string {
	command := strings.TrimSpace(configured)
	if command == "" {
		command = fallback
	}
	if resolved, err := exec.LookPath(command); err == nil {
		return resolved
	}
	return command
}

// BinaryVersion runs "<command> -version" and returns the first line of
// output, which for the ffmpeg family carries the version and build string.
func BinaryVersion(ctx context.Context, command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("version probe: empty command")
	}
	output, err := versionCommand(ctx, command, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("version probe %q: %w", command, err)
	}
	line, _, _ := strings.Cut(string(output), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("version probe %q: empty output", command)
	}
	return line, nil
}
