package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/eerla/pybenders-sub000/internal/native"
)

var commandContext = exec.CommandContext

const stderrTailLines = 12

// Request describes one ffmpeg invocation. Args carries the complete
// argument list including inputs and the output path; the client executes
// it as given and only observes the run.
type Request struct {
	Args []string
	// LogPath, when set, receives the full stderr transcript prefixed with
	// the executed command line. The file outlives the job's working
	// directory so failed encodes stay diagnosable.
	LogPath string
	// TargetSeconds is the expected output duration, used to derive the
	// percent field of progress updates from out_time.
	TargetSeconds float64
	// Cleanup, when set, has the spawned process registered on it so a job
	// teardown kills a still-running encoder.
	Cleanup    *native.Registry
	OnProgress func(ProgressUpdate)
}

// Client defines encoder behaviour.
type Client interface {
	Encode(ctx context.Context, req Request) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Encode launches ffmpeg and blocks until it exits. Progress blocks on
// stdout are parsed and forwarded; stderr is appended to LogPath and its
// tail folded into the returned error on failure.
func (c *CLI) Encode(ctx context.Context, req Request) error {
	if len(req.Args) == 0 {
		return errors.New("ffmpeg encode: empty argument list")
	}

	var logSink io.WriteCloser
	if req.LogPath != "" {
		file, err := os.OpenFile(req.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open encoder log: %w", err)
		}
		logSink = file
		defer file.Close()
		fmt.Fprintf(file, "# %s %s\n", c.binary, strings.Join(req.Args, " "))
	}

	cmd := commandContext(ctx, c.binary, req.Args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	if req.Cleanup != nil {
		proc := cmd.Process
		req.Cleanup.Register("ffmpeg process", func() error {
			if proc != nil {
				_ = proc.Kill()
			}
			return nil
		})
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	parser := progressParser{target: req.TargetSeconds}
	tail := make([]string, 0, stderrTailLines)

	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			update, complete := parser.ingest(scanner.Text())
			if complete && req.OnProgress != nil {
				req.OnProgress(update)
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
		}
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			if logSink != nil {
				fmt.Fprintln(logSink, line)
			}
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				if len(tail) == stderrTailLines {
					copy(tail, tail[1:])
					tail[len(tail)-1] = trimmed
				} else {
					tail = append(tail, trimmed)
				}
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
		}
	}()

	wg.Wait()
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("ffmpeg encode interrupted: %w", ctxErr)
	}
	if waitErr != nil {
		if detail := strings.Join(tail, "; "); detail != "" {
			return fmt.Errorf("ffmpeg exited: %w (%s)", waitErr, detail)
		}
		return fmt.Errorf("ffmpeg exited: %w", waitErr)
	}
	if scanErr != nil {
		return fmt.Errorf("read ffmpeg output: %w", scanErr)
	}
	return nil
}

var _ Client = (*CLI)(nil)
