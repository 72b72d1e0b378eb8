package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"spec-gardener/internal/report"
)

// ErrTimeout marks runs killed by the execution deadline, distinct from a
// non-zero exit.
var ErrTimeout = errors.New("agent execution timed out")

// Runner invokes one configured agent binary with a prompt on stdin.
type Runner struct {
	Bin       string
	Args      []string
	WorkDir   string
	Timeout   time.Duration
	MaxOutput int
}

// Result is the fully drained outcome of one agent invocation. Output and
// Diagnostics are captured even when the run fails, so error detail is
// never lost.
type Result struct {
	RunID       string
	Output      string
	Diagnostics string
	LogPath     string
	Duration    time.Duration
	TimedOut    bool
	ExitErr     error
}

// Err folds the outcome into a single error: ErrTimeout on deadline, the
// exit error otherwise, nil on success.
func (r Result) Err() error {
	if r.TimedOut {
		return fmt.Errorf("%w after %s: %s", ErrTimeout, r.Duration.Round(time.Second), strings.TrimSpace(r.Diagnostics))
	}
	if r.ExitErr != nil {
		return fmt.Errorf("agent exited: %w: %s", r.ExitErr, strings.TrimSpace(r.Diagnostics))
	}
	return nil
}

var blockedKeywords = []string{"rm -rf", "git push --force", "sudo ", "mkfs", "shutdown", "reboot"}

// ValidateSafety rejects prompt material containing known-dangerous shell
// fragments before it ever reaches the agent.
func ValidateSafety(parts ...string) error {
	for _, part := range parts {
		lower := strings.ToLower(part)
		for _, kw := range blockedKeywords {
			if strings.Contains(lower, kw) {
				return fmt.Errorf("instruction rejected due to dangerous keyword: %s", kw)
			}
		}
	}
	return nil
}

// Execute runs the agent with the prompt on stdin and races its completion
// against the timeout. On expiry the process is killed and the result is
// marked TimedOut; on normal completion the timer is stopped. Both output
// channels are captured in full either way.
func (r Runner) Execute(ctx context.Context, prompt string) Result {
	start := time.Now()
	result := Result{RunID: uuid.NewString()[:8]}

	if r.WorkDir != "" {
		if err := os.MkdirAll(r.WorkDir, 0o755); err != nil {
			result.ExitErr = err
			return result
		}
		result.LogPath = filepath.Join(r.WorkDir, fmt.Sprintf("run-%s.log", result.RunID))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(r.Bin, r.Args...)
	cmd.Stdin = strings.NewReader(prompt)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		result.ExitErr = fmt.Errorf("start %s: %w", r.Bin, err)
		return result
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		result.ExitErr = err
	case <-timer.C:
		_ = cmd.Process.Kill()
		<-done // drain: Wait flushes both buffers before returning
		result.TimedOut = true
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		result.ExitErr = ctx.Err()
	}

	result.Duration = time.Since(start)
	result.Output = report.Truncate(stdout.String(), r.MaxOutput)
	result.Diagnostics = report.Truncate(stderr.String(), r.MaxOutput)
	if result.LogPath != "" {
		_ = os.WriteFile(result.LogPath, append(stdout.Bytes(), stderr.Bytes()...), 0o644)
	}
	return result
}
