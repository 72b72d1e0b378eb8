package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExecuteCapturesBothChannels(t *testing.T) {
	r := Runner{Bin: "sh", Args: []string{"-c", "cat; echo warn >&2"}, Timeout: 30 * time.Second}
	res := r.Execute(context.Background(), `{"type":"no_change"}`)
	if err := res.Err(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Output, `"no_change"`) {
		t.Fatalf("stdin was not echoed to stdout: %q", res.Output)
	}
	if !strings.Contains(res.Diagnostics, "warn") {
		t.Fatalf("stderr was not drained: %q", res.Diagnostics)
	}
}

func TestExecuteTimeoutKillsProcess(t *testing.T) {
	r := Runner{Bin: "sh", Args: []string{"-c", "sleep 30"}, Timeout: 100 * time.Millisecond}
	res := r.Execute(context.Background(), "")
	if !res.TimedOut {
		t.Fatalf("expected timeout, got %+v", res)
	}
	if !errors.Is(res.Err(), ErrTimeout) {
		t.Fatalf("timeout must be distinct: %v", res.Err())
	}
	if res.Duration > 5*time.Second {
		t.Fatalf("process was not killed promptly: %s", res.Duration)
	}
}

func TestExecuteNonZeroExitKeepsDiagnostics(t *testing.T) {
	r := Runner{Bin: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}, Timeout: 30 * time.Second}
	res := r.Execute(context.Background(), "")
	err := res.Err()
	if err == nil || errors.Is(err, ErrTimeout) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("diagnostics lost from error: %v", err)
	}
}

func TestExecuteCapsOutput(t *testing.T) {
	r := Runner{Bin: "sh", Args: []string{"-c", "printf '%s' aaaaaaaaaaaaaaaaaaaa"}, Timeout: 30 * time.Second, MaxOutput: 10}
	res := r.Execute(context.Background(), "")
	if err := res.Err(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Output, "truncated") || len(res.Output) >= 30 {
		t.Fatalf("output was not capped: %q", res.Output)
	}
}

func TestLogFileWritten(t *testing.T) {
	r := Runner{Bin: "sh", Args: []string{"-c", "echo hi"}, WorkDir: t.TempDir(), Timeout: 30 * time.Second}
	res := r.Execute(context.Background(), "")
	if res.LogPath == "" {
		t.Fatal("expected a log path")
	}
}

func TestValidateSafety(t *testing.T) {
	if err := ValidateSafety("codex", "exec -"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateSafety("sh", "-c rm -rf /"); err == nil {
		t.Fatal("expected danger detection")
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry([]Definition{{Name: "codex", Bin: "codex", Args: []string{"exec", "-"}, TimeoutMin: 5}})
	def, err := reg.Resolve("codex")
	if err != nil {
		t.Fatal(err)
	}
	if def.Timeout() != 5*time.Minute {
		t.Fatalf("unexpected timeout: %s", def.Timeout())
	}
	if _, err := reg.Resolve("claude"); err == nil {
		t.Fatal("unknown agent must be rejected")
	}
}
