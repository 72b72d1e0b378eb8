package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAgents(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "agents.yaml")
	doc := `agents:
  - name: codex
    bin: codex
    args: ["exec", "-"]
    timeout_min: 10
  - name: claude
    bin: claude
    args: ["-p"]
`
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	agents, err := LoadAgents(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(agents) != 2 || agents[0].Name != "codex" || agents[0].TimeoutMin != 10 {
		t.Fatalf("unexpected agents: %+v", agents)
	}
	if len(agents[1].Args) != 1 || agents[1].Args[0] != "-p" {
		t.Fatalf("unexpected args: %+v", agents[1])
	}
}

func TestLoadAgentsRejectsEmpty(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "agents.yaml")
	if err := os.WriteFile(p, []byte("agents: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAgents(p); err == nil {
		t.Fatal("expected error for empty agents list")
	}
}

func TestLoadRuntimeRequiresToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_REPOSITORY", "octo/spec")
	t.Setenv("GITHUB_EVENT_NAME", "issues")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	if _, err := LoadRuntime(); err == nil {
		t.Fatal("expected missing token error")
	}
}

func TestLoadRuntime(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_REPOSITORY", "octo/spec")
	t.Setenv("GITHUB_EVENT_NAME", "issue_comment")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("GITHUB_RUN_ID", "42")
	t.Setenv("GITHUB_SERVER_URL", "https://github.com")
	t.Setenv("GARDENER_WORK_DIR", t.TempDir())
	cfg, err := LoadRuntime()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Owner != "octo" || cfg.Repo != "spec" {
		t.Fatalf("unexpected repo split: %+v", cfg)
	}
	if cfg.RunURL != "https://github.com/octo/spec/actions/runs/42" {
		t.Fatalf("unexpected run url: %q", cfg.RunURL)
	}
	if cfg.AgentName != "codex" {
		t.Fatalf("unexpected default agent: %q", cfg.AgentName)
	}
}
