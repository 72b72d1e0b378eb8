package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"spec-gardener/internal/agent"
)

// Runtime is the per-run configuration, read from the environment the way
// GitHub Actions provides it.
type Runtime struct {
	Token      string
	Owner      string
	Repo       string
	EventName  string
	EventPath  string
	AgentName  string
	AgentsFile string
	WorkDir    string
	MaxOutput  int
	RunURL     string
}

// LoadRuntime reads configuration from the environment. GITHUB_TOKEN,
// GITHUB_REPOSITORY, GITHUB_EVENT_NAME and GITHUB_EVENT_PATH are required.
func LoadRuntime() (Runtime, error) {
	cfg := Runtime{
		Token:      os.Getenv("GITHUB_TOKEN"),
		EventName:  os.Getenv("GITHUB_EVENT_NAME"),
		EventPath:  os.Getenv("GITHUB_EVENT_PATH"),
		AgentName:  getenvDefault("GARDENER_AGENT", "codex"),
		AgentsFile: getenvDefault("GARDENER_AGENTS_FILE", "./agents.yaml"),
		WorkDir:    getenvDefault("GARDENER_WORK_DIR", "./gardener-data"),
		MaxOutput:  readIntEnv("GARDENER_MAX_OUTPUT", 64000),
		RunURL:     runURL(),
	}
	if cfg.Token == "" {
		return Runtime{}, errors.New("GITHUB_TOKEN must be set")
	}
	repo := os.Getenv("GITHUB_REPOSITORY")
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return Runtime{}, fmt.Errorf("GITHUB_REPOSITORY must be owner/repo, got %q", repo)
	}
	cfg.Owner, cfg.Repo = owner, name
	if cfg.EventName == "" || cfg.EventPath == "" {
		return Runtime{}, errors.New("GITHUB_EVENT_NAME and GITHUB_EVENT_PATH must be set")
	}
	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return Runtime{}, fmt.Errorf("create workdir: %w", err)
	}
	if abs, err := filepath.Abs(cfg.WorkDir); err == nil {
		cfg.WorkDir = abs
	}
	return cfg, nil
}

// LoadAgents reads the agent registry file.
func LoadAgents(path string) ([]agent.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc struct {
		Agents []agent.Definition `yaml:"agents"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Agents) == 0 {
		return nil, fmt.Errorf("%s must contain an agents list", path)
	}
	return doc.Agents, nil
}

// runURL builds the Actions run link used in error notifications. Empty
// when the run context variables are not present.
func runURL() string {
	server := getenvDefault("GITHUB_SERVER_URL", "https://github.com")
	repo := os.Getenv("GITHUB_REPOSITORY")
	runID := os.Getenv("GITHUB_RUN_ID")
	if repo == "" || runID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/actions/runs/%s", server, repo, runID)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
