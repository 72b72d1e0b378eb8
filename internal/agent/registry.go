package agent

import (
	"fmt"
	"time"
)

// Definition describes one named agent from agents.yaml.
type Definition struct {
	Name       string   `yaml:"name"`
	Bin        string   `yaml:"bin"`
	Args       []string `yaml:"args"`
	TimeoutMin int      `yaml:"timeout_min"`
}

// Registry resolves agent names to runnable definitions.
type Registry struct {
	agents map[string]Definition
}

func NewRegistry(items []Definition) *Registry {
	r := &Registry{agents: make(map[string]Definition, len(items))}
	for _, it := range items {
		r.agents[it.Name] = it
	}
	return r
}

// Resolve returns the definition for name. An unknown name is a fatal
// configuration error and must be rejected before any context fetch.
func (r *Registry) Resolve(name string) (Definition, error) {
	d, ok := r.agents[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown agent %q", name)
	}
	if d.Bin == "" {
		return Definition{}, fmt.Errorf("agent %q has no binary configured", name)
	}
	return d, nil
}

// Timeout returns the configured execution deadline, defaulting when unset.
func (d Definition) Timeout() time.Duration {
	if d.TimeoutMin <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(d.TimeoutMin) * time.Minute
}
