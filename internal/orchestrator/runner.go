package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"spec-gardener/internal/agent"
	"spec-gardener/internal/classify"
	"spec-gardener/internal/config"
	"spec-gardener/internal/dispatch"
	"spec-gardener/internal/gh"
	"spec-gardener/internal/model"
	"spec-gardener/internal/parser"
	"spec-gardener/internal/prompt"
	"spec-gardener/internal/report"
	"spec-gardener/internal/reset"
)

type App struct {
	cfg      config.Runtime
	registry *agent.Registry
	host     *gh.Client
}

func New(cfg config.Runtime, agents []agent.Definition) *App {
	return &App{cfg: cfg, registry: agent.NewRegistry(agents)}
}

// Process handles exactly one inbound event. Any failure after the host
// client exists triggers a best-effort error notification on the item;
// failure to post that notification is only logged.
func (a *App) Process(ctx context.Context) error {
	err := a.run(ctx)
	if err != nil && a.host != nil {
		if nerr := a.host.PostComment(ctx, report.ErrorNotice(a.cfg.RunURL, err)); nerr != nil {
			log.Printf("post error notification failed: %v", nerr)
		}
	}
	return err
}

func (a *App) run(ctx context.Context) error {
	payload, err := loadPayload(a.cfg.EventPath)
	if err != nil {
		return err
	}

	decision := classify.Classify(a.cfg.EventName, payload)
	if !decision.ShouldRun {
		log.Printf("skipping: %s", decision.Reason)
		return nil
	}

	number := payload.Number()
	if number == 0 {
		return fmt.Errorf("event payload carries no item number")
	}
	isPR := classify.IsPullRequest(a.cfg.EventName, payload)
	a.host = gh.NewClient(a.cfg.Token, a.cfg.Owner, a.cfg.Repo, number, isPR)

	// Static guidance: no agent resolution, no context fetch.
	if decision.Command == model.CommandHelp {
		return a.host.PostComment(ctx, report.Help())
	}

	// Unknown agent is a configuration error; reject before fetching
	// anything from the host.
	def, err := a.registry.Resolve(a.cfg.AgentName)
	if err != nil {
		return err
	}
	if err := agent.ValidateSafety(def.Bin, strings.Join(def.Args, " ")); err != nil {
		return err
	}

	dctx, err := a.host.FetchContext(ctx)
	if err != nil {
		return err
	}
	dctx.Body = report.StripFooter(dctx.Body)

	if decision.Command == model.CommandReset {
		dctx, err = reset.Apply(dctx, decision.CommandCreatedAt, func() ([]string, error) {
			return a.host.BodyEditHistory(ctx)
		})
		if err != nil {
			log.Printf("edit history unavailable, using current body: %v", err)
		}
	}

	runner := agent.Runner{
		Bin:       def.Bin,
		Args:      def.Args,
		WorkDir:   filepath.Join(a.cfg.WorkDir, "logs"),
		Timeout:   def.Timeout(),
		MaxOutput: a.cfg.MaxOutput,
	}
	run := runner.Execute(ctx, prompt.Build(dctx, decision.Command))
	log.Printf("agent %s run=%s duration=%s log=%s", a.cfg.AgentName, run.RunID, run.Duration.Round(1e9), run.LogPath)
	if err := run.Err(); err != nil {
		return err
	}

	parsed := parser.Parse(run.Output)
	if parsed.ParseFailed {
		log.Printf("agent output was not structured; falling back to question (run=%s)", run.RunID)
	}
	return dispatch.Dispatch(ctx, parsed.Result, dctx, a.host)
}

func loadPayload(path string) (model.EventPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.EventPayload{}, fmt.Errorf("read event payload: %w", err)
	}
	var payload model.EventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return model.EventPayload{}, fmt.Errorf("decode event payload: %w", err)
	}
	return payload, nil
}
