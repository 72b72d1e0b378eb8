package dispatch

import (
	"context"
	"fmt"
	"strings"

	"spec-gardener/internal/model"
	"spec-gardener/internal/report"
)

// Host is the side of the hosting platform the dispatcher needs: three
// idempotent mutations on the item being processed.
type Host interface {
	AddReaction(ctx context.Context, reaction string) error
	PostComment(ctx context.Context, body string) error
	// UpdateItem rewrites the body; title is only sent when non-nil.
	UpdateItem(ctx context.Context, body string, title *string) error
}

// Dispatch maps a typed agent result to exactly one host effect. It never
// looks at ParseFailed: a recovered fallback question is posted the same
// way a genuine one is.
func Dispatch(ctx context.Context, result model.CliResult, dctx model.DiscussionContext, host Host) error {
	switch result.Type {
	case model.ResultNoChange:
		if err := host.AddReaction(ctx, "+1"); err != nil {
			return fmt.Errorf("add reaction: %w", err)
		}
		return nil
	case model.ResultQuestion:
		if err := host.PostComment(ctx, report.Question(dctx.Author, result.Content)); err != nil {
			return fmt.Errorf("post question: %w", err)
		}
		return nil
	case model.ResultComplete:
		return dispatchComplete(ctx, result, dctx, host)
	}
	return fmt.Errorf("unhandled result type %q", result.Type)
}

func dispatchComplete(ctx context.Context, result model.CliResult, dctx model.DiscussionContext, host Host) error {
	body := result.Body + report.Footer()

	var title *string
	if result.Title != "" && NormalizeTitle(result.Title) != NormalizeTitle(dctx.Title) {
		t := result.Title
		title = &t
	}

	if err := host.UpdateItem(ctx, body, title); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	comment := result.Comment
	if comment == "" {
		comment = report.DefaultCompletionComment
	}
	if err := host.PostComment(ctx, report.Summary(dctx.Author, comment)); err != nil {
		return fmt.Errorf("post summary: %w", err)
	}
	return nil
}

// NormalizeTitle collapses internal whitespace runs to single spaces and
// trims the ends, so cosmetic formatting differences never trigger a title
// update.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}
