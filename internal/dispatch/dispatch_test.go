package dispatch

import (
	"context"
	"strings"
	"testing"

	"spec-gardener/internal/model"
	"spec-gardener/internal/report"
)

type fakeHost struct {
	reactions []string
	comments  []string
	bodies    []string
	titles    []*string
}

func (f *fakeHost) AddReaction(_ context.Context, r string) error {
	f.reactions = append(f.reactions, r)
	return nil
}

func (f *fakeHost) PostComment(_ context.Context, body string) error {
	f.comments = append(f.comments, body)
	return nil
}

func (f *fakeHost) UpdateItem(_ context.Context, body string, title *string) error {
	f.bodies = append(f.bodies, body)
	f.titles = append(f.titles, title)
	return nil
}

func TestDispatchNoChange(t *testing.T) {
	host := &fakeHost{}
	err := Dispatch(context.Background(), model.CliResult{Type: model.ResultNoChange}, model.DiscussionContext{}, host)
	if err != nil {
		t.Fatal(err)
	}
	if len(host.reactions) != 1 || host.reactions[0] != "+1" {
		t.Fatalf("expected a single +1 reaction: %+v", host.reactions)
	}
	if len(host.comments) != 0 || len(host.bodies) != 0 {
		t.Fatal("no_change must not post or edit")
	}
}

func TestDispatchQuestion(t *testing.T) {
	host := &fakeHost{}
	result := model.CliResult{Type: model.ResultQuestion, Content: "Which region?"}
	dctx := model.DiscussionContext{Author: "alice"}
	if err := Dispatch(context.Background(), result, dctx, host); err != nil {
		t.Fatal(err)
	}
	if len(host.comments) != 1 {
		t.Fatalf("expected one comment, got %d", len(host.comments))
	}
	c := host.comments[0]
	if !strings.Contains(c, "@alice") || !strings.Contains(c, "Which region?") {
		t.Fatalf("unexpected comment: %q", c)
	}
	if !strings.Contains(c, report.FooterMarker) || !strings.Contains(c, report.HelpHint) {
		t.Fatalf("comment must carry hint and footer marker: %q", c)
	}
}

func TestDispatchCompleteUpdatesBodyAndTitle(t *testing.T) {
	host := &fakeHost{}
	result := model.CliResult{Type: model.ResultComplete, Body: "Refined.", Comment: "done", Title: "Better title"}
	dctx := model.DiscussionContext{Author: "bob", Title: "old title"}
	if err := Dispatch(context.Background(), result, dctx, host); err != nil {
		t.Fatal(err)
	}
	if len(host.bodies) != 1 || !strings.HasPrefix(host.bodies[0], "Refined.") {
		t.Fatalf("unexpected bodies: %+v", host.bodies)
	}
	if !strings.Contains(host.bodies[0], report.FooterMarker) {
		t.Fatal("new body must carry the footer marker")
	}
	if host.titles[0] == nil || *host.titles[0] != "Better title" {
		t.Fatalf("expected title update: %+v", host.titles)
	}
	if len(host.comments) != 1 || !strings.Contains(host.comments[0], "done") {
		t.Fatalf("unexpected summary: %+v", host.comments)
	}
}

func TestDispatchCompleteTitleNoOp(t *testing.T) {
	host := &fakeHost{}
	result := model.CliResult{Type: model.ResultComplete, Body: "b", Title: "  Fix   the   cache  "}
	dctx := model.DiscussionContext{Author: "bob", Title: "Fix the cache"}
	if err := Dispatch(context.Background(), result, dctx, host); err != nil {
		t.Fatal(err)
	}
	if host.titles[0] != nil {
		t.Fatalf("normalized-equal title must not be sent: %q", *host.titles[0])
	}
	if len(host.bodies) != 1 {
		t.Fatal("body update is unconditional")
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := NormalizeTitle("  a \t b\n c  "); got != "a b c" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
