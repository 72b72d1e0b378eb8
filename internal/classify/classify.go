package classify

import (
	"fmt"
	"strings"

	"spec-gardener/internal/model"
	"spec-gardener/internal/report"
)

// Command tokens recognized at the start of a trimmed comment line. Matching
// is case-sensitive and longest-match wins.
const (
	TokenRun   = "/spec-gardener"
	TokenReset = "/spec-gardener reset"
	TokenHelp  = "/spec-gardener help"
)

// Classify decides whether an inbound webhook event should trigger a run,
// and which command variant applies.
func Classify(eventName string, payload model.EventPayload) model.RunDecision {
	switch eventName {
	case "issues", "pull_request":
		return classifyItemEvent(payload)
	case "issue_comment":
		return classifyCommentEvent(payload)
	}
	return skip(fmt.Sprintf("event %q is not handled", eventName))
}

// IsPullRequest reports whether the payload refers to a pull request: either
// a pull_request event, or an issue event whose item carries PR linkage.
func IsPullRequest(eventName string, payload model.EventPayload) bool {
	if eventName == "pull_request" || payload.PullRequest != nil {
		return true
	}
	return payload.Issue != nil && payload.Issue.PullRequest != nil
}

func classifyItemEvent(payload model.EventPayload) model.RunDecision {
	item := payload.Item()
	if item == nil {
		return skip("payload carries no issue or pull request")
	}
	switch payload.Action {
	case "opened":
		return model.RunDecision{ShouldRun: true, Command: model.CommandRun}
	case "edited":
		// A body that already carries the footer marker was last written
		// by this system; re-running on our own edit would loop forever.
		if report.ContainsFooter(item.Body) {
			return skip("body was last written by spec-gardener; skipping to prevent a loop")
		}
		return model.RunDecision{ShouldRun: true, Command: model.CommandRun}
	}
	return skip(fmt.Sprintf("action %q is not handled", payload.Action))
}

func classifyCommentEvent(payload model.EventPayload) model.RunDecision {
	if payload.Action != "created" {
		return skip(fmt.Sprintf("comment action %q is not handled", payload.Action))
	}
	if payload.Comment == nil {
		return skip("payload carries no comment")
	}
	cmd := ParseCommand(payload.Comment.Body)
	switch cmd {
	case model.CommandNone:
		return skip("comment is not a spec-gardener command")
	case model.CommandHelp:
		return model.RunDecision{ShouldRun: true, Command: model.CommandHelp}
	case model.CommandReset:
		return model.RunDecision{
			ShouldRun:        true,
			Command:          model.CommandReset,
			CommandCreatedAt: payload.Comment.CreatedAt,
		}
	}
	return model.RunDecision{ShouldRun: true, Command: model.CommandRun}
}

// ParseCommand scans a comment body for a command token at the start of a
// trimmed line. The longest matching form wins, so "/spec-gardener reset"
// is never mistaken for the bare run command.
func ParseCommand(body string) model.CommandKind {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case matchesToken(line, TokenReset):
			return model.CommandReset
		case matchesToken(line, TokenHelp):
			return model.CommandHelp
		case matchesToken(line, TokenRun):
			return model.CommandRun
		}
	}
	return model.CommandNone
}

// matchesToken reports whether line starts with tok as a whole token: the
// line is exactly the token, or the token followed by whitespace. A glued
// suffix such as "/spec-gardenerific" is not a command.
func matchesToken(line, tok string) bool {
	if !strings.HasPrefix(line, tok) {
		return false
	}
	rest := line[len(tok):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

func skip(reason string) model.RunDecision {
	return model.RunDecision{Command: model.CommandNone, Reason: reason}
}
