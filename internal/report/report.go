package report

import (
	"fmt"
	"strings"
)

// FooterMarker is the durable marker appended to every body and comment the
// system writes. Its presence in a body is the sole signal that the body was
// last written by spec-gardener.
const FooterMarker = "<!-- spec-gardener -->"

// DefaultCompletionComment is posted when a complete result carries no
// comment of its own.
const DefaultCompletionComment = "I've refined the specification based on the discussion above. Please review the updated description."

// HelpHint is appended to every question and summary comment.
const HelpHint = "Reply `/spec-gardener` to continue refining, `/spec-gardener reset` to start over from your original description, or `/spec-gardener help` for details."

// Footer returns the footer block appended to bodies and comments.
func Footer() string {
	return "\n\n---\n_Maintained by spec-gardener._\n" + FooterMarker
}

// ContainsFooter reports whether text was last written by spec-gardener.
func ContainsFooter(text string) bool {
	return strings.Contains(text, FooterMarker)
}

// StripFooter removes the footer block from a body, returning the trimmed
// human-visible part. Everything from the footer's separator rule onward is
// dropped when the marker is present.
func StripFooter(body string) string {
	if !ContainsFooter(body) {
		return strings.TrimSpace(body)
	}
	if i := strings.LastIndex(body, "\n---\n"); i >= 0 && strings.Contains(body[i:], FooterMarker) {
		return strings.TrimSpace(body[:i])
	}
	return strings.TrimSpace(strings.ReplaceAll(body, FooterMarker, ""))
}

// Question builds the comment posted when the agent needs more input.
func Question(author, content string) string {
	return fmt.Sprintf("@%s %s\n\n%s%s", author, content, HelpHint, Footer())
}

// Summary builds the comment posted alongside a refined description.
func Summary(author, text string) string {
	return fmt.Sprintf("@%s %s\n\n%s%s", author, text, HelpHint, Footer())
}

// Help is the static reply to /spec-gardener help. No agent call is made.
func Help() string {
	return `**spec-gardener commands**

- ` + "`/spec-gardener`" + ` — refine the description using the discussion so far
- ` + "`/spec-gardener reset`" + ` — discard prior refinements and start from your original description plus comments made after the reset
- ` + "`/spec-gardener help`" + ` — show this message

The refined description replaces the issue body; your original text is recovered from the edit history when you reset.` + Footer()
}

// ErrorNotice builds the best-effort failure comment, linking the run's
// diagnostics when a run URL is known.
func ErrorNotice(runURL string, err error) string {
	msg := fmt.Sprintf("spec-gardener hit an error and could not finish this run: %v", err)
	if runURL != "" {
		msg += fmt.Sprintf("\n\n[View run logs](%s)", runURL)
	}
	return msg + Footer()
}

// Truncate caps s at max bytes for log lines and prompts.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "\n... (truncated)"
}
