package prompt

import (
	"fmt"
	"strings"

	"spec-gardener/internal/model"
)

// Build serializes the discussion context into the single prompt string the
// agent receives. The agent has no other input channel.
func Build(dctx model.DiscussionContext, cmd model.CommandKind) string {
	var b strings.Builder

	b.WriteString(`You are refining a free-text issue description into a precise specification.
Read the discussion below and reply with exactly one JSON object, nothing else:
  {"type":"question","content":"..."}  when you need more input from the author
  {"type":"complete","body":"...","comment":"...","title":"..."}  when you can produce the refined spec (comment and title optional)
  {"type":"no_change"}  when the current description is already sufficient

`)
	if cmd == model.CommandReset {
		b.WriteString("The author asked to start over: the description below is their original text, and only comments made after the reset request are included.\n\n")
	}

	kind := "Issue"
	if dctx.IsPullRequest {
		kind = "Pull request"
	}
	fmt.Fprintf(&b, "%s: %s\nAuthor: @%s\n\nDescription:\n%s\n", kind, dctx.Title, dctx.Author, dctx.Body)

	if len(dctx.ChangedFiles) > 0 {
		b.WriteString("\nChanged files:\n")
		for _, f := range dctx.ChangedFiles {
			fmt.Fprintf(&b, "- %s (%s, +%d -%d)\n", f.Filename, f.Status, f.Additions, f.Deletions)
		}
	}

	if len(dctx.Comments) > 0 {
		b.WriteString("\nDiscussion:\n")
		for _, c := range dctx.Comments {
			fmt.Fprintf(&b, "@%s (%s):\n%s\n\n", c.Author, c.CreatedAt, c.Body)
		}
	}
	return b.String()
}
