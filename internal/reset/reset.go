package reset

import (
	"time"

	"spec-gardener/internal/model"
	"spec-gardener/internal/report"
)

// HistoryLookup returns the chronologically ordered body snapshots (oldest
// first) recorded for the item being processed.
type HistoryLookup func() ([]string, error)

// ReconstructOriginal recovers the most recent human-authored description.
// It scans the edit history newest-first and skips every snapshot still
// carrying the footer marker, since those were written by a prior automated
// run rather than a human. When the history is unavailable or every snapshot
// is machine-written, the footer-stripped current body is used instead.
func ReconstructOriginal(history []string, currentBody string) string {
	for i := len(history) - 1; i >= 0; i-- {
		if report.ContainsFooter(history[i]) {
			continue
		}
		return history[i]
	}
	return report.StripFooter(currentBody)
}

// Apply re-anchors a discussion context at a reset command: the body becomes
// the reconstructed original description and only comments from the reset
// moment onward are kept. The boundary is inclusive, and comments whose
// timestamps do not parse are dropped. The input context is never mutated;
// when resetCreatedAt is absent or unparseable, a copy is returned as-is.
func Apply(ctx model.DiscussionContext, resetCreatedAt string, lookup HistoryLookup) (model.DiscussionContext, error) {
	anchor, err := time.Parse(time.RFC3339, resetCreatedAt)
	if err != nil {
		return ctx, nil
	}

	out := ctx
	var lookupErr error
	if lookup != nil {
		history, err := lookup()
		if err != nil {
			lookupErr = err
			out.Body = report.StripFooter(ctx.Body)
		} else {
			out.Body = ReconstructOriginal(history, ctx.Body)
		}
	} else {
		out.Body = report.StripFooter(ctx.Body)
	}
	out.OriginalDescription = out.Body

	kept := make([]model.Comment, 0, len(ctx.Comments))
	for _, c := range ctx.Comments {
		ts, err := time.Parse(time.RFC3339, c.CreatedAt)
		if err != nil {
			continue
		}
		if !ts.Before(anchor) {
			kept = append(kept, c)
		}
	}
	out.Comments = kept
	return out, lookupErr
}
