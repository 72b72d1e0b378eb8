package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"spec-gardener/internal/model"
	"spec-gardener/internal/report"
)

// EmptyOutputQuestion is the question content used when the agent produced
// no output at all.
const EmptyOutputQuestion = "No output received from agent."

var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// envelope is the raw decoded shape before shape recognition. Both the
// current discriminant field and its legacy alias are accepted.
type envelope struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Content string `json:"content"`
	Body    string `json:"body"`
	Comment string `json:"comment"`
	Title   string `json:"title"`
}

// Parse turns raw agent output into a typed result. It is total: malformed
// or unstructured input degrades to a question carrying the raw text, with
// ParseFailed set so the caller can log the degraded interpretation.
func Parse(raw string) model.ParseResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback(EmptyOutputQuestion)
	}

	if res, ok := decode(trimmed); ok {
		return model.ParseResult{Result: res}
	}

	candidate, ok := extractCandidate(trimmed)
	if ok {
		if res, ok := decode(candidate); ok {
			return model.ParseResult{Result: res}
		}
		if res, ok := decode(repair(candidate)); ok {
			return model.ParseResult{Result: res}
		}
	}

	return fallback(trimmed)
}

func fallback(content string) model.ParseResult {
	return model.ParseResult{
		Result:      model.CliResult{Type: model.ResultQuestion, Content: content},
		ParseFailed: true,
	}
}

// extractCandidate narrows text to the substring between the first "{" and
// the last "}", recovering replies wrapped in prose or a fenced code block.
func extractCandidate(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// repair applies the two lightweight syntactic fixes to a candidate: drop
// trailing commas before a closing brace or bracket, and rewrite single
// quotes to double quotes when the candidate is single-quoted throughout.
// It never touches text containing double quotes, so legitimately quoted
// content cannot be corrupted.
func repair(candidate string) string {
	out := trailingCommaPattern.ReplaceAllString(candidate, "$1")
	if !strings.Contains(out, `"`) && strings.Contains(out, `'`) {
		out = strings.ReplaceAll(out, `'`, `"`)
	}
	return out
}

// decode attempts a structured decode plus shape recognition. An input that
// decodes but does not match a recognized shape reports !ok so the caller
// keeps walking the fallback chain.
func decode(text string) (model.CliResult, bool) {
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return model.CliResult{}, false
	}
	return recognize(env)
}

func recognize(env envelope) (model.CliResult, bool) {
	tag := env.Type
	if tag == "" {
		tag = env.Status
	}
	switch tag {
	case string(model.ResultQuestion):
		if strings.TrimSpace(env.Content) == "" {
			return model.CliResult{}, false
		}
		return model.CliResult{Type: model.ResultQuestion, Content: env.Content}, true
	case string(model.ResultComplete):
		if strings.TrimSpace(env.Body) == "" {
			return model.CliResult{}, false
		}
		comment := env.Comment
		if strings.TrimSpace(comment) == "" {
			comment = report.DefaultCompletionComment
		}
		res := model.CliResult{Type: model.ResultComplete, Body: env.Body, Comment: comment}
		if strings.TrimSpace(env.Title) != "" {
			res.Title = env.Title
		}
		return res, true
	case string(model.ResultNoChange):
		return model.CliResult{Type: model.ResultNoChange}, true
	}
	return model.CliResult{}, false
}
