package model

// Comment is a single discussion comment as returned by the host API.
// CreatedAt is kept as the raw RFC3339 string from the payload; it is
// parsed only where a parse failure carries meaning (the reset window).
type Comment struct {
	Author    string
	Body      string
	CreatedAt string
}

// ChangedFile describes one file touched by a pull request.
type ChangedFile struct {
	Filename  string
	Status    string
	Additions int
	Deletions int
	Changes   int
}

// DiscussionContext is everything one run knows about the issue or pull
// request it is processing. It is built fresh per run and never persisted.
type DiscussionContext struct {
	Title               string
	Body                string
	Author              string
	Comments            []Comment
	ChangedFiles        []ChangedFile
	OriginalDescription string
	IsPullRequest       bool
}

// ResultType discriminates the agent result variants.
type ResultType string

const (
	ResultQuestion ResultType = "question"
	ResultComplete ResultType = "complete"
	ResultNoChange ResultType = "no_change"
)

// CliResult is the typed agent reply. Type determines which of the other
// fields are meaningful: question carries Content, complete carries Body
// plus optional Comment/Title, no_change carries nothing.
type CliResult struct {
	Type    ResultType
	Content string
	Body    string
	Comment string
	Title   string
}

// ParseResult pairs a CliResult with a flag telling whether it came from a
// genuine structured reply or a best-effort fallback.
type ParseResult struct {
	Result      CliResult
	ParseFailed bool
}

// CommandKind is the comment command variant.
type CommandKind string

const (
	CommandNone  CommandKind = "none"
	CommandHelp  CommandKind = "help"
	CommandRun   CommandKind = "run"
	CommandReset CommandKind = "reset"
)

// RunDecision is the classifier verdict for one inbound event.
type RunDecision struct {
	ShouldRun        bool
	Reason           string
	Command          CommandKind
	CommandCreatedAt string
}
