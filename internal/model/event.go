package model

// Event payload shapes for the webhook events the runner reacts to. Only
// the fields the classifier reads are declared.

type EventUser struct {
	Login string `json:"login"`
}

type EventIssue struct {
	Number int       `json:"number"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	User   EventUser `json:"user"`
	// Non-nil when the "issue" is really a pull request.
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

type EventComment struct {
	Body      string    `json:"body"`
	User      EventUser `json:"user"`
	CreatedAt string    `json:"created_at"`
}

// EventPayload is the union of the issue, pull_request and issue_comment
// payloads. Exactly one of Issue/PullRequest is set per event.
type EventPayload struct {
	Action      string        `json:"action"`
	Issue       *EventIssue   `json:"issue,omitempty"`
	PullRequest *EventIssue   `json:"pull_request,omitempty"`
	Comment     *EventComment `json:"comment,omitempty"`
}

// Item returns whichever of Issue or PullRequest the payload carries.
func (p EventPayload) Item() *EventIssue {
	if p.PullRequest != nil {
		return p.PullRequest
	}
	return p.Issue
}

// Number is the issue or pull request number the event refers to.
func (p EventPayload) Number() int {
	if it := p.Item(); it != nil {
		return it.Number
	}
	return 0
}
