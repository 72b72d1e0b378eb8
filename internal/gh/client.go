package gh

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v68/github"

	"spec-gardener/internal/model"
)

const graphqlURL = "https://api.github.com/graphql"

// Client is the hosting-platform collaborator for one issue or pull
// request. It satisfies dispatch.Host.
type Client struct {
	api    *github.Client
	http   *http.Client
	token  string
	owner  string
	repo   string
	number int
	isPR   bool
}

func NewClient(token, owner, repo string, number int, isPR bool) *Client {
	return &Client{
		api:    github.NewClient(nil).WithAuthToken(token),
		http:   &http.Client{Timeout: 20 * time.Second},
		token:  token,
		owner:  owner,
		repo:   repo,
		number: number,
		isPR:   isPR,
	}
}

// FetchContext assembles the full discussion context: title, body, author,
// all comments in chronological order, and the changed files when the item
// is a pull request.
func (c *Client) FetchContext(ctx context.Context) (model.DiscussionContext, error) {
	issue, _, err := c.api.Issues.Get(ctx, c.owner, c.repo, c.number)
	if err != nil {
		return model.DiscussionContext{}, fmt.Errorf("get issue #%d: %w", c.number, err)
	}
	dctx := model.DiscussionContext{
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		Author:        issue.GetUser().GetLogin(),
		IsPullRequest: c.isPR || issue.IsPullRequest(),
	}

	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		comments, resp, err := c.api.Issues.ListComments(ctx, c.owner, c.repo, c.number, opts)
		if err != nil {
			return model.DiscussionContext{}, fmt.Errorf("list comments: %w", err)
		}
		for _, cm := range comments {
			dctx.Comments = append(dctx.Comments, model.Comment{
				Author:    cm.GetUser().GetLogin(),
				Body:      cm.GetBody(),
				CreatedAt: cm.GetCreatedAt().Format(time.RFC3339),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if dctx.IsPullRequest {
		files, err := c.listChangedFiles(ctx)
		if err != nil {
			return model.DiscussionContext{}, err
		}
		dctx.ChangedFiles = files
	}
	return dctx, nil
}

func (c *Client) listChangedFiles(ctx context.Context) ([]model.ChangedFile, error) {
	var out []model.ChangedFile
	opts := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := c.api.PullRequests.ListFiles(ctx, c.owner, c.repo, c.number, opts)
		if err != nil {
			return nil, fmt.Errorf("list changed files: %w", err)
		}
		for _, f := range files {
			out = append(out, model.ChangedFile{
				Filename:  f.GetFilename(),
				Status:    f.GetStatus(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Changes:   f.GetChanges(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// AddReaction leaves a reaction on the item itself.
func (c *Client) AddReaction(ctx context.Context, reaction string) error {
	_, _, err := c.api.Reactions.CreateIssueReaction(ctx, c.owner, c.repo, c.number, reaction)
	if err != nil {
		return fmt.Errorf("create reaction: %w", err)
	}
	return nil
}

// PostComment adds a comment to the item.
func (c *Client) PostComment(ctx context.Context, body string) error {
	_, _, err := c.api.Issues.CreateComment(ctx, c.owner, c.repo, c.number, &github.IssueComment{Body: github.Ptr(body)})
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// UpdateItem rewrites the body, and the title when one is supplied. Issues
// and pull requests share the issue edit endpoint for both fields.
func (c *Client) UpdateItem(ctx context.Context, body string, title *string) error {
	req := &github.IssueRequest{Body: github.Ptr(body), Title: title}
	_, _, err := c.api.Issues.Edit(ctx, c.owner, c.repo, c.number, req)
	if err != nil {
		return fmt.Errorf("edit issue #%d: %w", c.number, err)
	}
	return nil
}
