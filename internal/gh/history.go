package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
)

// The REST API has no surface for body edit history, so this one call goes
// through GraphQL directly.
const historyQuery = `query($owner: String!, $repo: String!, $number: Int!) {
  repository(owner: $owner, name: $repo) {
    issueOrPullRequest(number: $number) {
      ... on Issue {
        userContentEdits(first: 100) { nodes { diff editedAt } }
      }
      ... on PullRequest {
        userContentEdits(first: 100) { nodes { diff editedAt } }
      }
    }
  }
}`

// BodyEditHistory returns the item's historical body snapshots ordered
// oldest first. An item that was never edited yields an empty slice.
func (c *Client) BodyEditHistory(ctx context.Context) ([]string, error) {
	payload := map[string]any{
		"query": historyQuery,
		"variables": map[string]any{
			"owner":  c.owner,
			"repo":   c.repo,
			"number": c.number,
		},
	}
	data, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphqlURL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch edit history: %w", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch edit history status=%d body=%s", res.StatusCode, string(body))
	}

	var out struct {
		Data struct {
			Repository struct {
				IssueOrPullRequest struct {
					UserContentEdits struct {
						Nodes []struct {
							Diff     string `json:"diff"`
							EditedAt string `json:"editedAt"`
						} `json:"nodes"`
					} `json:"userContentEdits"`
				} `json:"issueOrPullRequest"`
			} `json:"repository"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode edit history: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("edit history api error: %s", out.Errors[0].Message)
	}

	nodes := out.Data.Repository.IssueOrPullRequest.UserContentEdits.Nodes
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].EditedAt < nodes[j].EditedAt })
	snapshots := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.Diff == "" {
			continue
		}
		snapshots = append(snapshots, n.Diff)
	}
	return snapshots, nil
}
