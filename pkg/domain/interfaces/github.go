package interfaces

import (
	"context"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API.
// Errors caused by 403 and 404 responses carry model.ErrTagForbidden and
// model.ErrTagNotFound.
type GitHubClient interface {
	// GetRepository returns the canonical repository, following renames
	GetRepository(ctx context.Context, repo model.Repository) (model.Repository, error)

	// SearchIssues runs an issue/PR search query and returns matching items
	SearchIssues(ctx context.Context, query string) ([]*model.Issue, error)

	// ListPullRequestCommits returns SHAs of all commits of a pull request
	ListPullRequestCommits(ctx context.Context, repo model.Repository, number int) ([]string, error)

	// GetPullRequest returns a pull request including its merge commit SHA
	GetPullRequest(ctx context.Context, repo model.Repository, number int) (*model.Issue, error)

	// CreateComment creates a comment on a pull request or issue and returns its URL
	CreateComment(ctx context.Context, repo model.Repository, number int, body string) (string, error)

	// AddLabels adds labels to a pull request or issue
	AddLabels(ctx context.Context, repo model.Repository, number int, labels []string) error
}
