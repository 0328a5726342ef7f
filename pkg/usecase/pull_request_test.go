package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/usecase"
)

var testRepo = model.Repository{Owner: "owner", Name: "repo"}

func prNumbers(prs []*model.Issue) []int {
	numbers := make([]int, 0, len(prs))
	for _, pr := range prs {
		numbers = append(numbers, pr.Number)
	}
	return numbers
}

func TestFindPullRequests_VerifiesCommits(t *testing.T) {
	client := &MockGitHubClient{
		searchIssuesFunc: func(ctx context.Context, query string) ([]*model.Issue, error) {
			gt.Equal(t, query, "repo:owner/repo+type:pr+is:merged+sha1+sha2")
			return []*model.Issue{
				{Number: 5, PullRequest: true, Body: "Fixes #1"},
				{Number: 6, PullRequest: true},
				{Number: 7, PullRequest: true},
			}, nil
		},
		listPullRequestCommitsFunc: func(ctx context.Context, repo model.Repository, number int) ([]string, error) {
			switch number {
			case 5:
				return []string{"other", "sha1"}, nil
			default:
				return []string{"unrelated"}, nil
			}
		},
		getPullRequestFunc: func(ctx context.Context, repo model.Repository, number int) (*model.Issue, error) {
			switch number {
			case 6:
				return &model.Issue{Number: 6, PullRequest: true, MergeCommitSHA: "not-in-release"}, nil
			case 7:
				return &model.Issue{Number: 7, PullRequest: true, MergeCommitSHA: "sha2"}, nil
			}
			return nil, fmt.Errorf("unexpected pull request %d", number)
		},
	}

	prs, err := usecase.FindPullRequests(t.Context(), client, testRepo, []string{"sha1", "sha2"})
	gt.NoError(t, err)
	gt.Equal(t, prNumbers(prs), []int{5, 7})
	gt.Equal(t, prs[0].Body, "Fixes #1")
}

func TestFindPullRequests_DeduplicatesAcrossBatches(t *testing.T) {
	hashes := make([]string, 100)
	for i := range hashes {
		hashes[i] = fmt.Sprintf("%07x", i)
	}

	client := &MockGitHubClient{
		searchIssuesFunc: func(ctx context.Context, query string) ([]*model.Issue, error) {
			return []*model.Issue{{Number: 5, PullRequest: true}}, nil
		},
		listPullRequestCommitsFunc: func(ctx context.Context, repo model.Repository, number int) ([]string, error) {
			return []string{hashes[99]}, nil
		},
	}

	prs, err := usecase.FindPullRequests(t.Context(), client, testRepo, hashes)
	gt.NoError(t, err)
	gt.Equal(t, prNumbers(prs), []int{5})
	gt.Equal(t, len(client.queries), 4)
	for _, q := range client.queries {
		gt.True(t, strings.HasPrefix(q, "repo:owner/repo+type:pr+is:merged+"))
		gt.True(t, len(q) <= 255)
	}
}

func TestFindPullRequests_NoCommits(t *testing.T) {
	client := &MockGitHubClient{}

	prs, err := usecase.FindPullRequests(t.Context(), client, testRepo, nil)
	gt.NoError(t, err)
	gt.Equal(t, len(prs), 0)
	gt.Equal(t, len(client.queries), 0)
}

func TestFindPullRequests_PropagatesErrors(t *testing.T) {
	t.Run("search failure", func(t *testing.T) {
		client := &MockGitHubClient{
			searchIssuesFunc: func(ctx context.Context, query string) ([]*model.Issue, error) {
				return nil, errors.New("search unavailable")
			},
		}
		_, err := usecase.FindPullRequests(t.Context(), client, testRepo, []string{"sha1"})
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("search unavailable")
	})

	t.Run("verification failure", func(t *testing.T) {
		client := &MockGitHubClient{
			searchIssuesFunc: func(ctx context.Context, query string) ([]*model.Issue, error) {
				return []*model.Issue{{Number: 5, PullRequest: true}}, nil
			},
			listPullRequestCommitsFunc: func(ctx context.Context, repo model.Repository, number int) ([]string, error) {
				return nil, errors.New("commits unavailable")
			},
		}
		_, err := usecase.FindPullRequests(t.Context(), client, testRepo, []string{"sha1"})
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("commits unavailable")
	})
}
