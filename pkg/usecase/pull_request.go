package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/utils/async"
)

const searchQuerySeparator = "+"

func mergedPullRequestQueryPrefix(repo model.Repository) string {
	return "repo:" + repo.FullName() + "+type:pr+is:merged"
}

// findPullRequests returns merged pull requests of repo that contain at least
// one of hashes, in discovery order. Any API failure aborts the search.
func findPullRequests(ctx context.Context, client interfaces.GitHubClient, repo model.Repository, hashes []string) ([]*model.Issue, error) {
	logger := ctxlog.From(ctx)

	queries := BuildSearchQueries(mergedPullRequestQueryPrefix(repo), hashes, searchQuerySeparator)
	logger.Debug("Searching merged pull requests", "queries", len(queries), "commits", len(hashes))

	results, err := async.Map(ctx, queries, func(ctx context.Context, query string) ([]*model.Issue, error) {
		return client.SearchIssues(ctx, query)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search pull requests", goerr.V("repository", repo.FullName()))
	}

	var candidates []*model.Issue
	seen := make(map[int]struct{})
	for _, issues := range results {
		for _, issue := range issues {
			if _, ok := seen[issue.Number]; ok {
				continue
			}
			seen[issue.Number] = struct{}{}
			candidates = append(candidates, issue)
		}
	}

	included, err := async.Map(ctx, candidates, func(ctx context.Context, pr *model.Issue) (bool, error) {
		return containsReleaseCommit(ctx, client, repo, pr.Number, hashes)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to verify pull requests", goerr.V("repository", repo.FullName()))
	}

	var prs []*model.Issue
	for i, pr := range candidates {
		if !included[i] {
			logger.Debug("Pull request does not contain release commits", "number", pr.Number)
			continue
		}
		pr.PullRequest = true
		prs = append(prs, pr)
	}

	logger.Info("Found pull requests included in the release",
		"candidates", len(candidates),
		"verified", len(prs),
	)

	return prs, nil
}

// containsReleaseCommit checks commits of the pull request first and falls
// back to its merge commit, since search results may be false positives.
func containsReleaseCommit(ctx context.Context, client interfaces.GitHubClient, repo model.Repository, number int, hashes []string) (bool, error) {
	shas, err := client.ListPullRequestCommits(ctx, repo, number)
	if err != nil {
		return false, err
	}
	for _, sha := range shas {
		if slices.Contains(hashes, sha) {
			return true, nil
		}
	}

	pr, err := client.GetPullRequest(ctx, repo, number)
	if err != nil {
		return false, err
	}
	return pr.MergeCommitSHA != "" && slices.Contains(hashes, pr.MergeCommitSHA), nil
}
