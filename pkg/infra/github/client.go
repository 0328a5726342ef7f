package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

const (
	defaultMaxRetries = 3
	defaultMaxWait    = 5 * time.Minute

	// used when a secondary rate limit response has no Retry-After
	defaultSecondaryWait = time.Minute

	searchPerPage = 100
	commitPerPage = 100
)

type client struct {
	githubClient *github.Client
	maxRetries   int
	maxWait      time.Duration
}

// Option is a functional option for the GitHub client
type Option func(*client)

// WithMaxRetries sets how many times a rate limited request is retried
func WithMaxRetries(n int) Option {
	return func(c *client) {
		c.maxRetries = n
	}
}

// WithMaxWait caps the wait before retrying a rate limited request
func WithMaxWait(d time.Duration) Option {
	return func(c *client) {
		c.maxWait = d
	}
}

// NewClient creates a new GitHub client authenticated with a token.
// apiURL is the REST API base, e.g. https://api.github.com or
// https://ghe.example.com/api/v3.
func NewClient(apiURL, token string, opts ...Option) (interfaces.GitHubClient, error) {
	githubClient, err := newGitHubClient(http.DefaultClient, apiURL)
	if err != nil {
		return nil, err
	}

	return newClient(githubClient.WithAuthToken(token), opts...), nil
}

// NewAppClient creates a new GitHub client with App installation authentication
func NewAppClient(apiURL string, appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	// Create GitHub App transport
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}

	githubClient, err := newGitHubClient(&http.Client{Transport: itr}, apiURL)
	if err != nil {
		return nil, err
	}
	itr.BaseURL = strings.TrimSuffix(githubClient.BaseURL.String(), "/")

	return newClient(githubClient, opts...), nil
}

func newGitHubClient(httpClient *http.Client, apiURL string) (*github.Client, error) {
	githubClient := github.NewClient(httpClient)
	if apiURL == "" {
		return githubClient, nil
	}

	githubClient, err := githubClient.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", apiURL))
	}
	return githubClient, nil
}

func newClient(githubClient *github.Client, opts ...Option) *client {
	c := &client{
		githubClient: githubClient,
		maxRetries:   defaultMaxRetries,
		maxWait:      defaultMaxWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRepository returns the canonical repository. GitHub redirects renamed
// repositories, so the returned full name may differ from the requested one.
func (c *client) GetRepository(ctx context.Context, repo model.Repository) (model.Repository, error) {
	var ghRepo *github.Repository
	resp, err := c.retry(ctx, "get repository", func() (*github.Response, error) {
		var (
			resp *github.Response
			err  error
		)
		ghRepo, resp, err = c.githubClient.Repositories.Get(ctx, repo.Owner, repo.Name)
		return resp, err
	})
	if err != nil {
		return model.Repository{}, wrapError(err, resp, "failed to get repository",
			goerr.V("repository", repo.FullName()))
	}

	canonical := model.ParseFullName(ghRepo.GetFullName())
	if canonical.IsZero() {
		return model.Repository{}, goerr.New("unexpected repository full name",
			goerr.V("full_name", ghRepo.GetFullName()))
	}
	return canonical, nil
}

// SearchIssues runs an issue search and returns the first page of results
func (c *client) SearchIssues(ctx context.Context, query string) ([]*model.Issue, error) {
	var result *github.IssuesSearchResult
	resp, err := c.retry(ctx, "search issues", func() (*github.Response, error) {
		var (
			resp *github.Response
			err  error
		)
		result, resp, err = c.githubClient.Search.Issues(ctx, query, &github.SearchOptions{
			ListOptions: github.ListOptions{PerPage: searchPerPage},
		})
		return resp, err
	})
	if err != nil {
		return nil, wrapError(err, resp, "failed to search issues", goerr.V("query", query))
	}

	issues := make([]*model.Issue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, &model.Issue{
			Number:      issue.GetNumber(),
			Title:       issue.GetTitle(),
			Body:        issue.GetBody(),
			HTMLURL:     issue.GetHTMLURL(),
			PullRequest: issue.IsPullRequest(),
		})
	}
	return issues, nil
}

// ListPullRequestCommits returns SHAs of all commits of a pull request
func (c *client) ListPullRequestCommits(ctx context.Context, repo model.Repository, number int) ([]string, error) {
	var shas []string
	opts := &github.ListOptions{PerPage: commitPerPage}

	for {
		var commits []*github.RepositoryCommit
		resp, err := c.retry(ctx, "list pull request commits", func() (*github.Response, error) {
			var (
				resp *github.Response
				err  error
			)
			commits, resp, err = c.githubClient.PullRequests.ListCommits(ctx, repo.Owner, repo.Name, number, opts)
			return resp, err
		})
		if err != nil {
			return nil, wrapError(err, resp, "failed to list pull request commits",
				goerr.V("repository", repo.FullName()),
				goerr.V("number", number),
			)
		}

		for _, commit := range commits {
			shas = append(shas, commit.GetSHA())
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return shas, nil
}

// GetPullRequest returns a pull request including its merge commit SHA
func (c *client) GetPullRequest(ctx context.Context, repo model.Repository, number int) (*model.Issue, error) {
	var pr *github.PullRequest
	resp, err := c.retry(ctx, "get pull request", func() (*github.Response, error) {
		var (
			resp *github.Response
			err  error
		)
		pr, resp, err = c.githubClient.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
		return resp, err
	})
	if err != nil {
		return nil, wrapError(err, resp, "failed to get pull request",
			goerr.V("repository", repo.FullName()),
			goerr.V("number", number),
		)
	}

	return &model.Issue{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		HTMLURL:        pr.GetHTMLURL(),
		PullRequest:    true,
		MergeCommitSHA: pr.GetMergeCommitSHA(),
	}, nil
}

// CreateComment creates a comment on a pull request or issue
func (c *client) CreateComment(ctx context.Context, repo model.Repository, number int, body string) (string, error) {
	var comment *github.IssueComment
	resp, err := c.retry(ctx, "create comment", func() (*github.Response, error) {
		var (
			resp *github.Response
			err  error
		)
		comment, resp, err = c.githubClient.Issues.CreateComment(ctx, repo.Owner, repo.Name, number, &github.IssueComment{
			Body: github.Ptr(body),
		})
		return resp, err
	})
	if err != nil {
		return "", wrapError(err, resp, "failed to create comment",
			goerr.V("repository", repo.FullName()),
			goerr.V("number", number),
		)
	}

	return comment.GetHTMLURL(), nil
}

// AddLabels adds labels with a plain request instead of
// Issues.AddLabelsToIssue, which older GitHub Enterprise Server versions reject.
func (c *client) AddLabels(ctx context.Context, repo model.Repository, number int, labels []string) error {
	path := fmt.Sprintf("repos/%s/%s/issues/%d/labels", repo.Owner, repo.Name, number)

	resp, err := c.retry(ctx, "add labels", func() (*github.Response, error) {
		req, err := c.githubClient.NewRequest(http.MethodPost, path, labels)
		if err != nil {
			return nil, err
		}
		return c.githubClient.Do(ctx, req, nil)
	})
	if err != nil {
		return wrapError(err, resp, "failed to add labels",
			goerr.V("repository", repo.FullName()),
			goerr.V("number", number),
			goerr.V("labels", labels),
		)
	}

	return nil
}

// retry calls fn again while GitHub reports a rate limit, up to maxRetries times
func (c *client) retry(ctx context.Context, name string, fn func() (*github.Response, error)) (*github.Response, error) {
	logger := ctxlog.From(ctx)

	for attempt := 0; ; attempt++ {
		resp, err := fn()
		if err == nil || attempt >= c.maxRetries {
			return resp, err
		}

		wait, ok := retryAfter(err, resp)
		if !ok {
			return resp, err
		}
		wait = min(wait, c.maxWait)

		logger.Warn("GitHub API rate limit detected, retrying",
			"request", name,
			"retry_after", wait,
			"attempt", attempt+1,
		)

		select {
		case <-ctx.Done():
			return resp, goerr.Wrap(ctx.Err(), "cancelled while waiting for rate limit reset")
		case <-time.After(wait):
		}
	}
}

func retryAfter(err error, resp *github.Response) (time.Duration, bool) {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return max(time.Until(rateErr.Rate.Reset.Time), 0), true
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		if abuseErr.RetryAfter != nil {
			return *abuseErr.RetryAfter, true
		}
		return defaultSecondaryWait, true
	}

	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		if v, parseErr := time.ParseDuration(resp.Header.Get("Retry-After") + "s"); parseErr == nil {
			return v, true
		}
		return defaultSecondaryWait, true
	}

	return 0, false
}

// wrapError tags 403 and 404 responses so that callers can tell expected
// failures from unexpected ones. Rate limit errors are never tagged.
func wrapError(err error, resp *github.Response, msg string, opts ...goerr.Option) error {
	if resp != nil && resp.Response != nil {
		opts = append(opts, goerr.V("status", resp.StatusCode))

		var rateErr *github.RateLimitError
		var abuseErr *github.AbuseRateLimitError
		if !errors.As(err, &rateErr) && !errors.As(err, &abuseErr) {
			switch resp.StatusCode {
			case http.StatusForbidden:
				opts = append(opts, goerr.T(model.ErrTagForbidden))
			case http.StatusNotFound:
				opts = append(opts, goerr.T(model.ErrTagNotFound))
			}
		}
	}

	return goerr.Wrap(err, msg, opts...)
}
