package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/utils/errs"
)

var errNotificationAborted = goerr.New("notification aborted by panic")

type successUseCase struct {
	githubClient interfaces.GitHubClient
	parser       interfaces.CloseKeywordParser
	reporters    []interfaces.Reporter
	concurrency  int
}

// SuccessOption is a functional option for the success use case
type SuccessOption func(*successUseCase)

// WithReporter adds a reporter that receives the summary of every run
func WithReporter(reporter interfaces.Reporter) SuccessOption {
	return func(uc *successUseCase) {
		uc.reporters = append(uc.reporters, reporter)
	}
}

// WithConcurrency limits the number of issues notified at the same time.
// Zero or less means no limit.
func WithConcurrency(n int) SuccessOption {
	return func(uc *successUseCase) {
		uc.concurrency = n
	}
}

// NewSuccess creates a new instance of SuccessUseCase
func NewSuccess(githubClient interfaces.GitHubClient, parser interfaces.CloseKeywordParser, opts ...SuccessOption) interfaces.SuccessUseCase {
	uc := &successUseCase{
		githubClient: githubClient,
		parser:       parser,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Success finds pull requests and issues resolved by the release and
// notifies them. Errors in repository resolution or pull request discovery
// abort the run. Notification errors are collected into the result.
func (uc *successUseCase) Success(ctx context.Context, req *model.HookRequest) (*model.SuccessResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	input := req.Input

	logger := ctxlog.From(ctx).With("run_id", req.ID.String())
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Processing release",
		"source", req.Source,
		"git_tag", input.NextRelease.GitTag,
		"channel", input.NextRelease.Channel,
		"commits", len(input.Commits),
	)

	labels, err := renderLabels(input.Config.ReleasedLabels, input)
	if err != nil {
		return nil, err
	}

	repo, err := resolveRepository(ctx, uc.githubClient, input.RepositoryURL)
	if err != nil {
		return nil, err
	}

	prs, err := findPullRequests(ctx, uc.githubClient, repo, input.CommitHashes())
	if err != nil {
		return nil, err
	}

	issueNumbers := extractIssues(uc.parser, repo, prs, input.Commits)
	logger.Debug("Found issues via close keywords", "issues", issueNumbers)

	set := model.NewIssueSet()
	result := &model.SuccessResult{
		Repository: repo,
		Issues:     issueNumbers,
	}
	for _, pr := range prs {
		set.Add(pr)
		result.PullRequests = append(result.PullRequests, pr.Number)
	}
	for _, n := range issueNumbers {
		set.Add(&model.Issue{Number: n})
	}

	result.Notifications = uc.notify(ctx, repo, set.Items(), input, labels)
	for _, n := range result.Notifications {
		if n.Err != nil && !n.Failure.Recoverable() {
			result.Errors = append(result.Errors, n.Err)
		}
	}

	succeeded, failed := result.Count()
	logger.Info("Release notification completed",
		"repository", repo.FullName(),
		"pull_requests", len(result.PullRequests),
		"notified", succeeded,
		"failed", failed,
		"errors", len(result.Errors),
	)

	for _, reporter := range uc.reporters {
		if err := reporter.Report(ctx, req, result); err != nil {
			errs.Handle(ctx, goerr.Wrap(err, "failed to report result"))
		}
	}

	return result, nil
}
