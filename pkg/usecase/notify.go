package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/utils/async"
)

// notify comments on every issue and applies labels. Each issue is attempted
// regardless of failures of the others; results keep the order of issues.
func (uc *successUseCase) notify(ctx context.Context, repo model.Repository, issues []*model.Issue, input *model.SuccessInput, labels []string) []*model.Notification {
	targets := input.NamedTargets()
	results := make([]*model.Notification, len(issues))

	indexes := make([]int, len(issues))
	for i := range indexes {
		indexes[i] = i
	}

	async.Each(ctx, indexes, uc.concurrency, func(ctx context.Context, i int) {
		results[i] = uc.notifyIssue(ctx, repo, issues[i], input.NextRelease, targets, labels)
	})

	// a recovered panic leaves no result behind
	for i, n := range results {
		if n == nil {
			results[i] = &model.Notification{
				Number:      issues[i].Number,
				PullRequest: issues[i].PullRequest,
				Failure:     model.FailureOther,
				Err:         errNotificationAborted,
			}
		}
	}

	return results
}

func (uc *successUseCase) notifyIssue(ctx context.Context, repo model.Repository, issue *model.Issue, release model.NextRelease, targets []model.ReleaseTarget, labels []string) *model.Notification {
	logger := ctxlog.From(ctx).With("number", issue.Number, "kind", issue.Kind())
	result := &model.Notification{
		Number:      issue.Number,
		PullRequest: issue.PullRequest,
	}

	fail := func(err error, msg string) *model.Notification {
		result.Err = err
		result.Failure = model.ClassifyFailure(err)
		switch result.Failure {
		case model.FailureForbidden:
			logger.Warn(msg+": not allowed", "error", err)
		case model.FailureNotFound:
			logger.Warn(msg+": not found", "error", err)
		default:
			logger.Error(msg, "error", err)
		}
		return result
	}

	body, err := renderComment(issue, release, targets)
	if err != nil {
		return fail(err, "Failed to render comment")
	}

	url, err := uc.githubClient.CreateComment(ctx, repo, issue.Number, body)
	if err != nil {
		return fail(err, "Failed to add comment")
	}
	result.CommentURL = url
	logger.Info("Added comment", "url", url)

	if len(labels) == 0 {
		return result
	}

	if err := uc.githubClient.AddLabels(ctx, repo, issue.Number, labels); err != nil {
		return fail(err, "Failed to add labels")
	}
	result.Labels = labels
	logger.Info("Added labels", "labels", labels)

	return result
}
