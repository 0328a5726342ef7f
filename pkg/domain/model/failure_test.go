package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

func TestClassifyFailure(t *testing.T) {
	forbidden := goerr.New("forbidden", goerr.T(model.ErrTagForbidden))
	notFound := goerr.Wrap(errors.New("404"), "not found", goerr.T(model.ErrTagNotFound))

	gt.Equal(t, model.ClassifyFailure(forbidden), model.FailureForbidden)
	gt.Equal(t, model.ClassifyFailure(notFound), model.FailureNotFound)
	gt.Equal(t, model.ClassifyFailure(goerr.Wrap(notFound, "outer")), model.FailureNotFound)
	gt.Equal(t, model.ClassifyFailure(errors.New("boom")), model.FailureOther)

	gt.True(t, model.FailureForbidden.Recoverable())
	gt.True(t, model.FailureNotFound.Recoverable())
	gt.False(t, model.FailureOther.Recoverable())
}

func TestSuccessResult_Err(t *testing.T) {
	result := &model.SuccessResult{}
	gt.NoError(t, result.Err())

	result.Errors = append(result.Errors, errors.New("a"), errors.New("b"))
	err := result.Err()
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("a")
	gt.String(t, err.Error()).Contains("b")
}

func TestNotification_Kind(t *testing.T) {
	pr := &model.Notification{Number: 1, PullRequest: true, CommentURL: "https://github.com/owner/repo/pull/1#issuecomment-1"}
	gt.Equal(t, pr.Kind(), "PR")
	gt.True(t, pr.Commented())

	issue := &model.Notification{Number: 2, Failure: model.FailureNotFound, Err: errors.New("not found")}
	gt.Equal(t, issue.Kind(), "issue")
	gt.False(t, issue.Commented())
}
