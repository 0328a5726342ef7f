package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &model.SuccessResult{
		Repository:   model.Repository{Owner: "owner", Name: "repo"},
		PullRequests: []int{5},
		Notifications: []*model.Notification{
			{Number: 5, PullRequest: true, CommentURL: "https://github.com/owner/repo/pull/5#issuecomment-1", Labels: []string{"released"}},
			{Number: 7, Failure: model.FailureNotFound, Err: errors.New("not found")},
			{Number: 8, Failure: model.FailureOther, Err: errors.New("internal server error")},
			{Number: 9, CommentURL: "https://github.com/owner/repo/issues/9#issuecomment-2", Failure: model.FailureForbidden, Err: errors.New("forbidden")},
			{Number: 10, CommentURL: "https://github.com/owner/repo/issues/10#issuecomment-3", Failure: model.FailureOther, Err: errors.New("bad gateway")},
		},
	})

	out := buf.String()
	gt.String(t, out).Contains("owner/repo")
	gt.String(t, out).Contains("#5 (PR) https://github.com/owner/repo/pull/5#issuecomment-1 [released]")
	gt.String(t, out).Contains("#7 (issue) skipped: not_found")
	gt.String(t, out).Contains("#8 (issue) failed: internal server error")
	gt.String(t, out).Contains("#9 (issue) https://github.com/owner/repo/issues/9#issuecomment-2, labels skipped: forbidden")
	gt.String(t, out).Contains("#10 (issue) https://github.com/owner/repo/issues/10#issuecomment-3, labels failed: bad gateway")
	gt.String(t, out).Contains("1 pull request(s) verified, 1 notified, 4 failed")
}
