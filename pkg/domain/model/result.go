package model

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Notification is the outcome of notifying one issue or pull request
type Notification struct {
	Number      int
	PullRequest bool
	CommentURL  string
	Labels      []string
	Failure     FailureKind // empty on success
	Err         error
}

// Kind returns "PR" or "issue"
func (x *Notification) Kind() string {
	if x.PullRequest {
		return "PR"
	}
	return "issue"
}

// Commented returns true if the comment was posted, even when labeling failed
func (x *Notification) Commented() bool {
	return x.CommentURL != ""
}

// Succeeded returns true if both comment and labels were applied
func (x *Notification) Succeeded() bool {
	return x.Err == nil
}

// SuccessResult summarizes one success hook invocation
type SuccessResult struct {
	Repository    Repository
	PullRequests  []int // verified pull requests
	Issues        []int // issues referenced by close keywords, may repeat
	Notifications []*Notification
	Errors        []error // notification errors other than forbidden / not found
}

// Err returns an aggregate of accumulated notification errors, or nil
func (x *SuccessResult) Err() error {
	if len(x.Errors) == 0 {
		return nil
	}
	return goerr.Wrap(errors.Join(x.Errors...), "failed to notify some issues",
		goerr.V("count", len(x.Errors)))
}

// Count returns number of succeeded and failed notifications
func (x *SuccessResult) Count() (succeeded, failed int) {
	for _, n := range x.Notifications {
		if n.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
