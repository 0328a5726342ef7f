package model

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrTagForbidden marks errors caused by a 403 response
	ErrTagForbidden = goerr.NewTag("forbidden")
	// ErrTagNotFound marks errors caused by a 404 response
	ErrTagNotFound = goerr.NewTag("not_found")
)

// FailureKind classifies a failed notification
type FailureKind string

const (
	FailureForbidden FailureKind = "forbidden"
	FailureNotFound  FailureKind = "not_found"
	FailureOther     FailureKind = "other"
)

// ClassifyFailure maps err to a FailureKind. Forbidden and not found
// failures are expected for locked or deleted issues.
func ClassifyFailure(err error) FailureKind {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch {
		case goerr.HasTag(e, ErrTagForbidden):
			return FailureForbidden
		case goerr.HasTag(e, ErrTagNotFound):
			return FailureNotFound
		}
	}
	return FailureOther
}

// Recoverable returns true if the failure does not need to be reported
func (x FailureKind) Recoverable() bool {
	return x == FailureForbidden || x == FailureNotFound
}
