package model

import (
	"time"

	"github.com/m-mizutani/shipnote/pkg/domain/types"
)

// HookSource tells how the success hook was triggered
type HookSource string

const (
	HookSourceCLI  HookSource = "cli"
	HookSourceHTTP HookSource = "http"
)

// HookRequest is one request to run the success hook
type HookRequest struct {
	ID         types.RunID
	Source     HookSource
	ReceivedAt time.Time
	Input      *SuccessInput
}

// Validate checks fields required before any remote call is made
func (x *HookRequest) Validate() error {
	if x.Input == nil {
		return errMissingInput
	}
	if x.Input.RepositoryURL == "" {
		return errMissingRepositoryURL
	}
	if x.Input.NextRelease.GitTag == "" {
		return errMissingGitTag
	}
	return nil
}
