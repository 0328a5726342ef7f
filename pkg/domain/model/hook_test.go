package model_test

import (
	"testing"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

func TestHookRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.HookRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &model.HookRequest{
				Source: model.HookSourceCLI,
				Input: &model.SuccessInput{
					RepositoryURL: "https://github.com/owner/repo",
					NextRelease:   model.NextRelease{GitTag: "v1.0.0"},
				},
			},
			wantErr: false,
		},
		{
			name:    "missing input",
			req:     &model.HookRequest{Source: model.HookSourceHTTP},
			wantErr: true,
		},
		{
			name: "missing repository URL",
			req: &model.HookRequest{
				Input: &model.SuccessInput{
					NextRelease: model.NextRelease{GitTag: "v1.0.0"},
				},
			},
			wantErr: true,
		},
		{
			name: "missing git tag",
			req: &model.HookRequest{
				Input: &model.SuccessInput{
					RepositoryURL: "git@github.com:owner/repo.git",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
