package hook

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// UseCaseFactory builds a success use case for the GitHub endpoint that the
// input refers to. The endpoint may come from the input's plugin config, so
// the use case is created per run.
type UseCaseFactory func(ctx context.Context, input *model.SuccessInput) (interfaces.SuccessUseCase, error)

// Processor runs the success hook for decoded requests
type Processor struct {
	factory UseCaseFactory
}

// NewProcessor creates a new Processor
func NewProcessor(factory UseCaseFactory) *Processor {
	return &Processor{factory: factory}
}

// Process runs the success hook for req. Notification errors are not
// returned here; they are available from the result's Err method.
func (p *Processor) Process(ctx context.Context, req *model.HookRequest) (*model.SuccessResult, error) {
	logger := ctxlog.From(ctx)

	if err := req.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid hook request", goerr.V("run_id", req.ID))
	}

	uc, err := p.factory(ctx, req.Input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set up success hook", goerr.V("run_id", req.ID))
	}

	result, err := uc.Success(ctx, req)
	if err != nil {
		logger.Error("Success hook failed",
			"run_id", req.ID,
			"repository_url", req.Input.RepositoryURL,
			"git_tag", req.Input.NextRelease.GitTag,
		)
		return nil, goerr.Wrap(err, "success hook failed",
			goerr.V("run_id", req.ID),
			goerr.V("git_tag", req.Input.NextRelease.GitTag),
		)
	}

	return result, nil
}
