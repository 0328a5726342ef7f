package interfaces

import (
	"context"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// Reporter publishes a summary of a completed run
type Reporter interface {
	Report(ctx context.Context, req *model.HookRequest, result *model.SuccessResult) error
}
