package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . SuccessUseCase

import (
	"context"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// SuccessUseCase runs the post-release notification workflow
type SuccessUseCase interface {
	// Success notifies pull requests and issues resolved by the release
	Success(ctx context.Context, req *model.HookRequest) (*model.SuccessResult, error)
}
