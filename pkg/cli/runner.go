package cli

import (
	"context"

	"github.com/m-mizutani/shipnote/pkg/cli/config"
	"github.com/m-mizutani/shipnote/pkg/controller/hook"
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/infra/issueparser"
	"github.com/m-mizutani/shipnote/pkg/usecase"
)

// newUseCaseFactory returns a factory creating a GitHub client per run,
// since githubUrl of a release context selects the endpoint
func newUseCaseFactory(githubCfg *config.GitHub, slackCfg *config.Slack, concurrency int) hook.UseCaseFactory {
	return func(ctx context.Context, input *model.SuccessInput) (interfaces.SuccessUseCase, error) {
		client, err := githubCfg.NewClient(input.Config.GitHubURL)
		if err != nil {
			return nil, err
		}

		opts := []usecase.SuccessOption{usecase.WithConcurrency(concurrency)}
		if reporter := slackCfg.Reporter(); reporter != nil {
			opts = append(opts, usecase.WithReporter(reporter))
		}

		parser := issueparser.New(githubCfg.ResolveAPIURL(input.Config.GitHubURL))
		return usecase.NewSuccess(client, parser, opts...), nil
	}
}
