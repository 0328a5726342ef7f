package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/cli/config"
	"github.com/m-mizutani/shipnote/pkg/controller/hook"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdSuccess() *cli.Command {
	var (
		githubCfg   config.GitHub
		slackCfg    config.Slack
		pluginCfg   config.Plugin
		contextFile string
		concurrency int
		ignoreErrs  bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "context",
			Aliases:     []string{"i"},
			Usage:       "Release context JSON file, '-' reads stdin",
			Value:       "-",
			Destination: &contextFile,
			Sources:     cli.EnvVars("SHIPNOTE_CONTEXT"),
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum number of issues notified at once, 0 for no limit",
			Value:       0,
			Destination: &concurrency,
			Sources:     cli.EnvVars("SHIPNOTE_CONCURRENCY"),
		},
		&cli.BoolFlag{
			Name:        "ignore-notification-errors",
			Usage:       "Exit with 0 even if some comments or labels could not be added",
			Destination: &ignoreErrs,
			Sources:     cli.EnvVars("SHIPNOTE_IGNORE_NOTIFICATION_ERRORS"),
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, pluginCfg.Flags()...)

	return &cli.Command{
		Name:  "success",
		Usage: "Comment on pull requests and issues included in a published release",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			defaults, err := pluginCfg.Load()
			if err != nil {
				return err
			}

			data, err := readContext(contextFile, c.Root().Reader)
			if err != nil {
				return err
			}

			input, err := hook.NewDecoder(hook.WithDefaults(defaults)).Decode(data)
			if err != nil {
				return err
			}

			req := &model.HookRequest{
				ID:         types.NewRunID(),
				Source:     model.HookSourceCLI,
				ReceivedAt: time.Now(),
				Input:      input,
			}

			logger.Debug("Starting success hook", "run_id", req.ID, "github", githubCfg)

			processor := hook.NewProcessor(newUseCaseFactory(&githubCfg, &slackCfg, concurrency))
			result, err := processor.Process(ctx, req)
			if err != nil {
				return err
			}

			printSummary(c.Root().Writer, result)

			if err := result.Err(); err != nil {
				if ignoreErrs {
					logger.Warn("Ignored notification errors", "count", len(result.Errors))
					return nil
				}
				return err
			}
			return nil
		},
	}
}

func readContext(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read release context from stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read release context", goerr.V("file", path))
	}
	return data, nil
}
