package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/cli/config"
	"github.com/m-mizutani/shipnote/pkg/controller/hook"
	controller "github.com/m-mizutani/shipnote/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

// bounds the wait for in-flight success hooks on shutdown
const shutdownTimeout = time.Minute

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		githubCfg   config.GitHub
		slackCfg    config.Slack
		pluginCfg   config.Plugin
		concurrency int
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, pluginCfg.Flags()...)
	flags = append(flags, &cli.IntFlag{
		Name:        "concurrency",
		Usage:       "Maximum number of issues notified at once per run, 0 for no limit",
		Destination: &concurrency,
		Sources:     cli.EnvVars("SHIPNOTE_CONCURRENCY"),
	})

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server accepting release contexts",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			defaults, err := pluginCfg.Load()
			if err != nil {
				return err
			}

			// credentials are only sent to the operator's API URL
			apiURL := githubCfg.ResolveAPIURL(defaults.GitHubURL)
			if err := githubCfg.Validate(apiURL); err != nil {
				return err
			}

			server, err := controller.NewServer(
				ctx,
				hook.NewDecoder(hook.WithDefaults(defaults), hook.WithTrustedGitHubURL(apiURL)),
				hook.NewProcessor(newUseCaseFactory(&githubCfg, &slackCfg, concurrency)),
				controller.WithAddr(serverCfg.Addr),
				controller.WithHookSecret(serverCfg.HookSecret),
				controller.WithMaxBodyBytes(serverCfg.MaxBodyBytes),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
