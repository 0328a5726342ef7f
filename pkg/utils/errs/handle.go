// Package errs reports errors that cannot be returned to a caller.
package errs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err and sends it to Sentry if Sentry has been initialized.
// The hub bound to ctx is preferred over the global one.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.Any("error", err)}
	var goErr *goerr.Error
	if errors.As(err, &goErr) {
		for k, v := range goErr.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	ctxlog.From(ctx).Error(err.Error(), attrs...)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if goErr != nil {
			scope.SetContext("goerr", sentry.Context(goErr.Values()))
		}
		hub.CaptureException(err)
	})
}
