package errs_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shipnote/pkg/utils/errs"
)

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	errs.Handle(ctx, goerr.Wrap(errors.New("root cause"), "failed to notify", goerr.V("number", 7)))

	out := buf.String()
	gt.String(t, out).Contains("failed to notify")
	gt.String(t, out).Contains("number=7")
}

func TestHandle_Nil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	errs.Handle(ctx, nil)
	gt.Equal(t, buf.String(), "")
}

func TestHandle_SentryContext(t *testing.T) {
	events := make(chan *sentry.Event, 1)
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://key@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			events <- event
			return nil
		},
	})
	gt.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxlog.With(context.Background(), logger)
	ctx = sentry.SetHubOnContext(ctx, sentry.NewHub(client, sentry.NewScope()))

	errs.Handle(ctx, goerr.New("failed to add labels", goerr.V("number", 9)))

	select {
	case event := <-events:
		values, ok := event.Contexts["goerr"]
		gt.True(t, ok)
		gt.Equal(t, values["number"], any(9))
	case <-time.After(time.Second):
		t.Fatal("event was not captured")
	}
}
