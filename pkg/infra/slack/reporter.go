package slack

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/slack-go/slack"
)

const (
	colorGood    = "good"
	colorWarning = "warning"
	colorDanger  = "danger"
)

// Reporter posts a run summary to a Slack incoming webhook
type Reporter struct {
	webhookURL string
	httpClient *http.Client
}

// New creates a Reporter. httpClient may be nil.
func New(webhookURL string, httpClient *http.Client) *Reporter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Reporter{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// Report sends the summary of result
func (x *Reporter) Report(ctx context.Context, req *model.HookRequest, result *model.SuccessResult) error {
	msg := buildMessage(req, result)
	if err := slack.PostWebhookCustomHTTPContext(ctx, x.webhookURL, x.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack message", goerr.V("run_id", req.ID))
	}
	return nil
}

func buildMessage(req *model.HookRequest, result *model.SuccessResult) *slack.WebhookMessage {
	succeeded, failed := result.Count()

	color := colorGood
	switch {
	case len(result.Errors) > 0:
		color = colorDanger
	case failed > 0:
		color = colorWarning
	}

	tag := req.Input.NextRelease.GitTag
	if ch := req.Input.NextRelease.Channel; ch != "" {
		tag += " (@" + ch + ")"
	}

	return &slack.WebhookMessage{
		Text: fmt.Sprintf("Released %s of %s", tag, result.Repository.FullName()),
		Attachments: []slack.Attachment{
			{
				Color: color,
				Fields: []slack.AttachmentField{
					{Title: "Pull requests", Value: joinNumbers(result.PullRequests), Short: true},
					{Title: "Issues", Value: joinNumbers(uniqueNumbers(result.Issues)), Short: true},
					{Title: "Notified", Value: strconv.Itoa(succeeded), Short: true},
					{Title: "Failed", Value: strconv.Itoa(failed), Short: true},
				},
				Footer: "run " + req.ID.String(),
			},
		},
	}
}

func uniqueNumbers(numbers []int) []int {
	var out []int
	seen := make(map[int]struct{})
	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func joinNumbers(numbers []int) string {
	if len(numbers) == 0 {
		return "-"
	}
	items := make([]string, 0, len(numbers))
	for _, n := range numbers {
		items = append(items, "#"+strconv.Itoa(n))
	}
	return strings.Join(items, ", ")
}
