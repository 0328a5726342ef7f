package config

import (
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration of the run summary notification
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to post a run summary",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("SHIPNOTE_SLACK_WEBHOOK_URL"),
		},
	}
}

// Reporter returns a Slack reporter, or nil if no webhook URL is configured
func (c *Slack) Reporter() interfaces.Reporter {
	if c.WebhookURL == "" {
		return nil
	}
	return slack.New(c.WebhookURL, nil)
}
