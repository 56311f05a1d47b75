package config

import (
	"log/slog"

	"github.com/markclong/slack-archiver/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the Slack API credential
type Slack struct {
	token string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack API token (xoxp- or xoxb-)",
			Category:    "Slack",
			Destination: &x.token,
			Sources:     cli.EnvVars("SLACK_ARCHIVER_SLACK_TOKEN", "SLACK_TOKEN"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
	)
}

// Token returns the raw API token. It is also used as the bearer
// credential for file downloads.
func (x *Slack) Token() string {
	return x.token
}

// IsConfigured checks if a token has been provided
func (x *Slack) IsConfigured() bool {
	return x.token != ""
}

// Configure creates a Slack API service from the token
func (x *Slack) Configure() (slack.Service, error) {
	return slack.New(x.token)
}
