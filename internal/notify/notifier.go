// Package notify delivers new-issue notifications to the downstream
// municipal channel.
package notify

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/pkg/config"
)

// Notifier publishes a subject and body to the downstream channel.
type Notifier interface {
	Publish(ctx context.Context, subject, body string) error
}

// SlackNotifier posts notifications to a configured Slack channel.
type SlackNotifier struct {
	client  *slack.Client
	channel string
	logger  *zap.Logger
}

// NewSlackNotifier constructs the Slack notifier.
func NewSlackNotifier(cfg config.NotifierConfig, logger *zap.Logger) *SlackNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlackNotifier{
		client:  slack.New(cfg.SlackToken),
		channel: cfg.SlackChannel,
		logger:  logger,
	}
}

// Publish posts the subject and body as a single channel message.
func (n *SlackNotifier) Publish(ctx context.Context, subject, body string) error {
	_, ts, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText("*"+subject+"*\n"+body, false))
	if err != nil {
		return err
	}
	n.logger.Debug("notification posted", zap.String("channel", n.channel), zap.String("ts", ts))
	return nil
}

// NopNotifier drops notifications. Used when no channel is configured.
type NopNotifier struct{}

// Publish discards the message.
func (NopNotifier) Publish(ctx context.Context, subject, body string) error {
	return nil
}
