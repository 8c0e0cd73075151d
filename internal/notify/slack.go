package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackNotifier posts stage changes to a Slack incoming webhook.
// Only terminal-ish stages (offer, hired, rejected) are posted to
// keep channel noise down.
type SlackNotifier struct {
	webhookURL string
}

// NewSlackNotifier builds a webhook-backed notifier.
func NewSlackNotifier(webhookURL string) (*SlackNotifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("notify: slack webhook URL is required")
	}
	return &SlackNotifier{webhookURL: webhookURL}, nil
}

// notableStages are the transitions worth a channel post.
var notableStages = map[string]bool{
	"offer":    true,
	"hired":    true,
	"rejected": true,
}

// StageChanged posts the event when the new stage is notable.
func (n *SlackNotifier) StageChanged(ctx context.Context, event Event) error {
	if !notableStages[event.ToStage] {
		return nil
	}
	msg := &slack.WebhookMessage{Text: event.Message()}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return fmt.Errorf("notify: post slack webhook: %w", err)
	}
	return nil
}
