// internal/infra/notify/slack.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"vessel_briefing_bot/internal/domain/briefing"
)

// SlackNotifier delivers briefing text to a Slack incoming webhook. Any 2xx
// response counts as delivered regardless of body content.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
	logger     *log.Logger
}

func NewSlackNotifier(webhookURL string, client *http.Client, logger *log.Logger) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL, client: client, logger: logger}
}

func (n *SlackNotifier) Channel() briefing.Channel {
	return briefing.ChannelChat
}

// Send satisfies briefing.ChannelSender. Slack has no subject concept, so
// only the body is posted.
func (n *SlackNotifier) Send(ctx context.Context, _ string, body string) briefing.NotifyResult {
	return n.SendChatMessage(ctx, body, "")
}

// SendChatMessage posts message to the webhook. An explicit webhookURL takes
// precedence over the configured one; with neither, the attempt fails
// immediately without any network call.
func (n *SlackNotifier) SendChatMessage(ctx context.Context, message, webhookURL string) briefing.NotifyResult {
	url := webhookURL
	if url == "" {
		url = n.webhookURL
	}
	if url == "" {
		return failure(briefing.ChannelChat, "Missing Slack webhook URL")
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return failure(briefing.ChannelChat, errText(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return failure(briefing.ChannelChat, errText(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Printf("ERROR: Slack webhook request failed: %v", err)
		return failure(briefing.ChannelChat, errText(err))
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !is2xx(resp.StatusCode) {
		n.logger.Printf("ERROR: Slack webhook returned status %d", resp.StatusCode)
		return failure(briefing.ChannelChat, fmt.Sprintf("Slack webhook returned status %d", resp.StatusCode))
	}
	return success(briefing.ChannelChat)
}
