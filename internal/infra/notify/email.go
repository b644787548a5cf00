// internal/infra/notify/email.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"vessel_briefing_bot/internal/domain/briefing"
)

// EmailNotifier delivers the briefing through a transactional email API
// (Resend-compatible: POST {base}/emails with a bearer token).
type EmailNotifier struct {
	apiBaseURL string
	apiKey     string
	sender     string
	recipients []string
	client     *http.Client
	logger     *log.Logger
}

func NewEmailNotifier(apiBaseURL, apiKey, sender string, recipients []string, client *http.Client, logger *log.Logger) *EmailNotifier {
	return &EmailNotifier{
		apiBaseURL: apiBaseURL,
		apiKey:     apiKey,
		sender:     sender,
		recipients: recipients,
		client:     client,
		logger:     logger,
	}
}

func (n *EmailNotifier) Channel() briefing.Channel {
	return briefing.ChannelEmail
}

// Send satisfies briefing.ChannelSender using the configured recipients,
// sender and credential.
func (n *EmailNotifier) Send(ctx context.Context, subject, body string) briefing.NotifyResult {
	return n.SendEmail(ctx, subject, body, nil, "", "")
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// SendEmail delivers one email. Explicit recipients, sender and apiKey take
// precedence over the configured values. Validation happens in a fixed
// order, recipients first, then credential, then sender, and each missing
// piece fails the attempt before any network call.
func (n *EmailNotifier) SendEmail(ctx context.Context, subject, body string, recipients []string, sender, apiKey string) briefing.NotifyResult {
	to := normalizeRecipients(recipients)
	if len(to) == 0 {
		to = normalizeRecipients(n.recipients)
	}
	if len(to) == 0 {
		return failure(briefing.ChannelEmail, "Missing email recipients")
	}

	key := apiKey
	if key == "" {
		key = n.apiKey
	}
	if key == "" {
		return failure(briefing.ChannelEmail, "Missing API key")
	}

	from := sender
	if from == "" {
		from = n.sender
	}
	if from == "" {
		return failure(briefing.ChannelEmail, "Missing sender address")
	}

	payload, err := json.Marshal(emailPayload{From: from, To: to, Subject: subject, Text: body})
	if err != nil {
		return failure(briefing.ChannelEmail, errText(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(n.apiBaseURL, "/")+"/emails", bytes.NewReader(payload))
	if err != nil {
		return failure(briefing.ChannelEmail, errText(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Printf("ERROR: email API request failed: %v", err)
		return failure(briefing.ChannelEmail, errText(err))
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !is2xx(resp.StatusCode) {
		n.logger.Printf("ERROR: email API returned status %d", resp.StatusCode)
		return failure(briefing.ChannelEmail, fmt.Sprintf("email API returned status %d", resp.StatusCode))
	}
	return success(briefing.ChannelEmail)
}

func normalizeRecipients(recipients []string) []string {
	var out []string
	for _, r := range recipients {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
