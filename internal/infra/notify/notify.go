// internal/infra/notify/notify.go

// Package notify implements the delivery channels. Each sender maps every
// failure, configuration and transport alike, into its NotifyResult: nothing
// escapes a channel boundary, so channels can never abort each other.
package notify

import (
	"vessel_briefing_bot/internal/domain/briefing"
)

func success(ch briefing.Channel) briefing.NotifyResult {
	return briefing.NotifyResult{Channel: ch, OK: true}
}

func failure(ch briefing.Channel, msg string) briefing.NotifyResult {
	return briefing.NotifyResult{Channel: ch, OK: false, Error: msg}
}

// errText extracts a human-readable message from a transport error, falling
// back to a generic string for errors that carry no message.
func errText(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "network error"
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
