// internal/domain/briefing/report.go
package briefing

import (
	"context"
	"time"
)

// Slot identifies one of the two daily reporting windows.
type Slot string

const (
	SlotAM Slot = "am"
	SlotPM Slot = "pm"
)

// ResolveSlot returns the explicit slot verbatim when it names a valid slot,
// otherwise infers it from the wall-clock hour in loc: before 12:00 local is
// "am", everything else "pm".
func ResolveSlot(explicit string, now time.Time, loc *time.Location) Slot {
	switch Slot(explicit) {
	case SlotAM, SlotPM:
		return Slot(explicit)
	}
	if now.In(loc).Hour() < 12 {
		return SlotAM
	}
	return SlotPM
}

// Channel identifies a single notification delivery target.
type Channel string

const (
	ChannelChat     Channel = "chat"
	ChannelEmail    Channel = "email"
	ChannelTelegram Channel = "telegram"
)

// NotifyResult records the outcome of one delivery attempt on one channel.
// A failed attempt always carries a human-readable Error.
type NotifyResult struct {
	Channel Channel `json:"channel"`
	OK      bool    `json:"ok"`
	Error   string  `json:"error,omitempty"`
}

// ChannelSender is one notification channel. Send never returns an error:
// every failure is mapped into the result so one channel's outage cannot
// abort another channel's attempt.
type ChannelSender interface {
	Channel() Channel
	Send(ctx context.Context, subject, body string) NotifyResult
}

// ReportRecord is the immutable outcome of one aggregation pass. Sent holds
// one result per configured channel, failures included. OK is true iff at
// least one channel succeeded.
type ReportRecord struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Slot        Slot           `json:"slot"`
	OK          bool           `json:"ok"`
	Sent        []NotifyResult `json:"sent"`
	Sample      string         `json:"sample"`
	Timezone    string         `json:"timezone"`
}
