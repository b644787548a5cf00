package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vessel_briefing_bot/internal/domain/briefing"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestSlackMissingWebhookURL(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("no network call expected when the webhook URL is unresolved")
		return nil, nil
	})}
	n := NewSlackNotifier("", client, testLogger())

	result := n.SendChatMessage(context.Background(), "hello", "")

	assert.Equal(t, briefing.ChannelChat, result.Channel)
	assert.False(t, result.OK)
	assert.Equal(t, "Missing Slack webhook URL", result.Error)
}

func TestSlackSendSuccess(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), testLogger())
	result := n.SendChatMessage(context.Background(), "morning briefing", "")

	assert.True(t, result.OK)
	assert.Empty(t, result.Error)
	assert.Equal(t, "morning briefing", payload["text"])
}

func TestSlackExplicitURLOverridesConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewSlackNotifier("http://configured.invalid/hook", srv.Client(), testLogger())
	result := n.SendChatMessage(context.Background(), "hello", srv.URL)

	assert.True(t, result.OK)
}

func TestSlackNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), testLogger())
	result := n.SendChatMessage(context.Background(), "hello", "")

	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "500")
}

func TestSlackTransportFailure(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset")
	})}
	n := NewSlackNotifier("http://example.invalid/hook", client, testLogger())

	result := n.SendChatMessage(context.Background(), "hello", "")

	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "connection reset")
}

func TestErrTextGenericFallback(t *testing.T) {
	assert.Equal(t, "network error", errText(errors.New("")))
}
