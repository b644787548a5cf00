package upstream

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vessel_briefing_bot/internal/domain/briefing"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestVesselClientFetchState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/vessel/state", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"name":"X","status":"underway","currentPort":"Busan","currentVoyageId":"V-12"}`)
	}))
	defer srv.Close()

	client := NewHTTPVesselClient(srv.URL, srv.Client())
	state, err := client.FetchState(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "X", state.Name)
	assert.Equal(t, "underway", state.Status)
	assert.Equal(t, "Busan", state.CurrentPort)
	assert.Equal(t, "V-12", state.CurrentVoyageID)
}

func TestVesselClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPVesselClient(srv.URL, srv.Client())
	state, err := client.FetchState(context.Background())

	require.Error(t, err)
	assert.Nil(t, state)
	assert.Contains(t, err.Error(), "503")
}

func TestMarineClientFetchesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/marine/snapshot", r.URL.Path)
		require.Equal(t, "Port of Busan", r.URL.Query().Get("port"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"hsM":1.2,"windKt":15.4,"fetchedAt":"2025-06-01T07:00:00Z"}`)
	}))
	defer srv.Close()

	client := NewHTTPMarineClient([]string{srv.URL}, srv.Client(), testLogger())
	snap, err := client.FetchSnapshot(context.Background(), "Port of Busan")
	require.NoError(t, err)

	require.NotNil(t, snap.HsM)
	assert.Equal(t, 1.2, *snap.HsM)
	require.NotNil(t, snap.WindKt)
	assert.Equal(t, 15.4, *snap.WindKt)
	assert.Nil(t, snap.SwellPeriodS)
	assert.Equal(t, time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC), snap.FetchedAt.UTC())
}

func TestMarineClientFallsBackInOrder(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"hsM":0.8,"fetchedAt":"2025-06-01T07:00:00Z"}`)
	}))
	defer working.Close()

	client := NewHTTPMarineClient([]string{failing.URL, working.URL}, http.DefaultClient, testLogger())
	snap, err := client.FetchSnapshot(context.Background(), "Busan")
	require.NoError(t, err)
	require.NotNil(t, snap.HsM)
	assert.Equal(t, 0.8, *snap.HsM)
}

func TestMarineClientAllProvidersFail(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	client := NewHTTPMarineClient([]string{failing.URL, failing.URL}, http.DefaultClient, testLogger())
	snap, err := client.FetchSnapshot(context.Background(), "Busan")

	require.Error(t, err)
	assert.Nil(t, snap)
}

func TestMarineClientNoProvidersConfigured(t *testing.T) {
	client := NewHTTPMarineClient(nil, http.DefaultClient, testLogger())
	_, err := client.FetchSnapshot(context.Background(), "Busan")
	require.Error(t, err)
}

func TestNarrativeClientPostsRequest(t *testing.T) {
	var got briefing.NarrativeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/briefing/narrative", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"narrative":"Headline\nBody"}`)
	}))
	defer srv.Close()

	client := NewHTTPNarrativeClient(srv.URL, srv.Client())
	narrative, err := client.GenerateNarrative(context.Background(), &briefing.NarrativeRequest{
		VesselName:      "X",
		CurrentVoyageID: "V-12",
	})
	require.NoError(t, err)

	assert.Equal(t, "Headline\nBody", narrative)
	assert.Equal(t, "X", got.VesselName)
	assert.Equal(t, "V-12", got.CurrentVoyageID)
}

func TestNarrativeClientEmptyNarrative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"narrative":"  "}`)
	}))
	defer srv.Close()

	client := NewHTTPNarrativeClient(srv.URL, srv.Client())
	_, err := client.GenerateNarrative(context.Background(), &briefing.NarrativeRequest{})
	require.Error(t, err)
}

func TestNarrativeClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPNarrativeClient(srv.URL, srv.Client())
	_, err := client.GenerateNarrative(context.Background(), &briefing.NarrativeRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
