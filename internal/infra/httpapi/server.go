// internal/infra/httpapi/server.go
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"vessel_briefing_bot/internal/app"
	"vessel_briefing_bot/internal/domain/briefing"
)

// Server is the dispatch trigger surface. It always answers with a
// structured JSON body; an error status is used only when a mandatory
// upstream source fails.
type Server struct {
	router   *mux.Router
	service  app.BriefingService
	location *time.Location
	logger   *logrus.Logger
	now      func() time.Time
}

func NewServer(service app.BriefingService, location *time.Location, logger *logrus.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		service:  service,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/briefing/dispatch", s.handleDispatch).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type dispatchResponse struct {
	OK          bool                    `json:"ok"`
	Slot        briefing.Slot           `json:"slot"`
	GeneratedAt string                  `json:"generatedAt,omitempty"`
	Timezone    string                  `json:"timezone"`
	Sample      string                  `json:"sample"`
	Sent        []briefing.NotifyResult `json:"sent"`
	Error       string                  `json:"error,omitempty"`
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if preview := query.Get("preview"); preview == "true" || preview == "1" {
		s.writeJSON(w, http.StatusOK, s.responseFrom(s.service.Preview()))
		return
	}

	now := s.now()
	slot := briefing.ResolveSlot(query.Get("slot"), now, s.location)

	record, err := s.service.Generate(r.Context(), slot, now)
	if err != nil {
		s.logger.WithError(err).WithField("slot", slot).Error("briefing generation failed")
		s.writeJSON(w, http.StatusBadGateway, dispatchResponse{
			OK:       false,
			Slot:     slot,
			Timezone: s.location.String(),
			Sent:     []briefing.NotifyResult{},
			Error:    err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, s.responseFrom(record))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// responseFrom maps a record into the wire shape. A nil record (preview
// before any pass) yields all-absent values.
func (s *Server) responseFrom(record *briefing.ReportRecord) dispatchResponse {
	if record == nil {
		return dispatchResponse{
			Timezone: s.location.String(),
			Sent:     []briefing.NotifyResult{},
		}
	}
	return dispatchResponse{
		OK:          record.OK,
		Slot:        record.Slot,
		GeneratedAt: record.GeneratedAt.In(s.location).Format(time.RFC3339),
		Timezone:    record.Timezone,
		Sample:      record.Sample,
		Sent:        record.Sent,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}
