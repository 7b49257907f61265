package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/internal/storage"
)

// HandleListEvents lists event log entries
func (s *RESTServer) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters storage.EventLogFilters
	if vid := r.URL.Query().Get("venue_id"); vid != "" {
		id, err := uuid.Parse(vid)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid venue_id")
			return
		}
		filters.VenueID = &id
	}
	if did := r.URL.Query().Get("device_id"); did != "" {
		id, err := uuid.Parse(did)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid device_id")
			return
		}
		filters.DeviceID = &id
	}
	if t := r.URL.Query().Get("type"); t != "" {
		eventType := models.EventType(t)
		filters.Type = &eventType
	}
	if lvl := r.URL.Query().Get("level"); lvl != "" {
		level := models.EventLevel(lvl)
		filters.Level = &level
	}
	if start := r.URL.Query().Get("start_time"); start != "" {
		ts, err := time.Parse(time.RFC3339, start)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid start_time")
			return
		}
		filters.StartTime = &ts
	}
	if end := r.URL.Query().Get("end_time"); end != "" {
		ts, err := time.Parse(time.RFC3339, end)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid end_time")
			return
		}
		filters.EndTime = &ts
	}

	limit, offset := pagination(r)

	events, total, err := s.store.ListEventLogs(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  total,
	})
}
