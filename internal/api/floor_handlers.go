package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/internal/storage"
)

// ========== Zone handlers ==========

// HandleListZones lists a venue's zones
func (s *RESTServer) HandleListZones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	venueID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid venue id")
		return
	}

	zones, err := s.store.ListZones(ctx, venueID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"zones": zones,
	})
}

// HandleCreateZone creates a zone
func (s *RESTServer) HandleCreateZone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VenueID   uuid.UUID `json:"venue_id" validate:"required"`
		Name      string    `json:"name" validate:"required,min=1,max=100"`
		SortOrder int       `json:"sort_order"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	zone := &models.Zone{
		VenueModel: models.VenueModel{
			VenueID: req.VenueID,
		},
		Name:      req.Name,
		SortOrder: req.SortOrder,
	}

	if err := s.store.CreateZone(r.Context(), zone); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "zone already exists")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, zone)
}

// HandleGetZone gets a zone
func (s *RESTServer) HandleGetZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid zone id")
		return
	}

	zone, err := s.store.GetZone(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "zone not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, zone)
}

// HandleUpdateZone updates a zone
func (s *RESTServer) HandleUpdateZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid zone id")
		return
	}

	var req struct {
		Name      string `json:"name" validate:"required,min=1,max=100"`
		SortOrder int    `json:"sort_order"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	zone, err := s.store.GetZone(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "zone not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	zone.Name = req.Name
	zone.SortOrder = req.SortOrder

	if err := s.store.UpdateZone(ctx, zone); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, zone)
}

// HandleDeleteZone deletes a zone
func (s *RESTServer) HandleDeleteZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid zone id")
		return
	}

	if err := s.store.DeleteZone(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "zone not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ========== Table handlers ==========

// HandleListTables lists a venue's tables
func (s *RESTServer) HandleListTables(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	venueID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid venue id")
		return
	}

	var zoneID *uuid.UUID
	if zid := r.URL.Query().Get("zone_id"); zid != "" {
		id, err := uuid.Parse(zid)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid zone_id")
			return
		}
		zoneID = &id
	}

	tables, err := s.store.ListTables(ctx, venueID, zoneID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tables": tables,
	})
}

// HandleCreateTable creates a table
func (s *RESTServer) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VenueID uuid.UUID `json:"venue_id" validate:"required"`
		ZoneID  uuid.UUID `json:"zone_id" validate:"required"`
		Label   string    `json:"label" validate:"required,min=1,max=20"`
		Seats   int       `json:"seats" validate:"required,min=1,max=50"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	table := &models.Table{
		VenueModel: models.VenueModel{
			VenueID: req.VenueID,
		},
		ZoneID:   req.ZoneID,
		Label:    req.Label,
		Seats:    req.Seats,
		IsActive: true,
	}

	if err := s.store.CreateTable(r.Context(), table); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "table already exists")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, table)
}

// HandleGetTable gets a table
func (s *RESTServer) HandleGetTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid table id")
		return
	}

	table, err := s.store.GetTable(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "table not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, table)
}

// HandleUpdateTable updates a table
func (s *RESTServer) HandleUpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid table id")
		return
	}

	var req struct {
		ZoneID   uuid.UUID `json:"zone_id" validate:"required"`
		Label    string    `json:"label" validate:"required,min=1,max=20"`
		Seats    int       `json:"seats" validate:"required,min=1,max=50"`
		IsActive bool      `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := s.store.GetTable(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "table not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	table.ZoneID = req.ZoneID
	table.Label = req.Label
	table.Seats = req.Seats
	table.IsActive = req.IsActive

	if err := s.store.UpdateTable(ctx, table); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, table)
}

// HandleDeleteTable deletes a table
func (s *RESTServer) HandleDeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid table id")
		return
	}

	if err := s.store.DeleteTable(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "table not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ========== Reservation handlers ==========

// HandleListReservations lists reservations
func (s *RESTServer) HandleListReservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters storage.ReservationFilters
	if vid := r.URL.Query().Get("venue_id"); vid != "" {
		id, err := uuid.Parse(vid)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid venue_id")
			return
		}
		filters.VenueID = &id
	}
	if tid := r.URL.Query().Get("table_id"); tid != "" {
		id, err := uuid.Parse(tid)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid table_id")
			return
		}
		filters.TableID = &id
	}
	if st := r.URL.Query().Get("status"); st != "" {
		status := models.ReservationStatus(st)
		if !status.Valid() {
			s.respondError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filters.Status = &status
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filters.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filters.To = &t
	}

	limit, offset := pagination(r)

	reservations, total, err := s.store.ListReservations(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
		"total":        total,
	})
}

// HandleCreateReservation creates a reservation
func (s *RESTServer) HandleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VenueID   uuid.UUID  `json:"venue_id" validate:"required"`
		TableID   *uuid.UUID `json:"table_id,omitempty"`
		PartyName string     `json:"party_name" validate:"required,min=1,max=100"`
		PartySize int        `json:"party_size" validate:"required,min=1,max=100"`
		Phone     string     `json:"phone,omitempty"`
		StartsAt  time.Time  `json:"starts_at" validate:"required"`
		EndsAt    time.Time  `json:"ends_at" validate:"required"`
		Notes     string     `json:"notes,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		s.respondError(w, http.StatusBadRequest, "ends_at must be after starts_at")
		return
	}

	reservation := &models.Reservation{
		VenueModel: models.VenueModel{
			VenueID: req.VenueID,
		},
		TableID:   req.TableID,
		PartyName: req.PartyName,
		PartySize: req.PartySize,
		Phone:     req.Phone,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Status:    models.ReservationPending,
		Notes:     req.Notes,
	}

	if err := s.store.CreateReservation(r.Context(), reservation); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, reservation)
}

// HandleGetReservation gets a reservation
func (s *RESTServer) HandleGetReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	reservation, err := s.store.GetReservation(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "reservation not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, reservation)
}

// HandleUpdateReservation updates a reservation
func (s *RESTServer) HandleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	var req struct {
		TableID   *uuid.UUID `json:"table_id,omitempty"`
		PartyName string     `json:"party_name" validate:"required,min=1,max=100"`
		PartySize int        `json:"party_size" validate:"required,min=1,max=100"`
		Phone     string     `json:"phone,omitempty"`
		StartsAt  time.Time  `json:"starts_at" validate:"required"`
		EndsAt    time.Time  `json:"ends_at" validate:"required"`
		Status    string     `json:"status" validate:"required"`
		Notes     string     `json:"notes,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := models.ReservationStatus(req.Status)
	if !status.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		s.respondError(w, http.StatusBadRequest, "ends_at must be after starts_at")
		return
	}

	reservation, err := s.store.GetReservation(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "reservation not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reservation.TableID = req.TableID
	reservation.PartyName = req.PartyName
	reservation.PartySize = req.PartySize
	reservation.Phone = req.Phone
	reservation.StartsAt = req.StartsAt
	reservation.EndsAt = req.EndsAt
	reservation.Status = status
	reservation.Notes = req.Notes

	if err := s.store.UpdateReservation(ctx, reservation); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, reservation)
}

// HandleDeleteReservation deletes a reservation
func (s *RESTServer) HandleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	if err := s.store.DeleteReservation(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "reservation not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
