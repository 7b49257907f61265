package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/internal/storage"
)

// ========== Venue handlers ==========

// HandleListVenues lists venues
func (s *RESTServer) HandleListVenues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, offset := pagination(r)

	venues, total, err := s.store.ListVenues(ctx, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"venues": venues,
		"total":  total,
	})
}

// HandleCreateVenue creates a venue
func (s *RESTServer) HandleCreateVenue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Address  string `json:"address"`
		Timezone string `json:"timezone"`
		Currency string `json:"currency"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	venue := &models.Venue{
		Name:     req.Name,
		Address:  req.Address,
		Timezone: req.Timezone,
		Currency: req.Currency,
		IsActive: true,
	}

	if venue.Timezone == "" {
		venue.Timezone = "UTC"
	}
	if venue.Currency == "" {
		venue.Currency = "EUR"
	}

	if err := s.store.CreateVenue(r.Context(), venue); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "venue already exists")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, venue)
}

// HandleGetVenue gets a venue
func (s *RESTServer) HandleGetVenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid venue id")
		return
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "venue not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, venue)
}

// HandleUpdateVenue updates a venue
func (s *RESTServer) HandleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid venue id")
		return
	}

	var req struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Address  string `json:"address"`
		Timezone string `json:"timezone"`
		Currency string `json:"currency"`
		IsActive bool   `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "venue not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	venue.Name = req.Name
	venue.Address = req.Address
	if req.Timezone != "" {
		venue.Timezone = req.Timezone
	}
	if req.Currency != "" {
		venue.Currency = req.Currency
	}
	venue.IsActive = req.IsActive

	if err := s.store.UpdateVenue(ctx, venue); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, venue)
}

// HandleDeleteVenue deletes a venue
func (s *RESTServer) HandleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid venue id")
		return
	}

	if err := s.store.DeleteVenue(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "venue not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
