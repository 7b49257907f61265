package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/internal/storage"
)

// NATSSubscriber listens for fleet events published by in-store POS
// agents and mirrors them into device status and the event log.
type NATSSubscriber struct {
	nc    *nats.Conn
	store storage.Store
	subs  []*nats.Subscription
}

// NewNATSSubscriber creates NATS subscriber
func NewNATSSubscriber(nc *nats.Conn, store storage.Store) *NATSSubscriber {
	return &NATSSubscriber{
		nc:    nc,
		store: store,
		subs:  make([]*nats.Subscription, 0),
	}
}

// Start starts subscriptions and blocks until the context is cancelled
func (s *NATSSubscriber) Start(ctx context.Context) error {
	// Subscribe to device status reports from in-store agents
	sub1, err := s.nc.Subscribe("pos.venue.*.device.*.status", s.handleDeviceStatus)
	if err != nil {
		return fmt.Errorf("subscribe device status: %w", err)
	}
	s.subs = append(s.subs, sub1)

	// Subscribe to device error reports
	sub2, err := s.nc.Subscribe("pos.venue.*.device.*.error", s.handleDeviceError)
	if err != nil {
		return fmt.Errorf("subscribe device error: %w", err)
	}
	s.subs = append(s.subs, sub2)

	log.Info().
		Int("subscriptions", len(s.subs)).
		Msg("NATS subscriber started")

	<-ctx.Done()

	// Unsubscribe
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}

	return ctx.Err()
}

// subjectIDs extracts the venue and device ids from a subject of the
// form pos.venue.<venue_id>.device.<device_id>.<kind>.
func subjectIDs(subject string) (uuid.UUID, uuid.UUID, error) {
	tokens := strings.Split(subject, ".")
	if len(tokens) != 6 || tokens[0] != "pos" || tokens[1] != "venue" || tokens[3] != "device" {
		return uuid.Nil, uuid.Nil, fmt.Errorf("unexpected subject %q", subject)
	}

	venueID, err := uuid.Parse(tokens[2])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid venue id in subject: %w", err)
	}

	deviceID, err := uuid.Parse(tokens[4])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid device id in subject: %w", err)
	}

	return venueID, deviceID, nil
}

// handleDeviceStatus handles device status reports
func (s *NATSSubscriber) handleDeviceStatus(msg *nats.Msg) {
	log.Debug().
		Str("subject", msg.Subject).
		Msg("Received device status")

	venueID, deviceID, err := subjectIDs(msg.Subject)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse status subject")
		return
	}

	var statusMsg struct {
		Status     string `json:"status"`
		ReportedAt string `json:"reported_at,omitempty"`
	}

	if err := json.Unmarshal(msg.Data, &statusMsg); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal device status")
		return
	}

	status := models.DeviceStatus(statusMsg.Status)
	switch status {
	case models.DeviceStatusOnline, models.DeviceStatusOffline, models.DeviceStatusError:
	default:
		log.Warn().Str("status", statusMsg.Status).Msg("Ignoring unknown device status")
		return
	}

	seenAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, statusMsg.ReportedAt); err == nil {
		seenAt = ts
	}

	ctx := context.Background()

	if err := s.store.UpdateDeviceStatus(ctx, deviceID, status, seenAt); err != nil {
		if err == storage.ErrNotFound {
			log.Warn().Str("device_id", deviceID.String()).Msg("Status report for unknown device")
			return
		}
		log.Error().Err(err).Msg("Failed to update device status")
		return
	}

	eventType := models.EventTypeDeviceOnline
	if status != models.DeviceStatusOnline {
		eventType = models.EventTypeDeviceOffline
	}

	event := &models.EventLog{
		VenueID:     &venueID,
		DeviceID:    &deviceID,
		Type:        eventType,
		Level:       models.EventLevelInfo,
		Code:        string(eventType),
		Description: fmt.Sprintf("Device reported %s", status),
		Details: models.Variables{
			"status": string(status),
		},
	}

	if err := s.store.CreateEventLog(ctx, event); err != nil {
		log.Error().Err(err).Msg("Failed to create event log")
	}

	log.Info().
		Str("device_id", deviceID.String()).
		Str("status", string(status)).
		Msg("Device status updated")
}

// handleDeviceError handles device error reports
func (s *NATSSubscriber) handleDeviceError(msg *nats.Msg) {
	log.Debug().
		Str("subject", msg.Subject).
		Msg("Received device error")

	venueID, deviceID, err := subjectIDs(msg.Subject)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse error subject")
		return
	}

	var errMsg struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	}

	if err := json.Unmarshal(msg.Data, &errMsg); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal device error")
		return
	}

	ctx := context.Background()

	if err := s.store.UpdateDeviceStatus(ctx, deviceID, models.DeviceStatusError, time.Now()); err != nil && err != storage.ErrNotFound {
		log.Error().Err(err).Msg("Failed to update device status")
	}

	eventType := models.EventTypeDeviceError
	if errMsg.Code == "PRINT_FAILED" {
		eventType = models.EventTypePrintFailed
	}

	event := &models.EventLog{
		VenueID:     &venueID,
		DeviceID:    &deviceID,
		Type:        eventType,
		Level:       models.EventLevelError,
		Code:        errMsg.Code,
		Description: errMsg.Message,
		Details:     models.Variables(errMsg.Details),
	}

	if err := s.store.CreateEventLog(ctx, event); err != nil {
		log.Error().Err(err).Msg("Failed to create event log")
	}

	log.Warn().
		Str("device_id", deviceID.String()).
		Str("code", errMsg.Code).
		Str("message", errMsg.Message).
		Msg("Device error reported")
}
