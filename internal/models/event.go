package models

import (
	"time"

	"github.com/google/uuid"
)

// EventLog represents an operational event log entry
type EventLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	VenueID  *uuid.UUID `json:"venue_id,omitempty" db:"venue_id"`
	DeviceID *uuid.UUID `json:"device_id,omitempty" db:"device_id"`

	Type        EventType  `json:"type" db:"type"`
	Level       EventLevel `json:"level" db:"level"`
	Code        string     `json:"code" db:"code"`
	Description string     `json:"description" db:"description"`

	Details Variables `json:"details,omitempty" db:"details"`
}

// EventType represents event types
type EventType string

const (
	// Device fleet events
	EventTypeDeviceOnline  EventType = "DEVICE_ONLINE"
	EventTypeDeviceOffline EventType = "DEVICE_OFFLINE"
	EventTypeDeviceError   EventType = "DEVICE_ERROR"
	EventTypePrintFailed   EventType = "PRINT_FAILED"

	// Configuration events
	EventTypeDeviceCreated EventType = "DEVICE_CREATED"
	EventTypeDeviceUpdated EventType = "DEVICE_UPDATED"
	EventTypeDeviceDeleted EventType = "DEVICE_DELETED"
)

// EventLevel represents event severity levels
type EventLevel string

const (
	EventLevelDebug   EventLevel = "DEBUG"
	EventLevelInfo    EventLevel = "INFO"
	EventLevelWarning EventLevel = "WARNING"
	EventLevelError   EventLevel = "ERROR"
)
