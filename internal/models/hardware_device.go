package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/pkg/hardware"
)

// DeviceStatus is the last reported fleet status of a device
type DeviceStatus string

const (
	DeviceStatusUnknown DeviceStatus = "unknown"
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
	DeviceStatusError   DeviceStatus = "error"
)

// HardwareDevice is the persisted form of a configured peripheral: the
// pure configuration record from pkg/hardware plus venue scoping and
// the fleet status reported by in-store agents.
type HardwareDevice struct {
	BaseModel

	VenueID uuid.UUID `json:"venue_id" db:"venue_id"`

	Name           string                  `json:"name" db:"name"`
	Type           hardware.DeviceType     `json:"type" db:"type"`
	ConnectionType hardware.ConnectionType `json:"connection_type" db:"connection_type"`
	TerminalID     *uuid.UUID              `json:"terminal_id,omitempty" db:"terminal_id"`
	Enabled        bool                    `json:"enabled" db:"enabled"`

	ConnectionConfig hardware.ConnectionConfig `json:"connection_config" db:"connection_config"`
	DeviceConfig     hardware.DeviceConfig     `json:"device_config" db:"device_config"`

	Status     DeviceStatus `json:"status" db:"status"`
	LastSeenAt *time.Time   `json:"last_seen_at,omitempty" db:"last_seen_at"`
}

// Core returns the validation-facing device record. Validation never
// mutates it, so the shared config blocks are safe to alias.
func (d *HardwareDevice) Core() *hardware.Device {
	var terminalID string
	if d.TerminalID != nil {
		terminalID = d.TerminalID.String()
	}

	return &hardware.Device{
		ID:               d.ID.String(),
		Name:             d.Name,
		Type:             d.Type,
		ConnectionType:   d.ConnectionType,
		TerminalID:       terminalID,
		Enabled:          d.Enabled,
		ConnectionConfig: d.ConnectionConfig,
		DeviceConfig:     d.DeviceConfig,
	}
}
