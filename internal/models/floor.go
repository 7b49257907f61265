package models

import (
	"time"

	"github.com/google/uuid"
)

// Zone represents a named area of the floor plan (patio, bar, ...)
type Zone struct {
	VenueModel

	Name      string `json:"name" db:"name"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}

// Table represents a physical table within a zone
type Table struct {
	VenueModel

	ZoneID   uuid.UUID `json:"zone_id" db:"zone_id"`
	Label    string    `json:"label" db:"label"`
	Seats    int       `json:"seats" db:"seats"`
	IsActive bool      `json:"is_active" db:"is_active"`
}

// ReservationStatus tracks a reservation through its lifecycle
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

// Valid reports whether the status is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated,
		ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// Reservation represents a booking for a table
type Reservation struct {
	VenueModel

	TableID *uuid.UUID `json:"table_id,omitempty" db:"table_id"`

	PartyName string `json:"party_name" db:"party_name"`
	PartySize int    `json:"party_size" db:"party_size"`
	Phone     string `json:"phone,omitempty" db:"phone"`

	StartsAt time.Time `json:"starts_at" db:"starts_at"`
	EndsAt   time.Time `json:"ends_at" db:"ends_at"`

	Status ReservationStatus `json:"status" db:"status"`
	Notes  string            `json:"notes,omitempty" db:"notes"`
}
