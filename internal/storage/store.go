package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/pkg/hardware"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidData  = errors.New("invalid data")
)

// Store defines the storage interface
type Store interface {
	// Transaction support
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, venueID *uuid.UUID, limit, offset int) ([]*models.User, int64, error)

	// Venue methods
	CreateVenue(ctx context.Context, venue *models.Venue) error
	GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error)
	UpdateVenue(ctx context.Context, venue *models.Venue) error
	DeleteVenue(ctx context.Context, id uuid.UUID) error
	ListVenues(ctx context.Context, limit, offset int) ([]*models.Venue, int64, error)

	// Hardware device methods
	CreateHardwareDevice(ctx context.Context, device *models.HardwareDevice) error
	GetHardwareDevice(ctx context.Context, id uuid.UUID) (*models.HardwareDevice, error)
	UpdateHardwareDevice(ctx context.Context, device *models.HardwareDevice) error
	DeleteHardwareDevice(ctx context.Context, id uuid.UUID) error
	ListHardwareDevices(ctx context.Context, filters DeviceFilters, limit, offset int) ([]*models.HardwareDevice, int64, error)
	UpdateDeviceStatus(ctx context.Context, id uuid.UUID, status models.DeviceStatus, seenAt time.Time) error

	// Zone methods
	CreateZone(ctx context.Context, zone *models.Zone) error
	GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	UpdateZone(ctx context.Context, zone *models.Zone) error
	DeleteZone(ctx context.Context, id uuid.UUID) error
	ListZones(ctx context.Context, venueID uuid.UUID) ([]*models.Zone, error)

	// Table methods
	CreateTable(ctx context.Context, table *models.Table) error
	GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error)
	UpdateTable(ctx context.Context, table *models.Table) error
	DeleteTable(ctx context.Context, id uuid.UUID) error
	ListTables(ctx context.Context, venueID uuid.UUID, zoneID *uuid.UUID) ([]*models.Table, error)

	// Reservation methods
	CreateReservation(ctx context.Context, reservation *models.Reservation) error
	GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, reservation *models.Reservation) error
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	ListReservations(ctx context.Context, filters ReservationFilters, limit, offset int) ([]*models.Reservation, int64, error)

	// Event log methods
	CreateEventLog(ctx context.Context, event *models.EventLog) error
	ListEventLogs(ctx context.Context, filters EventLogFilters, limit, offset int) ([]*models.EventLog, int64, error)

	// Close the store
	Close() error
}

// DeviceFilters represents filters for hardware device listings
type DeviceFilters struct {
	VenueID *uuid.UUID
	Type    *hardware.DeviceType
	Enabled *bool
	Status  *models.DeviceStatus
}

// ReservationFilters represents filters for reservation listings
type ReservationFilters struct {
	VenueID *uuid.UUID
	TableID *uuid.UUID
	Status  *models.ReservationStatus
	From    *time.Time
	To      *time.Time
}

// EventLogFilters represents filters for event logs
type EventLogFilters struct {
	VenueID   *uuid.UUID
	DeviceID  *uuid.UUID
	Type      *models.EventType
	Level     *models.EventLevel
	StartTime *time.Time
	EndTime   *time.Time
}
