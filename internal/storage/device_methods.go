package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/pkg/hardware"
)

// ========== Hardware Device Methods ==========

// CreateHardwareDevice creates a new hardware device
func (s *PostgresStore) CreateHardwareDevice(ctx context.Context, device *models.HardwareDevice) error {
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	if device.Status == "" {
		device.Status = models.DeviceStatusUnknown
	}

	now := time.Now()
	device.CreatedAt = now
	device.UpdatedAt = now

	connRaw, devRaw, err := marshalConfigs(device)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO hardware_devices (
            id, created_at, updated_at, venue_id, name, type, connection_type,
            terminal_id, enabled, connection_config, device_config, status, last_seen_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
        )`

	_, err = s.getDB().ExecContext(ctx, query,
		device.ID, device.CreatedAt, device.UpdatedAt, device.VenueID,
		device.Name, device.Type, device.ConnectionType, device.TerminalID,
		device.Enabled, connRaw, devRaw, device.Status, device.LastSeenAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetHardwareDevice gets a hardware device by id
func (s *PostgresStore) GetHardwareDevice(ctx context.Context, id uuid.UUID) (*models.HardwareDevice, error) {
	query := `
        SELECT id, created_at, updated_at, venue_id, name, type, connection_type,
               terminal_id, enabled, connection_config, device_config, status, last_seen_at
        FROM hardware_devices
        WHERE id = $1`

	device, err := scanDevice(s.getDB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return device, nil
}

// UpdateHardwareDevice updates a hardware device. Type and
// connection_type are fixed at creation and deliberately not part of
// the UPDATE: changing either invalidates the configuration blocks, so
// it is modeled as delete and recreate.
func (s *PostgresStore) UpdateHardwareDevice(ctx context.Context, device *models.HardwareDevice) error {
	device.UpdatedAt = time.Now()

	connRaw, devRaw, err := marshalConfigs(device)
	if err != nil {
		return err
	}

	query := `
        UPDATE hardware_devices SET
            updated_at = $2, name = $3, terminal_id = $4, enabled = $5,
            connection_config = $6, device_config = $7, status = $8, last_seen_at = $9
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		device.ID, device.UpdatedAt, device.Name, device.TerminalID,
		device.Enabled, connRaw, devRaw, device.Status, device.LastSeenAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteHardwareDevice deletes a hardware device
func (s *PostgresStore) DeleteHardwareDevice(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM hardware_devices WHERE id = $1", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListHardwareDevices lists hardware devices matching the filters
func (s *PostgresStore) ListHardwareDevices(ctx context.Context, filters DeviceFilters, limit, offset int) ([]*models.HardwareDevice, int64, error) {
	where, args := deviceFilterClause(filters)

	var count int64
	countQuery := "SELECT COUNT(*) FROM hardware_devices" + where
	if err := s.getDB().QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
        SELECT id, created_at, updated_at, venue_id, name, type, connection_type,
               terminal_id, enabled, connection_config, device_config, status, last_seen_at
        FROM hardware_devices%s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := s.getDB().QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var devices []*models.HardwareDevice
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, 0, err
		}
		devices = append(devices, device)
	}

	return devices, count, rows.Err()
}

// UpdateDeviceStatus records a fleet status report for a device
func (s *PostgresStore) UpdateDeviceStatus(ctx context.Context, id uuid.UUID, status models.DeviceStatus, seenAt time.Time) error {
	query := `
        UPDATE hardware_devices SET status = $2, last_seen_at = $3, updated_at = $4
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query, id, status, seenAt, time.Now())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func deviceFilterClause(filters DeviceFilters) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filters.VenueID != nil {
		args = append(args, *filters.VenueID)
		conditions = append(conditions, fmt.Sprintf("venue_id = $%d", len(args)))
	}
	if filters.Type != nil {
		args = append(args, *filters.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filters.Enabled != nil {
		args = append(args, *filters.Enabled)
		conditions = append(conditions, fmt.Sprintf("enabled = $%d", len(args)))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func marshalConfigs(device *models.HardwareDevice) ([]byte, []byte, error) {
	connRaw, err := json.Marshal(device.ConnectionConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal connection config: %w", err)
	}
	devRaw, err := json.Marshal(device.DeviceConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal device config: %w", err)
	}
	return connRaw, devRaw, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDevice(row rowScanner) (*models.HardwareDevice, error) {
	device := &models.HardwareDevice{}
	var connRaw, devRaw []byte

	err := row.Scan(
		&device.ID, &device.CreatedAt, &device.UpdatedAt, &device.VenueID,
		&device.Name, &device.Type, &device.ConnectionType, &device.TerminalID,
		&device.Enabled, &connRaw, &devRaw, &device.Status, &device.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}

	// Rehydrate the tag-selected union variants from JSONB.
	device.ConnectionConfig, err = hardware.UnmarshalConnectionConfig(device.ConnectionType, connRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: device %s: %v", ErrInvalidData, device.ID, err)
	}
	device.DeviceConfig, err = hardware.UnmarshalDeviceConfig(device.Type, devRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: device %s: %v", ErrInvalidData, device.ID, err)
	}

	return device, nil
}
