package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
)

// ========== Venue Methods ==========

// CreateVenue creates a new venue
func (s *PostgresStore) CreateVenue(ctx context.Context, venue *models.Venue) error {
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}

	now := time.Now()
	venue.CreatedAt = now
	venue.UpdatedAt = now

	query := `
        INSERT INTO venues (
            id, created_at, updated_at, name, address, timezone, currency, is_active
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		venue.ID, venue.CreatedAt, venue.UpdatedAt, venue.Name,
		venue.Address, venue.Timezone, venue.Currency, venue.IsActive,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetVenue gets a venue by id, including aggregate counts
func (s *PostgresStore) GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	query := `
        SELECT v.id, v.created_at, v.updated_at, v.name, v.address, v.timezone,
               v.currency, v.is_active,
               (SELECT COUNT(*) FROM hardware_devices d WHERE d.venue_id = v.id),
               (SELECT COUNT(*) FROM tables t WHERE t.venue_id = v.id)
        FROM venues v
        WHERE v.id = $1`

	venue := &models.Venue{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&venue.ID, &venue.CreatedAt, &venue.UpdatedAt, &venue.Name,
		&venue.Address, &venue.Timezone, &venue.Currency, &venue.IsActive,
		&venue.DeviceCount, &venue.TableCount,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return venue, nil
}

// UpdateVenue updates a venue
func (s *PostgresStore) UpdateVenue(ctx context.Context, venue *models.Venue) error {
	venue.UpdatedAt = time.Now()

	query := `
        UPDATE venues SET
            updated_at = $2, name = $3, address = $4, timezone = $5,
            currency = $6, is_active = $7
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		venue.ID, venue.UpdatedAt, venue.Name, venue.Address,
		venue.Timezone, venue.Currency, venue.IsActive,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
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

// DeleteVenue deletes a venue
func (s *PostgresStore) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM venues WHERE id = $1", id)
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

// ListVenues lists venues
func (s *PostgresStore) ListVenues(ctx context.Context, limit, offset int) ([]*models.Venue, int64, error) {
	var count int64
	if err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM venues").Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `
        SELECT id, created_at, updated_at, name, address, timezone, currency, is_active
        FROM venues
        ORDER BY name
        LIMIT $1 OFFSET $2`

	rows, err := s.getDB().QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var venues []*models.Venue
	for rows.Next() {
		venue := &models.Venue{}
		err := rows.Scan(
			&venue.ID, &venue.CreatedAt, &venue.UpdatedAt, &venue.Name,
			&venue.Address, &venue.Timezone, &venue.Currency, &venue.IsActive,
		)
		if err != nil {
			return nil, 0, err
		}
		venues = append(venues, venue)
	}

	return venues, count, rows.Err()
}
