package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
)

// ========== Zone Methods ==========

// CreateZone creates a new zone
func (s *PostgresStore) CreateZone(ctx context.Context, zone *models.Zone) error {
	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}

	now := time.Now()
	zone.CreatedAt = now
	zone.UpdatedAt = now

	query := `
        INSERT INTO zones (id, created_at, updated_at, venue_id, name, sort_order)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.getDB().ExecContext(ctx, query,
		zone.ID, zone.CreatedAt, zone.UpdatedAt, zone.VenueID, zone.Name, zone.SortOrder,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetZone gets a zone by id
func (s *PostgresStore) GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	query := `
        SELECT id, created_at, updated_at, venue_id, name, sort_order
        FROM zones
        WHERE id = $1`

	zone := &models.Zone{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&zone.ID, &zone.CreatedAt, &zone.UpdatedAt, &zone.VenueID, &zone.Name, &zone.SortOrder,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return zone, nil
}

// UpdateZone updates a zone
func (s *PostgresStore) UpdateZone(ctx context.Context, zone *models.Zone) error {
	zone.UpdatedAt = time.Now()

	query := `
        UPDATE zones SET updated_at = $2, name = $3, sort_order = $4
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query, zone.ID, zone.UpdatedAt, zone.Name, zone.SortOrder)
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

// DeleteZone deletes a zone
func (s *PostgresStore) DeleteZone(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM zones WHERE id = $1", id)
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

// ListZones lists a venue's zones in display order
func (s *PostgresStore) ListZones(ctx context.Context, venueID uuid.UUID) ([]*models.Zone, error) {
	query := `
        SELECT id, created_at, updated_at, venue_id, name, sort_order
        FROM zones
        WHERE venue_id = $1
        ORDER BY sort_order, name`

	rows, err := s.getDB().QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*models.Zone
	for rows.Next() {
		zone := &models.Zone{}
		err := rows.Scan(&zone.ID, &zone.CreatedAt, &zone.UpdatedAt, &zone.VenueID, &zone.Name, &zone.SortOrder)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	return zones, rows.Err()
}

// ========== Table Methods ==========

// CreateTable creates a new table
func (s *PostgresStore) CreateTable(ctx context.Context, table *models.Table) error {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}

	now := time.Now()
	table.CreatedAt = now
	table.UpdatedAt = now

	query := `
        INSERT INTO tables (id, created_at, updated_at, venue_id, zone_id, label, seats, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.getDB().ExecContext(ctx, query,
		table.ID, table.CreatedAt, table.UpdatedAt, table.VenueID,
		table.ZoneID, table.Label, table.Seats, table.IsActive,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetTable gets a table by id
func (s *PostgresStore) GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	query := `
        SELECT id, created_at, updated_at, venue_id, zone_id, label, seats, is_active
        FROM tables
        WHERE id = $1`

	table := &models.Table{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&table.ID, &table.CreatedAt, &table.UpdatedAt, &table.VenueID,
		&table.ZoneID, &table.Label, &table.Seats, &table.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return table, nil
}

// UpdateTable updates a table
func (s *PostgresStore) UpdateTable(ctx context.Context, table *models.Table) error {
	table.UpdatedAt = time.Now()

	query := `
        UPDATE tables SET updated_at = $2, zone_id = $3, label = $4, seats = $5, is_active = $6
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		table.ID, table.UpdatedAt, table.ZoneID, table.Label, table.Seats, table.IsActive,
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

// DeleteTable deletes a table
func (s *PostgresStore) DeleteTable(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM tables WHERE id = $1", id)
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

// ListTables lists a venue's tables, optionally within one zone
func (s *PostgresStore) ListTables(ctx context.Context, venueID uuid.UUID, zoneID *uuid.UUID) ([]*models.Table, error) {
	query := `
        SELECT id, created_at, updated_at, venue_id, zone_id, label, seats, is_active
        FROM tables
        WHERE venue_id = $1`
	args := []interface{}{venueID}

	if zoneID != nil {
		query += " AND zone_id = $2"
		args = append(args, *zoneID)
	}
	query += " ORDER BY label"

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		err := rows.Scan(
			&table.ID, &table.CreatedAt, &table.UpdatedAt, &table.VenueID,
			&table.ZoneID, &table.Label, &table.Seats, &table.IsActive,
		)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, rows.Err()
}

// ========== Reservation Methods ==========

// CreateReservation creates a new reservation
func (s *PostgresStore) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	if reservation.Status == "" {
		reservation.Status = models.ReservationPending
	}

	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	query := `
        INSERT INTO reservations (
            id, created_at, updated_at, venue_id, table_id, party_name,
            party_size, phone, starts_at, ends_at, status, notes
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		reservation.ID, reservation.CreatedAt, reservation.UpdatedAt,
		reservation.VenueID, reservation.TableID, reservation.PartyName,
		reservation.PartySize, reservation.Phone, reservation.StartsAt,
		reservation.EndsAt, reservation.Status, reservation.Notes,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetReservation gets a reservation by id
func (s *PostgresStore) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	query := `
        SELECT id, created_at, updated_at, venue_id, table_id, party_name,
               party_size, phone, starts_at, ends_at, status, notes
        FROM reservations
        WHERE id = $1`

	reservation := &models.Reservation{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt,
		&reservation.VenueID, &reservation.TableID, &reservation.PartyName,
		&reservation.PartySize, &reservation.Phone, &reservation.StartsAt,
		&reservation.EndsAt, &reservation.Status, &reservation.Notes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// UpdateReservation updates a reservation
func (s *PostgresStore) UpdateReservation(ctx context.Context, reservation *models.Reservation) error {
	reservation.UpdatedAt = time.Now()

	query := `
        UPDATE reservations SET
            updated_at = $2, table_id = $3, party_name = $4, party_size = $5,
            phone = $6, starts_at = $7, ends_at = $8, status = $9, notes = $10
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		reservation.ID, reservation.UpdatedAt, reservation.TableID,
		reservation.PartyName, reservation.PartySize, reservation.Phone,
		reservation.StartsAt, reservation.EndsAt, reservation.Status, reservation.Notes,
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

// DeleteReservation deletes a reservation
func (s *PostgresStore) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM reservations WHERE id = $1", id)
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

// ListReservations lists reservations matching the filters
func (s *PostgresStore) ListReservations(ctx context.Context, filters ReservationFilters, limit, offset int) ([]*models.Reservation, int64, error) {
	var conditions []string
	var args []interface{}

	if filters.VenueID != nil {
		args = append(args, *filters.VenueID)
		conditions = append(conditions, fmt.Sprintf("venue_id = $%d", len(args)))
	}
	if filters.TableID != nil {
		args = append(args, *filters.TableID)
		conditions = append(conditions, fmt.Sprintf("table_id = $%d", len(args)))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		conditions = append(conditions, fmt.Sprintf("starts_at >= $%d", len(args)))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		conditions = append(conditions, fmt.Sprintf("starts_at < $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int64
	if err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
        SELECT id, created_at, updated_at, venue_id, table_id, party_name,
               party_size, phone, starts_at, ends_at, status, notes
        FROM reservations%s
        ORDER BY starts_at
        LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := s.getDB().QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		reservation := &models.Reservation{}
		err := rows.Scan(
			&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt,
			&reservation.VenueID, &reservation.TableID, &reservation.PartyName,
			&reservation.PartySize, &reservation.Phone, &reservation.StartsAt,
			&reservation.EndsAt, &reservation.Status, &reservation.Notes,
		)
		if err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, reservation)
	}

	return reservations, count, rows.Err()
}
