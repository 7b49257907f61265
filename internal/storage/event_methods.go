package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuepos/venuepos-server/internal/models"
)

// CreateEventLog creates a new event log entry
func (s *PostgresStore) CreateEventLog(ctx context.Context, event *models.EventLog) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if event.Level == "" {
		event.Level = models.EventLevelInfo
	}

	query := `
        INSERT INTO event_logs (
            id, created_at, venue_id, device_id, type, level, code, description, details
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		event.ID, event.CreatedAt, event.VenueID, event.DeviceID,
		event.Type, event.Level, event.Code, event.Description, event.Details,
	)

	return err
}

// ListEventLogs lists event log entries matching the filters, newest first
func (s *PostgresStore) ListEventLogs(ctx context.Context, filters EventLogFilters, limit, offset int) ([]*models.EventLog, int64, error) {
	var conditions []string
	var args []interface{}

	if filters.VenueID != nil {
		args = append(args, *filters.VenueID)
		conditions = append(conditions, fmt.Sprintf("venue_id = $%d", len(args)))
	}
	if filters.DeviceID != nil {
		args = append(args, *filters.DeviceID)
		conditions = append(conditions, fmt.Sprintf("device_id = $%d", len(args)))
	}
	if filters.Type != nil {
		args = append(args, *filters.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filters.Level != nil {
		args = append(args, *filters.Level)
		conditions = append(conditions, fmt.Sprintf("level = $%d", len(args)))
	}
	if filters.StartTime != nil {
		args = append(args, *filters.StartTime)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filters.EndTime != nil {
		args = append(args, *filters.EndTime)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int64
	if err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM event_logs"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
        SELECT id, created_at, venue_id, device_id, type, level, code, description, details
        FROM event_logs%s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := s.getDB().QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*models.EventLog
	for rows.Next() {
		event := &models.EventLog{}
		err := rows.Scan(
			&event.ID, &event.CreatedAt, &event.VenueID, &event.DeviceID,
			&event.Type, &event.Level, &event.Code, &event.Description, &event.Details,
		)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}

	return events, count, rows.Err()
}
