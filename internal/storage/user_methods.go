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

// ========== User Methods ==========

// CreateUser creates a new user. The password hash must already be set.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (
            id, created_at, updated_at, email, first_name, last_name,
            password_hash, role, is_active, venue_id
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		user.ID, user.CreatedAt, user.UpdatedAt, user.Email, user.FirstName,
		user.LastName, user.PasswordHash, user.Role, user.IsActive, user.VenueID,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetUser gets a user by id
func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getUserBy(ctx, "id = $1", id)
}

// GetUserByEmail gets a user by email
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserBy(ctx, "email = $1", email)
}

func (s *PostgresStore) getUserBy(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := fmt.Sprintf(`
        SELECT id, created_at, updated_at, email, first_name, last_name,
               password_hash, role, is_active, last_login_at, venue_id
        FROM users
        WHERE %s`, where)

	user := &models.User{}
	err := s.getDB().QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Email, &user.FirstName,
		&user.LastName, &user.PasswordHash, &user.Role, &user.IsActive,
		&user.LastLoginAt, &user.VenueID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser updates a user
func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
        UPDATE users SET
            updated_at = $2, email = $3, first_name = $4, last_name = $5,
            password_hash = $6, role = $7, is_active = $8, last_login_at = $9,
            venue_id = $10
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		user.ID, user.UpdatedAt, user.Email, user.FirstName, user.LastName,
		user.PasswordHash, user.Role, user.IsActive, user.LastLoginAt, user.VenueID,
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

// DeleteUser deletes a user
func (s *PostgresStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
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

// ListUsers lists users, optionally scoped to a venue
func (s *PostgresStore) ListUsers(ctx context.Context, venueID *uuid.UUID, limit, offset int) ([]*models.User, int64, error) {
	where := ""
	args := []interface{}{}
	if venueID != nil {
		where = " WHERE venue_id = $1"
		args = append(args, *venueID)
	}

	var count int64
	if err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
        SELECT id, created_at, updated_at, email, first_name, last_name,
               password_hash, role, is_active, last_login_at, venue_id
        FROM users%s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := s.getDB().QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Email, &user.FirstName,
			&user.LastName, &user.PasswordHash, &user.Role, &user.IsActive,
			&user.LastLoginAt, &user.VenueID,
		)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	return users, count, rows.Err()
}
