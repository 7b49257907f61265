// Package bootstrap seeds the minimum data a fresh installation needs.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/internal/storage"
	"github.com/venuepos/venuepos-server/pkg/crypto"
)

const defaultAdminEmail = "admin@venuepos.local"

// EnsureAdminUser creates the initial admin account when no user with
// the admin email exists yet. The password comes from ADMIN_PASSWORD,
// or is generated and printed once so fresh installs never ship a
// well-known credential.
func EnsureAdminUser(ctx context.Context, store storage.Store) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}

	_, err := store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if err != storage.ErrNotFound {
		return fmt.Errorf("check admin user: %w", err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	generated := false
	if password == "" {
		password, err = crypto.GenerateRandomString(16)
		if err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		generated = true
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        email,
		FirstName:    "Admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	if generated {
		log.Info().
			Str("email", email).
			Str("password", password).
			Msg("Created initial admin user, change the password after first login")
	} else {
		log.Info().Str("email", email).Msg("Created initial admin user")
	}

	return nil
}
