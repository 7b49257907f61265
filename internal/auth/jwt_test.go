package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuepos/venuepos-server/internal/config"
	"github.com/venuepos/venuepos-server/internal/models"
)

func testManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(&config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: time.Hour,
	})
}

func testUser() *models.User {
	venueID := uuid.New()
	user := &models.User{
		Email:   "manager@example.com",
		Role:    models.RoleManager,
		VenueID: &venueID,
	}
	user.ID = uuid.New()
	return user
}

func TestTokenPairRoundTrip(t *testing.T) {
	m := testManager(time.Minute)
	user := testUser()

	access, refresh, err := m.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleManager, claims.Role)
	require.NotNil(t, claims.VenueID)
	assert.Equal(t, *user.VenueID, *claims.VenueID)

	subject, err := m.RefreshSubject(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := testManager(time.Minute)

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = m.RefreshSubject("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := testManager(time.Minute)
	other := NewJWTManager(&config.JWTConfig{
		Secret:          "other-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})

	access, _, err := other.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := testManager(-time.Minute)

	access, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	assert.Error(t, err)
}
