package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectIDs(t *testing.T) {
	venueID := uuid.New()
	deviceID := uuid.New()

	t.Run("status subject", func(t *testing.T) {
		subject := "pos.venue." + venueID.String() + ".device." + deviceID.String() + ".status"

		gotVenue, gotDevice, err := subjectIDs(subject)
		require.NoError(t, err)
		assert.Equal(t, venueID, gotVenue)
		assert.Equal(t, deviceID, gotDevice)
	})

	t.Run("error subject", func(t *testing.T) {
		subject := "pos.venue." + venueID.String() + ".device." + deviceID.String() + ".error"

		_, _, err := subjectIDs(subject)
		assert.NoError(t, err)
	})

	t.Run("malformed subjects", func(t *testing.T) {
		for _, subject := range []string{
			"pos.venue.device.status",
			"app.venue." + venueID.String() + ".device." + deviceID.String() + ".status",
			"pos.venue.not-a-uuid.device." + deviceID.String() + ".status",
			"pos.venue." + venueID.String() + ".device.not-a-uuid.status",
			"",
		} {
			_, _, err := subjectIDs(subject)
			assert.Error(t, err, "subject %q", subject)
		}
	})
}
