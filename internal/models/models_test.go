package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuepos/venuepos-server/pkg/hardware"
)

func TestHardwareDeviceCore(t *testing.T) {
	terminalID := uuid.New()

	device := &HardwareDevice{
		VenueID:        uuid.New(),
		Name:           "Bar Printer",
		Type:           hardware.DeviceTypePrinter,
		ConnectionType: hardware.ConnectionNetwork,
		TerminalID:     &terminalID,
		Enabled:        true,
		ConnectionConfig: hardware.NetworkConfig{
			IPAddress: "10.0.0.12",
			Port:      9100,
		},
		DeviceConfig: hardware.PrinterConfig{
			Mode:  hardware.PrinterModeThermal,
			Paper: hardware.Paper80mm,
		},
		Status: DeviceStatusOnline,
	}
	device.ID = uuid.New()

	core := device.Core()
	assert.Equal(t, device.ID.String(), core.ID)
	assert.Equal(t, terminalID.String(), core.TerminalID)
	assert.Equal(t, device.ConnectionConfig, core.ConnectionConfig)
	assert.Nil(t, hardware.Validate(core))

	device.TerminalID = nil
	assert.Empty(t, device.Core().TerminalID)
}

func TestVariablesScanValue(t *testing.T) {
	vars := Variables{"code": "PAPER_OUT", "retries": float64(3)}

	value, err := vars.Value()
	require.NoError(t, err)

	var scanned Variables
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, vars, scanned)

	var fromNil Variables
	require.NoError(t, fromNil.Scan(nil))
	assert.NotNil(t, fromNil)
	assert.Empty(t, fromNil)

	assert.Error(t, scanned.Scan(42))
}

func TestRoleAndStatusValidity(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleStaff.Valid())
	assert.False(t, UserRole("owner").Valid())

	assert.True(t, ReservationSeated.Valid())
	assert.False(t, ReservationStatus("waitlisted").Valid())
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	user := &User{
		Email:        "staff@example.com",
		PasswordHash: "bcrypt-hash",
		Role:         RoleStaff,
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bcrypt-hash")
	assert.NotContains(t, string(data), "password")
}
