package hardware

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeviceMatchesCompatibilityTable(t *testing.T) {
	// NewDevice succeeds exactly when the pair is in the table.
	for _, dt := range DeviceTypes() {
		for _, ct := range ConnectionTypes() {
			d, err := NewDevice("dev-1", dt, ct, "test device")
			if ConnectionAllowed(dt, ct) {
				require.NoError(t, err, "%s over %s", dt, ct)
				assert.True(t, d.Enabled)
				assert.Equal(t, dt, d.Type)
				assert.Equal(t, ct, d.ConnectionType)
			} else {
				require.ErrorIs(t, err, ErrUnsupportedCombination, "%s over %s", dt, ct)
				assert.Nil(t, d)
			}
		}
	}
}

func TestNewDeviceScannerOverNetwork(t *testing.T) {
	_, err := NewDevice("D1", DeviceTypeScanner, ConnectionNetwork, "")
	assert.ErrorIs(t, err, ErrUnsupportedCombination)
}

func TestNewDeviceUnknownType(t *testing.T) {
	_, err := NewDevice("D1", DeviceType("coffee_machine"), ConnectionUSB, "")
	assert.ErrorIs(t, err, ErrUnsupportedCombination)
}

func TestNewDeviceCarriesDefaults(t *testing.T) {
	// Round-trip: the blocks of a fresh device equal the defaults.
	d, err := NewDevice("D2", DeviceTypePrinter, ConnectionNetwork, "kitchen printer")
	require.NoError(t, err)

	conn, err := GetConnectionConfig(d)
	require.NoError(t, err)
	assert.Equal(t, DefaultConnectionConfig(ConnectionNetwork), conn)

	dev, err := GetDeviceConfig(d)
	require.NoError(t, err)
	assert.Equal(t, DefaultDeviceConfig(DeviceTypePrinter, ""), dev)
}

func TestGetConfigMissingBlock(t *testing.T) {
	d := &Device{Type: DeviceTypeScanner, ConnectionType: ConnectionUSB}

	_, err := GetConnectionConfig(d)
	assert.ErrorIs(t, err, ErrMissingBlock)

	_, err = GetDeviceConfig(d)
	assert.ErrorIs(t, err, ErrMissingBlock)
}

func TestGetConfigTagMismatch(t *testing.T) {
	d := &Device{
		Type:             DeviceTypeScale,
		ConnectionType:   ConnectionNetwork,
		ConnectionConfig: USBConfig{VendorID: 1, ProductID: 1},
		DeviceConfig:     PrinterConfig{Mode: PrinterModeThermal},
	}

	_, err := GetConnectionConfig(d)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingBlock)

	_, err = GetDeviceConfig(d)
	require.Error(t, err)
}

func TestDeviceJSONRoundTrip(t *testing.T) {
	d, err := NewDevice("D3", DeviceTypeScale, ConnectionNetwork, "deli scale")
	require.NoError(t, err)
	d.ConnectionConfig = NetworkConfig{IPAddress: "10.0.0.40", Port: 4305}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded Device
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, d.Type, decoded.Type)
	assert.Equal(t, d.ConnectionType, decoded.ConnectionType)
	assert.Equal(t, NetworkConfig{IPAddress: "10.0.0.40", Port: 4305}, decoded.ConnectionConfig)
	assert.Equal(t, d.DeviceConfig, decoded.DeviceConfig)
}

func TestDeviceUnmarshalSelectsVariantByTag(t *testing.T) {
	payload := []byte(`{
		"id": "D4",
		"type": "printer",
		"connection_type": "bluetooth",
		"enabled": true,
		"connection_config": {"mac_address": "00:11:22:33:44:55", "device_name": "bar printer"},
		"device_config": {"mode": "thermal", "paper": "58mm", "copies": 2}
	}`)

	var d Device
	require.NoError(t, json.Unmarshal(payload, &d))

	bt, ok := d.ConnectionConfig.(BluetoothConfig)
	require.True(t, ok)
	assert.Equal(t, "00:11:22:33:44:55", bt.MACAddress)

	pr, ok := d.DeviceConfig.(PrinterConfig)
	require.True(t, ok)
	assert.Equal(t, Paper58mm, pr.Paper)
	assert.Equal(t, 2, pr.Copies)
}

func TestDeviceUnmarshalUnknownTags(t *testing.T) {
	var d Device
	err := json.Unmarshal([]byte(`{"type":"printer","connection_type":"serial","connection_config":{}}`), &d)
	require.Error(t, err)

	err = json.Unmarshal([]byte(`{"type":"coffee_machine","connection_type":"usb","device_config":{}}`), &d)
	require.Error(t, err)
}
