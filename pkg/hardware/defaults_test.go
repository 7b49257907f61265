package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDeviceConfigIsAlwaysValid(t *testing.T) {
	// Defaults must never themselves be invalid: a device carrying the
	// default block for its type passes ValidateDeviceConfig.
	for _, dt := range DeviceTypes() {
		cfg := DefaultDeviceConfig(dt, "")
		require.NotNil(t, cfg, "no default for %s", dt)
		require.Equal(t, dt, cfg.Device())

		d := &Device{Type: dt, DeviceConfig: cfg}
		assert.Empty(t, ValidateDeviceConfig(d), "default %s config failed validation", dt)
	}
}

func TestDefaultPrinterConfigPerMode(t *testing.T) {
	thermal := DefaultDeviceConfig(DeviceTypePrinter, PrinterModeThermal).(PrinterConfig)
	assert.Equal(t, PrinterModeThermal, thermal.Mode)
	assert.Equal(t, Paper80mm, thermal.Paper)
	assert.True(t, thermal.Auto)
	assert.Equal(t, 1, thermal.Copies)
	assert.True(t, thermal.Cut)
	assert.False(t, thermal.Drawer)
	assert.Equal(t, "utf8", thermal.Encoding)

	label := DefaultDeviceConfig(DeviceTypePrinter, PrinterModeLabel).(PrinterConfig)
	assert.Equal(t, PrinterModeLabel, label.Mode)
	assert.Equal(t, Paper4x6, label.Paper)
	assert.True(t, label.ZPL)

	document := DefaultDeviceConfig(DeviceTypePrinter, PrinterModeDocument).(PrinterConfig)
	assert.Equal(t, PrinterModeDocument, document.Mode)
	assert.Equal(t, PaperA4, document.Paper)
	assert.Equal(t, 1, document.Copies)

	// No mode means thermal.
	assert.Equal(t, thermal, DefaultDeviceConfig(DeviceTypePrinter, "").(PrinterConfig))
}

func TestDefaultDeviceConfigValues(t *testing.T) {
	scanner := DefaultDeviceConfig(DeviceTypeScanner, "").(ScannerConfig)
	assert.Equal(t, "", scanner.Prefix)
	assert.Equal(t, "\r\n", scanner.Suffix)
	assert.True(t, scanner.BeepOnScan)

	payment := DefaultDeviceConfig(DeviceTypePaymentTerminal, "").(PaymentConfig)
	assert.Equal(t, ProviderStripe, payment.Provider)
	assert.False(t, payment.SandboxMode)

	scale := DefaultDeviceConfig(DeviceTypeScale, "").(ScaleConfig)
	assert.Equal(t, UnitKilogram, scale.Unit)
	require.NotNil(t, scale.DecimalPlaces)
	assert.Equal(t, 2, *scale.DecimalPlaces)

	drawer := DefaultDeviceConfig(DeviceTypeCashDrawer, "").(DrawerConfig)
	assert.Equal(t, "ESC p 0 50 250", drawer.OpenCommand)

	display := DefaultDeviceConfig(DeviceTypeDisplay, "").(DisplayConfig)
	require.NotNil(t, display.LineCount)
	require.NotNil(t, display.CharsPerLine)
	assert.Equal(t, 2, *display.LineCount)
	assert.Equal(t, 20, *display.CharsPerLine)

	assert.Nil(t, DefaultDeviceConfig(DeviceType("coffee_machine"), ""))
}

func TestDefaultConnectionConfigValues(t *testing.T) {
	network := DefaultConnectionConfig(ConnectionNetwork).(NetworkConfig)
	assert.Equal(t, "", network.IPAddress)
	assert.Equal(t, 9100, network.Port)

	bluetooth := DefaultConnectionConfig(ConnectionBluetooth).(BluetoothConfig)
	assert.Equal(t, "", bluetooth.MACAddress)
	assert.Equal(t, "", bluetooth.DeviceName)
	assert.Equal(t, "00001101-0000-1000-8000-00805F9B34FB", bluetooth.ServiceUUID)

	usb := DefaultConnectionConfig(ConnectionUSB).(USBConfig)
	assert.Equal(t, uint16(0), usb.VendorID)
	assert.Equal(t, uint16(0), usb.ProductID)

	assert.Nil(t, DefaultConnectionConfig(ConnectionType("serial")))
}

func TestDefaultConnectionConfigNotSubmissionValid(t *testing.T) {
	// Connection defaults are starting points for a form, not valid
	// final values: empty ip_address/mac_address and zero usb ids must
	// fail ValidateConnectionConfig until the operator fills them in.
	for _, ct := range ConnectionTypes() {
		d := &Device{
			Type:             DeviceTypePrinter,
			ConnectionType:   ct,
			ConnectionConfig: DefaultConnectionConfig(ct),
		}
		assert.NotEmpty(t, ValidateConnectionConfig(d), "default %s config should not pass as-is", ct)
	}
}
