package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func networkDevice(ip string, port int) *Device {
	return &Device{
		ID:               "net-1",
		Type:             DeviceTypePrinter,
		ConnectionType:   ConnectionNetwork,
		Enabled:          true,
		ConnectionConfig: NetworkConfig{IPAddress: ip, Port: port},
		DeviceConfig:     DefaultDeviceConfig(DeviceTypePrinter, ""),
	}
}

func TestValidateNetworkConfig(t *testing.T) {
	assert.Empty(t, ValidateConnectionConfig(networkDevice("192.168.1.100", 9100)))

	errs := ValidateConnectionConfig(networkDevice("", 9100))
	require.Contains(t, errs, "network_config.ip_address")

	errs = ValidateConnectionConfig(networkDevice("printer.local", 9100))
	require.Contains(t, errs, "network_config.ip_address")

	errs = ValidateConnectionConfig(networkDevice("10.0.0", 9100))
	require.Contains(t, errs, "network_config.ip_address")
}

func TestValidateNetworkPortBoundaries(t *testing.T) {
	assert.Contains(t, ValidateConnectionConfig(networkDevice("10.0.0.1", 0)), "network_config.port")
	assert.Contains(t, ValidateConnectionConfig(networkDevice("10.0.0.1", 65536)), "network_config.port")
	assert.Empty(t, ValidateConnectionConfig(networkDevice("10.0.0.1", 1)))
	assert.Empty(t, ValidateConnectionConfig(networkDevice("10.0.0.1", 65535)))
}

func bluetoothDevice(mac string) *Device {
	return &Device{
		ID:               "bt-1",
		Type:             DeviceTypeScanner,
		ConnectionType:   ConnectionBluetooth,
		ConnectionConfig: BluetoothConfig{MACAddress: mac},
		DeviceConfig:     DefaultDeviceConfig(DeviceTypeScanner, ""),
	}
}

func TestValidateBluetoothMAC(t *testing.T) {
	assert.Empty(t, ValidateConnectionConfig(bluetoothDevice("00:11:22:33:44:55")))
	assert.Empty(t, ValidateConnectionConfig(bluetoothDevice("AA-BB-CC-DD-EE-FF")))

	// Wrong grouping: four hex digits in the first segment.
	errs := ValidateConnectionConfig(bluetoothDevice("0011:22:33:44:55"))
	require.Contains(t, errs, "bluetooth_config.mac_address")

	assert.Contains(t, ValidateConnectionConfig(bluetoothDevice("")), "bluetooth_config.mac_address")
	assert.Contains(t, ValidateConnectionConfig(bluetoothDevice("00:11:22:33:44")), "bluetooth_config.mac_address")
	assert.Contains(t, ValidateConnectionConfig(bluetoothDevice("00:11:22:33:44:GG")), "bluetooth_config.mac_address")
}

func TestValidateUSBConfig(t *testing.T) {
	d := &Device{
		Type:             DeviceTypeCashDrawer,
		ConnectionType:   ConnectionUSB,
		ConnectionConfig: USBConfig{VendorID: 0x04B8, ProductID: 0x0202},
		DeviceConfig:     DefaultDeviceConfig(DeviceTypeCashDrawer, ""),
	}
	assert.Empty(t, ValidateConnectionConfig(d))

	d.ConnectionConfig = USBConfig{VendorID: 0, ProductID: 0x0202}
	assert.Contains(t, ValidateConnectionConfig(d), "usb_config.vendor_id")

	d.ConnectionConfig = USBConfig{VendorID: 0x04B8, ProductID: 0}
	assert.Contains(t, ValidateConnectionConfig(d), "usb_config.product_id")
}

func TestValidatePrinterPaperMembership(t *testing.T) {
	d, err := NewDevice("D2", DeviceTypePrinter, ConnectionNetwork, "")
	require.NoError(t, err)

	// a4 is a document size, not a thermal one.
	d.DeviceConfig = PrinterConfig{Mode: PrinterModeThermal, Paper: PaperA4}
	errs := ValidateDeviceConfig(d)
	require.Contains(t, errs, "printer_config.paper")

	d.DeviceConfig = PrinterConfig{Mode: PrinterModeDocument, Paper: PaperA4}
	assert.Empty(t, ValidateDeviceConfig(d))

	// Paper is optional; mode alone is fine.
	d.DeviceConfig = PrinterConfig{Mode: PrinterModeLabel}
	assert.Empty(t, ValidateDeviceConfig(d))

	d.DeviceConfig = PrinterConfig{}
	assert.Contains(t, ValidateDeviceConfig(d), "printer_config.mode")
}

func TestValidateScaleDecimalPlaces(t *testing.T) {
	d := &Device{Type: DeviceTypeScale, DeviceConfig: DefaultDeviceConfig(DeviceTypeScale, "")}
	assert.Empty(t, ValidateDeviceConfig(d))

	five := 5
	d.DeviceConfig = ScaleConfig{Unit: UnitKilogram, DecimalPlaces: &five}
	assert.Contains(t, ValidateDeviceConfig(d), "scale_config.decimal_places")

	zero := 0
	d.DeviceConfig = ScaleConfig{Unit: UnitGram, DecimalPlaces: &zero}
	assert.Empty(t, ValidateDeviceConfig(d))

	d.DeviceConfig = ScaleConfig{}
	assert.Contains(t, ValidateDeviceConfig(d), "scale_config.unit")
}

func TestValidateDisplayRanges(t *testing.T) {
	lines, chars := 1, 10
	d := &Device{Type: DeviceTypeDisplay, DeviceConfig: DisplayConfig{LineCount: &lines, CharsPerLine: &chars}}
	assert.Empty(t, ValidateDeviceConfig(d))

	lines = 21
	assert.Contains(t, ValidateDeviceConfig(d), "display_config.line_count")

	lines, chars = 20, 81
	assert.Contains(t, ValidateDeviceConfig(d), "display_config.chars_per_line")

	// Both optional.
	d.DeviceConfig = DisplayConfig{}
	assert.Empty(t, ValidateDeviceConfig(d))
}

func TestValidatePaymentProvider(t *testing.T) {
	d := &Device{Type: DeviceTypePaymentTerminal, DeviceConfig: PaymentConfig{Provider: ProviderAdyen}}
	assert.Empty(t, ValidateDeviceConfig(d))

	d.DeviceConfig = PaymentConfig{}
	assert.Contains(t, ValidateDeviceConfig(d), "payment_config.provider")

	d.DeviceConfig = PaymentConfig{Provider: PaymentProvider("cashapp")}
	assert.Contains(t, ValidateDeviceConfig(d), "payment_config.provider")
}

func TestValidateMissingBlocks(t *testing.T) {
	d := &Device{Type: DeviceTypeScanner, ConnectionType: ConnectionUSB}

	errs := Validate(d)
	assert.Contains(t, errs, "connection_config")
	assert.Contains(t, errs, "device_config")
}

func TestValidateCombination(t *testing.T) {
	d := &Device{
		Type:             DeviceTypeScanner,
		ConnectionType:   ConnectionNetwork,
		ConnectionConfig: NetworkConfig{IPAddress: "10.0.0.9", Port: 9100},
		DeviceConfig:     DefaultDeviceConfig(DeviceTypeScanner, ""),
	}

	errs := Validate(d)
	require.Contains(t, errs, "connection_type")
	assert.False(t, IsDeviceValid(d))

	d.Type = DeviceType("coffee_machine")
	assert.Contains(t, Validate(d), "type")
}

func TestIsDeviceValidIdempotent(t *testing.T) {
	d, err := NewDevice("D5", DeviceTypePaymentTerminal, ConnectionBluetooth, "front terminal")
	require.NoError(t, err)
	d.ConnectionConfig = BluetoothConfig{MACAddress: "00:11:22:33:44:55"}

	first := IsDeviceValid(d)
	second := IsDeviceValid(d)
	assert.True(t, first)
	assert.Equal(t, first, second)
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("network_config.port", "port must be between 1 and 65535")
	errs.Add("network_config.ip_address", "ip_address is required")

	// Sorted, stable rendering.
	assert.Equal(t,
		"network_config.ip_address: ip_address is required; network_config.port: port must be between 1 and 65535",
		errs.Error())
}
