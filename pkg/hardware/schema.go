package hardware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	// ErrUnsupportedCombination is returned by NewDevice when the
	// requested device type does not support the requested transport.
	ErrUnsupportedCombination = errors.New("unsupported device/connection combination")

	// ErrMissingBlock is returned when the configuration block a
	// device's tags demand is absent entirely.
	ErrMissingBlock = errors.New("configuration block missing")
)

// ConnectionConfig is the connection-specific settings payload. Exactly
// one variant is populated per device, selected by ConnectionType.
type ConnectionConfig interface {
	// Connection returns the transport this block configures.
	Connection() ConnectionType
}

// NetworkConfig configures a TCP/IP attached device.
type NetworkConfig struct {
	IPAddress string `json:"ip_address"`
	Port      int    `json:"port"`
}

// Connection implements ConnectionConfig.
func (NetworkConfig) Connection() ConnectionType { return ConnectionNetwork }

// BluetoothConfig configures a Bluetooth attached device.
type BluetoothConfig struct {
	MACAddress  string `json:"mac_address"`
	DeviceName  string `json:"device_name,omitempty"`
	ServiceUUID string `json:"service_uuid,omitempty"`
}

// Connection implements ConnectionConfig.
func (BluetoothConfig) Connection() ConnectionType { return ConnectionBluetooth }

// USBConfig configures a USB attached device. Vendor and product ids
// are stored as plain integers; hex rendering is presentation only.
type USBConfig struct {
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`
	USBPath   string `json:"usb_path,omitempty"`
}

// Connection implements ConnectionConfig.
func (USBConfig) Connection() ConnectionType { return ConnectionUSB }

// DeviceConfig is the device-type-specific settings payload. Exactly
// one variant is populated per device, selected by DeviceType.
type DeviceConfig interface {
	// Device returns the device type this block configures.
	Device() DeviceType
}

// PrinterConfig configures a receipt, label or document printer.
type PrinterConfig struct {
	Mode     PrinterMode `json:"mode"`
	Paper    PaperSize   `json:"paper,omitempty"`
	Width    *int        `json:"width,omitempty"`
	Height   *int        `json:"height,omitempty"`
	Auto     bool        `json:"auto,omitempty"`
	Copies   int         `json:"copies,omitempty"`
	Encoding string      `json:"encoding,omitempty"`
	Cut      bool        `json:"cut,omitempty"`
	Drawer   bool        `json:"drawer,omitempty"`
	Kitchens []string    `json:"kitchens,omitempty"`
	ZPL      bool        `json:"zpl,omitempty"`
}

// Device implements DeviceConfig.
func (PrinterConfig) Device() DeviceType { return DeviceTypePrinter }

// ScannerConfig configures a barcode scanner.
type ScannerConfig struct {
	Prefix     string `json:"prefix,omitempty"`
	Suffix     string `json:"suffix,omitempty"`
	BeepOnScan bool   `json:"beep_on_scan,omitempty"`
}

// Device implements DeviceConfig.
func (ScannerConfig) Device() DeviceType { return DeviceTypeScanner }

// PaymentConfig configures a payment terminal.
type PaymentConfig struct {
	Provider    PaymentProvider `json:"provider"`
	SandboxMode bool            `json:"sandbox_mode,omitempty"`
}

// Device implements DeviceConfig.
func (PaymentConfig) Device() DeviceType { return DeviceTypePaymentTerminal }

// ScaleConfig configures a weighing scale.
type ScaleConfig struct {
	Unit          WeightUnit `json:"unit"`
	DecimalPlaces *int       `json:"decimal_places,omitempty"`
}

// Device implements DeviceConfig.
func (ScaleConfig) Device() DeviceType { return DeviceTypeScale }

// DrawerConfig configures a cash drawer.
type DrawerConfig struct {
	OpenCommand string `json:"open_command,omitempty"`
}

// Device implements DeviceConfig.
func (DrawerConfig) Device() DeviceType { return DeviceTypeCashDrawer }

// DisplayConfig configures a customer-facing line display.
type DisplayConfig struct {
	LineCount    *int `json:"line_count,omitempty"`
	CharsPerLine *int `json:"chars_per_line,omitempty"`
}

// Device implements DeviceConfig.
func (DisplayConfig) Device() DeviceType { return DeviceTypeDisplay }

// Device is a configured peripheral record. Type and ConnectionType are
// fixed at creation: changing either invalidates the configuration
// blocks, so a transport or category change is modeled as recreating
// the device with fresh defaults.
type Device struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	Type             DeviceType       `json:"type"`
	ConnectionType   ConnectionType   `json:"connection_type"`
	TerminalID       string           `json:"terminal_id,omitempty"`
	Enabled          bool             `json:"enabled"`
	ConnectionConfig ConnectionConfig `json:"connection_config"`
	DeviceConfig     DeviceConfig     `json:"device_config"`
	CreatedAt        *time.Time       `json:"created_at,omitempty"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

// NewDevice builds a device whose configuration blocks are the defaults
// for the given type and transport, satisfying the one-block-per-union
// invariants by construction. Printers default to thermal mode. The
// device starts enabled.
func NewDevice(id string, t DeviceType, c ConnectionType, name string) (*Device, error) {
	if !ConnectionAllowed(t, c) {
		return nil, fmt.Errorf("%w: %s over %s", ErrUnsupportedCombination, t, c)
	}

	return &Device{
		ID:               id,
		Name:             name,
		Type:             t,
		ConnectionType:   c,
		Enabled:          true,
		ConnectionConfig: DefaultConnectionConfig(c),
		DeviceConfig:     DefaultDeviceConfig(t, ""),
	}, nil
}

// GetConnectionConfig returns the populated connection block after
// checking it matches the device's declared connection_type. Callers
// use this instead of reading the field so a tag/block mismatch is
// caught at the access site.
func GetConnectionConfig(d *Device) (ConnectionConfig, error) {
	if d.ConnectionConfig == nil {
		return nil, fmt.Errorf("%w: connection_config", ErrMissingBlock)
	}
	if got := d.ConnectionConfig.Connection(); got != d.ConnectionType {
		return nil, fmt.Errorf("connection_config is for %s but device declares %s", got, d.ConnectionType)
	}
	return d.ConnectionConfig, nil
}

// GetDeviceConfig returns the populated device-type block after
// checking it matches the device's declared type.
func GetDeviceConfig(d *Device) (DeviceConfig, error) {
	if d.DeviceConfig == nil {
		return nil, fmt.Errorf("%w: device_config", ErrMissingBlock)
	}
	if got := d.DeviceConfig.Device(); got != d.Type {
		return nil, fmt.Errorf("device_config is for %s but device declares %s", got, d.Type)
	}
	return d.DeviceConfig, nil
}

// UnmarshalConnectionConfig decodes the connection block variant
// selected by the given transport.
func UnmarshalConnectionConfig(c ConnectionType, data []byte) (ConnectionConfig, error) {
	switch c {
	case ConnectionNetwork:
		var cfg NetworkConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ConnectionBluetooth:
		var cfg BluetoothConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ConnectionUSB:
		var cfg USBConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("unknown connection type %q", c)
	}
}

// UnmarshalDeviceConfig decodes the device block variant selected by
// the given device type.
func UnmarshalDeviceConfig(t DeviceType, data []byte) (DeviceConfig, error) {
	switch t {
	case DeviceTypePrinter:
		var cfg PrinterConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case DeviceTypeScanner:
		var cfg ScannerConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case DeviceTypePaymentTerminal:
		var cfg PaymentConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case DeviceTypeScale:
		var cfg ScaleConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case DeviceTypeCashDrawer:
		var cfg DrawerConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case DeviceTypeDisplay:
		var cfg DisplayConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("unknown device type %q", t)
	}
}

var jsonNull = []byte("null")

// UnmarshalJSON decodes a device record, selecting the configuration
// block variants by the type and connection_type tags.
func (d *Device) UnmarshalJSON(data []byte) error {
	type alias Device
	aux := struct {
		*alias
		ConnectionConfig json.RawMessage `json:"connection_config"`
		DeviceConfig     json.RawMessage `json:"device_config"`
	}{alias: (*alias)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.ConnectionConfig = nil
	d.DeviceConfig = nil

	if len(aux.ConnectionConfig) > 0 && !bytes.Equal(aux.ConnectionConfig, jsonNull) {
		cfg, err := UnmarshalConnectionConfig(d.ConnectionType, aux.ConnectionConfig)
		if err != nil {
			return fmt.Errorf("connection_config: %w", err)
		}
		d.ConnectionConfig = cfg
	}

	if len(aux.DeviceConfig) > 0 && !bytes.Equal(aux.DeviceConfig, jsonNull) {
		cfg, err := UnmarshalDeviceConfig(d.Type, aux.DeviceConfig)
		if err != nil {
			return fmt.Errorf("device_config: %w", err)
		}
		d.DeviceConfig = cfg
	}

	return nil
}
