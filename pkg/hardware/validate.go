package hardware

import (
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
)

// FieldErrors maps a field path (e.g. "network_config.port") to a
// human-readable reason, so a caller can highlight the exact offending
// input instead of rejecting the whole record opaquely. An empty or nil
// map means the record passed.
type FieldErrors map[string]string

// Add records a failure for a field path.
func (e FieldErrors) Add(path, reason string) {
	e[path] = reason
}

// Error implements the error interface with a stable, sorted rendering.
func (e FieldErrors) Error() string {
	paths := make([]string, 0, len(e))
	for path := range e {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, path+": "+e[path])
	}
	return strings.Join(parts, "; ")
}

// Six hex byte pairs, colon or dash separated.
var macAddressRe = regexp.MustCompile(`^[0-9A-Fa-f]{2}([:-][0-9A-Fa-f]{2}){5}$`)

func validIPv4(s string) bool {
	if strings.Count(s, ".") != 3 {
		return false
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

// ValidateConnectionConfig checks that the device's populated
// connection block matches its declared connection_type and satisfies
// the block's field constraints. The input is never mutated.
func ValidateConnectionConfig(d *Device) FieldErrors {
	errs := FieldErrors{}

	cfg, err := GetConnectionConfig(d)
	if err != nil {
		errs.Add("connection_config", err.Error())
		return errs
	}

	switch c := cfg.(type) {
	case NetworkConfig:
		if c.IPAddress == "" {
			errs.Add("network_config.ip_address", "ip_address is required")
		} else if !validIPv4(c.IPAddress) {
			errs.Add("network_config.ip_address", "must be an IPv4 dotted-quad address")
		}
		if c.Port < 1 || c.Port > 65535 {
			errs.Add("network_config.port", "port must be between 1 and 65535")
		}
	case BluetoothConfig:
		if c.MACAddress == "" {
			errs.Add("bluetooth_config.mac_address", "mac_address is required")
		} else if !macAddressRe.MatchString(c.MACAddress) {
			errs.Add("bluetooth_config.mac_address", "must be six colon- or dash-separated hex byte pairs")
		}
	case USBConfig:
		if c.VendorID == 0 {
			errs.Add("usb_config.vendor_id", "vendor_id must be greater than zero")
		}
		if c.ProductID == 0 {
			errs.Add("usb_config.product_id", "product_id must be greater than zero")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateDeviceConfig checks that the device's populated device-type
// block matches its declared type and satisfies the block's field
// constraints. The input is never mutated.
func ValidateDeviceConfig(d *Device) FieldErrors {
	errs := FieldErrors{}

	cfg, err := GetDeviceConfig(d)
	if err != nil {
		errs.Add("device_config", err.Error())
		return errs
	}

	switch c := cfg.(type) {
	case PrinterConfig:
		if c.Mode == "" {
			errs.Add("printer_config.mode", "mode is required")
		} else if PaperSizesForPrinterMode(c.Mode) == nil {
			errs.Add("printer_config.mode", fmt.Sprintf("unknown printer mode %q", c.Mode))
		} else if c.Paper != "" && !paperAllowed(c.Mode, c.Paper) {
			errs.Add("printer_config.paper", fmt.Sprintf("paper size %q is not valid for %s printers", c.Paper, c.Mode))
		}
	case ScannerConfig:
		// No required sub-fields; presence of the block is enough.
	case PaymentConfig:
		if c.Provider == "" {
			errs.Add("payment_config.provider", "provider is required")
		} else if !providerKnown(c.Provider) {
			errs.Add("payment_config.provider", fmt.Sprintf("unknown payment provider %q", c.Provider))
		}
	case ScaleConfig:
		if c.Unit == "" {
			errs.Add("scale_config.unit", "unit is required")
		} else if !weightUnitKnown(c.Unit) {
			errs.Add("scale_config.unit", fmt.Sprintf("unknown weight unit %q", c.Unit))
		}
		if c.DecimalPlaces != nil && (*c.DecimalPlaces < 0 || *c.DecimalPlaces > 4) {
			errs.Add("scale_config.decimal_places", "decimal_places must be between 0 and 4")
		}
	case DrawerConfig:
		// No required sub-fields; presence of the block is enough.
	case DisplayConfig:
		if c.LineCount != nil && (*c.LineCount < 1 || *c.LineCount > 20) {
			errs.Add("display_config.line_count", "line_count must be between 1 and 20")
		}
		if c.CharsPerLine != nil && (*c.CharsPerLine < 10 || *c.CharsPerLine > 80) {
			errs.Add("display_config.chars_per_line", "chars_per_line must be between 10 and 80")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate runs every device invariant: the type/transport pair must be
// in the compatibility table and both configuration blocks must pass
// their own checks. It is idempotent and never mutates its input.
func Validate(d *Device) FieldErrors {
	errs := FieldErrors{}

	if AllowedConnectionTypes(d.Type) == nil {
		errs.Add("type", fmt.Sprintf("unknown device type %q", d.Type))
	} else if !ConnectionAllowed(d.Type, d.ConnectionType) {
		errs.Add("connection_type", fmt.Sprintf("%s devices cannot use a %s connection", d.Type, d.ConnectionType))
	}

	for path, reason := range ValidateConnectionConfig(d) {
		errs.Add(path, reason)
	}
	for path, reason := range ValidateDeviceConfig(d) {
		errs.Add(path, reason)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsDeviceValid is the single entry point a caller should use before
// accepting a device record.
func IsDeviceValid(d *Device) bool {
	return len(Validate(d)) == 0
}
