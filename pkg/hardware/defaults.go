package hardware

// DefaultNetworkPort is the raw-socket port most receipt printers and
// network peripherals listen on.
const DefaultNetworkPort = 9100

// Bluetooth Serial Port Profile.
const defaultBluetoothServiceUUID = "00001101-0000-1000-8000-00805F9B34FB"

// ESC/POS pulse sequence understood by most drawer kick ports.
const defaultDrawerOpenCommand = "ESC p 0 50 250"

// DefaultConnectionConfig returns the initial connection block for a
// transport. The defaults are valid starting points for an edit form,
// not valid final records: ip_address and mac_address start empty and
// must be filled in before the device passes ValidateConnectionConfig.
// Unknown transports return nil.
func DefaultConnectionConfig(c ConnectionType) ConnectionConfig {
	switch c {
	case ConnectionNetwork:
		return NetworkConfig{Port: DefaultNetworkPort}
	case ConnectionBluetooth:
		return BluetoothConfig{ServiceUUID: defaultBluetoothServiceUUID}
	case ConnectionUSB:
		return USBConfig{}
	default:
		return nil
	}
}

// DefaultDeviceConfig returns the initial device block for a type. The
// mode argument is consulted only for printers; an empty mode means
// thermal. Unlike connection defaults, device defaults always pass
// ValidateDeviceConfig. Unknown types return nil.
func DefaultDeviceConfig(t DeviceType, mode PrinterMode) DeviceConfig {
	switch t {
	case DeviceTypePrinter:
		return defaultPrinterConfig(mode)
	case DeviceTypeScanner:
		return ScannerConfig{Suffix: "\r\n", BeepOnScan: true}
	case DeviceTypePaymentTerminal:
		return PaymentConfig{Provider: ProviderStripe}
	case DeviceTypeScale:
		places := 2
		return ScaleConfig{Unit: UnitKilogram, DecimalPlaces: &places}
	case DeviceTypeCashDrawer:
		return DrawerConfig{OpenCommand: defaultDrawerOpenCommand}
	case DeviceTypeDisplay:
		lines, chars := 2, 20
		return DisplayConfig{LineCount: &lines, CharsPerLine: &chars}
	default:
		return nil
	}
}

func defaultPrinterConfig(mode PrinterMode) PrinterConfig {
	switch mode {
	case PrinterModeLabel:
		return PrinterConfig{Mode: PrinterModeLabel, Paper: Paper4x6, ZPL: true}
	case PrinterModeDocument:
		return PrinterConfig{Mode: PrinterModeDocument, Paper: PaperA4, Copies: 1}
	default:
		return PrinterConfig{
			Mode:     PrinterModeThermal,
			Paper:    Paper80mm,
			Auto:     true,
			Copies:   1,
			Cut:      true,
			Drawer:   false,
			Encoding: "utf8",
		}
	}
}
