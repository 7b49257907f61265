// Package hardware models point-of-sale peripheral configuration: the
// closed device and connection taxonomies, the per-device configuration
// schema, and the defaulting and validation rules a device record must
// pass before it is accepted for persistence.
package hardware

// DeviceType is the functional category of a peripheral.
type DeviceType string

const (
	DeviceTypePrinter         DeviceType = "printer"
	DeviceTypeScanner         DeviceType = "scanner"
	DeviceTypeCashDrawer      DeviceType = "cash_drawer"
	DeviceTypeScale           DeviceType = "scale"
	DeviceTypePaymentTerminal DeviceType = "payment_terminal"
	DeviceTypeDisplay         DeviceType = "display"
)

// ConnectionType is the transport used to reach a device.
type ConnectionType string

const (
	ConnectionUSB       ConnectionType = "usb"
	ConnectionNetwork   ConnectionType = "network"
	ConnectionBluetooth ConnectionType = "bluetooth"
)

// PrinterMode selects the printing discipline of a printer.
type PrinterMode string

const (
	PrinterModeThermal  PrinterMode = "thermal"
	PrinterModeLabel    PrinterMode = "label"
	PrinterModeDocument PrinterMode = "document"
)

// PaperSize is a supported paper or label format.
type PaperSize string

const (
	Paper80mm   PaperSize = "80mm"
	Paper58mm   PaperSize = "58mm"
	PaperA4     PaperSize = "a4"
	PaperA5     PaperSize = "a5"
	PaperLetter PaperSize = "letter"
	Paper4x6    PaperSize = "4x6"
)

// WeightUnit is a scale measurement unit.
type WeightUnit string

const (
	UnitKilogram WeightUnit = "kg"
	UnitPound    WeightUnit = "lb"
	UnitGram     WeightUnit = "g"
)

// PaymentProvider identifies a supported payment processor.
type PaymentProvider string

const (
	ProviderStripe   PaymentProvider = "stripe"
	ProviderSquare   PaymentProvider = "square"
	ProviderSumUp    PaymentProvider = "sumup"
	ProviderAdyen    PaymentProvider = "adyen"
	ProviderVerifone PaymentProvider = "verifone"
)

var allowedConnections = map[DeviceType][]ConnectionType{
	DeviceTypePrinter:         {ConnectionUSB, ConnectionNetwork, ConnectionBluetooth},
	DeviceTypeScanner:         {ConnectionUSB, ConnectionBluetooth},
	DeviceTypeCashDrawer:      {ConnectionUSB, ConnectionNetwork},
	DeviceTypeScale:           {ConnectionUSB, ConnectionNetwork},
	DeviceTypePaymentTerminal: {ConnectionUSB, ConnectionNetwork, ConnectionBluetooth},
	DeviceTypeDisplay:         {ConnectionUSB, ConnectionNetwork},
}

var printerPaperSizes = map[PrinterMode][]PaperSize{
	PrinterModeThermal:  {Paper80mm, Paper58mm},
	PrinterModeLabel:    {Paper4x6},
	PrinterModeDocument: {PaperA4, PaperA5, PaperLetter},
}

// Reference data for edit-form dropdowns. These lists carry no
// validation weight.
var deviceModels = map[DeviceType][]string{
	DeviceTypePrinter:         {"Epson TM-T88VI", "Epson TM-m30II", "Star TSP143IV", "Zebra ZD421"},
	DeviceTypeScanner:         {"Zebra DS2208", "Honeywell Voyager 1250g", "Datalogic QuickScan QD2430"},
	DeviceTypeCashDrawer:      {"APG Vasario 1616", "Star CD3-1616"},
	DeviceTypeScale:           {"CAS PD-II", "Mettler Toledo Viva", "Avery Berkel 6712"},
	DeviceTypePaymentTerminal: {"Verifone P400", "Ingenico Lane 3000", "Stripe Reader M2"},
	DeviceTypeDisplay:         {"Epson DM-D30", "Bixolon BCD-3000"},
}

// DeviceTypes returns every recognized device type.
func DeviceTypes() []DeviceType {
	return []DeviceType{
		DeviceTypePrinter,
		DeviceTypeScanner,
		DeviceTypeCashDrawer,
		DeviceTypeScale,
		DeviceTypePaymentTerminal,
		DeviceTypeDisplay,
	}
}

// ConnectionTypes returns every recognized connection transport.
func ConnectionTypes() []ConnectionType {
	return []ConnectionType{ConnectionUSB, ConnectionNetwork, ConnectionBluetooth}
}

// PrinterModes returns every recognized printer mode.
func PrinterModes() []PrinterMode {
	return []PrinterMode{PrinterModeThermal, PrinterModeLabel, PrinterModeDocument}
}

// AllowedConnectionTypes returns the transports a device type supports.
// An unrecognized type returns nil: callers must treat it as an error,
// never as permission to use any transport.
func AllowedConnectionTypes(t DeviceType) []ConnectionType {
	conns, ok := allowedConnections[t]
	if !ok {
		return nil
	}
	out := make([]ConnectionType, len(conns))
	copy(out, conns)
	return out
}

// ConnectionAllowed reports whether a device type may use a transport.
func ConnectionAllowed(t DeviceType, c ConnectionType) bool {
	for _, allowed := range allowedConnections[t] {
		if allowed == c {
			return true
		}
	}
	return false
}

// PaperSizesForPrinterMode returns the paper sizes a printer mode
// accepts. Unknown modes return nil.
func PaperSizesForPrinterMode(m PrinterMode) []PaperSize {
	sizes, ok := printerPaperSizes[m]
	if !ok {
		return nil
	}
	out := make([]PaperSize, len(sizes))
	copy(out, sizes)
	return out
}

func paperAllowed(m PrinterMode, p PaperSize) bool {
	for _, size := range printerPaperSizes[m] {
		if size == p {
			return true
		}
	}
	return false
}

// Providers returns the supported payment providers.
func Providers() []PaymentProvider {
	return []PaymentProvider{ProviderStripe, ProviderSquare, ProviderSumUp, ProviderAdyen, ProviderVerifone}
}

func providerKnown(p PaymentProvider) bool {
	for _, known := range Providers() {
		if known == p {
			return true
		}
	}
	return false
}

// WeightUnits returns the supported scale units.
func WeightUnits() []WeightUnit {
	return []WeightUnit{UnitKilogram, UnitPound, UnitGram}
}

func weightUnitKnown(u WeightUnit) bool {
	for _, known := range WeightUnits() {
		if known == u {
			return true
		}
	}
	return false
}

// DeviceModelsForType returns known hardware models for a device type.
func DeviceModelsForType(t DeviceType) []string {
	models, ok := deviceModels[t]
	if !ok {
		return nil
	}
	out := make([]string, len(models))
	copy(out, models)
	return out
}
