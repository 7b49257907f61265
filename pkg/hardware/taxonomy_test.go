package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedConnectionTypes(t *testing.T) {
	tests := []struct {
		deviceType DeviceType
		want       []ConnectionType
	}{
		{DeviceTypePrinter, []ConnectionType{ConnectionUSB, ConnectionNetwork, ConnectionBluetooth}},
		{DeviceTypeScanner, []ConnectionType{ConnectionUSB, ConnectionBluetooth}},
		{DeviceTypeCashDrawer, []ConnectionType{ConnectionUSB, ConnectionNetwork}},
		{DeviceTypeScale, []ConnectionType{ConnectionUSB, ConnectionNetwork}},
		{DeviceTypePaymentTerminal, []ConnectionType{ConnectionUSB, ConnectionNetwork, ConnectionBluetooth}},
		{DeviceTypeDisplay, []ConnectionType{ConnectionUSB, ConnectionNetwork}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AllowedConnectionTypes(tt.deviceType), "type %s", tt.deviceType)
	}
}

func TestAllowedConnectionTypesUnknownType(t *testing.T) {
	// An unrecognized type gets nil, never the permissive full set.
	assert.Nil(t, AllowedConnectionTypes(DeviceType("coffee_machine")))
	assert.False(t, ConnectionAllowed(DeviceType("coffee_machine"), ConnectionUSB))
}

func TestPaperSizesForPrinterMode(t *testing.T) {
	assert.Equal(t, []PaperSize{Paper80mm, Paper58mm}, PaperSizesForPrinterMode(PrinterModeThermal))
	assert.Equal(t, []PaperSize{Paper4x6}, PaperSizesForPrinterMode(PrinterModeLabel))
	assert.Equal(t, []PaperSize{PaperA4, PaperA5, PaperLetter}, PaperSizesForPrinterMode(PrinterModeDocument))
	assert.Nil(t, PaperSizesForPrinterMode(PrinterMode("dot_matrix")))
}

func TestReferenceLists(t *testing.T) {
	require.Contains(t, Providers(), ProviderStripe)
	require.Contains(t, WeightUnits(), UnitKilogram)

	for _, dt := range DeviceTypes() {
		assert.NotEmpty(t, DeviceModelsForType(dt), "no reference models for %s", dt)
	}
	assert.Nil(t, DeviceModelsForType(DeviceType("coffee_machine")))
}

func TestReferenceListsAreCopies(t *testing.T) {
	conns := AllowedConnectionTypes(DeviceTypeScanner)
	conns[0] = ConnectionNetwork

	// The compatibility table itself must be unaffected.
	assert.False(t, ConnectionAllowed(DeviceTypeScanner, ConnectionNetwork))
}
