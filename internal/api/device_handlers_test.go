package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuepos/venuepos-server/internal/config"
	"github.com/venuepos/venuepos-server/pkg/hardware"
)

func testServer(t *testing.T) *RESTServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Name = "venuepos-server-test"
	cfg.JWT.Secret = "test-secret"

	return NewRESTServer(cfg, nil)
}

func TestHandleGetTaxonomy(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware/taxonomy", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		DeviceTypes     []string            `json:"device_types"`
		ConnectionTypes []string            `json:"connection_types"`
		Compatibility   map[string][]string `json:"compatibility"`
		PaperSizes      map[string][]string `json:"paper_sizes"`
		Providers       []string            `json:"providers"`
		WeightUnits     []string            `json:"weight_units"`
		DeviceModels    map[string][]string `json:"device_models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Contains(t, body.DeviceTypes, "printer")
	assert.Contains(t, body.DeviceTypes, "payment_terminal")
	assert.Len(t, body.ConnectionTypes, 3)

	assert.ElementsMatch(t, []string{"usb", "bluetooth"}, body.Compatibility["scanner"])
	assert.ElementsMatch(t, []string{"usb", "network", "bluetooth"}, body.Compatibility["payment_terminal"])

	assert.Equal(t, []string{"80mm", "58mm"}, body.PaperSizes["thermal"])
	assert.Contains(t, body.Providers, "stripe")
	assert.Contains(t, body.WeightUnits, "kg")
	assert.NotEmpty(t, body.DeviceModels["printer"])
}

func TestHandleGetDefaults(t *testing.T) {
	s := testServer(t)

	t.Run("printer over network", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware/defaults?type=printer&connection_type=network", nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			ConnectionConfig hardware.NetworkConfig `json:"connection_config"`
			DeviceConfig     hardware.PrinterConfig `json:"device_config"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		assert.Equal(t, hardware.DefaultNetworkPort, body.ConnectionConfig.Port)
		assert.Equal(t, hardware.PrinterModeThermal, body.DeviceConfig.Mode)
		assert.Equal(t, hardware.Paper80mm, body.DeviceConfig.Paper)
	})

	t.Run("label mode defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware/defaults?type=printer&connection_type=usb&mode=label", nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			DeviceConfig hardware.PrinterConfig `json:"device_config"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, hardware.Paper4x6, body.DeviceConfig.Paper)
		assert.True(t, body.DeviceConfig.ZPL)
	})

	t.Run("unsupported combination", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware/defaults?type=scanner&connection_type=network", nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown device type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/hardware/defaults?type=robot&connection_type=usb", nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleValidateDevice(t *testing.T) {
	s := testServer(t)

	validate := func(t *testing.T, payload string) (int, bool, map[string]string) {
		t.Helper()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/hardware-devices/validate", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		s.HandleValidateDevice(rec, req)

		var body struct {
			Valid  bool              `json:"valid"`
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body.Valid, body.Errors
	}

	t.Run("valid network printer", func(t *testing.T) {
		code, valid, errs := validate(t, `{
			"name": "Bar Printer",
			"type": "printer",
			"connection_type": "network",
			"connection_config": {"ip_address": "10.0.0.12", "port": 9100}
		}`)

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, valid)
		assert.Empty(t, errs)
	})

	t.Run("defaults fill absent blocks", func(t *testing.T) {
		// Bluetooth defaults carry no MAC address, so the submission is
		// reported incomplete rather than silently accepted.
		code, valid, errs := validate(t, `{
			"name": "Handheld Scanner",
			"type": "scanner",
			"connection_type": "bluetooth"
		}`)

		assert.Equal(t, http.StatusOK, code)
		assert.False(t, valid)
		assert.Contains(t, errs, "bluetooth_config.mac_address")
	})

	t.Run("scanner over network", func(t *testing.T) {
		_, valid, errs := validate(t, `{
			"name": "Scanner",
			"type": "scanner",
			"connection_type": "network",
			"connection_config": {"ip_address": "10.0.0.5", "port": 9100}
		}`)

		assert.False(t, valid)
		assert.Contains(t, errs, "connection_type")
	})

	t.Run("port out of range", func(t *testing.T) {
		_, valid, errs := validate(t, `{
			"name": "Printer",
			"type": "printer",
			"connection_type": "network",
			"connection_config": {"ip_address": "10.0.0.5", "port": 70000}
		}`)

		assert.False(t, valid)
		assert.Contains(t, errs, "network_config.port")
	})

	t.Run("thermal printer with a4 paper", func(t *testing.T) {
		_, valid, errs := validate(t, `{
			"name": "Printer",
			"type": "printer",
			"connection_type": "network",
			"connection_config": {"ip_address": "10.0.0.5", "port": 9100},
			"device_config": {"mode": "thermal", "paper": "a4"}
		}`)

		assert.False(t, valid)
		assert.Contains(t, errs, "printer_config.paper")
	})

	t.Run("unknown device type", func(t *testing.T) {
		_, valid, errs := validate(t, `{
			"name": "Robot",
			"type": "robot",
			"connection_type": "usb"
		}`)

		assert.False(t, valid)
		assert.Contains(t, errs, "type")
	})
}

func TestNormalizeUSBIDs(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "hex strings",
			in:   `{"vendor_id": "0x04b8", "product_id": "0x0202"}`,
			want: `{"product_id":514,"vendor_id":1208}`,
		},
		{
			name: "decimal strings",
			in:   `{"vendor_id": "1208", "product_id": "514"}`,
			want: `{"product_id":514,"vendor_id":1208}`,
		},
		{
			name: "numbers pass through",
			in:   `{"vendor_id": 1208, "product_id": 514, "usb_path": "1-1.2"}`,
			want: `{"product_id":514,"usb_path":"1-1.2","vendor_id":1208}`,
		},
		{
			name:    "garbage string",
			in:      `{"vendor_id": "epson"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeUSBIDs(json.RawMessage(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestBuildDevice(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		req := &deviceRequest{
			Name:           "Counter Display",
			Type:           "display",
			ConnectionType: "usb",
			ConnectionConfig: json.RawMessage(
				`{"vendor_id": 1208, "product_id": 514}`),
		}

		device, errs := buildDevice(req)
		require.Nil(t, errs)

		assert.True(t, device.Enabled)
		assert.IsType(t, hardware.USBConfig{}, device.ConnectionConfig)
		assert.IsType(t, hardware.DisplayConfig{}, device.DeviceConfig)
	})

	t.Run("enabled flag honored", func(t *testing.T) {
		disabled := false
		req := &deviceRequest{
			Name:           "Spare Drawer",
			Type:           "cash_drawer",
			ConnectionType: "usb",
			Enabled:        &disabled,
			ConnectionConfig: json.RawMessage(
				`{"vendor_id": 1208, "product_id": 514}`),
		}

		device, errs := buildDevice(req)
		require.Nil(t, errs)
		assert.False(t, device.Enabled)
	})

	t.Run("undecodable block reported as field error", func(t *testing.T) {
		req := &deviceRequest{
			Name:             "Printer",
			Type:             "printer",
			ConnectionType:   "network",
			ConnectionConfig: json.RawMessage(`{"port": "nine thousand"}`),
		}

		_, errs := buildDevice(req)
		require.NotNil(t, errs)
		assert.Contains(t, errs, "connection_config")
	})
}
