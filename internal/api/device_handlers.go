package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/venuepos/venuepos-server/internal/models"
	"github.com/venuepos/venuepos-server/internal/storage"
	"github.com/venuepos/venuepos-server/pkg/hardware"
)

// deviceRequest is the wire form of a device configuration submission.
// Config blocks stay raw until the type tags are known.
type deviceRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=100"`
	Type             string          `json:"type" validate:"required"`
	ConnectionType   string          `json:"connection_type" validate:"required"`
	TerminalID       *uuid.UUID      `json:"terminal_id,omitempty"`
	Enabled          *bool           `json:"enabled,omitempty"`
	ConnectionConfig json.RawMessage `json:"connection_config,omitempty"`
	DeviceConfig     json.RawMessage `json:"device_config,omitempty"`
}

// buildDevice assembles a core device record from a submission, filling
// defaults for absent blocks. A block that fails to decode is reported
// as a field error on the block path rather than a transport-level 400,
// so bulk import can surface it per index.
func buildDevice(req *deviceRequest) (*hardware.Device, hardware.FieldErrors) {
	t := hardware.DeviceType(req.Type)
	c := hardware.ConnectionType(req.ConnectionType)

	device := &hardware.Device{
		Name:           req.Name,
		Type:           t,
		ConnectionType: c,
		Enabled:        true,
	}
	if req.TerminalID != nil {
		device.TerminalID = req.TerminalID.String()
	}
	if req.Enabled != nil {
		device.Enabled = *req.Enabled
	}

	errs := hardware.FieldErrors{}

	if len(req.ConnectionConfig) > 0 && !bytes.Equal(req.ConnectionConfig, []byte("null")) {
		cfg, err := hardware.UnmarshalConnectionConfig(c, req.ConnectionConfig)
		if err != nil {
			errs.Add("connection_config", err.Error())
		} else {
			device.ConnectionConfig = cfg
		}
	} else {
		device.ConnectionConfig = hardware.DefaultConnectionConfig(c)
	}

	if len(req.DeviceConfig) > 0 && !bytes.Equal(req.DeviceConfig, []byte("null")) {
		cfg, err := hardware.UnmarshalDeviceConfig(t, req.DeviceConfig)
		if err != nil {
			errs.Add("device_config", err.Error())
		} else {
			device.DeviceConfig = cfg
		}
	} else {
		device.DeviceConfig = hardware.DefaultDeviceConfig(t, "")
	}

	for path, reason := range hardware.Validate(device) {
		errs.Add(path, reason)
	}

	if len(errs) == 0 {
		return device, nil
	}
	return device, errs
}

// ========== Hardware device handlers ==========

// HandleListDevices lists hardware devices
func (s *RESTServer) HandleListDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters storage.DeviceFilters
	if vid := r.URL.Query().Get("venue_id"); vid != "" {
		id, err := uuid.Parse(vid)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid venue_id")
			return
		}
		filters.VenueID = &id
	}
	if t := r.URL.Query().Get("type"); t != "" {
		dt := hardware.DeviceType(t)
		filters.Type = &dt
	}
	if e := r.URL.Query().Get("enabled"); e != "" {
		enabled := e == "true"
		filters.Enabled = &enabled
	}
	if st := r.URL.Query().Get("status"); st != "" {
		status := models.DeviceStatus(st)
		filters.Status = &status
	}

	limit, offset := pagination(r)

	devices, total, err := s.store.ListHardwareDevices(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"devices": devices,
		"total":   total,
	})
}

// HandleCreateDevice creates a hardware device
func (s *RESTServer) HandleCreateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		deviceRequest
		VenueID uuid.UUID `json:"venue_id" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t := hardware.DeviceType(req.Type)
	c := hardware.ConnectionType(req.ConnectionType)

	// A known type with a transport outside its compatibility row is a
	// malformed request, not a field-level correction.
	if hardware.AllowedConnectionTypes(t) != nil && !hardware.ConnectionAllowed(t, c) {
		s.respondError(w, http.StatusBadRequest,
			hardware.ErrUnsupportedCombination.Error()+": "+req.Type+" over "+req.ConnectionType)
		return
	}

	core, fieldErrs := buildDevice(&req.deviceRequest)
	if fieldErrs != nil {
		s.respondFieldErrors(w, fieldErrs)
		return
	}

	device := &models.HardwareDevice{
		VenueID:          req.VenueID,
		Name:             core.Name,
		Type:             core.Type,
		ConnectionType:   core.ConnectionType,
		TerminalID:       req.TerminalID,
		Enabled:          core.Enabled,
		ConnectionConfig: core.ConnectionConfig,
		DeviceConfig:     core.DeviceConfig,
		Status:           models.DeviceStatusUnknown,
	}

	if err := s.store.CreateHardwareDevice(ctx, device); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "device already exists")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logDeviceEvent(ctx, device, models.EventTypeDeviceCreated, "device created")

	s.respondJSON(w, http.StatusCreated, device)
}

// HandleGetDevice gets a hardware device
func (s *RESTServer) HandleGetDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	device, err := s.store.GetHardwareDevice(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "device not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, device)
}

// HandleUpdateDevice updates a hardware device. Type and connection
// type are fixed at creation; changing them means delete and recreate.
func (s *RESTServer) HandleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	var req struct {
		Name             string          `json:"name,omitempty"`
		Type             string          `json:"type,omitempty"`
		ConnectionType   string          `json:"connection_type,omitempty"`
		TerminalID       *uuid.UUID      `json:"terminal_id,omitempty"`
		Enabled          *bool           `json:"enabled,omitempty"`
		ConnectionConfig json.RawMessage `json:"connection_config,omitempty"`
		DeviceConfig     json.RawMessage `json:"device_config,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	device, err := s.store.GetHardwareDevice(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "device not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Type != "" && hardware.DeviceType(req.Type) != device.Type {
		s.respondError(w, http.StatusBadRequest, "type is immutable, delete and recreate the device")
		return
	}
	if req.ConnectionType != "" && hardware.ConnectionType(req.ConnectionType) != device.ConnectionType {
		s.respondError(w, http.StatusBadRequest, "connection_type is immutable, delete and recreate the device")
		return
	}

	if req.Name != "" {
		device.Name = req.Name
	}
	if req.TerminalID != nil {
		device.TerminalID = req.TerminalID
	}
	if req.Enabled != nil {
		device.Enabled = *req.Enabled
	}

	fieldErrs := hardware.FieldErrors{}

	if len(req.ConnectionConfig) > 0 {
		cfg, err := hardware.UnmarshalConnectionConfig(device.ConnectionType, req.ConnectionConfig)
		if err != nil {
			fieldErrs.Add("connection_config", err.Error())
		} else {
			device.ConnectionConfig = cfg
		}
	}
	if len(req.DeviceConfig) > 0 {
		cfg, err := hardware.UnmarshalDeviceConfig(device.Type, req.DeviceConfig)
		if err != nil {
			fieldErrs.Add("device_config", err.Error())
		} else {
			device.DeviceConfig = cfg
		}
	}

	for path, reason := range hardware.Validate(device.Core()) {
		fieldErrs.Add(path, reason)
	}
	if len(fieldErrs) > 0 {
		s.respondFieldErrors(w, fieldErrs)
		return
	}

	if err := s.store.UpdateHardwareDevice(ctx, device); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "device not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logDeviceEvent(ctx, device, models.EventTypeDeviceUpdated, "device configuration updated")

	s.respondJSON(w, http.StatusOK, device)
}

// HandleDeleteDevice deletes a hardware device
func (s *RESTServer) HandleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	device, err := s.store.GetHardwareDevice(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "device not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.store.DeleteHardwareDevice(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "device not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logDeviceEvent(ctx, device, models.EventTypeDeviceDeleted, "device deleted")

	w.WriteHeader(http.StatusNoContent)
}

// HandleValidateDevice dry-runs a device payload through validation
// without persisting anything. Edit forms call this on every change.
func (s *RESTServer) HandleValidateDevice(w http.ResponseWriter, r *http.Request) {
	var req deviceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, fieldErrs := buildDevice(&req)

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  len(fieldErrs) == 0,
		"errors": fieldErrs,
	})
}

// HandleImportDevices bulk-imports device configurations. Each entry is
// validated independently and reported per index; valid entries are
// created even when siblings fail.
func (s *RESTServer) HandleImportDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		VenueID uuid.UUID       `json:"venue_id" validate:"required"`
		Devices []deviceRequest `json:"devices"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Devices) == 0 {
		s.respondError(w, http.StatusBadRequest, "devices list is empty")
		return
	}

	type importResult struct {
		Index  int                  `json:"index"`
		ID     *uuid.UUID           `json:"id,omitempty"`
		Valid  bool                 `json:"valid"`
		Errors hardware.FieldErrors `json:"errors,omitempty"`
	}

	results := make([]importResult, 0, len(req.Devices))
	created := 0

	for i := range req.Devices {
		entry := &req.Devices[i]

		// Exported USB ids arrive as hex strings, normalize before the
		// union decoder sees them.
		if hardware.ConnectionType(entry.ConnectionType) == hardware.ConnectionUSB && len(entry.ConnectionConfig) > 0 {
			normalized, err := normalizeUSBIDs(entry.ConnectionConfig)
			if err != nil {
				results = append(results, importResult{
					Index:  i,
					Errors: hardware.FieldErrors{"connection_config": err.Error()},
				})
				continue
			}
			entry.ConnectionConfig = normalized
		}

		core, fieldErrs := buildDevice(entry)
		if fieldErrs != nil {
			results = append(results, importResult{Index: i, Errors: fieldErrs})
			continue
		}

		device := &models.HardwareDevice{
			VenueID:          req.VenueID,
			Name:             core.Name,
			Type:             core.Type,
			ConnectionType:   core.ConnectionType,
			TerminalID:       entry.TerminalID,
			Enabled:          core.Enabled,
			ConnectionConfig: core.ConnectionConfig,
			DeviceConfig:     core.DeviceConfig,
			Status:           models.DeviceStatusUnknown,
		}

		if err := s.store.CreateHardwareDevice(ctx, device); err != nil {
			results = append(results, importResult{
				Index:  i,
				Errors: hardware.FieldErrors{"name": err.Error()},
			})
			continue
		}

		s.logDeviceEvent(ctx, device, models.EventTypeDeviceCreated, "device imported")

		id := device.ID
		results = append(results, importResult{Index: i, ID: &id, Valid: true})
		created++
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
		"total":   len(req.Devices),
		"results": results,
	})
}

// ========== Hardware reference data ==========

// HandleGetTaxonomy serves the device taxonomy: every dropdown the
// configuration UI needs in one response.
func (s *RESTServer) HandleGetTaxonomy(w http.ResponseWriter, r *http.Request) {
	compatibility := make(map[hardware.DeviceType][]hardware.ConnectionType)
	deviceModels := make(map[hardware.DeviceType][]string)
	for _, t := range hardware.DeviceTypes() {
		compatibility[t] = hardware.AllowedConnectionTypes(t)
		deviceModels[t] = hardware.DeviceModelsForType(t)
	}

	paperSizes := make(map[hardware.PrinterMode][]hardware.PaperSize)
	for _, m := range hardware.PrinterModes() {
		paperSizes[m] = hardware.PaperSizesForPrinterMode(m)
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"device_types":     hardware.DeviceTypes(),
		"connection_types": hardware.ConnectionTypes(),
		"compatibility":    compatibility,
		"printer_modes":    hardware.PrinterModes(),
		"paper_sizes":      paperSizes,
		"providers":        hardware.Providers(),
		"weight_units":     hardware.WeightUnits(),
		"device_models":    deviceModels,
	})
}

// HandleGetDefaults serves the default configuration block pair for a
// prospective device, used to initialize creation forms.
func (s *RESTServer) HandleGetDefaults(w http.ResponseWriter, r *http.Request) {
	t := hardware.DeviceType(r.URL.Query().Get("type"))
	c := hardware.ConnectionType(r.URL.Query().Get("connection_type"))
	mode := hardware.PrinterMode(r.URL.Query().Get("mode"))

	if hardware.AllowedConnectionTypes(t) == nil {
		s.respondError(w, http.StatusBadRequest, "unknown device type")
		return
	}
	if !hardware.ConnectionAllowed(t, c) {
		s.respondError(w, http.StatusBadRequest,
			hardware.ErrUnsupportedCombination.Error()+": "+string(t)+" over "+string(c))
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"connection_config": hardware.DefaultConnectionConfig(c),
		"device_config":     hardware.DefaultDeviceConfig(t, mode),
	})
}

// ========== Helpers ==========

// respondFieldErrors reports validation failures as a field to reason
// map, keyed by config block paths like printer_config.paper.
func (s *RESTServer) respondFieldErrors(w http.ResponseWriter, errs hardware.FieldErrors) {
	s.respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"valid":  false,
		"errors": errs,
	})
}

// normalizeUSBIDs rewrites vendor_id and product_id given as decimal or
// 0x-prefixed hex strings into plain integers.
func normalizeUSBIDs(raw json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	for _, key := range []string{"vendor_id", "product_id"} {
		val, ok := fields[key]
		if !ok || len(val) == 0 || val[0] != '"' {
			continue
		}

		var str string
		if err := json.Unmarshal(val, &str); err != nil {
			return nil, err
		}

		id, err := hardware.ParseUSBID(str)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		fields[key] = encoded
	}

	return json.Marshal(fields)
}

// logDeviceEvent records a configuration lifecycle event. Event logging
// never fails the request.
func (s *RESTServer) logDeviceEvent(ctx context.Context, device *models.HardwareDevice, eventType models.EventType, description string) {
	event := &models.EventLog{
		VenueID:     &device.VenueID,
		DeviceID:    &device.ID,
		Type:        eventType,
		Level:       models.EventLevelInfo,
		Code:        string(eventType),
		Description: description,
		Details: models.Variables{
			"name":            device.Name,
			"type":            string(device.Type),
			"connection_type": string(device.ConnectionType),
		},
	}

	if err := s.store.CreateEventLog(ctx, event); err != nil {
		log.Warn().Err(err).Str("device_id", device.ID.String()).Msg("Failed to record device event")
	}
}
