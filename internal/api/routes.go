package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Health check
	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleRoot)

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.HandleLogin)
		r.Post("/refresh", s.HandleRefresh)
	})

	// Hardware reference data (public, read-only)
	r.Route("/hardware", func(r chi.Router) {
		r.Get("/taxonomy", s.HandleGetTaxonomy)
		r.Get("/defaults", s.HandleGetDefaults)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListUsers)
			r.Post("/", s.HandleCreateUser)
			r.Get("/me", s.HandleGetCurrentUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetUser)
				r.Put("/", s.HandleUpdateUser)
				r.Delete("/", s.HandleDeleteUser)
			})
		})

		// Venues
		r.Route("/venues", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListVenues)
			r.Post("/", s.HandleCreateVenue)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetVenue)
				r.Put("/", s.HandleUpdateVenue)
				r.Delete("/", s.HandleDeleteVenue)
				r.Get("/zones", s.HandleListZones)
				r.Get("/tables", s.HandleListTables)
			})
		})

		// Hardware devices
		r.Route("/hardware-devices", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListDevices)
			r.Post("/", s.HandleCreateDevice)
			r.Post("/validate", s.HandleValidateDevice)
			r.Post("/import", s.HandleImportDevices)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetDevice)
				r.Put("/", s.HandleUpdateDevice)
				r.Delete("/", s.HandleDeleteDevice)
			})
		})

		// Zones
		r.Route("/zones", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/", s.HandleCreateZone)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetZone)
				r.Put("/", s.HandleUpdateZone)
				r.Delete("/", s.HandleDeleteZone)
			})
		})

		// Tables
		r.Route("/tables", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/", s.HandleCreateTable)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetTable)
				r.Put("/", s.HandleUpdateTable)
				r.Delete("/", s.HandleDeleteTable)
			})
		})

		// Reservations
		r.Route("/reservations", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListReservations)
			r.Post("/", s.HandleCreateReservation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetReservation)
				r.Put("/", s.HandleUpdateReservation)
				r.Delete("/", s.HandleDeleteReservation)
			})
		})

		// Events
		r.Route("/events", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/", s.HandleListEvents)
		})
	})
}
