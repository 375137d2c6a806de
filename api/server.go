/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/collaborators/*  Collaborator management + engine endpoints
  /api/clients/*        Client management
  /api/projects/*       Project and membership management
  /api/tasks/*          Task management
  /api/timesheets/*     Timesheet entry management
  /api/absences/*       Absence management
  /api/holidays/*       Holiday calendar management
  /api/calendar/*       Working-day arithmetic
  /api/scenarios/*      Demo scenarios (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Collaborator routes
		r.Route("/collaborators", func(r chi.Router) {
			r.Get("/", h.ListCollaborators)
			r.Post("/", h.CreateCollaborator)
			r.Get("/{id}", h.GetCollaborator)
			r.Delete("/{id}", h.DeleteCollaborator)

			// Engine endpoints (pure computations, no writes)
			r.Get("/{id}/availability", h.GetAvailability)
			r.Get("/{id}/release", h.GetReleaseForecast)
			r.Get("/{id}/allocation", h.GetDailyAllocation)
		})

		// Client routes
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		// Project routes
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Get("/{id}", h.GetProject)
			r.Delete("/{id}", h.DeleteProject)
			r.Post("/{id}/members", h.AddProjectMember)
			r.Delete("/{id}/members/{collaboratorId}", h.RemoveProjectMember)
		})

		// Task routes
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Get("/{id}", h.GetTask)
			r.Delete("/{id}", h.DeleteTask)
		})

		// Timesheet routes
		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", h.ListTimesheetEntries)
			r.Post("/", h.CreateTimesheetEntry)
			r.Delete("/{id}", h.DeleteTimesheetEntry)
		})

		// Absence routes
		r.Route("/absences", func(r chi.Router) {
			r.Get("/", h.ListAbsences)
			r.Post("/", h.CreateAbsence)
			r.Delete("/{id}", h.DeleteAbsence)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Calendar arithmetic
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/working-days", h.GetWorkingDays)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
