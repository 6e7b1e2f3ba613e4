// Package v1alpha1 holds the HTTP handlers of the jobboard API. Handlers
// decode and validate the wire forms, delegate to the services and map
// typed service errors to HTTP status codes.
package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	api "github.com/washworks/jobboard/api/v1alpha1"
	"github.com/washworks/jobboard/internal/service"
)

type ServiceHandler struct {
	jobSrv         *service.JobService
	appointmentSrv *service.AppointmentService
}

func NewServiceHandler(jobService *service.JobService, appointmentService *service.AppointmentService) *ServiceHandler {
	return &ServiceHandler{
		jobSrv:         jobService,
		appointmentSrv: appointmentService,
	}
}

func (s *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", s.Health)
	router.Route("/api/v1alpha1", func(r chi.Router) {
		r.Get("/statuses", s.ListStatuses)
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", s.ListJobs)
			r.Post("/", s.CreateJob)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetJob)
				r.Put("/status", s.UpdateJobStatus)
				r.Put("/payment", s.UpdateJobPayment)
				r.Post("/archive", s.ArchiveJob)
				r.Post("/restore", s.RestoreJob)
			})
		})
		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", s.ListAppointments)
			r.Post("/", s.CreateAppointment)
			r.Get("/{id}", s.GetAppointment)
		})
	})
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: message})
}

// serviceError maps typed service errors to HTTP status codes. Unknown
// errors are storage failures and stay opaque to the client.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *service.ErrResourceNotFound:
		renderError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrDuplicateActiveJob:
		renderError(w, r, http.StatusConflict, err.Error())
	case *service.ErrInvalidStatus, *service.ErrTransitionNotAllowed:
		renderError(w, r, http.StatusBadRequest, err.Error())
	default:
		renderError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
