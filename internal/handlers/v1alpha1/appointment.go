package v1alpha1

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	api "github.com/washworks/jobboard/api/v1alpha1"
	"github.com/washworks/jobboard/internal/auth"
	"github.com/washworks/jobboard/internal/handlers/validator"
	"github.com/washworks/jobboard/internal/service"
	"github.com/washworks/jobboard/internal/service/mappers"
)

// (GET /api/v1alpha1/appointments)
func (s *ServiceHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	filter := service.NewAppointmentFilter()

	if status := r.URL.Query().Get("status"); status != "" {
		filter = filter.WithOption(service.WithAppointmentStatus(status))
	}
	if day := r.URL.Query().Get("day"); day != "" {
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, "day must be formatted as YYYY-MM-DD")
			return
		}
		filter = filter.WithOption(service.WithScheduledDay(d))
	}

	appointments, err := s.appointmentSrv.ListAppointments(r.Context(), filter)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.AppointmentListToApi(appointments))
}

// (POST /api/v1alpha1/appointments)
func (s *ServiceHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var form api.AppointmentCreate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewAppointmentValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())
	appointment, err := s.appointmentSrv.CreateAppointment(r.Context(), mappers.AppointmentCreateForm{
		CustomerName:  form.CustomerName,
		PhoneNumber:   form.PhoneNumber,
		Email:         form.Email,
		Plate:         form.Plate,
		Brand:         form.Brand,
		Model:         form.Model,
		Color:         form.Color,
		ServiceType:   form.ServiceType,
		ScheduledDate: form.ScheduledDate,
		ScheduledTime: form.ScheduledTime,
		Notes:         form.Notes,
		CreatedBy:     user.Username,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.AppointmentToApi(*appointment))
}

// (GET /api/v1alpha1/appointments/{id})
func (s *ServiceHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid appointment id")
		return
	}

	appointment, err := s.appointmentSrv.GetAppointment(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.AppointmentToApi(*appointment))
}
