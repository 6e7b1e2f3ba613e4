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
	"github.com/washworks/jobboard/internal/lifecycle"
	"github.com/washworks/jobboard/internal/service"
	"github.com/washworks/jobboard/internal/service/mappers"
)

// (GET /api/v1alpha1/statuses)
func (s *ServiceHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, mappers.CatalogToApi(lifecycle.Catalog()))
}

// (GET /api/v1alpha1/jobs)
func (s *ServiceHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := service.NewJobFilter()

	if status := r.URL.Query().Get("status"); status != "" {
		if _, ok := lifecycle.Parse(status); !ok {
			serviceError(w, r, service.NewErrInvalidStatus(status))
			return
		}
		filter = filter.WithOption(service.WithStatus(status))
	}
	if archived := r.URL.Query().Get("archived"); archived != "" {
		filter = filter.WithOption(service.WithArchived(archived == "true"))
	}
	if completed := r.URL.Query().Get("paymentCompleted"); completed != "" {
		filter = filter.WithOption(service.WithPaymentCompleted(completed == "true"))
	}
	if day := r.URL.Query().Get("day"); day != "" {
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, "day must be formatted as YYYY-MM-DD")
			return
		}
		filter = filter.WithOption(service.WithDay(d))
	}

	jobs, err := s.jobSrv.ListJobs(r.Context(), filter)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobListToApi(jobs))
}

// (POST /api/v1alpha1/jobs)
func (s *ServiceHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var form api.JobCreate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewJobValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())
	job, err := s.jobSrv.CreateJob(r.Context(), mappers.JobCreateForm{
		Plate:     form.Plate,
		Brand:     form.Brand,
		Model:     form.Model,
		Color:     form.Color,
		Notes:     form.Notes,
		CreatedBy: user.Username,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.JobToApi(*job))
}

// (GET /api/v1alpha1/jobs/{id})
func (s *ServiceHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.jobSrv.GetJob(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobToApi(*job))
}

// (PUT /api/v1alpha1/jobs/{id}/status)
func (s *ServiceHandler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid job id")
		return
	}

	var form api.JobStatusUpdate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewJobValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())
	job, err := s.jobSrv.UpdateJobStatus(r.Context(), id, form.Status, user.Username)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobToApi(*job))
}

// (PUT /api/v1alpha1/jobs/{id}/payment)
func (s *ServiceHandler) UpdateJobPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid job id")
		return
	}

	var form api.JobPaymentUpdate
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewJobValidationRules()...)
	if err := v.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	paymentForm := mappers.PaymentUpdateForm{
		JobID:     id,
		Completed: form.Completed,
		Amount:    form.Amount,
		Note:      form.Note,
	}
	if form.Method != nil {
		method := string(*form.Method)
		paymentForm.Method = &method
	}

	job, err := s.jobSrv.UpdateJobPayment(r.Context(), paymentForm)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobToApi(*job))
}

// (POST /api/v1alpha1/jobs/{id}/archive)
func (s *ServiceHandler) ArchiveJob(w http.ResponseWriter, r *http.Request) {
	s.setJobArchived(w, r, true)
}

// (POST /api/v1alpha1/jobs/{id}/restore)
func (s *ServiceHandler) RestoreJob(w http.ResponseWriter, r *http.Request) {
	s.setJobArchived(w, r, false)
}

func (s *ServiceHandler) setJobArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.jobSrv.ArchiveJob(r.Context(), id, archived)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobToApi(*job))
}
