package mappers

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/store/model"
)

// NormalizePlate canonicalizes a license plate for storage and duplicate
// detection. Lookups must normalize the same way.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

type JobCreateForm struct {
	Plate     string
	Brand     *string
	Model     *string
	Color     *string
	Notes     *string
	CreatedBy string
}

func (f JobCreateForm) ToJob() model.Job {
	return model.Job{
		ID:        uuid.New(),
		Plate:     NormalizePlate(f.Plate),
		Brand:     f.Brand,
		Model:     f.Model,
		Color:     f.Color,
		Notes:     f.Notes,
		CreatedBy: f.CreatedBy,
	}
}

type PaymentUpdateForm struct {
	JobID     uuid.UUID
	Completed *bool
	Method    *string
	Amount    *float64
	Note      *string
}

type AppointmentCreateForm struct {
	CustomerName  string
	PhoneNumber   string
	Email         *string
	Plate         *string
	Brand         *string
	Model         *string
	Color         *string
	ServiceType   *string
	ScheduledDate time.Time
	ScheduledTime time.Time
	Notes         *string
	CreatedBy     string
}

func (f AppointmentCreateForm) ToAppointment() model.Appointment {
	appointment := model.Appointment{
		ID:            uuid.New(),
		CustomerName:  strings.TrimSpace(f.CustomerName),
		PhoneNumber:   strings.TrimSpace(f.PhoneNumber),
		Email:         f.Email,
		Brand:         f.Brand,
		Model:         f.Model,
		Color:         f.Color,
		ServiceType:   f.ServiceType,
		ScheduledDate: f.ScheduledDate,
		ScheduledTime: f.ScheduledTime,
		Notes:         f.Notes,
		Status:        model.AppointmentStatusPending,
		CreatedBy:     f.CreatedBy,
	}

	if f.Plate != nil {
		plate := NormalizePlate(*f.Plate)
		appointment.Plate = &plate
	}

	return appointment
}
