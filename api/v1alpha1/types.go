// Package v1alpha1 holds the wire types of the jobboard API. Field names
// follow the camelCase contract exposed to clients; the storage schema is
// snake_cased and mapped in internal/store/model.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodOther PaymentMethod = "other"
)

// Job is one vehicle's visit tracked through the wash pipeline.
type Job struct {
	Id               uuid.UUID      `json:"id"`
	Plate            string         `json:"plate"`
	Brand            *string        `json:"brand,omitempty"`
	Model            *string        `json:"model,omitempty"`
	Color            *string        `json:"color,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
	Status           string         `json:"status"`
	Archived         bool           `json:"archived"`
	PaymentCompleted bool           `json:"paymentCompleted"`
	PaymentMethod    *PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentAmount    *float64       `json:"paymentAmount,omitempty"`
	PaymentNote      *string        `json:"paymentNote,omitempty"`
	CreatedBy        string         `json:"createdBy"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	StatusChangedBy  *string        `json:"statusChangedBy,omitempty"`
	StatusChangedAt  time.Time      `json:"statusChangedAt"`
}

type JobList []Job

// JobCreate is the intake form. Plate is the only required field.
type JobCreate struct {
	Plate string  `json:"plate" validate:"required,plate"`
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Color *string `json:"color,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type JobStatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// JobPaymentUpdate annotates a job with payment details. Payment is
// orthogonal to the status lifecycle.
type JobPaymentUpdate struct {
	Completed *bool          `json:"completed,omitempty"`
	Method    *PaymentMethod `json:"method,omitempty" validate:"omitempty,payment_method"`
	Amount    *float64       `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Note      *string        `json:"note,omitempty"`
}

// Appointment is a scheduling request taken over phone or email. It has no
// lifecycle of its own; it may eventually be turned into a Job by intake.
type Appointment struct {
	Id            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customerName"`
	PhoneNumber   string    `json:"phoneNumber"`
	Email         *string   `json:"email,omitempty"`
	Plate         *string   `json:"plate,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	Model         *string   `json:"model,omitempty"`
	Color         *string   `json:"color,omitempty"`
	ServiceType   *string   `json:"serviceType,omitempty"`
	ScheduledDate time.Time `json:"scheduledDate"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Notes         *string   `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type AppointmentList []Appointment

type AppointmentCreate struct {
	CustomerName  string    `json:"customerName" validate:"required"`
	PhoneNumber   string    `json:"phoneNumber" validate:"required,phone"`
	Email         *string   `json:"email,omitempty" validate:"omitempty,email"`
	Plate         *string   `json:"plate,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	Model         *string   `json:"model,omitempty"`
	Color         *string   `json:"color,omitempty"`
	ServiceType   *string   `json:"serviceType,omitempty"`
	ScheduledDate time.Time `json:"scheduledDate" validate:"required"`
	ScheduledTime time.Time `json:"scheduledTime" validate:"required"`
	Notes         *string   `json:"notes,omitempty"`
}

// StatusInfo describes one board column. The list order is the board's
// column order.
type StatusInfo struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type StatusInfoList []StatusInfo

// Error is the body returned for every non-2xx response.
type Error struct {
	Message string `json:"message"`
}

type Health struct {
	Status string `json:"status"`
}

func StringToPaymentMethod(s string) PaymentMethod {
	switch s {
	case string(PaymentMethodCash):
		return PaymentMethodCash
	case string(PaymentMethodCard):
		return PaymentMethodCard
	default:
		return PaymentMethodOther
	}
}
