package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatusPending is the status every appointment is created in.
// Appointments carry no transition logic; the field is plain text.
const AppointmentStatusPending = "pending"

type Appointment struct {
	ID            uuid.UUID `gorm:"primaryKey"`
	CustomerName  string    `gorm:"not null"`
	PhoneNumber   string    `gorm:"not null"`
	Email         *string
	Plate         *string
	Brand         *string
	Model         *string
	Color         *string
	ServiceType   *string
	ScheduledDate time.Time `gorm:"not null;index"`
	ScheduledTime time.Time `gorm:"not null"`
	Notes         *string
	Status        string `gorm:"not null;default:pending"`
	CreatedBy     string `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

type AppointmentList []Appointment

func (a Appointment) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
