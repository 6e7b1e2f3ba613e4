package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is the persisted record of one vehicle's visit. Columns are
// snake_cased by gorm; the camelCase wire mapping lives in
// internal/service/mappers.
type Job struct {
	ID               uuid.UUID `gorm:"primaryKey"`
	Plate            string    `gorm:"not null;index"`
	Brand            *string
	Model            *string
	Color            *string
	Notes            *string
	Status           string `gorm:"not null;default:waiting;index"`
	Archived         bool   `gorm:"not null;default:false"`
	PaymentCompleted bool   `gorm:"not null;default:false"`
	PaymentMethod    *string
	PaymentAmount    *float64
	PaymentNote      *string
	CreatedBy        string `gorm:"not null"`
	StatusChangedBy  *string
	StatusChangedAt  time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

type JobList []Job

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

func NewJobFromID(id uuid.UUID) *Job {
	return &Job{ID: id}
}
