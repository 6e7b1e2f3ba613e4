package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/lifecycle"
	"github.com/washworks/jobboard/internal/store/model"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// Seed loads the demo dataset used by dev environments: a handful of jobs
// spread across the board plus one pending appointment. Existing rows are
// left untouched so the command is idempotent.
func (s *DataStore) Seed(ctx context.Context) error {
	now := time.Now().UTC()

	jobs := []model.Job{
		{
			ID:              uuid.MustParse("47d09363-fb83-4dbe-8d63-e19bbbcdbd01"),
			Plate:           "ABC123",
			Brand:           strPtr("Toyota"),
			Model:           strPtr("Camry"),
			Color:           strPtr("White"),
			Status:          string(lifecycle.StatusWaiting),
			CreatedBy:       "seed",
			StatusChangedAt: now,
		},
		{
			ID:              uuid.MustParse("47d09363-fb83-4dbe-8d63-e19bbbcdbd02"),
			Plate:           "XYZ789",
			Brand:           strPtr("Honda"),
			Model:           strPtr("Civic"),
			Color:           strPtr("Black"),
			Status:          string(lifecycle.StatusWashing),
			CreatedBy:       "seed",
			StatusChangedAt: now,
		},
		{
			ID:               uuid.MustParse("47d09363-fb83-4dbe-8d63-e19bbbcdbd03"),
			Plate:            "DEF456",
			Brand:            strPtr("Ford"),
			Model:            strPtr("Focus"),
			Color:            strPtr("Blue"),
			Status:           string(lifecycle.StatusDetailing),
			PaymentCompleted: true,
			PaymentMethod:    strPtr("cash"),
			PaymentAmount:    f64Ptr(25.50),
			CreatedBy:        "seed",
			StatusChangedAt:  now,
		},
		{
			ID:              uuid.MustParse("47d09363-fb83-4dbe-8d63-e19bbbcdbd04"),
			Plate:           "GHI789",
			Brand:           strPtr("BMW"),
			Model:           strPtr("X5"),
			Color:           strPtr("Silver"),
			Status:          string(lifecycle.StatusReadyForPickup),
			CreatedBy:       "seed",
			StatusChangedAt: now,
		},
	}

	tomorrow := now.AddDate(0, 0, 1)
	appointments := []model.Appointment{
		{
			ID:            uuid.MustParse("47d09363-fb83-4dbe-8d63-e19bbbcdbe01"),
			CustomerName:  "John Smith",
			PhoneNumber:   "+1234567890",
			Plate:         strPtr("JKL012"),
			Brand:         strPtr("Mercedes"),
			Model:         strPtr("C-Class"),
			Color:         strPtr("Red"),
			ServiceType:   strPtr("Full Wash + Detailing"),
			Status:        model.AppointmentStatusPending,
			ScheduledDate: tomorrow,
			ScheduledTime: time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.UTC),
			CreatedBy:     "seed",
		},
	}

	tx, err := newTransaction(s.db)
	if err != nil {
		return err
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}

	for i := range jobs {
		if err := tx.tx.Clauses(onConflict).Create(&jobs[i]).Error; err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	for i := range appointments {
		if err := tx.tx.Clauses(onConflict).Create(&appointments[i]).Error; err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
