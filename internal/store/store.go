package store

import (
	"context"

	"github.com/washworks/jobboard/internal/lifecycle"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Job() Job
	Appointment() Appointment
	InitialMigration(ctx context.Context) error
	Seed(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db          *gorm.DB
	job         Job
	appointment Appointment
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		job:         NewJobStore(db, lifecycle.NewValidator()),
		appointment: NewAppointmentStore(db),
		db:          db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) Appointment() Appointment {
	return s.appointment
}

func (s *DataStore) InitialMigration(ctx context.Context) error {
	if err := s.job.InitialMigration(ctx); err != nil {
		return err
	}
	return s.appointment.InitialMigration(ctx)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
