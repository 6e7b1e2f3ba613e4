package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/store/model"
	"gorm.io/gorm"
)

type Appointment interface {
	List(ctx context.Context, filter *AppointmentQueryFilter, opts *AppointmentQueryOptions) (model.AppointmentList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Create(ctx context.Context, appointment model.Appointment) (*model.Appointment, error)
	InitialMigration(ctx context.Context) error
}

type AppointmentStore struct {
	db *gorm.DB
}

// Make sure we conform to Appointment interface
var _ Appointment = (*AppointmentStore)(nil)

func NewAppointmentStore(db *gorm.DB) Appointment {
	return &AppointmentStore{db: db}
}

func (s *AppointmentStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.Appointment{})
}

func (s *AppointmentStore) List(ctx context.Context, filter *AppointmentQueryFilter, opts *AppointmentQueryOptions) (model.AppointmentList, error) {
	var appointments model.AppointmentList
	tx := s.getDB(ctx)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Model(&appointments).Find(&appointments).Error; err != nil {
		return nil, err
	}

	return appointments, nil
}

func (s *AppointmentStore) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment

	if err := s.getDB(ctx).WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &appointment, nil
}

func (s *AppointmentStore) Create(ctx context.Context, appointment model.Appointment) (*model.Appointment, error) {
	if appointment.ID == (uuid.UUID{}) {
		appointment.ID = uuid.New()
	}
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusPending
	}

	if err := s.getDB(ctx).WithContext(ctx).Create(&appointment).Error; err != nil {
		return nil, err
	}

	return &appointment, nil
}

func (s *AppointmentStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
