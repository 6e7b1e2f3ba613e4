package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/service/mappers"
	"github.com/washworks/jobboard/internal/store"
	"github.com/washworks/jobboard/internal/store/model"
)

type AppointmentService struct {
	store store.Store
}

func NewAppointmentService(store store.Store) *AppointmentService {
	return &AppointmentService{store: store}
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, form mappers.AppointmentCreateForm) (*model.Appointment, error) {
	return s.store.Appointment().Create(ctx, form.ToAppointment())
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.store.Appointment().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrAppointmentNotFound(id)
		}
		return nil, err
	}

	return appointment, nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context, filter *AppointmentFilter) (model.AppointmentList, error) {
	storeFilter := store.NewAppointmentQueryFilter()

	if filter != nil {
		if filter.Status != nil {
			storeFilter = storeFilter.ByStatus(*filter.Status)
		}
		if filter.Day != nil {
			from := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
			storeFilter = storeFilter.ByScheduledBetween(from, from.AddDate(0, 0, 1))
		}
	}

	return s.store.Appointment().List(ctx, storeFilter, store.NewAppointmentQueryOptions().WithSortOrder(store.SortByScheduledTime))
}

type AppointmentFilterFunc func(f *AppointmentFilter)

type AppointmentFilter struct {
	Status *string
	Day    *time.Time
}

func NewAppointmentFilter(filters ...AppointmentFilterFunc) *AppointmentFilter {
	f := &AppointmentFilter{}
	for _, fn := range filters {
		fn(f)
	}
	return f
}

func (f *AppointmentFilter) WithOption(o AppointmentFilterFunc) *AppointmentFilter {
	o(f)
	return f
}

func WithAppointmentStatus(status string) AppointmentFilterFunc {
	return func(f *AppointmentFilter) {
		f.Status = &status
	}
}

// WithScheduledDay restricts the listing to appointments scheduled on the
// given calendar day, the half-open interval [midnight, next midnight) in
// day's location.
func WithScheduledDay(day time.Time) AppointmentFilterFunc {
	return func(f *AppointmentFilter) {
		f.Day = &day
	}
}
