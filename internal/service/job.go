package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/events"
	"github.com/washworks/jobboard/internal/service/mappers"
	"github.com/washworks/jobboard/internal/store"
	"github.com/washworks/jobboard/internal/store/model"
	"github.com/washworks/jobboard/pkg/metrics"
	"go.uber.org/zap"
)

type JobService struct {
	store       store.Store
	eventWriter *events.EventProducer
}

func NewJobService(store store.Store, ew *events.EventProducer) *JobService {
	return &JobService{store: store, eventWriter: ew}
}

func (s *JobService) CreateJob(ctx context.Context, form mappers.JobCreateForm) (*model.Job, error) {
	job, err := s.store.Job().Create(ctx, form.ToJob())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateActiveJob(mappers.NormalizePlate(form.Plate))
		}
		return nil, err
	}

	metrics.JobsCreated.Inc()
	s.writeEvent(ctx, events.JobCreatedMessageKind, events.JobCreatedEvent{
		JobID:     job.ID.String(),
		Plate:     job.Plate,
		CreatedBy: job.CreatedBy,
	})

	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}

	return job, nil
}

// ListJobs lists jobs matching the filter. Archived jobs are excluded
// unless the filter asks for them explicitly.
func (s *JobService) ListJobs(ctx context.Context, filter *JobFilter) (model.JobList, error) {
	storeFilter := store.NewJobQueryFilter()

	archived := false
	if filter != nil {
		if filter.Status != nil {
			storeFilter = storeFilter.ByStatus(*filter.Status)
		}
		if filter.Archived != nil {
			archived = *filter.Archived
		}
		if filter.PaymentCompleted != nil {
			storeFilter = storeFilter.ByPaymentCompleted(*filter.PaymentCompleted)
		}
		if filter.Day != nil {
			from := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
			storeFilter = storeFilter.ByCreatedBetween(from, from.AddDate(0, 0, 1))
		}
	}
	storeFilter = storeFilter.ByArchived(archived)

	return s.store.Job().List(ctx, storeFilter, store.NewJobQueryOptions().WithSortOrder(store.SortByCreatedTimeDesc))
}

// UpdateJobStatus moves a job to the requested status. Asking for the
// job's current status succeeds without touching the record. The prior
// status stamped on the event and the transitions metric comes from the
// store's locked transaction, so it is exact under concurrent moves.
func (s *JobService) UpdateJobStatus(ctx context.Context, id uuid.UUID, requested string, actor string) (*model.Job, error) {
	job, from, err := s.store.Job().UpdateStatus(ctx, id, requested, actor)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			return nil, NewErrJobNotFound(id)
		case errors.Is(err, store.ErrInvalidStatus):
			metrics.RejectedMoves.WithLabelValues("unknown_status").Inc()
			return nil, NewErrInvalidStatus(requested)
		case errors.Is(err, store.ErrTransitionNotAllowed):
			metrics.RejectedMoves.WithLabelValues("not_allowed").Inc()
			return nil, NewErrTransitionNotAllowed(from, requested)
		default:
			return nil, err
		}
	}

	if from == job.Status {
		return job, nil
	}

	metrics.StatusTransitions.WithLabelValues(from, job.Status).Inc()
	s.writeEvent(ctx, events.StatusChangedMessageKind, events.StatusChangedEvent{
		JobID:     job.ID.String(),
		Plate:     job.Plate,
		From:      from,
		To:        job.Status,
		ChangedBy: actor,
	})

	return job, nil
}

func (s *JobService) UpdateJobPayment(ctx context.Context, form mappers.PaymentUpdateForm) (*model.Job, error) {
	job, err := s.store.Job().UpdatePayment(ctx, form.JobID, form.Completed, form.Method, form.Note, form.Amount)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(form.JobID)
		}
		return nil, err
	}

	return job, nil
}

func (s *JobService) ArchiveJob(ctx context.Context, id uuid.UUID, archived bool) (*model.Job, error) {
	job, err := s.store.Job().SetArchived(ctx, id, archived)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}

	return job, nil
}

// writeEvent is best effort. Failing to emit never fails the mutation
// that triggered it.
func (s *JobService) writeEvent(ctx context.Context, kind string, body any) {
	if s.eventWriter == nil {
		return
	}

	data, err := json.Marshal(body)
	if err != nil {
		zap.S().Named("job_service").Errorw("failed to marshal event", "error", err, "event_kind", kind)
		return
	}

	if err := s.eventWriter.Write(ctx, kind, bytes.NewBuffer(data)); err != nil {
		zap.S().Named("job_service").Errorw("failed to write event", "error", err, "event_kind", kind)
	}
}

type JobFilterFunc func(f *JobFilter)

type JobFilter struct {
	Status           *string
	Archived         *bool
	PaymentCompleted *bool
	Day              *time.Time
}

func NewJobFilter(filters ...JobFilterFunc) *JobFilter {
	f := &JobFilter{}
	for _, fn := range filters {
		fn(f)
	}
	return f
}

func (f *JobFilter) WithOption(o JobFilterFunc) *JobFilter {
	o(f)
	return f
}

func WithStatus(status string) JobFilterFunc {
	return func(f *JobFilter) {
		f.Status = &status
	}
}

func WithArchived(archived bool) JobFilterFunc {
	return func(f *JobFilter) {
		f.Archived = &archived
	}
}

func WithPaymentCompleted(completed bool) JobFilterFunc {
	return func(f *JobFilter) {
		f.PaymentCompleted = &completed
	}
}

// WithDay restricts the listing to jobs created on the given calendar day,
// the half-open interval [midnight, next midnight) in day's location.
func WithDay(day time.Time) JobFilterFunc {
	return func(f *JobFilter) {
		f.Day = &day
	}
}
