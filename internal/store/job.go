package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/lifecycle"
	"github.com/washworks/jobboard/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Job interface {
	List(ctx context.Context, filter *JobQueryFilter, opts *JobQueryOptions) (model.JobList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
	Create(ctx context.Context, job model.Job) (*model.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, requested string, actor string) (*model.Job, string, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, completed *bool, method, note *string, amount *float64) (*model.Job, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*model.Job, error)
	InitialMigration(ctx context.Context) error
}

type JobStore struct {
	db        *gorm.DB
	validator *lifecycle.Validator
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB, validator *lifecycle.Validator) Job {
	return &JobStore{db: db, validator: validator}
}

func (s *JobStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.Job{})
}

// List lists jobs matching the filter. No match yields an empty list, not
// an error.
func (s *JobStore) List(ctx context.Context, filter *JobQueryFilter, opts *JobQueryOptions) (model.JobList, error) {
	var jobs model.JobList
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

	if err := tx.Model(&jobs).Find(&jobs).Error; err != nil {
		return nil, err
	}

	return jobs, nil
}

// Get returns a job based on its id, archived or not.
func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job

	if err := s.getDB(ctx).WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &job, nil
}

// Create persists a new job. The duplicate-active check and the insert run
// in one transaction: at most one non-archived job may exist per plate.
func (s *JobStore) Create(ctx context.Context, job model.Job) (*model.Job, error) {
	now := time.Now().UTC()
	if job.ID == (uuid.UUID{}) {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = string(lifecycle.InitialStatus)
	}
	job.StatusChangedAt = now

	err := s.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Job{}).
			Where("plate = ? AND archived IS NOT TRUE", job.Plate).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateKey
		}

		return tx.Create(&job).Error
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// UpdateStatus runs the transition validator and writes the new status
// with fresh provenance. The read and the write happen inside one
// transaction with the row locked, so concurrent updates on the same id
// serialize to a single well-defined final status.
//
// A request for the job's current status is a silent success: the
// unchanged job is returned and no provenance field is touched.
//
// The second return value is the status the job held before the write,
// read under the same lock. It is also set when the transition is
// rejected, so callers can report what the move was rejected against.
func (s *JobStore) UpdateStatus(ctx context.Context, id uuid.UUID, requested string, actor string) (*model.Job, string, error) {
	var job model.Job
	var from string

	err := s.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&job, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		from = job.Status

		decision := s.validator.Validate(lifecycle.Status(job.Status), lifecycle.Status(requested))
		if !decision.Accepted {
			switch decision.Reason {
			case lifecycle.ReasonNoOp:
				return nil
			case lifecycle.ReasonNotAllowed:
				return ErrTransitionNotAllowed
			default:
				return ErrInvalidStatus
			}
		}

		now := time.Now().UTC()
		job.Status = requested
		job.StatusChangedBy = &actor
		job.StatusChangedAt = now
		job.UpdatedAt = now

		return tx.Model(&job).
			Select("status", "status_changed_by", "status_changed_at", "updated_at").
			Updates(&job).Error
	})
	if err != nil {
		return nil, from, err
	}

	return &job, from, nil
}

// UpdatePayment annotates a job with payment details. Payment is
// orthogonal to the status lifecycle; nil fields are left untouched.
func (s *JobStore) UpdatePayment(ctx context.Context, id uuid.UUID, completed *bool, method, note *string, amount *float64) (*model.Job, error) {
	var job model.Job

	err := s.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		selectFields := []string{"updated_at"}
		if completed != nil {
			job.PaymentCompleted = *completed
			selectFields = append(selectFields, "payment_completed")
		}
		if method != nil {
			job.PaymentMethod = method
			selectFields = append(selectFields, "payment_method")
		}
		if amount != nil {
			job.PaymentAmount = amount
			selectFields = append(selectFields, "payment_amount")
		}
		if note != nil {
			job.PaymentNote = note
			selectFields = append(selectFields, "payment_note")
		}
		job.UpdatedAt = time.Now().UTC()

		return tx.Model(&job).Select(selectFields).Updates(&job).Error
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// SetArchived flips the archival flag. Archival is an administrative
// action, not a lifecycle state: the job keeps its status and stays
// queryable historically.
func (s *JobStore) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*model.Job, error) {
	var job model.Job

	err := s.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		job.Archived = archived
		job.UpdatedAt = time.Now().UTC()

		return tx.Model(&job).Select("archived", "updated_at").Updates(&job).Error
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func (s *JobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
