package store

import (
	"time"

	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByCreatedTime
	SortByCreatedTimeDesc
	SortByScheduledTime
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type JobQueryFilter BaseQuerier

func NewJobQueryFilter() *JobQueryFilter {
	return &JobQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *JobQueryFilter) ByStatus(status string) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

func (qf *JobQueryFilter) ByPlate(plate string) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("plate = ?", plate)
	})
	return qf
}

func (qf *JobQueryFilter) ByArchived(archived bool) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		if archived {
			return tx.Where("archived IS TRUE")
		}
		return tx.Where("archived IS NOT TRUE")
	})
	return qf
}

func (qf *JobQueryFilter) ByPaymentCompleted(completed bool) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		if completed {
			return tx.Where("payment_completed IS TRUE")
		}
		return tx.Where("payment_completed IS NOT TRUE")
	})
	return qf
}

// ByCreatedBetween filters on the half-open interval [from, to).
func (qf *JobQueryFilter) ByCreatedBetween(from, to time.Time) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at >= ? AND created_at < ?", from, to)
	})
	return qf
}

type JobQueryOptions BaseQuerier

func NewJobQueryOptions() *JobQueryOptions {
	return &JobQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *JobQueryOptions) WithSortOrder(sort SortOrder) *JobQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByCreatedTime:
			return tx.Order("created_at")
		case SortByCreatedTimeDesc:
			return tx.Order("created_at DESC")
		default:
			return tx
		}
	})
	return o
}

type AppointmentQueryFilter BaseQuerier

func NewAppointmentQueryFilter() *AppointmentQueryFilter {
	return &AppointmentQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *AppointmentQueryFilter) ByStatus(status string) *AppointmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

// ByScheduledBetween filters on the half-open interval [from, to).
func (qf *AppointmentQueryFilter) ByScheduledBetween(from, to time.Time) *AppointmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("scheduled_date >= ? AND scheduled_date < ?", from, to)
	})
	return qf
}

type AppointmentQueryOptions BaseQuerier

func NewAppointmentQueryOptions() *AppointmentQueryOptions {
	return &AppointmentQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *AppointmentQueryOptions) WithSortOrder(sort SortOrder) *AppointmentQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByScheduledTime:
			return tx.Order("scheduled_time")
		case SortByCreatedTime:
			return tx.Order("created_at")
		case SortByCreatedTimeDesc:
			return tx.Order("created_at DESC")
		default:
			return tx
		}
	})
	return o
}
