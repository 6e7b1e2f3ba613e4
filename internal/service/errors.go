package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/lifecycle"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

func NewErrAppointmentNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "appointment")
}

type ErrDuplicateActiveJob struct {
	error
}

func NewErrDuplicateActiveJob(plate string) *ErrDuplicateActiveJob {
	return &ErrDuplicateActiveJob{fmt.Errorf("an active job already exists for plate %s", plate)}
}

type ErrInvalidStatus struct {
	error
}

func NewErrInvalidStatus(requested string) *ErrInvalidStatus {
	return &ErrInvalidStatus{fmt.Errorf("unknown status %q, valid statuses are: %s", requested, strings.Join(lifecycle.StatusNames(), ", "))}
}

type ErrTransitionNotAllowed struct {
	error
}

func NewErrTransitionNotAllowed(from, to string) *ErrTransitionNotAllowed {
	return &ErrTransitionNotAllowed{fmt.Errorf("moving a job from %s back to %s is not allowed", from, to)}
}
