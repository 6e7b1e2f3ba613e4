// Package board maintains a client-side projection of the wash pipeline:
// one column per status, jobs moved between columns optimistically and
// reconciled against the API in the background.
package board

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lthibault/jitterbug/v2"
	api "github.com/washworks/jobboard/api/v1alpha1"
	"github.com/washworks/jobboard/internal/lifecycle"
	"go.uber.org/zap"
)

// Service is the slice of the API the board needs. It is implemented by
// the HTTP client and by fakes in tests.
type Service interface {
	ListJobs(ctx context.Context) (api.JobList, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) (*api.Job, error)
}

// Column is one board column in catalog order.
type Column struct {
	Status lifecycle.Status
	Label  string
	Jobs   []api.Job
}

type moveRequest struct {
	from lifecycle.Status
	to   lifecycle.Status
	job  api.Job
	seq  uint64
}

// Engine keeps the projection and reconciles it with the service. Moves
// are applied locally first so the board never blocks on the network; the
// backing call runs in the background and the column is restored if it
// fails. Calls for the same job are serialized, and a sequence number per
// job makes the latest local move win over stale responses.
type Engine struct {
	service        Service
	refreshEvery   time.Duration
	requestTimeout time.Duration

	opCh   chan func()
	doneCh chan any

	// all fields below are owned by the run loop
	columns map[lifecycle.Status][]api.Job
	queues  map[uuid.UUID][]moveRequest
	busy    map[uuid.UUID]bool
	seq     map[uuid.UUID]uint64
}

type EngineOption func(e *Engine)

func WithRefreshInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.refreshEvery = d
	}
}

func WithRequestTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.requestTimeout = d
	}
}

func NewEngine(service Service, opts ...EngineOption) *Engine {
	e := &Engine{
		service:        service,
		refreshEvery:   30 * time.Second,
		requestTimeout: 10 * time.Second,
		opCh:           make(chan func()),
		doneCh:         make(chan any),
		columns:        emptyColumns(),
		queues:         make(map[uuid.UUID][]moveRequest),
		busy:           make(map[uuid.UUID]bool),
		seq:            make(map[uuid.UUID]uint64),
	}

	for _, o := range opts {
		o(e)
	}

	go e.run()
	return e
}

func emptyColumns() map[lifecycle.Status][]api.Job {
	columns := make(map[lifecycle.Status][]api.Job, len(lifecycle.Statuses()))
	for _, s := range lifecycle.Statuses() {
		columns[s] = []api.Job{}
	}
	return columns
}

// run owns all projection state. Every read and write goes through opCh,
// so no locking is needed anywhere else.
func (e *Engine) run() {
	for {
		select {
		case op := <-e.opCh:
			op()
		case <-e.doneCh:
			return
		}
	}
}

func (e *Engine) do(op func()) {
	done := make(chan any)
	select {
	case e.opCh <- func() {
		op()
		close(done)
	}:
		<-done
	case <-e.doneCh:
	}
}

func (e *Engine) Close() {
	close(e.doneCh)
}

// Load replaces the projection with the jobs the service reports. Jobs
// with a reconciliation still in flight keep their optimistic placement.
func (e *Engine) Load(ctx context.Context) error {
	jobs, err := e.service.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	e.do(func() {
		fresh := emptyColumns()
		for _, j := range jobs {
			if j.Archived {
				continue
			}
			if e.pending(j.Id) {
				continue
			}
			status, ok := lifecycle.Parse(j.Status)
			if !ok {
				zap.S().Named("board").Warnw("dropping job with unknown status", "job_id", j.Id, "status", j.Status)
				continue
			}
			fresh[status] = append(fresh[status], j)
		}

		for status, column := range e.columns {
			for _, j := range column {
				if e.pending(j.Id) {
					fresh[status] = append(fresh[status], j)
				}
			}
		}

		e.columns = fresh
	})

	return nil
}

// Run refreshes the projection periodically until ctx is cancelled. The
// ticker is jittered so several boards pointing at the same service do not
// refresh in lockstep.
func (e *Engine) Run(ctx context.Context) {
	ticker := jitterbug.New(e.refreshEvery, &jitterbug.Norm{Stdev: 500 * time.Millisecond, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := e.Load(ctx); err != nil {
			zap.S().Named("board").Errorw("board refresh failed", "error", err)
		}
	}
}

// Move relocates a job to the target column immediately and reconciles
// with the service in the background. A move to the job's current column
// is a no-op.
func (e *Engine) Move(jobID uuid.UUID, to lifecycle.Status) error {
	if !lifecycle.IsValid(to) {
		return fmt.Errorf("unknown status %q", to)
	}

	var moveErr error
	e.do(func() {
		from, job, found := e.locate(jobID)
		if !found {
			moveErr = fmt.Errorf("job %s is not on the board", jobID)
			return
		}
		if from == to {
			return
		}

		e.seq[jobID]++
		e.placeJob(job, from, to)
		e.enqueue(moveRequest{from: from, to: to, job: job, seq: e.seq[jobID]})
	})

	return moveErr
}

// Snapshot returns the columns in catalog order.
func (e *Engine) Snapshot() []Column {
	var snapshot []Column
	e.do(func() {
		for _, entry := range lifecycle.Catalog() {
			jobs := make([]api.Job, len(e.columns[entry.Status]))
			copy(jobs, e.columns[entry.Status])
			snapshot = append(snapshot, Column{Status: entry.Status, Label: entry.Label, Jobs: jobs})
		}
	})
	return snapshot
}

// Counts returns the number of jobs per column, used by the occupancy
// metric collector.
func (e *Engine) Counts() map[string]int {
	counts := make(map[string]int, len(lifecycle.Statuses()))
	e.do(func() {
		for status, column := range e.columns {
			counts[string(status)] = len(column)
		}
	})
	return counts
}

// pending reports whether the job has reconciliation calls queued or in
// flight. Must run on the run loop.
func (e *Engine) pending(id uuid.UUID) bool {
	return e.busy[id] || len(e.queues[id]) > 0
}

func (e *Engine) locate(id uuid.UUID) (lifecycle.Status, api.Job, bool) {
	for status, column := range e.columns {
		for _, j := range column {
			if j.Id == id {
				return status, j, true
			}
		}
	}
	return "", api.Job{}, false
}

// placeJob removes the job from every column and appends it to the target
// one, so a job can never appear twice.
func (e *Engine) placeJob(job api.Job, from, to lifecycle.Status) {
	for status, column := range e.columns {
		kept := column[:0]
		for _, j := range column {
			if j.Id != job.Id {
				kept = append(kept, j)
			}
		}
		e.columns[status] = kept
	}
	job.Status = string(to)
	e.columns[to] = append(e.columns[to], job)
}

// enqueue queues the backing call for the job and starts a drainer if none
// is running. One drainer per job keeps its calls in order.
func (e *Engine) enqueue(req moveRequest) {
	id := req.job.Id
	e.queues[id] = append(e.queues[id], req)
	if !e.busy[id] {
		e.busy[id] = true
		go e.drain(id)
	}
}

func (e *Engine) drain(id uuid.UUID) {
	for {
		var req moveRequest
		var empty bool
		e.do(func() {
			if len(e.queues[id]) == 0 {
				e.busy[id] = false
				delete(e.queues, id)
				empty = true
				return
			}
			req = e.queues[id][0]
			e.queues[id] = e.queues[id][1:]
		})
		if empty {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), e.requestTimeout)
		job, err := e.service.UpdateJobStatus(ctx, id, string(req.to))
		cancel()

		e.apply(req, job, err)
	}
}

// apply settles one reconciliation result. Responses for superseded moves
// are dropped: the latest local move wins.
func (e *Engine) apply(req moveRequest, job *api.Job, err error) {
	e.do(func() {
		if e.seq[req.job.Id] != req.seq {
			return
		}

		if err != nil {
			zap.S().Named("board").Errorw("move rejected, restoring column",
				"job_id", req.job.Id, "from", req.from, "to", req.to, "error", err)
			e.placeJob(req.job, req.to, req.from)
			return
		}

		status, ok := lifecycle.Parse(job.Status)
		if !ok {
			status = req.to
		}
		e.placeJob(*job, req.to, status)
	})
}
