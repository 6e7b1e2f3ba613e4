// Package client is a thin HTTP client for the jobboard API, used by the
// board CLI. It implements board.Service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	api "github.com/washworks/jobboard/api/v1alpha1"
)

const identityHeader = "x-staff-user"

type JobBoard struct {
	baseUrl  string
	username string
	client   *http.Client
}

type Option func(c *JobBoard)

// WithUsername sets the staff identity sent with every request.
func WithUsername(username string) Option {
	return func(c *JobBoard) {
		c.username = username
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *JobBoard) {
		c.client = client
	}
}

func New(baseUrl string, opts ...Option) *JobBoard {
	c := &JobBoard{
		baseUrl: baseUrl,
		client:  &http.Client{Timeout: 30 * time.Second},
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

func (c *JobBoard) ListJobs(ctx context.Context) (api.JobList, error) {
	var jobs api.JobList
	query := url.Values{"archived": []string{"false"}}
	if err := c.get(ctx, "/api/v1alpha1/jobs?"+query.Encode(), &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *JobBoard) GetJob(ctx context.Context, id uuid.UUID) (*api.Job, error) {
	var job api.Job
	if err := c.get(ctx, fmt.Sprintf("/api/v1alpha1/jobs/%s", id), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobBoard) CreateJob(ctx context.Context, form api.JobCreate) (*api.Job, error) {
	var job api.Job
	if err := c.send(ctx, http.MethodPost, "/api/v1alpha1/jobs", form, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobBoard) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) (*api.Job, error) {
	var job api.Job
	path := fmt.Sprintf("/api/v1alpha1/jobs/%s/status", id)
	if err := c.send(ctx, http.MethodPut, path, api.JobStatusUpdate{Status: status}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobBoard) UpdateJobPayment(ctx context.Context, id uuid.UUID, form api.JobPaymentUpdate) (*api.Job, error) {
	var job api.Job
	path := fmt.Sprintf("/api/v1alpha1/jobs/%s/payment", id)
	if err := c.send(ctx, http.MethodPut, path, form, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobBoard) ArchiveJob(ctx context.Context, id uuid.UUID) (*api.Job, error) {
	var job api.Job
	path := fmt.Sprintf("/api/v1alpha1/jobs/%s/archive", id)
	if err := c.send(ctx, http.MethodPost, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobBoard) RestoreJob(ctx context.Context, id uuid.UUID) (*api.Job, error) {
	var job api.Job
	path := fmt.Sprintf("/api/v1alpha1/jobs/%s/restore", id)
	if err := c.send(ctx, http.MethodPost, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobBoard) ListStatuses(ctx context.Context) (api.StatusInfoList, error) {
	var statuses api.StatusInfoList
	if err := c.get(ctx, "/api/v1alpha1/statuses", &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *JobBoard) ListAppointments(ctx context.Context) (api.AppointmentList, error) {
	var appointments api.AppointmentList
	if err := c.get(ctx, "/api/v1alpha1/appointments", &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *JobBoard) CreateAppointment(ctx context.Context, form api.AppointmentCreate) (*api.Appointment, error) {
	var appointment api.Appointment
	if err := c.send(ctx, http.MethodPost, "/api/v1alpha1/appointments", form, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *JobBoard) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

func (c *JobBoard) send(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.Header.Set(identityHeader, c.username)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr api.Error
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s (%d)", method, path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
