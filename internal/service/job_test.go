package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/config"
	"github.com/washworks/jobboard/internal/events"
	"github.com/washworks/jobboard/internal/service"
	"github.com/washworks/jobboard/internal/service/mappers"
	"github.com/washworks/jobboard/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertJobStm = "INSERT INTO jobs (id, plate, status, archived, payment_completed, created_by, status_changed_at, created_at, updated_at) VALUES ('%s', '%s', '%s', %t, %t, 'tester', '%s', '%s', '%s');"
)

var _ = Describe("job service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	insertJob := func(id uuid.UUID, plate, status string, archived, paid bool, createdAt time.Time) {
		ts := createdAt.UTC().Format(time.RFC3339)
		tx := gormdb.Exec(fmt.Sprintf(insertJobStm, id, plate, status, archived, paid, ts, ts, ts))
		Expect(tx.Error).To(BeNil())
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration(context.TODO())).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM jobs;")
	})

	Context("create", func() {
		It("normalizes the plate at intake", func() {
			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			job, err := srv.CreateJob(context.TODO(), mappers.JobCreateForm{Plate: "  abc123 ", CreatedBy: "worker"})
			Expect(err).To(BeNil())
			Expect(job.Plate).To(Equal("ABC123"))
			Expect(job.Status).To(Equal("waiting"))
		})

		It("emits a job created event", func() {
			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			_, err := srv.CreateJob(context.TODO(), mappers.JobCreateForm{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			Eventually(eventWriter.Events).Should(HaveLen(1))
			Expect(eventWriter.Events()[0].Type()).To(Equal(events.JobCreatedMessageKind))
		})

		It("rejects a second active job for the same plate even with different casing", func() {
			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			_, err := srv.CreateJob(context.TODO(), mappers.JobCreateForm{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			_, err = srv.CreateJob(context.TODO(), mappers.JobCreateForm{Plate: "abc123", CreatedBy: "worker"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrDuplicateActiveJob{}))
		})
	})

	Context("get", func() {
		It("returns a typed error for an unknown id", func() {
			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			_, err := srv.GetJob(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("update status", func() {
		It("moves the job and emits a status changed event", func() {
			id := uuid.New()
			insertJob(id, "ABC123", "waiting", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			job, err := srv.UpdateJobStatus(context.TODO(), id, "washing", "worker")
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("washing"))

			Eventually(eventWriter.Events).Should(HaveLen(1))
			event := eventWriter.Events()[0]
			Expect(event.Type()).To(Equal(events.StatusChangedMessageKind))

			var payload events.StatusChangedEvent
			Expect(json.Unmarshal(event.Data(), &payload)).To(Succeed())
			Expect(payload.From).To(Equal("waiting"))
			Expect(payload.To).To(Equal("washing"))
			Expect(payload.ChangedBy).To(Equal("worker"))
		})

		It("accepts a backward move", func() {
			id := uuid.New()
			insertJob(id, "ABC123", "detailing", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			job, err := srv.UpdateJobStatus(context.TODO(), id, "washing", "worker")
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("washing"))
		})

		It("succeeds silently for the current status and emits nothing", func() {
			id := uuid.New()
			insertJob(id, "ABC123", "washing", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			job, err := srv.UpdateJobStatus(context.TODO(), id, "washing", "worker")
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("washing"))

			Consistently(eventWriter.Events).Should(BeEmpty())
		})

		It("rejects an unknown status and names the valid set", func() {
			id := uuid.New()
			insertJob(id, "ABC123", "waiting", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			_, err := srv.UpdateJobStatus(context.TODO(), id, "vacuuming", "worker")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidStatus{}))
			Expect(err.Error()).To(ContainSubstring("waiting"))
			Expect(err.Error()).To(ContainSubstring("completed"))
		})

		It("returns a typed error for an unknown id", func() {
			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			_, err := srv.UpdateJobStatus(context.TODO(), uuid.New(), "washing", "worker")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("payment", func() {
		It("records payment details", func() {
			id := uuid.New()
			insertJob(id, "ABC123", "ready_for_pickup", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			completed := true
			method := "cash"
			amount := 25.50
			job, err := srv.UpdateJobPayment(context.TODO(), mappers.PaymentUpdateForm{
				JobID:     id,
				Completed: &completed,
				Method:    &method,
				Amount:    &amount,
			})
			Expect(err).To(BeNil())
			Expect(job.PaymentCompleted).To(BeTrue())
			Expect(*job.PaymentMethod).To(Equal("cash"))
			Expect(*job.PaymentAmount).To(Equal(25.50))
		})
	})

	Context("list", func() {
		It("filters by status", func() {
			insertJob(uuid.New(), "ABC123", "waiting", false, false, time.Now())
			insertJob(uuid.New(), "XYZ789", "washing", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			jobs, err := srv.ListJobs(context.TODO(), service.NewJobFilter(service.WithStatus("washing")))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("XYZ789"))
		})

		It("restricts to a calendar day as a half-open interval", func() {
			day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
			insertJob(uuid.New(), "ABC123", "waiting", false, false, day.Add(10*time.Hour))
			insertJob(uuid.New(), "XYZ789", "waiting", false, false, day.AddDate(0, 0, 1))

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			jobs, err := srv.ListJobs(context.TODO(), service.NewJobFilter(service.WithDay(day.Add(15*time.Hour))))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("ABC123"))
		})

		It("leaves archived jobs out of listings by default", func() {
			archivedID := uuid.New()
			insertJob(archivedID, "OLD111", "completed", true, true, time.Now())
			insertJob(uuid.New(), "XYZ789", "waiting", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			jobs, err := srv.ListJobs(context.TODO(), service.NewJobFilter())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("XYZ789"))

			jobs, err = srv.ListJobs(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("XYZ789"))
		})

		It("lists archived jobs when asked explicitly", func() {
			insertJob(uuid.New(), "OLD111", "completed", true, true, time.Now())
			insertJob(uuid.New(), "XYZ789", "waiting", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			jobs, err := srv.ListJobs(context.TODO(), service.NewJobFilter(service.WithArchived(true)))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("OLD111"))
		})

		It("hides archived jobs when asked for active ones", func() {
			insertJob(uuid.New(), "ABC123", "completed", true, true, time.Now())
			insertJob(uuid.New(), "XYZ789", "waiting", false, false, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			jobs, err := srv.ListJobs(context.TODO(), service.NewJobFilter(service.WithArchived(false)))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("XYZ789"))
		})
	})

	Context("archive", func() {
		It("archives and restores a job", func() {
			id := uuid.New()
			insertJob(id, "ABC123", "completed", false, true, time.Now())

			eventWriter := newTestWriter()
			srv := service.NewJobService(s, events.NewEventProducer(eventWriter))

			job, err := srv.ArchiveJob(context.TODO(), id, true)
			Expect(err).To(BeNil())
			Expect(job.Archived).To(BeTrue())

			job, err = srv.ArchiveJob(context.TODO(), id, false)
			Expect(err).To(BeNil())
			Expect(job.Archived).To(BeFalse())
		})
	})
})

type testwriter struct {
	lock     sync.Mutex
	messages []cloudevents.Event
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.messages = append(t.messages, e)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	return nil
}

func (t *testwriter) Events() []cloudevents.Event {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]cloudevents.Event{}, t.messages...)
}
