package store_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/config"
	"github.com/washworks/jobboard/internal/store"
	"github.com/washworks/jobboard/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertJobStm = "INSERT INTO jobs (id, plate, status, archived, payment_completed, created_by, status_changed_at, created_at, updated_at) VALUES ('%s', '%s', '%s', %t, %t, 'tester', '%s', '%s', '%s');"
)

func insertJob(db *gorm.DB, id uuid.UUID, plate, status string, archived, paid bool, createdAt time.Time) {
	ts := createdAt.UTC().Format(time.RFC3339)
	tx := db.Exec(fmt.Sprintf(insertJobStm, id, plate, status, archived, paid, ts, ts, ts))
	Expect(tx.Error).To(BeNil())
}

var _ = Describe("job store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

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
		It("creates a job in the initial status with defaults", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())
			Expect(job.ID).NotTo(Equal(uuid.UUID{}))
			Expect(job.Status).To(Equal("waiting"))
			Expect(job.Archived).To(BeFalse())
			Expect(job.PaymentCompleted).To(BeFalse())
			Expect(job.CreatedBy).To(Equal("worker"))
			Expect(job.StatusChangedAt).NotTo(BeZero())
		})

		It("rejects a second active job for the same plate", func() {
			_, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			_, err = s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})

		It("allows the same plate again once the previous job is archived", func() {
			first, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			_, err = s.Job().SetArchived(context.TODO(), first.ID, true)
			Expect(err).To(BeNil())

			second, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())
			Expect(second.ID).NotTo(Equal(first.ID))
		})
	})

	Context("get", func() {
		It("returns ErrRecordNotFound for an unknown id", func() {
			_, err := s.Job().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("returns archived jobs too", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())
			_, err = s.Job().SetArchived(context.TODO(), job.ID, true)
			Expect(err).To(BeNil())

			got, err := s.Job().Get(context.TODO(), job.ID)
			Expect(err).To(BeNil())
			Expect(got.Archived).To(BeTrue())
		})
	})

	Context("update status", func() {
		It("moves the job and refreshes provenance", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			updated, from, err := s.Job().UpdateStatus(context.TODO(), job.ID, "washing", "alice")
			Expect(err).To(BeNil())
			Expect(updated.Status).To(Equal("washing"))
			Expect(from).To(Equal("waiting"))
			Expect(updated.StatusChangedBy).NotTo(BeNil())
			Expect(*updated.StatusChangedBy).To(Equal("alice"))
			Expect(updated.StatusChangedAt).To(BeTemporally(">=", job.CreatedAt))

			got, err := s.Job().Get(context.TODO(), job.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal("washing"))
		})

		It("allows moving backwards", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			_, _, err = s.Job().UpdateStatus(context.TODO(), job.ID, "payment_pending", "alice")
			Expect(err).To(BeNil())

			updated, from, err := s.Job().UpdateStatus(context.TODO(), job.ID, "detailing", "bob")
			Expect(err).To(BeNil())
			Expect(updated.Status).To(Equal("detailing"))
			Expect(from).To(Equal("payment_pending"))
		})

		It("fails with ErrRecordNotFound for an unknown id and leaves the store unchanged", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			_, _, err = s.Job().UpdateStatus(context.TODO(), uuid.New(), "washing", "alice")
			Expect(err).To(MatchError(store.ErrRecordNotFound))

			got, err := s.Job().Get(context.TODO(), job.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal("waiting"))
		})

		It("rejects a status outside the catalog", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			_, from, err := s.Job().UpdateStatus(context.TODO(), job.ID, "bogus", "alice")
			Expect(err).To(MatchError(store.ErrInvalidStatus))
			// the rejected move still reports the status it was checked against
			Expect(from).To(Equal("waiting"))
		})

		It("treats a same-status move as a silent success", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			updated, from, err := s.Job().UpdateStatus(context.TODO(), job.ID, "waiting", "alice")
			Expect(err).To(BeNil())
			Expect(updated.Status).To(Equal("waiting"))
			Expect(from).To(Equal("waiting"))
			// provenance untouched
			Expect(updated.StatusChangedBy).To(BeNil())
		})

		It("serializes concurrent updates on the same id", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			var wg sync.WaitGroup
			for _, target := range []string{"washing", "detailing"} {
				wg.Add(1)
				go func(target string) {
					defer wg.Done()
					defer GinkgoRecover()
					_, _, err := s.Job().UpdateStatus(context.TODO(), job.ID, target, "racer")
					Expect(err).To(BeNil())
				}(target)
			}
			wg.Wait()

			got, err := s.Job().Get(context.TODO(), job.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(BeElementOf("washing", "detailing"))
		})
	})

	Context("update payment", func() {
		It("annotates payment without touching the status", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{Plate: "ABC123", CreatedBy: "worker"})
			Expect(err).To(BeNil())

			completed := true
			method := "card"
			amount := 42.0
			updated, err := s.Job().UpdatePayment(context.TODO(), job.ID, &completed, &method, nil, &amount)
			Expect(err).To(BeNil())
			Expect(updated.PaymentCompleted).To(BeTrue())
			Expect(*updated.PaymentMethod).To(Equal("card"))
			Expect(*updated.PaymentAmount).To(Equal(42.0))
			Expect(updated.Status).To(Equal("waiting"))
		})

		It("fails with ErrRecordNotFound for an unknown id", func() {
			completed := true
			_, err := s.Job().UpdatePayment(context.TODO(), uuid.New(), &completed, nil, nil, nil)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("filters by status and archival state", func() {
			insertJob(gormdb, uuid.New(), "AAA111", "waiting", false, false, time.Now())
			insertJob(gormdb, uuid.New(), "BBB222", "waiting", true, false, time.Now())
			insertJob(gormdb, uuid.New(), "CCC333", "washing", false, false, time.Now())

			jobs, err := s.Job().List(context.TODO(),
				store.NewJobQueryFilter().ByStatus("waiting").ByArchived(false),
				store.NewJobQueryOptions().WithSortOrder(store.SortByCreatedTimeDesc))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("AAA111"))
		})

		It("lists archived jobs when asked", func() {
			insertJob(gormdb, uuid.New(), "AAA111", "completed", true, true, time.Now())

			jobs, err := s.Job().List(context.TODO(), store.NewJobQueryFilter().ByArchived(true), nil)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
		})

		It("orders by creation time descending", func() {
			older := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
			newer := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
			insertJob(gormdb, uuid.New(), "OLD111", "waiting", false, false, older)
			insertJob(gormdb, uuid.New(), "NEW222", "waiting", false, false, newer)

			jobs, err := s.Job().List(context.TODO(),
				store.NewJobQueryFilter().ByArchived(false),
				store.NewJobQueryOptions().WithSortOrder(store.SortByCreatedTimeDesc))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))
			Expect(jobs[0].Plate).To(Equal("NEW222"))
			Expect(jobs[1].Plate).To(Equal("OLD111"))
		})

		It("filters by creation interval, half-open", func() {
			from := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
			to := from.AddDate(0, 0, 1)
			insertJob(gormdb, uuid.New(), "IN0001", "waiting", false, false, from)
			insertJob(gormdb, uuid.New(), "OUT001", "waiting", false, false, to)

			jobs, err := s.Job().List(context.TODO(),
				store.NewJobQueryFilter().ByCreatedBetween(from, to), nil)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Plate).To(Equal("IN0001"))
		})

		It("returns an empty list when nothing matches", func() {
			jobs, err := s.Job().List(context.TODO(), store.NewJobQueryFilter().ByStatus("completed"), nil)
			Expect(err).To(BeNil())
			Expect(jobs).To(BeEmpty())
		})
	})
})
