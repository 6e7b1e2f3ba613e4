package store_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/config"
	"github.com/washworks/jobboard/internal/store"
	"github.com/washworks/jobboard/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("appointment store", Ordered, func() {
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
		gormdb.Exec("DELETE FROM appointments;")
	})

	Context("create", func() {
		It("creates an appointment in pending status", func() {
			appt, err := s.Appointment().Create(context.TODO(), model.Appointment{
				CustomerName:  "John Smith",
				PhoneNumber:   "+1234567890",
				ScheduledDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				ScheduledTime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
				CreatedBy:     "worker",
			})
			Expect(err).To(BeNil())
			Expect(appt.ID).NotTo(Equal(uuid.UUID{}))
			Expect(appt.Status).To(Equal(model.AppointmentStatusPending))
		})
	})

	Context("list", func() {
		It("filters a single day as a half-open interval and orders by scheduled time", func() {
			day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

			mk := func(name string, at time.Time) {
				_, err := s.Appointment().Create(context.TODO(), model.Appointment{
					CustomerName:  name,
					PhoneNumber:   "+1000000000",
					ScheduledDate: at,
					ScheduledTime: at,
					CreatedBy:     "worker",
				})
				Expect(err).To(BeNil())
			}

			mk("late", day.Add(15*time.Hour))
			mk("early", day.Add(8*time.Hour))
			mk("next day", day.AddDate(0, 0, 1))

			appts, err := s.Appointment().List(context.TODO(),
				store.NewAppointmentQueryFilter().ByScheduledBetween(day, day.AddDate(0, 0, 1)),
				store.NewAppointmentQueryOptions().WithSortOrder(store.SortByScheduledTime))
			Expect(err).To(BeNil())
			Expect(appts).To(HaveLen(2))
			Expect(appts[0].CustomerName).To(Equal("early"))
			Expect(appts[1].CustomerName).To(Equal("late"))
		})

		It("returns an empty list when nothing matches", func() {
			appts, err := s.Appointment().List(context.TODO(),
				store.NewAppointmentQueryFilter().ByStatus("confirmed"), nil)
			Expect(err).To(BeNil())
			Expect(appts).To(BeEmpty())
		})
	})
})
