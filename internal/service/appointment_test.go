package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washworks/jobboard/internal/config"
	"github.com/washworks/jobboard/internal/service"
	"github.com/washworks/jobboard/internal/service/mappers"
	"github.com/washworks/jobboard/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("appointment service", Ordered, func() {
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
		It("creates a pending appointment with a normalized plate", func() {
			srv := service.NewAppointmentService(s)

			plate := " abc123 "
			appointment, err := srv.CreateAppointment(context.TODO(), mappers.AppointmentCreateForm{
				CustomerName:  "John Smith",
				PhoneNumber:   "555-0101",
				Plate:         &plate,
				ScheduledDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
				ScheduledTime: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
				CreatedBy:     "reception",
			})
			Expect(err).To(BeNil())
			Expect(appointment.Status).To(Equal("pending"))
			Expect(*appointment.Plate).To(Equal("ABC123"))
		})
	})

	Context("get", func() {
		It("returns a typed error for an unknown id", func() {
			srv := service.NewAppointmentService(s)

			_, err := srv.GetAppointment(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("list", func() {
		It("restricts to a scheduled day as a half-open interval", func() {
			srv := service.NewAppointmentService(s)

			day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
			for i, name := range []string{"John Smith", "Jane Doe"} {
				_, err := srv.CreateAppointment(context.TODO(), mappers.AppointmentCreateForm{
					CustomerName:  name,
					PhoneNumber:   "555-0101",
					ScheduledDate: day.AddDate(0, 0, i),
					ScheduledTime: day.AddDate(0, 0, i).Add(10 * time.Hour),
					CreatedBy:     "reception",
				})
				Expect(err).To(BeNil())
			}

			appointments, err := srv.ListAppointments(context.TODO(), service.NewAppointmentFilter(service.WithScheduledDay(day.Add(9*time.Hour))))
			Expect(err).To(BeNil())
			Expect(appointments).To(HaveLen(1))
			Expect(appointments[0].CustomerName).To(Equal("John Smith"))
		})
	})
})
