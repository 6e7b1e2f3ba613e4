package mappers

import (
	api "github.com/washworks/jobboard/api/v1alpha1"
	"github.com/washworks/jobboard/internal/lifecycle"
	"github.com/washworks/jobboard/internal/store/model"
)

func CatalogToApi(entries []lifecycle.CatalogEntry) api.StatusInfoList {
	list := make(api.StatusInfoList, 0, len(entries))
	for _, e := range entries {
		list = append(list, api.StatusInfo{
			Status:      string(e.Status),
			Label:       e.Label,
			Description: e.Description,
		})
	}
	return list
}

func JobToApi(j model.Job) api.Job {
	job := api.Job{
		Id:               j.ID,
		Plate:            j.Plate,
		Brand:            j.Brand,
		Model:            j.Model,
		Color:            j.Color,
		Notes:            j.Notes,
		Status:           j.Status,
		Archived:         j.Archived,
		PaymentCompleted: j.PaymentCompleted,
		PaymentAmount:    j.PaymentAmount,
		PaymentNote:      j.PaymentNote,
		CreatedBy:        j.CreatedBy,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
		StatusChangedBy:  j.StatusChangedBy,
		StatusChangedAt:  j.StatusChangedAt,
	}

	if j.PaymentMethod != nil {
		method := api.StringToPaymentMethod(*j.PaymentMethod)
		job.PaymentMethod = &method
	}

	return job
}

func JobListToApi(jobs ...model.JobList) api.JobList {
	jobList := []api.Job{}
	for _, list := range jobs {
		for _, j := range list {
			jobList = append(jobList, JobToApi(j))
		}
	}
	return jobList
}

func AppointmentToApi(a model.Appointment) api.Appointment {
	return api.Appointment{
		Id:            a.ID,
		CustomerName:  a.CustomerName,
		PhoneNumber:   a.PhoneNumber,
		Email:         a.Email,
		Plate:         a.Plate,
		Brand:         a.Brand,
		Model:         a.Model,
		Color:         a.Color,
		ServiceType:   a.ServiceType,
		ScheduledDate: a.ScheduledDate,
		ScheduledTime: a.ScheduledTime,
		Notes:         a.Notes,
		Status:        a.Status,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func AppointmentListToApi(appointments ...model.AppointmentList) api.AppointmentList {
	appointmentList := []api.Appointment{}
	for _, list := range appointments {
		for _, a := range list {
			appointmentList = append(appointmentList, AppointmentToApi(a))
		}
	}
	return appointmentList
}
