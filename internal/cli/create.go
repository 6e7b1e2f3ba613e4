package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	api "github.com/washworks/jobboard/api/v1alpha1"
)

type CreateOptions struct {
	GlobalOptions

	Plate string
	Brand string
	Model string
	Color string
	Notes string

	Customer    string
	Phone       string
	Email       string
	ServiceType string
	Scheduled   string
}

func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdCreate() *cobra.Command {
	o := DefaultCreateOptions()
	cmd := &cobra.Command{
		Use:   "create TYPE",
		Short: "Create a job or an appointment.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *CreateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Plate, "plate", o.Plate, "License plate of the vehicle")
	fs.StringVar(&o.Brand, "brand", o.Brand, "Vehicle brand")
	fs.StringVar(&o.Model, "model", o.Model, "Vehicle model")
	fs.StringVar(&o.Color, "color", o.Color, "Vehicle color")
	fs.StringVar(&o.Notes, "notes", o.Notes, "Free form notes")

	fs.StringVar(&o.Customer, "customer", o.Customer, "Customer name (appointments)")
	fs.StringVar(&o.Phone, "phone", o.Phone, "Customer phone number (appointments)")
	fs.StringVar(&o.Email, "email", o.Email, "Customer email (appointments)")
	fs.StringVar(&o.ServiceType, "service-type", o.ServiceType, "Requested service (appointments)")
	fs.StringVar(&o.Scheduled, "scheduled", o.Scheduled, "Scheduled slot, formatted as '2006-01-02 15:04' (appointments)")
}

func (o *CreateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	kind := singular(args[0])
	switch kind {
	case JobKind:
		if o.Plate == "" {
			return fmt.Errorf("--plate is required to create a job")
		}
	case AppointmentKind:
		if o.Customer == "" || o.Phone == "" || o.Scheduled == "" {
			return fmt.Errorf("--customer, --phone and --scheduled are required to create an appointment")
		}
		if _, err := time.Parse("2006-01-02 15:04", o.Scheduled); err != nil {
			return fmt.Errorf("invalid --scheduled value %q, expected '2006-01-02 15:04'", o.Scheduled)
		}
	default:
		return fmt.Errorf("invalid resource kind: %s", args[0])
	}

	return nil
}

func (o *CreateOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	switch singular(args[0]) {
	case JobKind:
		form := api.JobCreate{Plate: o.Plate}
		form.Brand = optional(o.Brand)
		form.Model = optional(o.Model)
		form.Color = optional(o.Color)
		form.Notes = optional(o.Notes)

		job, err := c.CreateJob(ctx, form)
		if err != nil {
			return fmt.Errorf("creating job: %w", err)
		}
		fmt.Printf("job/%s created\n", job.Id)
	case AppointmentKind:
		slot, _ := time.Parse("2006-01-02 15:04", o.Scheduled)
		form := api.AppointmentCreate{
			CustomerName:  o.Customer,
			PhoneNumber:   o.Phone,
			ScheduledDate: slot.Truncate(24 * time.Hour),
			ScheduledTime: slot,
		}
		form.Email = optional(o.Email)
		form.Plate = optional(o.Plate)
		form.Brand = optional(o.Brand)
		form.Model = optional(o.Model)
		form.Color = optional(o.Color)
		form.ServiceType = optional(o.ServiceType)
		form.Notes = optional(o.Notes)

		appointment, err := c.CreateAppointment(ctx, form)
		if err != nil {
			return fmt.Errorf("creating appointment: %w", err)
		}
		fmt.Printf("appointment/%s created\n", appointment.Id)
	}

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
