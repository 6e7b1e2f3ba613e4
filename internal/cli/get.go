package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	api "github.com/washworks/jobboard/api/v1alpha1"
	"sigs.k8s.io/yaml"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

type GetOptions struct {
	GlobalOptions

	Output string
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many resources.",
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

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	_, _, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}

	return nil
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	var resource any
	switch {
	case kind == JobKind && id != nil:
		resource, err = c.GetJob(ctx, *id)
	case kind == JobKind && id == nil:
		resource, err = c.ListJobs(ctx)
	case kind == AppointmentKind && id == nil:
		resource, err = c.ListAppointments(ctx)
	case kind == StatusKind && id == nil:
		resource, err = c.ListStatuses(ctx)
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
	if err != nil {
		if id != nil {
			return fmt.Errorf("reading %s/%s: %w", kind, id, err)
		}
		return fmt.Errorf("listing %s: %w", plural(kind), err)
	}

	return printResource(resource, o.Output)
}

func printResource(resource any, output string) error {
	switch output {
	case jsonFormat:
		marshalled, err := json.Marshal(resource)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(resource)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	default:
		return printTable(resource)
	}
}

func printTable(resource any) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	switch r := resource.(type) {
	case *api.Job:
		printJobsTable(w, *r)
	case api.JobList:
		printJobsTable(w, r...)
	case api.AppointmentList:
		printAppointmentsTable(w, r...)
	case api.StatusInfoList:
		printStatusesTable(w, r...)
	default:
		return fmt.Errorf("unknown resource type %T", resource)
	}
	w.Flush()
	return nil
}

func printJobsTable(w *tabwriter.Writer, jobs ...api.Job) {
	fmt.Fprintln(w, "ID\tPLATE\tSTATUS\tPAID\tCREATED AT")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", j.Id, j.Plate, j.Status, j.PaymentCompleted, j.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printAppointmentsTable(w *tabwriter.Writer, appointments ...api.Appointment) {
	fmt.Fprintln(w, "ID\tCUSTOMER\tPHONE\tSCHEDULED\tSTATUS")
	for _, a := range appointments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Id, a.CustomerName, a.PhoneNumber, a.ScheduledTime.Format("2006-01-02 15:04"), a.Status)
	}
}

func printStatusesTable(w *tabwriter.Writer, statuses ...api.StatusInfo) {
	fmt.Fprintln(w, "STATUS\tLABEL\tDESCRIPTION")
	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Status, s.Label, s.Description)
	}
}
