package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	api "github.com/washworks/jobboard/api/v1alpha1"
)

var legalPaymentMethods = []string{
	string(api.PaymentMethodCash),
	string(api.PaymentMethodCard),
	string(api.PaymentMethodOther),
}

type PayOptions struct {
	GlobalOptions

	Method string
	Amount float64
	Note   string
}

func DefaultPayOptions() *PayOptions {
	return &PayOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Method:        string(api.PaymentMethodCash),
	}
}

func NewCmdPay() *cobra.Command {
	o := DefaultPayOptions()
	cmd := &cobra.Command{
		Use:   "pay JOB_ID",
		Short: "Mark a job's payment as completed.",
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

func (o *PayOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Method, "method", o.Method, "Payment method, one of: cash, card, other")
	fs.Float64Var(&o.Amount, "amount", o.Amount, "Amount paid")
	fs.StringVar(&o.Note, "note", o.Note, "Payment note")
}

func (o *PayOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if _, err := uuid.Parse(args[0]); err != nil {
		return fmt.Errorf("invalid job id: %s", args[0])
	}
	if !funk.Contains(legalPaymentMethods, o.Method) {
		return fmt.Errorf("payment method must be one of: cash, card, other")
	}
	if o.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	return nil
}

func (o *PayOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	id, _ := uuid.Parse(args[0])
	completed := true
	method := api.PaymentMethod(o.Method)
	form := api.JobPaymentUpdate{
		Completed: &completed,
		Method:    &method,
		Note:      optional(o.Note),
	}
	if o.Amount > 0 {
		form.Amount = &o.Amount
	}

	job, err := c.UpdateJobPayment(ctx, id, form)
	if err != nil {
		return fmt.Errorf("recording payment: %w", err)
	}

	fmt.Printf("job/%s payment recorded\n", job.Id)
	return nil
}
