package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/washworks/jobboard/internal/lifecycle"
)

type MoveOptions struct {
	GlobalOptions
}

func DefaultMoveOptions() *MoveOptions {
	return &MoveOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdMove() *cobra.Command {
	o := DefaultMoveOptions()
	cmd := &cobra.Command{
		Use:   "move JOB_ID STATUS",
		Short: "Move a job to another status column.",
		Args:  cobra.ExactArgs(2),
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

func (o *MoveOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if _, err := uuid.Parse(args[0]); err != nil {
		return fmt.Errorf("invalid job id: %s", args[0])
	}
	if _, ok := lifecycle.Parse(args[1]); !ok {
		return fmt.Errorf("unknown status %q, valid statuses are: %s", args[1], strings.Join(lifecycle.StatusNames(), ", "))
	}

	return nil
}

func (o *MoveOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	id, _ := uuid.Parse(args[0])
	job, err := c.UpdateJobStatus(ctx, id, args[1])
	if err != nil {
		return fmt.Errorf("moving job: %w", err)
	}

	fmt.Printf("job/%s moved to %s\n", job.Id, lifecycle.Label(lifecycle.Status(job.Status)))
	return nil
}
