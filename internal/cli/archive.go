package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type ArchiveOptions struct {
	GlobalOptions

	restore bool
}

func NewCmdArchive() *cobra.Command {
	o := &ArchiveOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:   "archive JOB_ID",
		Short: "Archive a job, freeing its plate for a new visit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

func NewCmdRestore() *cobra.Command {
	o := &ArchiveOptions{GlobalOptions: DefaultGlobalOptions(), restore: true}
	cmd := &cobra.Command{
		Use:   "restore JOB_ID",
		Short: "Bring an archived job back to the board.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

func (o *ArchiveOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if _, err := uuid.Parse(args[0]); err != nil {
		return fmt.Errorf("invalid job id: %s", args[0])
	}

	return nil
}

func (o *ArchiveOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()
	id, _ := uuid.Parse(args[0])

	if o.restore {
		job, err := c.RestoreJob(ctx, id)
		if err != nil {
			return fmt.Errorf("restoring job: %w", err)
		}
		fmt.Printf("job/%s restored\n", job.Id)
		return nil
	}

	job, err := c.ArchiveJob(ctx, id)
	if err != nil {
		return fmt.Errorf("archiving job: %w", err)
	}
	fmt.Printf("job/%s archived\n", job.Id)
	return nil
}
