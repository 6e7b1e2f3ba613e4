package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/washworks/jobboard/internal/board"
)

type BoardOptions struct {
	GlobalOptions

	Watch   bool
	Refresh time.Duration
}

func DefaultBoardOptions() *BoardOptions {
	return &BoardOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Refresh:       10 * time.Second,
	}
}

func NewCmdBoard() *cobra.Command {
	o := DefaultBoardOptions()
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the wash pipeline as a column board.",
		Args:  cobra.NoArgs,
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

func (o *BoardOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.BoolVarP(&o.Watch, "watch", "w", o.Watch, "Keep refreshing the board until interrupted")
	fs.DurationVar(&o.Refresh, "refresh", o.Refresh, "Refresh interval in watch mode")
}

func (o *BoardOptions) Run(ctx context.Context, args []string) error {
	engine := board.NewEngine(o.Client(), board.WithRefreshInterval(o.Refresh))
	defer engine.Close()

	if err := engine.Load(ctx); err != nil {
		return err
	}
	printBoard(engine.Snapshot())

	if !o.Watch {
		return nil
	}

	go engine.Run(ctx)

	ticker := time.NewTicker(o.Refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			printBoard(engine.Snapshot())
		}
	}
}

func printBoard(columns []board.Column) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "COLUMN\tJOBS\tPLATES")
	for _, c := range columns {
		plates := ""
		for i, j := range c.Jobs {
			if i > 0 {
				plates += ", "
			}
			plates += j.Plate
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Label, len(c.Jobs), plates)
	}
	w.Flush()
	fmt.Println()
}
