package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/washworks/jobboard/internal/cli"
)

func main() {
	command := NewJobBoardCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewJobBoardCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobboard [flags] [options]",
		Short: "jobboard controls the car wash job board service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdCreate())
	cmd.AddCommand(cli.NewCmdMove())
	cmd.AddCommand(cli.NewCmdPay())
	cmd.AddCommand(cli.NewCmdArchive())
	cmd.AddCommand(cli.NewCmdRestore())
	cmd.AddCommand(cli.NewCmdBoard())

	return cmd
}
