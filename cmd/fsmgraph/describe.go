package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/fsmgraph/internal/cli"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [file...]",
		Short: "Summarize the states and transitions of each machine",
		Long:  `Prints a markdown summary per machine, styled when stdout is a terminal. Use --json for the parsed model.`,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, args)
			if err != nil {
				return err
			}
			opts.JSON, _ = cmd.Flags().GetBool("json")
			return cli.Describe(opts)
		},
	}
	cmd.Flags().Bool("json", false, "Print the parsed machines as JSON")
	return cmd
}
