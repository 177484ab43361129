package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/fsmgraph/internal/cli"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check state machine blocks against the grammar",
		Long:  `Parses every block without rendering it and reports grammar errors with their position.`,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, args)
			if err != nil {
				return err
			}
			return cli.Validate(opts)
		},
	}
}
