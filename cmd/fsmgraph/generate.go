package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/cli"
	"github.com/aretw0/fsmgraph/internal/presentation/tui"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [file...]",
		Short: "Write one diagram per state machine block",
		Long: `Extracts every top-level state_machine! block of the given files and writes
<out-dir>/<Name>.<ext> for each one. A block that fails to parse is reported and skipped;
the command then exits with status 1.`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerate,
	}
	addGenerateFlags(cmd)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out-dir", "o", ".", "Directory for generated diagrams")
	cmd.Flags().StringP("format", "f", "dot", "Output format: dot, mermaid, svg or png")
	cmd.Flags().Bool("no-legend", false, "Omit the legend from DOT output")
	cmd.Flags().Int("grid-threshold", 3, "Longest label list kept on one line")
	cmd.Flags().BoolP("watch", "w", false, "Regenerate diagrams when the files change")
	cmd.Flags().Bool("stdout", false, "Print diagrams instead of writing files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args)
	if err != nil {
		return err
	}
	opts.Stdout, _ = cmd.Flags().GetBool("stdout")

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		tui.PrintBanner(cmd.OutOrStdout(), fsmgraph.Version)
		return cli.Watch(sigCtx, opts)
	}
	return cli.Generate(cmd.Context(), opts)
}
