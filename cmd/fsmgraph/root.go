package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/fsmgraph/internal/cli"
	"github.com/aretw0/fsmgraph/internal/config"
)

// errUsage marks errors after which the usage text is shown.
var errUsage = errors.New("at least one source file is required")

// newRootCmd builds the command tree. Running the root with files is the
// same as running generate.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsmgraph [file...]",
		Short: "fsmgraph renders state_machine! blocks as diagrams",
		Long: `fsmgraph scans source files for state_machine! blocks and writes one diagram per block,
named after the machine (<Name>.dot by default).

Running fsmgraph with files is the same as running "fsmgraph generate".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().String("config", "", "Settings file (default: "+config.DefaultFile+" when present)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().String("tag", "", "Macro name that introduces a block (default \"state_machine\")")

	addGenerateFlags(cmd)
	cmd.AddCommand(
		newGenerateCmd(),
		newValidateCmd(),
		newDescribeCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command line and exits with status 1 on any failure.
func Execute() {
	cmd, err := newRootCmd().ExecuteC()
	if err == nil {
		return
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = cmd.Usage()
	} else if !errors.Is(err, cli.ErrFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

// loadOptions resolves defaults, the settings file, FSMGRAPH_* variables and
// explicitly set flags, in that order.
func loadOptions(cmd *cobra.Command, args []string) (cli.Options, error) {
	if len(args) == 0 {
		return cli.Options{}, errUsage
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cli.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("tag") {
		cfg.Tag, _ = flags.GetString("tag")
	}
	if flags.Lookup("out-dir") != nil && flags.Changed("out-dir") {
		cfg.OutDir, _ = flags.GetString("out-dir")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("no-legend") != nil && flags.Changed("no-legend") {
		noLegend, _ := flags.GetBool("no-legend")
		cfg.Legend = !noLegend
	}
	if flags.Lookup("grid-threshold") != nil && flags.Changed("grid-threshold") {
		cfg.GridThreshold, _ = flags.GetInt("grid-threshold")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Options{}, err
	}

	return cli.Options{
		Files:  args,
		Config: cfg,
		Out:    cmd.OutOrStdout(),
	}, nil
}
