package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/homicide-etl/internal/core/ports/driving"
)

var runVerify bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Consolidate and normalise the extracts",
	Long: `Selects the historical extract and the latest periodic extract, stacks
them into the consolidated file, then normalises it into the clean file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, r *reporter) error {
			res, err := a.pipeline.Run(ctx)
			if res != nil {
				r.renderRun(res)
			}
			if err != nil {
				return err
			}
			if !runVerify {
				return nil
			}
			rep, err := a.verifier.Verify(ctx)
			if err != nil {
				return err
			}
			r.renderVerification(rep)
			return nil
		})
	},
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Merge the extracts without normalising",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPipelineStep(cmd, driving.Pipeline.Consolidate)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalise an existing consolidated file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPipelineStep(cmd, driving.Pipeline.Clean)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runVerify, "verify", false, "verify the output after the run")
	rootCmd.AddCommand(runCmd, consolidateCmd, cleanCmd)
}

func runPipelineStep(
	cmd *cobra.Command,
	step func(driving.Pipeline, context.Context) (*driving.RunResult, error),
) error {
	return withApp(cmd, func(ctx context.Context, a *app, r *reporter) error {
		res, err := step(a.pipeline, ctx)
		if res != nil {
			r.renderRun(res)
		}
		return err
	})
}

// withApp wires the services, runs fn and releases them.
func withApp(cmd *cobra.Command, fn func(context.Context, *app, *reporter) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, a, newReporter(cmd.OutOrStdout()))
}
