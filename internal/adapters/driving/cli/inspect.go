package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var inspectFile string

var coordsCmd = &cobra.Command{
	Use:   "coords",
	Short: "Show coordinate completeness per year",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, r *reporter) error {
			stats, err := a.inspector(inspectFile).CoordinateCompleteness(ctx)
			if err != nil {
				return err
			}
			r.title("Coordinate completeness")
			r.renderCoordinates(stats)
			return nil
		})
	},
}

var cantonsCmd = &cobra.Command{
	Use:   "cantons [province]",
	Short: "List cantons or conflicting canton spellings",
	Long: `With a province, lists its distinct cantons in the clean file.
Without one, lists canton spellings that differ only by accents, case,
punctuation or spacing, as candidates for the alias table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, r *reporter) error {
			insp := a.inspector(inspectFile)
			if len(args) == 0 {
				conflicts, err := insp.AccentConflicts(ctx)
				if err != nil {
					return err
				}
				r.title("Conflicting canton spellings")
				r.renderConflicts(conflicts)
				return nil
			}

			cantons, err := insp.Cantons(ctx, args[0])
			if err != nil {
				return err
			}
			r.title("Cantons of " + strings.ToUpper(args[0]))
			r.renderCantons(cantons)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{coordsCmd, cantonsCmd} {
		c.Flags().StringVarP(&inspectFile, "file", "f", "", "normalised file to inspect (default: the clean output)")
		rootCmd.AddCommand(c)
	}
}
