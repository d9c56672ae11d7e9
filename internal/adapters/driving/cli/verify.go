package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Reconcile the clean file against the raw extracts",
	Long: `Recounts the valid rows of every table found in the raw extracts and
compares the total with the clean file. A discrepancy is reported, never
treated as a failure.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, r *reporter) error {
			rep, err := a.verifier.Verify(ctx)
			if err != nil {
				return err
			}
			r.renderVerification(rep)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
