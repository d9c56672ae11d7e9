package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the resolved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app, r *reporter) error {
			r.renderSettings(a.settings, a.settingsService.ConfigPath())
			return nil
		})
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to the config file",
	Long: `Writes every default setting, including the built-in canton aliases,
to the config file. Keys already present are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app, r *reporter) error {
			if err := a.settingsService.SaveDefaults(); err != nil {
				return err
			}
			r.line("Wrote %s", a.settingsService.ConfigPath())
			return nil
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}
