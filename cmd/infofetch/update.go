package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanclaw/infofetch/internal/update"
)

var checkOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update infofetch to the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if version == "dev" {
			fmt.Fprintln(out, "Auto-update is not available for development builds.")
			return nil
		}
		fmt.Fprintln(out, "Checking for updates...")

		run := update.Apply
		if checkOnly {
			run = update.Check
		}
		res, err := run(cmd.Context(), version)
		if err != nil {
			return fmt.Errorf("update failed: %w", err)
		}
		switch {
		case res.Applied:
			fmt.Fprintf(out, "Updated to v%s. Restart infofetch to use the new version.\n", res.LatestVersion)
		case res.UpdateAvailable:
			fmt.Fprintf(out, "Update available: v%s. Run `infofetch update` to install it.\n", res.LatestVersion)
		default:
			fmt.Fprintln(out, "Already running the latest version.")
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "infofetch %s\n", version)
	},
}

func init() {
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
	rootCmd.AddCommand(updateCmd, versionCmd)
}
