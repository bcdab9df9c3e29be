package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := sendCommand("stop"); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "pounce stopped")
		return nil
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the overlay (e.g. while screen sharing)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := sendCommand("hide")
		return err
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a previously hidden overlay",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := sendCommand("show")
		return err
	},
}

func init() {
	rootCmd.AddCommand(stopCmd, hideCmd, showCmd)
}
