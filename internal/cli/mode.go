package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// modeCommand builds a subcommand that asks the daemon to toggle a mode.
func modeCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sendCommand(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s requested\n", name)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(
		modeCommand("hints", "Toggle hint mode"),
		modeCommand("grid", "Toggle grid mode"),
		modeCommand("scroll", "Toggle scroll mode"),
		modeCommand("idle", "Deactivate the current mode"),
	)
}
