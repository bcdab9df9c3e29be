package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kbaines/pounce/internal/ipc"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the daemon",
	Long: `Start runs the pounce daemon in the foreground: it registers the
configured global hotkeys, opens the control socket, and blocks until
stopped with a signal or 'pounce stop'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if LaunchFunc == nil {
			return errors.New("daemon launch is not supported in this build")
		}
		if _, err := ipc.NewClient(controlSocket()).Do("status"); err == nil {
			return errors.New("pounce is already running")
		}
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		return LaunchFunc(path)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
