package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbaines/pounce/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon state",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := sendCommand("status")
		if err != nil {
			return err
		}
		status, err := decodeStatus(resp)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Mode:    %s\n", status.Mode)
		fmt.Fprintf(out, "Version: %s\n", status.Version)
		fmt.Fprintf(out, "Config:  %s\n", status.ConfigPath)
		fmt.Fprintf(out, "PID:     %d\n", status.PID)
		return nil
	},
}

// decodeStatus recovers the typed payload from the generic JSON response.
func decodeStatus(resp ipc.Response) (ipc.StatusData, error) {
	var status ipc.StatusData
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return status, err
	}
	if err := json.Unmarshal(raw, &status); err != nil {
		return status, err
	}
	return status, nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
