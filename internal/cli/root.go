package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbaines/pounce/internal/config"
	"github.com/kbaines/pounce/internal/ipc"
	"github.com/kbaines/pounce/internal/perr"
)

// Build metadata, set via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// LaunchFunc is set by main to run the daemon with the platform bridges
// compiled into the binary. It blocks until shutdown.
var LaunchFunc func(configPath string) error

var (
	configPath string
	socketPath string
)

var rootCmd = &cobra.Command{
	Use:   "pounce",
	Short: "Keyboard-driven pointer control",
	Long: `Pounce overlays clickable elements with short labels so the pointer
can be driven entirely from the keyboard. The daemon watches global
hotkeys; subcommands control a running daemon over its socket.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pounce version %s\nGit commit: %s\nBuild date: %s\n",
		Version, GitCommit, BuildDate,
	))
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "path to the daemon control socket")
}

// resolveConfigPath returns the --config value or the per-user default.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

// controlSocket resolves the daemon socket: the --socket flag wins, then
// the configured path, then the system default.
func controlSocket() string {
	if socketPath != "" {
		return socketPath
	}
	if path, err := resolveConfigPath(); err == nil {
		if cfg, err := config.Load(path); err == nil && cfg.IPC.SocketPath != "" {
			return cfg.IPC.SocketPath
		}
	}
	return ipc.DefaultSocketPath()
}

// sendCommand drives the running daemon and reports failures as plain
// errors suitable for the terminal.
func sendCommand(action string, args ...string) (ipc.Response, error) {
	client := ipc.NewClient(controlSocket())
	resp, err := client.Do(action, args...)
	if err != nil {
		if perr.HasCode(err, perr.CodeIPCFailed) {
			return resp, errors.New("pounce is not running; start it with 'pounce start'")
		}
		return resp, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("%s: %s", resp.Code, resp.Message)
	}
	return resp, nil
}
