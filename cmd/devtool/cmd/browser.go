package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"title-reader/internal/backend"
)

func newBrowserCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "browser",
		Short: "Start the browser backend (provisioning it first) and leave it running",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			defer d.close()

			logPath, closeLog, err := d.logBackendTo(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			proc, err := d.launcher.EnsureRunning(cmd.Context())
			if err != nil {
				return err
			}
			if proc == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Browser already listening on %s (not started by devtool)\n", d.endpoint.Addr())
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), d.cfg.Browser.StartupTimeout)
			defer cancel()
			if err := d.launcher.WaitListening(ctx, 0); err != nil {
				return fmt.Errorf("started pid %d but %w (see %s)", proc.PID, err, logPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Browser %s: pid=%d endpoint=%s log=%s\n", backend.StateLaunched, proc.PID, d.endpoint.WebSocketURL(), logPath)
			return nil
		},
	}

	addLogFileFlag(cmd, &logFile)
	return cmd
}
