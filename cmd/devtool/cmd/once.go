package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOnceCmd() *cobra.Command {
	var url, logFile string

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Read the title of one URL through the managed browser backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(url) == "" && len(args) > 0 {
				url = args[0]
			}
			if strings.TrimSpace(url) == "" {
				return errors.New("missing required flag: --url")
			}

			d, err := loadDeps()
			if err != nil {
				return err
			}
			defer d.close()

			_, closeLog, err := d.logBackendTo(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			res, err := d.service().Fetch(cmd.Context(), url)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Page URL; https:// is assumed when no scheme is given")
	addLogFileFlag(cmd, &logFile)
	return cmd
}
