package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"title-reader/internal/app/status"
	"title-reader/internal/envutil"
)

func newDoctorCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report the browser binary, port and DevTools status without starting anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}
			defer d.close()

			art := d.provisioner.Artifact()
			_, statErr := os.Stat(art.Path)
			rep := status.NewReporter(d.launcher).Report(cmd.Context())

			rows := []doctorRow{
				{"binary", art.Path, statErr == nil},
				{"download url", orDash(art.SourceURL), art.SourceURL != ""},
				{"endpoint", rep.Endpoint, true},
				{"listening", strconv.FormatBool(rep.Listening), rep.Listening},
			}
			switch {
			case rep.DevTools != nil:
				rows = append(rows, doctorRow{"devtools", rep.DevTools.Browser, true})
			case rep.DevToolsError != "":
				rows = append(rows, doctorRow{"devtools", rep.DevToolsError, false})
			default:
				rows = append(rows, doctorRow{"devtools", "-", false})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDoctor(rows, !plain && isTerminal(out)))

			if !rep.Listening {
				return fmt.Errorf("nothing is listening on %s (run `devtool browser` to start it)", d.endpoint.Addr())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", envutil.Bool(os.Getenv, "DEVTOOL_PLAIN", false), "Disable colors and box drawing")
	return cmd
}

type doctorRow struct {
	check string
	value string
	ok    bool
}

func renderDoctor(rows []doctorRow, styled bool) string {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	tw.AppendHeader(table.Row{"Check", "Value", "Status"})

	for _, r := range rows {
		tw.AppendRow(table.Row{r.check, r.value, statusCell(r.ok, styled)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})
	return tw.Render()
}

func statusCell(ok, styled bool) string {
	label := "FAIL"
	colors := text.Colors{text.FgRed, text.Bold}
	if ok {
		label = "OK"
		colors = text.Colors{text.FgGreen}
	}
	if !styled {
		return label
	}
	return colors.Sprint(label)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
