package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/spf13/cobra"
)

var exportOpts struct {
	format   string
	output   string
	from     string
	to       string
	customer string
	driver   string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export completed invoices for bookkeeping",
	Long: `Write completed invoices as one row per line item, oldest first.
Dates given with --from and --to are YYYY-MM-DD in local time and are
inclusive.`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportOpts.format, "format", "csv", "output format: csv or xlsx")
	f.StringVarP(&exportOpts.output, "output", "o", "", "output file (default barber-oil-invoices-<date>.<format>, - for stdout)")
	f.StringVar(&exportOpts.from, "from", "", "first day to include")
	f.StringVar(&exportOpts.to, "to", "", "last day to include")
	f.StringVar(&exportOpts.customer, "customer", "", "only this customer account")
	f.StringVar(&exportOpts.driver, "driver", "", "only this driver")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOpts.format != "csv" && exportOpts.format != "xlsx" {
		return fmt.Errorf("unknown format %q, use csv or xlsx", exportOpts.format)
	}
	filter := &service.InvoiceFilter{
		CustomerID: exportOpts.customer,
		DriverID:   exportOpts.driver,
	}
	var err error
	if filter.From, err = parseDayFlag("from", exportOpts.from, false); err != nil {
		return err
	}
	if filter.To, err = parseDayFlag("to", exportOpts.to, true); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	path := exportOpts.output
	if path == "" {
		path = service.ExportFileName(time.Now(), exportOpts.format)
	}
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	var rows int
	if exportOpts.format == "xlsx" {
		rows, err = a.Services.Export.WriteXLSX(ctx, w, filter)
	} else {
		rows, err = a.Services.Export.WriteCSV(ctx, w, filter)
	}
	if err != nil {
		return err
	}
	if path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", rows, path)
	}
	return nil
}

func parseDayFlag(name, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", name, value)
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &day, nil
}
