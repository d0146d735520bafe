package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/spf13/cobra"
)

var importCustomersCmd = &cobra.Command{
	Use:   "import-customers <file.csv|file.xlsx>",
	Short: "Import customers from a CSV file or spreadsheet",
	Long: `Import customers from a CSV file or the first sheet of an XLSX
workbook. The first row is the header; Account, Name, Address, City, State,
Zip, Phone, Email, Tax Exempt and Notes columns are recognised in any
order. Rows that fail validation are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportCustomers,
}

func init() {
	rootCmd.AddCommand(importCustomersCmd)
}

func runImportCustomers(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var result *service.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		result, err = a.Services.Customer.ImportCustomersXLSX(ctx, f)
	default:
		result, err = a.Services.Customer.ImportCustomersCSV(ctx, f)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d of %d rows\n", result.Successful, result.TotalRows)
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  row %d: %s: %s\n", e.Row, e.Field, e.Message)
	}
	return nil
}
