package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the store and seed default products, users and settings",
	Long: `Apply the store schema and fill every empty reference collection
with its defaults. Collections that already hold records are left alone,
so running seed twice is harmless.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	version, err := a.Store.Version(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store %s at version %d\n", a.Store.Schema().Name, version)
	for _, c := range a.Store.Schema().Collections {
		n, err := a.Store.Count(ctx, c.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-10s %d\n", c.Name, n)
	}
	return nil
}
