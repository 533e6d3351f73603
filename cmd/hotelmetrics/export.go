package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored items to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		dept, err := resolveDepartment(a.cfg)
		if err != nil {
			return err
		}

		var from, to *time.Time
		if flagFrom != "" {
			t, err := time.Parse("2006-01-02", flagFrom)
			if err != nil {
				return fmt.Errorf("invalid --from %q: want YYYY-MM-DD", flagFrom)
			}
			from = &t
		}
		if flagTo != "" {
			t, err := time.Parse("2006-01-02", flagTo)
			if err != nil {
				return fmt.Errorf("invalid --to %q: want YYYY-MM-DD", flagTo)
			}
			to = &t
		}

		data, err := a.export.ExportItemsXLSX(ctx, dept, from, to)
		if err != nil {
			return err
		}

		out := flagOutput
		if out == "" {
			out = fmt.Sprintf("kpi-items-%s.xlsx", time.Now().Format("20060102-150405"))
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagFrom, "from", "", "Range start, YYYY-MM-DD")
	exportCmd.Flags().StringVar(&flagTo, "to", "", "Range end, YYYY-MM-DD, inclusive")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path")
	rootCmd.AddCommand(exportCmd)
}
