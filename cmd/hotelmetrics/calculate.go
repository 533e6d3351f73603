package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/calc"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute derived KPIs over a date range",
	Long: `Compute derived KPIs (occupancy rate, ADR, RevPAR, averages) for a
department from the stored items inside the given date range, bucketed by the
requested period.`,
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

		start, err := time.Parse("2006-01-02", flagFrom)
		if err != nil {
			return fmt.Errorf("invalid --from %q: want YYYY-MM-DD", flagFrom)
		}
		end, err := time.Parse("2006-01-02", flagTo)
		if err != nil {
			return fmt.Errorf("invalid --to %q: want YYYY-MM-DD", flagTo)
		}
		period, err := calc.ParsePeriod(flagPeriod)
		if err != nil {
			return err
		}

		items, err := a.store.QueryItems(ctx, dept, &start, &end)
		if err != nil {
			return err
		}
		points := make([]entity.RawDataPoint, 0, len(items))
		for _, it := range items {
			// previously calculated items are outputs, never engine inputs
			if it.Source == constants.SourceCalculated {
				continue
			}
			points = append(points, it.ToDataPoint())
		}

		results, err := a.engine.Calculate(points, dept, start, end, period)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no results")
			return nil
		}

		if flagStore {
			sourceFile := "calc:" + string(period)
			toStore := make([]entity.RawDataPoint, 0, len(results))
			for _, r := range results {
				toStore = append(toStore, r.ToDataPoint(dept, sourceFile))
			}
			n, err := a.store.InsertItems(ctx, toStore)
			if err != nil {
				return fmt.Errorf("storing results: %w", err)
			}
			fmt.Printf("stored %d calculated items\n", n)
		}

		if flagOutput != "" {
			data, err := a.export.ExportResultsXLSX(results)
			if err != nil {
				return err
			}
			if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", flagOutput, err)
			}
			fmt.Printf("wrote %s (%d results)\n", flagOutput, len(results))
			return nil
		}

		for _, r := range results {
			fmt.Printf("%s  %-28s %10.2f %-5s (confidence %.2f)\n",
				r.Date.Format("2006-01-02"), r.KPIName, r.Value, r.Unit, r.Confidence)
		}
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringVar(&flagFrom, "from", "", "Range start, YYYY-MM-DD (required)")
	calculateCmd.Flags().StringVar(&flagTo, "to", "", "Range end, YYYY-MM-DD, inclusive (required)")
	calculateCmd.Flags().StringVar(&flagPeriod, "period", "daily",
		"Bucket period: daily, weekly, monthly, quarterly, yearly")
	calculateCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"Write results to an XLSX workbook instead of stdout")
	calculateCmd.Flags().BoolVar(&flagStore, "store", false,
		"Persist results as items with source \"calculated\"")
	_ = calculateCmd.MarkFlagRequired("from")
	_ = calculateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(calculateCmd)
}
