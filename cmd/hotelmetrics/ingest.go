package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Ingest documents or directories into the KPI store",
	Long: `Ingest one or more documents (PDF, CSV, XLSX) or directories. Directories
are walked recursively; hidden files and unsupported extensions are skipped.
Duplicates already present in the store are reported, not re-written.`,
	Args: cobra.MinimumNArgs(1),
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

		var failures int
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failures++
				continue
			}

			if info.IsDir() {
				results, stats, err := a.ingest.IngestDirectory(ctx, path, dept)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					failures++
					continue
				}
				for _, r := range results {
					if r.Err != "" {
						fmt.Fprintf(os.Stderr, "  %s: %s\n", r.Path, r.Err)
					}
				}
				fmt.Printf("%s: %d files, %d stored, %d duplicates, %d failed\n",
					path, stats.Matched, stats.Stored, stats.Duplicate, stats.Failed)
				failures += int(stats.Failed)
				continue
			}

			summary, err := a.ingest.IngestFile(ctx, path, dept)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failures++
				continue
			}
			fmt.Printf("%s: %d extracted, %d stored, %d duplicates\n",
				path, summary.TotalExtracted, summary.Stored, summary.Duplicates)
		}

		if failures > 0 {
			return fmt.Errorf("%d path(s) failed", failures)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
