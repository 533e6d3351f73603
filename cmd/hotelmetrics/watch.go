package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kofiasare/hotelmetrics/internal/ingest"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Watch drop folders and ingest new documents as they appear",
	Long: `Watch the given directories (or INBOX_DIRS when none are given) and run the
ingestion pipeline on every new or modified document. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		dept, err := resolveDepartment(a.cfg)
		if err != nil {
			return err
		}

		roots := args
		if len(roots) == 0 {
			roots = a.cfg.Ingest.InboxDirs
		}
		if len(roots) == 0 {
			return fmt.Errorf("no directories to watch: pass them as arguments or set INBOX_DIRS")
		}

		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       roots,
			InitialScan: watchInitialScan,
			Debounce:    a.cfg.Ingest.WatchDebounce,
		})
		if err != nil {
			return err
		}
		fmt.Printf("watching %v, press Ctrl-C to stop\n", roots)

		for {
			select {
			case <-ctx.Done():
				return nil
			case path, ok := <-events:
				if !ok {
					return nil
				}
				summary, err := a.ingest.IngestFile(ctx, path, dept)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					continue
				}
				fmt.Printf("%s: %d stored, %d duplicates\n", path, summary.Stored, summary.Duplicates)
			case err, ok := <-errs:
				if !ok {
					return nil
				}
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			}
		}
	},
}

var watchInitialScan bool

func init() {
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", true,
		"Ingest files already present in the watched directories on startup")
	rootCmd.AddCommand(watchCmd)
}
