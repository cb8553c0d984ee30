package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Generate letters for events whose registration has ended",
		Long: `Run one registration-expiry scan and print the report as JSON.

Intended to be run from cron or any external scheduler, e.g.
  letterd scan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.scanner.Scan(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if report.Interrupted != "" {
				return fmt.Errorf("scan interrupted after %d results: %s", len(report.Results), report.Interrupted)
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d letters failed", report.Failed, len(report.Results))
			}
			return nil
		},
	}
}
