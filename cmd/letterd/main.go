// Command letterd serves the participation letter API and runs its
// maintenance tasks (registration scan, bucket setup, schema migrations).
//
// @title Participation Letter API
// @version 1.0
// @description Generates participation letters for event attendees and stores them in object storage.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "letterd",
		Short:         "Participation letter service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(createBucketCmd())
	rootCmd.AddCommand(migrateCmd())

	return rootCmd
}
