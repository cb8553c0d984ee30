package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func createBucketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-bucket",
		Short: "Create the public letters bucket if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.letters.EnsureBucket(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Bucket %s created successfully\n", a.cfg.Storage.Bucket)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bucket %s already exists\n", a.cfg.Storage.Bucket)
			return nil
		},
	}
}
