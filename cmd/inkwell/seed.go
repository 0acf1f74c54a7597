package main

import (
	"github.com/spf13/cobra"

	"inkwell/internal/seed"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample categories and posts into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			qc, valkeyClient := openCache(cmd.Context(), cfg)
			if valkeyClient != nil {
				defer valkeyClient.Close()
			}

			return seed.Run(cmd.Context(), newService(db, qc))
		},
	}
}
