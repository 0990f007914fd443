package cmd

import (
	"context"
	"fmt"

	"github.com/om-bhaiya/messle/internal/factories"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the listing store with generated messes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		count := cfg.SeedListings
		if cmd.Flags().Changed("count") {
			count, _ = cmd.Flags().GetInt("count")
		}
		if count <= 0 {
			return fmt.Errorf("seed count must be positive, got %d", count)
		}

		ctx := context.Background()
		a, err := buildApp(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		if wipe, _ := cmd.Flags().GetBool("wipe"); wipe {
			if err := a.listings.DeleteAll(ctx); err != nil {
				return fmt.Errorf("failed to wipe listings: %w", err)
			}
		}

		lf := &factories.ListingFactory{}
		listings := make([]*models.Listing, count)
		for i := range listings {
			listings[i] = lf.CreateListing(cfg)
		}
		if err := a.listings.BulkCreate(ctx, listings); err != nil {
			return fmt.Errorf("failed to store seed listings: %w", err)
		}
		if err := a.service.RecordImport("seed", count); err != nil {
			return err
		}

		fmt.Printf("Seeded %d listings in %s\n", count, cfg.CityName)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("count", 0, "number of listings to generate (default from config)")
	seedCmd.Flags().Bool("wipe", false, "delete existing listings first")
	rootCmd.AddCommand(seedCmd)
}
