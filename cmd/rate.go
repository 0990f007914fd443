package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/om-bhaiya/messle/internal/directory"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate <listing-id> <stars>",
	Short: "Rate a mess from 1 to 5 stars",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stars, err := strconv.Atoi(args[1])
		if err != nil || stars < 1 || stars > 5 {
			return fmt.Errorf("stars must be an integer from 1 to 5, got %q", args[1])
		}

		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		ctx := context.Background()
		a, err := buildApp(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		mean, err := a.service.Rate(ctx, args[0], stars)
		if errors.Is(err, directory.ErrAlreadyRated) {
			fmt.Println("You have already rated this mess from this device.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Rated %s with %d stars, new average %.1f\n", args[0], stars, mean)
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <listing-id>",
	Short: "Toggle a mess's favorite mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		ctx := context.Background()
		a, err := buildApp(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		on, err := a.service.ToggleFavorite(ctx, args[0])
		if err != nil {
			return err
		}
		if on {
			fmt.Printf("Added %s to favorites\n", args[0])
		} else {
			fmt.Printf("Removed %s from favorites\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(favoriteCmd)
}
