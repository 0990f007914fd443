package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/om-bhaiya/messle/internal/importer"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import mess listings from a JSON export",
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

		imp := importer.New(a.listings, a.log)
		count, err := imp.ImportFile(ctx, args[0])
		if err != nil {
			return err
		}
		if err := a.service.RecordImport(filepath.Base(args[0]), count); err != nil {
			return err
		}

		fmt.Printf("Imported %d listings from %s\n", count, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
