package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/om-bhaiya/messle/internal/geo"
	"github.com/om-bhaiya/messle/internal/location"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "messle",
	Short: "Ranked mess and tiffin directory",
	Long:  `messle ranks mess and tiffin listings for students: a composite quality score, distance-aware ordering and facet filters over a city's mess directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		filters, err := filtersFromFlags(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		a, err := buildApp(ctx, cfg, providerFromFlags(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		ranked, err := a.service.Browse(ctx, filters)
		if err != nil {
			return err
		}

		printRanked(ranked)
		return nil
	},
}

func filtersFromFlags(cmd *cobra.Command) (models.FilterSelection, error) {
	var (
		filters models.FilterSelection
		err     error
	)
	if v, _ := cmd.Flags().GetString("distance"); v != "" {
		if filters.Distance, err = models.ParseDistanceBracket(v); err != nil {
			return filters, err
		}
	}
	if v, _ := cmd.Flags().GetString("price"); v != "" {
		if filters.Price, err = models.ParsePriceBracket(v); err != nil {
			return filters, err
		}
	}
	if v, _ := cmd.Flags().GetString("rating"); v != "" {
		if filters.Rating, err = models.ParseRatingBracket(v); err != nil {
			return filters, err
		}
	}
	return filters, nil
}

// providerFromFlags reports the caller's position when both coordinate
// flags are set; otherwise ranking degrades to a distance-free view.
func providerFromFlags(cmd *cobra.Command) location.Provider {
	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
		return nil
	}
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	return location.Static{Loc: models.Location{Lat: lat, Lon: lon}}
}

func printRanked(ranked []models.AnnotatedListing) {
	if len(ranked) == 0 {
		fmt.Println("No messes match the selected filters.")
		return
	}
	for i, a := range ranked {
		marker := " "
		if a.Favorite {
			marker = "*"
		}
		dist := "-"
		if a.DistanceKm != nil {
			dist = geo.FormatDistance(*a.DistanceKm)
		}
		rating := "new"
		if a.TotalRatings > 0 {
			rating = fmt.Sprintf("%.1f (%d)", a.Rating, a.TotalRatings)
		}
		fmt.Printf("%3d %s %-35s %-18s ₹%5.0f/mo  %-10s %8s  %.1f\n",
			i+1, marker, a.Name, a.Area, a.MonthlyPrice, rating, dist, a.Score)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")

	rootCmd.Flags().String("distance", "", "distance filter: 1km, 2km, 5km or 10km")
	rootCmd.Flags().String("price", "", "price filter: under_3000, 3000_4000, 4000_5000 or above_5000")
	rootCmd.Flags().String("rating", "", "rating filter: 4_plus, 3_to_4, below_3 or new")
	rootCmd.Flags().Float64("lat", 0, "caller latitude")
	rootCmd.Flags().Float64("lon", 0, "caller longitude")

	rootCmd.PersistentFlags().String("device-id", "local", "Device identifier scoping favorites and rated marks")
	rootCmd.PersistentFlags().Float64("avg-monthly-price", 3500, "Reference monthly price for the affordability score")
	rootCmd.PersistentFlags().String("postgres-dsn", "", "Postgres connection string for the listing store")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for device state (optional)")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.PersistentFlags().String("output-destination", "console", "Event sink: console, json, kafka or parquet")
	rootCmd.PersistentFlags().String("output-file-path", "output", "Base path for file outputs")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	viper.BindPFlag("device_id", rootCmd.PersistentFlags().Lookup("device-id"))
	viper.BindPFlag("avg_monthly_price", rootCmd.PersistentFlags().Lookup("avg-monthly-price"))
	viper.BindPFlag("postgres_dsn", rootCmd.PersistentFlags().Lookup("postgres-dsn"))
	viper.BindPFlag("redis_addr", rootCmd.PersistentFlags().Lookup("redis-addr"))
	viper.BindPFlag("kafka_enabled", rootCmd.PersistentFlags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output_destination", rootCmd.PersistentFlags().Lookup("output-destination"))
	viper.BindPFlag("output_file_path", rootCmd.PersistentFlags().Lookup("output-file-path"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
