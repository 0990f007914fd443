package models

import (
	"fmt"
	"math"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type ScoreWeights struct {
	Rating     float64 `mapstructure:"rating"`
	Popularity float64 `mapstructure:"popularity"`
	Price      float64 `mapstructure:"price"`
	Freshness  float64 `mapstructure:"freshness"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	CityName    string  `mapstructure:"city_name"`
	CityLat     float64 `mapstructure:"city_latitude"`
	CityLon     float64 `mapstructure:"city_longitude"`
	UrbanRadius float64 `mapstructure:"urban_radius"` // km, used by the seed factory

	// DeviceID scopes favorites and rated-marks; the directory has no
	// authenticated users.
	DeviceID string `mapstructure:"device_id"`

	AvgMonthlyPrice     float64      `mapstructure:"avg_monthly_price"`
	Weights             ScoreWeights `mapstructure:"score_weights"`
	DistanceDominanceKm float64      `mapstructure:"distance_dominance_km"`

	LocationTimeout time.Duration `mapstructure:"location_timeout"`
	LocationMaxAge  time.Duration `mapstructure:"location_max_age"`

	PostgresDSN   string `mapstructure:"postgres_dsn"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	OutputDestination string             `mapstructure:"output_destination"`
	OutputPath        string             `mapstructure:"output_file_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	// LocalStatePath backs favorites and rated-marks when Redis is not
	// configured.
	LocalStatePath string `mapstructure:"local_state_path"`

	SeedListings int    `mapstructure:"seed_listings"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
}

// DefaultScoreWeights mirrors the calibrated production weights: quality
// first, then social proof, affordability and menu freshness.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Rating:     0.40,
		Popularity: 0.25,
		Price:      0.15,
		Freshness:  0.20,
	}
}

// Validate rejects weight sets that do not sum to 1 and nonsensical price
// references before anything downstream consumes them.
func (cfg *Config) Validate() error {
	w := cfg.Weights
	sum := w.Rating + w.Popularity + w.Price + w.Freshness
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("score weights must sum to 1.0, got %v", sum)
	}
	if cfg.AvgMonthlyPrice <= 0 {
		return fmt.Errorf("avg_monthly_price must be positive, got %v", cfg.AvgMonthlyPrice)
	}
	if cfg.DistanceDominanceKm < 0 {
		return fmt.Errorf("distance_dominance_km must be non-negative, got %v", cfg.DistanceDominanceKm)
	}
	return nil
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	defaults := DefaultScoreWeights()
	viper.SetDefault("city_name", "Kota")
	viper.SetDefault("city_latitude", 25.2138)
	viper.SetDefault("city_longitude", 75.8648)
	viper.SetDefault("urban_radius", 8.0)
	viper.SetDefault("device_id", "local")
	viper.SetDefault("avg_monthly_price", 3500.0)
	viper.SetDefault("score_weights.rating", defaults.Rating)
	viper.SetDefault("score_weights.popularity", defaults.Popularity)
	viper.SetDefault("score_weights.price", defaults.Price)
	viper.SetDefault("score_weights.freshness", defaults.Freshness)
	viper.SetDefault("distance_dominance_km", 2.0)
	viper.SetDefault("location_timeout", "5s")
	viper.SetDefault("location_max_age", "5m")
	viper.SetDefault("output_destination", "console")
	viper.SetDefault("local_state_path", "messle_state.json")
	viper.SetDefault("seed_listings", 40)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "console")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
