package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lucsky/cuid"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/om-bhaiya/messle/internal/repositories"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// sourceRecord is the shape of one mess entry in the import file.
type sourceRecord struct {
	MessName       string  `json:"messName"`
	Address        string  `json:"address"`
	Area           string  `json:"area"`
	Type           string  `json:"type"`
	MonthlyCharges float64 `json:"monthlyCharges"`
	PerDietCharges float64 `json:"perDietCharges"`
	PhoneNumber    string  `json:"phoneNumber"`
	Location       struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// Importer loads mess listings from a JSON export into the listing
// store. Imported listings start unrated.
type Importer struct {
	repo repositories.ListingRepository
	log  *zap.Logger
}

func New(repo repositories.ListingRepository, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{repo: repo, log: log}
}

// ImportFile reads the JSON file at path and bulk-creates its listings.
// Records without a name or a positive monthly price are skipped, not
// fatal. Returns the number of listings imported.
func (i *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read import file: %w", err)
	}

	var records []sourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("failed to parse import file: %w", err)
	}

	bar := progressbar.Default(int64(len(records)), "importing messes")

	listings := make([]*models.Listing, 0, len(records))
	skipped := 0
	for _, rec := range records {
		_ = bar.Add(1)
		l, ok := transform(rec)
		if !ok {
			skipped++
			continue
		}
		listings = append(listings, l)
	}

	if len(listings) > 0 {
		if err := i.repo.BulkCreate(ctx, listings); err != nil {
			return 0, fmt.Errorf("failed to store imported listings: %w", err)
		}
	}

	i.log.Info("import finished",
		zap.String("file", path),
		zap.Int("imported", len(listings)),
		zap.Int("skipped", skipped))
	return len(listings), nil
}

func transform(rec sourceRecord) (*models.Listing, bool) {
	name := strings.TrimSpace(rec.MessName)
	if name == "" || rec.MonthlyCharges <= 0 {
		return nil, false
	}

	area := rec.Area
	if area == "" {
		area = "Kota"
	}

	return &models.Listing{
		ID:           cuid.New(),
		Name:         name,
		Area:         area,
		Phone:        rec.PhoneNumber,
		SlugName:     slugify(name),
		MonthlyPrice: rec.MonthlyCharges,
		Rating:       0,
		TotalRatings: 0,
		VegOnly:      strings.EqualFold(rec.Type, "veg"),
		Location: models.Location{
			Lat: rec.Location.Lat,
			Lon: rec.Location.Lng,
		},
	}, true
}

func slugify(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
}
