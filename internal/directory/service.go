package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/om-bhaiya/messle/internal/location"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/om-bhaiya/messle/internal/ranking"
	"github.com/om-bhaiya/messle/internal/repositories"
	"go.uber.org/zap"
)

// ErrAlreadyRated is returned when a device submits a second rating for
// the same listing.
var ErrAlreadyRated = errors.New("listing already rated from this device")

// Service is the directory facade: it assembles listings, device state
// and location into ranked views, and records ratings and favorites.
type Service struct {
	cfg      *models.Config
	log      *zap.Logger
	listings repositories.ListingRepository
	favs     repositories.FavoritesRepository
	rated    repositories.RatedMarksRepository
	ratings  repositories.RatingRepository
	resolver *location.Resolver
	pipeline *ranking.Pipeline
	output   OutputDestination
}

func NewService(
	cfg *models.Config,
	log *zap.Logger,
	listings repositories.ListingRepository,
	favs repositories.FavoritesRepository,
	rated repositories.RatedMarksRepository,
	ratings repositories.RatingRepository,
	resolver *location.Resolver,
	pipeline *ranking.Pipeline,
	output OutputDestination,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cfg:      cfg,
		log:      log,
		listings: listings,
		favs:     favs,
		rated:    rated,
		ratings:  ratings,
		resolver: resolver,
		pipeline: pipeline,
		output:   output,
	}
}

// Browse returns the ranked, filtered listing view. A failed location
// lookup degrades the view (no distances, no proximity ordering) but is
// never fatal.
func (s *Service) Browse(ctx context.Context, filters models.FilterSelection) ([]models.AnnotatedListing, error) {
	candidates, err := s.listings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	favorites, err := s.favs.GetAll(ctx)
	if err != nil {
		s.log.Warn("favorites unavailable, ranking without them", zap.Error(err))
		favorites = nil
	}

	var userLoc *models.Location
	if s.resolver != nil {
		userLoc, err = s.resolver.Resolve(ctx)
		if err != nil {
			s.log.Warn("location unavailable, serving degraded view", zap.Error(err))
			userLoc = nil
		}
	}

	ranked := s.pipeline.Rank(candidates, userLoc, filters, favorites)

	s.log.Info("ranked listing view served",
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(ranked)),
		zap.Bool("located", userLoc != nil),
		zap.Bool("filtered", !filters.Empty()))

	if err := s.emitRankSnapshots(ranked); err != nil {
		s.log.Warn("failed to emit rank snapshots", zap.Error(err))
	}

	return ranked, nil
}

// Rate records a star rating for a listing, enforcing one rating per
// device per listing, and returns the listing's new mean rating.
func (s *Service) Rate(ctx context.Context, listingID string, stars int) (float64, error) {
	already, err := s.rated.HasRated(ctx, listingID)
	if err != nil {
		return 0, fmt.Errorf("failed to check rated state: %w", err)
	}
	if already {
		return 0, ErrAlreadyRated
	}

	mean, err := s.ratings.Save(ctx, listingID, stars)
	if err != nil {
		return 0, fmt.Errorf("failed to save rating: %w", err)
	}

	if err := s.rated.Mark(ctx, listingID, stars); err != nil {
		s.log.Warn("rating saved but device mark failed",
			zap.String("listing_id", listingID), zap.Error(err))
	}

	event := RatingEvent{
		BaseEvent:  NewBaseEvent("rating", s.cfg.CityName, s.cfg.DeviceID, time.Now()),
		ListingID:  listingID,
		Stars:      int32(stars),
		NewAverage: mean,
	}
	if err := s.emit(models.TopicRatings, event); err != nil {
		s.log.Warn("failed to emit rating event", zap.Error(err))
	}

	s.log.Info("rating recorded",
		zap.String("listing_id", listingID),
		zap.Int("stars", stars),
		zap.Float64("new_average", mean))
	return mean, nil
}

// ToggleFavorite flips a listing's favorite mark for this device and
// reports the resulting state.
func (s *Service) ToggleFavorite(ctx context.Context, listingID string) (bool, error) {
	on, err := s.favs.Toggle(ctx, listingID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	s.log.Info("favorite toggled",
		zap.String("listing_id", listingID), zap.Bool("favorite", on))
	return on, nil
}

// RecordImport emits an import event after a bulk load.
func (s *Service) RecordImport(source string, imported int) error {
	event := ImportEvent{
		BaseEvent: NewBaseEvent("import", s.cfg.CityName, s.cfg.DeviceID, time.Now()),
		Source:    source,
		Imported:  int32(imported),
	}
	return s.emit(models.TopicImports, event)
}

// Close flushes and closes the event sink.
func (s *Service) Close() error {
	if s.output == nil {
		return nil
	}
	return s.output.Close()
}

func (s *Service) emitRankSnapshots(ranked []models.AnnotatedListing) error {
	if s.output == nil {
		return nil
	}
	now := time.Now()
	for i, a := range ranked {
		event := RankSnapshotEvent{
			BaseEvent:    NewBaseEvent("rank_snapshot", s.cfg.CityName, s.cfg.DeviceID, now),
			ListingID:    a.ID,
			Rank:         int32(i + 1),
			Score:        a.Score,
			DistanceKm:   a.DistanceKm,
			Favorite:     a.Favorite,
			MonthlyPrice: a.MonthlyPrice,
			Rating:       a.Rating,
			TotalRatings: int32(a.TotalRatings),
		}
		if err := s.emit(models.TopicRankSnapshots, event); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) emit(topic string, event interface{}) error {
	if s.output == nil {
		return nil
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return s.output.WriteMessage(topic, msg)
}
