package directory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/om-bhaiya/messle/internal/location"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/om-bhaiya/messle/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListings struct {
	listings []models.Listing
	err      error
}

func (f *fakeListings) BulkCreate(ctx context.Context, listings []*models.Listing) error {
	for _, l := range listings {
		f.listings = append(f.listings, *l)
	}
	return nil
}

func (f *fakeListings) Create(ctx context.Context, listing *models.Listing) error {
	f.listings = append(f.listings, *listing)
	return nil
}

func (f *fakeListings) GetAll(ctx context.Context) ([]models.Listing, error) {
	return f.listings, f.err
}

func (f *fakeListings) Count(ctx context.Context) (int, error) { return len(f.listings), nil }

func (f *fakeListings) DeleteAll(ctx context.Context) error {
	f.listings = nil
	return nil
}

type fakeFavorites struct {
	ids map[string]struct{}
	err error
}

func (f *fakeFavorites) GetAll(ctx context.Context) (map[string]struct{}, error) {
	return f.ids, f.err
}

func (f *fakeFavorites) Toggle(ctx context.Context, id string) (bool, error) {
	if f.ids == nil {
		f.ids = make(map[string]struct{})
	}
	if _, ok := f.ids[id]; ok {
		delete(f.ids, id)
		return false, nil
	}
	f.ids[id] = struct{}{}
	return true, nil
}

func (f *fakeFavorites) Count(ctx context.Context) (int, error) { return len(f.ids), nil }

type fakeRated struct {
	marks map[string]int
}

func (f *fakeRated) HasRated(ctx context.Context, id string) (bool, error) {
	_, ok := f.marks[id]
	return ok, nil
}

func (f *fakeRated) Rating(ctx context.Context, id string) (int, error) {
	return f.marks[id], nil
}

func (f *fakeRated) Mark(ctx context.Context, id string, stars int) error {
	if f.marks == nil {
		f.marks = make(map[string]int)
	}
	f.marks[id] = stars
	return nil
}

type fakeRatings struct {
	mean  float64
	err   error
	calls int
}

func (f *fakeRatings) Save(ctx context.Context, id string, stars int) (float64, error) {
	f.calls++
	return f.mean, f.err
}

type captureSink struct {
	messages map[string][][]byte
	closed   bool
}

func newCaptureSink() *captureSink {
	return &captureSink{messages: make(map[string][][]byte)}
}

func (c *captureSink) WriteMessage(topic string, msg []byte) error {
	c.messages[topic] = append(c.messages[topic], msg)
	return nil
}

func (c *captureSink) Close() error {
	c.closed = true
	return nil
}

func testConfig() *models.Config {
	return &models.Config{
		CityName:        "Kota",
		DeviceID:        "device-1",
		AvgMonthlyPrice: 3500,
	}
}

func testListing(id string, rating float64, total int) models.Listing {
	return models.Listing{
		ID:           id,
		Name:         "Mess " + id,
		MonthlyPrice: 3200,
		Rating:       rating,
		TotalRatings: total,
		Location:     models.Location{Lat: 25.2138, Lon: 75.8648},
	}
}

func newTestService(t *testing.T, listings *fakeListings, favs *fakeFavorites, rated *fakeRated, ratings *fakeRatings, resolver *location.Resolver, sink OutputDestination) *Service {
	t.Helper()
	cfg := testConfig()
	pipeline := ranking.NewPipeline(ranking.NewScorer(models.DefaultScoreWeights(), cfg.AvgMonthlyPrice), 0)
	return NewService(cfg, nil, listings, favs, rated, ratings, resolver, pipeline, sink)
}

func TestBrowseRanksAndEmitsSnapshots(t *testing.T) {
	listings := &fakeListings{listings: []models.Listing{
		testListing("a", 3.0, 40),
		testListing("b", 4.8, 120),
	}}
	sink := newCaptureSink()
	svc := newTestService(t, listings, &fakeFavorites{}, &fakeRated{}, &fakeRatings{}, nil, sink)

	ranked, err := svc.Browse(context.Background(), models.FilterSelection{})
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ID)

	snapshots := sink.messages[models.TopicRankSnapshots]
	require.Len(t, snapshots, 2)

	var first RankSnapshotEvent
	require.NoError(t, json.Unmarshal(snapshots[0], &first))
	assert.Equal(t, "b", first.ListingID)
	assert.Equal(t, int32(1), first.Rank)
	assert.Equal(t, "Kota", first.City)
	assert.Nil(t, first.DistanceKm)
}

func TestBrowseDegradesWithoutLocation(t *testing.T) {
	listings := &fakeListings{listings: []models.Listing{testListing("a", 4.0, 50)}}
	resolver := location.NewResolver(location.ProviderFunc(func(ctx context.Context) (models.Location, error) {
		return models.Location{}, errors.New("gps off")
	}), nil, 0, nil)
	svc := newTestService(t, listings, &fakeFavorites{}, &fakeRated{}, &fakeRatings{}, resolver, newCaptureSink())

	ranked, err := svc.Browse(context.Background(), models.FilterSelection{})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Nil(t, ranked[0].DistanceKm)
}

func TestBrowseAnnotatesDistanceWhenLocated(t *testing.T) {
	listings := &fakeListings{listings: []models.Listing{testListing("a", 4.0, 50)}}
	resolver := location.NewResolver(location.Static{Loc: models.Location{Lat: 25.2138, Lon: 75.8648}}, nil, 0, nil)
	svc := newTestService(t, listings, &fakeFavorites{}, &fakeRated{}, &fakeRatings{}, resolver, newCaptureSink())

	ranked, err := svc.Browse(context.Background(), models.FilterSelection{})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	require.NotNil(t, ranked[0].DistanceKm)
	assert.InDelta(t, 0.0, *ranked[0].DistanceKm, 0.001)
}

func TestBrowseFailsWhenListingsUnavailable(t *testing.T) {
	listings := &fakeListings{err: errors.New("db down")}
	svc := newTestService(t, listings, &fakeFavorites{}, &fakeRated{}, &fakeRatings{}, nil, newCaptureSink())

	_, err := svc.Browse(context.Background(), models.FilterSelection{})
	assert.Error(t, err)
}

func TestBrowseToleratesFavoritesFailure(t *testing.T) {
	listings := &fakeListings{listings: []models.Listing{testListing("a", 4.0, 50)}}
	favs := &fakeFavorites{err: errors.New("redis down")}
	svc := newTestService(t, listings, favs, &fakeRated{}, &fakeRatings{}, nil, newCaptureSink())

	ranked, err := svc.Browse(context.Background(), models.FilterSelection{})
	require.NoError(t, err)
	assert.Len(t, ranked, 1)
	assert.False(t, ranked[0].Favorite)
}

func TestRateRecordsAndEmits(t *testing.T) {
	ratings := &fakeRatings{mean: 4.2}
	rated := &fakeRated{}
	sink := newCaptureSink()
	svc := newTestService(t, &fakeListings{}, &fakeFavorites{}, rated, ratings, nil, sink)

	mean, err := svc.Rate(context.Background(), "a", 5)
	require.NoError(t, err)
	assert.Equal(t, 4.2, mean)
	assert.Equal(t, 1, ratings.calls)

	has, err := rated.HasRated(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, has)

	events := sink.messages[models.TopicRatings]
	require.Len(t, events, 1)
	var ev RatingEvent
	require.NoError(t, json.Unmarshal(events[0], &ev))
	assert.Equal(t, int32(5), ev.Stars)
	assert.Equal(t, 4.2, ev.NewAverage)
	assert.Equal(t, "device-1", ev.DeviceID)
}

func TestRateRejectsSecondRating(t *testing.T) {
	ratings := &fakeRatings{mean: 4.2}
	svc := newTestService(t, &fakeListings{}, &fakeFavorites{}, &fakeRated{}, ratings, nil, newCaptureSink())

	_, err := svc.Rate(context.Background(), "a", 5)
	require.NoError(t, err)

	_, err = svc.Rate(context.Background(), "a", 3)
	assert.ErrorIs(t, err, ErrAlreadyRated)
	assert.Equal(t, 1, ratings.calls)
}

func TestToggleFavorite(t *testing.T) {
	favs := &fakeFavorites{}
	svc := newTestService(t, &fakeListings{}, favs, &fakeRated{}, &fakeRatings{}, nil, newCaptureSink())

	on, err := svc.ToggleFavorite(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = svc.ToggleFavorite(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestRecordImport(t *testing.T) {
	sink := newCaptureSink()
	svc := newTestService(t, &fakeListings{}, &fakeFavorites{}, &fakeRated{}, &fakeRatings{}, nil, sink)

	require.NoError(t, svc.RecordImport("messes.json", 37))

	events := sink.messages[models.TopicImports]
	require.Len(t, events, 1)
	var ev ImportEvent
	require.NoError(t, json.Unmarshal(events[0], &ev))
	assert.Equal(t, "messes.json", ev.Source)
	assert.Equal(t, int32(37), ev.Imported)
}

func TestCloseClosesSink(t *testing.T) {
	sink := newCaptureSink()
	svc := newTestService(t, &fakeListings{}, &fakeFavorites{}, &fakeRated{}, &fakeRatings{}, nil, sink)
	require.NoError(t, svc.Close())
	assert.True(t, sink.closed)
}
