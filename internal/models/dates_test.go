package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameLocalDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ref := time.Date(2025, 3, 10, 13, 0, 0, 0, ist)

	assert.True(t, SameLocalDay(time.Date(2025, 3, 10, 0, 0, 1, 0, ist), ref))
	assert.True(t, SameLocalDay(time.Date(2025, 3, 10, 23, 59, 59, 0, ist), ref))
	assert.False(t, SameLocalDay(time.Date(2025, 3, 9, 23, 59, 59, 0, ist), ref))
	assert.False(t, SameLocalDay(time.Date(2025, 3, 11, 0, 0, 0, 0, ist), ref))
	assert.False(t, SameLocalDay(time.Time{}, ref))
}

func TestSameLocalDayConvertsZones(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ref := time.Date(2025, 3, 10, 2, 0, 0, 0, ist)

	// 21:30 UTC the previous evening is 03:00 IST the same day as ref.
	utc := time.Date(2025, 3, 9, 21, 30, 0, 0, time.UTC)
	assert.True(t, SameLocalDay(utc, ref))
}

func TestListingValid(t *testing.T) {
	base := Listing{ID: "a", MonthlyPrice: 3000, Rating: 4, TotalRatings: 10}
	assert.True(t, base.Valid())

	tests := []struct {
		name   string
		mutate func(*Listing)
	}{
		{"missing id", func(l *Listing) { l.ID = "" }},
		{"zero price", func(l *Listing) { l.MonthlyPrice = 0 }},
		{"negative price", func(l *Listing) { l.MonthlyPrice = -100 }},
		{"rating above scale", func(l *Listing) { l.Rating = 5.1 }},
		{"negative rating", func(l *Listing) { l.Rating = -1 }},
		{"negative ratings count", func(l *Listing) { l.TotalRatings = -1 }},
		{"phantom rating", func(l *Listing) { l.Rating = 4; l.TotalRatings = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base
			tt.mutate(&l)
			assert.False(t, l.Valid())
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Weights: DefaultScoreWeights(), AvgMonthlyPrice: 3500}
	assert.NoError(t, valid.Validate())

	badWeights := valid
	badWeights.Weights.Rating = 0.5
	assert.Error(t, badWeights.Validate())

	badPrice := valid
	badPrice.AvgMonthlyPrice = 0
	assert.Error(t, badPrice.Validate())

	badDominance := valid
	badDominance.DistanceDominanceKm = -1
	assert.Error(t, badDominance.Validate())
}
