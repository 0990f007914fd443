package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDistanceBracket(t *testing.T) {
	for _, valid := range []string{"", "1km", "2km", "5km", "10km"} {
		b, err := ParseDistanceBracket(valid)
		require.NoError(t, err)
		assert.Equal(t, DistanceBracket(valid), b)
	}

	_, err := ParseDistanceBracket("3km")
	assert.Error(t, err)
}

func TestParsePriceBracket(t *testing.T) {
	for _, valid := range []string{"", "under_3000", "3000_4000", "4000_5000", "above_5000"} {
		_, err := ParsePriceBracket(valid)
		require.NoError(t, err)
	}

	_, err := ParsePriceBracket("cheap")
	assert.Error(t, err)
}

func TestParseRatingBracket(t *testing.T) {
	for _, valid := range []string{"", "4_plus", "3_to_4", "below_3", "new"} {
		_, err := ParseRatingBracket(valid)
		require.NoError(t, err)
	}

	_, err := ParseRatingBracket("5_star")
	assert.Error(t, err)
}

func TestPriceBracketBoundsAreContiguous(t *testing.T) {
	brackets := []PriceBracket{PriceUnder3000, Price3000To4000, Price4000To5000, PriceAbove5000}
	prev := 0.0
	for i, b := range brackets {
		min, max := b.Bounds()
		assert.Equal(t, prev, min, "bracket %s must start where the previous ended", b)
		if i < len(brackets)-1 {
			require.Greater(t, max, min)
			prev = max
		} else {
			assert.Zero(t, max, "top bracket is unbounded")
		}
	}
}

func TestDistanceBracketMaxKm(t *testing.T) {
	assert.Zero(t, DistanceAny.MaxKm())
	assert.Equal(t, 1.0, DistanceWithin1.MaxKm())
	assert.Equal(t, 2.0, DistanceWithin2.MaxKm())
	assert.Equal(t, 5.0, DistanceWithin5.MaxKm())
	assert.Equal(t, 10.0, DistanceWithin10.MaxKm())
}

func TestFilterSelectionEmpty(t *testing.T) {
	assert.True(t, FilterSelection{}.Empty())
	assert.False(t, FilterSelection{Distance: DistanceWithin2}.Empty())
	assert.False(t, FilterSelection{Price: PriceUnder3000}.Empty())
	assert.False(t, FilterSelection{Rating: RatingUnrated}.Empty())
}
