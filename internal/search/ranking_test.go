package search

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	origin := Coordinates{Lat: 0, Lng: 0}

	assert.Equal(t, 0.0, Distance(origin, origin))

	// One degree of latitude is 6371 * pi/180 km, rounded to one decimal.
	oneDegNorth := Coordinates{Lat: 1, Lng: 0}
	assert.Equal(t, 111.2, Distance(origin, oneDegNorth))
	assert.Equal(t, Distance(origin, oneDegNorth), Distance(oneDegNorth, origin))

	// At the equator a degree of longitude spans the same arc.
	oneDegEast := Coordinates{Lat: 0, Lng: 1}
	assert.Equal(t, 111.2, Distance(origin, oneDegEast))
}

func TestFilter(t *testing.T) {
	garages := []Garage{
		{ID: "g1", HomeService: true, CourtesyVehicle: true},
		{ID: "g2", HomeService: true},
		{ID: "g3", CourtesyVehicle: true},
		{ID: "g4"},
	}

	testCases := []struct {
		name     string
		filters  Filters
		expected []string
	}{
		{name: "zero value keeps everything", filters: Filters{}, expected: []string{"g1", "g2", "g3", "g4"}},
		{name: "home service only", filters: Filters{HomeService: true}, expected: []string{"g1", "g2"}},
		{name: "courtesy vehicle only", filters: Filters{CourtesyVehicle: true}, expected: []string{"g1", "g3"}},
		{name: "both flags AND combined", filters: Filters{HomeService: true, CourtesyVehicle: true}, expected: []string{"g1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kept := Filter(garages, tc.filters)
			ids := make([]string, 0, len(kept))
			for _, g := range kept {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestRankCloserBeatsCheaper(t *testing.T) {
	caller := &Coordinates{Lat: 48.8566, Lng: 2.3522}
	avail := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	garages := []Garage{
		{
			ID:               "far-cheap",
			Coordinates:      Coordinates{Lat: 48.9566, Lng: 2.3522},
			NextAvailability: avail,
			Offers:           []Offer{{ID: "o1", Price: 59.0}},
		},
		{
			ID:               "near-pricey",
			Coordinates:      Coordinates{Lat: 48.8600, Lng: 2.3522},
			NextAvailability: avail,
			Offers:           []Offer{{ID: "o2", Price: 119.0}},
		},
	}

	ranked := Rank(garages, caller, []Criterion{ByDistance, ByPrice})
	require.Len(t, ranked, 2)

	// Distance carries weight 40 against price's 35, so the nearby garage
	// wins even though it is the expensive one.
	assert.Equal(t, "near-pricey", ranked[0].ID)
	assert.Equal(t, "far-cheap", ranked[1].ID)
	assert.InDelta(t, 40.0, ranked[0].Score, 1e-9)
	assert.InDelta(t, 35.0, ranked[1].Score, 1e-9)
}

func TestRankNilLocationDropsDistance(t *testing.T) {
	avail := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	garages := []Garage{
		{ID: "a", NextAvailability: avail, Offers: []Offer{{Price: 100}}},
		{ID: "b", NextAvailability: avail, Offers: []Offer{{Price: 80}}},
	}

	ranked := Rank(garages, nil, []Criterion{ByDistance, ByPrice})
	require.Len(t, ranked, 2)

	// Without a caller location the distance criterion vanishes and price
	// decides alone.
	assert.Equal(t, "b", ranked[0].ID)
	assert.Nil(t, ranked[0].Distance)
	assert.Nil(t, ranked[1].Distance)
	assert.InDelta(t, 35.0, ranked[0].Score, 1e-9)
	assert.InDelta(t, 0.0, ranked[1].Score, 1e-9)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	avail := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	same := Coordinates{Lat: 48.86, Lng: 2.35}
	garages := []Garage{
		{ID: "first", Coordinates: same, NextAvailability: avail, Offers: []Offer{{Price: 90}}},
		{ID: "second", Coordinates: same, NextAvailability: avail, Offers: []Offer{{Price: 90}}},
		{ID: "third", Coordinates: same, NextAvailability: avail, Offers: []Offer{{Price: 90}}},
	}

	ranked := Rank(garages, &Coordinates{Lat: 48.85, Lng: 2.35}, []Criterion{ByDistance, ByPrice, ByAvailability})
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)

	// When every candidate ties on a metric, all of them take the full
	// contribution instead of dividing by zero.
	for _, rg := range ranked {
		assert.InDelta(t, 100.0, rg.Score, 1e-9)
	}
}

func TestRankGarageWithoutOffers(t *testing.T) {
	avail := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	garages := []Garage{
		{ID: "no-offers", NextAvailability: avail},
		{ID: "with-offer", NextAvailability: avail, Offers: []Offer{{Price: 75}}},
	}

	ranked := Rank(garages, nil, []Criterion{ByPrice})
	require.Len(t, ranked, 2)
	assert.Equal(t, "with-offer", ranked[0].ID)
	assert.Equal(t, "no-offers", ranked[1].ID)

	// The sentinel price ranks the offerless garage last but its score
	// stays a real number.
	assert.False(t, math.IsNaN(ranked[1].Score), "score must not be NaN")
	assert.InDelta(t, 0.0, ranked[1].Score, 1e-9)
}

func TestRankSoonerAvailabilityWins(t *testing.T) {
	garages := []Garage{
		{ID: "later", NextAvailability: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)},
		{ID: "sooner", NextAvailability: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	ranked := Rank(garages, nil, []Criterion{ByAvailability})
	require.Len(t, ranked, 2)
	assert.Equal(t, "sooner", ranked[0].ID)
	assert.InDelta(t, 25.0, ranked[0].Score, 1e-9)
}

func TestRankEmptyInputs(t *testing.T) {
	assert.Empty(t, Rank(nil, nil, []Criterion{ByPrice}))

	// No criteria means no scoring: candidates come back in input order,
	// all at zero.
	garages := []Garage{{ID: "a"}, {ID: "b"}}
	ranked := Rank(garages, nil, nil)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, 0.0, ranked[0].Score)
}
