package search

import (
	"sort"
	"time"
)

// Criterion selects which metrics take part in the weighted score.
type Criterion string

const (
	ByDistance     Criterion = "distance"
	ByPrice        Criterion = "price"
	ByAvailability Criterion = "availability"
)

// Relative importance of the criteria, fixed by product: distance beats price
// beats availability. A weighted sum lets the caller combine any subset of
// criteria in one ranking instead of a strict lexicographic sort.
const (
	weightDistance     = 40.0
	weightPrice        = 35.0
	weightAvailability = 25.0
)

// sentinelPrice stands in for the minimum offer price of a garage that has no
// offers at all. Large enough to rank such a garage last on price, finite so
// normalization never divides by infinity.
const sentinelPrice = 1e9

type Offer struct {
	ID              string  `json:"id"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
}

type Garage struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Address          string      `json:"address"`
	City             string      `json:"city"`
	Coordinates      Coordinates `json:"coordinates"`
	Rating           float64     `json:"rating"`
	NextAvailability time.Time   `json:"next_availability"`
	Offers           []Offer     `json:"offers"`
	HomeService      bool        `json:"home_service"`
	CourtesyVehicle  bool        `json:"courtesy_vehicle"`
}

// Filters are AND-combined: a garage is kept only when it provides every
// requested service. The zero value keeps everything.
type Filters struct {
	HomeService     bool `json:"home_service"`
	CourtesyVehicle bool `json:"courtesy_vehicle"`
}

type RankedGarage struct {
	Garage
	// Distance in km from the caller, nil when no caller location was given.
	Distance *float64 `json:"distance,omitempty"`
	Score    float64  `json:"score"`
}

// Filter keeps the garages satisfying every active service flag.
func Filter(garages []Garage, f Filters) []Garage {
	kept := make([]Garage, 0, len(garages))
	for _, g := range garages {
		if f.HomeService && !g.HomeService {
			continue
		}
		if f.CourtesyVehicle && !g.CourtesyVehicle {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}

// Rank orders garages best-first by a weighted sum of normalized metrics.
// Lower raw values (closer, cheaper, sooner) score higher. Criteria not in the
// active set contribute nothing; the distance criterion is dropped entirely
// when the caller location is unknown. An empty candidate set ranks to an
// empty result, never an error.
func Rank(garages []Garage, location *Coordinates, criteria []Criterion) []RankedGarage {
	results := make([]RankedGarage, 0, len(garages))
	for _, g := range garages {
		rg := RankedGarage{Garage: g}
		if location != nil {
			d := Distance(*location, g.Coordinates)
			rg.Distance = &d
		}
		results = append(results, rg)
	}
	if len(results) == 0 || len(criteria) == 0 {
		return results
	}

	active := map[Criterion]bool{}
	for _, c := range criteria {
		active[c] = true
	}
	if location == nil {
		delete(active, ByDistance)
	}

	// Min/max are taken over the whole candidate set so every pairwise
	// comparison normalizes against the same bounds.
	var minDist, maxDist float64
	first := true
	for _, rg := range results {
		if rg.Distance == nil {
			continue
		}
		if first || *rg.Distance < minDist {
			minDist = *rg.Distance
		}
		if first || *rg.Distance > maxDist {
			maxDist = *rg.Distance
		}
		first = false
	}

	prices := make([]float64, len(results))
	times := make([]float64, len(results))
	for i, rg := range results {
		prices[i] = minOfferPrice(rg.Offers)
		times[i] = float64(rg.NextAvailability.UnixMilli())
	}
	minPrice, maxPrice := bounds(prices)
	minTime, maxTime := bounds(times)

	for i := range results {
		score := 0.0
		if active[ByDistance] {
			// A garage with no computable distance takes the worst
			// observed one: penalized, not excluded.
			d := maxDist
			if results[i].Distance != nil {
				d = *results[i].Distance
			}
			score += invNorm(d, minDist, maxDist) * weightDistance
		}
		if active[ByPrice] {
			score += invNorm(prices[i], minPrice, maxPrice) * weightPrice
		}
		if active[ByAvailability] {
			score += invNorm(times[i], minTime, maxTime) * weightAvailability
		}
		results[i].Score = score
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// invNorm maps a raw value into [0,1] with lower raw values scoring higher.
// When all candidates tie on a metric it yields the maximum contribution for
// everyone rather than dividing by zero.
func invNorm(value, min, max float64) float64 {
	if max == min {
		return 1
	}
	return 1 - (value-min)/(max-min)
}

func minOfferPrice(offers []Offer) float64 {
	if len(offers) == 0 {
		return sentinelPrice
	}
	min := offers[0].Price
	for _, o := range offers[1:] {
		if o.Price < min {
			min = o.Price
		}
	}
	return min
}

func bounds(values []float64) (min, max float64) {
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
