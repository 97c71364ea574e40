package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamensam88/vitrio/internal/search"
)

func TestParseCriteria(t *testing.T) {
	testCases := []struct {
		name     string
		sortBy   []string
		expected []search.Criterion
	}{
		{name: "known criteria pass through", sortBy: []string{"distance", "price"}, expected: []search.Criterion{search.ByDistance, search.ByPrice}},
		{name: "case insensitive", sortBy: []string{"Distance", "PRICE", "Availability"}, expected: []search.Criterion{search.ByDistance, search.ByPrice, search.ByAvailability}},
		{name: "unknown values dropped", sortBy: []string{"rating", "price", "karma"}, expected: []search.Criterion{search.ByPrice}},
		{name: "empty input", sortBy: nil, expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseCriteria(tc.sortBy))
		})
	}
}
