package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekParam(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  string
		expectErr bool
	}{
		{name: "monday stays put", raw: "2026-03-02", expected: "2026-03-02"},
		{name: "wednesday snaps back", raw: "2026-03-04", expected: "2026-03-02"},
		{name: "sunday snaps to its monday", raw: "2026-03-08", expected: "2026-03-02"},
		{name: "garbage rejected", raw: "next-week", expectErr: true},
		{name: "wrong layout rejected", raw: "02/03/2026", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			weekStart, err := parseWeekParam(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, weekStart.Format("2006-01-02"))
			assert.Equal(t, time.Monday, weekStart.Weekday())
		})
	}
}

func TestParseWeekParamEmptyDefaultsToCurrentWeek(t *testing.T) {
	weekStart, err := parseWeekParam("")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, weekStart.Weekday())
	assert.False(t, weekStart.After(time.Now()))
}
