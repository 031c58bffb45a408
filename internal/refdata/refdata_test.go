package refdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgscope/internal/refdata"
)

func TestEstimateCreationDate_AnchorsExact(t *testing.T) {
	for _, a := range refdata.Anchors() {
		got := refdata.EstimateCreationDate(a.ID)
		assert.True(t, got.Equal(a.Date), "anchor %d: got %s, want %s", a.ID, got, a.Date)
	}
}

func TestEstimateCreationDate_KnownIdentifiers(t *testing.T) {
	cases := []struct {
		id   int64
		want time.Time
	}{
		{100000000, time.Date(2013, time.August, 1, 0, 0, 0, 0, time.UTC)},
		{1273841502, time.Date(2020, time.August, 13, 0, 0, 0, 0, time.UTC)},
		{2000000000, time.Date(2022, time.December, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := refdata.EstimateCreationDate(tc.id)
		assert.True(t, got.Equal(tc.want), "id %d: got %s, want %s", tc.id, got, tc.want)
	}
}

// The heuristic picks a single nearest anchor, so the estimate jumps
// where the nearest anchor changes. These values pin that behavior; do
// not "fix" it.
func TestEstimateCreationDate_AnchorBoundaryDiscontinuity(t *testing.T) {
	// 686920751 is equidistant from the first two anchors; the tie keeps
	// the first. One identifier later the second anchor wins.
	atBoundary := refdata.EstimateCreationDate(686920751)
	pastBoundary := refdata.EstimateCreationDate(686920752)

	assert.Equal(t, 2013, atBoundary.Year())
	assert.Equal(t, 2020, pastBoundary.Year())

	jump := pastBoundary.Sub(atBoundary)
	require.Greater(t, jump, 6*365*24*time.Hour, "expected a multi-year jump across the boundary")
}

func TestEstimateCreationDate_ExtrapolatesUnclamped(t *testing.T) {
	low := refdata.EstimateCreationDate(1)
	assert.True(t, low.Before(time.Date(2013, time.August, 1, 0, 0, 0, 0, time.UTC)))

	high := refdata.EstimateCreationDate(3_000_000_000)
	assert.True(t, high.After(time.Date(2022, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAgeBetween(t *testing.T) {
	now := time.Date(2023, time.September, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "0 years, 0 months, 0 days", refdata.AgeBetween(now, now))
	assert.Equal(t, "0 years, 0 months, 0 days", refdata.AgeBetween(now.Add(time.Hour), now))

	created := time.Date(2020, time.August, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 years, 1 months, 2 days", refdata.AgeBetween(created, now))

	oneDay := now.AddDate(0, 0, -1)
	assert.Equal(t, "0 years, 0 months, 1 days", refdata.AgeBetween(oneDay, now))
}

func TestFormatAge_NeverNegative(t *testing.T) {
	// A creation date in the future must still render zeros.
	assert.Equal(t, "0 years, 0 months, 0 days", refdata.FormatAge(time.Now().UTC().Add(48*time.Hour)))
}

func TestDCLocation(t *testing.T) {
	assert.Equal(t, "FRA, Frankfurt, Germany, DE", refdata.DCLocation(8))
	assert.Equal(t, "Unknown", refdata.DCLocation(999))
	assert.Equal(t, "Unknown", refdata.DCLocation(0))
}
