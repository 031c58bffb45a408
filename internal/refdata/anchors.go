package refdata

import (
	"fmt"
	"time"
)

// Anchor pins a known account identifier to a known registration date.
type Anchor struct {
	ID   int64
	Date time.Time
}

// anchors is ordered ascending by ID. Nearest-anchor lookup breaks ties
// by keeping the earliest entry in this slice.
var anchors = []Anchor{
	{ID: 100_000_000, Date: utcDate(2013, time.August, 1)},
	{ID: 1_273_841_502, Date: utcDate(2020, time.August, 13)},
	{ID: 1_500_000_000, Date: utcDate(2021, time.May, 1)},
	{ID: 2_000_000_000, Date: utcDate(2022, time.December, 1)},
}

// idsPerDay is the assumed identifier allocation rate.
const idsPerDay = 20_000_000

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Anchors returns a copy of the anchor table.
func Anchors() []Anchor {
	out := make([]Anchor, len(anchors))
	copy(out, anchors)
	return out
}

// EstimateCreationDate extrapolates a registration date for id from the
// single nearest anchor. The offset is fractional days, so the result
// carries sub-day precision. Extrapolation is intentionally unclamped:
// identifiers far outside the anchor range produce far-out dates, and the
// estimate jumps where the nearest anchor changes. That matches the
// heuristic this service ports, so keep it.
func EstimateCreationDate(id int64) time.Time {
	nearest := anchors[0]
	best := absDiff(id, nearest.ID)
	for _, a := range anchors[1:] {
		if d := absDiff(id, a.ID); d < best {
			nearest, best = a, d
		}
	}
	offsetDays := float64(id-nearest.ID) / idsPerDay
	return nearest.Date.Add(time.Duration(offsetDays * 24 * float64(time.Hour)))
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

// FormatAge renders the calendar distance between created and now.
func FormatAge(created time.Time) string {
	return AgeBetween(created, time.Now().UTC())
}

// AgeBetween decomposes now-created into whole calendar years, months and
// days, rendered as "<Y> years, <M> months, <D> days". Components are
// never negative; a created date at or after now yields all zeros.
func AgeBetween(created, now time.Time) string {
	if !created.Before(now) {
		return "0 years, 0 months, 0 days"
	}
	years := 0
	for !created.AddDate(years+1, 0, 0).After(now) {
		years++
	}
	months := 0
	for !created.AddDate(years, months+1, 0).After(now) {
		months++
	}
	days := int(now.Sub(created.AddDate(years, months, 0)).Hours() / 24)
	return fmt.Sprintf("%d years, %d months, %d days", years, months, days)
}
