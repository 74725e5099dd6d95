package snap

import "time"

// Policy describes the tiered retention curve applied by autoclean: dense
// near the present, sparser further back. All boundary arithmetic is done in
// UTC. The total kept count is bounded by
// RecentDays(worth of sets) + WeeklyBuckets + MonthlyMonths + one per year of
// older history.
type Policy struct {
	// RecentDays is the recent window: every set within the last RecentDays
	// days survives.
	RecentDays int

	// WeeklyBuckets is the number of consecutive 7-day buckets preceding the
	// recent window; the newest set per bucket survives.
	WeeklyBuckets int

	// MonthlyMonths is the number of calendar months preceding the current
	// month; the newest set per month survives.
	MonthlyMonths int
}

// DefaultPolicy is the standard 7-day / 4-week / 12-month curve.
func DefaultPolicy() Policy {
	return Policy{RecentDays: 7, WeeklyBuckets: 4, MonthlyMonths: 12}
}

const week = 7 * 24 * time.Hour

// Keep computes the set of snapshot ids that survive a prune at the reference
// instant now. Everything in the catalog not in the result is a deletion
// candidate. The four tiers are evaluated independently and their keep-sets
// unioned, so the selection is deterministic and idempotent: re-running with
// an unchanged catalog never yields further deletions.
func (p Policy) Keep(c *Catalog, now time.Time) map[string]bool {
	keep := make(map[string]bool)
	now = now.UTC()

	recentCutoff := now.AddDate(0, 0, -p.RecentDays)
	weeklyCutoff := recentCutoff.AddDate(0, 0, -7*p.WeeklyBuckets)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	oldestMonth := monthStart.AddDate(0, -p.MonthlyMonths, 0)

	weekly := make([]*SnapshotSet, p.WeeklyBuckets)
	monthly := make(map[time.Time]*SnapshotSet)
	yearly := make(map[int]*SnapshotSet)

	for _, s := range c.Sets {
		ts := s.CreatedAt

		if !ts.Before(recentCutoff) {
			// Recent window. Sets stamped after now (clock skew) are kept
			// too: being newer than the reference instant is never a reason
			// to prune.
			keep[s.ID] = true
		} else if !ts.Before(weeklyCutoff) {
			idx := int(recentCutoff.Sub(ts) / week)
			if idx >= p.WeeklyBuckets {
				// Exact lower boundary lands in the last bucket.
				idx = p.WeeklyBuckets - 1
			}
			if weekly[idx] == nil || ts.After(weekly[idx].CreatedAt) {
				weekly[idx] = s
			}
		}

		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
		switch {
		case month.Before(monthStart) && !month.Before(oldestMonth):
			if cur := monthly[month]; cur == nil || ts.After(cur.CreatedAt) {
				monthly[month] = s
			}
		case ts.Year() < oldestMonth.Year():
			if cur := yearly[ts.Year()]; cur == nil || ts.After(cur.CreatedAt) {
				yearly[ts.Year()] = s
			}
		}
	}

	for _, s := range weekly {
		if s != nil {
			keep[s.ID] = true
		}
	}
	for _, s := range monthly {
		keep[s.ID] = true
	}
	for _, s := range yearly {
		keep[s.ID] = true
	}
	return keep
}
