package snap

import (
	"sort"
	"testing"
	"time"
)

// catalogAt builds a catalog of one-file snapshot sets at the given instants.
func catalogAt(times ...time.Time) *Catalog {
	c := &Catalog{}
	for _, ts := range times {
		ts = ts.UTC().Truncate(time.Second)
		c.Sets = append(c.Sets, &SnapshotSet{ID: NewID(ts), CreatedAt: ts})
	}
	sort.Slice(c.Sets, func(i, j int) bool { return c.Sets[i].ID < c.Sets[j].ID })
	return c
}

func keptIDs(keep map[string]bool) []string {
	ids := make([]string, 0, len(keep))
	for id := range keep {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var retentionNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestPolicy_Keep_RecentWindow(t *testing.T) {
	p := DefaultPolicy()

	t.Run("single set two hours old", func(t *testing.T) {
		c := catalogAt(retentionNow.Add(-2 * time.Hour))
		keep := p.Keep(c, retentionNow)
		if len(keep) != 1 || !keep[c.Sets[0].ID] {
			t.Errorf("keep = %v, want just %s", keptIDs(keep), c.Sets[0].ID)
		}
	})

	t.Run("keeps every set within seven days regardless of density", func(t *testing.T) {
		c := catalogAt(
			retentionNow.Add(-1*time.Hour),
			retentionNow.Add(-2*time.Hour),
			retentionNow.AddDate(0, 0, -3),
			retentionNow.AddDate(0, 0, -6),
		)
		keep := p.Keep(c, retentionNow)
		if len(keep) != 4 {
			t.Errorf("keep = %v, want all 4", keptIDs(keep))
		}
	})

	t.Run("exactly seven days old is inside the window", func(t *testing.T) {
		c := catalogAt(retentionNow.AddDate(0, 0, -7))
		keep := p.Keep(c, retentionNow)
		if len(keep) != 1 {
			t.Errorf("keep = %v, want 1", keptIDs(keep))
		}
	})

	t.Run("set stamped after now is kept", func(t *testing.T) {
		c := catalogAt(retentionNow.Add(30 * time.Minute))
		keep := p.Keep(c, retentionNow)
		if len(keep) != 1 {
			t.Errorf("keep = %v, want 1", keptIDs(keep))
		}
	})
}

func TestPolicy_Keep_WeeklyTier(t *testing.T) {
	p := DefaultPolicy()

	t.Run("different buckets keep one each", func(t *testing.T) {
		// day-3 is recent; day-10 and day-17 land in different weekly buckets.
		c := catalogAt(
			retentionNow.AddDate(0, 0, -3),
			retentionNow.AddDate(0, 0, -10),
			retentionNow.AddDate(0, 0, -17),
		)
		keep := p.Keep(c, retentionNow)
		if len(keep) != 3 {
			t.Errorf("keep = %v, want 3", keptIDs(keep))
		}
	})

	t.Run("same bucket keeps only the newest", func(t *testing.T) {
		older := retentionNow.AddDate(0, 0, -10)
		newer := retentionNow.AddDate(0, 0, -9)
		c := catalogAt(older, newer)
		keep := p.Keep(c, retentionNow)
		if len(keep) != 1 || !keep[NewID(newer)] {
			t.Errorf("keep = %v, want just %s", keptIDs(keep), NewID(newer))
		}
	})

	t.Run("exactly thirty-five days old lands in the last bucket", func(t *testing.T) {
		c := catalogAt(retentionNow.AddDate(0, 0, -35))
		keep := p.Keep(c, retentionNow)
		if len(keep) != 1 {
			t.Errorf("keep = %v, want 1", keptIDs(keep))
		}
	})
}

func TestPolicy_Keep_MonthlyTier(t *testing.T) {
	p := DefaultPolicy()

	t.Run("ten sets in one month keep only the newest", func(t *testing.T) {
		var times []time.Time
		for day := 1; day <= 10; day++ {
			times = append(times, time.Date(2026, 6, day, 8, 0, 0, 0, time.UTC))
		}
		c := catalogAt(times...)
		keep := p.Keep(c, retentionNow)
		want := NewID(time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC))
		if len(keep) != 1 || !keep[want] {
			t.Errorf("keep = %v, want just %s", keptIDs(keep), want)
		}
	})

	t.Run("one per month across several months", func(t *testing.T) {
		c := catalogAt(
			time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		)
		keep := p.Keep(c, retentionNow)
		if len(keep) != 3 {
			t.Errorf("keep = %v, want one per month (3)", keptIDs(keep))
		}
		if !keep[NewID(time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC))] {
			t.Errorf("April keeps %v, want the newest April set", keptIDs(keep))
		}
	})
}

func TestPolicy_Keep_YearlyTier(t *testing.T) {
	p := DefaultPolicy()

	// With now in Aug 2026 the monthly tier reaches back to Aug 2025, so the
	// yearly tier covers 2024 and earlier.
	c := catalogAt(
		time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	keep := p.Keep(c, retentionNow)
	if len(keep) != 2 {
		t.Fatalf("keep = %v, want one per year (2)", keptIDs(keep))
	}
	if !keep[NewID(time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC))] {
		t.Errorf("2023 keeps %v, want the newest 2023 set", keptIDs(keep))
	}
	if !keep[NewID(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))] {
		t.Errorf("2024 set not kept: %v", keptIDs(keep))
	}
}

func TestPolicy_Keep_EmptyCatalog(t *testing.T) {
	keep := DefaultPolicy().Keep(&Catalog{}, retentionNow)
	if len(keep) != 0 {
		t.Errorf("keep = %v, want empty", keptIDs(keep))
	}
}

func TestPolicy_Keep_Idempotent(t *testing.T) {
	p := DefaultPolicy()
	c := catalogAt(
		retentionNow.Add(-2*time.Hour),
		retentionNow.AddDate(0, 0, -10),
		retentionNow.AddDate(0, 0, -11),
		retentionNow.AddDate(0, 0, -20),
		time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
	)

	keep := p.Keep(c, retentionNow)

	// Prune the catalog down to the keep-set and run the selector again:
	// nothing further may become a deletion candidate.
	pruned := &Catalog{}
	for _, s := range c.Sets {
		if keep[s.ID] {
			pruned.Sets = append(pruned.Sets, s)
		}
	}
	again := p.Keep(pruned, retentionNow)
	for _, s := range pruned.Sets {
		if !again[s.ID] {
			t.Errorf("second run would delete %s", s.ID)
		}
	}
}

func TestPolicy_Keep_BucketLocality(t *testing.T) {
	p := DefaultPolicy()

	base := []time.Time{
		retentionNow.AddDate(0, 0, -10),
		retentionNow.AddDate(0, 0, -20),
		time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
	}
	before := p.Keep(catalogAt(base...), retentionNow)

	// Add a second, older set to the day-10 bucket: only that bucket's
	// representative may change.
	after := p.Keep(catalogAt(append(base, retentionNow.AddDate(0, 0, -12))...), retentionNow)

	for id := range before {
		if !after[id] {
			t.Errorf("adding a set to one bucket dropped %s from another", id)
		}
	}
	if len(after) != len(before) {
		t.Errorf("kept %v, want same count as %v", keptIDs(after), keptIDs(before))
	}
}
