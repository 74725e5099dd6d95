package snap

import (
	"fmt"
	"strings"
)

// Autoclean applies the retention policy: it rebuilds the catalog, computes
// the keep-set for the current instant, presents the keep/delete split for
// confirmation and deletes everything outside the keep-set. An empty catalog
// or a catalog with nothing to delete is a no-op and never prompts.
func (s *Service) Autoclean() (*AutocleanReport, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	keepSet := s.policy.Keep(catalog, now)

	report := &AutocleanReport{}
	var doomed []*SnapshotSet
	for _, set := range catalog.Sets {
		if keepSet[set.ID] {
			report.Keep = append(report.Keep, set.ID)
		} else {
			report.Delete = append(report.Delete, set.ID)
			doomed = append(doomed, set)
		}
	}

	if len(doomed) == 0 {
		s.logger.Info("autoclean: nothing to delete", "kept", len(report.Keep))
		return report, nil
	}

	ok, err := s.confirm.Confirm(s.autocleanSummary(report))
	if err != nil {
		return nil, fmt.Errorf("requesting confirmation: %w", err)
	}
	if !ok {
		report.Aborted = true
		return report, nil
	}

	for _, set := range doomed {
		report.Results = append(report.Results, s.deleteFiles(set.Files)...)
	}

	s.logger.Info("autoclean finished",
		"kept", len(report.Keep),
		"deleted", len(report.Delete),
		"failed", len(report.Failures()))
	return report, nil
}

func (s *Service) autocleanSummary(report *AutocleanReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Keeping %d snapshot set(s):\n", len(report.Keep))
	for _, id := range report.Keep {
		fmt.Fprintf(&b, "  %s\n", id)
	}
	fmt.Fprintf(&b, "Deleting %d snapshot set(s):\n", len(report.Delete))
	for _, id := range report.Delete {
		fmt.Fprintf(&b, "  %s\n", id)
	}
	return b.String()
}
