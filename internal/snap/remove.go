package snap

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Remove deletes one snapshot set after confirmation. The target is resolved
// by exact id or unambiguous prefix; resolution failure aborts before
// anything is touched. Each member file is deleted independently and all
// failures are collected into the report.
func (s *Service) Remove(idOrPrefix string) (*DeleteReport, error) {
	set, err := s.resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Delete snapshot set %s (%s)?\n", set.ID, set.CreatedAt.Format(humanLayout))
	for _, f := range set.Files {
		fmt.Fprintf(&summary, "  %s\n", f.StorageName)
	}

	ok, err := s.confirm.Confirm(summary.String())
	if err != nil {
		return nil, fmt.Errorf("requesting confirmation: %w", err)
	}
	if !ok {
		return &DeleteReport{SnapshotID: set.ID, Aborted: true}, nil
	}

	results := s.deleteFiles(set.Files)
	report := &DeleteReport{SnapshotID: set.ID, Results: results}
	s.logger.Info("snapshot set removed", "id", set.ID, "failed", len(report.Failures()))
	return report, nil
}

// deleteFiles removes archives on the worker pool, one result per file.
// A failed delete never blocks attempting the rest.
func (s *Service) deleteFiles(files []ArchiveFile) []ItemResult {
	results := make([]ItemResult, len(files))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			result := ItemResult{Entity: file.Entity, StorageName: file.StorageName}
			if err := s.storage.Delete(file.StorageName); err != nil {
				result.Err = fmt.Errorf("deleting %s: %w", file.StorageName, err)
			}
			results[i] = result
			return nil
		})
	}
	g.Wait()
	return results
}
