package snap

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Create dumps every entity into a new snapshot set. Entities are serialized
// and stored independently on a bounded worker pool; one entity's failure is
// recorded in the report and does not abort the others.
func (s *Service) Create() (*CreateReport, error) {
	id := NewID(s.clock.Now())

	entities, err := s.dumper.ListEntities()
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}

	s.logger.Info("create started", "id", id, "entities", len(entities))

	results := make([]ItemResult, len(entities))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, entity := range entities {
		i, entity := i, entity
		g.Go(func() error {
			results[i] = s.createOne(id, entity)
			return nil
		})
	}
	g.Wait()

	report := &CreateReport{SnapshotID: id, Results: results}
	s.logger.Info("create finished", "id", id, "failed", len(report.Failures()))
	return report, nil
}

// createOne serializes one entity and stores its archive.
func (s *Service) createOne(id string, entity Entity) ItemResult {
	result := ItemResult{Entity: entity.Name, StorageName: s.naming.Encode(id, entity.Name)}

	data, rows, err := s.dumper.Serialize(entity)
	if err != nil {
		result.Err = fmt.Errorf("serializing %s: %w", entity.Name, err)
		return result
	}
	result.Rows = rows

	encoded, err := s.codec.Encode(data)
	if err != nil {
		result.Err = fmt.Errorf("encoding %s: %w", entity.Name, err)
		return result
	}

	if err := s.storage.Put(result.StorageName, encoded); err != nil {
		result.Err = fmt.Errorf("storing %s: %w", result.StorageName, err)
		return result
	}

	s.logger.Debug("entity archived", "entity", entity.Name, "rows", rows, "file", result.StorageName)
	return result
}
