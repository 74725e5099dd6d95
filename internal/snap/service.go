package snap

import "fmt"

// Service is the orchestration layer that coordinates the registry, the
// retention policy, the storage transport and the data-access collaborator to
// perform the snapshot lifecycle operations exposed by the CLI.
type Service struct {
	storage Storage
	dumper  Dumper
	codec   Codec
	confirm Confirmer
	logger  Logger
	clock   Clock
	naming  Naming
	policy  Policy
	workers int
}

// NewService creates a Service with the provided dependencies. workers bounds
// the per-item concurrency within one operation; values below 1 are treated
// as 1.
func NewService(storage Storage, dumper Dumper, codec Codec, confirm Confirmer, logger Logger, clock Clock, naming Naming, policy Policy, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		storage: storage,
		dumper:  dumper,
		codec:   codec,
		confirm: confirm,
		logger:  logger,
		clock:   clock,
		naming:  naming,
		policy:  policy,
		workers: workers,
	}
}

// loadCatalog rebuilds the snapshot-set catalog from the storage transport.
// The transport is the sole source of truth; there is no persisted index.
func (s *Service) loadCatalog() (*Catalog, error) {
	names, err := s.storage.List()
	if err != nil {
		return nil, fmt.Errorf("listing storage: %w", err)
	}

	catalog, corrupt := BuildCatalog(s.naming, names)
	for _, id := range corrupt {
		s.logger.Warn("dropping snapshot set with unparseable id", "id", id)
	}
	return catalog, nil
}

// resolve looks up a snapshot set by exact id or unambiguous prefix.
func (s *Service) resolve(idOrPrefix string) (*SnapshotSet, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.Find(idOrPrefix)
}
