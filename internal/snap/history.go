package snap

import "time"

// HistoryEntry describes one snapshot set for presentation.
type HistoryEntry struct {
	ID        string
	CreatedAt time.Time
	Humanized string
	Files     []string
}

// History returns all snapshot sets in storage, newest first, with parsed
// human-readable timestamps and member file names.
func (s *Service) History() ([]HistoryEntry, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(catalog.Sets))
	for i := len(catalog.Sets) - 1; i >= 0; i-- {
		set := catalog.Sets[i]
		files := make([]string, len(set.Files))
		for j, f := range set.Files {
			files[j] = f.StorageName
		}
		entries = append(entries, HistoryEntry{
			ID:        set.ID,
			CreatedAt: set.CreatedAt,
			Humanized: set.CreatedAt.Format(humanLayout),
			Files:     files,
		})
	}
	return entries, nil
}
