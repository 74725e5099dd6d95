package snap

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ArchiveFile is one entity's serialized data within one snapshot set.
type ArchiveFile struct {
	SnapshotID  string
	Entity      string
	StorageName string
}

// SnapshotSet groups all archive files sharing one snapshot id.
// CreatedAt is derived solely from the id; storage transports are not
// trusted to preserve file modification times.
type SnapshotSet struct {
	ID        string
	CreatedAt time.Time
	Files     []ArchiveFile
}

// Catalog is the ordered collection of all snapshot sets found in storage,
// oldest first. It is rebuilt fresh on every operation that needs it; the
// storage transport is the sole source of truth.
type Catalog struct {
	Sets []*SnapshotSet
}

// BuildCatalog decodes every storage name under the given naming scheme,
// groups the recognized ones by snapshot id, and orders the resulting sets by
// timestamp ascending. Names that do not decode are silently ignored.
// Groups whose id decodes but is not a valid timestamp are dropped and
// returned as corrupt ids, never kept with a zero timestamp.
func BuildCatalog(naming Naming, storageNames []string) (*Catalog, []string) {
	groups := make(map[string][]ArchiveFile)
	for _, name := range storageNames {
		id, entity, ok := naming.Decode(name)
		if !ok {
			continue
		}
		groups[id] = append(groups[id], ArchiveFile{
			SnapshotID:  id,
			Entity:      entity,
			StorageName: name,
		})
	}

	c := &Catalog{}
	var corrupt []string
	for id, files := range groups {
		ts, err := ParseID(id)
		if err != nil {
			corrupt = append(corrupt, id)
			continue
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Entity < files[j].Entity })
		c.Sets = append(c.Sets, &SnapshotSet{ID: id, CreatedAt: ts, Files: files})
	}

	// Ids sort lexically in chronological order, so this is a stable
	// tie-break as well as a time ordering.
	sort.Slice(c.Sets, func(i, j int) bool { return c.Sets[i].ID < c.Sets[j].ID })
	sort.Strings(corrupt)
	return c, corrupt
}

// IDs returns the snapshot ids in the catalog, oldest first.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Sets))
	for i, s := range c.Sets {
		ids[i] = s.ID
	}
	return ids
}

// Find resolves a user-supplied id string to a snapshot set. An exact match
// wins; otherwise a prefix matching exactly one set is accepted. Fails with
// ErrNotFound when nothing matches and ErrAmbiguous when the prefix matches
// more than one set.
func (c *Catalog) Find(idOrPrefix string) (*SnapshotSet, error) {
	if idOrPrefix == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	var matches []*SnapshotSet
	for _, s := range c.Sets {
		if s.ID == idOrPrefix {
			return s, nil
		}
		if strings.HasPrefix(s.ID, idOrPrefix) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, s := range matches {
			ids[i] = s.ID
		}
		return nil, &AmbiguousError{Prefix: idOrPrefix, Matches: ids}
	}
}
