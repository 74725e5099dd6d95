package testutil

import (
	"fmt"
	"sync"

	"dbsnap/internal/snap"
)

// StubDumper is an in-memory Dumper whose entities and payloads are fixed up
// front. Entities listed in Fail error on both Serialize and Deserialize.
// Restored payloads are recorded for assertions. Safe for concurrent use.
type StubDumper struct {
	mu       sync.Mutex
	Entities []snap.Entity
	Payloads map[string][]byte // entity name -> serialized payload
	Rows     map[string]int64  // entity name -> row count
	Fail     map[string]bool   // entity name -> force an error
	Restored map[string][]byte // entity name -> last deserialized payload
}

// NewStubDumper creates a StubDumper with one payload per given entity name.
// Each entity's payload is "rows of <name>" with a row count of 1.
func NewStubDumper(names ...string) *StubDumper {
	d := &StubDumper{
		Payloads: make(map[string][]byte),
		Rows:     make(map[string]int64),
		Fail:     make(map[string]bool),
		Restored: make(map[string][]byte),
	}
	for _, name := range names {
		d.Entities = append(d.Entities, snap.Entity{Name: name})
		d.Payloads[name] = []byte("rows of " + name)
		d.Rows[name] = 1
	}
	return d
}

func (d *StubDumper) ListEntities() ([]snap.Entity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]snap.Entity(nil), d.Entities...), nil
}

func (d *StubDumper) Serialize(entity snap.Entity) ([]byte, int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Fail[entity.Name] {
		return nil, 0, fmt.Errorf("stub serialize failure for %s", entity.Name)
	}
	payload, ok := d.Payloads[entity.Name]
	if !ok {
		return nil, 0, fmt.Errorf("unknown entity: %s", entity.Name)
	}
	return payload, d.Rows[entity.Name], nil
}

func (d *StubDumper) Deserialize(entity snap.Entity, data []byte) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Fail[entity.Name] {
		return 0, fmt.Errorf("stub deserialize failure for %s", entity.Name)
	}
	d.Restored[entity.Name] = append([]byte(nil), data...)
	return d.Rows[entity.Name], nil
}

// Compile-time check that StubDumper implements snap.Dumper interface
var _ snap.Dumper = (*StubDumper)(nil)
