package snap

// Entity is one logical table or collection whose rows are dumped as a unit.
// Names are assumed to be filesystem-safe identifiers; they become part of
// archive storage names.
type Entity struct {
	Name string
}

// Dumper is the data-access collaborator that enumerates entities and
// produces/consumes their serialized row data. The core never inspects how
// rows are represented; payloads are opaque bytes.
type Dumper interface {
	// ListEntities returns the entities to back up, in a stable order.
	// An empty list is valid.
	ListEntities() ([]Entity, error)

	// Serialize dumps all rows of one entity, returning the payload and the
	// number of rows it contains.
	Serialize(entity Entity) (data []byte, rows int64, err error)

	// Deserialize loads a payload back into one entity, returning the number
	// of rows restored.
	Deserialize(entity Entity, data []byte) (rows int64, err error)
}
