package snap

import (
	"fmt"
	"time"
)

// idLayout is the canonical snapshot id format: 14 digits, second resolution,
// always UTC. Ids sort lexically in chronological order.
const idLayout = "20060102150405"

// humanLayout is how parsed ids are presented to users.
const humanLayout = "Jan 02, 2006 at 15:04:05"

// NewID derives a snapshot id from the given instant. Two snapshots created
// within the same second share an id and are treated as one snapshot set.
func NewID(t time.Time) string {
	return t.UTC().Format(idLayout)
}

// ParseID is the inverse of NewID. It fails with ErrInvalidID unless id is
// exactly 14 digits forming a valid UTC timestamp.
func ParseID(id string) (time.Time, error) {
	if len(id) != len(idLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	t, err := time.ParseInLocation(idLayout, id, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return t, nil
}

// HumanizeID renders a snapshot id as a human-readable date, e.g.
// "Aug 30, 2026 at 14:03:59".
func HumanizeID(id string) (string, error) {
	t, err := ParseID(id)
	if err != nil {
		return "", err
	}
	return t.Format(humanLayout), nil
}
