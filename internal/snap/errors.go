package snap

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for snapshot-set resolution. Per-entity and per-file
// failures are never sentinels; they are collected into operation reports.
var (
	// ErrInvalidID indicates a string that is not a 14-digit snapshot id.
	ErrInvalidID = errors.New("invalid snapshot id")

	// ErrNotFound indicates that no snapshot set matches a requested id.
	ErrNotFound = errors.New("snapshot set not found")

	// ErrAmbiguous indicates that an id prefix matches more than one snapshot set.
	ErrAmbiguous = errors.New("ambiguous snapshot id")
)

// AmbiguousError reports the candidate ids an id prefix matched.
// It unwraps to ErrAmbiguous.
type AmbiguousError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous snapshot id %q matches %s", e.Prefix, strings.Join(e.Matches, ", "))
}

func (e *AmbiguousError) Unwrap() error { return ErrAmbiguous }
