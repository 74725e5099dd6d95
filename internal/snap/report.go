package snap

// ItemResult is the outcome of one per-entity or per-file unit of work
// within an operation. Failures are isolated: one item's error never aborts
// its siblings, and the final report lists successes and failures side by
// side.
type ItemResult struct {
	Entity      string
	StorageName string
	Rows        int64
	Err         error
}

// CreateReport aggregates the per-entity outcomes of one create operation.
// A partially failed snapshot set is a valid, if degraded, outcome: the
// surviving archives are still visible to the registry.
type CreateReport struct {
	SnapshotID string
	Results    []ItemResult
}

// RestoreReport aggregates the per-file outcomes of one restore operation.
type RestoreReport struct {
	SnapshotID string
	Results    []ItemResult
}

// DeleteReport aggregates the per-file outcomes of a remove operation.
// Aborted is set when the user declined the confirmation prompt; no files
// were touched in that case.
type DeleteReport struct {
	SnapshotID string
	Aborted    bool
	Results    []ItemResult
}

// AutocleanReport describes an autoclean run: the ids that survive the
// retention policy, the ids selected for deletion, and the per-file deletion
// outcomes. When Delete is empty no confirmation is requested and the run is
// a no-op.
type AutocleanReport struct {
	Keep    []string
	Delete  []string
	Aborted bool
	Results []ItemResult
}

func failures(results []ItemResult) []ItemResult {
	var failed []ItemResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Failures returns the results that carry an error.
func (r *CreateReport) Failures() []ItemResult    { return failures(r.Results) }
func (r *RestoreReport) Failures() []ItemResult   { return failures(r.Results) }
func (r *DeleteReport) Failures() []ItemResult    { return failures(r.Results) }
func (r *AutocleanReport) Failures() []ItemResult { return failures(r.Results) }
