// Package loader reads the persisted file tree back and inserts records into
// the target backend. Loading is best-effort and non-transactional: each
// record's outcome is collected individually, a failure never aborts the
// batch, and no existence checks are made, so re-running against a populated
// backend duplicates rows.
package loader

// Result records the outcome of loading one record or asset.
type Result struct {
	Name string
	Err  error
}

// Succeeded counts results without an error.
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts results with an error.
func Failed(results []Result) int {
	return len(results) - Succeeded(results)
}
