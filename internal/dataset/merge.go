package dataset

import "github.com/sells-group/caprate-cli/internal/model"

// Merge folds incoming rows into the existing canonical table.
//
// Incoming rows whose natural key is already present are dropped before
// concatenation, so on a key conflict the existing row's values win. This
// is the opposite of CombineAll, where later files win.
//
// The returned table is sorted by (year, half, sector, market) unless
// existing was empty, in which case incoming is returned as-is.
// updatedCount is always 0: update tracking is not implemented.
func Merge(existing, incoming []Row) (merged []Row, newCount, updatedCount int) {
	if len(existing) == 0 {
		return incoming, len(incoming), 0
	}

	seen := make(map[model.NaturalKey]struct{}, len(existing))
	for _, r := range existing {
		seen[r.Key()] = struct{}{}
	}

	var fresh []Row
	for _, r := range incoming {
		if _, dup := seen[r.Key()]; !dup {
			fresh = append(fresh, r)
		}
	}

	merged = make([]Row, 0, len(existing)+len(fresh))
	merged = append(merged, existing...)
	merged = append(merged, fresh...)
	merged = dedupeKeepLast(merged)
	sortRows(merged)

	return merged, len(fresh), 0
}
