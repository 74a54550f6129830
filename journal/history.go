package journal

import "sort"

// History returns entries sorted by timestamp descending, for the journal
// read surface. limit <= 0 means no limit; skip skips that many entries after
// sorting. Equal timestamps keep insertion order.
func (s *Store) History(limit, skip int) []Entry {
	entries := s.Entries()

	sort.SliceStable(entries, func(i, j int) bool {
		return entryTime(entries[i]).After(entryTime(entries[j]))
	})

	if skip > 0 {
		if skip >= len(entries) {
			return []Entry{}
		}
		entries = entries[skip:]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// MergedHistory is the read-only union view across stores: entries deduped
// by id, sorted timestamp-descending, paginated like History. Nothing is
// persisted.
func MergedHistory(limit, skip int, stores ...*Store) []Entry {
	seen := make(map[string]struct{})
	var merged []Entry
	for _, s := range stores {
		for _, e := range s.Entries() {
			if _, ok := seen[e.ID]; ok {
				continue
			}
			seen[e.ID] = struct{}{}
			merged = append(merged, e)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return entryTime(merged[i]).After(entryTime(merged[j]))
	})

	if skip > 0 {
		if skip >= len(merged) {
			return []Entry{}
		}
		merged = merged[skip:]
	}
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// Sync merges every store's entries into every other store so that all
// replicas converge to the same id set. Safe because Merge is an idempotent,
// commutative, first-writer-wins union.
func Sync(stores ...*Store) {
	for i, src := range stores {
		entries := src.Entries()
		for j, dst := range stores {
			if i == j {
				continue
			}
			dst.Merge(entries)
		}
	}
}
