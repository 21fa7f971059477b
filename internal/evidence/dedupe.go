package evidence

type dedupeKey struct {
	name   string
	source string
}

// Dedupe returns a new slice preserving first-seen order with at most one
// record per (Normalize(CompanyName), SourceType) key. Later duplicates are
// dropped, never merged. Cross-source records for the same company are kept
// distinct.
func Dedupe(items []Evidence) []Evidence {
	seen := make(map[dedupeKey]struct{}, len(items))
	out := make([]Evidence, 0, len(items))
	for _, ev := range items {
		key := dedupeKey{name: Normalize(ev.CompanyName), source: ev.SourceType}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ev)
	}
	return out
}
