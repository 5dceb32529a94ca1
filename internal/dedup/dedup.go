package dedup

import "github.com/Pituitary-Normal-Space/database-searcher/internal/domain"

// Dedupe collapses duplicate citations, keeping the first-encountered record
// for each identity class and preserving first-seen order. Callers pass
// PubMed-origin citations before Embase-origin ones so a cross-source
// duplicate survives as its PubMed record.
//
// Two citations are duplicates when their identity keys match (see Key), or
// defensively, when they come from the same source with the same id - a
// source should not return an id twice, but merge if it does.
//
// No field-level merging happens across duplicates: the survivor keeps its
// own fields even when a later duplicate is more complete. Dedupe is
// idempotent, and the set of surviving identities does not depend on input
// order (the chosen representatives and their order do).
func Dedupe(citations []domain.Citation, cfg Config) (unique []domain.Citation, removed int) {
	unique = make([]domain.Citation, 0, len(citations))
	seenKeys := make(map[string]struct{}, len(citations))
	seenIDs := make(map[string]struct{}, len(citations))

	for _, c := range citations {
		key := Key(c, cfg)
		sourceID := string(c.Source) + "\x00" + c.ID

		if _, dup := seenKeys[key]; dup {
			removed++
			continue
		}
		if _, dup := seenIDs[sourceID]; dup {
			removed++
			continue
		}

		seenKeys[key] = struct{}{}
		seenIDs[sourceID] = struct{}{}
		unique = append(unique, c)
	}

	return unique, removed
}
