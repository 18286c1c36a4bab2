package workspace

import "mapnote/internal/domain/entity"

// SearchBox tracks suggestion fetches for one map. Every issued fetch takes a
// strictly increasing sequence number and a result is applied only if no
// newer one has been applied before it.
type SearchBox struct {
	issued  uint64
	applied uint64
	current entity.Suggestions
}

// Issue reserves the sequence number for a new fetch.
func (b *SearchBox) Issue() uint64 {
	b.issued++

	return b.issued
}

// Apply stores s unless a newer result is already shown. It reports whether s
// was applied.
func (b *SearchBox) Apply(s entity.Suggestions) bool {
	if s.Seq <= b.applied {
		return false
	}
	if s.Places == nil {
		s.Places = []entity.Place{}
	}
	b.applied = s.Seq
	b.current = s

	return true
}

// Clear empties the list without a fetch, as for a too-short query.
// It still supersedes any fetch issued before it.
func (b *SearchBox) Clear(query string) {
	seq := b.Issue()
	b.applied = seq
	b.current = entity.Suggestions{Query: query, Seq: seq, Places: []entity.Place{}}
}

// Current returns the last applied suggestions.
func (b *SearchBox) Current() entity.Suggestions {
	out := b.current
	out.Places = append([]entity.Place{}, b.current.Places...)

	return out
}
