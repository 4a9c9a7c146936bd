package fpindex

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SearchMunicipios filters the municipality list as the user types,
// best matches first. An empty query returns the full sorted list.
func (idx *Index) SearchMunicipios(ctx context.Context, query string, limit int) ([]string, Stats) {
	all, stats := idx.Municipios(ctx)
	query = strings.TrimSpace(query)

	var out []string
	if query == "" {
		out = all
	} else {
		matches := fuzzy.Find(query, all)
		out = make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, m.Str)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, stats
}
