package strains

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 3

// Suggest returns up to three catalog names close to name, best first.
// Case is ignored; a name containing the query always qualifies.
func (c *Catalog) Suggest(name string) []string {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for i := range c.defs {
		n := c.defs[i].Name
		lower := strings.ToLower(n)
		dist := levenshtein.ComputeDistance(query, lower)
		if strings.Contains(lower, query) {
			dist = min(dist, 1)
		}
		if dist <= maxSuggestDistance {
			cands = append(cands, candidate{name: n, dist: dist})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})

	limit := min(len(cands), 3)
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = cands[i].name
	}
	return out
}
