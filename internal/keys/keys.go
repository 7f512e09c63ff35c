package keys

import (
	"sort"
	"strings"
)

// PairKeyFromTokens produces a canonical key for a set of participant
// tokens. Behavior: trims, lower-cases, drops empties, sorts and joins
// with a colon, so the key is stable regardless of argument order. Used
// to detect an already-live match between the same two players.
func PairKeyFromTokens(tokens ...string) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		s := strings.ToLower(strings.TrimSpace(t))
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, ":")
}
