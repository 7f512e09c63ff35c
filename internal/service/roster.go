package service

import (
	"strings"

	"github.com/agorshkov/hockey-arena/internal/dedupe"
	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/leveling"
)

const lineupSeparator = ","

// EncodeLineup stores a lineup as a single comma-joined column value.
func EncodeLineup(ids []string) string { return strings.Join(ids, lineupSeparator) }

// DecodeLineup is the inverse of EncodeLineup; empty input yields nil.
func DecodeLineup(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, lineupSeparator)
}

// LoadRoster resolves lineup card ids against the catalog, preserving the
// request order and duplicates. Concurrent loads of the same lineup are
// collapsed into a single catalog query.
//
// A card id may appear in both rosters of a match: each side receives its
// own copies, so overlap is tolerated on purpose.
func LoadRoster(repo MatchRepo, ids []string) ([]game.PlayerCard, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyLineup
	}

	key := EncodeLineup(ids)
	v, err, _ := dedupe.RosterGroup.Do(key, func() (interface{}, error) {
		unique := make([]string, 0, len(ids))
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				unique = append(unique, id)
			}
		}
		cards, err := repo.GetCardsByIDs(unique)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]game.PlayerCard, len(cards))
		for _, c := range cards {
			byID[c.CardID] = c
		}
		roster := make([]game.PlayerCard, 0, len(ids))
		for _, id := range ids {
			card, ok := byID[id]
			if !ok {
				return nil, ErrUnknownCards
			}
			roster = append(roster, card)
		}
		return roster, nil
	})
	if err != nil {
		return nil, err
	}
	roster := v.([]game.PlayerCard)
	out := make([]game.PlayerCard, len(roster))
	copy(out, roster)
	return out, nil
}

// ownerLevel resolves the progression level of the player behind a token.
// Unknown tokens are level one; a bot has no profile and stays level one.
func ownerLevel(repo MatchRepo, token string) int {
	if token == "" {
		return 1
	}
	u, err := repo.GetStatsByToken(token)
	if err != nil || u == nil {
		return 1
	}
	return leveling.LevelFromXP(u.XP)
}
