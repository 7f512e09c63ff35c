package storage

import (
	"time"

	"github.com/agorshkov/hockey-arena/internal/game"
)

type Repository interface {
	// Card catalog (seeded from config, read-only at runtime).
	GetCards() ([]game.PlayerCard, error)
	GetCardsByIDs(ids []string) ([]game.PlayerCard, error)
	// GetRandomCards returns n random catalog cards; used to assemble bot
	// rosters for PvE matches.
	GetRandomCards(n int) ([]game.PlayerCard, error)

	CreateMatch(m *game.Match) error
	GetMatchByUUID(uuid string) (*game.Match, error)
	FindMatchByJoinCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	// UpdateStatsOnMatchEnd applies profile deltas (games, wins, streak)
	// and the leveling XP formula for every human participant.
	UpdateStatsOnMatchEnd(m *game.Match) error

	UpsertUser(token, name string) error
	GetStatsByToken(token string) (*game.User, error)
	GetTopPlayers(limit int) ([]game.User, error)

	// FindTimedOutMatches returns in-progress matches whose action
	// deadline is at or before the provided time. The caller decides how
	// to resolve them (auto-submit or expire).
	FindTimedOutMatches(now time.Time) ([]game.Match, error)
}
