package service

import (
	"errors"
	"strings"
	"time"

	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/keys"
)

// pairKeyFor canonicalizes the two participant tokens of a PvP match.
func pairKeyFor(m *game.Match) string {
	return keys.PairKeyFromTokens(m.HostToken, m.GuestToken)
}

// joinLog flattens a match log for persistence. Lines never contain
// newlines themselves, so the split back is loss-free.
func joinLog(lines []string) string { return strings.Join(lines, "\n") }

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchNotWaiting        = errors.New("match is not waiting for an opponent")
	ErrMatchNotInProgress     = errors.New("match is not in progress")
	ErrTacticAlreadySubmitted = errors.New("tactic already submitted for this phase")
	ErrPlayerNotInMatch       = errors.New("player not in match")
	ErrCannotJoinOwnMatch     = errors.New("cannot join your own match")
	ErrPairAlreadyPlaying     = errors.New("a live match between these players already exists")
	ErrEmptyLineup            = errors.New("lineup must reference at least one card")
	ErrUnknownCards           = errors.New("lineup references unknown cards")
)

// MatchRepo is the persistence surface the match services need. The
// storage sqlite repository satisfies it.
type MatchRepo interface {
	GetCardsByIDs(ids []string) ([]game.PlayerCard, error)
	GetRandomCards(n int) ([]game.PlayerCard, error)

	CreateMatch(m *game.Match) error
	GetMatchByUUID(uuid string) (*game.Match, error)
	FindMatchByJoinCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	UpdateStatsOnMatchEnd(m *game.Match) error

	UpsertUser(token, name string) error
	GetStatsByToken(token string) (*game.User, error)
	FindTimedOutMatches(now time.Time) ([]game.Match, error)
}
