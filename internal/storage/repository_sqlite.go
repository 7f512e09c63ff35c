package storage

import (
	"time"

	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/leveling"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetCards() ([]game.PlayerCard, error) {
	var cards []game.PlayerCard
	if err := r.db.Order("points DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *sqliteRepository) GetCardsByIDs(ids []string) ([]game.PlayerCard, error) {
	var cards []game.PlayerCard
	if err := r.db.Where("card_id IN ?", ids).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *sqliteRepository) GetRandomCards(n int) ([]game.PlayerCard, error) {
	var cards []game.PlayerCard
	if err := r.db.Order("RANDOM()").Limit(n).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByUUID(uuid string) (*game.Match, error) {
	var m game.Match
	if err := r.db.Where("match_uuid = ?", uuid).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) FindMatchByJoinCode(code string) (*game.Match, error) {
	var m game.Match
	if err := r.db.Where("join_code = ? AND status = ?", code, game.StatusWaiting).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) UpdateMatch(m *game.Match) error {
	return r.db.Save(m).Error
}

// UpdateStatsOnMatchEnd applies games/wins/streak deltas and the leveling
// XP formula per human participant. The guest sees the match from the
// opposite bench, so its winner tag and strength gap are mirrored before
// the XP formula runs.
func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *game.Match) error {
	apply := func(token, name string, won bool, gap float64, isPvE bool) error {
		if token == "" {
			return nil
		}
		var u game.User
		if err := r.db.Where("player_token = ?", token).First(&u).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			u = game.User{PlayerToken: token, PlayerName: name}
		}
		if name != "" {
			u.PlayerName = name
		}
		u.GamesPlayed++
		if won {
			u.WinStreak++
			u.Wins++
		} else {
			u.WinStreak = 0
		}
		winnerTag := game.TeamTwoTag
		if won {
			winnerTag = game.TeamOneTag
		}
		res := game.MatchResult{Winner: winnerTag, StrengthGap: gap}
		u.XP += leveling.BattleXP(res, isPvE, u.WinStreak, gap)
		return r.db.Save(&u).Error
	}

	hostWon := m.Winner == game.TeamOneTag
	if err := apply(m.HostToken, m.HostName, hostWon, m.StrengthGap, m.VsBot); err != nil {
		return err
	}
	if m.VsBot {
		return nil
	}
	guestWon := m.Winner == game.TeamTwoTag
	return apply(m.GuestToken, m.GuestName, guestWon, -m.StrengthGap, false)
}

func (r *sqliteRepository) UpsertUser(token, name string) error {
	var u game.User
	if err := r.db.Where("player_token = ?", token).First(&u).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		u = game.User{PlayerToken: token}
	}
	u.PlayerName = name
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) GetStatsByToken(token string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("player_token = ?", token).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{PlayerToken: token}, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetTopPlayers returns top N players ordered by XP desc, then wins desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("xp DESC").
		Order("wins DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) FindTimedOutMatches(now time.Time) ([]game.Match, error) {
	var matches []game.Match
	if err := r.db.
		Where("status = ? AND action_deadline <= ?", game.StatusInProgress, now).
		Find(&matches).Error; err != nil {
		return nil, err
	}
	// Matches without an armed deadline (zero value) are not timed out.
	out := matches[:0]
	for i := range matches {
		if !matches[i].ActionDeadline.IsZero() {
			out = append(out, matches[i])
		}
	}
	return out, nil
}
