package api

import (
	"net/http"
	"strconv"

	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/leveling"

	"github.com/gin-gonic/gin"
)

type playerStatsView struct {
	PlayerName  string `json:"player_name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	WinStreak   int    `json:"win_streak"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	XPToNext    int    `json:"xp_to_next"`
}

// PlayerStats returns the caller's aggregate stats and progression.
func (h *MatchHandler) PlayerStats(c *gin.Context) {
	u, err := h.repo.GetStatsByToken(playerToken(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, playerStatsView{
		PlayerName:  u.PlayerName,
		GamesPlayed: u.GamesPlayed,
		Wins:        u.Wins,
		WinStreak:   u.WinStreak,
		XP:          u.XP,
		Level:       leveling.LevelFromXP(u.XP),
		XPToNext:    leveling.XPToNext(u.XP),
	})
}

// Leaderboard returns the top players by XP. The optional "limit" query
// parameter caps the list (default 10, max 100).
func (h *MatchHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	users, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaders})
		return
	}
	out := make([]playerStatsView, 0, len(users))
	for _, u := range users {
		out = append(out, playerStatsView{
			PlayerName:  u.PlayerName,
			GamesPlayed: u.GamesPlayed,
			Wins:        u.Wins,
			WinStreak:   u.WinStreak,
			XP:          u.XP,
			Level:       leveling.LevelFromXP(u.XP),
			XPToNext:    leveling.XPToNext(u.XP),
		})
	}
	c.JSON(http.StatusOK, out)
}
