package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateMatchPayload struct {
	PlayerName string   `json:"player_name"`
	CardIDs    []string `json:"card_ids"`
	Tactic     string   `json:"tactic"`
	Private    bool     `json:"private"`
	VsBot      bool     `json:"vs_bot"`
}

// CreateMatch opens a new match. PvP matches return a join code and wait;
// bot matches go straight to in_progress.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	m, err := service.CreateMatch(h.repo, h.arena, service.CreateParams{
		HostToken: playerToken(c),
		HostName:  req.PlayerName,
		CardIDs:   req.CardIDs,
		Tactic:    req.Tactic,
		Private:   req.Private,
		VsBot:     req.VsBot,
		JoinCode:  generateJoinCode(),
		Timeout:   h.actionTimeout,
	})
	if err != nil {
		respondError(c, err, constants.ErrFailedCreateMatch)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"match_id":  m.MatchUUID,
		"join_code": m.JoinCode,
		"status":    m.Status,
	})
}

type JoinMatchPayload struct {
	JoinCode   string   `json:"join_code"`
	PlayerName string   `json:"player_name"`
	CardIDs    []string `json:"card_ids"`
	Tactic     string   `json:"tactic"`
}

// JoinMatch attaches the caller to a waiting match via join code and
// starts the session.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	var req JoinMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchID})
		return
	}

	m, err := service.JoinMatch(h.repo, h.arena, code, playerToken(c), req.PlayerName, req.CardIDs, req.Tactic, h.actionTimeout)
	if err != nil {
		respondError(c, err, constants.ErrFailedUpdateMatch)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id": m.MatchUUID,
		"status":   m.Status,
		"phase":    m.Phase,
	})
}

// matchView is the read model served for a match: the persisted snapshot
// with the flat log expanded into lines.
type matchView struct {
	MatchID     string       `json:"match_id"`
	Status      string       `json:"status"`
	Phase       string       `json:"phase"`
	HostName    string       `json:"host_name"`
	GuestName   string       `json:"guest_name"`
	VsBot       bool         `json:"vs_bot"`
	Score1      int          `json:"score1"`
	Score2      int          `json:"score2"`
	Winner      string       `json:"winner,omitempty"`
	MVP         string       `json:"mvp,omitempty"`
	StrengthGap float64      `json:"strength_gap"`
	Log         []string     `json:"log"`
	Goals       []game.Goal  `json:"goals,omitempty"`
	YouAre      string       `json:"you_are,omitempty"`
	Submitted   bool         `json:"submitted"`
	Deadline    string       `json:"action_deadline,omitempty"`
}

func (h *MatchHandler) viewFor(m *game.Match, token string) matchView {
	v := matchView{
		MatchID:     m.MatchUUID,
		Status:      m.Status,
		Phase:       m.Phase,
		HostName:    m.HostName,
		GuestName:   m.GuestName,
		VsBot:       m.VsBot,
		Score1:      m.Score1,
		Score2:      m.Score2,
		Winner:      m.Winner,
		MVP:         m.MVP,
		StrengthGap: m.StrengthGap,
	}
	if m.LogText != "" {
		v.Log = strings.Split(m.LogText, "\n")
	}
	switch token {
	case m.HostToken:
		v.YouAre = game.TeamOneTag
		v.Submitted = m.HostSubmitted
	case m.GuestToken:
		if !m.VsBot {
			v.YouAre = game.TeamTwoTag
			v.Submitted = m.GuestSubmitted
		}
	}
	if !m.ActionDeadline.IsZero() {
		v.Deadline = m.ActionDeadline.UTC().Format(time.RFC3339)
	}
	if ctrl, ok := h.arena.Get(m.MatchUUID); ok {
		v.Goals = ctrl.Session().Goals()
	}
	return v
}

// GetMatch returns the current snapshot of a match. Participants also see
// which side they are and whether their tactic is in.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id := strings.TrimSpace(c.Param("matchID"))
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchID})
		return
	}
	m, err := h.repo.GetMatchByUUID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	c.JSON(http.StatusOK, h.viewFor(m, playerToken(c)))
}

// SimulateMatch plays a live match to the final horn in one request.
func (h *MatchHandler) SimulateMatch(c *gin.Context) {
	id := strings.TrimSpace(c.Param("matchID"))
	m, err := service.SimulateMatch(h.repo, h.arena, id, playerToken(c))
	if err != nil {
		respondError(c, err, constants.ErrFailedUpdateMatch)
		return
	}
	c.JSON(http.StatusOK, h.viewFor(m, playerToken(c)))
}

type SubmitTacticPayload struct {
	Tactic string `json:"tactic"`
	Guess  string `json:"guess"`
}

// SubmitTactic stores the caller's tactic for the upcoming phase; the
// phase resolves as soon as both sides are in.
func (h *MatchHandler) SubmitTactic(c *gin.Context) {
	id := strings.TrimSpace(c.Param("matchID"))
	var req SubmitTacticPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	m, advanced, err := service.SubmitTactic(h.repo, h.arena, id, playerToken(c), req.Tactic, req.Guess, h.actionTimeout)
	if err != nil {
		respondError(c, err, constants.ErrFailedStoreTactic)
		return
	}

	v := h.viewFor(m, playerToken(c))
	c.JSON(http.StatusOK, gin.H{
		"match":    v,
		"resolved": advanced,
	})
}
