package service

import (
	"time"

	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/logging"
)

// HandleTimedOutMatch resolves one match whose tactic window expired.
// If nobody submitted, the match is expired with no winner and no stats.
// If exactly one side submitted, the idle side is auto-submitted with a
// balanced tactic so the phase resolves normally.
func HandleTimedOutMatch(repo MatchRepo, arena *Arena, m *game.Match, timeout time.Duration) error {
	if m.Status != game.StatusInProgress {
		return nil
	}

	switch {
	case !m.HostSubmitted && !m.GuestSubmitted:
		m.Status = game.StatusFinished
		m.Winner = ""
		m.StatsCounted = true
		m.ActionDeadline = time.Time{}
		arena.Remove(m.MatchUUID)
		logging.Info("match expired due to inactivity", logging.Fields{constants.LogFieldMatchID: m.MatchUUID})
		return repo.UpdateMatch(m)
	case m.HostSubmitted && !m.GuestSubmitted:
		logging.Info("auto-submitting balanced tactic for idle guest", logging.Fields{constants.LogFieldMatchID: m.MatchUUID})
		_, _, err := SubmitTactic(repo, arena, m.MatchUUID, m.GuestToken, string(game.TacticBalanced), "", timeout)
		return err
	case !m.HostSubmitted && m.GuestSubmitted:
		logging.Info("auto-submitting balanced tactic for idle host", logging.Fields{constants.LogFieldMatchID: m.MatchUUID})
		_, _, err := SubmitTactic(repo, arena, m.MatchUUID, m.HostToken, string(game.TacticBalanced), "", timeout)
		return err
	default:
		return nil
	}
}
