package service

import (
	"time"

	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/engine"
	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/logging"
)

var botTactics = []game.Tactic{game.TacticAggressive, game.TacticDefensive, game.TacticBalanced}

var botPhaseOrdinal = map[string]int64{
	string(engine.PhaseFirstPeriod):  1,
	string(engine.PhaseSecondPeriod): 2,
	string(engine.PhaseThirdPeriod):  3,
	string(engine.PhaseOvertime):     4,
}

// botTacticFor derives the bot's tactic for the armed phase from the
// persisted match seed, so a bot match replays identically after a
// restart.
func botTacticFor(m *game.Match) game.Tactic {
	r := engine.NewRand(m.Seed + botPhaseOrdinal[m.Phase])
	return botTactics[r.Intn(len(botTactics))]
}

// SubmitTactic stores a player's tactic (and optional defensive direction
// read) for the upcoming phase and advances the match once both sides are
// in. Against a bot the far side answers immediately with a random
// tactic, so every host submission advances a phase.
//
// Returns the updated match and whether a phase was played.
func SubmitTactic(repo MatchRepo, arena *Arena, matchUUID, token, tactic, guess string, timeout time.Duration) (*game.Match, bool, error) {
	m, err := repo.GetMatchByUUID(matchUUID)
	if err != nil || m == nil {
		return nil, false, ErrMatchNotFound
	}
	if m.Status != game.StatusInProgress {
		return nil, false, ErrMatchNotInProgress
	}
	ctrl, ok := arena.Get(m.MatchUUID)
	if !ok {
		ctrl, err = recoverController(repo, m)
		if err != nil {
			return nil, false, err
		}
		pairKey := ""
		if !m.VsBot {
			// recovered after restart; re-register the pair
			pairKey = pairKeyFor(m)
		}
		arena.Put(m.MatchUUID, ctrl, pairKey)
	}

	var side int
	switch token {
	case m.HostToken:
		side = 1
	case m.GuestToken:
		if m.VsBot {
			return nil, false, ErrPlayerNotInMatch
		}
		side = 2
	default:
		return nil, false, ErrPlayerNotInMatch
	}

	if side == 1 {
		if m.HostSubmitted {
			return nil, false, ErrTacticAlreadySubmitted
		}
		m.HostTactic = string(game.ParseTactic(tactic))
		m.HostSubmitted = true
	} else {
		if m.GuestSubmitted {
			return nil, false, ErrTacticAlreadySubmitted
		}
		m.GuestTactic = string(game.ParseTactic(tactic))
		m.GuestSubmitted = true
	}
	if d := engine.ParseDirection(guess); d != engine.DirectionNone {
		ctrl.Session().SetDefenseGuess(side, d)
	}

	if m.VsBot {
		m.GuestTactic = string(botTacticFor(m))
		m.GuestSubmitted = true
	}

	advanced := false
	if m.HostSubmitted && m.GuestSubmitted {
		ctrl.Step(m.HostTactic, m.GuestTactic)
		advanced = true
		snapshot(m, ctrl)
		if ctrl.Done() {
			finishMatch(repo, arena, m, ctrl.Finish())
		} else {
			armPhase(m, ctrl, timeout)
		}
		logging.Info("phase resolved", logging.Fields{constants.LogFieldMatchID: m.MatchUUID, constants.LogFieldPhase: m.Phase, "score1": m.Score1, "score2": m.Score2})
	}

	if err := repo.UpdateMatch(m); err != nil {
		return nil, advanced, err
	}
	return m, advanced, nil
}

// snapshot copies the running score and log onto the match row so reads
// do not have to touch the live session.
func snapshot(m *game.Match, ctrl *engine.Controller) {
	s := ctrl.Session()
	m.Score1, m.Score2 = s.Score()
	m.LogText = joinLog(s.Log())
	m.Phase = string(ctrl.Phase())
}
