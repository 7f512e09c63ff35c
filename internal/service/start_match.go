package service

import (
	"time"

	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/engine"
	"github.com/agorshkov/hockey-arena/internal/game"
	"github.com/agorshkov/hockey-arena/internal/keys"
	"github.com/agorshkov/hockey-arena/internal/logging"

	"github.com/google/uuid"
)

// CreateParams carries everything needed to open a new match.
type CreateParams struct {
	HostToken  string
	HostName   string
	CardIDs    []string
	Tactic     string
	Private    bool
	VsBot      bool
	JoinCode   string
	Timeout    time.Duration
	BotName    string
}

const defaultBotName = "Iron Curtain HC"

// CreateMatch opens a match. Against a bot the session starts immediately
// with a random catalog roster on the far side; against humans the match
// waits for a guest, holding the host lineup until then.
func CreateMatch(repo MatchRepo, arena *Arena, p CreateParams) (*game.Match, error) {
	roster, err := LoadRoster(repo, p.CardIDs)
	if err != nil {
		return nil, err
	}
	if err := repo.UpsertUser(p.HostToken, p.HostName); err != nil {
		return nil, err
	}

	m := &game.Match{
		MatchUUID:   uuid.NewString(),
		JoinCode:    p.JoinCode,
		Private:     p.Private,
		HostToken:   p.HostToken,
		HostName:    p.HostName,
		VsBot:       p.VsBot,
		Status:      game.StatusWaiting,
		HostLineup:  EncodeLineup(p.CardIDs),
		HostTactic:  string(game.ParseTactic(p.Tactic)),
		Seed:        time.Now().UnixNano(),
	}

	if p.VsBot {
		botName := p.BotName
		if botName == "" {
			botName = defaultBotName
		}
		botCards, err := repo.GetRandomCards(len(roster))
		if err != nil {
			return nil, err
		}
		if len(botCards) == 0 {
			return nil, ErrUnknownCards
		}
		botIDs := make([]string, len(botCards))
		for i, c := range botCards {
			botIDs[i] = c.CardID
		}
		m.GuestName = botName
		m.GuestLineup = EncodeLineup(botIDs)
		m.GuestTactic = string(game.TacticBalanced)
		m.Status = game.StatusInProgress
	}

	if err := repo.CreateMatch(m); err != nil {
		return nil, err
	}

	if p.VsBot {
		ctrl, err := buildController(repo, m)
		if err != nil {
			return nil, err
		}
		arena.Put(m.MatchUUID, ctrl, "")
		armPhase(m, ctrl, p.Timeout)
		if err := repo.UpdateMatch(m); err != nil {
			return nil, err
		}
	}

	logging.Info("match created", logging.Fields{constants.LogFieldMatchID: m.MatchUUID, "vs_bot": m.VsBot, "private": m.Private})
	return m, nil
}

// JoinMatch attaches a guest to a waiting match and starts the session.
func JoinMatch(repo MatchRepo, arena *Arena, joinCode, guestToken, guestName string, cardIDs []string, tactic string, timeout time.Duration) (*game.Match, error) {
	m, err := repo.FindMatchByJoinCode(joinCode)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Status != game.StatusWaiting {
		return nil, ErrMatchNotWaiting
	}
	if m.HostToken == guestToken {
		return nil, ErrCannotJoinOwnMatch
	}
	pairKey := keys.PairKeyFromTokens(m.HostToken, guestToken)
	if arena.PairLive(pairKey) {
		return nil, ErrPairAlreadyPlaying
	}
	if _, err := LoadRoster(repo, cardIDs); err != nil {
		return nil, err
	}
	if err := repo.UpsertUser(guestToken, guestName); err != nil {
		return nil, err
	}

	m.GuestToken = guestToken
	m.GuestName = guestName
	m.GuestLineup = EncodeLineup(cardIDs)
	m.GuestTactic = string(game.ParseTactic(tactic))
	m.Status = game.StatusInProgress

	ctrl, err := buildController(repo, m)
	if err != nil {
		return nil, err
	}
	arena.Put(m.MatchUUID, ctrl, pairKey)
	armPhase(m, ctrl, timeout)
	if err := repo.UpdateMatch(m); err != nil {
		arena.Remove(m.MatchUUID)
		return nil, err
	}

	logging.Info("match joined", logging.Fields{constants.LogFieldMatchID: m.MatchUUID, "live": arena.Len()})
	return m, nil
}

// SimulateMatch runs a live match to completion in one call with the
// tactics currently on record and persists the frozen result.
func SimulateMatch(repo MatchRepo, arena *Arena, matchUUID, token string) (*game.Match, error) {
	m, err := repo.GetMatchByUUID(matchUUID)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Status != game.StatusInProgress {
		return nil, ErrMatchNotInProgress
	}
	if token != m.HostToken && token != m.GuestToken {
		return nil, ErrPlayerNotInMatch
	}
	ctrl, ok := arena.Get(m.MatchUUID)
	if !ok {
		ctrl, err = recoverController(repo, m)
		if err != nil {
			return nil, err
		}
	}

	res := ctrl.AutoPlay()
	finishMatch(repo, arena, m, res)
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// buildController rebuilds the live session from the persisted lineups,
// tactics and seed. Both players' progression levels are resolved from
// their profiles before strength derivation.
func buildController(repo MatchRepo, m *game.Match) (*engine.Controller, error) {
	cards1, err := LoadRoster(repo, DecodeLineup(m.HostLineup))
	if err != nil {
		return nil, err
	}
	cards2, err := LoadRoster(repo, DecodeLineup(m.GuestLineup))
	if err != nil {
		return nil, err
	}
	hostLevel := ownerLevel(repo, m.HostToken)
	guestLevel := ownerLevel(repo, m.GuestToken)
	for i := range cards1 {
		cards1[i].OwnerLevel = hostLevel
	}
	for i := range cards2 {
		cards2[i].OwnerLevel = guestLevel
	}
	s := engine.NewSession(cards1, cards2, m.HostTactic, m.GuestTactic, m.HostName, m.GuestName, engine.NewRand(m.Seed))
	return engine.NewController(s), nil
}

// recoverController rebuilds a live session after a restart and replays
// it to the phase recorded on the match row, using the last tactics on
// record. The persisted seed makes the replayed phases deterministic.
// Defensive direction guesses and per-phase tactic changes are not
// persisted, so the replay applies the last stored tactics with no
// guesses.
func recoverController(repo MatchRepo, m *game.Match) (*engine.Controller, error) {
	ctrl, err := buildController(repo, m)
	if err != nil {
		return nil, err
	}
	if m.Phase == "" {
		return ctrl, nil
	}
	for string(ctrl.Phase()) != m.Phase && !ctrl.Done() {
		ctrl.Step(m.HostTactic, m.GuestTactic)
	}
	return ctrl, nil
}

// armPhase snapshots the controller state onto the match row and opens a
// fresh tactic-submission window.
func armPhase(m *game.Match, ctrl *engine.Controller, timeout time.Duration) {
	m.Phase = string(ctrl.Phase())
	m.StrengthGap = ctrl.Session().StrengthGap()
	m.HostSubmitted = false
	m.GuestSubmitted = false
	if timeout > 0 {
		m.ActionDeadline = time.Now().Add(timeout)
	}
}

// finishMatch freezes the result onto the match row, counts stats once
// and evicts the controller.
func finishMatch(repo MatchRepo, arena *Arena, m *game.Match, res game.MatchResult) {
	m.Status = game.StatusFinished
	m.Phase = string(engine.PhaseEnd)
	m.Score1 = res.Score1
	m.Score2 = res.Score2
	m.Winner = res.Winner
	m.MVP = res.MVP
	m.StrengthGap = res.StrengthGap
	m.LogText = joinLog(res.Log)
	m.HostSubmitted = false
	m.GuestSubmitted = false
	m.ActionDeadline = time.Time{}
	if !m.StatsCounted {
		if err := repo.UpdateStatsOnMatchEnd(m); err != nil {
			logging.Error("failed to update player stats", err, logging.Fields{constants.LogFieldMatchID: m.MatchUUID})
		}
		m.StatsCounted = true
	}
	arena.Remove(m.MatchUUID)
	logging.Info("match finished", logging.Fields{constants.LogFieldMatchID: m.MatchUUID, constants.LogFieldWinner: m.Winner, "score1": m.Score1, "score2": m.Score2})
}
