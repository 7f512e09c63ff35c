package engine

import (
	"fmt"
	"math/rand"

	"github.com/agorshkov/hockey-arena/internal/game"
)

const (
	regulationPeriods = 3
	ticksPerPeriod    = 5

	starStrength      = 90
	fatigueFloor      = 0.97
	periodHeaderTmpl  = "--- Period %d ---"
	overtimeHeader    = "--- Overtime (sudden death) ---"
	shootoutHeader    = "Tied game, penalty shootout"
	finalScoreTmpl    = "Final score: %d - %d"
	victoryTmpl       = "%s wins"
	drawLine          = "Draw"
	starPrefix        = "STAR OF THE MATCH! "
)

// Session owns the full state of one match: two prepared rosters, the
// score, the chronological log/event stream and the session-local random
// stream. It is single-threaded by design; independent matches run in
// independent sessions.
type Session struct {
	rng *rand.Rand

	team1 *game.Team
	team2 *game.Team

	score1 int
	score2 int

	log    []string
	events []game.MatchEvent
	goals  []game.Goal

	goalsBy map[string]int
	savesBy map[string]int

	// Defensive direction guesses for the upcoming phase, cleared after
	// every phase. Zero value means no guess (no save boost possible).
	guess1 Direction
	guess2 Direction

	period      int // period currently being played, for event tagging
	strengthGap float64
	finished    bool
	mvp         string
}

// NewSession deep-copies both rosters into battle players, derives their
// strengths and fixes the strength gap. Overlapping card ids across the
// rosters are tolerated: each side works on its own copies.
func NewSession(cards1, cards2 []game.PlayerCard, tactic1, tactic2, name1, name2 string, rng *rand.Rand) *Session {
	if name1 == "" {
		name1 = game.TeamOneTag
	}
	if name2 == "" {
		name2 = game.TeamTwoTag
	}
	roster1 := PrepareRoster(rng, cards1)
	roster2 := PrepareRoster(rng, cards2)
	return &Session{
		rng:         rng,
		team1:       &game.Team{Name: name1, Tactic: game.ParseTactic(tactic1), Players: roster1},
		team2:       &game.Team{Name: name2, Tactic: game.ParseTactic(tactic2), Players: roster2},
		goalsBy:     make(map[string]int),
		savesBy:     make(map[string]int),
		strengthGap: StrengthGap(roster1, roster2),
	}
}

func (s *Session) Score() (int, int)          { return s.score1, s.score2 }
func (s *Session) Log() []string              { return s.log }
func (s *Session) Events() []game.MatchEvent  { return s.events }
func (s *Session) Goals() []game.Goal         { return s.goals }
func (s *Session) StrengthGap() float64       { return s.strengthGap }
func (s *Session) PeriodsPlayed() int         { return s.period }
func (s *Session) Tied() bool                 { return s.score1 == s.score2 }
func (s *Session) TeamNames() (string, string) { return s.team1.Name, s.team2.Name }

// SetDefenseGuess records a defensive direction read for the given side
// (1 or 2), applied while that side is defending during the next phase.
func (s *Session) SetDefenseGuess(side int, d Direction) {
	if side == 1 {
		s.guess1 = d
	} else {
		s.guess2 = d
	}
}

func (s *Session) setTactics(tactic1, tactic2 string) {
	s.team1.Tactic = game.ParseTactic(tactic1)
	s.team2.Tactic = game.ParseTactic(tactic2)
}

func (s *Session) sideTag(t *game.Team) string {
	if t == s.team1 {
		return game.TeamOneTag
	}
	return game.TeamTwoTag
}

// logEvent appends one log line plus the matching typed event. Players
// whose current strength exceeds 90 get a distinguished prefix; this is
// cosmetic and never feeds back into probabilities or statistics.
func (s *Session) logEvent(t *game.Team, p *game.BattlePlayer, kind game.EventKind, text string) {
	line := fmt.Sprintf("%s | %s %s", t.Name, p.Card.Name, text)
	if p.Strength > starStrength {
		line = fmt.Sprintf("%s | %s%s %s", t.Name, starPrefix, p.Card.Name, text)
	}
	s.log = append(s.log, line)
	s.events = append(s.events, game.MatchEvent{
		Team:   s.sideTag(t),
		Player: p.Card.Name,
		Kind:   kind,
		Text:   line,
		Period: s.period,
	})
}

func (s *Session) logLine(line string) { s.log = append(s.log, line) }

func (s *Session) recordGoal(t *game.Team, p *game.BattlePlayer, period int) {
	if t == s.team1 {
		s.score1++
	} else {
		s.score2++
	}
	s.goals = append(s.goals, game.Goal{Player: p.Card.Name, Team: t.Name, Period: period})
	s.goalsBy[p.Card.Name]++
}

// applyFatigue decays every surviving player's strength by an independent
// uniform factor in [0.97, 1.0]. Strength never increases mid-match.
func (s *Session) applyFatigue(t *game.Team) {
	for i := range t.Players {
		if t.Players[i].Injured {
			continue
		}
		t.Players[i].Strength *= fatigueFloor + s.rng.Float64()*(1.0-fatigueFloor)
	}
}

// playTicks runs the fixed exchange loop of one phase: team1 attempt then
// team2 attempt, ticksPerPeriod times. In sudden-death mode the first
// goal aborts the loop immediately, skipping the remaining ticks.
func (s *Session) playTicks(suddenDeath bool) bool {
	for i := 0; i < ticksPerPeriod; i++ {
		if s.runAttack(s.team1, s.team2) && suddenDeath {
			return true
		}
		if s.runAttack(s.team2, s.team1) && suddenDeath {
			return true
		}
	}
	return false
}

func (s *Session) endPhase() {
	s.applyFatigue(s.team1)
	s.applyFatigue(s.team2)
	s.guess1 = ""
	s.guess2 = ""
}

// PlayPeriod advances exactly one regulation period with the supplied
// tactics (unknown tactic names fall back to balanced).
func (s *Session) PlayPeriod(tactic1, tactic2 string) {
	if s.finished || s.period >= regulationPeriods {
		return
	}
	s.setTactics(tactic1, tactic2)
	s.period++
	s.logLine(fmt.Sprintf(periodHeaderTmpl, s.period))
	s.playTicks(false)
	s.endPhase()
}

// PlayOvertime runs one sudden-death overtime. It reports whether a goal
// ended the match; a goalless overtime leaves the tie to the shootout.
func (s *Session) PlayOvertime(tactic1, tactic2 string) bool {
	if s.finished {
		return false
	}
	s.setTactics(tactic1, tactic2)
	s.period = game.PeriodOvertime
	s.logLine(overtimeHeader)
	decided := s.playTicks(true)
	s.endPhase()
	return decided
}

// Simulate plays the whole match autonomously with the tactics configured
// at construction: three periods, then sudden-death overtime on a tie,
// then a shootout if overtime solved nothing.
func (s *Session) Simulate() game.MatchResult {
	t1, t2 := string(s.team1.Tactic), string(s.team2.Tactic)
	for s.period < regulationPeriods {
		s.PlayPeriod(t1, t2)
	}
	if s.Tied() {
		if !s.PlayOvertime(t1, t2) {
			s.Shootout()
		}
	}
	return s.Finish()
}
