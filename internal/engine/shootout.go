package engine

import (
	"github.com/agorshkov/hockey-arena/internal/game"
)

const (
	shootoutRounds     = 3
	shootoutTechFactor = 0.7
	maxShooters        = 3
)

// shootoutShooters picks up to three skaters at random. If fewer than
// three healthy skaters remain it falls back to any non-goalie (injured
// included), and as a last resort to the full roster, so the shootout can
// always proceed.
func (s *Session) shootoutShooters(t *game.Team) []*game.BattlePlayer {
	var healthy, anySkater []*game.BattlePlayer
	for i := range t.Players {
		p := &t.Players[i]
		if p.Card.Position.IsGoalie() {
			continue
		}
		anySkater = append(anySkater, p)
		if !p.Injured {
			healthy = append(healthy, p)
		}
	}
	pool := healthy
	if len(pool) < maxShooters {
		pool = anySkater
	}
	if len(pool) == 0 {
		for i := range t.Players {
			pool = append(pool, &t.Players[i])
		}
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > maxShooters {
		pool = pool[:maxShooters]
	}
	return pool
}

// shootoutAttempt resolves one penalty shot. Success depends only on the
// shooter's technique, never on the main-game strength formula.
func (s *Session) shootoutAttempt(t *game.Team, shooter *game.BattlePlayer) bool {
	scored := s.rng.Float64() < shooter.Technique*shootoutTechFactor
	if scored {
		s.recordGoal(t, shooter, game.PeriodShootout)
		s.logEvent(t, shooter, game.EventGoal, shootoutText(s.rng, true))
	} else {
		s.logEvent(t, shooter, game.EventMiss, shootoutText(s.rng, false))
	}
	return scored
}

// Shootout resolves a tied match with a best-of-3 series followed by
// sudden-death alternating attempts (re-using shooters as needed) until
// the scores differ. It always terminates with a decisive outcome.
func (s *Session) Shootout() {
	if s.finished {
		return
	}
	s.period = game.PeriodShootout
	s.logLine(shootoutHeader)

	shooters1 := s.shootoutShooters(s.team1)
	shooters2 := s.shootoutShooters(s.team2)

	for i := 0; i < shootoutRounds; i++ {
		s.shootoutAttempt(s.team1, shooters1[i%len(shooters1)])
		s.shootoutAttempt(s.team2, shooters2[i%len(shooters2)])
	}
	for round := shootoutRounds; s.score1 == s.score2; round++ {
		s.shootoutAttempt(s.team1, shooters1[round%len(shooters1)])
		s.shootoutAttempt(s.team2, shooters2[round%len(shooters2)])
	}
}
