package engine

import (
	"github.com/agorshkov/hockey-arena/internal/game"
)

// Tick resolution tuning.
const (
	injuryChance  = 0.02
	fightChance   = 0.01
	penaltyBase   = 0.10
	weakStrength  = 25.0
	forwardPickP  = 0.80

	shakyGoalieStrength = 60.0
	powerShotThreshold  = 80.0
	goalieErrorChance   = 0.15

	postShare  = 0.10
	blockShare = 0.25
	missShare  = 0.20

	blockerDefensePref = 0.70
	goalieInjuryChance = 0.03
	goalieInjuryFactor = 0.90

	correctReadBoost = 1.2
)

type tacticModifiers struct {
	attack  float64
	defense float64
	penalty float64
}

var tacticTable = map[game.Tactic]tacticModifiers{
	game.TacticAggressive: {attack: 1.10, defense: 0.90, penalty: 1.30},
	game.TacticDefensive:  {attack: 0.90, defense: 1.10, penalty: 1.00},
	game.TacticBalanced:   {attack: 1.00, defense: 1.00, penalty: 1.00},
}

func modifiersFor(t game.Tactic) tacticModifiers {
	if m, ok := tacticTable[t]; ok {
		return m
	}
	return tacticTable[game.TacticBalanced]
}

// Direction is the 3-way attack/guess axis of the mini-game.
type Direction string

const (
	DirectionNone   Direction = ""
	DirectionLeft   Direction = "left"
	DirectionCenter Direction = "center"
	DirectionRight  Direction = "right"
)

// ParseDirection coerces unknown values to no-guess, mirroring the tactic
// leniency policy.
func ParseDirection(s string) Direction {
	switch Direction(s) {
	case DirectionLeft, DirectionCenter, DirectionRight:
		return Direction(s)
	}
	return DirectionNone
}

// drawDirection picks the actual attack direction with weights
// 0.3 / 0.4 / 0.3 for left / center / right.
func (s *Session) drawDirection() Direction {
	r := s.rng.Float64()
	switch {
	case r < 0.3:
		return DirectionLeft
	case r < 0.7:
		return DirectionCenter
	default:
		return DirectionRight
	}
}

// pickAttacker selects the shooting player: a forward 80% of the time when
// any is available, otherwise any eligible skater. A roster with no
// eligible skaters at all degrades to a random member so the tick loop
// can never stall.
func (s *Session) pickAttacker(t *game.Team) *game.BattlePlayer {
	var skaters, forwards []*game.BattlePlayer
	for i := range t.Players {
		p := &t.Players[i]
		if p.Injured || p.Card.Position.IsGoalie() {
			continue
		}
		skaters = append(skaters, p)
		if p.Card.Position.IsForward() {
			forwards = append(forwards, p)
		}
	}
	if len(forwards) > 0 && s.rng.Float64() < forwardPickP {
		return forwards[s.rng.Intn(len(forwards))]
	}
	if len(skaters) > 0 {
		return skaters[s.rng.Intn(len(skaters))]
	}
	return &t.Players[s.rng.Intn(len(t.Players))]
}

// pickGoalie returns the team's healthy goalie, or a random stand-in when
// none is listed (accepted degradation for pathological rosters).
func (s *Session) pickGoalie(t *game.Team) *game.BattlePlayer {
	for i := range t.Players {
		p := &t.Players[i]
		if p.Card.Position.IsGoalie() && !p.Injured {
			return p
		}
	}
	return &t.Players[s.rng.Intn(len(t.Players))]
}

// pickBlocker credits a shot block: an actual defenseman 70% of the time
// when one is available, otherwise any healthy skater, otherwise anyone.
func (s *Session) pickBlocker(t *game.Team) *game.BattlePlayer {
	var skaters, defense []*game.BattlePlayer
	for i := range t.Players {
		p := &t.Players[i]
		if p.Injured || p.Card.Position.IsGoalie() {
			continue
		}
		skaters = append(skaters, p)
		if p.Card.Position.IsDefense() {
			defense = append(defense, p)
		}
	}
	if len(defense) > 0 && s.rng.Float64() < blockerDefensePref {
		return defense[s.rng.Intn(len(defense))]
	}
	if len(skaters) > 0 {
		return skaters[s.rng.Intn(len(skaters))]
	}
	return &t.Players[s.rng.Intn(len(t.Players))]
}

// defenseGuess returns the stored direction read for the defending side.
func (s *Session) defenseGuess(defending *game.Team) Direction {
	if defending == s.team1 {
		return s.guess1
	}
	return s.guess2
}

// runAttack resolves one offensive possession for the attacking team and
// reports whether it produced a goal. Resolution short-circuits in order:
// attacker injury, weak-attacker penalty, fight, then the shot itself.
func (s *Session) runAttack(attacking, defending *game.Team) bool {
	attacker := s.pickAttacker(attacking)
	goalie := s.pickGoalie(defending)
	atkMods := modifiersFor(attacking.Tactic)
	defMods := modifiersFor(defending.Tactic)

	if s.rng.Float64() < injuryChance {
		attacker.Injured = true
		s.logEvent(attacking, attacker, game.EventInjury, flavorText(s.rng, game.EventInjury))
		return false
	}
	if attacker.Strength < weakStrength && s.rng.Float64() < penaltyBase*atkMods.penalty {
		s.logEvent(attacking, attacker, game.EventPenalty, flavorText(s.rng, game.EventPenalty))
		return false
	}
	if s.rng.Float64() < fightChance {
		s.logEvent(attacking, attacker, game.EventFight, flavorText(s.rng, game.EventFight))
		return false
	}

	atk := attacker.Strength * atkMods.attack
	def := goalie.Strength * defMods.defense
	goalChance := atk / (atk + def)

	// Direction mini-game: a correct defensive read boosts the save
	// chance by 20% (capped at a sure save).
	if guess := s.defenseGuess(defending); guess != DirectionNone {
		if s.drawDirection() == guess {
			saveChance := (1.0 - goalChance) * correctReadBoost
			if saveChance > 1.0 {
				saveChance = 1.0
			}
			goalChance = 1.0 - saveChance
		}
	}

	scored := s.rng.Float64() < goalChance
	kind := game.EventGoal
	if !scored && goalie.Strength < shakyGoalieStrength && atk > powerShotThreshold {
		if s.rng.Float64() < goalieErrorChance {
			scored = true
			kind = game.EventGoalieError
		}
	}

	if scored {
		s.recordGoal(attacking, attacker, s.period)
		s.logEvent(attacking, attacker, kind, flavorText(s.rng, kind))
		return true
	}

	// Save credit goes to the goalie before the miss branch is drawn, so
	// MVP accounting does not depend on the cosmetic sub-outcome.
	s.savesBy[goalie.Card.Name]++
	branch := s.rng.Float64()
	switch {
	case branch < postShare:
		s.logEvent(attacking, attacker, game.EventPost, flavorText(s.rng, game.EventPost))
	case branch < postShare+blockShare:
		blocker := s.pickBlocker(defending)
		s.logEvent(defending, blocker, game.EventBlock, flavorText(s.rng, game.EventBlock))
	case branch < postShare+blockShare+missShare:
		s.logEvent(attacking, attacker, game.EventMiss, flavorText(s.rng, game.EventMiss))
	default:
		s.logEvent(defending, goalie, game.EventSave, flavorText(s.rng, game.EventSave))
		if s.rng.Float64() < goalieInjuryChance {
			goalie.Strength *= goalieInjuryFactor
			s.logEvent(defending, goalie, game.EventGoalieInjury, flavorText(s.rng, game.EventGoalieInjury))
		}
	}
	return false
}
