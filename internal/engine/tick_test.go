package engine

import (
	"math"
	"testing"

	"github.com/agorshkov/hockey-arena/internal/game"
)

func TestDrawDirectionWeights(t *testing.T) {
	s := newTestSession(3)
	counts := make(map[Direction]int)
	for i := 0; i < 10000; i++ {
		counts[s.drawDirection()]++
	}
	// generous bounds around the 0.3 / 0.4 / 0.3 split
	if counts[DirectionCenter] < 3500 || counts[DirectionCenter] > 4500 {
		t.Fatalf("center drawn %d of 10000, want ~4000", counts[DirectionCenter])
	}
	for _, d := range []Direction{DirectionLeft, DirectionRight} {
		if counts[d] < 2500 || counts[d] > 3500 {
			t.Fatalf("%s drawn %d of 10000, want ~3000", d, counts[d])
		}
	}
}

func TestParseDirectionLeniency(t *testing.T) {
	if got := ParseDirection("left"); got != DirectionLeft {
		t.Fatalf("ParseDirection(left) = %q", got)
	}
	for _, raw := range []string{"", "up", "LEFT", "centre"} {
		if got := ParseDirection(raw); got != DirectionNone {
			t.Fatalf("ParseDirection(%q) = %q, want no-guess", raw, got)
		}
	}
}

// A standing defensive read boosts the save chance on matched directions,
// so across many possessions the guessing defense concedes fewer goals.
func TestDefensiveReadLowersGoalRate(t *testing.T) {
	goals := func(withGuess bool) int {
		scored := 0
		for seed := int64(0); seed < 800; seed++ {
			s := newTestSession(seed)
			for i := 0; i < 10; i++ {
				if withGuess {
					s.SetDefenseGuess(2, DirectionCenter)
				}
				if s.runAttack(s.team1, s.team2) {
					scored++
				}
			}
		}
		return scored
	}
	with := goals(true)
	without := goals(false)
	if with >= without {
		t.Fatalf("defensive reads did not reduce goals: %d with vs %d without", with, without)
	}
}

func TestDefenseGuessClearedAfterPhase(t *testing.T) {
	s := newTestSession(25)
	s.SetDefenseGuess(1, DirectionLeft)
	s.SetDefenseGuess(2, DirectionRight)
	s.PlayPeriod("balanced", "balanced")
	if s.guess1 != DirectionNone || s.guess2 != DirectionNone {
		t.Fatalf("guesses survived the phase: %q %q", s.guess1, s.guess2)
	}
}

// A shaky goalie facing power shots fumbles some stopped pucks into the
// net; those goals carry their own event kind and still count on the
// scoreboard.
func TestGoalieErrorAgainstWeakGoalie(t *testing.T) {
	seen := false
	for seed := int64(0); seed < 100; seed++ {
		s := NewSession(testRoster("strong", 100), testRoster("weak", 30), "aggressive", "balanced", "", "", NewRand(seed))
		s.Simulate()
		goals1, goals2 := 0, 0
		for _, ev := range s.Events() {
			if ev.Kind == game.EventGoalieError {
				seen = true
				if ev.Team != game.TeamOneTag {
					t.Fatalf("seed %d: goalie error credited to the weak attack", seed)
				}
			}
			if ev.Kind == game.EventGoal || ev.Kind == game.EventGoalieError {
				if ev.Team == game.TeamOneTag {
					goals1++
				} else {
					goals2++
				}
			}
		}
		s1, s2 := s.Score()
		if goals1 != s1 || goals2 != s2 {
			t.Fatalf("seed %d: goal events %d-%d vs score %d-%d", seed, goals1, goals2, s1, s2)
		}
	}
	if !seen {
		t.Fatal("no goalie error across 100 lopsided matches")
	}
}

func TestGoalieInjuryFollowsSaveAndStepsStrengthDown(t *testing.T) {
	observed := false
	for seed := int64(0); seed < 50 && !observed; seed++ {
		s := newTestSession(seed)
		goalie := &s.team2.Players[0] // testRoster lists the goalie first
		for i := 0; i < 200; i++ {
			before := goalie.Strength
			mark := len(s.Events())
			s.runAttack(s.team1, s.team2)
			evs := s.Events()[mark:]
			for j, ev := range evs {
				if ev.Kind != game.EventGoalieInjury {
					continue
				}
				observed = true
				if j == 0 || evs[j-1].Kind != game.EventSave || evs[j-1].Player != ev.Player {
					t.Fatalf("seed %d: goalie injury without a preceding save by the same goalie: %v", seed, evs)
				}
				if math.Abs(goalie.Strength-before*goalieInjuryFactor) > 1e-9 {
					t.Fatalf("seed %d: goalie strength %f after injury, want %f", seed, goalie.Strength, before*goalieInjuryFactor)
				}
			}
		}
	}
	if !observed {
		t.Fatal("no goalie injury across 10000 possessions")
	}
}
