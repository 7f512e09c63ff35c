// Package leveling holds the XP/progression formulas fed by finished
// matches. The simulator supplies only the winner tag and the strength
// gap; everything else here is reward policy.
package leveling

import (
	"math"

	"github.com/agorshkov/hockey-arena/internal/game"
)

// base XP cost of the parabolic level curve.
const levelBase = 150

// LevelFromXP maps accumulated XP to a level (parabolic growth curve).
func LevelFromXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Sqrt(float64(xp)/levelBase)) + 1
}

// XPToNext returns the XP still missing to the next level cap.
func XPToNext(xp int) int {
	lvl := LevelFromXP(xp)
	cap := levelBase * lvl * lvl
	return cap - xp
}

// BattleXP computes the XP delta for the initiating side of a finished
// match. The strength-gap modifier is clamped to ±50%, the win-streak
// modifier caps at +50%, and PvE farming decays to zero on long streaks.
func BattleXP(result game.MatchResult, isPvE bool, streak int, strengthGap float64) int {
	win := result.Winner == game.TeamOneTag

	var base float64
	if isPvE {
		base = 15
		if win {
			base = 40
		}
	} else {
		base = 60
		if win {
			base = 120
		}
	}

	gap := strengthGap
	if gap > 0.5 {
		gap = 0.5
	} else if gap < -0.5 {
		gap = -0.5
	}
	modStrength := 1 + gap

	extra := streak - 1
	if extra < 0 {
		extra = 0
	} else if extra > 5 {
		extra = 5
	}
	modStreak := 1 + float64(extra)*0.1

	antiFarm := 1.0
	if isPvE && win {
		switch {
		case streak >= 10:
			antiFarm = 0.0
		case streak >= 5:
			antiFarm = 0.4
		}
	}

	xp := int(base * modStrength * modStreak * antiFarm)
	if xp < 0 {
		xp = 0
	}
	return xp
}
