package engine

import (
	"math/rand"
	"strconv"
	"unicode"

	"github.com/agorshkov/hockey-arena/internal/game"
)

// Strength derivation tuning. The rarity table intentionally has no mythic
// entry: unknown tiers fall back to 1.0.
var rarityMultiplier = map[game.Rarity]float64{
	game.RarityCommon:    1.00,
	game.RarityRare:      1.05,
	game.RarityEpic:      1.10,
	game.RarityLegendary: 1.20,
}

const (
	defaultPoints = 50
	defaultAge    = 30
	defaultWeight = 80

	peakAge        = 25
	idealWeight    = 85
	agePenalty     = 0.005
	weightPenalty  = 0.001
	minFatigueMult = 0.85

	chemistryThreshold = 3
	chemistryBonus     = 1.05
	levelBonusStep     = 0.02
)

// seasonYear anchors age calculation. Fixed (not wall clock) so strength
// derivation stays reproducible; config may override at startup.
var seasonYear = 2026

func SetSeasonYear(year int) {
	if year > 0 {
		seasonYear = year
	}
}

// cardAge derives the player's age from the free-text birth year.
// Unparseable input yields the neutral default of 30 (no extra fatigue).
func cardAge(c *game.PlayerCard) int {
	born, err := strconv.Atoi(c.Born)
	if err != nil {
		return defaultAge
	}
	return seasonYear - born
}

// cardWeight extracts the first contiguous run of digits from the
// free-text weight field ("92 kg" -> 92). No digits yields 80.
func cardWeight(c *game.PlayerCard) int {
	start := -1
	for i, r := range c.Weight {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			w, _ := strconv.Atoi(c.Weight[start:i])
			return w
		}
	}
	if start >= 0 {
		w, _ := strconv.Atoi(c.Weight[start:])
		return w
	}
	return defaultWeight
}

// EffectiveStrength derives the in-match rating of one card. Multipliers
// apply in a fixed order: rarity, age/weight fatigue (floored at 0.85),
// per-match random form, squad chemistry, owner-level progression. The
// form factor is the only randomness here and is drawn once per player
// per match from the session stream.
func EffectiveStrength(rng *rand.Rand, c *game.PlayerCard, countryCount map[string]int) float64 {
	pts := c.Points
	if pts <= 0 {
		pts = defaultPoints
	}
	strength := float64(pts)

	if m, ok := rarityMultiplier[c.Rarity]; ok {
		strength *= m
	}

	age := cardAge(c)
	weight := cardWeight(c)
	fatigue := 1.0 - float64(age-peakAge)*agePenalty - float64(weight-idealWeight)*weightPenalty
	if fatigue < minFatigueMult {
		fatigue = minFatigueMult
	}
	strength *= fatigue

	// form: uniform in [0.95, 1.05]
	strength *= 0.95 + rng.Float64()*0.10

	if c.Country != "" && countryCount[c.Country] >= chemistryThreshold {
		strength *= chemistryBonus
	}

	strength *= 1.0 + float64(c.OwnerLevel/5)*levelBonusStep
	return strength
}

// Technique is the shootout-only success parameter, in [0.5, 1.0].
func Technique(strength float64) float64 {
	t := 0.5 + strength/120.0
	if t > 1.0 {
		t = 1.0
	}
	return t
}

// PrepareRoster copies the cards into battle players and derives their
// one-time strength and technique. Rosters are independent deep copies,
// so the same card id appearing on both sides is harmless.
func PrepareRoster(rng *rand.Rand, cards []game.PlayerCard) []game.BattlePlayer {
	countryCount := make(map[string]int, len(cards))
	for i := range cards {
		if cards[i].Country != "" {
			countryCount[cards[i].Country]++
		}
	}
	players := make([]game.BattlePlayer, 0, len(cards))
	for i := range cards {
		strength := EffectiveStrength(rng, &cards[i], countryCount)
		players = append(players, game.BattlePlayer{
			Card:      cards[i],
			Strength:  strength,
			Technique: Technique(strength),
		})
	}
	return players
}

func averageStrength(players []game.BattlePlayer) float64 {
	if len(players) == 0 {
		return 0
	}
	sum := 0.0
	for i := range players {
		sum += players[i].Strength
	}
	return sum / float64(len(players))
}

// StrengthGap is the relative initial-strength differential
// (avg2-avg1)/avg1, consumed by the external leveling formula.
func StrengthGap(team1, team2 []game.BattlePlayer) float64 {
	avg1 := averageStrength(team1)
	if avg1 == 0 {
		return 0
	}
	return (averageStrength(team2) - avg1) / avg1
}
