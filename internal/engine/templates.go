package engine

import (
	"math/rand"

	"github.com/agorshkov/hockey-arena/internal/game"
)

// Flavor text pools, keyed by event kind. Text is purely cosmetic: the
// outcome is always decided before a template is drawn, so swapping pools
// can never change probabilities. Config may replace any pool at startup.
var templatePool = map[game.EventKind][]string{
	game.EventGoal: {
		"buries the puck!",
		"finds the top corner!",
		"beats the goalie clean!",
	},
	game.EventSave: {
		"turns the shot aside!",
		"makes a sparkling save!",
		"robs the shooter point blank!",
	},
	game.EventMiss: {
		"fires wide...",
		"can't hit the net...",
	},
	game.EventPost: {
		"rings one off the post!",
		"hits the crossbar!",
	},
	game.EventBlock: {
		"gets a body on the shot!",
		"blocks the shooting lane!",
	},
	game.EventPenalty: {
		"heads to the penalty box.",
		"takes a careless minor.",
	},
	game.EventInjury: {
		"is hurt and leaves the ice.",
		"cannot continue the game.",
	},
	game.EventFight: {
		"drops the gloves!",
		"starts a scrum behind the net!",
	},
	game.EventGoalieError: {
		"squeezes one through the goalie!",
		"scores on a fumble in the crease!",
	},
	game.EventGoalieInjury: {
		"is shaken up after the save.",
		"needs a moment in the crease.",
	},
}

// Shootout attempts reuse the goal/miss kinds but read better with
// dedicated lines.
var (
	shootoutGoalTemplates = []string{
		"converts the penalty shot!",
		"goes five-hole on the penalty shot!",
	}
	shootoutMissTemplates = []string{
		"is denied on the penalty shot.",
		"shoots the penalty shot wide.",
	}
)

// SetTemplates replaces the flavor pool for one event kind. Empty lists
// are ignored so a partial config cannot silence a category.
func SetTemplates(kind game.EventKind, lines []string) {
	if len(lines) > 0 {
		templatePool[kind] = lines
	}
}

func flavorText(rng *rand.Rand, kind game.EventKind) string {
	pool := templatePool[kind]
	if len(pool) == 0 {
		return string(kind)
	}
	return pool[rng.Intn(len(pool))]
}

func shootoutText(rng *rand.Rand, scored bool) string {
	if scored {
		return shootoutGoalTemplates[rng.Intn(len(shootoutGoalTemplates))]
	}
	return shootoutMissTemplates[rng.Intn(len(shootoutMissTemplates))]
}
