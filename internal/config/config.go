package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/agorshkov/hockey-arena/internal/game"
)

type cardEntry struct {
	CardID   string `json:"card_id"`
	Name     string `json:"name"`
	Position string `json:"pos"`
	Country  string `json:"country"`
	Born     string `json:"born"`
	Weight   string `json:"weight"`
	Rarity   string `json:"rarity"`
	Points   int    `json:"points"`
}

type rawConfig struct {
	CardList []cardEntry `json:"card_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	// SeasonYear anchors age calculation in the strength model. Optional;
	// the engine default applies when omitted.
	SeasonYear int `json:"season_year"`
	// ActionTimeoutSeconds bounds how long an interactive match waits for
	// a tactic before the timeout scanner auto-submits balanced.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// EventTemplates optionally replaces the flavor-text pool of an event
	// category (keyed by event kind, e.g. "goal", "save"). Templates are
	// cosmetic and never influence outcome probabilities.
	EventTemplates map[string][]string `json:"event_templates"`
}

// LoadedConfig contains the card catalog to seed and server settings.
type LoadedConfig struct {
	Cards          []game.PlayerCard
	ServerAddress  string
	SeasonYear     int
	ActionTimeout  time.Duration
	EventTemplates map[game.EventKind][]string
}

// LoadConfig reads the configuration file at path. It requires a
// non-empty `card_list` (snake_case keys).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide a 'card_list' array)", path)
	}

	out := make([]game.PlayerCard, 0, len(rc.CardList))
	idSet := make(map[string]struct{}, len(rc.CardList))
	for _, c := range rc.CardList {
		if c.Name == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'name'", path)
		}
		id := strings.TrimSpace(c.CardID)
		if id == "" {
			return nil, fmt.Errorf("config file %s: card '%s' missing 'card_id'", path, c.Name)
		}
		if _, exists := idSet[id]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card_id '%s'", path, id)
		}
		idSet[id] = struct{}{}
		out = append(out, game.PlayerCard{
			CardID:   id,
			Name:     c.Name,
			Position: game.Position(strings.ToUpper(strings.TrimSpace(c.Position))),
			Country:  c.Country,
			Born:     c.Born,
			Weight:   c.Weight,
			Rarity:   game.Rarity(strings.ToLower(strings.TrimSpace(c.Rarity))),
			Points:   c.Points,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	timeout := 120 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		timeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}

	templates := make(map[game.EventKind][]string, len(rc.EventTemplates))
	for kind, lines := range rc.EventTemplates {
		templates[game.EventKind(kind)] = lines
	}

	return &LoadedConfig{
		Cards:          out,
		ServerAddress:  addr,
		SeasonYear:     rc.SeasonYear,
		ActionTimeout:  timeout,
		EventTemplates: templates,
	}, nil
}
