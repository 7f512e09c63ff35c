package game

import (
	"time"

	"gorm.io/gorm"
)

// PlayerCard is a collectible hockey card. Card rows are seeded from the
// server config (arena_config.json) and are never mutated by a match; the
// engine works on per-match BattlePlayer copies.
type PlayerCard struct {
	gorm.Model
	// CardID is the external collection identifier.
	CardID   string   `json:"card_id" gorm:"uniqueIndex"`
	Name     string   `json:"name"`
	Position Position `json:"pos"`
	Country  string   `json:"country"`
	// Born and Weight are kept as free text exactly as the collection
	// supplies them; numeric values are extracted with documented
	// fallbacks at strength-derivation time.
	Born   string `json:"born"`
	Weight string `json:"weight"`
	Rarity Rarity `json:"rarity"`
	// Points is the base rating of the card.
	Points int `json:"points"`
	// OwnerLevel is the progression level of the card's owner for the
	// match being built. It is per-match input, not card data, so GORM
	// ignores it.
	OwnerLevel int `json:"owner_level" gorm:"-"`
}

func (PlayerCard) TableName() string { return "player_cards" }

// BattlePlayer is the mutable in-match copy of a card. Strength is derived
// once at roster preparation and only ever decays afterwards (period
// fatigue, goalie micro-injury). Injured is terminal for the match.
type BattlePlayer struct {
	Card      PlayerCard
	Strength  float64
	Technique float64
	Injured   bool
}

// Team is one side of a match: prepared players plus the tactic currently
// in effect. Tactic may change between phases in interactive play.
type Team struct {
	Name    string
	Tactic  Tactic
	Players []BattlePlayer
}

// Tactic names a modifier triple affecting attack/defense/penalty odds.
type Tactic string

const (
	TacticAggressive Tactic = "aggressive"
	TacticDefensive  Tactic = "defensive"
	TacticBalanced   Tactic = "balanced"
)

// ParseTactic coerces any unrecognized value to balanced. This leniency is
// deliberate: a bad tactic string must never fail a match.
func ParseTactic(s string) Tactic {
	switch Tactic(s) {
	case TacticAggressive, TacticDefensive, TacticBalanced:
		return Tactic(s)
	}
	return TacticBalanced
}

// EventKind tags a resolved tick outcome. Statistics code switches on the
// kind, never on log text.
type EventKind string

const (
	EventGoal         EventKind = "goal"
	EventSave         EventKind = "save"
	EventMiss         EventKind = "miss"
	EventPost         EventKind = "post"
	EventBlock        EventKind = "block"
	EventPenalty      EventKind = "penalty"
	EventInjury       EventKind = "injury"
	EventFight        EventKind = "fight"
	EventGoalieError  EventKind = "goalie_error"
	EventGoalieInjury EventKind = "goalie_injury"
)

// Side tags used in events and results.
const (
	TeamOneTag = "team1"
	TeamTwoTag = "team2"
	DrawTag    = "draw"
)

// Period tags beyond regulation (regulation periods are 1..3).
const (
	PeriodOvertime = 4
	PeriodShootout = 5
)

// MatchEvent is one resolved tick outcome. Events are appended in
// chronological order and never removed or reordered.
type MatchEvent struct {
	Team   string    `json:"team"` // team1 | team2
	Player string    `json:"player"`
	Kind   EventKind `json:"type"`
	Text   string    `json:"text"`
	Period int       `json:"period"`
}

// Goal is the scorer record derived from goal-scoring events.
type Goal struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Period int    `json:"period"`
}

// MatchResult is the frozen outcome of a finished session.
type MatchResult struct {
	Winner      string   `json:"winner"` // team1 | team2 | draw
	Score1      int      `json:"score1"`
	Score2      int      `json:"score2"`
	Log         []string `json:"log"`
	MVP         string   `json:"mvp"`
	StrengthGap float64  `json:"strength_gap"`
}

// Match statuses as persisted on the match record.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Match is the persisted record of one arena match. The live simulation
// state lives in the in-memory arena keyed by MatchUUID; this row holds
// the snapshot the API serves and the frozen result once finished.
type Match struct {
	gorm.Model
	MatchUUID string `json:"match_uuid" gorm:"uniqueIndex"`
	JoinCode  string `json:"join_code" gorm:"index"`
	Private   bool   `json:"private"`

	HostToken  string `json:"-" gorm:"index"`
	GuestToken string `json:"-" gorm:"index"`
	HostName   string `json:"host_name"`
	GuestName  string `json:"guest_name"`
	VsBot      bool   `json:"vs_bot"`

	Status string `json:"status"`
	Phase  string `json:"phase"`
	Score1 int    `json:"score1"`
	Score2 int    `json:"score2"`
	Winner string `json:"winner"`
	MVP    string `json:"mvp"`
	// StrengthGap is computed once at roster preparation and carried
	// through unchanged; the leveling system consumes it on finish.
	StrengthGap float64 `json:"strength_gap"`
	LogText     string  `json:"log_text"`

	// Lineups are stored as comma-joined card ids so a waiting match keeps
	// the host roster until a guest joins.
	HostLineup  string `json:"-"`
	GuestLineup string `json:"-"`
	// Seed feeds the per-match random stream.
	Seed int64 `json:"-"`

	HostTactic     string    `json:"host_tactic"`
	GuestTactic    string    `json:"guest_tactic"`
	HostSubmitted  bool      `json:"host_submitted"`
	GuestSubmitted bool      `json:"guest_submitted"`
	ActionDeadline time.Time `json:"action_deadline"`

	StatsCounted bool `json:"-"`
}

func (Match) TableName() string { return "arena_matches" }

// User stores unique player identity and aggregate stats/progression.
type User struct {
	gorm.Model
	PlayerToken string `gorm:"uniqueIndex"`
	PlayerName  string
	GamesPlayed int
	Wins        int
	XP          int
	WinStreak   int
}

func (User) TableName() string { return "player_profiles" }
