package constants

// Centralized constants for env keys, routes and API messages.
const (
	// Environment variable keys
	EnvArenaConfig = "ARENA_CONFIG"
	EnvArenaDB     = "ARENA_DB"

	// HTTP headers
	HeaderPlayerToken = "X-Player-Token"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteCards         = "/cards"
	RouteLeaderboard   = "/leaderboard"
	RoutePlayerStats   = "/player-stats"
	RouteMatches       = "/matches"
	RouteMatchesJoin   = "/matches/join"
	RouteMatchByID     = "/matches/:matchID"
	RouteMatchSimulate = "/matches/:matchID/simulate"
	RouteMatchTactic   = "/matches/:matchID/tactic"
	RouteVersion       = "/version"
)

// Common JSON response keys
const (
	JSONKeyError = "error"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrInvalidMatchID       = "Invalid match ID"
	ErrMatchNotFound        = "Match not found"
	ErrMatchNotInProgress   = "Match is not in progress"
	ErrMatchNotJoinable     = "Match is not open for joining"
	ErrTacticAlreadyIn      = "Tactic already submitted for this phase"
	ErrPlayerNotInThisMatch = "Player not in this match"
	ErrPairAlreadyPlaying   = "A live match between these players already exists"
	ErrCannotJoinOwnMatch   = "Cannot join your own match"
	ErrFailedCreateMatch    = "Failed to create match"
	ErrFailedUpdateMatch    = "Failed to update match"
	ErrFailedFetchCards     = "Failed to fetch cards"
	ErrFailedFetchStats     = "Failed to fetch stats"
	ErrFailedFetchLeaders   = "Failed to fetch leaderboard"
	ErrFailedStoreTactic    = "Failed to store tactic"
	ErrEmptyLineup          = "Lineup must reference at least one card"
	ErrUnknownCards         = "Lineup references unknown cards"
	ErrAuthRequired         = "Player token required"
)

// Logging field names
const (
	LogFieldMatchID = "match_id"
	LogFieldPhase   = "phase"
	LogFieldWinner  = "winner"
	LogFieldAddr    = "addr"
)
