package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/service"
	"github.com/agorshkov/hockey-arena/internal/storage"

	"github.com/gin-gonic/gin"
)

// MatchHandler bundles the dependencies all match endpoints share.
type MatchHandler struct {
	repo          storage.Repository
	arena         *service.Arena
	actionTimeout time.Duration
}

func NewMatchHandler(repo storage.Repository, arena *service.Arena, actionTimeout time.Duration) *MatchHandler {
	return &MatchHandler{repo: repo, arena: arena, actionTimeout: actionTimeout}
}

// statusForError maps service sentinel errors to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyLineup),
		errors.Is(err, service.ErrUnknownCards):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPlayerNotInMatch):
		return http.StatusForbidden
	case errors.Is(err, service.ErrMatchNotWaiting),
		errors.Is(err, service.ErrMatchNotInProgress),
		errors.Is(err, service.ErrTacticAlreadySubmitted),
		errors.Is(err, service.ErrCannotJoinOwnMatch),
		errors.Is(err, service.ErrPairAlreadyPlaying):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageForError translates service sentinel errors into the stable API
// messages. Unexpected errors get the handler's fallback so internals
// never leak to clients.
func messageForError(err error, fallback string) string {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		return constants.ErrMatchNotFound
	case errors.Is(err, service.ErrMatchNotWaiting):
		return constants.ErrMatchNotJoinable
	case errors.Is(err, service.ErrMatchNotInProgress):
		return constants.ErrMatchNotInProgress
	case errors.Is(err, service.ErrTacticAlreadySubmitted):
		return constants.ErrTacticAlreadyIn
	case errors.Is(err, service.ErrPlayerNotInMatch):
		return constants.ErrPlayerNotInThisMatch
	case errors.Is(err, service.ErrCannotJoinOwnMatch):
		return constants.ErrCannotJoinOwnMatch
	case errors.Is(err, service.ErrPairAlreadyPlaying):
		return constants.ErrPairAlreadyPlaying
	case errors.Is(err, service.ErrEmptyLineup):
		return constants.ErrEmptyLineup
	case errors.Is(err, service.ErrUnknownCards):
		return constants.ErrUnknownCards
	default:
		return fallback
	}
}

func respondError(c *gin.Context, err error, fallback string) {
	c.JSON(statusForError(err), gin.H{constants.JSONKeyError: messageForError(err, fallback)})
}
