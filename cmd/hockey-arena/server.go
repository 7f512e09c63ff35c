package main

import (
	"time"

	"github.com/agorshkov/hockey-arena/internal/api"
	"github.com/agorshkov/hockey-arena/internal/constants"
	"github.com/agorshkov/hockey-arena/internal/logging"
	"github.com/agorshkov/hockey-arena/internal/service"
	"github.com/agorshkov/hockey-arena/internal/storage"

	"github.com/gin-gonic/gin"
)

func buildRouter(handler *api.MatchHandler) *gin.Engine {
	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteCards, handler.ListCards)
		apiRoutes.GET(constants.RouteLeaderboard, handler.Leaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Endpoints requiring a player token
		protected := apiRoutes.Group("")
		protected.Use(api.RequireToken())

		protected.GET(constants.RoutePlayerStats, handler.PlayerStats)
		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.POST(constants.RouteMatchesJoin, handler.JoinMatch)
		protected.GET(constants.RouteMatchByID, handler.GetMatch)
		protected.POST(constants.RouteMatchSimulate, handler.SimulateMatch)
		protected.POST(constants.RouteMatchTactic, handler.SubmitTactic)
	}

	return router
}

// startTimeoutScanner periodically resolves matches whose tactic window
// expired: auto-submitting balanced for one idle side, or expiring the
// match when nobody answered.
func startTimeoutScanner(repo storage.Repository, arena *service.Arena, actionTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			matches, err := repo.FindTimedOutMatches(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			for i := range matches {
				m := matches[i]
				if err := service.HandleTimedOutMatch(repo, arena, &m, actionTimeout); err != nil {
					logging.Error("failed to resolve timed-out match", err, logging.Fields{constants.LogFieldMatchID: m.MatchUUID})
				}
			}
		}
	}()
}
