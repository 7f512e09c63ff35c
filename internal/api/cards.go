package api

import (
	"net/http"

	"github.com/agorshkov/hockey-arena/internal/constants"

	"github.com/gin-gonic/gin"
)

// ListCards returns the full card catalog ordered by base rating.
func (h *MatchHandler) ListCards(c *gin.Context) {
	cards, err := h.repo.GetCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, cards)
}
