package api

import (
	"net/http"
	"strings"

	"github.com/agorshkov/hockey-arena/internal/constants"

	"github.com/gin-gonic/gin"
)

const ctxKeyPlayerToken = "playerToken"

// RequireToken guards match endpoints behind the opaque player token
// header. The token is an identity handle, not a credential: it scopes
// matches and profiles to a client without any account system.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerToken))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		c.Set(ctxKeyPlayerToken, token)
		c.Next()
	}
}

// playerToken returns the token stored by RequireToken.
func playerToken(c *gin.Context) string {
	v, _ := c.Get(ctxKeyPlayerToken)
	s, _ := v.(string)
	return s
}
