package api

import (
	"net/http"
	"strings"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/gin-gonic/gin"
)

const (
	ctxKeyUserID      = "userID"
	ctxKeyCharacterID = "characterID"
)

// AuthRequired validates the Bearer token and injects identity into the
// request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(auth, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(strings.TrimPrefix(auth, constants.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxKeyUserID, claims.UserID)
		if claims.CharacterID != 0 {
			c.Set(ctxKeyCharacterID, claims.CharacterID)
		}
		c.Next()
	}
}

// sessionUserID returns the authenticated user id from the context.
func sessionUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// sessionCharacterID returns the character the token is scoped to, or
// zero when the token is account-only.
func sessionCharacterID(c *gin.Context) uint {
	if v, ok := c.Get(ctxKeyCharacterID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// requireCharacter aborts with 403 unless the token carries a character
// scope, returning the character id otherwise.
func requireCharacter(c *gin.Context) (uint, bool) {
	id := sessionCharacterID(c)
	if id == 0 {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrCharacterRequired})
		return 0, false
	}
	return id, true
}
