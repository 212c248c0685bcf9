package api

import (
	"net/http"
	"strconv"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/duddn2012/GameServer/internal/service"
	"github.com/duddn2012/GameServer/internal/storage"
	"github.com/gin-gonic/gin"
)

// Handler groups all game-related HTTP handlers.
type Handler struct {
	repo storage.Repository
	svc  *service.Service
}

// NewHandler creates a Handler using the given repository and match service.
func NewHandler(repo storage.Repository, svc *service.Service) *Handler {
	return &Handler{repo: repo, svc: svc}
}

// pathID parses a numeric path parameter, returning 0 when absent or invalid.
func pathID(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// abortLookupError distinguishes a missing record from a storage
// failure when a repository lookup errors.
func abortLookupError(c *gin.Context, err error, notFoundMsg string) {
	if storage.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: notFoundMsg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
}
