package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/duddn2012/GameServer/internal/service"
	"github.com/gin-gonic/gin"
)

// statusForServiceError maps the orchestrator's typed failures to HTTP
// status codes. Unknown errors are treated as internal.
func statusForServiceError(err error) int {
	switch {
	case errors.Is(err, service.ErrCharacterNotFound),
		errors.Is(err, service.ErrMatchRoomNotFound),
		errors.Is(err, service.ErrSkillNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMatchRoomFull),
		errors.Is(err, service.ErrMatchStatusInvalid),
		errors.Is(err, service.ErrTurnOwnerInvalid):
		return http.StatusConflict
	case errors.Is(err, service.ErrLevelDifferenceInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPlayerTypeInvalid),
		errors.Is(err, service.ErrPlayerTypeNotHost),
		errors.Is(err, service.ErrSkillNotOwned):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func abortServiceError(c *gin.Context, err error) {
	c.JSON(statusForServiceError(err), gin.H{constants.JSONKeyError: err.Error()})
}

// ListMatchRooms returns one page of rooms for the lobby.
func (h *Handler) ListMatchRooms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	rooms, hasNext, err := h.svc.Rooms(page, size)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "has_next": hasNext})
}

// CreateMatchRoom opens a room hosted by the session character.
func (h *Handler) CreateMatchRoom(c *gin.Context) {
	characterID, ok := requireCharacter(c)
	if !ok {
		return
	}
	res, err := h.svc.CreateRoom(characterID)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// EnterMatchRoom joins the session character as the room's entrant.
func (h *Handler) EnterMatchRoom(c *gin.Context) {
	characterID, ok := requireCharacter(c)
	if !ok {
		return
	}
	res, err := h.svc.Enter(characterID, pathID(c, "matchRoomID"))
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListMatchHistories returns the session character's settled matches.
func (h *Handler) ListMatchHistories(c *gin.Context) {
	characterID, ok := requireCharacter(c)
	if !ok {
		return
	}
	hs, err := h.svc.Histories(characterID)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hs)
}
