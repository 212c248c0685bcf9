package api

import (
	"net/http"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/duddn2012/GameServer/internal/game"
	"github.com/gin-gonic/gin"
)

type CreateCharacterPayload struct {
	Name string `json:"name" binding:"required"`
}

// newCharacterBase is the stat sheet every fresh character starts with.
var newCharacterBase = game.Stat{HP: 100, Attack: 10, Defense: 5, Speed: 7}

// CreateCharacter makes a level-1 character for the session user.
func (h *Handler) CreateCharacter(c *gin.Context) {
	var req CreateCharacterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	ch := game.Character{
		UserID:   sessionUserID(c),
		Name:     req.Name,
		Level:    1,
		BaseStat: newCharacterBase,
	}
	if err := h.repo.CreateCharacter(&ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// ListCharacters returns the session user's characters.
func (h *Handler) ListCharacters(c *gin.Context) {
	cs, err := h.repo.ListCharactersByUser(sessionUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, cs)
}

// GetCharacter returns one character by id.
func (h *Handler) GetCharacter(c *gin.Context) {
	ch, err := h.repo.GetCharacterByID(pathID(c, "characterID"))
	if err != nil {
		abortLookupError(c, err, "Character not found")
		return
	}
	c.JSON(http.StatusOK, ch)
}

// GetTotalStat returns the character's aggregated battle sheet.
func (h *Handler) GetTotalStat(c *gin.Context) {
	ch, err := h.repo.GetCharacterByID(pathID(c, "characterID"))
	if err != nil {
		abortLookupError(c, err, "Character not found")
		return
	}
	total, err := h.svc.TotalStat(ch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, total)
}

// ListCharacterSkills returns the skills a character owns, effects included.
func (h *Handler) ListCharacterSkills(c *gin.Context) {
	skills, err := h.repo.ListCharacterSkills(pathID(c, "characterID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, skills)
}

// LearnSkill grants a skill to the session user's character.
func (h *Handler) LearnSkill(c *gin.Context) {
	characterID := pathID(c, "characterID")
	skillID := pathID(c, "skillID")

	ch, err := h.repo.GetCharacterByID(characterID)
	if err != nil || ch.UserID != sessionUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: "Character not found"})
		return
	}
	if _, err := h.repo.GetSkillByID(skillID); err != nil {
		abortLookupError(c, err, "Skill not found")
		return
	}
	owns, err := h.repo.CharacterOwnsSkill(characterID, skillID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if owns {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: "Skill already learned"})
		return
	}
	if err := h.repo.LearnSkill(characterID, skillID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"character_id": characterID, "skill_id": skillID})
}

type EquipPayload struct {
	Equipped bool `json:"equipped"`
}

// SetEquipment equips or unequips an item on the session user's character.
func (h *Handler) SetEquipment(c *gin.Context) {
	var req EquipPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	characterID := pathID(c, "characterID")
	itemID := pathID(c, "itemID")

	ch, err := h.repo.GetCharacterByID(characterID)
	if err != nil || ch.UserID != sessionUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: "Character not found"})
		return
	}
	if _, err := h.repo.GetItemByID(itemID); err != nil {
		abortLookupError(c, err, "Item not found")
		return
	}
	if err := h.repo.SetItemEquipped(characterID, itemID, req.Equipped); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, gin.H{"character_id": characterID, "item_id": itemID, "equipped": req.Equipped})
}

// ListSkills returns every configured skill.
func (h *Handler) ListSkills(c *gin.Context) {
	skills, err := h.repo.ListSkills()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, skills)
}

// ListItems returns every configured item.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.repo.ListItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, items)
}
