package storage

import (
	"time"

	"github.com/duddn2012/GameServer/internal/game"
)

// Repository is the persistence surface of the server. The match
// service depends on the narrower service.Repo subset; this interface
// adds the account/character/item plumbing the HTTP handlers need.
type Repository interface {
	// Users
	CreateUser(u *game.User) error
	GetUserByUsername(username string) (*game.User, error)
	GetUserByEmail(email string) (*game.User, error)

	// Characters
	CreateCharacter(c *game.Character) error
	GetCharacterByID(id uint) (*game.Character, error)
	ListCharactersByUser(userID uint) ([]game.Character, error)

	// Skills
	ListSkills() ([]game.Skill, error)
	GetSkillByID(id uint) (*game.Skill, error)
	// GetSkillEffects returns the skill's effects ordered by OrderNo.
	GetSkillEffects(skillID uint) ([]game.SkillEffect, error)
	CharacterOwnsSkill(characterID, skillID uint) (bool, error)
	ListCharacterSkills(characterID uint) ([]game.Skill, error)
	LearnSkill(characterID, skillID uint) error

	// Items
	ListItems() ([]game.Item, error)
	GetItemByID(id uint) (*game.Item, error)
	ListEquippedItems(characterID uint) ([]game.Item, error)
	SetItemEquipped(characterID, itemID uint, equipped bool) error

	// Match rooms
	CreateMatchRoom(m *game.MatchRoom) error
	GetMatchRoomByID(id uint) (*game.MatchRoom, error)
	ListMatchRooms(offset, limit int) ([]game.MatchRoom, bool, error)
	UpdateMatchRoom(m *game.MatchRoom) error
	// FindStaleInProgressRooms returns rooms still IN_PROGRESS whose
	// last update is at or before the given time. The sweeper uses this
	// to reclaim abandoned matches.
	FindStaleInProgressRooms(before time.Time) ([]game.MatchRoom, error)

	// Settlement. EndMatch commits the character credits, the history
	// append and the room reset as one transaction.
	EndMatch(room *game.MatchRoom, winner, loser *game.Character, history *game.MatchHistory) error
	ListMatchHistories(characterID uint) ([]game.MatchHistory, error)
}
