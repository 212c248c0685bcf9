package storage

import (
	"errors"
	"time"

	"github.com/duddn2012/GameServer/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// --- Users -------------------------------------------------------------

func (r *sqliteRepository) CreateUser(u *game.User) error {
	return r.db.Create(u).Error
}

func (r *sqliteRepository) GetUserByUsername(username string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) GetUserByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Characters --------------------------------------------------------

func (r *sqliteRepository) CreateCharacter(c *game.Character) error {
	return r.db.Create(c).Error
}

func (r *sqliteRepository) GetCharacterByID(id uint) (*game.Character, error) {
	var c game.Character
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) ListCharactersByUser(userID uint) ([]game.Character, error) {
	var cs []game.Character
	if err := r.db.Where("user_id = ?", userID).Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// --- Skills ------------------------------------------------------------

func (r *sqliteRepository) ListSkills() ([]game.Skill, error) {
	var skills []game.Skill
	err := r.db.Preload("Effects", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_no ASC")
	}).Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *sqliteRepository) GetSkillByID(id uint) (*game.Skill, error) {
	var s game.Skill
	err := r.db.Preload("Effects", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_no ASC")
	}).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) GetSkillEffects(skillID uint) ([]game.SkillEffect, error) {
	var effects []game.SkillEffect
	err := r.db.Where("skill_id = ?", skillID).Order("order_no ASC").Find(&effects).Error
	if err != nil {
		return nil, err
	}
	return effects, nil
}

func (r *sqliteRepository) CharacterOwnsSkill(characterID, skillID uint) (bool, error) {
	var count int64
	err := r.db.Model(&game.CharacterSkill{}).
		Where("character_id = ? AND skill_id = ?", characterID, skillID).
		Count(&count).Error
	return count > 0, err
}

func (r *sqliteRepository) ListCharacterSkills(characterID uint) ([]game.Skill, error) {
	var links []game.CharacterSkill
	if err := r.db.Where("character_id = ?", characterID).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []game.Skill{}, nil
	}
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.SkillID)
	}
	var skills []game.Skill
	err := r.db.Preload("Effects", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_no ASC")
	}).Where("id IN ?", ids).Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *sqliteRepository) LearnSkill(characterID, skillID uint) error {
	return r.db.Create(&game.CharacterSkill{CharacterID: characterID, SkillID: skillID}).Error
}

// --- Items -------------------------------------------------------------

func (r *sqliteRepository) ListItems() ([]game.Item, error) {
	var items []game.Item
	if err := r.db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *sqliteRepository) GetItemByID(id uint) (*game.Item, error) {
	var it game.Item
	if err := r.db.First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *sqliteRepository) ListEquippedItems(characterID uint) ([]game.Item, error) {
	var links []game.CharacterItem
	err := r.db.Where("character_id = ? AND equipped = ?", characterID, true).Find(&links).Error
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []game.Item{}, nil
	}
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ItemID)
	}
	var items []game.Item
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *sqliteRepository) SetItemEquipped(characterID, itemID uint, equipped bool) error {
	var link game.CharacterItem
	err := r.db.Where("character_id = ? AND item_id = ?", characterID, itemID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		link = game.CharacterItem{CharacterID: characterID, ItemID: itemID, Equipped: equipped}
		return r.db.Create(&link).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&link).Update("equipped", equipped).Error
}

// --- Match rooms -------------------------------------------------------

func (r *sqliteRepository) CreateMatchRoom(m *game.MatchRoom) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchRoomByID(id uint) (*game.MatchRoom, error) {
	var m game.MatchRoom
	if err := r.db.Preload("Host").Preload("Entrant").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMatchRooms returns one page of rooms ordered by id, plus whether
// another page exists. It fetches limit+1 rows to detect the next page
// without a count query.
func (r *sqliteRepository) ListMatchRooms(offset, limit int) ([]game.MatchRoom, bool, error) {
	var rooms []game.MatchRoom
	err := r.db.Preload("Host").Preload("Entrant").
		Order("id ASC").Offset(offset).Limit(limit + 1).Find(&rooms).Error
	if err != nil {
		return nil, false, err
	}
	hasNext := len(rooms) > limit
	if hasNext {
		rooms = rooms[:limit]
	}
	return rooms, hasNext, nil
}

func (r *sqliteRepository) UpdateMatchRoom(m *game.MatchRoom) error {
	// Save alone skips nil fields; the entrant slot and turn owner must
	// be written even when cleared, so list the columns explicitly.
	return r.db.Model(m).Select(
		"entrant_id", "match_status", "staked_gold", "turn_owner",
		"host_hp", "host_attack", "host_defense", "host_speed",
		"entrant_hp", "entrant_attack", "entrant_defense", "entrant_speed",
	).Updates(map[string]interface{}{
		"entrant_id":      m.EntrantID,
		"match_status":    m.MatchStatus,
		"staked_gold":     m.StakedGold,
		"turn_owner":      m.TurnOwner,
		"host_hp":         m.HostStat.HP,
		"host_attack":     m.HostStat.Attack,
		"host_defense":    m.HostStat.Defense,
		"host_speed":      m.HostStat.Speed,
		"entrant_hp":      m.EntrantStat.HP,
		"entrant_attack":  m.EntrantStat.Attack,
		"entrant_defense": m.EntrantStat.Defense,
		"entrant_speed":   m.EntrantStat.Speed,
	}).Error
}

func (r *sqliteRepository) FindStaleInProgressRooms(before time.Time) ([]game.MatchRoom, error) {
	var rooms []game.MatchRoom
	err := r.db.Where("match_status = ? AND updated_at <= ?", game.StatusInProgress, before).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// --- Settlement --------------------------------------------------------

// EndMatch commits the reward credits, the history record and the room
// reset as one unit, so a partial settlement can never be observed.
func (r *sqliteRepository) EndMatch(room *game.MatchRoom, winner, loser *game.Character, history *game.MatchHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(winner).Updates(map[string]interface{}{
			"money":      winner.Money,
			"experience": winner.Experience,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(loser).Updates(map[string]interface{}{
			"money":      loser.Money,
			"experience": loser.Experience,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}
		return tx.Model(room).Select(
			"entrant_id", "match_status", "turn_owner",
			"host_hp", "host_attack", "host_defense", "host_speed",
			"entrant_hp", "entrant_attack", "entrant_defense", "entrant_speed",
		).Updates(map[string]interface{}{
			"entrant_id":      nil,
			"match_status":    room.MatchStatus,
			"turn_owner":      room.TurnOwner,
			"host_hp":         0,
			"host_attack":     0,
			"host_defense":    0,
			"host_speed":      0,
			"entrant_hp":      0,
			"entrant_attack":  0,
			"entrant_defense": 0,
			"entrant_speed":   0,
		}).Error
	})
}

func (r *sqliteRepository) ListMatchHistories(characterID uint) ([]game.MatchHistory, error) {
	var hs []game.MatchHistory
	err := r.db.Where("winner_id = ? OR loser_id = ?", characterID, characterID).
		Order("id DESC").Find(&hs).Error
	if err != nil {
		return nil, err
	}
	return hs, nil
}
