package storage

import (
	"errors"

	"github.com/duddn2012/GameServer/internal/game"
	"github.com/duddn2012/GameServer/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, keeps the schema updated
// via AutoMigrate and seeds skills and items from the loaded config.
func OpenAndMigrate(dataSourceName string, skills []game.Skill, items []game.Item) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.User{},
		&game.Character{},
		&game.Skill{},
		&game.SkillEffect{},
		&game.CharacterSkill{},
		&game.Item{},
		&game.CharacterItem{},
		&game.MatchRoom{},
		&game.MatchHistory{},
	)
	if err != nil {
		return nil, err
	}

	seedSkills(db, skills)
	seedItems(db, items)
	return db, nil
}

// seedSkills inserts configured skills on first boot. The config file
// is the source of truth for effect order; OrderNo values were assigned
// at load time and are persisted as-is.
func seedSkills(db *gorm.DB, skills []game.Skill) {
	var count int64
	db.Model(&game.Skill{}).Count(&count)
	if count > 0 {
		return
	}
	for i := range skills {
		s := skills[i]
		if err := db.Create(&s).Error; err != nil {
			logging.Error("failed to seed skill", err, logging.Fields{"skill": s.Name})
		}
	}
}

func seedItems(db *gorm.DB, items []game.Item) {
	var count int64
	db.Model(&game.Item{}).Count(&count)
	if count > 0 {
		return
	}
	for i := range items {
		it := items[i]
		if err := db.Create(&it).Error; err != nil {
			logging.Error("failed to seed item", err, logging.Fields{"item": it.Name})
		}
	}
}

// IsNotFound reports whether err is gorm's record-not-found error,
// letting callers map it to their own typed errors.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
