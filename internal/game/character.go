package game

import "gorm.io/gorm"

// User stores account identity. Characters belong to users; play
// actions are always performed as a character.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex"`
	Email        string `json:"email" gorm:"index"`
	PasswordHash string `json:"-"`
}

// Character is a playable avatar with a level, wallet and base stat
// sheet. Money and experience are only ever mutated during settlement;
// battle damage lands on the match room's snapshots, never here.
type Character struct {
	gorm.Model
	UserID     uint   `json:"-" gorm:"index"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Money      int    `json:"money"`
	Experience int    `json:"experience"`
	BaseStat   Stat   `json:"base_stat" gorm:"embedded;embeddedPrefix:base_"`
}

// levelGrowth is the flat stat gain applied per level above 1 when
// aggregating a character's total sheet.
var levelGrowth = Stat{HP: 10, Attack: 2, Defense: 2, Speed: 1}

// LevelBonus returns the growth portion of the character's total stat.
func (c *Character) LevelBonus() Stat {
	n := c.Level - 1
	if n < 0 {
		n = 0
	}
	return levelGrowth.Scale(n)
}

// CreditReward adds settlement gold and experience to the character.
func (c *Character) CreditReward(gold, exp int) {
	c.Money += gold
	c.Experience += exp
}

// Item is an equippable piece of gear granting a flat stat bonus.
type Item struct {
	gorm.Model
	Name  string `json:"name" gorm:"uniqueIndex"`
	Bonus Stat   `json:"bonus" gorm:"embedded;embeddedPrefix:bonus_"`
}

// CharacterItem links an owned item to a character. Only equipped items
// contribute to stat aggregation.
type CharacterItem struct {
	gorm.Model
	CharacterID uint `json:"character_id" gorm:"index:idx_character_item,unique"`
	ItemID      uint `json:"item_id" gorm:"index:idx_character_item,unique"`
	Equipped    bool `json:"equipped"`
}
