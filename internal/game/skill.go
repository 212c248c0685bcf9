package game

import "gorm.io/gorm"

// EffectType is a string alias describing what a skill effect does to
// its target. Using a dedicated type instead of plain string makes code
// safer and self-documenting.
type EffectType string

const (
	// EffectDamage subtracts the effect amount from the target's hit points.
	EffectDamage EffectType = "damage"
	// EffectRecovery adds the effect amount to the target's hit points.
	EffectRecovery EffectType = "recovery"
)

// Valid reports whether t is one of the known effect types.
func (t EffectType) Valid() bool {
	return t == EffectDamage || t == EffectRecovery
}

// Skill is a castable ability owned by characters. Its effects form an
// ordered list; order is significant and preserved from configuration
// through persistence to application.
type Skill struct {
	gorm.Model
	Name    string        `json:"name" gorm:"uniqueIndex"`
	Effects []SkillEffect `json:"effects"`
}

// SkillEffect is one atomic numeric modification applied to a stat as
// part of casting a skill. OrderNo fixes the application order within
// the owning skill.
type SkillEffect struct {
	gorm.Model
	SkillID uint       `json:"-" gorm:"index"`
	OrderNo int        `json:"order_no"`
	Type    EffectType `json:"type"`
	Amount  int        `json:"amount"`
}

// ApplyTo mutates the target stat block according to the effect type.
// Damage subtracts, recovery adds; no floor or ceiling is applied.
func (e SkillEffect) ApplyTo(s *Stat) {
	switch e.Type {
	case EffectRecovery:
		s.HP += e.Amount
	default:
		s.HP -= e.Amount
	}
}

// CharacterSkill is the ownership join between characters and skills.
type CharacterSkill struct {
	gorm.Model
	CharacterID uint `json:"character_id" gorm:"index:idx_character_skill,unique"`
	SkillID     uint `json:"skill_id" gorm:"index:idx_character_skill,unique"`
}
