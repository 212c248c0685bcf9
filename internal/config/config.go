package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/duddn2012/GameServer/internal/game"
)

type effectEntry struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

type skillEntry struct {
	Name    string        `json:"name"`
	Effects []effectEntry `json:"effects"`
}

type itemEntry struct {
	Name  string    `json:"name"`
	Bonus game.Stat `json:"bonus"`
}

type rawConfig struct {
	SkillList []skillEntry `json:"skill_list"`
	ItemList  []itemEntry  `json:"item_list"`
	Server    *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the skills and items to seed and the server
// address to bind to.
type LoadedConfig struct {
	Skills        []game.Skill
	Items         []game.Item
	ServerAddress string
}

// LoadConfig reads the game-data configuration file at path. It
// requires the key `skill_list`; effect order inside each skill follows
// list order and is preserved through seeding.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.SkillList) == 0 {
		return nil, fmt.Errorf("config file %s: skill_list is empty (provide a 'skill_list' array)", path)
	}

	skills := make([]game.Skill, 0, len(rc.SkillList))
	nameSet := make(map[string]struct{}, len(rc.SkillList))
	for _, se := range rc.SkillList {
		if se.Name == "" {
			return nil, fmt.Errorf("config file %s: skill entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(se.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate skill name '%s'", path, se.Name)
		}
		nameSet[ln] = struct{}{}
		if len(se.Effects) == 0 {
			return nil, fmt.Errorf("config file %s: skill '%s' has no effects", path, se.Name)
		}
		effects := make([]game.SkillEffect, 0, len(se.Effects))
		for i, fe := range se.Effects {
			t := game.EffectType(fe.Type)
			if !t.Valid() {
				return nil, fmt.Errorf("config file %s: skill '%s' effect %d has unknown type '%s'", path, se.Name, i+1, fe.Type)
			}
			if fe.Amount <= 0 {
				return nil, fmt.Errorf("config file %s: skill '%s' effect %d must have a positive amount", path, se.Name, i+1)
			}
			effects = append(effects, game.SkillEffect{OrderNo: i + 1, Type: t, Amount: fe.Amount})
		}
		skills = append(skills, game.Skill{Name: se.Name, Effects: effects})
	}

	items := make([]game.Item, 0, len(rc.ItemList))
	itemSet := make(map[string]struct{}, len(rc.ItemList))
	for _, ie := range rc.ItemList {
		if ie.Name == "" {
			return nil, fmt.Errorf("config file %s: item entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(ie.Name))
		if _, exists := itemSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate item name '%s'", path, ie.Name)
		}
		itemSet[ln] = struct{}{}
		items = append(items, game.Item{Name: ie.Name, Bonus: ie.Bonus})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{Skills: skills, Items: items, ServerAddress: addr}, nil
}
