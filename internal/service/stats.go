package service

import (
	"fmt"

	"github.com/duddn2012/GameServer/internal/dedupe"
	"github.com/duddn2012/GameServer/internal/game"
)

// TotalStat aggregates a character's full battle sheet: base stat plus
// per-level growth plus every equipped item bonus. Concurrent
// aggregations for the same character share one computation.
func (s *Service) TotalStat(c *game.Character) (game.Stat, error) {
	v, err, _ := dedupe.StatGroup.Do(fmt.Sprintf("stat:%d", c.ID), func() (interface{}, error) {
		items, err := s.repo.ListEquippedItems(c.ID)
		if err != nil {
			return game.Stat{}, err
		}
		total := c.BaseStat.Add(c.LevelBonus())
		for _, it := range items {
			total = total.Add(it.Bonus)
		}
		return total, nil
	})
	if err != nil {
		return game.Stat{}, err
	}
	return v.(game.Stat), nil
}
