package service

import (
	"time"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/duddn2012/GameServer/internal/game"
	"github.com/duddn2012/GameServer/internal/logging"
)

// ExpireStaleRooms reclaims rooms stuck IN_PROGRESS past the given age,
// resetting them to WAITING without settlement. Abandoned matches pay
// out nothing and write no history. Each room is re-checked under its
// own lock so an active match that progressed since the scan is left
// alone. Returns the number of rooms reset.
func (s *Service) ExpireStaleRooms(olderThan time.Duration) (int, error) {
	deadline := time.Now().Add(-olderThan)
	stale, err := s.repo.FindStaleInProgressRooms(deadline)
	if err != nil {
		return 0, err
	}

	reset := 0
	for i := range stale {
		id := stale[i].ID
		if s.expireRoom(id, deadline) {
			reset++
		}
	}
	return reset, nil
}

func (s *Service) expireRoom(matchRoomID uint, deadline time.Time) bool {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return false
	}
	// A turn may have landed between the scan and the lock.
	if room.MatchStatus != game.StatusInProgress || room.UpdatedAt.After(deadline) {
		return false
	}

	room.Reset()
	if err := s.repo.UpdateMatchRoom(room); err != nil {
		logging.Error("failed to expire stale room", err, logging.Fields{constants.LogFieldMatchRoomID: matchRoomID})
		return false
	}
	logging.Info("stale room reset", logging.Fields{constants.LogFieldMatchRoomID: matchRoomID})
	return true
}
