package game

import "gorm.io/gorm"

// MatchStatus tracks where a room is in its battle lifecycle.
type MatchStatus string

const (
	StatusWaiting    MatchStatus = "WAITING"
	StatusReady      MatchStatus = "READY"
	StatusInProgress MatchStatus = "IN_PROGRESS"
	StatusFinished   MatchStatus = "FINISHED"
)

// PlayerType is a player's role within a given match room.
type PlayerType string

const (
	PlayerNone    PlayerType = ""
	PlayerHost    PlayerType = "HOST"
	PlayerEntrant PlayerType = "ENTRANT"
)

// TogglePlayerType returns the opposing role. PlayerNone toggles to itself.
func TogglePlayerType(p PlayerType) PlayerType {
	switch p {
	case PlayerHost:
		return PlayerEntrant
	case PlayerEntrant:
		return PlayerHost
	default:
		return PlayerNone
	}
}

const (
	// MaxLevelDifference is the largest host/entrant level gap that
	// still allows entry.
	MaxLevelDifference = 2
	// StakedGoldPerLevel scales the room wager off the host's level.
	StakedGoldPerLevel = 100
)

// MakeStakedGold computes the wager fixed at room creation.
func MakeStakedGold(hostLevel int) int {
	return hostLevel * StakedGoldPerLevel
}

// MatchRoom is the aggregate tracking one battle's lifecycle between a
// host and an entrant. The stat snapshots belong to the room while a
// match runs; character rows are untouched until settlement.
type MatchRoom struct {
	gorm.Model
	HostID      uint        `json:"-" gorm:"index"`
	Host        Character   `json:"host"`
	EntrantID   *uint       `json:"-" gorm:"index"`
	Entrant     *Character  `json:"entrant,omitempty"`
	MatchStatus MatchStatus `json:"match_status"`
	StakedGold  int         `json:"staked_gold"`
	TurnOwner   PlayerType  `json:"turn_owner"`
	HostStat    Stat        `json:"host_stat" gorm:"embedded;embeddedPrefix:host_"`
	EntrantStat Stat        `json:"entrant_stat" gorm:"embedded;embeddedPrefix:entrant_"`
}

// HasEntrant reports whether the entrant slot is occupied.
func (m *MatchRoom) HasEntrant() bool {
	return m.EntrantID != nil
}

// SetEntrant fills the entrant slot. Callers must check HasEntrant and
// the level gap first; the aggregate does not re-validate here.
func (m *MatchRoom) SetEntrant(c *Character) {
	id := c.ID
	m.EntrantID = &id
	m.Entrant = c
}

// ClearEntrant empties the entrant slot again (entrant quit while the
// room was still waiting).
func (m *MatchRoom) ClearEntrant() {
	m.EntrantID = nil
	m.Entrant = nil
}

// PlayerTypeOf resolves a character id to its role in this room.
func (m *MatchRoom) PlayerTypeOf(characterID uint) PlayerType {
	if m.Host.ID == characterID {
		return PlayerHost
	}
	if m.EntrantID != nil && *m.EntrantID == characterID {
		return PlayerEntrant
	}
	return PlayerNone
}

// CharacterOf returns the character occupying the given slot, or nil.
func (m *MatchRoom) CharacterOf(p PlayerType) *Character {
	switch p {
	case PlayerHost:
		return &m.Host
	case PlayerEntrant:
		return m.Entrant
	default:
		return nil
	}
}

// StatOf returns the room-owned snapshot for the given slot.
func (m *MatchRoom) StatOf(p PlayerType) *Stat {
	switch p {
	case PlayerHost:
		return &m.HostStat
	case PlayerEntrant:
		return &m.EntrantStat
	default:
		return nil
	}
}

// OpponentStat returns the snapshot a skill cast by the given role
// lands on: the host hits the entrant's snapshot and vice versa.
func (m *MatchRoom) OpponentStat(caster PlayerType) *Stat {
	return m.StatOf(TogglePlayerType(caster))
}

// BeginBattle snapshots both total stat sheets into the room, assigns
// the first turn and moves the room to IN_PROGRESS. The first turn goes
// to the host only when its speed is strictly greater; a tie goes to
// the entrant.
func (m *MatchRoom) BeginBattle(hostTotal, entrantTotal Stat) {
	if hostTotal.Speed > entrantTotal.Speed {
		m.TurnOwner = PlayerHost
	} else {
		m.TurnOwner = PlayerEntrant
	}
	m.HostStat = hostTotal
	m.EntrantStat = entrantTotal
	m.MatchStatus = StatusInProgress
}

// IsGameOver reports whether either snapshot has dropped to zero hit
// points or below.
func (m *MatchRoom) IsGameOver() bool {
	return m.HostStat.IsDown() || m.EntrantStat.IsDown()
}

// WinnerType determines the surviving side. When both sides are down
// the higher remaining hit points win, and an exact tie goes to the
// host. Under the current effect set only one side can drop per turn,
// but the predicate stays total so future effect types cannot leave a
// finished match without a winner.
func (m *MatchRoom) WinnerType() PlayerType {
	hostDown := m.HostStat.IsDown()
	entrantDown := m.EntrantStat.IsDown()
	switch {
	case hostDown && entrantDown:
		if m.EntrantStat.HP > m.HostStat.HP {
			return PlayerEntrant
		}
		return PlayerHost
	case hostDown:
		return PlayerEntrant
	default:
		return PlayerHost
	}
}

// Forfeit marks the given side as defeated by zeroing its snapshot and
// finishing the match, so settlement treats a surrender like any other
// knockout.
func (m *MatchRoom) Forfeit(loser PlayerType) {
	if s := m.StatOf(loser); s != nil {
		s.HP = 0
	}
	m.MatchStatus = StatusFinished
}

// Reset returns the room to its initial waiting state so the instance
// can host another match. The staked gold is preserved; it was fixed
// from the host's level at creation.
func (m *MatchRoom) Reset() {
	m.ClearEntrant()
	m.MatchStatus = StatusWaiting
	m.TurnOwner = PlayerNone
	m.HostStat = Stat{}
	m.EntrantStat = Stat{}
}

// MatchHistory is the append-only record written once per settled
// match. It is never mutated or deleted.
type MatchHistory struct {
	gorm.Model
	MatchRoomID uint `json:"match_room_id" gorm:"index"`
	WinnerID    uint `json:"winner_id" gorm:"index"`
	LoserID     uint `json:"loser_id" gorm:"index"`
	StakedGold  int  `json:"staked_gold"`
}
