package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/duddn2012/GameServer/internal/engine"
	"github.com/duddn2012/GameServer/internal/game"
)

// Repo is the minimal repository interface required by the match
// service. Using a small interface simplifies testing.
type Repo interface {
	GetCharacterByID(id uint) (*game.Character, error)

	CreateMatchRoom(m *game.MatchRoom) error
	GetMatchRoomByID(id uint) (*game.MatchRoom, error)
	ListMatchRooms(offset, limit int) ([]game.MatchRoom, bool, error)
	UpdateMatchRoom(m *game.MatchRoom) error
	FindStaleInProgressRooms(before time.Time) ([]game.MatchRoom, error)

	GetSkillByID(id uint) (*game.Skill, error)
	GetSkillEffects(skillID uint) ([]game.SkillEffect, error)
	CharacterOwnsSkill(characterID, skillID uint) (bool, error)
	ListCharacterSkills(characterID uint) ([]game.Skill, error)
	ListEquippedItems(characterID uint) ([]game.Item, error)

	EndMatch(room *game.MatchRoom, winner, loser *game.Character, history *game.MatchHistory) error
	ListMatchHistories(characterID uint) ([]game.MatchHistory, error)
}

var (
	ErrCharacterNotFound      = errors.New("character not found")
	ErrMatchRoomNotFound      = errors.New("match room not found")
	ErrMatchRoomFull          = errors.New("match room is full")
	ErrLevelDifferenceInvalid = errors.New("level difference exceeds the entry limit")
	ErrPlayerTypeInvalid      = errors.New("caller is not a player in this room")
	ErrPlayerTypeNotHost      = errors.New("only the host may perform this action")
	ErrTurnOwnerInvalid       = errors.New("it is not the caller's turn")
	ErrMatchStatusInvalid     = errors.New("match status does not allow this action")
	ErrSkillNotFound          = errors.New("skill not found")
	ErrSkillNotOwned          = errors.New("character does not own this skill")
)

// Service is the request-level orchestrator for match rooms. Every
// action loads the room, validates preconditions in order, mutates the
// aggregate and persists the result, all while holding the room's lock
// so actions against one room are serialized.
type Service struct {
	repo  Repo
	locks *roomLocks
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo, locks: newRoomLocks()}
}

// SkillSummary is the compact skill listing shipped in start results.
type SkillSummary struct {
	SkillID uint   `json:"skill_id"`
	Name    string `json:"name"`
}

// RoomResult describes a room to lobby clients.
type RoomResult struct {
	MatchRoomID uint             `json:"match_room_id"`
	HostName    string           `json:"host_name"`
	HostLevel   int              `json:"host_level"`
	EntrantName string           `json:"entrant_name,omitempty"`
	MatchStatus game.MatchStatus `json:"match_status"`
	StakedGold  int              `json:"staked_gold"`
}

// ReadyResult reports both sides' readiness and the resulting status.
type ReadyResult struct {
	HostReady    bool             `json:"host_ready"`
	EntrantReady bool             `json:"entrant_ready"`
	MatchStatus  game.MatchStatus `json:"match_status"`
}

// StartResult carries everything clients need to render the opening
// turn: both total sheets, both skill lists and the first turn owner.
type StartResult struct {
	MatchStatus   game.MatchStatus `json:"match_status"`
	HostStat      game.Stat        `json:"host_stat"`
	EntrantStat   game.Stat        `json:"entrant_stat"`
	HostSkills    []SkillSummary   `json:"host_skills"`
	EntrantSkills []SkillSummary   `json:"entrant_skills"`
	TurnOwner     game.PlayerType  `json:"turn_owner"`
	Message       string           `json:"message"`
}

// TurnResult is the outcome of one resolved turn. A terminal turn sets
// GameOver and leaves TurnOwner empty.
type TurnResult struct {
	GameOver    bool             `json:"game_over"`
	MatchStatus game.MatchStatus `json:"match_status"`
	HostStat    game.Stat        `json:"host_stat"`
	EntrantStat game.Stat        `json:"entrant_stat"`
	TurnOwner   game.PlayerType  `json:"turn_owner,omitempty"`
	SkillName   string           `json:"skill_name,omitempty"`
}

// EndResult reports the settlement of a finished match.
type EndResult struct {
	WinnerType       game.PlayerType `json:"winner_type"`
	LoserType        game.PlayerType `json:"loser_type"`
	WinnerName       string          `json:"winner_name"`
	LoserName        string          `json:"loser_name"`
	WinnerGold       int             `json:"winner_gold"`
	LoserGold        int             `json:"loser_gold"`
	WinnerExperience int             `json:"winner_experience"`
	LoserExperience  int             `json:"loser_experience"`
}

// GreetingResult is the static announcement broadcast when a character
// joins the play channel.
type GreetingResult struct {
	Message string `json:"message"`
}

func roomResult(m *game.MatchRoom) *RoomResult {
	res := &RoomResult{
		MatchRoomID: m.ID,
		HostName:    m.Host.Name,
		HostLevel:   m.Host.Level,
		MatchStatus: m.MatchStatus,
		StakedGold:  m.StakedGold,
	}
	if m.Entrant != nil {
		res.EntrantName = m.Entrant.Name
	}
	return res
}

// CreateRoom opens a new waiting room hosted by the given character.
// The staked gold is fixed here from the host's level.
func (s *Service) CreateRoom(characterID uint) (*RoomResult, error) {
	host, err := s.repo.GetCharacterByID(characterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrCharacterNotFound, characterID)
	}

	room := &game.MatchRoom{
		HostID:      host.ID,
		Host:        *host,
		MatchStatus: game.StatusWaiting,
		StakedGold:  game.MakeStakedGold(host.Level),
	}
	if err := s.repo.CreateMatchRoom(room); err != nil {
		return nil, err
	}
	return roomResult(room), nil
}

// Rooms returns one page of match rooms plus a next-page indicator.
func (s *Service) Rooms(page, size int) ([]RoomResult, bool, error) {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	rooms, hasNext, err := s.repo.ListMatchRooms(page*size, size)
	if err != nil {
		return nil, false, err
	}
	out := make([]RoomResult, 0, len(rooms))
	for i := range rooms {
		out = append(out, *roomResult(&rooms[i]))
	}
	return out, hasNext, nil
}

// Enter puts the calling character into the room's entrant slot. The
// slot must be free and the level gap within the entry limit.
func (s *Service) Enter(characterID, matchRoomID uint) (*RoomResult, error) {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	entrant, err := s.repo.GetCharacterByID(characterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrCharacterNotFound, characterID)
	}
	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrMatchRoomNotFound, matchRoomID)
	}

	if room.HasEntrant() {
		return nil, fmt.Errorf("%w: %d", ErrMatchRoomFull, matchRoomID)
	}
	diff := room.Host.Level - entrant.Level
	if diff > game.MaxLevelDifference || diff < -game.MaxLevelDifference {
		return nil, fmt.Errorf("%w: difference %d", ErrLevelDifferenceInvalid, diff)
	}

	room.SetEntrant(entrant)
	if err := s.repo.UpdateMatchRoom(room); err != nil {
		return nil, err
	}
	return roomResult(room), nil
}

// Ready recomputes the room's readiness status. The caller supplies its
// own readiness plus the opponent's current readiness; the pair is
// mapped onto the host/entrant slots depending on which one the caller
// occupies. Both ready moves the room to READY, anything else back to
// WAITING.
func (s *Service) Ready(characterID, matchRoomID uint, selfReady, opponentReady bool) (*ReadyResult, error) {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrMatchRoomNotFound, matchRoomID)
	}
	if room.MatchStatus != game.StatusWaiting && room.MatchStatus != game.StatusReady {
		return nil, fmt.Errorf("%w: %s", ErrMatchStatusInvalid, room.MatchStatus)
	}
	// Readiness needs an opponent; a lone host cannot move the room to
	// READY and sneak past the entrant checks in Start.
	if !room.HasEntrant() {
		return nil, fmt.Errorf("%w: room %d has no entrant", ErrMatchStatusInvalid, matchRoomID)
	}

	var hostReady, entrantReady bool
	switch room.PlayerTypeOf(characterID) {
	case game.PlayerHost:
		hostReady, entrantReady = selfReady, opponentReady
	case game.PlayerEntrant:
		hostReady, entrantReady = opponentReady, selfReady
	default:
		return nil, fmt.Errorf("%w: character %d", ErrPlayerTypeInvalid, characterID)
	}

	if hostReady && entrantReady {
		room.MatchStatus = game.StatusReady
	} else {
		room.MatchStatus = game.StatusWaiting
	}
	if err := s.repo.UpdateMatchRoom(room); err != nil {
		return nil, err
	}

	return &ReadyResult{HostReady: hostReady, EntrantReady: entrantReady, MatchStatus: room.MatchStatus}, nil
}

// Start begins the battle: both characters' total sheets are pulled
// fresh, snapshotted into the room, and the first turn is assigned by
// speed (ties go to the entrant).
func (s *Service) Start(characterID, matchRoomID uint) (*StartResult, error) {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrMatchRoomNotFound, matchRoomID)
	}
	if room.MatchStatus != game.StatusReady {
		return nil, fmt.Errorf("%w: %s", ErrMatchStatusInvalid, room.MatchStatus)
	}
	if !room.HasEntrant() || room.Entrant == nil {
		return nil, fmt.Errorf("%w: room %d has no entrant", ErrMatchStatusInvalid, matchRoomID)
	}
	if room.PlayerTypeOf(characterID) == game.PlayerNone {
		return nil, fmt.Errorf("%w: character %d", ErrPlayerTypeInvalid, characterID)
	}

	hostTotal, err := s.TotalStat(&room.Host)
	if err != nil {
		return nil, err
	}
	entrantTotal, err := s.TotalStat(room.Entrant)
	if err != nil {
		return nil, err
	}
	hostSkills, err := s.skillSummaries(room.Host.ID)
	if err != nil {
		return nil, err
	}
	entrantSkills, err := s.skillSummaries(room.Entrant.ID)
	if err != nil {
		return nil, err
	}

	room.BeginBattle(hostTotal, entrantTotal)
	if err := s.repo.UpdateMatchRoom(room); err != nil {
		return nil, err
	}

	return &StartResult{
		MatchStatus:   room.MatchStatus,
		HostStat:      room.HostStat,
		EntrantStat:   room.EntrantStat,
		HostSkills:    hostSkills,
		EntrantSkills: entrantSkills,
		TurnOwner:     room.TurnOwner,
		Message:       fmt.Sprintf("The battle begins. %s's turn!", room.TurnOwner),
	}, nil
}

// CastTurn resolves one skill cast by the current turn owner. All
// validations run before any effect lands, so a rejected turn leaves
// the room untouched.
func (s *Service) CastTurn(characterID, matchRoomID, skillID uint) (*TurnResult, error) {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrMatchRoomNotFound, matchRoomID)
	}
	if room.MatchStatus != game.StatusInProgress {
		return nil, fmt.Errorf("%w: %s", ErrMatchStatusInvalid, room.MatchStatus)
	}
	caster := room.PlayerTypeOf(characterID)
	if caster == game.PlayerNone {
		return nil, fmt.Errorf("%w: character %d", ErrPlayerTypeInvalid, characterID)
	}
	if caster != room.TurnOwner {
		return nil, fmt.Errorf("%w: character %d", ErrTurnOwnerInvalid, characterID)
	}

	skill, err := s.repo.GetSkillByID(skillID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrSkillNotFound, skillID)
	}
	owns, err := s.repo.CharacterOwnsSkill(characterID, skillID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, fmt.Errorf("%w: character %d, skill %d", ErrSkillNotOwned, characterID, skillID)
	}
	effects, err := s.repo.GetSkillEffects(skillID)
	if err != nil {
		return nil, err
	}

	outcome := engine.CastSkill(room, caster, effects)
	if err := s.repo.UpdateMatchRoom(room); err != nil {
		return nil, err
	}

	return &TurnResult{
		GameOver:    outcome.GameOver,
		MatchStatus: room.MatchStatus,
		HostStat:    outcome.HostStat,
		EntrantStat: outcome.EntrantStat,
		TurnOwner:   outcome.NextTurn,
		SkillName:   skill.Name,
	}, nil
}

// End settles a finished match. Only the host may trigger settlement.
// Reward credits, the history record and the room reset commit as one
// transaction, after which the room is back in WAITING and reusable.
func (s *Service) End(characterID, matchRoomID uint) (*EndResult, error) {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrMatchRoomNotFound, matchRoomID)
	}
	if room.MatchStatus != game.StatusFinished {
		return nil, fmt.Errorf("%w: %s", ErrMatchStatusInvalid, room.MatchStatus)
	}
	caller := room.PlayerTypeOf(characterID)
	if caller == game.PlayerNone {
		return nil, fmt.Errorf("%w: character %d", ErrPlayerTypeInvalid, characterID)
	}
	if caller != game.PlayerHost {
		return nil, fmt.Errorf("%w: character %d", ErrPlayerTypeNotHost, characterID)
	}

	winnerType := room.WinnerType()
	loserType := game.TogglePlayerType(winnerType)
	winner := room.CharacterOf(winnerType)
	loser := room.CharacterOf(loserType)

	settlement := engine.Settle(winner.Level, loser.Level, room.StakedGold)
	winner.CreditReward(settlement.WinnerGold, settlement.WinnerExperience)
	loser.CreditReward(settlement.LoserGold, settlement.LoserExperience)

	history := &game.MatchHistory{
		MatchRoomID: room.ID,
		WinnerID:    winner.ID,
		LoserID:     loser.ID,
		StakedGold:  room.StakedGold,
	}

	result := &EndResult{
		WinnerType:       winnerType,
		LoserType:        loserType,
		WinnerName:       winner.Name,
		LoserName:        loser.Name,
		WinnerGold:       settlement.WinnerGold,
		LoserGold:        settlement.LoserGold,
		WinnerExperience: settlement.WinnerExperience,
		LoserExperience:  settlement.LoserExperience,
	}

	room.Reset()
	if err := s.repo.EndMatch(room, winner, loser, history); err != nil {
		return nil, err
	}
	return result, nil
}

// Surrender forfeits an in-progress match on behalf of the caller. The
// room moves to FINISHED with the opponent as winner; settlement still
// happens through End.
func (s *Service) Surrender(characterID, matchRoomID uint) (*TurnResult, error) {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrMatchRoomNotFound, matchRoomID)
	}
	if room.MatchStatus != game.StatusInProgress {
		return nil, fmt.Errorf("%w: %s", ErrMatchStatusInvalid, room.MatchStatus)
	}
	caller := room.PlayerTypeOf(characterID)
	if caller == game.PlayerNone {
		return nil, fmt.Errorf("%w: character %d", ErrPlayerTypeInvalid, characterID)
	}

	room.Forfeit(caller)
	if err := s.repo.UpdateMatchRoom(room); err != nil {
		return nil, err
	}

	return &TurnResult{
		GameOver:    true,
		MatchStatus: room.MatchStatus,
		HostStat:    room.HostStat,
		EntrantStat: room.EntrantStat,
	}, nil
}

// Quit lets the entrant leave a room that has not started yet, freeing
// the slot for someone else.
func (s *Service) Quit(characterID, matchRoomID uint) error {
	unlock := s.locks.acquire(matchRoomID)
	defer unlock()

	room, err := s.repo.GetMatchRoomByID(matchRoomID)
	if err != nil {
		return fmt.Errorf("%w: %d", ErrMatchRoomNotFound, matchRoomID)
	}
	if room.MatchStatus != game.StatusWaiting && room.MatchStatus != game.StatusReady {
		return fmt.Errorf("%w: %s", ErrMatchStatusInvalid, room.MatchStatus)
	}
	if room.PlayerTypeOf(characterID) != game.PlayerEntrant {
		return fmt.Errorf("%w: character %d", ErrPlayerTypeInvalid, characterID)
	}

	room.ClearEntrant()
	room.MatchStatus = game.StatusWaiting
	return s.repo.UpdateMatchRoom(room)
}

// Greeting builds the static join announcement.
func (s *Service) Greeting(characterID uint) GreetingResult {
	return GreetingResult{Message: fmt.Sprintf("Character %d has entered the room.", characterID)}
}

// Histories lists the caller's settled matches, newest first.
func (s *Service) Histories(characterID uint) ([]game.MatchHistory, error) {
	return s.repo.ListMatchHistories(characterID)
}

func (s *Service) skillSummaries(characterID uint) ([]SkillSummary, error) {
	skills, err := s.repo.ListCharacterSkills(characterID)
	if err != nil {
		return nil, err
	}
	out := make([]SkillSummary, 0, len(skills))
	for _, sk := range skills {
		out = append(out, SkillSummary{SkillID: sk.ID, Name: sk.Name})
	}
	return out, nil
}
