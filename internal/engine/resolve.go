package engine

import "github.com/duddn2012/GameServer/internal/game"

// TurnOutcome is the result of resolving one skill cast.
type TurnOutcome struct {
	GameOver    bool
	NextTurn    game.PlayerType
	HostStat    game.Stat
	EntrantStat game.Stat
}

// CastSkill applies a skill's effects, cast by the given role, onto the
// opposing snapshot of the room, strictly in list order. Afterwards it
// evaluates the game-over predicate: a knockout finishes the room in
// the same transition, otherwise the turn passes to the other player
// and the room stays in progress.
//
// Callers validate status, turn ownership and skill ownership before
// calling; no validation happens here so a cast never partially applies.
func CastSkill(room *game.MatchRoom, caster game.PlayerType, effects []game.SkillEffect) TurnOutcome {
	target := room.OpponentStat(caster)
	for _, effect := range effects {
		effect.ApplyTo(target)
	}

	out := TurnOutcome{
		HostStat:    room.HostStat,
		EntrantStat: room.EntrantStat,
	}
	if room.IsGameOver() {
		out.GameOver = true
		room.MatchStatus = game.StatusFinished
		return out
	}

	room.TurnOwner = game.TogglePlayerType(room.TurnOwner)
	out.NextTurn = room.TurnOwner
	return out
}
