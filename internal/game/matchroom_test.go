package game

import "testing"

func host(level int) Character {
	c := Character{Name: "host", Level: level}
	c.ID = 1
	return c
}

func entrant(level int) *Character {
	c := &Character{Name: "entrant", Level: level}
	c.ID = 2
	return c
}

func TestMakeStakedGold(t *testing.T) {
	if got := MakeStakedGold(4); got != 400 {
		t.Fatalf("expected 400, got %d", got)
	}
}

func TestPlayerTypeOf(t *testing.T) {
	m := &MatchRoom{Host: host(3), MatchStatus: StatusWaiting}
	m.SetEntrant(entrant(3))

	if got := m.PlayerTypeOf(1); got != PlayerHost {
		t.Fatalf("expected HOST, got %q", got)
	}
	if got := m.PlayerTypeOf(2); got != PlayerEntrant {
		t.Fatalf("expected ENTRANT, got %q", got)
	}
	if got := m.PlayerTypeOf(99); got != PlayerNone {
		t.Fatalf("expected no role for a stranger, got %q", got)
	}
}

func TestTogglePlayerType(t *testing.T) {
	if TogglePlayerType(PlayerHost) != PlayerEntrant || TogglePlayerType(PlayerEntrant) != PlayerHost {
		t.Fatalf("toggle must swap roles")
	}
	if TogglePlayerType(PlayerNone) != PlayerNone {
		t.Fatalf("toggling no role must stay no role")
	}
}

func TestBeginBattle_FirstTurnBySpeed(t *testing.T) {
	cases := []struct {
		name            string
		hostSpd, entSpd int
		want            PlayerType
	}{
		{"host faster", 8, 7, PlayerHost},
		{"entrant faster", 7, 8, PlayerEntrant},
		{"speed tie goes to entrant", 7, 7, PlayerEntrant},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &MatchRoom{Host: host(3), MatchStatus: StatusReady}
			m.SetEntrant(entrant(3))
			m.BeginBattle(Stat{HP: 100, Speed: tc.hostSpd}, Stat{HP: 100, Speed: tc.entSpd})

			if m.TurnOwner != tc.want {
				t.Fatalf("expected first turn %s, got %s", tc.want, m.TurnOwner)
			}
			if m.MatchStatus != StatusInProgress {
				t.Fatalf("expected IN_PROGRESS, got %s", m.MatchStatus)
			}
		})
	}
}

func TestOpponentStat(t *testing.T) {
	m := &MatchRoom{HostStat: Stat{HP: 10}, EntrantStat: Stat{HP: 20}}

	if m.OpponentStat(PlayerHost) != &m.EntrantStat {
		t.Fatalf("host casts must land on the entrant snapshot")
	}
	if m.OpponentStat(PlayerEntrant) != &m.HostStat {
		t.Fatalf("entrant casts must land on the host snapshot")
	}
}

func TestIsGameOver_Boundary(t *testing.T) {
	m := &MatchRoom{HostStat: Stat{HP: 1}, EntrantStat: Stat{HP: 1}}
	if m.IsGameOver() {
		t.Fatalf("1 HP on both sides is not game over")
	}
	m.EntrantStat.HP = 0
	if !m.IsGameOver() {
		t.Fatalf("exactly 0 HP is game over")
	}
}

func TestWinnerType(t *testing.T) {
	cases := []struct {
		name          string
		hostHP, entHP int
		want          PlayerType
	}{
		{"entrant down", 30, 0, PlayerHost},
		{"host down", -5, 12, PlayerEntrant},
		{"both down, entrant higher", -10, -2, PlayerEntrant},
		{"both down, host higher", -2, -10, PlayerHost},
		{"both down, exact tie goes to host", -3, -3, PlayerHost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &MatchRoom{HostStat: Stat{HP: tc.hostHP}, EntrantStat: Stat{HP: tc.entHP}}
			if got := m.WinnerType(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestForfeit(t *testing.T) {
	m := &MatchRoom{
		MatchStatus: StatusInProgress,
		HostStat:    Stat{HP: 55},
		EntrantStat: Stat{HP: 70},
	}
	m.Forfeit(PlayerEntrant)

	if m.MatchStatus != StatusFinished {
		t.Fatalf("forfeit must finish the room, got %s", m.MatchStatus)
	}
	if m.WinnerType() != PlayerHost {
		t.Fatalf("surrendering entrant loses")
	}
}

func TestReset_ClearsBattleStateAndKeepsStake(t *testing.T) {
	m := &MatchRoom{
		Host:        host(3),
		MatchStatus: StatusFinished,
		StakedGold:  300,
		TurnOwner:   PlayerHost,
		HostStat:    Stat{HP: 12},
		EntrantStat: Stat{HP: -4},
	}
	m.SetEntrant(entrant(3))

	m.Reset()

	if m.HasEntrant() {
		t.Fatalf("entrant slot must be cleared")
	}
	if m.MatchStatus != StatusWaiting {
		t.Fatalf("expected WAITING after reset, got %s", m.MatchStatus)
	}
	if m.TurnOwner != PlayerNone {
		t.Fatalf("turn owner must be cleared")
	}
	if (m.HostStat != Stat{}) || (m.EntrantStat != Stat{}) {
		t.Fatalf("stat snapshots must be cleared")
	}
	if m.StakedGold != 300 {
		t.Fatalf("staked gold must survive a reset, got %d", m.StakedGold)
	}
}

func TestSkillEffectApplyTo(t *testing.T) {
	s := Stat{HP: 100}
	SkillEffect{Type: EffectDamage, Amount: 30}.ApplyTo(&s)
	if s.HP != 70 {
		t.Fatalf("expected 70 after damage, got %d", s.HP)
	}
	SkillEffect{Type: EffectRecovery, Amount: 15}.ApplyTo(&s)
	if s.HP != 85 {
		t.Fatalf("expected 85 after recovery, got %d", s.HP)
	}
}

func TestLevelBonus(t *testing.T) {
	c := Character{Level: 3}
	b := c.LevelBonus()
	if b.HP != 20 || b.Attack != 4 || b.Defense != 4 || b.Speed != 2 {
		t.Fatalf("unexpected growth for level 3: %+v", b)
	}
	first := Character{Level: 1}
	if first.LevelBonus() != (Stat{}) {
		t.Fatalf("level 1 has no growth bonus")
	}
}
