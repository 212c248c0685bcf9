package game

// Stat is a battle stat block. It is used both as a character's
// aggregated sheet (base + level growth + equipment) and as the
// per-player snapshot a match room owns while a battle is running.
type Stat struct {
	HP      int `json:"hp"`
	Attack  int `json:"atk"`
	Defense int `json:"def"`
	Speed   int `json:"spd"`
}

// Add returns the component-wise sum of two stat blocks.
func (s Stat) Add(o Stat) Stat {
	return Stat{
		HP:      s.HP + o.HP,
		Attack:  s.Attack + o.Attack,
		Defense: s.Defense + o.Defense,
		Speed:   s.Speed + o.Speed,
	}
}

// Scale returns the stat block multiplied by n. Used for per-level growth.
func (s Stat) Scale(n int) Stat {
	return Stat{
		HP:      s.HP * n,
		Attack:  s.Attack * n,
		Defense: s.Defense * n,
		Speed:   s.Speed * n,
	}
}

// IsDown reports whether the stat block's hit points have reached zero
// or gone below it. Hit points are never clamped, so negative values
// are possible and still count as down.
func (s Stat) IsDown() bool {
	return s.HP <= 0
}
