package engine

const (
	// WinnerExperience is the flat experience credit for winning.
	WinnerExperience = 100
	// loserShareDivisor reduces the loser's gold and experience.
	loserShareDivisor = 5
)

// Settlement carries the reward amounts computed for a finished match.
// All arithmetic is integer with truncating division.
type Settlement struct {
	WinnerGold       int `json:"winner_gold"`
	LoserGold        int `json:"loser_gold"`
	WinnerExperience int `json:"winner_experience"`
	LoserExperience  int `json:"loser_experience"`
}

// Settle computes the gold and experience payouts for a match: the
// winner takes level × stakedGold, the loser a fifth of the same
// product at their own level. Experience is flat.
func Settle(winnerLevel, loserLevel, stakedGold int) Settlement {
	return Settlement{
		WinnerGold:       winnerLevel * stakedGold,
		LoserGold:        loserLevel * stakedGold / loserShareDivisor,
		WinnerExperience: WinnerExperience,
		LoserExperience:  WinnerExperience / loserShareDivisor,
	}
}
