package stats

// MilestoneType tags which career counter crossed a round number.
type MilestoneType string

const (
	MilestoneGames MilestoneType = "games"
	MilestoneGoals MilestoneType = "goals"
)

// Milestone records a player landing exactly on a configured round-number
// career total. Only participants of the most recently recorded match are
// checked, even though the totals span full career history.
type Milestone struct {
	PlayerID string
	Name     string
	Type     MilestoneType
	Total    int
}

// IsMilestone reports whether total sits exactly on a multiple of threshold.
func IsMilestone(total, threshold int) bool {
	if threshold <= 0 || total <= 0 {
		return false
	}
	return total%threshold == 0
}
