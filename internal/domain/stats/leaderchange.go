package stats

// ChangeKind classifies how a metric's leader moved between two points in
// time.
type ChangeKind string

const (
	ChangeNoLeader  ChangeKind = "no_leader"
	ChangeNewLeader ChangeKind = "new_leader"
	ChangeRemains   ChangeKind = "remains"
	ChangeTied      ChangeKind = "tied"
	ChangeOvertake  ChangeKind = "overtake"
)

// Leader is the single top player for a metric at some point in time. Ties
// are broken by taking the first encountered in stable player-id order.
type Leader struct {
	PlayerID string
	Name     string
	Value    int
}

// LeaderChange carries both sides of the comparison for display.
type LeaderChange struct {
	Kind          ChangeKind
	PreviousName  string
	PreviousValue int
	CurrentName   string
	CurrentValue  int
}

// ClassifyLeaderChange compares the leader as of yesterday against the
// leader as of today.
func ClassifyLeaderChange(previous, current *Leader) LeaderChange {
	out := LeaderChange{Kind: ChangeNoLeader}
	if previous != nil {
		out.PreviousName = previous.Name
		out.PreviousValue = previous.Value
	}
	if current != nil {
		out.CurrentName = current.Name
		out.CurrentValue = current.Value
	}

	switch {
	case current == nil:
		out.Kind = ChangeNoLeader
	case previous == nil:
		out.Kind = ChangeNewLeader
	case previous.PlayerID == current.PlayerID:
		out.Kind = ChangeRemains
	case previous.Value == current.Value:
		out.Kind = ChangeTied
	default:
		out.Kind = ChangeOvertake
	}

	return out
}
