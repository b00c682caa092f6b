package match

import "time"

// Result is a player's categorical outcome for one match.
type Result string

const (
	ResultWin  Result = "win"
	ResultDraw Result = "draw"
	ResultLoss Result = "loss"
)

// Team is the side a player was assigned to.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Match is a recorded fixture. Immutable once saved; a result edit triggers
// full re-aggregation rather than an in-place patch of derived tables.
type Match struct {
	ID         string
	Date       time.Time
	TeamAScore int
	TeamBScore int
}

// Outcome is the per-player slice of a match that scoring rules consume.
type Outcome struct {
	Result     Result
	HeavyWin   bool
	HeavyLoss  bool
	CleanSheet bool
}

// Participation is the atomic fact row: one player in one match. Result must
// be consistent with the match score and the player's team.
type Participation struct {
	MatchID    string
	PlayerID   string
	Team       Team
	Goals      int
	Result     Result
	HeavyWin   bool
	HeavyLoss  bool
	CleanSheet bool
	UpdatedAt  time.Time
}

func (p Participation) Outcome() Outcome {
	return Outcome{
		Result:     p.Result,
		HeavyWin:   p.HeavyWin,
		HeavyLoss:  p.HeavyLoss,
		CleanSheet: p.CleanSheet,
	}
}

// PlayerMatch is a participation joined with its match, ordered views of
// which drive every streak and aggregate computation.
type PlayerMatch struct {
	MatchID      string
	PlayerID     string
	Date         time.Time
	Team         Team
	Goals        int
	Result       Result
	HeavyWin     bool
	HeavyLoss    bool
	CleanSheet   bool
	ScoreFor     int
	ScoreAgainst int
}

func (m PlayerMatch) Outcome() Outcome {
	return Outcome{
		Result:     m.Result,
		HeavyWin:   m.HeavyWin,
		HeavyLoss:  m.HeavyLoss,
		CleanSheet: m.CleanSheet,
	}
}

func (m PlayerMatch) Won() bool  { return m.Result == ResultWin }
func (m PlayerMatch) Lost() bool { return m.Result == ResultLoss }
func (m PlayerMatch) Drew() bool { return m.Result == ResultDraw }
