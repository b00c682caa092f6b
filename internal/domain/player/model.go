package player

// Player is a league member. Status flags control which aggregates a player
// appears in; identity and history are never deleted.
type Player struct {
	ID   string
	Name string
	// IsRinger marks a guest player excluded from competitive aggregates.
	IsRinger bool
	// IsRetired keeps the player in historical tables but out of "current"
	// views such as streaks and recent form.
	IsRetired bool
}

// CountsForAggregates reports whether the player's matches feed competitive
// aggregate tables at all.
func (p Player) CountsForAggregates() bool {
	return !p.IsRinger
}

// IsCurrent reports whether the player belongs in live views.
func (p Player) IsCurrent() bool {
	return !p.IsRinger && !p.IsRetired
}
