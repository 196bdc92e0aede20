// Package game provides the play session: serialized board commands,
// growth scheduling for terrain mode, and the terminal game loop.
package game

// Status represents the current state of a play session.
type Status int

const (
	// StatusPlaying means the board still accepts reveal/flag/chord commands.
	StatusPlaying Status = iota
	// StatusWon means every non-mine cell has been revealed.
	StatusWon
	// StatusLost means a mine was revealed.
	StatusLost
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}
