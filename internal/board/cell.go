// Package board implements the minesweeper simulation core: grid state,
// lazy mine placement, flood-fill reveal, chording, and mine growth.
// It is headless and has no opinion about how it is rendered.
package board

// Marker represents the player-placed mark on an unrevealed cell.
// Toggling cycles MarkNone -> MarkFlag -> MarkQuestion -> MarkNone.
type Marker int

const (
	// MarkNone is a plain unmarked cell.
	MarkNone Marker = iota
	// MarkFlag marks a cell the player believes is a mine. Flagged cells
	// are never revealed by flood fill or chording.
	MarkFlag
	// MarkQuestion marks a cell the player is unsure about. Question cells
	// behave like unmarked cells for reveal purposes.
	MarkQuestion
)

// String returns a human-readable marker name.
func (m Marker) String() string {
	switch m {
	case MarkNone:
		return "none"
	case MarkFlag:
		return "flag"
	case MarkQuestion:
		return "question"
	default:
		return "unknown"
	}
}

// MineAdjacent is the Adjacent value for a cell that is itself a mine,
// distinct from a legitimate 0-8 neighbor count.
const MineAdjacent = -1

// Cell is a single square on the board, identified by its row-major index.
type Cell struct {
	Index      int
	X, Y       int
	IsMine     bool
	IsRevealed bool
	Marker     Marker
	// Adjacent is the number of mined cells in the 8-neighborhood, or
	// MineAdjacent when the cell itself is a mine.
	Adjacent int
}
