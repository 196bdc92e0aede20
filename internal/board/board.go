package board

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minefield/internal/telemetry"
)

// Board owns the full simulation state of one minesweeper game. It is not
// safe for concurrent use; callers must serialize all access (the game
// session wraps it in a mutex so timer goroutines can mutate it safely).
type Board struct {
	Width  int
	Height int
	// Cells is the row-major cell sequence: index = y*Width + x.
	Cells []Cell

	// FirstClickDone is false until the first Reveal places the mines.
	FirstClickDone bool
	GameOver       bool
	Win            bool

	// InitialMineCount is the mine count the board was created with.
	// MineCount is the live count, which grows under terrain mode.
	InitialMineCount int
	MineCount        int

	rng *rand.Rand
}

// New creates a board with no mines placed. Mines are deferred until the
// first Reveal so the first click is always safe. Dimensions must be
// positive; validating them is the caller's responsibility.
func New(width, height, mineCount int, rng *rand.Rand) *Board {
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Cell{Index: i, X: i % width, Y: i / width}
	}

	return &Board{
		Width:            width,
		Height:           height,
		Cells:            cells,
		InitialMineCount: mineCount,
		MineCount:        mineCount,
		rng:              rng,
	}
}

// InBounds reports whether index addresses a cell on this board.
func (b *Board) InBounds(index int) bool {
	return index >= 0 && index < len(b.Cells)
}

// CellAt returns a copy of the cell at index, or false if out of range.
func (b *Board) CellAt(index int) (Cell, bool) {
	if !b.InBounds(index) {
		return Cell{}, false
	}
	return b.Cells[index], true
}

// neighbors appends the valid 8-neighborhood of index to dst and returns it.
func (b *Board) neighbors(dst []int, index int) []int {
	x, y := index%b.Width, index/b.Width
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= b.Width || ny < 0 || ny >= b.Height {
				continue
			}
			dst = append(dst, ny*b.Width+nx)
		}
	}
	return dst
}

// Reveal opens the cell at index. The first reveal of a game places the
// mines first, excluding the clicked cell and its neighbors. Revealing a
// mine ends the game and discloses every mine. Revealing a zero-adjacency
// cell flood-fills its whole zero region plus the numbered border.
// Out-of-range indices, revealed cells, flagged cells, and finished games
// are all no-ops.
func (b *Board) Reveal(ctx context.Context, index int) {
	if b.GameOver || !b.InBounds(index) {
		return
	}

	if !b.FirstClickDone {
		b.placeMines(ctx, index)
		b.FirstClickDone = true
	}

	cell := &b.Cells[index]
	if cell.IsRevealed || cell.Marker == MarkFlag {
		return
	}

	if cell.IsMine {
		cell.IsRevealed = true
		b.GameOver = true
		b.Win = false
		b.revealAllMines()
		return
	}

	b.floodReveal(index)
	b.checkWin()
}

// placeMines distributes MineCount mines uniformly over every cell except
// the safe zone (the first-clicked cell and its neighbors), then computes
// adjacency counts. Uses an unbiased shuffle-and-take-prefix.
func (b *Board) placeMines(ctx context.Context, safe int) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.place_mines")
	defer span.End()

	excluded := make([]bool, len(b.Cells))
	excluded[safe] = true
	for _, n := range b.neighbors(nil, safe) {
		excluded[n] = true
	}

	eligible := make([]int, 0, len(b.Cells))
	for i := range b.Cells {
		if !excluded[i] {
			eligible = append(eligible, i)
		}
	}
	b.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	count := b.MineCount
	if count > len(eligible) {
		// Degenerate request; clamp so the mine-count invariant holds.
		count = len(eligible)
		b.MineCount = count
	}
	for _, i := range eligible[:count] {
		b.Cells[i].IsMine = true
	}

	b.recalcAdjacent()

	span.SetAttributes(
		attribute.Int("board.width", b.Width),
		attribute.Int("board.height", b.Height),
		attribute.Int("board.mines", count),
		attribute.Int("board.safe_index", safe),
	)
}

// recalcAdjacent recomputes every cell's Adjacent from scratch.
func (b *Board) recalcAdjacent() {
	var scratch []int
	for i := range b.Cells {
		if b.Cells[i].IsMine {
			b.Cells[i].Adjacent = MineAdjacent
			continue
		}
		count := 0
		scratch = b.neighbors(scratch[:0], i)
		for _, n := range scratch {
			if b.Cells[n].IsMine {
				count++
			}
		}
		b.Cells[i].Adjacent = count
	}
}

// floodReveal performs a breadth-first reveal starting at index. Cells with
// Adjacent == 0 enqueue their neighbors; flagged cells and mines bound the
// fill and are never auto-revealed.
func (b *Board) floodReveal(start int) {
	queue := []int{start}
	visited := make([]bool, len(b.Cells))
	visited[start] = true

	var scratch []int
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		cell := &b.Cells[i]
		if cell.IsRevealed || cell.Marker == MarkFlag || cell.IsMine {
			continue
		}
		cell.IsRevealed = true
		cell.Marker = MarkNone // question marks clear on reveal

		if cell.Adjacent != 0 {
			continue
		}
		scratch = b.neighbors(scratch[:0], i)
		for _, n := range scratch {
			nc := &b.Cells[n]
			if visited[n] || nc.IsRevealed || nc.Marker == MarkFlag || nc.IsMine {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
}

// ToggleFlag cycles the marker on an unrevealed cell:
// none -> flag -> question -> none. No-op on revealed cells, out-of-range
// indices, and finished games.
func (b *Board) ToggleFlag(index int) {
	if b.GameOver || !b.InBounds(index) {
		return
	}
	cell := &b.Cells[index]
	if cell.IsRevealed {
		return
	}

	switch cell.Marker {
	case MarkNone:
		cell.Marker = MarkFlag
	case MarkFlag:
		cell.Marker = MarkQuestion
	case MarkQuestion:
		cell.Marker = MarkNone
	}
}

// Chord reveals all unflagged, unrevealed neighbors of a revealed numbered
// cell, but only when the flagged-neighbor count exactly matches the cell's
// number. A misplaced flag can make this lose the game. Any mismatch is a
// complete no-op.
func (b *Board) Chord(ctx context.Context, index int) {
	if b.GameOver || !b.InBounds(index) {
		return
	}
	cell := b.Cells[index]
	if !cell.IsRevealed || cell.Adjacent <= 0 {
		return
	}

	neighbors := b.neighbors(nil, index)
	flagged := 0
	for _, n := range neighbors {
		if b.Cells[n].Marker == MarkFlag {
			flagged++
		}
	}
	if flagged != cell.Adjacent {
		return
	}

	for _, n := range neighbors {
		nc := b.Cells[n]
		if nc.IsRevealed || nc.Marker == MarkFlag {
			continue
		}
		b.Reveal(ctx, n)
		if b.GameOver {
			return
		}
	}
}

// GrowMine places one new mine on a uniformly random unrevealed non-mine
// cell and bumps the adjacency counts of its neighbors, retroactively
// changing already-revealed numbers. Flagged-but-unrevealed cells stay
// eligible. Returns the mined index, or false when no eligible cell exists,
// mines have not been placed yet, or the game is over.
func (b *Board) GrowMine() (int, bool) {
	if b.GameOver || !b.FirstClickDone {
		return 0, false
	}

	eligible := make([]int, 0, len(b.Cells))
	for i := range b.Cells {
		if !b.Cells[i].IsMine && !b.Cells[i].IsRevealed {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}

	index := eligible[b.rng.Intn(len(eligible))]
	b.Cells[index].IsMine = true
	b.Cells[index].Adjacent = MineAdjacent
	for _, n := range b.neighbors(nil, index) {
		if !b.Cells[n].IsMine {
			b.Cells[n].Adjacent++
		}
	}
	b.MineCount++

	// A growth event can consume the last unrevealed safe cell, which
	// satisfies the win condition without another reveal.
	b.checkWin()

	return index, true
}

// checkWin marks the game won when every non-mine cell is revealed.
func (b *Board) checkWin() {
	if b.RevealedCount() == len(b.Cells)-b.MineCount {
		b.Win = true
		b.GameOver = true
	}
}

// revealAllMines discloses every mine after a loss.
func (b *Board) revealAllMines() {
	for i := range b.Cells {
		if b.Cells[i].IsMine {
			b.Cells[i].IsRevealed = true
		}
	}
}

// RevealedCount returns the number of revealed non-mine cells.
func (b *Board) RevealedCount() int {
	count := 0
	for i := range b.Cells {
		if b.Cells[i].IsRevealed && !b.Cells[i].IsMine {
			count++
		}
	}
	return count
}

// FlagsPlaced returns the number of flagged cells. Question marks do not
// count.
func (b *Board) FlagsPlaced() int {
	count := 0
	for i := range b.Cells {
		if b.Cells[i].Marker == MarkFlag {
			count++
		}
	}
	return count
}

// MinesRemaining returns the live mine count minus placed flags, clamped
// at zero.
func (b *Board) MinesRemaining() int {
	remaining := b.MineCount - b.FlagsPlaced()
	if remaining < 0 {
		return 0
	}
	return remaining
}
