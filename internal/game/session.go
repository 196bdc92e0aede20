package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/minefield/internal/board"
)

// Session owns one live board and serializes every mutation against it.
// Player commands arrive from the UI goroutine while growth and countdown
// events arrive from timer goroutines, so all entry points take the mutex
// before touching the board.
type Session struct {
	mu  sync.Mutex
	cfg Config
	id  string

	board *board.Board
	rng   *rand.Rand

	terrain       bool
	growthDelay   time.Duration
	growthStarted bool
	// growthStop identifies the current scheduler generation. Closing it
	// cancels both timer goroutines; a nil value means growth is inactive.
	growthStop      chan struct{}
	countdown       int
	countdownActive bool
	lastGrowth      time.Time
	lastGrowthIndex int

	notify func()
}

// NewSession creates a session with a fresh, mineless board.
func NewSession(cfg Config) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Session{
		cfg:             cfg,
		id:              uuid.NewString(),
		board:           board.New(cfg.Width, cfg.Height, cfg.Mines, rng),
		rng:             rng,
		terrain:         cfg.Terrain,
		growthDelay:     cfg.GrowthDelay,
		lastGrowthIndex: -1,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// SetNotify registers a callback fired after every state change, so the
// presentation layer can resynchronize. The callback runs with the session
// lock held and must not call back into the session.
func (s *Session) SetNotify(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

func (s *Session) notifyLocked() {
	if s.notify != nil {
		s.notify()
	}
}

// NewGame replaces the board wholesale. Zero-valued override fields keep
// the previous dimensions and mine count. Any running growth timers are
// stopped before the old board is discarded, so a stale timer can never
// fire against the replacement.
func (s *Session) NewGame(o Overrides) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopGrowthLocked()

	if o.Width > 0 {
		s.cfg.Width = o.Width
	}
	if o.Height > 0 {
		s.cfg.Height = o.Height
	}
	if o.Mines > 0 {
		s.cfg.Mines = o.Mines
	}

	s.board = board.New(s.cfg.Width, s.cfg.Height, s.cfg.Mines, s.rng)
	s.lastGrowth = time.Time{}
	s.lastGrowthIndex = -1
	s.notifyLocked()
}

// Reveal opens a cell. The first reveal of a game also starts the growth
// timers when terrain mode is on.
func (s *Session) Reveal(ctx context.Context, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board.GameOver {
		return
	}
	s.board.Reveal(ctx, index)
	if s.board.FirstClickDone {
		s.startGrowthLocked()
	}
	if s.board.GameOver {
		s.stopGrowthLocked()
	}
	s.notifyLocked()
}

// ToggleFlag cycles the marker on an unrevealed cell.
func (s *Session) ToggleFlag(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.ToggleFlag(index)
	s.notifyLocked()
}

// Chord reveals the unflagged neighbors of a satisfied numbered cell.
func (s *Session) Chord(ctx context.Context, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board.GameOver {
		return
	}
	s.board.Chord(ctx, index)
	if s.board.GameOver {
		s.stopGrowthLocked()
	}
	s.notifyLocked()
}

// SetTerrainMode toggles periodic mine growth. Turning it off cancels the
// timers immediately; turning it on arms them lazily, on the next reveal.
func (s *Session) SetTerrainMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terrain == enabled {
		return
	}
	s.terrain = enabled
	if !enabled {
		s.stopGrowthLocked()
	}
	s.notifyLocked()
}

// TerrainMode reports whether terrain mode is enabled.
func (s *Session) TerrainMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terrain
}

// SetGrowthDelay overrides the tiered growth interval. A non-positive
// value clears the override. The new interval takes effect at the next
// growth event.
func (s *Session) SetGrowthDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.growthDelay = d
}

// StartGrowthIfNeeded arms the growth timers if terrain mode is on and
// they are not already running. Idempotent.
func (s *Session) StartGrowthIfNeeded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startGrowthLocked()
}

// Status returns the session's current terminal-or-playing state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Session) statusLocked() Status {
	switch {
	case !s.board.GameOver:
		return StatusPlaying
	case s.board.Win:
		return StatusWon
	default:
		return StatusLost
	}
}

// Snapshot is an immutable view of the session for rendering and queries.
type Snapshot struct {
	Width  int
	Height int
	Cells  []board.Cell

	Status           Status
	MineCount        int
	InitialMineCount int
	MinesRemaining   int
	FlagsPlaced      int

	TerrainMode bool
	// GrowthCountdown is the displayed seconds until the next growth
	// event, or -1 when no countdown is active.
	GrowthCountdown int
	LastGrowth      time.Time
	// LastGrowthIndex is the most recently grown mine's cell index, or -1.
	LastGrowthIndex int
}

// CellAt returns a copy of the cell at index, or false if out of range.
func (s *Session) CellAt(index int) (board.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.CellAt(index)
}

// Snapshot copies the observable session state under the lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]board.Cell, len(s.board.Cells))
	copy(cells, s.board.Cells)

	countdown := -1
	if s.countdownActive {
		countdown = s.countdown
	}

	return Snapshot{
		Width:            s.board.Width,
		Height:           s.board.Height,
		Cells:            cells,
		Status:           s.statusLocked(),
		MineCount:        s.board.MineCount,
		InitialMineCount: s.board.InitialMineCount,
		MinesRemaining:   s.board.MinesRemaining(),
		FlagsPlaced:      s.board.FlagsPlaced(),
		TerrainMode:      s.terrain,
		GrowthCountdown:  countdown,
		LastGrowth:       s.lastGrowth,
		LastGrowthIndex:  s.lastGrowthIndex,
	}
}
