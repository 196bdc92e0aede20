package game

import (
	"context"
	"testing"
	"time"

	"github.com/samdwyer/minefield/internal/board"
)

func testConfig() Config {
	return Config{
		Width:       9,
		Height:      9,
		Mines:       10,
		Seed:        42,
		Terrain:     true,
		GrowthDelay: 20 * time.Millisecond,
	}
}

// waitUntil polls cond until it holds or the timeout expires.
func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

// loseGame reveals a known mine, ending the session.
func loseGame(t *testing.T, s *Session) {
	t.Helper()
	snap := s.Snapshot()
	for _, cell := range snap.Cells {
		if cell.IsMine {
			s.Reveal(context.Background(), cell.Index)
			break
		}
	}
	if s.Status() != StatusLost {
		t.Fatal("setup: failed to lose the game")
	}
}

func TestSessionRevealAndStatus(t *testing.T) {
	s := NewSession(Config{Width: 9, Height: 9, Mines: 10, Seed: 7})

	if s.Status() != StatusPlaying {
		t.Fatalf("fresh session status = %v, want playing", s.Status())
	}

	s.Reveal(context.Background(), 40)
	snap := s.Snapshot()
	cell := snap.Cells[40]
	if !cell.IsRevealed || cell.IsMine {
		t.Errorf("first reveal at 40: revealed=%v mine=%v", cell.IsRevealed, cell.IsMine)
	}
	if snap.MineCount != 10 {
		t.Errorf("MineCount = %d, want 10", snap.MineCount)
	}

	loseGame(t, s)
	if s.Status() != StatusLost {
		t.Errorf("status = %v, want lost", s.Status())
	}
}

func TestNewGamePartialOverrides(t *testing.T) {
	s := NewSession(Config{Width: 9, Height: 9, Mines: 10, Seed: 7})

	s.NewGame(Overrides{Width: 16})
	snap := s.Snapshot()
	if snap.Width != 16 || snap.Height != 9 || snap.MineCount != 10 {
		t.Errorf("after width override: %dx%d/%d, want 16x9/10", snap.Width, snap.Height, snap.MineCount)
	}

	s.NewGame(Overrides{Height: 12, Mines: 30})
	snap = s.Snapshot()
	if snap.Width != 16 || snap.Height != 12 || snap.MineCount != 30 {
		t.Errorf("after height+mines override: %dx%d/%d, want 16x12/30", snap.Width, snap.Height, snap.MineCount)
	}

	// A new game is mineless until the first reveal.
	for _, cell := range snap.Cells {
		if cell.IsMine || cell.IsRevealed || cell.Marker != board.MarkNone {
			t.Fatalf("new game cell %d not pristine: %+v", cell.Index, cell)
		}
	}
}

func TestNewGameAfterLossResumesPlay(t *testing.T) {
	s := NewSession(Config{Width: 9, Height: 9, Mines: 10, Seed: 11})
	s.Reveal(context.Background(), 40)
	loseGame(t, s)

	// Everything except new-game is gated now.
	s.ToggleFlag(0)
	if s.Snapshot().FlagsPlaced != 0 {
		t.Error("ToggleFlag mutated a finished game")
	}

	s.NewGame(Overrides{})
	if s.Status() != StatusPlaying {
		t.Errorf("status after new game = %v, want playing", s.Status())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewSession(Config{Width: 4, Height: 4, Mines: 2, Seed: 5})
	s.Reveal(context.Background(), 0)

	snap := s.Snapshot()
	snap.Cells[0].IsRevealed = false

	if fresh := s.Snapshot(); !fresh.Cells[0].IsRevealed {
		t.Error("mutating a snapshot leaked into the session")
	}
}

func TestStatusLine(t *testing.T) {
	snap := Snapshot{MinesRemaining: 8, FlagsPlaced: 2, Status: StatusPlaying}
	if got := statusLine(snap); got != "mines 8  flags 2" {
		t.Errorf("statusLine = %q", got)
	}

	snap.TerrainMode = true
	snap.GrowthCountdown = 12
	if got := statusLine(snap); got != "mines 8  flags 2  growth in 12s" {
		t.Errorf("statusLine with countdown = %q", got)
	}

	snap.Status = StatusLost
	snap.GrowthCountdown = -1
	got := statusLine(snap)
	if got != "mines 8  flags 2  terrain armed  boom. [n]ew game" {
		t.Errorf("statusLine after loss = %q", got)
	}
}
