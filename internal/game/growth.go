package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minefield/internal/telemetry"
)

// growthInterval returns the delay before the next growth event. An
// explicit override wins; otherwise the interval tiers on the live mine
// count, so denser boards grow faster.
func growthInterval(mineCount int, override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	switch {
	case mineCount < 20:
		return 30 * time.Second
	case mineCount < 50:
		return 20 * time.Second
	default:
		return 10 * time.Second
	}
}

// startGrowthLocked arms the growth scheduler: one goroutine that applies
// growth events and one that ticks the displayed countdown every second.
// No-op unless terrain mode is on, growth is not already running, and the
// game is still live.
func (s *Session) startGrowthLocked() {
	if !s.terrain || s.growthStarted || s.board.GameOver {
		return
	}
	s.growthStarted = true
	stop := make(chan struct{})
	s.growthStop = stop

	interval := growthInterval(s.board.MineCount, s.growthDelay)
	s.countdown = int(interval / time.Second)
	s.countdownActive = true

	go s.growthLoop(stop, interval)
	go s.countdownLoop(stop)
}

// stopGrowthLocked cancels both timer goroutines and clears the countdown.
// Safe to call when growth never started.
func (s *Session) stopGrowthLocked() {
	if s.growthStop != nil {
		close(s.growthStop)
		s.growthStop = nil
	}
	s.growthStarted = false
	s.countdownActive = false
}

func (s *Session) growthLoop(stop chan struct{}, first time.Duration) {
	timer := time.NewTimer(first)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			next, ok := s.applyGrowth(stop)
			if !ok {
				return
			}
			timer.Reset(next)
		case <-stop:
			return
		}
	}
}

// applyGrowth performs one growth event and returns the interval until the
// next. The stop channel identifies the scheduler generation: a stale loop
// whose channel was replaced by NewGame or a terrain toggle must not touch
// the board.
func (s *Session) applyGrowth(stop chan struct{}) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.growthStop != stop || s.board.GameOver {
		return 0, false
	}

	index, ok := s.board.GrowMine()
	if !ok {
		s.stopGrowthLocked()
		s.notifyLocked()
		return 0, false
	}

	_, span := telemetry.Tracer("game").Start(context.Background(), "game.mine_growth")
	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.Int("board.mine_count", s.board.MineCount),
		attribute.Int("board.grown_index", index),
	)
	span.End()

	s.lastGrowth = time.Now()
	s.lastGrowthIndex = index

	if s.board.GameOver {
		// Growth consumed the last unrevealed safe cell and won the game.
		s.stopGrowthLocked()
		s.notifyLocked()
		return 0, false
	}

	// Re-tier on the already-incremented mine count; the countdown resets
	// to the same interval so display and scheduler agree.
	next := growthInterval(s.board.MineCount, s.growthDelay)
	s.countdown = int(next / time.Second)
	s.notifyLocked()
	return next, true
}

// countdownLoop decrements the displayed countdown once per second. It is
// display-only and never mutates mine placement.
func (s *Session) countdownLoop(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.growthStop == stop {
				if s.countdown > 0 {
					s.countdown--
				}
				s.notifyLocked()
			}
			s.mu.Unlock()
		case <-stop:
			return
		}
	}
}
