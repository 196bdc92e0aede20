package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minefield/internal/gamedata"
	"github.com/samdwyer/minefield/internal/telemetry"
	"github.com/samdwyer/minefield/internal/ui"
)

// growthPulse is how long a freshly grown mine stays highlighted.
const growthPulse = time.Second

// Game wires the session to the terminal: it renders snapshots and maps
// input events to session commands.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	presets  *gamedata.PresetRegistry
	cursor   int
	buttons  tcell.ButtonMask
	running  bool
}

// New creates a new game instance with its own terminal screen.
func New(cfg Config, presets *gamedata.PresetRegistry, theme *gamedata.ThemeDef) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, theme),
		session:  NewSession(cfg),
		presets:  presets,
		running:  true,
	}

	// The session notifies on every state change (growth events, countdown
	// ticks); posting an interrupt wakes the poll loop so the next frame
	// paints without waiting for input.
	g.session.SetNotify(func() {
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

	return g, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	_, initSpan := tracer.Start(ctx, "game.init")
	snap := g.session.Snapshot()
	initSpan.SetAttributes(
		attribute.String("session.id", g.session.ID()),
		attribute.Int("board.width", snap.Width),
		attribute.Int("board.height", snap.Height),
		attribute.Int("board.mines", snap.MineCount),
		attribute.Bool("terrain.enabled", snap.TerrainMode),
	)
	initSpan.End()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// render assembles a frame from the current snapshot and draws it.
func (g *Game) render() {
	snap := g.session.Snapshot()

	growthCell := -1
	if snap.LastGrowthIndex >= 0 && time.Since(snap.LastGrowth) < growthPulse {
		growthCell = snap.LastGrowthIndex
	}

	g.renderer.Render(ui.Frame{
		Width:      snap.Width,
		Height:     snap.Height,
		Cells:      snap.Cells,
		Cursor:     g.cursor,
		GrowthCell: growthCell,
		ShowMines:  snap.Status == StatusLost,
		StatusLine: statusLine(snap),
	})
}

// statusLine formats the HUD row below the grid.
func statusLine(snap Snapshot) string {
	line := fmt.Sprintf("mines %d  flags %d", snap.MinesRemaining, snap.FlagsPlaced)
	if snap.TerrainMode {
		if snap.GrowthCountdown >= 0 {
			line += fmt.Sprintf("  growth in %ds", snap.GrowthCountdown)
		} else {
			line += "  terrain armed"
		}
	}
	switch snap.Status {
	case StatusWon:
		line += "  cleared! [n]ew game"
	case StatusLost:
		line += "  boom. [n]ew game"
	}
	return line
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventInterrupt:
		// Session state changed; the next loop iteration repaints.
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(0, -1)
	case tcell.KeyDown:
		g.moveCursor(0, 1)
	case tcell.KeyLeft:
		g.moveCursor(-1, 0)
	case tcell.KeyRight:
		g.moveCursor(1, 0)

	case tcell.KeyEnter:
		g.revealOrChord(ctx, g.cursor)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case ' ':
			g.revealOrChord(ctx, g.cursor)
		case 'f', 'F':
			g.session.ToggleFlag(g.cursor)
		case 'n', 'N':
			g.session.NewGame(Overrides{})
		case 't', 'T':
			g.session.SetTerrainMode(!g.session.TerrainMode())
		case '1', '2', '3', '4':
			g.selectPreset(int(ev.Rune() - '1'))
		}
	}
}

// handleMouseEvent maps clicks onto the grid. Only button-press
// transitions act; drags and releases are ignored.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons() &^ g.buttons
	g.buttons = ev.Buttons()

	snap := g.session.Snapshot()
	if x < 0 || x >= snap.Width || y < 0 || y >= snap.Height {
		return
	}
	index := y*snap.Width + x

	switch {
	case pressed&tcell.ButtonPrimary != 0:
		g.cursor = index
		g.revealOrChord(ctx, index)
	case pressed&tcell.ButtonSecondary != 0:
		g.cursor = index
		g.session.ToggleFlag(index)
	}
}

// revealOrChord reveals a hidden cell, or chords when the target is an
// already-revealed number.
func (g *Game) revealOrChord(ctx context.Context, index int) {
	cell, ok := g.session.CellAt(index)
	if !ok {
		return
	}
	if cell.IsRevealed && cell.Adjacent > 0 {
		g.session.Chord(ctx, index)
		return
	}
	g.session.Reveal(ctx, index)
}

// moveCursor shifts the keyboard cursor, clamped to the grid.
func (g *Game) moveCursor(dx, dy int) {
	snap := g.session.Snapshot()
	x := g.cursor%snap.Width + dx
	y := g.cursor/snap.Width + dy
	if x < 0 || x >= snap.Width || y < 0 || y >= snap.Height {
		return
	}
	g.cursor = y*snap.Width + x
}

// selectPreset starts a new game from the nth preset in file order.
func (g *Game) selectPreset(n int) {
	presets := g.presets.All()
	if n < 0 || n >= len(presets) {
		return
	}
	p := presets[n]
	g.session.SetTerrainMode(p.Terrain)
	g.session.NewGame(Overrides{Width: p.Width, Height: p.Height, Mines: p.Mines})
	g.cursor = 0
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
