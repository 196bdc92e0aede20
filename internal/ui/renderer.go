package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/minefield/internal/board"
	"github.com/samdwyer/minefield/internal/gamedata"
)

// Frame is everything the renderer needs to draw one view of the game.
// The game loop assembles it from a session snapshot, so the renderer
// never touches live state.
type Frame struct {
	Width  int
	Height int
	Cells  []board.Cell

	// Cursor is the keyboard cursor's cell index, or -1 to hide it.
	Cursor int
	// GrowthCell is the most recently grown mine's index, or -1. It gets
	// a brief highlight so the player notices the terrain shifting.
	GrowthCell int
	// ShowMines discloses mine positions (set after a loss).
	ShowMines bool

	StatusLine string
}

// Cell glyphs. The grid renders one character per cell.
const (
	glyphHidden   = '▒'
	glyphFlag     = '⚑'
	glyphQuestion = '?'
	glyphMine     = '*'
	glyphZero     = '·'
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	theme  *gamedata.ThemeDef
}

// NewRenderer creates a new renderer for the given screen and color theme.
func NewRenderer(screen *Screen, theme *gamedata.ThemeDef) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws the board grid and status line to the screen.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	for i, cell := range f.Cells {
		glyph, style := r.cellContent(cell, f.ShowMines)
		if i == f.GrowthCell {
			style = style.Background(r.theme.GrowthColor()).Foreground(tcell.ColorBlack)
		}
		if i == f.Cursor {
			style = style.Reverse(true)
		}
		r.screen.SetContent(cell.X, cell.Y, glyph, style)
	}

	r.renderMessage(f.StatusLine, f.Height+1)
	r.screen.Show()
}

// cellContent returns the glyph and style for one cell.
func (r *Renderer) cellContent(cell board.Cell, showMines bool) (rune, tcell.Style) {
	if !cell.IsRevealed {
		if showMines && cell.IsMine {
			return glyphMine, tcell.StyleDefault.Foreground(r.theme.MineColor())
		}
		switch cell.Marker {
		case board.MarkFlag:
			return glyphFlag, tcell.StyleDefault.Foreground(r.theme.FlagColor())
		case board.MarkQuestion:
			return glyphQuestion, tcell.StyleDefault.Foreground(r.theme.QuestionColor())
		default:
			return glyphHidden, tcell.StyleDefault.Foreground(r.theme.HiddenColor())
		}
	}

	if cell.IsMine {
		return glyphMine, tcell.StyleDefault.Foreground(r.theme.MineColor()).Bold(true)
	}
	if cell.Adjacent == 0 {
		return glyphZero, tcell.StyleDefault.Foreground(r.theme.RevealedColor())
	}
	return rune('0' + cell.Adjacent), tcell.StyleDefault.Foreground(r.theme.DigitColor(cell.Adjacent))
}

// renderMessage displays a message on the given row.
func (r *Renderer) renderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}
