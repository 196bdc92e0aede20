package gamedata

import "github.com/gdamore/tcell/v2"

// ThemeDef defines the board color theme loaded from JSON. All values are
// hex color strings (e.g., "#0000FF").
type ThemeDef struct {
	Digits   []string `json:"digits"`   // Colors for the digits 1..8, in order
	Hidden   string   `json:"hidden"`   // Unrevealed cells
	Revealed string   `json:"revealed"` // Revealed zero cells
	Flag     string   `json:"flag"`     // Flag marker
	Question string   `json:"question"` // Question marker
	Mine     string   `json:"mine"`     // Disclosed mines
	Growth   string   `json:"growth"`   // Pulse highlight for a freshly grown mine
}

// LoadTheme loads the color theme from the embedded theme.json file.
func LoadTheme() (*ThemeDef, error) {
	theme, err := Load[ThemeDef]("theme.json")
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// MustLoadTheme loads the color theme, panicking on error.
func MustLoadTheme() *ThemeDef {
	theme, err := LoadTheme()
	if err != nil {
		panic(err)
	}
	return theme
}

// DigitColor returns the color for a revealed cell showing n (1..8).
// Out-of-range values and malformed colors fall back to white.
func (t *ThemeDef) DigitColor(n int) tcell.Color {
	if n < 1 || n > len(t.Digits) {
		return tcell.ColorWhite
	}
	return colorOrWhite(t.Digits[n-1])
}

// HiddenColor returns the color for unrevealed cells.
func (t *ThemeDef) HiddenColor() tcell.Color { return colorOrWhite(t.Hidden) }

// RevealedColor returns the color for revealed zero cells.
func (t *ThemeDef) RevealedColor() tcell.Color { return colorOrWhite(t.Revealed) }

// FlagColor returns the color for flag markers.
func (t *ThemeDef) FlagColor() tcell.Color { return colorOrWhite(t.Flag) }

// QuestionColor returns the color for question markers.
func (t *ThemeDef) QuestionColor() tcell.Color { return colorOrWhite(t.Question) }

// MineColor returns the color for disclosed mines.
func (t *ThemeDef) MineColor() tcell.Color { return colorOrWhite(t.Mine) }

// GrowthColor returns the highlight color for a freshly grown mine cell.
func (t *ThemeDef) GrowthColor() tcell.Color { return colorOrWhite(t.Growth) }

func colorOrWhite(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}
