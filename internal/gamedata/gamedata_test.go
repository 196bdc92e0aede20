package gamedata

import "testing"

func TestLoadPresets(t *testing.T) {
	presets, err := LoadPresets()
	if err != nil {
		t.Fatalf("Failed to load presets: %v", err)
	}

	if len(presets) != 4 {
		t.Errorf("Expected 4 presets, got %d", len(presets))
	}

	// Verify expected presets exist
	expectedIDs := map[string]bool{"beginner": false, "intermediate": false, "expert": false, "terrain": false}
	for _, p := range presets {
		if _, ok := expectedIDs[p.ID]; ok {
			expectedIDs[p.ID] = true
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected preset %q not found", id)
		}
	}
}

func TestPresetRegistry(t *testing.T) {
	registry, err := LoadPresetRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 4 {
		t.Errorf("Expected 4 presets, got %d", registry.Count())
	}

	beginner := registry.GetByID("beginner")
	if beginner == nil {
		t.Fatal("Beginner not found by ID")
	}
	if beginner.Width != 9 || beginner.Height != 9 || beginner.Mines != 10 {
		t.Errorf("Beginner = %dx%d with %d mines, want 9x9 with 10", beginner.Width, beginner.Height, beginner.Mines)
	}
	if beginner.Terrain {
		t.Error("Beginner should not enable terrain mode")
	}

	terrain := registry.GetByID("terrain")
	if terrain == nil {
		t.Fatal("Terrain preset not found by ID")
	}
	if !terrain.Terrain {
		t.Error("Terrain preset should enable terrain mode")
	}

	if registry.GetByID("nope") != nil {
		t.Error("Unknown ID should return nil")
	}

	if registry.Default().ID != "beginner" {
		t.Errorf("Default preset = %q, want beginner", registry.Default().ID)
	}

	// Every preset must describe a playable board.
	for _, p := range registry.All() {
		if p.Width <= 0 || p.Height <= 0 {
			t.Errorf("Preset %q has degenerate dimensions %dx%d", p.ID, p.Width, p.Height)
		}
		if p.Mines <= 0 || p.Mines >= p.Width*p.Height {
			t.Errorf("Preset %q has unplayable mine count %d", p.ID, p.Mines)
		}
	}
}

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme()
	if err != nil {
		t.Fatalf("Failed to load theme: %v", err)
	}

	if len(theme.Digits) != 8 {
		t.Errorf("Expected 8 digit colors, got %d", len(theme.Digits))
	}
	for i, hex := range theme.Digits {
		if _, err := ParseHexColor(hex); err != nil {
			t.Errorf("Digit %d color %q invalid: %v", i+1, hex, err)
		}
	}
	for name, hex := range map[string]string{
		"hidden": theme.Hidden, "revealed": theme.Revealed, "flag": theme.Flag,
		"question": theme.Question, "mine": theme.Mine, "growth": theme.Growth,
	} {
		if _, err := ParseHexColor(hex); err != nil {
			t.Errorf("Theme color %q = %q invalid: %v", name, hex, err)
		}
	}
}

func TestDigitColorFallback(t *testing.T) {
	theme := MustLoadTheme()

	if theme.DigitColor(0) != theme.DigitColor(9) {
		t.Error("Out-of-range digits should share the fallback color")
	}
	if theme.DigitColor(1) == theme.DigitColor(2) {
		t.Error("Distinct digits should get distinct theme colors")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}
