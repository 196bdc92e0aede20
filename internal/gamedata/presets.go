package gamedata

import "errors"

// PresetDef defines a difficulty preset loaded from JSON.
type PresetDef struct {
	ID      string `json:"id"`      // Unique identifier (e.g., "beginner")
	Name    string `json:"name"`    // Display name (e.g., "Beginner")
	Width   int    `json:"width"`   // Board width in cells
	Height  int    `json:"height"`  // Board height in cells
	Mines   int    `json:"mines"`   // Initial mine count
	Terrain bool   `json:"terrain"` // Whether periodic mine growth starts enabled
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []PresetDef `json:"presets"`
}

// LoadPresets loads preset definitions from the embedded presets.json file.
func LoadPresets() ([]PresetDef, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	return file.Presets, nil
}

// PresetRegistry holds loaded difficulty presets and provides lookup
// utilities.
type PresetRegistry struct {
	presets []PresetDef
	byID    map[string]*PresetDef
}

// NewPresetRegistry creates a registry from loaded preset definitions.
func NewPresetRegistry(presets []PresetDef) *PresetRegistry {
	registry := &PresetRegistry{
		presets: presets,
		byID:    make(map[string]*PresetDef),
	}
	for i := range presets {
		registry.byID[presets[i].ID] = &presets[i]
	}
	return registry
}

// LoadPresetRegistry loads and creates a registry from the embedded
// presets.json.
func LoadPresetRegistry() (*PresetRegistry, error) {
	presets, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	return NewPresetRegistry(presets), nil
}

// MustLoadPresetRegistry loads a registry, panicking on error.
func MustLoadPresetRegistry() *PresetRegistry {
	registry, err := LoadPresetRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *PresetRegistry) GetByID(id string) *PresetDef {
	return r.byID[id]
}

// Default returns the first preset in file order.
func (r *PresetRegistry) Default() *PresetDef {
	return &r.presets[0]
}

// All returns all preset definitions.
func (r *PresetRegistry) All() []PresetDef {
	return r.presets
}

// Count returns the number of presets in the registry.
func (r *PresetRegistry) Count() int {
	return len(r.presets)
}
