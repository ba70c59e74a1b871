// Package config provides YAML-based game configuration loading and
// difficulty presets for horde.
package config

// HordeConfig contains all tunable parameters of a horde run.
// Wave generation coefficients are fixed and deliberately absent here.
type HordeConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Drop      DropConfig      `yaml:"drop"`
	Input     InputConfig     `yaml:"input"`
	Survivors SurvivorsConfig `yaml:"survivors"`
	Scoring   ScoringConfig   `yaml:"scoring"`
}

// GridConfig defines the playfield size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DropConfig defines gravity timing of the falling piece.
type DropConfig struct {
	BaseMs          int  `yaml:"base_ms"`           // Interval at wave 0
	StepMs          int  `yaml:"step_ms"`           // Interval reduction per wave
	FloorMs         int  `yaml:"floor_ms"`          // Fastest allowed interval
	SoftDropDivisor int  `yaml:"soft_drop_divisor"` // Interval divisor while soft dropping
	SoftDropHoldMs  int  `yaml:"soft_drop_hold_ms"` // How long one soft drop press lasts
	SpeedUp         bool `yaml:"speed_up"`          // Whether new waves shorten the interval
}

// InputConfig defines input rate limiting.
type InputConfig struct {
	MoveDelayMs int `yaml:"move_delay_ms"`
}

// SurvivorsConfig defines the survivor (health) pool.
type SurvivorsConfig struct {
	Start     int `yaml:"start"`
	Max       int `yaml:"max"`
	LineBonus int `yaml:"line_bonus"` // Survivors saved per cleared line
	WaveBonus int `yaml:"wave_bonus"` // Survivors saved per completed wave
}

// ScoringConfig defines points awarded outside of line clears.
type ScoringConfig struct {
	Placement        int `yaml:"placement"`
	HardDropPerCell  int `yaml:"hard_drop_per_cell"`
	WaveBonusPerWave int `yaml:"wave_bonus_per_wave"`
	ExplosionBonus   int `yaml:"explosion_bonus"`
}

// Normalize replaces non-positive values with defaults, so partial YAML
// files stay playable.
func (c *HordeConfig) Normalize() {
	def := DefaultHordeConfig()
	fill := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}

	fill(&c.Grid.Width, def.Grid.Width)
	fill(&c.Grid.Height, def.Grid.Height)
	fill(&c.Drop.BaseMs, def.Drop.BaseMs)
	fill(&c.Drop.FloorMs, def.Drop.FloorMs)
	fill(&c.Drop.SoftDropDivisor, def.Drop.SoftDropDivisor)
	fill(&c.Drop.SoftDropHoldMs, def.Drop.SoftDropHoldMs)
	fill(&c.Input.MoveDelayMs, def.Input.MoveDelayMs)
	fill(&c.Survivors.Start, def.Survivors.Start)
	fill(&c.Survivors.Max, def.Survivors.Max)

	if c.Drop.StepMs < 0 {
		c.Drop.StepMs = 0
	}
	if c.Survivors.Start > c.Survivors.Max {
		c.Survivors.Start = c.Survivors.Max
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsValidPreset reports whether name is a known preset.
func IsValidPreset(name string) bool {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// IsFixedPreset returns true if the preset disables drop speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
