package config

import (
	_ "embed"
)

//go:embed defaults/horde.yaml
var defaultHordeYAML []byte

// DefaultHordeConfig returns the built-in configuration, used when the
// embedded YAML cannot be parsed.
func DefaultHordeConfig() HordeConfig {
	return HordeConfig{
		Grid: GridConfig{
			Width:  10,
			Height: 20,
		},
		Drop: DropConfig{
			BaseMs:          500,
			StepMs:          20,
			FloorMs:         100,
			SoftDropDivisor: 8,
			SoftDropHoldMs:  150,
			SpeedUp:         true,
		},
		Input: InputConfig{
			MoveDelayMs: 100,
		},
		Survivors: SurvivorsConfig{
			Start:     100,
			Max:       100,
			LineBonus: 5,
			WaveBonus: 10,
		},
		Scoring: ScoringConfig{
			Placement:        10,
			HardDropPerCell:  2,
			WaveBonusPerWave: 500,
			ExplosionBonus:   50,
		},
	}
}
