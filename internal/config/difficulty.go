package config

// DropInterval returns the auto-drop interval in milliseconds for a wave:
// max(floor, base - step*wave). Without speed-up the base interval is kept.
func (d DropConfig) DropInterval(wave int) int {
	if !d.SpeedUp {
		return d.BaseMs
	}
	interval := d.BaseMs - d.StepMs*wave
	if interval < d.FloorMs {
		interval = d.FloorMs
	}
	return interval
}

// SoftDropInterval returns the interval used while soft dropping.
func (d DropConfig) SoftDropInterval(interval int) float64 {
	div := d.SoftDropDivisor
	if div <= 0 {
		div = 1
	}
	return float64(interval) / float64(div)
}

// ApplyHordePreset modifies the config based on a difficulty preset.
// Unknown presets leave the config untouched.
func ApplyHordePreset(cfg *HordeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Drop.SpeedUp = true
		cfg.Drop.BaseMs = 650
		cfg.Survivors.Start = cfg.Survivors.Max
	case DifficultyNormal:
		cfg.Drop.SpeedUp = true
	case DifficultyHard:
		cfg.Drop.SpeedUp = true
		cfg.Drop.BaseMs = 380
		cfg.Drop.StepMs = 25
		cfg.Survivors.Start = cfg.Survivors.Max * 6 / 10
	case DifficultyFixed:
		cfg.Drop.SpeedUp = false
	}
}
