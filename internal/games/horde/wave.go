package horde

import (
	"math"
	"slices"
)

// WaveConfig holds the generated parameters of one wave.
type WaveConfig struct {
	WaveNumber        int
	ZombieCount       int
	SpawnRate         float64 // pieces per second
	Difficulty        float64 // 0..1
	SpecialTypeChance float64 // 0..1
	AvailableTypes    []Archetype
}

// unlocks maps archetypes to the first wave that may spawn them.
var unlocks = []struct {
	wave      int
	archetype Archetype
}{
	{3, Runner},
	{5, Crawler},
	{8, Tank},
	{12, Bomber},
}

// GenerateWaveConfig derives the parameters of wave n (n >= 1).
func GenerateWaveConfig(n int) WaveConfig {
	w := float64(n)
	types := []Archetype{Basic}
	for _, u := range unlocks {
		if n >= u.wave {
			types = append(types, u.archetype)
		}
	}
	return WaveConfig{
		WaveNumber:        n,
		ZombieCount:       int(math.Floor(5 + w*1.5)),
		SpawnRate:         math.Min(0.5+w*0.1, 3),
		Difficulty:        math.Min(w/20, 1),
		SpecialTypeChance: math.Min(w*0.05, 0.8),
		AvailableTypes:    types,
	}
}

// SpawnInterval returns milliseconds between spawn attempts.
func (c WaveConfig) SpawnInterval() float64 {
	if c.SpawnRate <= 0 {
		return math.Inf(1)
	}
	return 1000 / c.SpawnRate
}

// Specials returns the unlocked archetypes other than Basic.
func (c WaveConfig) Specials() []Archetype {
	var out []Archetype
	for _, a := range c.AvailableTypes {
		if a != Basic {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a copy that does not share AvailableTypes.
func (c WaveConfig) Clone() WaveConfig {
	c.AvailableTypes = slices.Clone(c.AvailableTypes)
	return c
}

// formationMember places one piece of a formation, in cells relative to
// the formation origin.
type formationMember struct {
	DX, DY    int
	Archetype Archetype
}

var formations = [][]formationMember{
	{{0, 0, Basic}},
	{{0, 0, Basic}, {1, 0, Basic}, {2, 0, Basic}},
	{{0, 0, Tank}, {1, 0, Runner}, {0, 1, Crawler}},
	{{0, 0, Bomber}, {1, 0, Basic}, {-1, 0, Basic}},
	{{0, 0, Runner}, {0, 1, Runner}},
}
