package horde

import (
	"math/rand"
)

// Speed scaling applied per wave to cosmetic fall velocity and FallSpeed.
const speedIncrement = 0.1

// DirectorState is the phase of the wave state machine.
type DirectorState int

const (
	StateSpawning DirectorState = iota
	StateWaveComplete
	StatePaused
	StateStopped
)

func (s DirectorState) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateWaveComplete:
		return "wave_complete"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// WaveDirector generates pieces and runs the wave cadence. Time advances
// only through Update, so the director is fully deterministic for a given
// random source and sequence of calls.
type WaveDirector struct {
	rng *rand.Rand

	wave      int
	cfg       WaveConfig
	spawned   int
	remaining int

	timer   float64 // ms accumulated toward the next spawn attempt
	running bool    // cadence active
	paused  bool
	stopped bool

	nextID uint64

	subscribers []func(Event)
	pending     []Event
	dispatching bool
}

// NewWaveDirector creates a director at wave 1 with the cadence running.
// A nil rng uses a fixed seed.
func NewWaveDirector(rng *rand.Rand) *WaveDirector {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	d := &WaveDirector{rng: rng, wave: 1}
	d.initializeWave()
	return d
}

func (d *WaveDirector) initializeWave() {
	d.cfg = GenerateWaveConfig(d.wave)
	d.spawned = 0
	d.remaining = d.cfg.ZombieCount
	d.timer = 0
	d.running = true
}

// Subscribe registers fn for every director event. Events raised while a
// handler runs are queued and delivered after it returns.
func (d *WaveDirector) Subscribe(fn func(Event)) {
	d.subscribers = append(d.subscribers, fn)
}

func (d *WaveDirector) emit(ev Event) {
	d.pending = append(d.pending, ev)
	if d.dispatching {
		return
	}
	d.dispatching = true
	for len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		for _, fn := range d.subscribers {
			fn(next)
		}
	}
	d.dispatching = false
}

// Update advances the spawn cadence by elapsed milliseconds.
func (d *WaveDirector) Update(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	if d.stopped || d.paused || !d.running {
		return
	}
	d.timer += elapsed
	for d.running && !d.stopped && !d.paused && d.timer >= d.cfg.SpawnInterval() {
		d.timer -= d.cfg.SpawnInterval()
		d.spawnAttempt()
	}
}

func (d *WaveDirector) spawnAttempt() {
	if d.remaining <= 0 {
		d.endWave()
		return
	}
	p := d.CreateRandomZombie()
	d.spawned++
	d.remaining--
	d.emit(ZombieSpawnedEvent{Piece: p})
}

func (d *WaveDirector) endWave() {
	d.running = false
	d.timer = 0
	d.emit(WaveCompleteEvent{WaveNumber: d.wave, ZombiesSpawned: d.spawned})
}

// StartNextWave advances to the next wave and restarts the cadence.
// It is ignored once the director is stopped.
func (d *WaveDirector) StartNextWave() {
	if d.stopped {
		return
	}
	d.wave++
	d.initializeWave()
	d.emit(WaveStartedEvent{WaveNumber: d.wave, Config: d.cfg.Clone()})
}

// Pause holds the cadence; wave and counters are kept.
func (d *WaveDirector) Pause() {
	if !d.stopped {
		d.paused = true
	}
}

// Resume releases a Pause.
func (d *WaveDirector) Resume() {
	d.paused = false
}

// Stop discards the cadence for good. Queries keep working.
func (d *WaveDirector) Stop() {
	d.stopped = true
	d.running = false
	d.paused = false
	d.timer = 0
}

func (d *WaveDirector) newPiece(a Archetype) *Piece {
	d.nextID++
	return NewPiece(d.nextID, a)
}

// CreateRandomZombie rolls an archetype for the current wave and returns a
// new piece with the wave's cosmetic modifications applied. It does not
// touch the wave counters.
func (d *WaveDirector) CreateRandomZombie() *Piece {
	p := d.newPiece(d.rollArchetype())
	d.applyWaveModifications(p)
	return p
}

func (d *WaveDirector) rollArchetype() Archetype {
	if d.rng.Float64() < d.cfg.SpecialTypeChance {
		if specials := d.cfg.Specials(); len(specials) > 0 {
			return specials[d.rng.Intn(len(specials))]
		}
	}
	return Basic
}

func (d *WaveDirector) applyWaveModifications(p *Piece) {
	p.Physics.Velocity.Y *= 1 + float64(d.wave-1)*speedIncrement
	if d.rng.Float64() < 0.3 {
		p.Physics.Velocity.X = (d.rng.Float64() - 0.5) * 50
	}
	if d.wave >= 10 {
		p.Physics.AngularVelocity = (d.rng.Float64() - 0.5) * 90
	}
}

// SpawnFormation picks one of the fixed formations and returns its pieces,
// positioned relative to the formation origin in world units. Members beyond
// the zombies remaining in the wave are dropped.
func (d *WaveDirector) SpawnFormation() []*Piece {
	f := formations[d.rng.Intn(len(formations))]
	n := min(len(f), d.remaining)
	if n <= 0 {
		return nil
	}
	pieces := make([]*Piece, 0, n)
	for _, m := range f[:n] {
		p := d.newPiece(m.Archetype)
		p.MoveToCell(m.DX, m.DY)
		d.applyWaveModifications(p)
		pieces = append(pieces, p)
	}
	d.spawned += n
	d.remaining -= n
	for _, p := range pieces {
		d.emit(ZombieSpawnedEvent{Piece: p})
	}
	return pieces
}

// NextZombiePreview rolls the archetype a spawn would likely produce.
// It consumes randomness like a real roll.
func (d *WaveDirector) NextZombiePreview() Archetype {
	if d.remaining <= 0 {
		return Basic
	}
	return d.rollArchetype()
}

// CurrentWave returns the wave number, starting at 1.
func (d *WaveDirector) CurrentWave() int { return d.wave }

// ZombiesRemaining returns the spawns left in the current wave.
func (d *WaveDirector) ZombiesRemaining() int { return d.remaining }

// ZombiesSpawned returns the spawns made in the current wave.
func (d *WaveDirector) ZombiesSpawned() int { return d.spawned }

// WaveProgress returns the spawned fraction of the wave, 1 for empty waves.
func (d *WaveDirector) WaveProgress() float64 {
	if d.cfg.ZombieCount == 0 {
		return 1
	}
	return float64(d.spawned) / float64(d.cfg.ZombieCount)
}

// FallSpeed returns the nominal fall speed in cells per second.
func (d *WaveDirector) FallSpeed() float64 {
	return 1 * (1 + float64(d.wave-1)*speedIncrement)
}

// WaveConfig returns a copy of the current wave's configuration.
func (d *WaveDirector) WaveConfig() WaveConfig {
	return d.cfg.Clone()
}

// State returns the phase of the state machine.
func (d *WaveDirector) State() DirectorState {
	switch {
	case d.stopped:
		return StateStopped
	case d.paused:
		return StatePaused
	case d.running:
		return StateSpawning
	default:
		return StateWaveComplete
	}
}
