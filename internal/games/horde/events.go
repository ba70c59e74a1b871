package horde

// Event is a notification published by the director or the grid.
// Handlers run synchronously on the game goroutine.
type Event interface {
	isEvent()
}

// WaveStartedEvent is published when StartNextWave begins a new wave.
type WaveStartedEvent struct {
	WaveNumber int
	Config     WaveConfig
}

// WaveCompleteEvent is published by the spawn attempt that finds the
// wave exhausted.
type WaveCompleteEvent struct {
	WaveNumber     int
	ZombiesSpawned int
}

// ZombieSpawnedEvent is published for every piece counted against a wave.
type ZombieSpawnedEvent struct {
	Piece *Piece
}

// LineClearEvent describes one ClearLines call.
// Rows and Scores are parallel, in processing (descending) order.
type LineClearEvent struct {
	Rows      []int
	Scores    []int
	Total     int
	Destroyed []*Piece // pieces left with no cells on the grid
}

func (WaveStartedEvent) isEvent()   {}
func (WaveCompleteEvent) isEvent()  {}
func (ZombieSpawnedEvent) isEvent() {}
func (LineClearEvent) isEvent()     {}
