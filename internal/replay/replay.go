// Package replay records the input stream of a horde run to a zstd-compressed
// JSONL file and plays it back through a fresh game.
//
// A file is a header entry, one entry per tick that carried input, and a
// closing entry with the tick count and the final score record. Because the
// game is deterministic for a given seed, tuning and input stream, playback
// reproduces the run exactly.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/games/horde"
)

// FormatVersion is written into every header.
const FormatVersion = 1

// ErrMismatch is returned by Verify when playback diverges from the recording.
var ErrMismatch = errors.New("replay: final record mismatch")

// Header describes how the recorded game was set up.
type Header struct {
	Version  int                `json:"version"`
	Mode     string             `json:"mode"`
	Seed     int64              `json:"seed"`
	TickRate int                `json:"tick_rate"`
	ScreenW  int                `json:"screen_w"`
	ScreenH  int                `json:"screen_h"`
	Config   config.HordeConfig `json:"config"`
}

// Frame is the input of a single tick. Ticks count from 1.
type Frame struct {
	Tick    uint64   `json:"tick"`
	Actions []string `json:"actions"`
}

// End closes a recording.
type End struct {
	Ticks  uint64           `json:"ticks"`
	Record core.ScoreRecord `json:"record"`
}

// entry is one JSONL line; exactly one field is set.
type entry struct {
	Header *Header `json:"header,omitempty"`
	Frame  *Frame  `json:"frame,omitempty"`
	End    *End    `json:"end,omitempty"`
}

// HeaderFor captures the setup of a game that was just reset with rc.
func HeaderFor(g *horde.Game, rc core.RuntimeConfig) Header {
	return Header{
		Version:  FormatVersion,
		Mode:     string(g.Mode()),
		Seed:     rc.Seed,
		TickRate: rc.TickRate,
		ScreenW:  rc.ScreenW,
		ScreenH:  rc.ScreenH,
		Config:   g.Config(),
	}
}

// Recorder appends ticks to a replay file.
type Recorder struct {
	f     *os.File
	enc   *zstd.Encoder
	w     *bufio.Writer
	ticks uint64
}

// Create opens path for writing and stores the header.
func Create(path string, h Header) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("replay: cannot start encoder: %w", err)
	}
	r := &Recorder{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if h.Version == 0 {
		h.Version = FormatVersion
	}
	if err := r.write(entry{Header: &h}); err != nil {
		r.abort()
		return nil, err
	}
	return r, nil
}

// Tick records the input passed to one Step call. Empty frames only advance
// the tick counter.
func (r *Recorder) Tick(in core.InputFrame) error {
	r.ticks++
	if in.Empty() {
		return nil
	}
	list := in.List()
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.String())
	}
	return r.write(entry{Frame: &Frame{Tick: r.ticks, Actions: names}})
}

// Ticks returns how many ticks have been recorded.
func (r *Recorder) Ticks() uint64 {
	return r.ticks
}

// Close writes the closing entry and flushes the file.
func (r *Recorder) Close(final core.ScoreRecord) error {
	if err := r.write(entry{End: &End{Ticks: r.ticks, Record: final}}); err != nil {
		r.abort()
		return err
	}
	if err := r.w.Flush(); err != nil {
		r.abort()
		return fmt.Errorf("replay: flush: %w", err)
	}
	if err := r.enc.Close(); err != nil {
		_ = r.f.Close()
		return fmt.Errorf("replay: close encoder: %w", err)
	}
	return r.f.Close()
}

func (r *Recorder) write(e entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("replay: marshal: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	return nil
}

func (r *Recorder) abort() {
	_ = r.enc.Close()
	_ = r.f.Close()
}

// Replay is a fully loaded recording.
type Replay struct {
	Header Header
	Frames []Frame
	End    End
}

// Load reads a replay file.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a replay stream.
func Read(src io.Reader) (*Replay, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot start decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var rp Replay
	var sawHeader, sawEnd bool
	line := 0
	for sc.Scan() {
		line++
		var e entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", line, err)
		}
		switch {
		case e.Header != nil:
			if sawHeader {
				return nil, fmt.Errorf("replay: line %d: duplicate header", line)
			}
			if e.Header.Version != FormatVersion {
				return nil, fmt.Errorf("replay: unsupported version %d", e.Header.Version)
			}
			rp.Header = *e.Header
			sawHeader = true
		case e.Frame != nil:
			if !sawHeader {
				return nil, fmt.Errorf("replay: line %d: frame before header", line)
			}
			if n := len(rp.Frames); n > 0 && e.Frame.Tick <= rp.Frames[n-1].Tick {
				return nil, fmt.Errorf("replay: line %d: tick %d out of order", line, e.Frame.Tick)
			}
			rp.Frames = append(rp.Frames, *e.Frame)
		case e.End != nil:
			rp.End = *e.End
			sawEnd = true
		default:
			return nil, fmt.Errorf("replay: line %d: empty entry", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: read: %w", err)
	}
	if !sawHeader {
		return nil, errors.New("replay: missing header")
	}
	if !sawEnd {
		return nil, errors.New("replay: truncated recording")
	}
	return &rp, nil
}

// Play rebuilds the game from the header and feeds it every recorded tick.
func (rp *Replay) Play() (*horde.Game, error) {
	mode := horde.Mode(rp.Header.Mode)
	if mode != horde.ModeHorde && mode != horde.ModeClassic {
		return nil, fmt.Errorf("replay: unknown mode %q", rp.Header.Mode)
	}
	g := horde.NewWithConfig(mode, rp.Header.Config)
	g.Reset(core.RuntimeConfig{
		ScreenW:  rp.Header.ScreenW,
		ScreenH:  rp.Header.ScreenH,
		TickRate: rp.Header.TickRate,
		Seed:     rp.Header.Seed,
	})

	next := 0
	for tick := uint64(1); tick <= rp.End.Ticks; tick++ {
		in := core.NewInputFrame()
		if next < len(rp.Frames) && rp.Frames[next].Tick == tick {
			for _, name := range rp.Frames[next].Actions {
				a, ok := core.ParseAction(name)
				if !ok {
					return nil, fmt.Errorf("replay: tick %d: unknown action %q", tick, name)
				}
				in.Set(a)
			}
			next++
		}
		g.Step(in)
	}
	return g, nil
}

// Verify plays the recording and checks the final record against the one
// stored in the file.
func (rp *Replay) Verify() (*horde.Game, error) {
	g, err := rp.Play()
	if err != nil {
		return nil, err
	}
	if got := g.Record(); got != rp.End.Record {
		return g, fmt.Errorf("%w: got %+v, recorded %+v", ErrMismatch, got, rp.End.Record)
	}
	return g, nil
}
