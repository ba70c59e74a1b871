package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/horde/internal/core"
)

type stubGame struct {
	id    string
	score int
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.State()} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{Score: g.score} }

type recordingGame struct{ stubGame }

func (g *recordingGame) Record() core.ScoreRecord {
	return core.ScoreRecord{Score: g.score, Lines: 3, Level: 2, Survivors: 40}
}

func TestRegisterCreateList(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist after Register")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("Create() ID = %q, expected stub_b", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for unknown mode")
	}

	var seen []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "stub_") {
			seen = append(seen, info.ID+":"+info.Title)
		}
	}
	if strings.Join(seen, ",") != "stub_a:STUB_A,stub_b:STUB_B" {
		t.Errorf("List() = %v", seen)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}

func TestRecordOf(t *testing.T) {
	plain := &stubGame{id: "plain", score: 70}
	if rec := RecordOf(plain); rec != (core.ScoreRecord{Score: 70}) {
		t.Errorf("RecordOf(plain) = %+v", rec)
	}

	rich := &recordingGame{stubGame{id: "rich", score: 90}}
	if rec := RecordOf(rich); rec.Lines != 3 || rec.Survivors != 40 || rec.Score != 90 {
		t.Errorf("RecordOf(rich) = %+v", rec)
	}
}
