package horde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/horde/internal/core"
)

func TestShapeForLayouts(t *testing.T) {
	tests := []struct {
		archetype Archetype
		cells     []core.Point
	}{
		{Basic, []core.Point{{0, 0}, {0, 1}, {-1, 1}, {1, 1}, {0, 2}}},
		{Runner, []core.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{Tank, []core.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
		{Crawler, []core.Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}}},
		{Bomber, []core.Point{{0, 0}, {0, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.archetype.String(), func(t *testing.T) {
			p := NewPiece(1, tc.archetype)
			assert.Equal(t, tc.cells, p.LocalCells())
			assert.Equal(t, Head, p.Parts[0].Kind, "first part is the head")
			assert.Equal(t, 0, p.Rotation)
		})
	}
}

func TestShapeForReturnsCopies(t *testing.T) {
	a := ShapeFor(Basic)
	a[0].DX = 42
	assert.Equal(t, 0.0, ShapeFor(Basic)[0].DX)
}

func TestRotateBasic(t *testing.T) {
	p := NewPiece(1, Basic)
	p.Rotate()

	assert.Equal(t, 90, p.Rotation)
	assert.Equal(t, []core.Point{{1, 1}, {0, 1}, {0, 0}, {0, 2}, {-1, 1}}, p.LocalCells())
}

func TestRotateRunnerUsesFractionalCentroid(t *testing.T) {
	p := NewPiece(1, Runner)
	p.Rotate()

	for _, part := range p.Parts {
		assert.InDelta(t, 1.5, part.DX, 1e-9)
	}
	assert.Equal(t, []core.Point{{1, -2}, {1, -1}, {1, 0}, {1, 1}}, p.LocalCells())
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, a := range Archetypes {
		t.Run(a.String(), func(t *testing.T) {
			p := NewPiece(1, a)
			original := ShapeFor(a)

			for range 4 {
				p.Rotate()
			}

			assert.Equal(t, 0, p.Rotation)
			require.Len(t, p.Parts, len(original))
			for i := range original {
				assert.InDelta(t, original[i].DX, p.Parts[i].DX, 1e-9)
				assert.InDelta(t, original[i].DY, p.Parts[i].DY, 1e-9)
				assert.Equal(t, original[i].Kind, p.Parts[i].Kind)
			}
		})
	}
}

func TestGridPositions(t *testing.T) {
	p := NewPiece(1, Basic)
	p.MoveToCell(2, 1)

	assert.Equal(t, []core.Point{{2, 1}, {2, 2}, {1, 2}, {3, 2}, {2, 3}}, p.GridPositions())
	assert.Equal(t, core.Point{X: 2, Y: 1}, p.Cell())

	// Positions between cells floor toward the upper-left cell.
	p.SetPosition(70, 40)
	assert.Equal(t, core.Point{X: 2, Y: 1}, p.GridPositions()[0])
	assert.Equal(t, core.Point{X: 1, Y: 2}, p.GridPositions()[2])
}

func TestThreatAndAbility(t *testing.T) {
	threats := map[Archetype]int{Basic: 1, Runner: 2, Crawler: 1, Tank: 3, Bomber: 2}
	for a, want := range threats {
		p := NewPiece(1, a)
		assert.Equal(t, want, p.Threat(), a.String())
		assert.NotEmpty(t, p.Ability(), a.String())
	}
	assert.Contains(t, NewPiece(1, Bomber).Ability(), "Explodes")
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPiece(7, Tank)
	p.MoveToCell(3, 4)
	p.Rotate()

	c := p.Clone()
	assert.Equal(t, p.ID, c.ID)
	assert.Equal(t, p.Rotation, c.Rotation)
	assert.Equal(t, p.GridPositions(), c.GridPositions())

	c.Rotate()
	c.SetPosition(0, 0)
	assert.Equal(t, 90, p.Rotation)
	assert.Equal(t, core.Point{X: 3, Y: 4}, p.Cell())
}

func TestApplyRagdoll(t *testing.T) {
	p := NewPiece(1, Basic)
	cells := p.LocalCells()

	p.ApplyRagdoll(0.5)

	// vy = (60 + 300*0.5) * 0.95
	assert.InDelta(t, 199.5, p.Physics.Velocity.Y, 1e-9)
	assert.InDelta(t, 99.75, p.Y, 1e-9)
	assert.InDelta(t, 0, p.Physics.Spin, 1e-9)
	assert.Equal(t, cells, p.LocalCells(), "physics never changes the shape")

	p.Physics.AngularVelocity = 100
	p.ApplyRagdoll(0.1)
	assert.InDelta(t, 9.5, p.Physics.Spin, 1e-9)
	assert.Equal(t, 0, p.Rotation, "spin is separate from rotation")
}
