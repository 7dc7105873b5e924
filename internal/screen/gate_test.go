package screen

import (
	"testing"

	"github.com/annel0/worldobjects/internal/client/clienttest"
	"github.com/annel0/worldobjects/internal/model"
	"github.com/annel0/worldobjects/internal/vec"
	"github.com/annel0/worldobjects/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_ModelAnchorWins(t *testing.T) {
	f, c := clienttest.New()
	g := NewGate(f.Calc)

	// тайл за пределами экрана, а модель видна
	tile := vec.Tile(2000, 2000, 0)
	solid := &clienttest.Model{Vertices: true, Anchor: vec.Vec2{X: 10, Y: 10}}
	e := &clienttest.Entity{EntityID: 1, Loc: tile, Data: world.ObjectPayload{Renderable: solid}}
	m := model.NewResolver(c).Resolve(e, world.VariantPrimary)
	require.NotNil(t, m)

	assert.True(t, g.Visible(m, tile))
	assert.Zero(t, f.Calc.TileCalls)
	assert.False(t, g.TileVisible(tile))
}

func TestGate_TileFallback(t *testing.T) {
	f, _ := clienttest.New()
	g := NewGate(f.Calc)

	assert.True(t, g.Visible(nil, vec.Tile(100, 100, 0)))
	assert.False(t, g.Visible(nil, vec.Tile(-1, 100, 0)))
	assert.Equal(t, 2, f.Calc.TileCalls)

	p, ok := g.Project(vec.Tile(764, 502, 0))
	assert.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 764, Y: 502}, p)

	_, ok = g.Project(vec.Tile(765, 502, 0))
	assert.False(t, ok)
}
