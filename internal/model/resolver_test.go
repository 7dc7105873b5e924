package model

import (
	"testing"

	"github.com/annel0/worldobjects/internal/client/clienttest"
	"github.com/annel0/worldobjects/internal/vec"
	"github.com/annel0/worldobjects/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(payload world.Payload) *clienttest.Entity {
	return &clienttest.Entity{EntityID: 1276, Loc: vec.Tile(100, 120, 0), Data: payload}
}

func TestResolve_UnrealizedGeometry(t *testing.T) {
	_, c := clienttest.New()
	r := NewResolver(c)
	flat := &clienttest.Model{Vertices: false}

	tests := []struct {
		name    string
		variant world.Variant
		payload world.Payload
	}{
		{"primary", world.VariantPrimary, world.ObjectPayload{Renderable: flat}},
		{"ground", world.VariantGround, world.GroundPayload{Renderable: flat}},
		{"decorative", world.VariantDecorative, world.DecorativePayload{Renderable: flat}},
		{"primary without renderable", world.VariantPrimary, world.ObjectPayload{}},
		{"item stack", world.VariantItemStack, world.ItemStackPayload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, r.Resolve(entity(tt.payload), tt.variant))
		})
	}

	t.Run("wall stays degenerate instead of nil", func(t *testing.T) {
		m := r.Resolve(entity(world.WallPayload{Primary: flat, Secondary: flat}), world.VariantWall)
		require.NotNil(t, m)
		wall, ok := m.(*WallModel)
		require.True(t, ok)
		assert.True(t, wall.Degenerate())
		assert.Empty(t, wall.Surfaces())
	})

	t.Run("wall without any surface", func(t *testing.T) {
		m := r.Resolve(entity(world.WallPayload{}), world.VariantWall)
		require.NotNil(t, m)
		assert.True(t, m.(*WallModel).Degenerate())
	})
}

func TestResolve_RealizedGeometry(t *testing.T) {
	_, c := clienttest.New()
	r := NewResolver(c)
	solid := &clienttest.Model{Vertices: true}
	back := &clienttest.Model{Vertices: false}

	t.Run("primary", func(t *testing.T) {
		m := r.Resolve(entity(world.ObjectPayload{Renderable: solid}), world.VariantPrimary)
		require.IsType(t, &ObjectModel{}, m)
		assert.Equal(t, world.VariantPrimary, m.Kind())
		assert.Equal(t, []world.Renderable{solid}, m.Surfaces())
	})

	t.Run("ground anchored to own tile", func(t *testing.T) {
		m := r.Resolve(entity(world.GroundPayload{Renderable: solid}), world.VariantGround)
		require.IsType(t, &GroundModel{}, m)
		assert.Equal(t, vec.Tile(100, 120, 0), m.Origin())
		assert.Equal(t, world.VariantGround, m.Kind())
	})

	t.Run("decorative uses ground model", func(t *testing.T) {
		m := r.Resolve(entity(&world.DecorativePayload{Renderable: solid}), world.VariantDecorative)
		require.IsType(t, &GroundModel{}, m)
		assert.Equal(t, world.VariantDecorative, m.Kind())
	})

	t.Run("wall primary only", func(t *testing.T) {
		m := r.Resolve(entity(world.WallPayload{Primary: solid}), world.VariantWall)
		require.IsType(t, &WallModel{}, m)
		assert.Equal(t, []world.Renderable{solid}, m.Surfaces())
	})

	t.Run("wall keeps secondary surface as is", func(t *testing.T) {
		m := r.Resolve(entity(world.WallPayload{Primary: solid, Secondary: back}), world.VariantWall)
		require.IsType(t, &WallModel{}, m)
		assert.Equal(t, []world.Renderable{solid, back}, m.Surfaces())
		assert.False(t, m.(*WallModel).Degenerate())
	})
}

func TestResolve_UnsupportedRenderContract(t *testing.T) {
	_, c := clienttest.New()
	r := NewResolver(c)
	solid := &clienttest.Model{Vertices: true}

	assert.Nil(t, r.Resolve(entity(nil), world.VariantPrimary))
	assert.Nil(t, r.Resolve(entity(nil), world.VariantWall), "стена без payload не даёт вырожденную модель")
	assert.Nil(t, r.Resolve(entity(world.GroundPayload{Renderable: solid}), world.VariantPrimary))
	assert.Nil(t, r.Resolve(entity((*world.WallPayload)(nil)), world.VariantWall))
	assert.Nil(t, r.Resolve(nil, world.VariantPrimary))
	assert.Nil(t, r.Resolve(entity(world.ObjectPayload{Renderable: solid}), world.VariantNone))
}
