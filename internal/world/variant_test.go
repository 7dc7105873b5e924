package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, TypeMask(9), Mask(VariantPrimary, VariantWall))
	assert.Equal(t, TypeMask(15), Mask(VariantPrimary, VariantDecorative, VariantGround, VariantWall))
	assert.Equal(t, MaskAll, Mask(VariantWall, VariantGround, VariantDecorative, VariantPrimary))
	assert.Equal(t, TypeMask(0), Mask())

	t.Run("commutative and idempotent", func(t *testing.T) {
		assert.Equal(t, Mask(VariantGround, VariantWall), Mask(VariantWall, VariantGround))
		assert.Equal(t, Mask(VariantPrimary), Mask(VariantPrimary, VariantPrimary))
	})

	t.Run("associative", func(t *testing.T) {
		left := Mask(VariantPrimary, VariantDecorative).Union(Mask(VariantGround))
		right := Mask(VariantPrimary).Union(Mask(VariantDecorative, VariantGround))
		assert.Equal(t, left, right)
	})

	t.Run("item stack carries no bit", func(t *testing.T) {
		assert.Equal(t, Mask(VariantWall), Mask(VariantWall, VariantItemStack))
		assert.False(t, VariantItemStack.Interactive())
	})
}

func TestVariantFromBit(t *testing.T) {
	v, ok := VariantFromBit(4)
	assert.True(t, ok)
	assert.Equal(t, VariantGround, v)

	for _, bit := range []int{0, 3, 5, 16, -1} {
		_, ok := VariantFromBit(bit)
		assert.False(t, ok, "бит %d не соответствует ни одному типу", bit)
	}

	for _, v := range Mask(VariantPrimary, VariantDecorative, VariantGround, VariantWall).Variants() {
		got, ok := VariantFromBit(int(v.Bit()))
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestTypeMask_Has(t *testing.T) {
	m := Mask(VariantPrimary, VariantWall)
	assert.True(t, m.Has(VariantPrimary))
	assert.True(t, m.Has(VariantWall))
	assert.False(t, m.Has(VariantGround))
	assert.False(t, m.Has(VariantItemStack))
	assert.Equal(t, []Variant{VariantPrimary, VariantWall}, m.Variants())
}

func TestPayloadVariant(t *testing.T) {
	assert.Equal(t, VariantPrimary, PayloadVariant(ObjectPayload{}))
	assert.Equal(t, VariantGround, PayloadVariant(GroundPayload{}))
	assert.Equal(t, VariantDecorative, PayloadVariant(DecorativePayload{}))
	assert.Equal(t, VariantWall, PayloadVariant(WallPayload{}))
	assert.Equal(t, VariantItemStack, PayloadVariant(ItemStackPayload{}))
	assert.Equal(t, VariantNone, PayloadVariant(nil))
}

func TestPayloadVariant_TypedNil(t *testing.T) {
	var p *WallPayload
	assert.Equal(t, VariantNone, PayloadVariant(p))
	assert.Equal(t, VariantWall, PayloadVariant(&WallPayload{}))
}
