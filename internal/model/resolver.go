package model

import (
	"github.com/annel0/worldobjects/internal/client"
	"github.com/annel0/worldobjects/internal/logging"
	"github.com/annel0/worldobjects/internal/world"
)

// Resolver строит модель для экземпляра объекта по его типу
type Resolver struct {
	client *client.Client
	log    *logging.Logger
}

// NewResolver создаёт резолвер моделей
func NewResolver(c *client.Client) *Resolver {
	return &Resolver{
		client: c,
		log:    logging.GetModelLogger(),
	}
}

// Resolve возвращает модель экземпляра или nil, если точной цели для клика нет.
// Стена без геометрии даёт вырожденную модель, остальные типы в этом случае дают nil.
func (r *Resolver) Resolve(e world.LiveEntity, v world.Variant) Model {
	if e == nil {
		return nil
	}
	payload := e.Payload()
	origin := e.WorldLocation()

	switch v {
	case world.VariantWall:
		p, ok := wallPayload(payload)
		if !ok {
			r.unsupported(e, v, payload)
			return nil
		}
		if !world.Realized(p.Primary) {
			return newWallModel(r.client, origin)
		}
		if p.Secondary != nil {
			return newWallModel(r.client, origin, p.Primary, p.Secondary)
		}
		return newWallModel(r.client, origin, p.Primary)

	case world.VariantGround:
		p, ok := groundPayload(payload)
		if !ok {
			r.unsupported(e, v, payload)
			return nil
		}
		if world.Realized(p.Renderable) {
			return newGroundModel(v, r.client, origin, p.Renderable)
		}
		return nil

	case world.VariantDecorative:
		p, ok := decorativePayload(payload)
		if !ok {
			r.unsupported(e, v, payload)
			return nil
		}
		if world.Realized(p.Renderable) {
			return newGroundModel(v, r.client, origin, p.Renderable)
		}
		return nil

	case world.VariantItemStack:
		return nil

	case world.VariantPrimary:
		p, ok := objectPayload(payload)
		if !ok {
			r.unsupported(e, v, payload)
			return nil
		}
		if world.Realized(p.Renderable) {
			return newObjectModel(r.client, origin, p.Renderable)
		}
		return nil

	default:
		return nil
	}
}

func (r *Resolver) unsupported(e world.LiveEntity, v world.Variant, payload world.Payload) {
	r.log.Debug("object %d at %s: expected %s render payload, got %s",
		e.ID(), e.WorldLocation(), v, world.PayloadVariant(payload))
}

func wallPayload(p world.Payload) (world.WallPayload, bool) {
	switch t := p.(type) {
	case world.WallPayload:
		return t, true
	case *world.WallPayload:
		if t != nil {
			return *t, true
		}
	}
	return world.WallPayload{}, false
}

func groundPayload(p world.Payload) (world.GroundPayload, bool) {
	switch t := p.(type) {
	case world.GroundPayload:
		return t, true
	case *world.GroundPayload:
		if t != nil {
			return *t, true
		}
	}
	return world.GroundPayload{}, false
}

func decorativePayload(p world.Payload) (world.DecorativePayload, bool) {
	switch t := p.(type) {
	case world.DecorativePayload:
		return t, true
	case *world.DecorativePayload:
		if t != nil {
			return *t, true
		}
	}
	return world.DecorativePayload{}, false
}

func objectPayload(p world.Payload) (world.ObjectPayload, bool) {
	switch t := p.(type) {
	case world.ObjectPayload:
		return t, true
	case *world.ObjectPayload:
		if t != nil {
			return *t, true
		}
	}
	return world.ObjectPayload{}, false
}
