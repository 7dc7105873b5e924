// Package object собирает кеш определений, резолвер моделей и диспетчер
// взаимодействий в единый хэндл размещённого объекта.
package object

import (
	"errors"

	"github.com/annel0/worldobjects/internal/client"
	"github.com/annel0/worldobjects/internal/definition"
	"github.com/annel0/worldobjects/internal/interact"
	"github.com/annel0/worldobjects/internal/model"
	"github.com/annel0/worldobjects/internal/screen"
	"github.com/annel0/worldobjects/internal/world"
	"go.opentelemetry.io/otel/trace"
)

// ErrIncompleteClient - в client.Client не заданы все участники
var ErrIncompleteClient = errors.New("object engine: client collaborators are not set")

// Config содержит зависимости Engine
type Config struct {
	Client         *client.Client
	Definitions    *definition.Cache
	Metrics        *interact.Metrics    // может быть nil
	TracerProvider trace.TracerProvider // nil - глобальный провайдер otel
}

// Engine создаёт хэндлы объектов и обслуживает их взаимодействия.
// Один Engine на процесс; хэндлы дешёвые и создаются на каждый найденный экземпляр.
type Engine struct {
	client     *client.Client
	defs       *definition.Cache
	resolver   *model.Resolver
	dispatcher *interact.Dispatcher
}

// NewEngine проверяет участников и собирает Engine
func NewEngine(cfg Config) (*Engine, error) {
	if !cfg.Client.Valid() {
		return nil, ErrIncompleteClient
	}

	e := &Engine{
		client:   cfg.Client,
		defs:     cfg.Definitions,
		resolver: model.NewResolver(cfg.Client),
	}
	e.dispatcher = interact.NewDispatcher(interact.Config{
		Client:         cfg.Client,
		Gate:           screen.NewGate(cfg.Client.Calc),
		Finder:         e,
		Metrics:        cfg.Metrics,
		TracerProvider: cfg.TracerProvider,
	})
	return e, nil
}

// New оборачивает живой экземпляр. live может быть nil: такой хэндл отказывает во всём.
func (e *Engine) New(live world.LiveEntity, variant world.Variant, plane int) *Object {
	o := &Object{
		engine:  e,
		variant: variant,
		plane:   plane,
		id:      world.InvalidID,
	}
	if isNil(live) {
		return o
	}
	o.live = live
	o.id = live.ID()
	if e.defs != nil {
		o.def, _ = e.defs.Get(o.id)
	}
	return o
}

// Nearest находит ближайший экземпляр с данным id через client.Finder
func (e *Engine) Nearest(id int) (interact.Target, bool) {
	live, variant, plane, ok := e.client.Objects.Nearest(id)
	if !ok || isNil(live) {
		return nil, false
	}
	return e.New(live, variant, plane), true
}

// Definitions возвращает кеш определений (может быть nil)
func (e *Engine) Definitions() *definition.Cache {
	return e.defs
}
