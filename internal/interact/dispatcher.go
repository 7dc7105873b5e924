package interact

import (
	"context"

	"github.com/annel0/worldobjects/internal/client"
	"github.com/annel0/worldobjects/internal/logging"
	"github.com/annel0/worldobjects/internal/model"
	"github.com/annel0/worldobjects/internal/screen"
	"github.com/annel0/worldobjects/internal/vec"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/worldobjects/internal/interact"

// Target - объект, с которым выполняется взаимодействие
type Target interface {
	ID() int
	Location() vec.Vec3
	// Model заново строит модель объекта; nil - точной цели нет
	Model() model.Model
}

// Reacquirer заново находит ближайший экземпляр объекта по id
type Reacquirer interface {
	Nearest(id int) (Target, bool)
}

// Config содержит зависимости диспетчера
type Config struct {
	Client         *client.Client
	Gate           *screen.Gate
	Finder         Reacquirer
	Metrics        *Metrics            // может быть nil
	TracerProvider trace.TracerProvider // nil - глобальный провайдер otel
}

// Dispatcher выполняет клики, наведение, действия меню и поворот камеры
type Dispatcher struct {
	client  *client.Client
	gate    *screen.Gate
	finder  Reacquirer
	metrics *Metrics
	tracer  trace.Tracer
	log     *logging.Logger
}

// NewDispatcher создаёт диспетчер взаимодействий
func NewDispatcher(cfg Config) *Dispatcher {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	gate := cfg.Gate
	if gate == nil {
		gate = screen.NewGate(cfg.Client.Calc)
	}
	return &Dispatcher{
		client:  cfg.Client,
		gate:    gate,
		finder:  cfg.Finder,
		metrics: cfg.Metrics,
		tracer:  tp.Tracer(tracerName),
		log:     logging.GetInteractLogger(),
	}
}

// SetFinder задаёт поиск экземпляров для Orient
func (d *Dispatcher) SetFinder(f Reacquirer) {
	d.finder = f
}

// Gate возвращает проверку видимости, которой пользуется диспетчер
func (d *Dispatcher) Gate() *screen.Gate {
	return d.gate
}

// Visible - видимость цели по общему правилу
func (d *Dispatcher) Visible(t Target) bool {
	if t == nil {
		return false
	}
	return d.gate.Visible(t.Model(), t.Location())
}

// start открывает корневой span операции
func (d *Dispatcher) start(op string, t Target) trace.Span {
	id := -1
	if t != nil {
		id = t.ID()
	}
	_, span := d.tracer.Start(context.Background(), "interact."+op,
		trace.WithAttributes(attribute.Int("object.id", id)))
	return span
}

func (d *Dispatcher) finish(span trace.Span, op, path string, ok bool) bool {
	span.SetAttributes(attribute.String("interact.path", path), attribute.Bool("interact.ok", ok))
	span.End()
	d.metrics.observe(op, path, ok)
	return ok
}

// PerformAction выбирает пункт меню action/option у объекта.
// С моделью поиск пункта делает сама модель, без модели - меню на тайле.
func (d *Dispatcher) PerformAction(t Target, action, option string) bool {
	span := d.start("action", t)
	if t == nil {
		return d.finish(span, "action", PathNone, false)
	}

	if m := t.Model(); m != nil {
		return d.finish(span, "action", PathModel, m.DoAction(action, option))
	}
	return d.finish(span, "action", PathTile, d.client.Menu.TileAction(t.Location(), action, option))
}

// Click кликает по объекту. С моделью результат клика модели возвращается как есть.
// Без модели тайл проецируется не более двух раз: если после перемещения указателя
// точка ушла с экрана, проекция пересчитывается и попытка повторяется один раз.
func (d *Dispatcher) Click(t Target, primary bool) bool {
	span := d.start("click", t)
	if t == nil {
		return d.finish(span, "click", PathNone, false)
	}

	if m := t.Model(); m != nil {
		return d.finish(span, "click", PathModel, m.Click(primary))
	}

	loc := t.Location()
	p, ok := d.gate.Project(loc)
	if !ok {
		return d.finish(span, "click", PathTile, false)
	}
	d.client.Mouse.Move(p)
	if d.gate.OnScreen(p) {
		d.client.Mouse.Click(primary)
		return d.finish(span, "click", PathTile, true)
	}

	// камера сдвинулась во время движения указателя
	d.metrics.reprojection()
	d.log.Debug("object %d at %s left the screen during pointer move, reprojecting", t.ID(), loc)
	p, ok = d.gate.Project(loc)
	if !ok {
		return d.finish(span, "click", PathTile, false)
	}
	d.client.Mouse.Move(p)
	d.client.Mouse.Click(primary)
	return d.finish(span, "click", PathTile, true)
}

// Hover наводит указатель на объект.
// С моделью всегда возвращает true, без модели - true только если тайл на экране.
func (d *Dispatcher) Hover(t Target) bool {
	span := d.start("hover", t)
	if t == nil {
		return d.finish(span, "hover", PathNone, false)
	}

	if m := t.Model(); m != nil {
		m.Hover()
		return d.finish(span, "hover", PathModel, true)
	}

	p, ok := d.gate.Project(t.Location())
	if ok {
		d.client.Mouse.Move(p)
	}
	return d.finish(span, "hover", PathTile, ok)
}

// Orient поворачивает камеру к ближайшему экземпляру объекта с тем же id.
// Возвращает false, если экземпляр не найден или уже виден: эти случаи не различаются.
func (d *Dispatcher) Orient(t Target) bool {
	span := d.start("orient", t)
	if t == nil || d.finder == nil {
		return d.finish(span, "orient", PathNone, false)
	}

	nearest, ok := d.finder.Nearest(t.ID())
	if !ok || nearest == nil {
		return d.finish(span, "orient", PathReacquire, false)
	}
	if d.Visible(nearest) {
		return d.finish(span, "orient", PathReacquire, false)
	}

	d.client.Camera.TurnTo(nearest.Location())
	return d.finish(span, "orient", PathReacquire, d.Visible(nearest))
}
