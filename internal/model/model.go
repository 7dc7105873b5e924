package model

import (
	"github.com/annel0/worldobjects/internal/client"
	"github.com/annel0/worldobjects/internal/vec"
	"github.com/annel0/worldobjects/internal/world"
)

// MaxAttempts - число попыток навести указатель на модель перед кликом
const MaxAttempts = 10

// Model - кликабельное представление объекта на экране
type Model interface {
	// Kind возвращает тип объекта, для которого построена модель
	Kind() world.Variant
	// Origin возвращает тайл, к которому привязана модель
	Origin() vec.Vec3
	// Surfaces возвращает поверхности модели (пусто у вырожденной стены)
	Surfaces() []world.Renderable
	// Point возвращает опорную точку модели на экране
	Point() vec.Vec2
	// Contains проверяет, попадает ли точка экрана в модель
	Contains(p vec.Vec2) bool
	// Click наводит указатель на модель и кликает
	Click(primary bool) bool
	// Hover наводит указатель на модель
	Hover()
	// DoAction наводит указатель и выбирает пункт меню action/option
	DoAction(action, option string) bool
}

// base реализует общее поведение всех моделей
type base struct {
	kind     world.Variant
	calc     client.Projector
	mouse    client.Pointer
	menu     client.Menu
	origin   vec.Vec3
	surfaces []world.Renderable
}

func newBase(kind world.Variant, c *client.Client, origin vec.Vec3, surfaces ...world.Renderable) base {
	return base{
		kind:     kind,
		calc:     c.Calc,
		mouse:    c.Mouse,
		menu:     c.Menu,
		origin:   origin,
		surfaces: surfaces,
	}
}

func (b *base) Kind() world.Variant          { return b.kind }
func (b *base) Origin() vec.Vec3             { return b.origin }
func (b *base) Surfaces() []world.Renderable { return b.surfaces }

// Point без поверхностей проецирует сам тайл
func (b *base) Point() vec.Vec2 {
	if len(b.surfaces) == 0 {
		return b.calc.TileToScreen(b.origin)
	}
	return b.calc.RenderableToScreen(b.surfaces[0], b.origin)
}

func (b *base) Contains(p vec.Vec2) bool {
	if len(b.surfaces) == 0 {
		return p == b.calc.TileToScreen(b.origin)
	}
	for _, s := range b.surfaces {
		if b.calc.Contains(s, b.origin, p) {
			return true
		}
	}
	return false
}

// hoverOnModel наводит указатель и проверяет, что он остался над моделью
func (b *base) hoverOnModel() bool {
	p := b.Point()
	if !b.calc.OnScreen(p) {
		return false
	}
	b.mouse.Move(p)
	return b.Contains(b.mouse.Location())
}

func (b *base) Click(primary bool) bool {
	for i := 0; i < MaxAttempts; i++ {
		if b.hoverOnModel() {
			b.mouse.Click(primary)
			return true
		}
	}
	return false
}

func (b *base) Hover() {
	b.mouse.Move(b.Point())
}

func (b *base) DoAction(action, option string) bool {
	for i := 0; i < MaxAttempts; i++ {
		if b.hoverOnModel() && b.menu.DoAction(action, option) {
			return true
		}
	}
	return false
}

// ObjectModel - модель полноценного объекта
type ObjectModel struct{ base }

// GroundModel - модель объекта, лежащего на тайле (наземного или декоративного)
type GroundModel struct{ base }

// WallModel - модель стены из одной или двух поверхностей.
// Без поверхностей модель вырождена и целится в сам тайл.
type WallModel struct{ base }

// Degenerate сообщает, что у стены нет загруженной геометрии
func (w *WallModel) Degenerate() bool {
	return len(w.surfaces) == 0
}

func newObjectModel(c *client.Client, origin vec.Vec3, r world.Renderable) *ObjectModel {
	return &ObjectModel{newBase(world.VariantPrimary, c, origin, r)}
}

func newGroundModel(kind world.Variant, c *client.Client, origin vec.Vec3, r world.Renderable) *GroundModel {
	return &GroundModel{newBase(kind, c, origin, r)}
}

func newWallModel(c *client.Client, origin vec.Vec3, surfaces ...world.Renderable) *WallModel {
	return &WallModel{newBase(world.VariantWall, c, origin, surfaces...)}
}
