// Package clienttest содержит управляемые заглушки участников client для тестов.
package clienttest

import (
	"sync"

	"github.com/annel0/worldobjects/internal/client"
	"github.com/annel0/worldobjects/internal/vec"
	"github.com/annel0/worldobjects/internal/world"
)

// Entity - простая реализация world.LiveEntity
type Entity struct {
	EntityID int
	Loc      vec.Vec3
	Data     world.Payload
}

func (e *Entity) ID() int                 { return e.EntityID }
func (e *Entity) WorldLocation() vec.Vec3 { return e.Loc }
func (e *Entity) Payload() world.Payload  { return e.Data }

// Model - поверхность с флагом загруженной геометрии
type Model struct {
	Vertices bool
	Anchor   vec.Vec2
}

func (m *Model) Realized() bool { return m.Vertices }

// Projector проецирует тайлы через TileFunc и проверяет экран по прямоугольнику Width x Height.
// OnScreenResults, если заданы, отвечают на первые вызовы OnScreen по порядку.
type Projector struct {
	mu sync.Mutex

	Width, Height   int
	TileFunc        func(tile vec.Vec3) vec.Vec2
	OnScreenResults []bool

	TileCalls     int
	OnScreenCalls int
	AnchorCalls   int
}

// NewProjector создаёт проектор 765x503, где тайл (x, y) попадает в точку (x, y)
func NewProjector() *Projector {
	return &Projector{
		Width:  765,
		Height: 503,
		TileFunc: func(tile vec.Vec3) vec.Vec2 {
			return vec.Vec2{X: tile.X, Y: tile.Y}
		},
	}
}

func (p *Projector) TileToScreen(tile vec.Vec3) vec.Vec2 {
	p.mu.Lock()
	p.TileCalls++
	fn := p.TileFunc
	p.mu.Unlock()
	return fn(tile)
}

func (p *Projector) RenderableToScreen(r world.Renderable, origin vec.Vec3) vec.Vec2 {
	p.mu.Lock()
	p.AnchorCalls++
	p.mu.Unlock()
	if m, ok := r.(*Model); ok {
		return m.Anchor
	}
	return vec.Vec2{X: -1, Y: -1}
}

func (p *Projector) Contains(r world.Renderable, origin vec.Vec3, pt vec.Vec2) bool {
	if m, ok := r.(*Model); ok {
		return m.Anchor == pt
	}
	return false
}

func (p *Projector) OnScreen(pt vec.Vec2) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	call := p.OnScreenCalls
	p.OnScreenCalls++
	if call < len(p.OnScreenResults) {
		return p.OnScreenResults[call]
	}
	return pt.InRect(vec.Vec2{}, vec.Vec2{X: p.Width, Y: p.Height})
}

// Pointer запоминает перемещения и клики
type Pointer struct {
	mu     sync.Mutex
	Moves  []vec.Vec2
	Clicks []bool
}

func (m *Pointer) Move(p vec.Vec2) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Moves = append(m.Moves, p)
}

func (m *Pointer) Click(primary bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clicks = append(m.Clicks, primary)
}

func (m *Pointer) Location() vec.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Moves) == 0 {
		return vec.Vec2{X: -1, Y: -1}
	}
	return m.Moves[len(m.Moves)-1]
}

// Camera запоминает повороты и вызывает OnTurn после каждого
type Camera struct {
	Turns  []vec.Vec3
	OnTurn func(tile vec.Vec3)
}

func (c *Camera) TurnTo(tile vec.Vec3) {
	c.Turns = append(c.Turns, tile)
	if c.OnTurn != nil {
		c.OnTurn(tile)
	}
}

// MenuCall - один вызов меню
type MenuCall struct {
	Tile           *vec.Vec3
	Action, Option string
}

// Menu отвечает Available на поиск пункта и запоминает вызовы
type Menu struct {
	Available map[string]bool
	Calls     []MenuCall
}

func (m *Menu) DoAction(action, option string) bool {
	m.Calls = append(m.Calls, MenuCall{Action: action, Option: option})
	return m.Available[action]
}

func (m *Menu) TileAction(tile vec.Vec3, action, option string) bool {
	t := tile
	m.Calls = append(m.Calls, MenuCall{Tile: &t, Action: action, Option: option})
	return m.Available[action]
}

// Finder возвращает заданный экземпляр
type Finder struct {
	Entity  world.LiveEntity
	Variant world.Variant
	Plane   int
	Calls   []int
}

func (f *Finder) Nearest(id int) (world.LiveEntity, world.Variant, int, bool) {
	f.Calls = append(f.Calls, id)
	if f.Entity == nil {
		return nil, world.VariantNone, 0, false
	}
	return f.Entity, f.Variant, f.Plane, true
}

// Fakes - полный набор заглушек
type Fakes struct {
	Calc   *Projector
	Mouse  *Pointer
	Camera *Camera
	Menu   *Menu
	Finder *Finder
}

// New создаёт набор заглушек и собранный из них client.Client
func New() (*Fakes, *client.Client) {
	f := &Fakes{
		Calc:   NewProjector(),
		Mouse:  &Pointer{},
		Camera: &Camera{},
		Menu:   &Menu{Available: map[string]bool{}},
		Finder: &Finder{},
	}
	return f, &client.Client{
		Calc:    f.Calc,
		Mouse:   f.Mouse,
		Camera:  f.Camera,
		Menu:    f.Menu,
		Objects: f.Finder,
	}
}
