// Package screen решает, виден ли объект на экране.
// Правило одно для всех: есть модель - проверяется её опорная точка, нет модели - проекция тайла.
package screen

import (
	"github.com/annel0/worldobjects/internal/client"
	"github.com/annel0/worldobjects/internal/model"
	"github.com/annel0/worldobjects/internal/vec"
)

// Gate проверяет видимость объектов на экране
type Gate struct {
	calc client.Projector
}

// NewGate создаёт проверку видимости поверх проектора
func NewGate(calc client.Projector) *Gate {
	return &Gate{calc: calc}
}

// Visible возвращает видимость объекта с моделью m (может быть nil), стоящего на тайле tile
func (g *Gate) Visible(m model.Model, tile vec.Vec3) bool {
	if m != nil {
		return g.calc.OnScreen(m.Point())
	}
	return g.TileVisible(tile)
}

// TileVisible проверяет видимость проекции тайла
func (g *Gate) TileVisible(tile vec.Vec3) bool {
	return g.calc.OnScreen(g.calc.TileToScreen(tile))
}

// Project проецирует тайл и сообщает, попала ли точка на экран
func (g *Gate) Project(tile vec.Vec3) (vec.Vec2, bool) {
	p := g.calc.TileToScreen(tile)
	return p, g.calc.OnScreen(p)
}

// OnScreen проверяет уже вычисленную точку
func (g *Gate) OnScreen(p vec.Vec2) bool {
	return g.calc.OnScreen(p)
}
