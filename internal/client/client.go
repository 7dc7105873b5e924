// Package client описывает внешних участников, которых ядро получает готовыми:
// проекцию на экран, указатель, камеру, контекстное меню и поиск объектов.
package client

import (
	"github.com/annel0/worldobjects/internal/vec"
	"github.com/annel0/worldobjects/internal/world"
)

// Projector переводит мировые координаты в экранные
type Projector interface {
	// TileToScreen проецирует центр тайла на экран
	TileToScreen(tile vec.Vec3) vec.Vec2
	// RenderableToScreen возвращает опорную точку геометрии, размещённой на тайле origin
	RenderableToScreen(r world.Renderable, origin vec.Vec3) vec.Vec2
	// Contains проверяет, попадает ли точка в проекцию геометрии
	Contains(r world.Renderable, origin vec.Vec3, p vec.Vec2) bool
	// OnScreen проверяет, видна ли точка в игровом окне
	OnScreen(p vec.Vec2) bool
}

// Pointer - управление мышью
type Pointer interface {
	Move(p vec.Vec2)
	Click(primary bool)
	Location() vec.Vec2
}

// Camera поворачивает камеру к тайлу
type Camera interface {
	TurnTo(tile vec.Vec3)
}

// Menu работает с контекстным меню
type Menu interface {
	// DoAction ищет пункт action/option в меню под указателем и выбирает его.
	// Пустой option совпадает с любым.
	DoAction(action, option string) bool
	// TileAction наводит указатель на тайл и выбирает пункт меню
	TileAction(tile vec.Vec3, action, option string) bool
}

// Finder ищет ближайший к игроку экземпляр объекта с данным id
type Finder interface {
	Nearest(id int) (entity world.LiveEntity, variant world.Variant, plane int, ok bool)
}

// Client объединяет всех участников. Все поля обязательны.
type Client struct {
	Calc    Projector
	Mouse   Pointer
	Camera  Camera
	Menu    Menu
	Objects Finder
}

// Valid проверяет, что все участники заданы
func (c *Client) Valid() bool {
	return c != nil && c.Calc != nil && c.Mouse != nil && c.Camera != nil && c.Menu != nil && c.Objects != nil
}
