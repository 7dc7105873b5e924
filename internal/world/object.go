package world

import (
	"reflect"

	"github.com/annel0/worldobjects/internal/vec"
)

// InvalidID - идентификатор отсутствующего определения
const InvalidID = -1

// LiveEntity - размещённый в мире экземпляр объекта.
// Принадлежит поставщику состояния мира; ядро держит лишь ссылку.
// Реализации должны быть указателями: равенство хэндлов определяется идентичностью ссылки.
type LiveEntity interface {
	// ID возвращает идентификатор статического определения
	ID() int
	// WorldLocation возвращает тайл, на котором находится экземпляр
	WorldLocation() vec.Vec3
	// Payload возвращает данные отрисовки, специфичные для типа.
	// nil означает, что экземпляр не поддерживает доступ к отрисовке.
	Payload() Payload
}

// Renderable - отрисовываемая поверхность (модель) объекта
type Renderable interface {
	// Realized сообщает, загружена ли геометрия (есть ли данные вершин)
	Realized() bool
}

// Payload - закрытое объединение данных отрисовки по типам объектов.
// Реализации есть только в этом пакете.
type Payload interface {
	variant() Variant
}

// ObjectPayload - данные полноценного объекта
type ObjectPayload struct {
	Renderable Renderable
	// Footprint - занимаемые тайлы в мировых координатах (нулевое значение = один тайл)
	Footprint vec.Area
}

// GroundPayload - данные объекта на земле
type GroundPayload struct {
	Renderable Renderable
}

// DecorativePayload - данные декоративного объекта
type DecorativePayload struct {
	Renderable Renderable
}

// WallPayload - данные стены: основная и дополнительная поверхности
type WallPayload struct {
	Primary   Renderable
	Secondary Renderable
}

// ItemStackPayload - стопка предметов на земле, моделей не имеет
type ItemStackPayload struct{}

func (ObjectPayload) variant() Variant     { return VariantPrimary }
func (GroundPayload) variant() Variant     { return VariantGround }
func (DecorativePayload) variant() Variant { return VariantDecorative }
func (WallPayload) variant() Variant       { return VariantWall }
func (ItemStackPayload) variant() Variant  { return VariantItemStack }

// PayloadVariant возвращает тип, которому соответствует payload
func PayloadVariant(p Payload) Variant {
	if p == nil {
		return VariantNone
	}
	// типизированный nil-указатель на payload
	if v := reflect.ValueOf(p); v.Kind() == reflect.Pointer && v.IsNil() {
		return VariantNone
	}
	return p.variant()
}

// HasFootprint сообщает, задана ли у объекта многотайловая область
func (p ObjectPayload) HasFootprint() bool {
	return p.Footprint != (vec.Area{})
}

// Realized безопасно проверяет геометрию, допуская nil
func Realized(r Renderable) bool {
	return r != nil && r.Realized()
}
