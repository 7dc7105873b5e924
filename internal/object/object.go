package object

import (
	"fmt"
	"reflect"

	"github.com/annel0/worldobjects/internal/definition"
	"github.com/annel0/worldobjects/internal/model"
	"github.com/annel0/worldobjects/internal/vec"
	"github.com/annel0/worldobjects/internal/world"
)

// Object - хэндл размещённого в мире объекта.
// Id и определение вычисляются при создании, модель строится заново при каждом обращении.
type Object struct {
	engine  *Engine
	live    world.LiveEntity
	variant world.Variant
	plane   int
	id      int
	def     *definition.Definition
}

// Live возвращает обёрнутый экземпляр (nil для пустого хэндла)
func (o *Object) Live() world.LiveEntity {
	return o.live
}

// ID возвращает id определения или -1
func (o *Object) ID() int {
	return o.id
}

// Definition возвращает статические данные или nil
func (o *Object) Definition() *definition.Definition {
	if o.live == nil {
		return nil
	}
	return o.def
}

// Name возвращает имя из определения, без определения - пустую строку
func (o *Object) Name() string {
	if def := o.Definition(); def != nil {
		return def.Name
	}
	return ""
}

func (o *Object) Variant() world.Variant { return o.variant }
func (o *Object) Plane() int             { return o.plane }

// Location возвращает центральный тайл объекта.
// Для многотайловых объектов это центр занимаемой области с округлением вниз.
func (o *Object) Location() vec.Vec3 {
	if o.live == nil {
		return vec.Vec3{}
	}
	if fp, ok := o.footprint(); ok {
		return fp.Center()
	}
	return o.live.WorldLocation()
}

// Area возвращает занимаемые тайлы: область для многотайловых объектов, иначе один тайл
func (o *Object) Area() vec.Area {
	if fp, ok := o.footprint(); ok {
		return fp
	}
	loc := o.Location()
	return vec.SingleTile(vec.Tile(loc.X, loc.Y, o.plane))
}

func (o *Object) footprint() (vec.Area, bool) {
	if o.live == nil || o.variant != world.VariantPrimary {
		return vec.Area{}, false
	}
	var p world.ObjectPayload
	switch t := o.live.Payload().(type) {
	case world.ObjectPayload:
		p = t
	case *world.ObjectPayload:
		if t == nil {
			return vec.Area{}, false
		}
		p = *t
	default:
		return vec.Area{}, false
	}
	if !p.HasFootprint() {
		return vec.Area{}, false
	}
	return p.Footprint, true
}

// Model строит модель объекта; nil - точной цели для клика нет
func (o *Object) Model() model.Model {
	if o.live == nil {
		return nil
	}
	return o.engine.resolver.Resolve(o.live, o.variant)
}

// IsClickable сообщает, есть ли у объекта модель
func (o *Object) IsClickable() bool {
	return o.live != nil && o.Model() != nil
}

// IsOnScreen проверяет видимость по опорной точке модели или по тайлу
func (o *Object) IsOnScreen() bool {
	if o.live == nil {
		return false
	}
	return o.engine.dispatcher.Visible(o)
}

// DoAction выбирает пункт меню action с любым option
func (o *Object) DoAction(action string) bool {
	return o.DoActionOption(action, "")
}

// DoActionOption выбирает пункт меню action/option
func (o *Object) DoActionOption(action, option string) bool {
	if o.live == nil {
		return false
	}
	return o.engine.dispatcher.PerformAction(o, action, option)
}

// DoClick кликает основной кнопкой
func (o *Object) DoClick() bool {
	return o.DoClickButton(true)
}

// DoClickButton кликает основной (primary) или дополнительной кнопкой
func (o *Object) DoClickButton(primary bool) bool {
	if o.live == nil {
		return false
	}
	return o.engine.dispatcher.Click(o, primary)
}

// DoHover наводит указатель на объект
func (o *Object) DoHover() bool {
	if o.live == nil {
		return false
	}
	return o.engine.dispatcher.Hover(o)
}

// TurnTo поворачивает камеру к ближайшему экземпляру с тем же id.
// Если он уже на экране, возвращает false.
func (o *Object) TurnTo() bool {
	if o.live == nil {
		return false
	}
	return o.engine.dispatcher.Orient(o)
}

// Equal сравнивает хэндлы по идентичности обёрнутого экземпляра
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return sameEntity(o.live, other.live)
}

// Hash согласован с Equal; 0 для пустого хэндла
func (o *Object) Hash() uintptr {
	if o == nil || o.live == nil {
		return 0
	}
	v := reflect.ValueOf(o.live)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.UnsafePointer:
		return v.Pointer()
	}
	return 0
}

func (o *Object) String() string {
	if o.live == nil {
		return "object(nil)"
	}
	return fmt.Sprintf("object(%d %q %s at %s)", o.id, o.Name(), o.variant, o.Location())
}

func sameEntity(a, b world.LiveEntity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		switch va.Kind() {
		case reflect.Map, reflect.Slice, reflect.Func:
			return va.Pointer() == vb.Pointer()
		}
		return false
	}
	return a == b
}

// isNil распознаёт и nil-интерфейс, и типизированный nil-указатель
func isNil(e world.LiveEntity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
