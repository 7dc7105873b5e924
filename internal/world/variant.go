package world

// Variant представляет структурный тип объекта на тайле.
// Значения интерактивных типов совпадают с их битами в TypeMask.
type Variant uint8

const (
	VariantNone       Variant = 0
	VariantPrimary    Variant = 1 // полноценный 3D объект (может занимать несколько тайлов)
	VariantDecorative Variant = 2 // декор на стене
	VariantGround     Variant = 4 // объект, лежащий на земле
	VariantWall       Variant = 8 // стена или дверь, до двух поверхностей
	VariantItemStack  Variant = 16
)

// maskVariants - типы, участвующие в TypeMask. ItemStack сюда не входит.
var maskVariants = [...]Variant{VariantPrimary, VariantDecorative, VariantGround, VariantWall}

// String возвращает строковое представление типа
func (v Variant) String() string {
	switch v {
	case VariantPrimary:
		return "primary"
	case VariantDecorative:
		return "decorative"
	case VariantGround:
		return "ground"
	case VariantWall:
		return "wall"
	case VariantItemStack:
		return "item_stack"
	default:
		return "none"
	}
}

// Bit возвращает бит типа в TypeMask (0 для ItemStack и неизвестных значений)
func (v Variant) Bit() TypeMask {
	for _, mv := range maskVariants {
		if mv == v {
			return TypeMask(v)
		}
	}
	return 0
}

// Interactive сообщает, может ли объект этого типа иметь кликабельную модель
func (v Variant) Interactive() bool {
	return v.Bit() != 0
}

// VariantFromBit возвращает тип по значению бита.
// Значения, не совпадающие ровно с одним из битов (например 3), дают false.
func VariantFromBit(bit int) (Variant, bool) {
	for _, v := range maskVariants {
		if int(v) == bit {
			return v, true
		}
	}
	return VariantNone, false
}

// TypeMask - набор типов для поиска объектов сразу нескольких видов
type TypeMask uint8

// MaskAll включает все интерактивные типы
const MaskAll = TypeMask(VariantPrimary) | TypeMask(VariantDecorative) | TypeMask(VariantGround) | TypeMask(VariantWall)

// Mask объединяет биты переданных типов (побитовое ИЛИ, порядок и повторы не важны)
func Mask(variants ...Variant) TypeMask {
	var m TypeMask
	for _, v := range variants {
		m |= v.Bit()
	}
	return m
}

// Has проверяет, входит ли тип в маску
func (m TypeMask) Has(v Variant) bool {
	bit := v.Bit()
	return bit != 0 && m&bit == bit
}

// Union объединяет две маски
func (m TypeMask) Union(other TypeMask) TypeMask {
	return m | other
}

// Variants перечисляет типы маски в порядке возрастания битов
func (m TypeMask) Variants() []Variant {
	var out []Variant
	for _, v := range maskVariants {
		if m.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
