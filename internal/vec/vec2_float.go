package vec

import "math"

// Vec2Float представляет 2D координаты с плавающей точкой
type Vec2Float struct {
	X, Y float64
}

// Floor округляет координаты вниз.
// Для отрицательных координат это не то же самое, что int(x).
func (v Vec2Float) Floor() Vec2 {
	return Vec2{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// FromVec2 создает Vec2Float из Vec2
func FromVec2(v Vec2) Vec2Float {
	return Vec2Float{X: float64(v.X), Y: float64(v.Y)}
}

// Midpoint возвращает середину отрезка между двумя точками
func (v Vec2Float) Midpoint(other Vec2Float) Vec2Float {
	return Vec2Float{X: (v.X + other.X) / 2, Y: (v.Y + other.Y) / 2}
}
