package vec

import "math"

// Vec2 представляет 2D координаты на экране (в пикселях)
type Vec2 struct {
	X, Y int
}

// Add складывает две точки
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// InRect проверяет, лежит ли точка внутри прямоугольника [min, max)
func (v Vec2) InRect(min, max Vec2) bool {
	return v.X >= min.X && v.X < max.X && v.Y >= min.Y && v.Y < max.Y
}
