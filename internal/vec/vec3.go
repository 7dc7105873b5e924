package vec

import "fmt"

// Vec3 представляет тайл мира: X, Y и плоскость (этаж) в Z
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"plane"`
}

// Tile создаёт координаты тайла
func Tile(x, y, plane int) Vec3 {
	return Vec3{X: x, Y: y, Z: plane}
}

// Plane возвращает плоскость тайла
func (v Vec3) Plane() int {
	return v.Z
}

// ToVec2 преобразует Vec3 в Vec2, игнорируя плоскость
func (v Vec3) ToVec2() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// DistanceTo возвращает квадрат расстояния до другого тайла в пределах плоскости
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return float64(dx*dx + dy*dy)
}

// Equals проверяет равенство тайлов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}
