package vec

// Area представляет прямоугольную область тайлов на одной плоскости.
// Min и Max включительно.
type Area struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// NewArea создаёт область по двум углам в любом порядке
func NewArea(a, b Vec3) Area {
	min := Vec3{X: minInt(a.X, b.X), Y: minInt(a.Y, b.Y), Z: a.Z}
	max := Vec3{X: maxInt(a.X, b.X), Y: maxInt(a.Y, b.Y), Z: a.Z}
	return Area{Min: min, Max: max}
}

// SingleTile создаёт область из одного тайла
func SingleTile(t Vec3) Area {
	return Area{Min: t, Max: t}
}

// Contains проверяет, входит ли тайл в область
func (a Area) Contains(t Vec3) bool {
	return t.Z == a.Min.Z &&
		t.X >= a.Min.X && t.X <= a.Max.X &&
		t.Y >= a.Min.Y && t.Y <= a.Max.Y
}

// Width возвращает ширину области в тайлах
func (a Area) Width() int {
	return a.Max.X - a.Min.X + 1
}

// Height возвращает высоту области в тайлах
func (a Area) Height() int {
	return a.Max.Y - a.Min.Y + 1
}

// Center возвращает центральный тайл области (округление вниз)
func (a Area) Center() Vec3 {
	mid := FromVec2(a.Min.ToVec2()).Midpoint(FromVec2(a.Max.ToVec2())).Floor()
	return Vec3{X: mid.X, Y: mid.Y, Z: a.Min.Z}
}

// Tiles перечисляет все тайлы области построчно
func (a Area) Tiles() []Vec3 {
	tiles := make([]Vec3, 0, a.Width()*a.Height())
	for y := a.Min.Y; y <= a.Max.Y; y++ {
		for x := a.Min.X; x <= a.Max.X; x++ {
			tiles = append(tiles, Vec3{X: x, Y: y, Z: a.Min.Z})
		}
	}
	return tiles
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
