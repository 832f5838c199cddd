package vec

import "math"

// Vec2 представляет координаты клетки сетки.
// Y соответствует оси Z (глубине) сетки подземелья.
type Vec2 struct {
	X, Y int
}

// Смещения соседних клеток: 4-связность и полная 8-связность.
var (
	Cardinal = [4]Vec2{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

	Neighborhood8 = [8]Vec2{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
)

// Add возвращает сумму векторов
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// DistanceTo вычисляет евклидово расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Manhattan возвращает манхэттенское расстояние |dx| + |dy|
func (v Vec2) Manhattan(other Vec2) int {
	return abs(v.X-other.X) + abs(v.Y-other.Y)
}

// Chebyshev возвращает расстояние в смысле "коробки": max(|dx|, |dy|)
func (v Vec2) Chebyshev(other Vec2) int {
	dx, dy := abs(v.X-other.X), abs(v.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent4 проверяет, что точки соседствуют по стороне
func (v Vec2) IsAdjacent4(other Vec2) bool {
	return v.Manhattan(other) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
