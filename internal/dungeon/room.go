package dungeon

import "github.com/annel0/dungeongen/internal/vec"

// Facing сторона комнаты, на которую выходит дверь
type Facing uint8

const (
	FacingNorth Facing = iota // верхняя стена (минимальный Z)
	FacingSouth
	FacingWest
	FacingEast
)

func (f Facing) String() string {
	switch f {
	case FacingNorth:
		return "north"
	case FacingSouth:
		return "south"
	case FacingWest:
		return "west"
	case FacingEast:
		return "east"
	default:
		return "unknown"
	}
}

// Door запись о двери на границе комнаты
type Door struct {
	Pos    vec.Vec2
	Facing Facing
}

// Room прямоугольная комната. После размещения не двигается и не меняет размер.
// Index - позиция комнаты в списке, выданном RoomPlacer.
type Room struct {
	Index int
	X, Z  int
	Width int
	Depth int
	Doors []Door
}

// Contains проверяет, что клетка лежит в площади комнаты
func (r *Room) Contains(p vec.Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Z && p.Y < r.Z+r.Depth
}

// Center возвращает центральную клетку комнаты
func (r *Room) Center() vec.Vec2 {
	return vec.Vec2{X: r.X + r.Width/2, Y: r.Z + r.Depth/2}
}

// WallCenters возвращает средние клетки четырёх сторон комнаты:
// верх, низ, лево, право. Клетки лежат на границе площади комнаты.
func (r *Room) WallCenters() [4]vec.Vec2 {
	midX := r.X + r.Width/2
	midZ := r.Z + r.Depth/2
	return [4]vec.Vec2{
		{X: midX, Y: r.Z},
		{X: midX, Y: r.Z + r.Depth - 1},
		{X: r.X, Y: midZ},
		{X: r.X + r.Width - 1, Y: midZ},
	}
}

// Gap возвращает расстояние Чебышёва между ближайшими клетками двух комнат.
// 0 означает пересечение площадей.
func (r *Room) Gap(other *Room) int {
	gapX := max(0, other.X-(r.X+r.Width-1), r.X-(other.X+other.Width-1))
	gapZ := max(0, other.Z-(r.Z+r.Depth-1), r.Z-(other.Z+other.Depth-1))
	return max(gapX, gapZ)
}

// Overlaps проверяет пересечение площадей
func (r *Room) Overlaps(other *Room) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Z < other.Z+other.Depth && other.Z < r.Z+r.Depth
}

// isHorizontalWall относит клетку границы к верхней/нижней стене.
// Всё остальное на границе считается вертикальной стеной.
func (r *Room) isHorizontalWall(p vec.Vec2) bool {
	return p.Y == r.Z || p.Y == r.Z+r.Depth-1
}

// facingOf определяет сторону двери на границе комнаты
func (r *Room) facingOf(p vec.Vec2) Facing {
	if r.isHorizontalWall(p) {
		if p.Y == r.Z {
			return FacingNorth
		}
		return FacingSouth
	}
	if p.X == r.X {
		return FacingWest
	}
	return FacingEast
}
