package dungeon

import "github.com/annel0/dungeongen/internal/vec"

// RecordDoors заполняет список дверей каждой комнаты по клеткам Door на её границе.
// Отдельный необязательный этап: решатель связности эти записи не использует.
// Возвращает общее число записанных дверей.
func RecordDoors(grid *Grid, rooms []*Room) int {
	total := 0
	for _, r := range rooms {
		r.Doors = r.Doors[:0]
		forEachBoundaryCell(r, func(p vec.Vec2) {
			if tt, ok := grid.TypeAt(p); ok && tt == TileDoor {
				r.Doors = append(r.Doors, Door{Pos: p, Facing: r.facingOf(p)})
			}
		})
		total += len(r.Doors)
	}
	return total
}

// forEachBoundaryCell обходит клетки периметра комнаты по одному разу
func forEachBoundaryCell(r *Room, fn func(p vec.Vec2)) {
	for z := r.Z; z < r.Z+r.Depth; z++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if z == r.Z || z == r.Z+r.Depth-1 || x == r.X || x == r.X+r.Width-1 {
				fn(vec.Vec2{X: x, Y: z})
			}
		}
	}
}
