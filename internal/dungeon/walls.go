package dungeon

import "github.com/annel0/dungeongen/internal/vec"

// WallKind ориентация стены для отображения
type WallKind uint8

const (
	WallHorizontal WallKind = iota
	WallVertical
)

// EmitWalls превращает каждую пустую клетку, соседнюю (по 8 направлениям)
// с полом, дверью или водой, в стену. Возвращает число новых стен.
func EmitWalls(grid *Grid) int {
	var walls []vec.Vec2
	grid.ForEach(func(t *Tile) {
		if t.Type != TileEmpty {
			return
		}
		p := vec.Vec2{X: t.X, Y: t.Z}
		for _, d := range vec.Neighborhood8 {
			if grid.TileAt(p.Add(d)).IsOpen() {
				walls = append(walls, p)
				return
			}
		}
	})

	for _, p := range walls {
		grid.SetType(p.X, p.Y, TileWall)
	}
	return len(walls)
}

// WallOrientation определяет ориентацию стены: горизонтальная, если открытая
// клетка лежит над или под ней, иначе вертикальная.
func WallOrientation(grid *Grid, x, z int) WallKind {
	if grid.GetTile(x, z-1).IsOpen() || grid.GetTile(x, z+1).IsOpen() {
		return WallHorizontal
	}
	return WallVertical
}
