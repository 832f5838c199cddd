package dungeon

import (
	"github.com/annel0/dungeongen/internal/vec"
)

// Grid прямоугольная сетка width × depth. Владеет всеми клетками.
type Grid struct {
	Width int
	Depth int
	tiles []Tile // tiles[z*Width+x]
}

// NewGrid создаёт сетку, заполненную пустыми клетками
func NewGrid(width, depth int) *Grid {
	g := &Grid{
		Width: width,
		Depth: depth,
		tiles: make([]Tile, width*depth),
	}
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			t := &g.tiles[z*width+x]
			t.X, t.Z = x, z
		}
	}
	return g
}

// IsValidPosition проверяет, что координаты лежат внутри сетки
func (g *Grid) IsValidPosition(x, z int) bool {
	return x >= 0 && x < g.Width && z >= 0 && z < g.Depth
}

// GetTile возвращает клетку или nil за пределами сетки
func (g *Grid) GetTile(x, z int) *Tile {
	if !g.IsValidPosition(x, z) {
		return nil
	}
	return &g.tiles[z*g.Width+x]
}

// TileAt то же, что GetTile, для вектора
func (g *Grid) TileAt(p vec.Vec2) *Tile {
	return g.GetTile(p.X, p.Y)
}

// TypeAt возвращает тип клетки; ok == false за пределами сетки
func (g *Grid) TypeAt(p vec.Vec2) (TileType, bool) {
	t := g.TileAt(p)
	if t == nil {
		return TileEmpty, false
	}
	return t.Type, true
}

// SetType меняет тип клетки. Возвращает false за пределами сетки.
func (g *Grid) SetType(x, z int, tt TileType) bool {
	t := g.GetTile(x, z)
	if t == nil {
		return false
	}
	t.Type = tt
	return true
}

// CanPlaceRoom проверяет, можно ли разместить комнату w × d с левым верхним углом
// (startX, startZ) так, чтобы ни одна занятая клетка не оказалась ближе minDistance
// (по Чебышёву) к её площади. Сетка не меняется.
func (g *Grid) CanPlaceRoom(startX, startZ, w, d, minDistance int) bool {
	if startX < 0 || startZ < 0 || startX+w > g.Width || startZ+d > g.Depth {
		return false
	}

	// Площадь комнаты, расширенная на minDistance и обрезанная по сетке
	x0, z0 := max(startX-minDistance, 0), max(startZ-minDistance, 0)
	x1, z1 := min(startX+w+minDistance, g.Width), min(startZ+d+minDistance, g.Depth)

	for z := z0; z < z1; z++ {
		for x := x0; x < x1; x++ {
			if g.tiles[z*g.Width+x].Type != TileEmpty {
				return false
			}
		}
	}
	return true
}

// FillRect устанавливает тип всех клеток прямоугольника (с обрезкой по сетке)
func (g *Grid) FillRect(startX, startZ, w, d int, tt TileType) {
	for z := startZ; z < startZ+d; z++ {
		for x := startX; x < startX+w; x++ {
			g.SetType(x, z, tt)
		}
	}
}

// Coords возвращает координаты всех клеток указанного типа в порядке строк
func (g *Grid) Coords(tt TileType) []vec.Vec2 {
	var out []vec.Vec2
	for i := range g.tiles {
		if g.tiles[i].Type == tt {
			out = append(out, vec.Vec2{X: g.tiles[i].X, Y: g.tiles[i].Z})
		}
	}
	return out
}

// Count возвращает число клеток указанного типа
func (g *Grid) Count(tt TileType) int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Type == tt {
			n++
		}
	}
	return n
}

// ForEach обходит клетки в порядке строк
func (g *Grid) ForEach(fn func(t *Tile)) {
	for i := range g.tiles {
		fn(&g.tiles[i])
	}
}

// Types возвращает копию типов клеток в порядке строк
func (g *Grid) Types() []TileType {
	out := make([]TileType, len(g.tiles))
	for i := range g.tiles {
		out[i] = g.tiles[i].Type
	}
	return out
}

func (g *Grid) index(p vec.Vec2) int {
	return p.Y*g.Width + p.X
}
