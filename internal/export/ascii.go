package export

import (
	"strings"

	"github.com/annel0/dungeongen/internal/dungeon"
)

// Символы клеток в текстовой карте
const (
	RuneEmpty          = ' '
	RuneFloor          = '.'
	RuneDoor           = '+'
	RuneWater          = '~'
	RuneWallHorizontal = '-'
	RuneWallVertical   = '|'
)

// RuneFactory текстовая реализация dungeon.ActorFactory: объектом клетки служит её символ
type RuneFactory struct {
	Grid *dungeon.Grid
}

func (f RuneFactory) CreateActor(x, z int, t dungeon.TileType) dungeon.ActorHandle {
	return TileRune(f.Grid, x, z, t)
}

// TileRune возвращает символ клетки; ориентация стены берётся из соседей
func TileRune(grid *dungeon.Grid, x, z int, t dungeon.TileType) rune {
	switch t {
	case dungeon.TileFloor:
		return RuneFloor
	case dungeon.TileDoor:
		return RuneDoor
	case dungeon.TileWater:
		return RuneWater
	case dungeon.TileWall:
		if dungeon.WallOrientation(grid, x, z) == dungeon.WallHorizontal {
			return RuneWallHorizontal
		}
		return RuneWallVertical
	default:
		return RuneEmpty
	}
}

// ParseRune обратное отображение символа в тип клетки
func ParseRune(r rune) (dungeon.TileType, bool) {
	switch r {
	case RuneEmpty:
		return dungeon.TileEmpty, true
	case RuneFloor:
		return dungeon.TileFloor, true
	case RuneDoor:
		return dungeon.TileDoor, true
	case RuneWater:
		return dungeon.TileWater, true
	case RuneWallHorizontal, RuneWallVertical:
		return dungeon.TileWall, true
	}
	return dungeon.TileEmpty, false
}

// Rows рисует сетку построчно (по одной строке на каждое Z).
// Символы сохраняются на клетках как объекты через AttachActors.
func Rows(grid *dungeon.Grid) []string {
	dungeon.AttachActors(grid, RuneFactory{Grid: grid})

	rows := make([]string, grid.Depth)
	var sb strings.Builder
	for z := 0; z < grid.Depth; z++ {
		sb.Reset()
		for x := 0; x < grid.Width; x++ {
			r, ok := grid.GetTile(x, z).Actor.(rune)
			if !ok {
				r = RuneEmpty
			}
			sb.WriteRune(r)
		}
		rows[z] = sb.String()
	}
	return rows
}

// RenderASCII возвращает карту уровня в виде текста, строки разделены '\n'
func RenderASCII(grid *dungeon.Grid) string {
	return strings.Join(Rows(grid), "\n") + "\n"
}
